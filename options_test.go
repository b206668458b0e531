package toolloop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOptions(t *testing.T) {
	t.Run("returns empty options when no options provided", func(t *testing.T) {
		opts := ApplyOptions()
		assert.NotNil(t, opts)
		assert.Empty(t, opts.Model)
		assert.Nil(t, opts.Temperature)
		assert.Nil(t, opts.Tools)
	})

	t.Run("applies multiple options", func(t *testing.T) {
		tools := []Tool{{Name: "test"}}
		opts := ApplyOptions(
			WithModel("qwen3:8b"),
			WithTemperature(0.2),
			WithTools(tools),
		)

		assert.Equal(t, "qwen3:8b", opts.Model)
		require.NotNil(t, opts.Temperature)
		assert.Equal(t, 0.2, *opts.Temperature)
		assert.Equal(t, tools, opts.Tools)
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		opts := ApplyOptions(WithModel("a"), WithModel("b"))
		assert.Equal(t, "b", opts.Model)
	})
}

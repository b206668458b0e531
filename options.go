package toolloop

// Options contains configuration for a chat request.
type Options struct {
	Model       string
	Temperature *float64
	Tools       []Tool
}

// Option is a functional option for configuring chat requests.
type Option func(*Options)

// WithModel overrides the provider's default model for the request.
func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.Temperature = &t
	}
}

// WithTools advertises the given tool specifications to the model.
func WithTools(tools []Tool) Option {
	return func(o *Options) {
		o.Tools = tools
	}
}

// ApplyOptions applies functional options to an Options struct.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

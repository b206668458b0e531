package agent

import "fmt"

// ToolRejectedError is reported to the model when the approver declines a call.
type ToolRejectedError struct {
	Name   string
	Reason string
}

func (e *ToolRejectedError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("tool call %s rejected", e.Name)
	}
	return fmt.Sprintf("tool call %s rejected: %s", e.Name, e.Reason)
}

// Kind returns "ToolRejectedError".
func (e *ToolRejectedError) Kind() string { return "ToolRejectedError" }

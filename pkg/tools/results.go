package tools

import "fmt"

// TextResult creates a simple text result.
func TextResult(text string) *Result {
	return &Result{
		Status:  ResultSuccess,
		Content: []ContentBlock{{Type: "text", Text: text}},
	}
}

// ErrorResult creates an error result. The message is agent-facing content,
// not a protocol error; don't throw, return structured errors.
func ErrorResult(message string) *Result {
	return &Result{
		Status:  ResultError,
		Content: []ContentBlock{{Type: "text", Text: message}},
		Error:   message,
	}
}

// ErrorResultf creates an error result with a formatted message.
func ErrorResultf(format string, args ...any) *Result {
	return ErrorResult(fmt.Sprintf(format, args...))
}

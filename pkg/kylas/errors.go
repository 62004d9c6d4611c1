package kylas

import "fmt"

// APIError describes a failed Kylas API call. StatusCode and Body are zero
// for transport or decode failures.
type APIError struct {
	Message    string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string { return e.Message }

func statusError(op string, status int, body string) *APIError {
	return &APIError{
		Message:    fmt.Sprintf("%s failed: %d", op, status),
		StatusCode: status,
		Body:       body,
	}
}

func wrapError(op string, err error) *APIError {
	return &APIError{Message: fmt.Sprintf("%s failed: %s", op, err)}
}

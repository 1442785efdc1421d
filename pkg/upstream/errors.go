package upstream

import "errors"

// GenericErrorMessage is shown when the server gives no usable message.
const GenericErrorMessage = "An unexpected error occurred. Please try again."

// APIError is a non-2xx (or success=false) outcome of an upstream call.
// The server-provided message is carried unchanged so every view can
// render it as-is.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// AsAPIError extracts an *APIError from err, if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

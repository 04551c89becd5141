package gateway

import (
	"errors"
	"fmt"
)

// RequestError is the normalized failure for any gateway call. A zero
// StatusCode means the request never reached the server (transport
// failure, carried in Err); otherwise it is the non-2xx response with the
// server's detail message.
type RequestError struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	return e.Detail
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is a gateway failure that never reached
// the server.
func IsTransport(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == 0
}

// StatusCode returns the HTTP status of a gateway failure, or 0 when err
// is not a server response error.
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}

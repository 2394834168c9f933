package cookie

import (
	"errors"
	"fmt"
)

// ErrCookieNotFound indicates the requested cookie doesn't exist in the request.
var ErrCookieNotFound = errors.New("cookie not found in request")

// ErrCookieTooLarge indicates the cookie exceeds the maximum allowed size.
type ErrCookieTooLarge struct {
	Name string
	Size int
	Max  int
}

// Error implements the error interface.
func (e ErrCookieTooLarge) Error() string {
	return fmt.Sprintf("cookie %q size %d exceeds maximum %d bytes", e.Name, e.Size, e.Max)
}

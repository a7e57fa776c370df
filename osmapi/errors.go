package osmapi

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL  string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: %d %s: %s", e.URL, e.Code, http.StatusText(e.Code), e.Body)
	}
	return fmt.Sprintf("%s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// IsNotFound returns whether err is caused by a missing (404) or deleted
// (410) object.
func IsNotFound(err error) bool {
	se, ok := errors.Cause(err).(*StatusError)
	return ok && (se.Code == http.StatusNotFound || se.Code == http.StatusGone)
}

package fetcher

import (
	"errors"
	"fmt"
)

// ErrInsecureURL is returned when HTTPS enforcement is on and the base URL does
// not use the https scheme.
var ErrInsecureURL = errors.New("AGENTS.md must be served over HTTPS")

// FetchError describes a failed fetch. URL is the base URL for ErrInsecureURL
// and the candidate URL for transport failures.
type FetchError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if errors.Is(e.Err, ErrInsecureURL) {
		return fmt.Sprintf(`AGENTS.md must be served over HTTPS. Received URL: "%s". `+
			"Disable HTTPS enforcement to override for testing.", e.URL)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

package search

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds one backend request.
const DefaultTimeout = 10 * time.Second

// DefaultHTTPClient is the client backends use when none is supplied.
var DefaultHTTPClient = &http.Client{Timeout: DefaultTimeout}

// ClampLimit returns n bounded to [1, upper], using def when n is not
// positive.
func ClampLimit(n, def, upper int) int {
	if n <= 0 {
		n = def
	}
	if n > upper {
		n = upper
	}
	if n < 1 {
		n = 1
	}
	return n
}

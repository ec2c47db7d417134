package ioerr

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind is the coarse category of an I/O failure.
type Kind int

const (
	// KindUnknown is reported for nil errors and errors not produced by this package.
	KindUnknown Kind = iota
	// KindTimeout covers deadlines, client timeouts and cancelled contexts.
	KindTimeout
	// KindConnection covers DNS, dial, TLS and reset failures.
	KindConnection
	// KindStatus is a response outside the 2xx range.
	KindStatus
	// KindParse is a body that could not be read, decoded or understood.
	KindParse
)

// String returns the lower-case name of the kind, used as a log and metric label.
func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindConnection:
		return "connection"
	case KindStatus:
		return "status"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Error is a classified I/O failure.
type Error struct {
	Kind       Kind
	Op         string
	URL        string
	StatusCode int
	Err        error
}

// New tags err with kind. Op names the operation ("fetch", "search.serpapi").
func New(kind Kind, op, url string, err error) *Error {
	return &Error{Kind: kind, Op: op, URL: url, Err: err}
}

// Status builds a KindStatus error for an unexpected HTTP status code.
func Status(op, url string, code int) *Error {
	return &Error{
		Kind:       KindStatus,
		Op:         op,
		URL:        url,
		StatusCode: code,
		Err:        fmt.Errorf("unexpected status code: %d", code),
	}
}

// Classify wraps a transport error returned by an HTTP client or dialer,
// choosing KindTimeout for deadline and net timeout errors and
// KindConnection for everything else. An already classified error is
// returned unchanged.
func Classify(op, url string, err error) *Error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}
	kind := KindConnection
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		kind = KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindTimeout
	}
	return New(kind, op, url, err)
}

// KindOf reports the kind of err, or KindUnknown when err is nil or unclassified.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return KindUnknown
}

func (e *Error) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.URL, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

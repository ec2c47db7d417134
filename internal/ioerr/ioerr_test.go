package ioerr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
)

// timeoutErr is a net.Error that reports a timeout.
type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

// TestClassify checks the kind inferred for common transport failures.
func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), KindTimeout},
		{"canceled", context.Canceled, KindTimeout},
		{"net timeout", &net.OpError{Op: "dial", Err: timeoutErr{}}, KindTimeout},
		{"refused", errors.New("connection refused"), KindConnection},
		{"already classified", Status("fetch", "https://a.com", 503), KindStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("fetch", "https://a.com", tt.err)
			if got.Kind != tt.want {
				t.Errorf("Classify(%v).Kind = %v, want %v", tt.err, got.Kind, tt.want)
			}
		})
	}
}

// TestClassify_Nil verifies a nil error stays nil.
func TestClassify_Nil(t *testing.T) {
	if got := Classify("fetch", "", nil); got != nil {
		t.Errorf("Classify(nil) = %v, want nil", got)
	}
}

// TestKindOf_Wrapped verifies KindOf sees through fmt.Errorf wrapping.
func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("search failed: %w", New(KindParse, "search.duckduckgo", "", errors.New("bad html")))
	if got := KindOf(err); got != KindParse {
		t.Errorf("KindOf() = %v, want %v", got, KindParse)
	}
	if got := KindOf(errors.New("plain")); got != KindUnknown {
		t.Errorf("KindOf(plain) = %v, want %v", got, KindUnknown)
	}
}

// TestError_Message checks the rendered message carries op, url and kind.
func TestError_Message(t *testing.T) {
	err := Status("fetch", "https://acme.com", 404)
	want := "fetch https://acme.com: status: unexpected status code: 404"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

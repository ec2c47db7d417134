package search

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leofalp/sitefinder/internal/ioerr"
	"github.com/leofalp/sitefinder/providers/cache"
	"github.com/leofalp/sitefinder/providers/cache/inmemory"
)

// fakeBackend returns fixed URLs or a fixed error and counts its calls.
type fakeBackend struct {
	name  string
	urls  []string
	err   error
	delay time.Duration
	calls atomic.Int32
	gotN  atomic.Int32
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Search(ctx context.Context, _ string, n int) ([]string, error) {
	f.calls.Add(1)
	f.gotN.Store(int32(n))
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.urls, nil
}

func urlsN(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("https://%s%d.com/", prefix, i)
	}
	return out
}

// TestAggregator_MergeOrderAndDedupe verifies backend order is preserved,
// duplicates are dropped and URLs are trimmed.
func TestAggregator_MergeOrderAndDedupe(t *testing.T) {
	a := &fakeBackend{name: "a", urls: []string{" https://acme.com.tr/ ", "https://rehber.com/acme", ""}}
	b := &fakeBackend{name: "b", urls: []string{"https://acme.com.tr/", "https://acme.com/"}}

	agg := NewAggregator(inmemory.New(), []Source{{a, 5}, {b, 7}})
	got := agg.Search(context.Background(), "Acme Ltd")

	want := []string{"https://acme.com.tr/", "https://rehber.com/acme", "https://acme.com/"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Search() = %v, want %v", got, want)
	}
	if a.gotN.Load() != 5 || b.gotN.Load() != 7 {
		t.Errorf("limits = (%d, %d), want (5, 7)", a.gotN.Load(), b.gotN.Load())
	}
}

// TestAggregator_ShortCircuit verifies later backends are skipped once the
// merged list reaches the minimum.
func TestAggregator_ShortCircuit(t *testing.T) {
	a := &fakeBackend{name: "a", urls: urlsN("a", DefaultMinResults)}
	b := &fakeBackend{name: "b", urls: urlsN("b", 3)}

	got := NewAggregator(inmemory.New(), []Source{{a, 10}, {b, 10}}).Search(context.Background(), "acme")

	if len(got) != DefaultMinResults {
		t.Errorf("len(Search()) = %d, want %d", len(got), DefaultMinResults)
	}
	if b.calls.Load() != 0 {
		t.Errorf("second backend calls = %d, want 0", b.calls.Load())
	}
}

// TestAggregator_WithMinResultsZero verifies the short-circuit can be disabled.
func TestAggregator_WithMinResultsZero(t *testing.T) {
	a := &fakeBackend{name: "a", urls: urlsN("a", 10)}
	b := &fakeBackend{name: "b", urls: urlsN("b", 2)}

	got := NewAggregator(inmemory.New(), []Source{{a, 10}, {b, 10}}, WithMinResults(0)).
		Search(context.Background(), "acme")
	if len(got) != 12 {
		t.Errorf("len(Search()) = %d, want 12", len(got))
	}
}

// TestAggregator_BackendFailureTolerated verifies a failing backend does not
// prevent the others from contributing, and the result is cached.
func TestAggregator_BackendFailureTolerated(t *testing.T) {
	store := inmemory.New()
	a := &fakeBackend{name: "a", err: ioerr.Status("search.a", "http://x", 500)}
	b := &fakeBackend{name: "b", urls: []string{"https://acme.com/"}}

	got := NewAggregator(store, []Source{{a, 10}, {b, 10}}).Search(context.Background(), "acme")
	if !reflect.DeepEqual(got, []string{"https://acme.com/"}) {
		t.Errorf("Search() = %v, want [https://acme.com/]", got)
	}
	if _, ok, _ := store.GetResults(context.Background(), cache.QueryKey("acme")); !ok {
		t.Error("result was not cached")
	}
}

// TestAggregator_AllFailedNotCached verifies an all-failure round returns an
// empty list and leaves the cache untouched.
func TestAggregator_AllFailedNotCached(t *testing.T) {
	store := inmemory.New()
	a := &fakeBackend{name: "a", err: errors.New("boom")}
	b := &fakeBackend{name: "b", err: fmt.Errorf("b: %w", ErrMissingAPIKey)}

	agg := NewAggregator(store, []Source{{a, 10}, {b, 10}})
	if got := agg.Search(context.Background(), "acme"); len(got) != 0 {
		t.Errorf("Search() = %v, want empty", got)
	}
	if _, results := store.Len(); results != 0 {
		t.Errorf("cached results = %d, want 0", results)
	}

	agg.Search(context.Background(), "acme")
	if a.calls.Load() != 2 {
		t.Errorf("backend calls = %d, want 2 (no caching of failures)", a.calls.Load())
	}
}

// TestAggregator_MissingKeySkipped verifies an unconfigured backend is
// skipped and the next backend is used.
func TestAggregator_MissingKeySkipped(t *testing.T) {
	a := &fakeBackend{name: "a", err: fmt.Errorf("a: %w", ErrMissingAPIKey)}
	b := &fakeBackend{name: "b", urls: []string{"https://acme.com/"}}

	got := NewAggregator(inmemory.New(), []Source{{a, 10}, {b, 10}}).Search(context.Background(), "acme")
	if len(got) != 1 {
		t.Errorf("Search() = %v, want one URL", got)
	}
}

// TestAggregator_CacheHit verifies a cached query makes no backend calls and
// that keys are normalized.
func TestAggregator_CacheHit(t *testing.T) {
	store := inmemory.New()
	if err := store.PutResults(context.Background(), cache.QueryKey("acme  ltd"), []string{"https://cached.com/"}); err != nil {
		t.Fatalf("PutResults() error = %v", err)
	}
	a := &fakeBackend{name: "a", urls: []string{"https://live.com/"}}

	got := NewAggregator(store, []Source{{a, 10}}).Search(context.Background(), "  ACME Ltd ")
	if !reflect.DeepEqual(got, []string{"https://cached.com/"}) {
		t.Errorf("Search() = %v, want cached list", got)
	}
	if a.calls.Load() != 0 {
		t.Errorf("backend calls = %d, want 0", a.calls.Load())
	}
}

// TestAggregator_EmptyQuery verifies a blank query short-circuits.
func TestAggregator_EmptyQuery(t *testing.T) {
	a := &fakeBackend{name: "a", urls: []string{"https://acme.com/"}}
	if got := NewAggregator(inmemory.New(), []Source{{a, 10}}).Search(context.Background(), "   "); got != nil {
		t.Errorf("Search() = %v, want nil", got)
	}
	if a.calls.Load() != 0 {
		t.Errorf("backend calls = %d, want 0", a.calls.Load())
	}
}

// TestAggregator_ConcurrentMissesShareOneRound verifies identical concurrent
// queries reach the backend once.
func TestAggregator_ConcurrentMissesShareOneRound(t *testing.T) {
	a := &fakeBackend{name: "a", urls: []string{"https://acme.com/"}, delay: 50 * time.Millisecond}
	agg := NewAggregator(inmemory.New(), []Source{{a, 10}})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := agg.Search(context.Background(), "acme"); len(got) != 1 {
				t.Errorf("Search() = %v, want one URL", got)
			}
		}()
	}
	wg.Wait()

	if a.calls.Load() != 1 {
		t.Errorf("backend calls = %d, want 1", a.calls.Load())
	}
}

// TestAggregator_ResultIsCopy verifies callers cannot mutate shared results.
func TestAggregator_ResultIsCopy(t *testing.T) {
	a := &fakeBackend{name: "a", urls: []string{"https://acme.com/"}}
	agg := NewAggregator(inmemory.New(), []Source{{a, 10}})

	first := agg.Search(context.Background(), "acme")
	first[0] = "mutated"
	if second := agg.Search(context.Background(), "acme"); second[0] != "https://acme.com/" {
		t.Errorf("second Search()[0] = %q, want original", second[0])
	}
}

// TestClampLimit verifies default and upper bound handling.
func TestClampLimit(t *testing.T) {
	tests := []struct {
		n, def, upper, want int
	}{
		{0, 10, 20, 10},
		{-1, 10, 20, 10},
		{5, 10, 20, 5},
		{50, 10, 20, 20},
	}
	for _, tt := range tests {
		if got := ClampLimit(tt.n, tt.def, tt.upper); got != tt.want {
			t.Errorf("ClampLimit(%d, %d, %d) = %d, want %d", tt.n, tt.def, tt.upper, got, tt.want)
		}
	}
}

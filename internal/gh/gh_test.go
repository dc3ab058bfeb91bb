package gh

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-github/v57/github"

	"github.com/wowsmith/addonsync/internal/model"
)

func TestClassify(t *testing.T) {
	notFound := &github.ErrorResponse{
		Response: &http.Response{StatusCode: http.StatusNotFound},
	}
	serverErr := &github.ErrorResponse{
		Response: &http.Response{StatusCode: http.StatusBadGateway},
	}

	tests := []struct {
		name         string
		err          error
		wantNotFound bool
	}{
		{name: "nil error", err: nil},
		{name: "404 maps to ErrNotFound", err: notFound, wantNotFound: true},
		{name: "5xx is a network error", err: serverErr},
		{name: "plain error is a network error", err: errors.New("dial tcp: timeout")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify("test op", tt.err)
			if tt.err == nil {
				if got != nil {
					t.Errorf("classify(nil) = %v, want nil", got)
				}
				return
			}
			if errors.Is(got, ErrNotFound) != tt.wantNotFound {
				t.Errorf("classify() ErrNotFound = %v, want %v", errors.Is(got, ErrNotFound), tt.wantNotFound)
			}
			if !tt.wantNotFound {
				var netErr *NetworkError
				if !errors.As(got, &netErr) {
					t.Errorf("classify() = %T, want *NetworkError", got)
				}
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(classify("op", errors.New("boom"))) != true {
		t.Error("transient network error should be retryable")
	}
	if IsRetryable(classify("op", context.Canceled)) {
		t.Error("cancelled context should not be retryable")
	}
	notFound := classify("op", &github.ErrorResponse{
		Response: &http.Response{StatusCode: http.StatusNotFound},
	})
	if IsRetryable(notFound) {
		t.Error("ErrNotFound should not be retryable")
	}
}

func TestResolveUnknownMode(t *testing.T) {
	r := NewResolver(nil, "")
	_, err := r.Resolve(context.Background(), model.AddonDefinition{LocalName: "X"}, model.ResolvedPolicy{Mode: "nightly"})
	if err == nil {
		t.Error("Resolve() accepted an unknown mode")
	}
}

// fakeResolver counts underlying resolutions for cache tests.
type fakeResolver struct {
	value string
	err   error
	calls int
}

func (f *fakeResolver) Resolve(_ context.Context, _ model.AddonDefinition, _ model.ResolvedPolicy) (string, error) {
	f.calls++
	return f.value, f.err
}

func TestVersionCacheRoundTrip(t *testing.T) {
	cache := NewVersionCacheAt(t.TempDir(), time.Minute)
	def := model.AddonDefinition{Owner: "Nihilop", Repo: "Nihui_unitframe"}
	pol := model.ResolvedPolicy{Mode: model.ModeBranch, Branch: "main"}

	if _, ok := cache.Get(def, pol, CompareCommit); ok {
		t.Fatal("Get() hit on an empty cache")
	}

	if err := cache.Set(def, pol, CompareCommit, "abc1234"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, ok := cache.Get(def, pol, CompareCommit)
	if !ok || got != "abc1234" {
		t.Errorf("Get() = %q, %v, want abc1234, true", got, ok)
	}

	// Different compare flavor must not share entries.
	if _, ok := cache.Get(def, pol, CompareTOC); ok {
		t.Error("Get() crossed compare flavors")
	}

	// Different branch must not share entries.
	dev := model.ResolvedPolicy{Mode: model.ModeBranch, Branch: "dev"}
	if _, ok := cache.Get(def, dev, CompareCommit); ok {
		t.Error("Get() crossed branches")
	}
}

func TestVersionCacheTTL(t *testing.T) {
	cache := NewVersionCacheAt(t.TempDir(), -time.Second) // everything instantly stale
	def := model.AddonDefinition{Owner: "o", Repo: "r"}
	pol := model.ResolvedPolicy{Mode: model.ModeRelease}

	if err := cache.Set(def, pol, CompareCommit, "v1.0"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, ok := cache.Get(def, pol, CompareCommit); ok {
		t.Error("Get() returned a stale entry")
	}
}

func TestVersionCacheClearAndStats(t *testing.T) {
	cache := NewVersionCacheAt(t.TempDir(), time.Minute)
	def := model.AddonDefinition{Owner: "o", Repo: "r"}

	_ = cache.Set(def, model.ResolvedPolicy{Mode: model.ModeRelease}, CompareCommit, "v1.0")
	_ = cache.Set(def, model.ResolvedPolicy{Mode: model.ModeBranch, Branch: "main"}, CompareCommit, "abc1234")

	total, valid, err := cache.Stats()
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if total != 2 || valid != 2 {
		t.Errorf("Stats() = %d/%d, want 2/2", valid, total)
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	total, _, err = cache.Stats()
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if total != 0 {
		t.Errorf("Stats() after Clear() = %d entries, want 0", total)
	}
}

func TestCachedResolver(t *testing.T) {
	fake := &fakeResolver{value: "v1.1"}
	cache := NewVersionCacheAt(t.TempDir(), time.Minute)
	r := NewCachedResolver(fake, cache, CompareCommit)

	def := model.AddonDefinition{Owner: "o", Repo: "r"}
	pol := model.ResolvedPolicy{Mode: model.ModeRelease}

	for i := 0; i < 3; i++ {
		got, err := r.Resolve(context.Background(), def, pol)
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if got != "v1.1" {
			t.Errorf("Resolve() = %q, want v1.1", got)
		}
	}
	if fake.calls != 1 {
		t.Errorf("underlying resolver called %d times, want 1", fake.calls)
	}
}

func TestCachedResolverDoesNotCacheFailures(t *testing.T) {
	fake := &fakeResolver{err: &NetworkError{Op: "op", Err: errors.New("down")}}
	cache := NewVersionCacheAt(t.TempDir(), time.Minute)
	r := NewCachedResolver(fake, cache, CompareCommit)

	def := model.AddonDefinition{Owner: "o", Repo: "r"}
	pol := model.ResolvedPolicy{Mode: model.ModeRelease}

	for i := 0; i < 2; i++ {
		if _, err := r.Resolve(context.Background(), def, pol); err == nil {
			t.Fatal("Resolve() swallowed the resolver failure")
		}
	}
	if fake.calls != 2 {
		t.Errorf("underlying resolver called %d times, want 2 (failures must not cache)", fake.calls)
	}
}

package media

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingProber struct {
	calls int
	probe Probe
	err   error
}

func (p *countingProber) Probe(context.Context, string) (Probe, error) {
	p.calls++
	if p.err != nil {
		return Probe{}, p.err
	}
	return p.probe, nil
}

func TestCachingProberReusesResults(t *testing.T) {
	base := &countingProber{probe: Probe{Duration: 10}}
	cache := NewCachingProber(base, time.Minute)

	for range 3 {
		probe, err := cache.Probe(context.Background(), "/staging/a.mp4")
		if err != nil {
			t.Fatalf("probe: %v", err)
		}
		if probe.Duration != 10 {
			t.Fatalf("unexpected duration %v", probe.Duration)
		}
	}

	if base.calls != 1 {
		t.Fatalf("expected one underlying probe, got %d", base.calls)
	}
}

func TestCachingProberKeysByPath(t *testing.T) {
	base := &countingProber{probe: Probe{Duration: 10}}
	cache := NewCachingProber(base, time.Minute)

	if _, err := cache.Probe(context.Background(), "/staging/a.mp4"); err != nil {
		t.Fatalf("probe: %v", err)
	}
	if _, err := cache.Probe(context.Background(), "/staging/b.mp4"); err != nil {
		t.Fatalf("probe: %v", err)
	}

	if base.calls != 2 {
		t.Fatalf("expected a probe per distinct path, got %d", base.calls)
	}
}

func TestCachingProberDoesNotCacheFailures(t *testing.T) {
	base := &countingProber{err: errors.New("boom")}
	cache := NewCachingProber(base, time.Minute)

	for range 2 {
		if _, err := cache.Probe(context.Background(), "/staging/a.mp4"); err == nil {
			t.Fatal("expected error")
		}
	}

	if base.calls != 2 {
		t.Fatalf("expected failures to bypass the cache, got %d calls", base.calls)
	}
}

func TestCachingProberNilBase(t *testing.T) {
	cache := NewCachingProber(nil, time.Minute)
	if _, err := cache.Probe(context.Background(), "/staging/a.mp4"); !errors.Is(err, ErrProberUnavailable) {
		t.Fatalf("expected ErrProberUnavailable, got %v", err)
	}
}

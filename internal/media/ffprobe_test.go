package media

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFFProbeProberParsesFormat(t *testing.T) {
	prober := NewFFProbeProber("ffprobe", time.Second)

	var gotBinary string
	var gotArgs []string
	prober.Run = func(_ context.Context, binary string, args ...string) ([]byte, error) {
		gotBinary = binary
		gotArgs = args
		return []byte(`{"format":{"duration":"12.480000","size":"1048576","format_name":"mov,mp4,m4a"}}`), nil
	}

	probe, err := prober.Probe(context.Background(), "/staging/a.mp4")
	if err != nil {
		t.Fatalf("probe: %v", err)
	}

	if probe.Duration != 12.48 {
		t.Fatalf("expected duration 12.48, got %v", probe.Duration)
	}
	if probe.Size != 1048576 {
		t.Fatalf("expected size 1048576, got %d", probe.Size)
	}
	if probe.Format != "mov,mp4,m4a" {
		t.Fatalf("unexpected format %q", probe.Format)
	}

	if gotBinary != "ffprobe" {
		t.Fatalf("unexpected binary %q", gotBinary)
	}
	if len(gotArgs) == 0 || gotArgs[len(gotArgs)-1] != "/staging/a.mp4" {
		t.Fatalf("expected path as final argument, got %v", gotArgs)
	}
}

func TestFFProbeProberCommandFailure(t *testing.T) {
	prober := NewFFProbeProber("ffprobe", time.Second)
	prober.Run = func(context.Context, string, ...string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	}

	if _, err := prober.Probe(context.Background(), "/staging/a.mp4"); err == nil {
		t.Fatal("expected error from failing command")
	}
}

func TestFFProbeProberLeavesRunnerUntouched(t *testing.T) {
	prober := NewFFProbeProber("ffprobe", time.Second)
	prober.Run = nil

	// Falls back to the default runner without writing it back to the
	// shared struct, which may be probed from several workers at once.
	_, _ = prober.Probe(context.Background(), "/staging/missing.mp4")

	if prober.Run != nil {
		t.Fatal("expected Run to stay nil after Probe")
	}
}

func TestFFProbeProberRejectsBadDuration(t *testing.T) {
	prober := NewFFProbeProber("ffprobe", time.Second)
	prober.Run = func(context.Context, string, ...string) ([]byte, error) {
		return []byte(`{"format":{"duration":"N/A"}}`), nil
	}

	if _, err := prober.Probe(context.Background(), "/staging/a.mp4"); err == nil {
		t.Fatal("expected error for unparsable duration")
	}
}

func TestFFProbeProberDefaults(t *testing.T) {
	prober := NewFFProbeProber("  ", 0)
	if prober.Binary != "ffprobe" {
		t.Fatalf("expected default binary, got %q", prober.Binary)
	}
	if prober.Timeout <= 0 {
		t.Fatalf("expected positive default timeout, got %v", prober.Timeout)
	}
}

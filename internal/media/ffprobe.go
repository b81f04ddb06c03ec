package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// CommandRunner executes external commands and returns stdout bytes.
type CommandRunner func(ctx context.Context, binary string, args ...string) ([]byte, error)

// FFProbeProber extracts media details using the ffprobe CLI tool.
type FFProbeProber struct {
	Binary  string
	Args    []string
	Run     CommandRunner
	Timeout time.Duration
}

// NewFFProbeProber constructs a Prober that shells out to ffprobe.
func NewFFProbeProber(binary string, timeout time.Duration) *FFProbeProber {
	if strings.TrimSpace(binary) == "" {
		binary = "ffprobe"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &FFProbeProber{
		Binary:  binary,
		Args:    []string{"-v", "error", "-print_format", "json", "-show_format"},
		Run:     defaultCommandRunner,
		Timeout: timeout,
	}
}

// Probe executes ffprobe against the provided path and parses the JSON response.
func (p *FFProbeProber) Probe(ctx context.Context, path string) (Probe, error) {
	if p == nil {
		return Probe{}, ErrProberUnavailable
	}
	run := p.Run
	if run == nil {
		run = defaultCommandRunner
	}

	execCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	args := append([]string{}, p.Args...)
	args = append(args, path)

	out, err := run(execCtx, p.Binary, args...)
	if err != nil {
		return Probe{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	var payload struct {
		Format struct {
			Duration   string `json:"duration"`
			Size       string `json:"size"`
			FormatName string `json:"format_name"`
		} `json:"format"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		return Probe{}, fmt.Errorf("parse ffprobe response: %w", err)
	}

	duration, err := strconv.ParseFloat(payload.Format.Duration, 64)
	if err != nil {
		return Probe{}, fmt.Errorf("parse ffprobe duration %q: %w", payload.Format.Duration, err)
	}

	probe := Probe{
		Duration: duration,
		Format:   payload.Format.FormatName,
	}
	if payload.Format.Size != "" {
		if size, err := strconv.ParseInt(payload.Format.Size, 10, 64); err == nil {
			probe.Size = size
		}
	}

	return probe, nil
}

func defaultCommandRunner(ctx context.Context, binary string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	return cmd.Output()
}

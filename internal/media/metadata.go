package media

import "context"

// Probe captures the technical details extracted from an uploaded media file.
type Probe struct {
	Duration float64
	Format   string
	Size     int64
}

// Prober inspects a staged media file on local disk.
type Prober interface {
	Probe(ctx context.Context, path string) (Probe, error)
}

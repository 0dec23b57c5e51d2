// Package file collects facility snapshots from a local JSON or YAML file
package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"facilities/internal/adapters/collector"
	"facilities/internal/core/facility"
	perr "facilities/internal/platform/errors"
)

// Collector rereads the file on every Collect, so edits show up on the next cycle
type Collector struct {
	path string
}

// New returns a Collector for path
func New(path string) *Collector { return &Collector{path: path} }

// Collect implements domain.Collector
func (c *Collector) Collect(ctx context.Context) ([]facility.Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Load(c.path)
}

// Load decodes a snapshot file; .yaml and .yml are read as YAML, anything else as JSON
func Load(path string) ([]facility.Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "open snapshot %s", path)
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return collector.DecodeYAML(f)
	default:
		return collector.DecodeJSON(f)
	}
}

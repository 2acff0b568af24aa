// Package writer applies a compiled zone set to its destination.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skrail/dnstree/zonegen"
)

// Applier applies a compiled zone set to some destination.
type Applier interface {
	Apply(zones []zonegen.Zone) error
}

// Suffix is appended to zone file names so stale output can be pruned
// without touching unrelated files.
const Suffix = ".zone"

// Dir applies zones to an output directory, mirroring the zone set: one
// file per zone, and files for zones that no longer exist are removed.
type Dir struct {
	Path string
}

// Apply writes every zone's rendered text and prunes stale zone files.
func (d Dir) Apply(zones []zonegen.Zone) error {
	if err := os.MkdirAll(d.Path, 0o755); err != nil {
		return err
	}
	keep := make(map[string]bool, len(zones))
	for _, zone := range zones {
		name := zone.Filename() + Suffix
		keep[name] = true
		if err := os.WriteFile(filepath.Join(d.Path, name), []byte(zone.Render()), 0o644); err != nil {
			return fmt.Errorf("write zone %s: %w", zone.Name, err)
		}
	}
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Suffix) || keep[entry.Name()] {
			continue
		}
		if err := os.Remove(filepath.Join(d.Path, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Package seed serves the static billing-entry dataset the demo deployment
// runs on. Entries reset from this dataset on every process start; paid
// state is reconstructed from the payment ledger by replay.
package seed

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"payables-tracker/internal/core"
)

//go:embed entries.json
var dataFS embed.FS

// Source is a core.EntrySource over the embedded dataset. Delay simulates
// network latency per fetch; zero disables it.
type Source struct {
	Delay   time.Duration
	entries []core.SeedEntry
}

// New parses the embedded dataset.
func New(delay time.Duration) (*Source, error) {
	raw, err := dataFS.ReadFile("entries.json")
	if err != nil {
		return nil, fmt.Errorf("read seed dataset: %w", err)
	}
	var entries []core.SeedEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse seed dataset: %w", err)
	}
	return &Source{Delay: delay, entries: entries}, nil
}

// FetchPeriod returns the seed entries belonging to class in (year, month).
func (s *Source) FetchPeriod(ctx context.Context, class core.VendorClass, year, month int) ([]core.SeedEntry, error) {
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	var out []core.SeedEntry
	for _, e := range s.entries {
		if e.Year == year && e.Month == month && class.Owns(e.VendorCode) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Package usage attributes page visits to tracked bookmarks and maintains the
// usage table that the reordering engine ranks by.
package usage

import (
	"context"
	"errors"
	"maps"
	"slices"

	"github.com/papercomputeco/marksort/pkg/kv"
)

// StatsKey is the kv key holding the usage table.
const StatsKey = "stats"

// Table maps a leaf identity to the number of visits attributed to it.
// A missing identity has a count of zero.
type Table map[string]int64

// Count returns the usage count for identity.
func (t Table) Count(identity string) int64 {
	return t[identity]
}

// Clone returns a copy of the table that is safe to read while the original
// keeps changing.
func (t Table) Clone() Table {
	if t == nil {
		return Table{}
	}
	return maps.Clone(t)
}

// Entry is a single identity and its count.
type Entry struct {
	Identity string `json:"identity"`
	Count    int64  `json:"count"`
}

// Top returns the table entries sorted by count descending, then identity.
// A limit of zero or less returns every entry.
func (t Table) Top(limit int) []Entry {
	entries := make([]Entry, 0, len(t))
	for identity, count := range t {
		entries = append(entries, Entry{Identity: identity, Count: count})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		if a.Count != b.Count {
			if a.Count > b.Count {
				return -1
			}
			return 1
		}
		if a.Identity < b.Identity {
			return -1
		}
		if a.Identity > b.Identity {
			return 1
		}
		return 0
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries
}

// LoadTable reads the usage table from d. A store without a stats entry
// yields an empty table.
func LoadTable(ctx context.Context, d kv.Driver) (Table, error) {
	table := Table{}

	err := kv.GetOne(ctx, d, StatsKey, &table)
	if err != nil {
		var nf kv.NotFoundError
		if errors.As(err, &nf) {
			return Table{}, nil
		}
		return nil, err
	}

	if table == nil {
		table = Table{}
	}

	return table, nil
}

// SaveTable writes the usage table to d.
func SaveTable(ctx context.Context, d kv.Driver, t Table) error {
	return kv.SetOne(ctx, d, StatsKey, t)
}

// Package visit defines the page-visit events that drive usage attribution
// and the sources that produce them.
package visit

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// ErrEmptyURL is returned when a visit payload carries no URL.
var ErrEmptyURL = errors.New("visit has no url")

// Visit is a single completed page load.
type Visit struct {
	URL       string    `json:"url"`
	VisitedAt time.Time `json:"visited_at,omitempty"`

	// Source names where the visit came from (api, cli, kafka, logtail).
	Source string `json:"source,omitempty"`
}

// Handler receives visits from a Source. It must not block for long.
type Handler func(Visit)

// Source produces visits until its context is done.
type Source interface {
	// Run delivers visits to h until ctx is done or the source fails.
	Run(ctx context.Context, h Handler) error

	// Close releases any resources held by the source.
	Close() error
}

// Parse decodes a visit payload. A JSON object with a "url" field is
// accepted, as is a bare URL line. A missing timestamp is set to now.
func Parse(data []byte, source string) (Visit, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return Visit{}, ErrEmptyURL
	}

	var v Visit
	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
			return Visit{}, err
		}
	} else {
		v.URL = trimmed
	}

	if strings.TrimSpace(v.URL) == "" {
		return Visit{}, ErrEmptyURL
	}
	if v.VisitedAt.IsZero() {
		v.VisitedAt = time.Now().UTC()
	}
	if v.Source == "" {
		v.Source = source
	}

	return v, nil
}

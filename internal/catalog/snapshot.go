// Package catalog keeps a process-wide snapshot of the class list for the
// landing page. Every visit triggers a full refetch; the snapshot is replaced
// wholesale, never patched. Overlapping refetches are resolved
// through a generation guard so a slow old response cannot overwrite a newer
// one.
package catalog

import (
	"context"

	"onna/internal/api"
	"onna/internal/fetch"
	"onna/internal/models"
)

// Snapshot caches the most recent successfully fetched class list.
type Snapshot struct {
	client api.Client
	latest fetch.Latest[[]models.Class]
}

// NewSnapshot creates a snapshot backed by client.
func NewSnapshot(client api.Client) *Snapshot {
	return &Snapshot{client: client}
}

// Refresh refetches the catalog for one category (empty means all) and
// returns the fetched list to the caller. The shared snapshot is updated only
// when no newer refresh was issued in the meantime; fetch failures leave the
// snapshot untouched and are returned to the caller for page-level reporting.
func (s *Snapshot) Refresh(ctx context.Context, category string) ([]models.Class, error) {
	gen := s.latest.Begin()

	classes, err := s.client.ListClasses(ctx, "", category)
	if err != nil {
		return nil, err
	}

	s.latest.Commit(gen, classes)
	return classes, nil
}

// Current returns the newest committed class list. The second return is false
// until a first refresh has succeeded.
func (s *Snapshot) Current() ([]models.Class, bool) {
	return s.latest.Value()
}

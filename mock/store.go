package mock

import (
	"context"

	"github.com/speclib/isfdb"
)

var _ isfdb.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is a mock implementation of isfdb.SnapshotStore.
type SnapshotStore struct {
	LoadSnapshotFn func(ctx context.Context) (map[string]map[string]string, error)
	SaveSnapshotFn func(ctx context.Context, snapshot map[string]map[string]string) error
}

func (s *SnapshotStore) LoadSnapshot(ctx context.Context) (map[string]map[string]string, error) {
	return s.LoadSnapshotFn(ctx)
}

func (s *SnapshotStore) SaveSnapshot(ctx context.Context, snapshot map[string]map[string]string) error {
	return s.SaveSnapshotFn(ctx, snapshot)
}

var _ isfdb.PublicationLookup = (*PublicationLookup)(nil)

// PublicationLookup is a mock implementation of isfdb.PublicationLookup.
type PublicationLookup struct {
	LookupISBNFn func(ctx context.Context, isbn string) ([]isfdb.APIPublication, error)
}

func (l *PublicationLookup) LookupISBN(ctx context.Context, isbn string) ([]isfdb.APIPublication, error) {
	return l.LookupISBNFn(ctx, isbn)
}

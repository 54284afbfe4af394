// Package storage archives encoded venue collections in a pebble database,
// keyed by KSUID so that snapshots sort by creation time.
package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// ErrSnapshotNotFound is returned when no snapshot has the requested id
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotInfo describes an archived snapshot
type SnapshotInfo struct {
	ID        ksuid.KSUID `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Size      int         `json:"size"`
}

// SnapshotStorage is a pebble-backed snapshot archive
type SnapshotStorage struct {
	db *pebble.DB
}

// NewSnapshotStorage opens (or creates) the archive at path
func NewSnapshotStorage(path string) (*SnapshotStorage, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot archive: %w", err)
	}
	return &SnapshotStorage{db: db}, nil
}

// Create stores data under a new KSUID
func (s *SnapshotStorage) Create(data []byte) (ksuid.KSUID, error) {
	id := ksuid.New()
	if err := s.db.Set(id.Bytes(), data, pebble.Sync); err != nil {
		return ksuid.Nil, err
	}
	return id, nil
}

// Read returns a copy of the snapshot data
func (s *SnapshotStorage) Read(id ksuid.KSUID) ([]byte, error) {
	data, closer, err := s.db.Get(id.Bytes())
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	return append([]byte(nil), data...), nil
}

// List returns every snapshot, oldest first
func (s *SnapshotStorage) List() ([]SnapshotInfo, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	infos := []SnapshotInfo{}
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			continue // not a snapshot key
		}
		infos = append(infos, SnapshotInfo{
			ID:        id,
			CreatedAt: id.Time(),
			Size:      len(iter.Value()),
		})
	}

	return infos, iter.Error()
}

// Delete removes a snapshot
func (s *SnapshotStorage) Delete(id ksuid.KSUID) error {
	return s.db.Delete(id.Bytes(), pebble.Sync)
}

// Close closes the underlying database
func (s *SnapshotStorage) Close() error {
	return s.db.Close()
}

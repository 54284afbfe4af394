package store

import (
	"fmt"

	"github.com/segmentio/ksuid"
	"github.com/sirupsen/logrus"
	"github.com/ssargent/venuedb/pkg/storage"
)

// Snapshot archives the encoded collection and returns its id
func (s *VenueStore) Snapshot() (ksuid.KSUID, error) {
	if !s.isOpen {
		return ksuid.Nil, ErrNotOpen
	}
	if s.snapshots == nil {
		return ksuid.Nil, ErrSnapshotsDisabled
	}

	data := s.checkpoint()
	id, err := s.snapshots.Create(data)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("failed to archive snapshot: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"snapshot": id.String(), "bytes": len(data)}).Info("snapshot created")
	return id, nil
}

// ListSnapshots returns the archived snapshots, oldest first
func (s *VenueStore) ListSnapshots() ([]storage.SnapshotInfo, error) {
	if !s.isOpen {
		return nil, ErrNotOpen
	}
	if s.snapshots == nil {
		return nil, ErrSnapshotsDisabled
	}
	return s.snapshots.List()
}

// RestoreSnapshot replaces the collection with an archived one and
// persists it. A snapshot that fails to decode changes nothing.
func (s *VenueStore) RestoreSnapshot(id ksuid.KSUID) (*LoadResult, error) {
	if !s.isOpen {
		return nil, ErrNotOpen
	}
	if s.snapshots == nil {
		return nil, ErrSnapshotsDisabled
	}

	data, err := s.snapshots.Read(id)
	if err != nil {
		return nil, err
	}
	venues, err := decodeVenues(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", id, err)
	}

	checkpoint := s.checkpoint()
	s.install(venues)
	if err := s.commit(checkpoint, "restore_snapshot", logrus.Fields{"snapshot": id.String()}); err != nil {
		return nil, err
	}

	result := &LoadResult{Venues: len(venues), Bytes: int64(len(data))}
	for _, v := range venues {
		result.Seats += len(v.Seats)
	}
	return result, nil
}

package storage

import (
	"path/filepath"
	"testing"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStorage(t *testing.T) *SnapshotStorage {
	t.Helper()
	s, err := NewSnapshotStorage(filepath.Join(t.TempDir(), "snapshots"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSnapshotStorage_CreateReadDelete(t *testing.T) {
	s := openStorage(t)

	id, err := s.Create([]byte("venues-v1"))
	require.NoError(t, err)
	assert.NotEqual(t, ksuid.Nil, id)

	data, err := s.Read(id)
	require.NoError(t, err)
	assert.Equal(t, []byte("venues-v1"), data)

	require.NoError(t, s.Delete(id))
	_, err = s.Read(id)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSnapshotStorage_List(t *testing.T) {
	s := openStorage(t)

	infos, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, infos)

	first, err := s.Create([]byte("a"))
	require.NoError(t, err)
	second, err := s.Create([]byte("bcd"))
	require.NoError(t, err)

	infos, err = s.List()
	require.NoError(t, err)
	require.Len(t, infos, 2)

	byID := map[ksuid.KSUID]SnapshotInfo{}
	for _, info := range infos {
		byID[info.ID] = info
	}
	assert.Equal(t, 1, byID[first].Size)
	assert.Equal(t, 3, byID[second].Size)
	assert.False(t, byID[first].CreatedAt.IsZero())
}

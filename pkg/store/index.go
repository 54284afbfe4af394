package store

import (
	"math"

	"github.com/ssargent/venuedb/pkg/bptree"
	"github.com/ssargent/venuedb/pkg/venue"
)

const capacityIndexOrder = 32

// capacityIndex orders venue ids by capacity. Keys pack the capacity in
// the high 32 bits and the venue id in the low 32 bits so equal capacities
// stay distinct and sort by id.
type capacityIndex struct {
	tree *bptree.BPlusTree[int64, int32]
}

func newCapacityIndex(venues []*venue.Venue) *capacityIndex {
	idx := &capacityIndex{tree: bptree.NewBPlusTree[int64, int32](capacityIndexOrder)}
	for _, v := range venues {
		idx.add(v.Capacity, v.ID)
	}
	return idx
}

func capacityKey(capacity, id int32) int64 {
	return int64(capacity)<<32 | int64(uint32(id))
}

func (idx *capacityIndex) add(capacity, id int32) {
	idx.tree.Insert(capacityKey(capacity, id), id)
}

func (idx *capacityIndex) remove(capacity, id int32) {
	idx.tree.Delete(capacityKey(capacity, id))
}

// between returns the ids of venues with min <= capacity <= max
func (idx *capacityIndex) between(min, max int32) []int32 {
	ids := []int32{}
	idx.tree.Range(capacityKey(min, 0), int64(max)<<32|math.MaxUint32, func(_ int64, id int32) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

// atLeast returns the ids of venues with capacity >= min
func (idx *capacityIndex) atLeast(min int32) []int32 {
	ids := []int32{}
	idx.tree.Ascend(capacityKey(min, 0), func(_ int64, id int32) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

func (idx *capacityIndex) len() int {
	return idx.tree.Len()
}

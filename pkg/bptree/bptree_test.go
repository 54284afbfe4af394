package bptree_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/ssargent/venuedb/pkg/bptree"
)

func TestBPlusTree_InsertAndSearch(t *testing.T) {
	tests := map[string]struct {
		inserts  [][2]int
		searches []struct {
			key      int
			expected int
			found    bool
		}
	}{
		"insert and search": {
			inserts: [][2]int{{1, 10}, {2, 20}, {3, 30}, {4, 40}, {5, 50}},
			searches: []struct {
				key      int
				expected int
				found    bool
			}{
				{1, 10, true},
				{3, 30, true},
				{5, 50, true},
				{6, 0, false},
			},
		},
		"duplicate key replaces value": {
			inserts: [][2]int{{1, 10}, {1, 11}},
			searches: []struct {
				key      int
				expected int
				found    bool
			}{
				{1, 11, true},
			},
		},
		"empty tree": {
			searches: []struct {
				key      int
				expected int
				found    bool
			}{
				{1, 0, false},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tree := bptree.NewBPlusTree[int, int](4)
			for _, kv := range tt.inserts {
				tree.Insert(kv[0], kv[1])
			}
			for _, search := range tt.searches {
				value, found := tree.Search(search.key)
				if found != search.found || value != search.expected {
					t.Errorf("Search(%d) = %v, %v; want %v, %v", search.key, value, found, search.expected, search.found)
				}
			}
		})
	}
}

func TestBPlusTree_ManyKeysSplit(t *testing.T) {
	tree := bptree.NewBPlusTree[int32, int32](3)

	keys := rand.New(rand.NewSource(7)).Perm(500)
	for _, k := range keys {
		tree.Insert(int32(k), int32(k*2))
	}

	if tree.Len() != 500 {
		t.Fatalf("Len = %d, want 500", tree.Len())
	}
	if tree.Height() < 3 {
		t.Errorf("expected the tree to grow past 2 levels, height %d", tree.Height())
	}
	for k := int32(0); k < 500; k++ {
		v, ok := tree.Search(k)
		if !ok || v != k*2 {
			t.Fatalf("Search(%d) = %d, %v", k, v, ok)
		}
	}
}

func TestBPlusTree_Range(t *testing.T) {
	tree := bptree.NewBPlusTree[int32, string](4)
	for _, k := range []int32{50, 10, 40, 20, 30, 60, 70, 5} {
		tree.Insert(k, "v")
	}

	collect := func(start, end int32) []int32 {
		var out []int32
		tree.Range(start, end, func(k int32, _ string) bool {
			out = append(out, k)
			return true
		})
		return out
	}

	got := collect(15, 60)
	want := []int32{20, 30, 40, 50, 60}
	if len(got) != len(want) {
		t.Fatalf("Range(15,60) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Range(15,60) = %v, want %v", got, want)
		}
	}

	if got := collect(61, 69); len(got) != 0 {
		t.Errorf("Range(61,69) = %v, want empty", got)
	}
	if got := collect(60, 10); len(got) != 0 {
		t.Errorf("inverted range returned %v", got)
	}

	var first []int32
	tree.Ascend(25, func(k int32, _ string) bool {
		first = append(first, k)
		return len(first) < 2
	})
	if len(first) != 2 || first[0] != 30 || first[1] != 40 {
		t.Errorf("Ascend(25) with early stop = %v", first)
	}
}

func TestBPlusTree_Delete(t *testing.T) {
	tree := bptree.NewBPlusTree[int, string](3)
	for i := 0; i < 50; i++ {
		tree.Insert(i, "v")
	}

	for i := 0; i < 50; i += 2 {
		if !tree.Delete(i) {
			t.Fatalf("Delete(%d) reported missing key", i)
		}
	}
	if tree.Delete(0) {
		t.Error("second Delete(0) should report false")
	}
	if tree.Len() != 25 {
		t.Fatalf("Len = %d, want 25", tree.Len())
	}

	var keys []int
	tree.Range(0, 100, func(k int, _ string) bool {
		keys = append(keys, k)
		return true
	})
	if !sort.IntsAreSorted(keys) || len(keys) != 25 {
		t.Fatalf("remaining keys = %v", keys)
	}
	for _, k := range keys {
		if k%2 == 0 {
			t.Errorf("deleted key %d still present", k)
		}
	}

	tree.Insert(4, "back")
	if v, ok := tree.Search(4); !ok || v != "back" {
		t.Errorf("re-inserted key = %q, %v", v, ok)
	}
}

// Package bptree implements an in-memory B+Tree with ordered range scans.
// A tree is not safe for concurrent use.
package bptree

import "cmp"

// DefaultOrder is the fallback branching factor if a user-supplied order is too small.
const DefaultOrder = 4

// findChildIndex determines which child pointer to follow in an internal node.
func findChildIndex[K cmp.Ordered](keys []K, searchKey K) int {
	for i, k := range keys {
		if cmp.Less(searchKey, k) {
			return i
		}
	}
	return len(keys)
}

// BPlusTree maps ordered keys to values. Leaves are linked for range scans.
type BPlusTree[K cmp.Ordered, V any] struct {
	root   *node[K, V]
	order  int
	height int
	size   int
}

// node represents both internal and leaf nodes in the B+Tree.
type node[K cmp.Ordered, V any] struct {
	isLeaf   bool
	keys     []K
	children []*node[K, V] // used if !isLeaf
	values   []V           // used if isLeaf
	parent   *node[K, V]
	next     *node[K, V] // leaf-link pointer, for range scans
}

// NewBPlusTree creates and returns a B+Tree with the given order.
// If the specified order < 3, we fall back to DefaultOrder.
func NewBPlusTree[K cmp.Ordered, V any](order int) *BPlusTree[K, V] {
	if order < 3 {
		order = DefaultOrder
	}
	return &BPlusTree[K, V]{
		root:   newLeaf[K, V](order),
		order:  order,
		height: 1,
	}
}

func newLeaf[K cmp.Ordered, V any](order int) *node[K, V] {
	return &node[K, V]{
		isLeaf: true,
		keys:   make([]K, 0, order+1),
		values: make([]V, 0, order+1),
	}
}

// Height returns the number of levels in the tree
func (tree *BPlusTree[K, V]) Height() int {
	return tree.height
}

// Len returns the number of keys stored
func (tree *BPlusTree[K, V]) Len() int {
	return tree.size
}

// findLeaf descends to the leaf that would hold key
func (tree *BPlusTree[K, V]) findLeaf(key K) *node[K, V] {
	current := tree.root
	for !current.isLeaf {
		current = current.children[findChildIndex(current.keys, key)]
	}
	return current
}

// Search locates the value associated with key
func (tree *BPlusTree[K, V]) Search(key K) (V, bool) {
	leaf := tree.findLeaf(key)
	for i, k := range leaf.keys {
		if k == key {
			return leaf.values[i], true
		}
	}
	var zero V
	return zero, false
}

// Insert adds a (key, value) pair, replacing the value of an existing key
func (tree *BPlusTree[K, V]) Insert(key K, value V) {
	leaf := tree.findLeaf(key)
	if tree.insertKeyValueInLeaf(leaf, key, value) && len(leaf.keys) > tree.order {
		tree.splitLeaf(leaf)
	}
}

// insertKeyValueInLeaf reports whether a new key was added
func (tree *BPlusTree[K, V]) insertKeyValueInLeaf(leaf *node[K, V], key K, value V) bool {
	idx := 0
	for idx < len(leaf.keys) && cmp.Less(leaf.keys[idx], key) {
		idx++
	}
	if idx < len(leaf.keys) && leaf.keys[idx] == key {
		leaf.values[idx] = value
		return false
	}

	var zeroV V
	leaf.keys = append(leaf.keys, key)
	leaf.values = append(leaf.values, zeroV)
	copy(leaf.keys[idx+1:], leaf.keys[idx:])
	copy(leaf.values[idx+1:], leaf.values[idx:])
	leaf.keys[idx] = key
	leaf.values[idx] = value

	tree.size++
	return true
}

// Delete removes key from the tree. Leaves are not merged; separators in
// internal nodes stay valid because they only bound the key ranges.
func (tree *BPlusTree[K, V]) Delete(key K) bool {
	leaf := tree.findLeaf(key)
	for i, k := range leaf.keys {
		if k == key {
			leaf.keys = append(leaf.keys[:i], leaf.keys[i+1:]...)
			leaf.values = append(leaf.values[:i], leaf.values[i+1:]...)
			tree.size--
			return true
		}
	}
	return false
}

// Range calls fn for each key in [start, end] in ascending order until fn
// returns false.
func (tree *BPlusTree[K, V]) Range(start, end K, fn func(key K, value V) bool) {
	if cmp.Less(end, start) {
		return
	}
	for leaf := tree.findLeaf(start); leaf != nil; leaf = leaf.next {
		for i, k := range leaf.keys {
			if cmp.Less(k, start) {
				continue
			}
			if cmp.Less(end, k) {
				return
			}
			if !fn(k, leaf.values[i]) {
				return
			}
		}
	}
}

// Ascend calls fn for every key from start upward until fn returns false
func (tree *BPlusTree[K, V]) Ascend(start K, fn func(key K, value V) bool) {
	for leaf := tree.findLeaf(start); leaf != nil; leaf = leaf.next {
		for i, k := range leaf.keys {
			if cmp.Less(k, start) {
				continue
			}
			if !fn(k, leaf.values[i]) {
				return
			}
		}
	}
}

// splitLeaf handles splitting a leaf node that has overflowed.
func (tree *BPlusTree[K, V]) splitLeaf(leaf *node[K, V]) {
	mid := len(leaf.keys) / 2

	sibling := &node[K, V]{
		isLeaf: true,
		keys:   append([]K{}, leaf.keys[mid:]...),
		values: append([]V{}, leaf.values[mid:]...),
		next:   leaf.next,
		parent: leaf.parent,
	}

	leaf.keys = leaf.keys[:mid]
	leaf.values = leaf.values[:mid]
	leaf.next = sibling

	if leaf.parent == nil {
		tree.growRoot(leaf, sibling.keys[0], sibling)
		return
	}

	tree.insertKeyInParent(leaf.parent, sibling.keys[0], sibling)
}

// growRoot puts a new root above left and right
func (tree *BPlusTree[K, V]) growRoot(left *node[K, V], key K, right *node[K, V]) {
	root := &node[K, V]{
		keys:     []K{key},
		children: []*node[K, V]{left, right},
	}
	left.parent = root
	right.parent = root
	tree.root = root
	tree.height++
}

// insertKeyInParent inserts key and links rightChild in the parent.
func (tree *BPlusTree[K, V]) insertKeyInParent(parent *node[K, V], key K, rightChild *node[K, V]) {
	idx := 0
	for idx < len(parent.keys) && cmp.Less(parent.keys[idx], key) {
		idx++
	}

	parent.keys = append(parent.keys, key)
	copy(parent.keys[idx+1:], parent.keys[idx:])
	parent.keys[idx] = key

	parent.children = append(parent.children, rightChild)
	copy(parent.children[idx+2:], parent.children[idx+1:])
	parent.children[idx+1] = rightChild

	rightChild.parent = parent

	if len(parent.keys) > tree.order {
		tree.splitInternalNode(parent)
	}
}

// splitInternalNode handles splitting an internal node that has overflowed.
func (tree *BPlusTree[K, V]) splitInternalNode(internal *node[K, V]) {
	mid := len(internal.keys) / 2
	splitKey := internal.keys[mid]

	sibling := &node[K, V]{
		keys:     append([]K{}, internal.keys[mid+1:]...),
		children: append([]*node[K, V]{}, internal.children[mid+1:]...),
		parent:   internal.parent,
	}
	for _, child := range sibling.children {
		child.parent = sibling
	}

	internal.keys = internal.keys[:mid]
	internal.children = internal.children[:mid+1]

	if internal.parent == nil {
		tree.growRoot(internal, splitKey, sibling)
		return
	}

	tree.insertKeyInParent(internal.parent, splitKey, sibling)
}

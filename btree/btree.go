// Package btree implements an in-memory ordered map backed by a B-tree.
//
// Every node other than the root holds between degree-1 and 2*degree-1
// entries, and all leaves sit at the same depth. Keys are ordered by a
// comparison function supplied at construction, so any totally ordered key
// type can be used.
//
// A BTreeMap is not safe for concurrent use. Callers that share one between
// goroutines must guard every call with their own lock, and must not mutate
// the map while an Iterator over it is in use.
package btree

import (
	"cmp"
	"slices"
)

// Minimum degree used by NewTree and NewTreeFunc.
const DEFAULT_DEGREE = 16

// Smallest degree that still gives a valid B-tree (a 2-3-4 tree).
const MIN_DEGREE = 2

type entry[K, V any] struct {
	key   K
	value V
}

// A node is a leaf when it has no children. Internal nodes always hold
// len(entries)+1 children.
type node[K, V any] struct {
	entries  []entry[K, V]
	children []*node[K, V]
}

// One step of a root-to-node path: the node and the index of the child
// (or entry) the descent went through.
type pathFrame[K, V any] struct {
	node *node[K, V]
	idx  int
}

type BTreeMap[K, V any] struct {
	root    *node[K, V]
	degree  int
	length  int
	height  int
	compare func(a, b K) int

	// Bumped by every mutation so live iterators can notice.
	version uint64
}

// NewTree returns an empty map ordered by the natural order of K.
func NewTree[K cmp.Ordered, V any]() *BTreeMap[K, V] {
	return newTree[K, V](DEFAULT_DEGREE, cmp.Compare[K])
}

// NewTreeFunc returns an empty map ordered by compare, which must return a
// negative number when a < b, zero when a == b and a positive number when a > b.
func NewTreeFunc[K, V any](compare func(a, b K) int) *BTreeMap[K, V] {
	if compare == nil {
		panic(NIL_COMPARE_ERROR)
	}

	return newTree[K, V](DEFAULT_DEGREE, compare)
}

// NewTreeWithDegree returns an empty map with the given minimum degree.
func NewTreeWithDegree[K, V any](degree int, compare func(a, b K) int) (*BTreeMap[K, V], error) {
	if degree < MIN_DEGREE {
		return nil, INVALID_DEGREE_ERROR
	}

	if compare == nil {
		return nil, NIL_COMPARE_ERROR
	}

	return newTree[K, V](degree, compare), nil
}

func newTree[K, V any](degree int, compare func(a, b K) int) *BTreeMap[K, V] {
	return &BTreeMap[K, V]{
		root:    makeNode[K, V](),
		degree:  degree,
		compare: compare,
	}
}

func (t *BTreeMap[K, V]) Len() int { return t.length }

func (t *BTreeMap[K, V]) IsEmpty() bool { return t.length == 0 }

// Height is the number of edges from the root to any leaf.
func (t *BTreeMap[K, V]) Height() int { return t.height }

func (t *BTreeMap[K, V]) Degree() int { return t.degree }

func (t *BTreeMap[K, V]) maxEntries() int { return 2*t.degree - 1 }

func (t *BTreeMap[K, V]) minEntries() int { return t.degree - 1 }

// Find returns the value stored under key.
func (t *BTreeMap[K, V]) Find(key K) (V, bool) {
	n := t.root
	for {
		idx, found := t.search(n, key)
		if found {
			return n.entries[idx].value, true
		}

		if n.isLeaf() {
			var zero V
			return zero, false
		}

		n = n.children[idx]
	}
}

func (t *BTreeMap[K, V]) Contains(key K) bool {
	_, ok := t.Find(key)
	return ok
}

// Update overwrites the value of an existing key. It reports false and
// leaves the tree untouched if key is absent.
func (t *BTreeMap[K, V]) Update(key K, value V) bool {
	n := t.root
	for {
		idx, found := t.search(n, key)
		if found {
			n.entries[idx].value = value
			t.version++
			return true
		}

		if n.isLeaf() {
			return false
		}

		n = n.children[idx]
	}
}

// Insert stores value under key. If key was already present its value is
// replaced in place and the previous value is returned with replaced set.
func (t *BTreeMap[K, V]) Insert(key K, value V) (old V, replaced bool) {
	var stack [16]pathFrame[K, V]
	path := stack[:0]

	n := t.root
	for {
		idx, found := t.search(n, key)
		if found {
			old = n.entries[idx].value
			n.entries[idx].value = value
			t.version++
			return old, true
		}

		if n.isLeaf() {
			n.insertEntryAt(idx, entry[K, V]{key: key, value: value})
			break
		}

		path = append(path, pathFrame[K, V]{node: n, idx: idx})
		n = n.children[idx]
	}

	t.length++
	t.version++

	// A node overflows once it reaches 2*degree entries. Splitting it pushes
	// one entry into the parent, which may overflow in turn.
	for len(n.entries) > t.maxEntries() {
		median, sibling := n.split(t.degree)
		if len(path) == 0 {
			t.root = &node[K, V]{
				entries:  []entry[K, V]{median},
				children: []*node[K, V]{n, sibling},
			}
			t.height++
			break
		}

		parent := path[len(path)-1]
		path = path[:len(path)-1]

		parent.node.insertEntryAt(parent.idx, median)
		parent.node.insertChildAt(parent.idx+1, sibling)
		n = parent.node
	}

	return old, false
}

// Delete removes key and returns its value. It reports false and makes no
// change if key is absent.
func (t *BTreeMap[K, V]) Delete(key K) (V, bool) {
	var stack [16]pathFrame[K, V]
	path := stack[:0]

	n := t.root
	var idx int
	for {
		var found bool
		idx, found = t.search(n, key)
		if found {
			break
		}

		if n.isLeaf() {
			var zero V
			return zero, false
		}

		path = append(path, pathFrame[K, V]{node: n, idx: idx})
		n = n.children[idx]
	}

	removed := n.entries[idx].value
	if n.isLeaf() {
		n.removeEntryAt(idx)
	} else {
		// Replace the entry with its predecessor, the last entry of the
		// rightmost leaf of the left subtree, and continue from that leaf.
		path = append(path, pathFrame[K, V]{node: n, idx: idx})
		leaf := n.children[idx]
		for !leaf.isLeaf() {
			last := len(leaf.children) - 1
			path = append(path, pathFrame[K, V]{node: leaf, idx: last})
			leaf = leaf.children[last]
		}

		n.entries[idx] = leaf.removeEntryAt(len(leaf.entries) - 1)
		n = leaf
	}

	t.length--
	t.version++
	t.rebalance(path, n)

	return removed, true
}

// rebalance walks path bottom-up fixing underflowing nodes, starting at
// n, which is the child of the last path frame.
func (t *BTreeMap[K, V]) rebalance(path []pathFrame[K, V], n *node[K, V]) {
	minEntries := t.minEntries()
	for len(path) > 0 && len(n.entries) < minEntries {
		frame := path[len(path)-1]
		path = path[:len(path)-1]

		parent, idx := frame.node, frame.idx
		if idx > 0 && len(parent.children[idx-1].entries) > minEntries {
			parent.rotateRight(idx)
			return
		}

		if idx < len(parent.children)-1 && len(parent.children[idx+1].entries) > minEntries {
			parent.rotateLeft(idx)
			return
		}

		if idx > 0 {
			parent.mergeChildren(idx - 1)
		} else {
			parent.mergeChildren(idx)
		}

		n = parent
	}

	if len(t.root.entries) == 0 && !t.root.isLeaf() {
		t.root = t.root.children[0]
		t.height--
	}
}

// Min returns the smallest key and its value.
func (t *BTreeMap[K, V]) Min() (key K, value V, ok bool) {
	if t.length == 0 {
		return key, value, false
	}

	n := t.root
	for !n.isLeaf() {
		n = n.children[0]
	}

	e := n.entries[0]
	return e.key, e.value, true
}

// Max returns the largest key and its value.
func (t *BTreeMap[K, V]) Max() (key K, value V, ok bool) {
	if t.length == 0 {
		return key, value, false
	}

	n := t.root
	for !n.isLeaf() {
		n = n.children[len(n.children)-1]
	}

	e := n.entries[len(n.entries)-1]
	return e.key, e.value, true
}

// Ascend calls fn for every entry in ascending key order until fn returns false.
func (t *BTreeMap[K, V]) Ascend(fn func(key K, value V) bool) {
	it := t.Iter()
	for it.Next() {
		if !fn(it.Key(), it.Value()) {
			return
		}
	}
}

// Clear removes all entries.
func (t *BTreeMap[K, V]) Clear() {
	t.root = makeNode[K, V]()
	t.length = 0
	t.height = 0
	t.version++
}

// search returns the position of key in node, or the index of the child
// whose range contains key when it is not there.
func (t *BTreeMap[K, V]) search(n *node[K, V], key K) (int, bool) {
	return slices.BinarySearchFunc(n.entries, key, func(e entry[K, V], k K) int {
		return t.compare(e.key, k)
	})
}

func makeNode[K, V any]() *node[K, V] {
	return &node[K, V]{}
}

func (n *node[K, V]) isLeaf() bool { return len(n.children) == 0 }

func (n *node[K, V]) insertEntryAt(idx int, e entry[K, V]) {
	n.entries = slices.Insert(n.entries, idx, e)
}

func (n *node[K, V]) insertChildAt(idx int, child *node[K, V]) {
	n.children = slices.Insert(n.children, idx, child)
}

func (n *node[K, V]) removeEntryAt(idx int) entry[K, V] {
	e := n.entries[idx]
	copy(n.entries[idx:], n.entries[idx+1:])
	// Clear the vacated slot so the value can be collected.
	n.entries[len(n.entries)-1] = entry[K, V]{}
	n.entries = n.entries[:len(n.entries)-1]

	return e
}

func (n *node[K, V]) removeChildAt(idx int) *node[K, V] {
	child := n.children[idx]
	copy(n.children[idx:], n.children[idx+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]

	return child
}

// split cuts an overflowing node at entry index degree. The entry there is
// returned for promotion, the entries after it move to the returned sibling.
func (n *node[K, V]) split(degree int) (entry[K, V], *node[K, V]) {
	median := n.entries[degree]

	sibling := makeNode[K, V]()
	sibling.entries = append(sibling.entries, n.entries[degree+1:]...)
	clear(n.entries[degree:])
	n.entries = n.entries[:degree]

	if !n.isLeaf() {
		sibling.children = append(sibling.children, n.children[degree+1:]...)
		clear(n.children[degree+1:])
		n.children = n.children[:degree+1]
	}

	return median, sibling
}

// rotateRight moves the last entry of children[idx-1] up into the parent and
// the separating parent entry down into the front of children[idx].
func (n *node[K, V]) rotateRight(idx int) {
	left, child := n.children[idx-1], n.children[idx]

	child.insertEntryAt(0, n.entries[idx-1])
	n.entries[idx-1] = left.removeEntryAt(len(left.entries) - 1)

	if !left.isLeaf() {
		child.insertChildAt(0, left.removeChildAt(len(left.children)-1))
	}
}

// rotateLeft moves the first entry of children[idx+1] up into the parent and
// the separating parent entry down onto the end of children[idx].
func (n *node[K, V]) rotateLeft(idx int) {
	child, right := n.children[idx], n.children[idx+1]

	child.entries = append(child.entries, n.entries[idx])
	n.entries[idx] = right.removeEntryAt(0)

	if !right.isLeaf() {
		child.children = append(child.children, right.removeChildAt(0))
	}
}

// mergeChildren folds children[idx+1] and the entry separating it from
// children[idx] into children[idx].
func (n *node[K, V]) mergeChildren(idx int) {
	left := n.children[idx]
	right := n.removeChildAt(idx + 1)

	left.entries = append(left.entries, n.removeEntryAt(idx))
	left.entries = append(left.entries, right.entries...)
	left.children = append(left.children, right.children...)
}

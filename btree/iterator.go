package btree

// Iterator walks a BTreeMap in ascending key order.
//
// It keeps the path from the root to the node it is currently reading, so
// it takes no snapshot of its own. Mutating the map invalidates it: the
// next call to Next returns false and Err reports INVALID_ITERATOR_ERROR.
// Reset starts over from the smallest key of the current map.
//
//	it := tree.Iter()
//	for it.Next() {
//		fmt.Println(it.Key(), it.Value())
//	}
type Iterator[K, V any] struct {
	tree    *BTreeMap[K, V]
	version uint64

	// For each frame, idx is the next entry of node to yield.
	stack []pathFrame[K, V]

	key   K
	value V
	err   error
}

// Iter returns an iterator positioned before the smallest key.
func (t *BTreeMap[K, V]) Iter() *Iterator[K, V] {
	it := &Iterator[K, V]{
		tree:  t,
		stack: make([]pathFrame[K, V], 0, t.height+1),
	}
	it.Reset()

	return it
}

// Reset rewinds the iterator to the smallest key, clearing any error.
func (it *Iterator[K, V]) Reset() {
	var zeroK K
	var zeroV V

	it.version = it.tree.version
	it.stack = it.stack[:0]
	it.key, it.value, it.err = zeroK, zeroV, nil
	it.pushLeft(it.tree.root)
}

// Next advances to the next entry and reports whether there was one.
func (it *Iterator[K, V]) Next() bool {
	if it.err != nil {
		return false
	}

	if it.version != it.tree.version {
		it.err = INVALID_ITERATOR_ERROR
		it.stack = it.stack[:0]
		return false
	}

	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.idx < len(top.node.entries) {
			e := top.node.entries[top.idx]
			top.idx++

			if !top.node.isLeaf() {
				it.pushLeft(top.node.children[top.idx])
			}

			it.key, it.value = e.key, e.value
			return true
		}

		it.stack = it.stack[:len(it.stack)-1]
	}

	return false
}

func (it *Iterator[K, V]) Key() K { return it.key }

func (it *Iterator[K, V]) Value() V { return it.value }

// Err is non-nil once the iterator was stopped by a mutation of its map.
func (it *Iterator[K, V]) Err() error { return it.err }

// pushLeft descends from n along first children down to a leaf.
func (it *Iterator[K, V]) pushLeft(n *node[K, V]) {
	for {
		it.stack = append(it.stack, pathFrame[K, V]{node: n})
		if n.isLeaf() {
			return
		}

		n = n.children[0]
	}
}

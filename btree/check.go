package btree

import (
	"fmt"
	"io"

	"tlog.app/go/errors"
)

// Check walks the whole tree and verifies its structure: keys ordered within
// and across nodes, node occupancy, child counts, leaf depth and the length
// counter. It returns nil for a valid tree.
func (t *BTreeMap[K, V]) Check() error {
	count, err := t.checkNode(t.root, 0, nil, nil)
	if err != nil {
		return err
	}

	if count != t.length {
		return errors.Wrap(SIZE_MISMATCH_ERROR, "counted %d, length %d", count, t.length)
	}

	return nil
}

// checkNode returns the number of entries below n. lo and hi are the
// separators bounding n in its parent, nil when unbounded.
func (t *BTreeMap[K, V]) checkNode(n *node[K, V], depth int, lo, hi *K) (int, error) {
	numEntries := len(n.entries)
	if n == t.root {
		if numEntries > t.maxEntries() || (numEntries == 0 && !n.isLeaf()) {
			return 0, errors.Wrap(NODE_OCCUPANCY_ERROR, "root holds %d entries", numEntries)
		}
	} else if numEntries < t.minEntries() || numEntries > t.maxEntries() {
		return 0, errors.Wrap(NODE_OCCUPANCY_ERROR, "node at depth %d holds %d entries", depth, numEntries)
	}

	for i := range n.entries {
		key := n.entries[i].key
		if i > 0 && t.compare(n.entries[i-1].key, key) >= 0 {
			return 0, errors.Wrap(UNORDERED_KEYS_ERROR, "depth %d, index %d", depth, i)
		}

		if (lo != nil && t.compare(*lo, key) >= 0) || (hi != nil && t.compare(key, *hi) >= 0) {
			return 0, errors.Wrap(KEY_RANGE_ERROR, "depth %d, index %d", depth, i)
		}
	}

	if n.isLeaf() {
		if depth != t.height {
			return 0, errors.Wrap(UNBALANCED_TREE_ERROR, "leaf at depth %d, height %d", depth, t.height)
		}

		return numEntries, nil
	}

	if len(n.children) != numEntries+1 {
		return 0, errors.Wrap(CHILD_COUNT_ERROR, "depth %d: %d entries, %d children", depth, numEntries, len(n.children))
	}

	count := numEntries
	for i, child := range n.children {
		childLo, childHi := lo, hi
		if i > 0 {
			childLo = &n.entries[i-1].key
		}
		if i < numEntries {
			childHi = &n.entries[i].key
		}

		c, err := t.checkNode(child, depth+1, childLo, childHi)
		if err != nil {
			return 0, err
		}

		count += c
	}

	return count, nil
}

// Fprint writes the keys of every node to w, one tree level per line.
func (t *BTreeMap[K, V]) Fprint(w io.Writer) error {
	if t.length == 0 {
		_, err := fmt.Fprintln(w, "Tree is empty")
		return err
	}

	queue := []*node[K, V]{t.root}
	for len(queue) > 0 {
		levelSize := len(queue)
		for i := 0; i < levelSize; i++ {
			n := queue[0]
			queue = queue[1:]

			keys := make([]K, len(n.entries))
			for j := range n.entries {
				keys[j] = n.entries[j].key
			}

			if _, err := fmt.Fprint(w, keys); err != nil {
				return err
			}

			queue = append(queue, n.children...)

			if i < levelSize-1 {
				if _, err := fmt.Fprint(w, ", "); err != nil {
					return err
				}
			}
		}

		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}

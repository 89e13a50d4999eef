package bench

import (
	"cmp"

	googleBTree "github.com/google/btree"

	"github.com/Aasim-A/btree/btree"
)

const (
	IMPL_BTREEMAP    = "btreemap"
	IMPL_GOOGLEBTREE = "google/btree"
)

// orderedMap is the surface the runner times. Implementations are built
// fresh for every size and workload.
type orderedMap interface {
	Insert(key, value uint64)
	Find(key uint64) (uint64, bool)
	Delete(key uint64) bool
	// Iterate visits every entry in ascending order and returns the count.
	Iterate() int
	Len() int
	Check() error
}

type treeMap struct {
	tree *btree.BTreeMap[uint64, uint64]
}

func newTreeMap(degree int) (*treeMap, error) {
	tree, err := btree.NewTreeWithDegree[uint64, uint64](degree, cmp.Compare[uint64])
	if err != nil {
		return nil, err
	}

	return &treeMap{tree: tree}, nil
}

func (m *treeMap) Insert(key, value uint64) { m.tree.Insert(key, value) }

func (m *treeMap) Find(key uint64) (uint64, bool) { return m.tree.Find(key) }

func (m *treeMap) Delete(key uint64) bool {
	_, ok := m.tree.Delete(key)
	return ok
}

func (m *treeMap) Iterate() int {
	count := 0
	it := m.tree.Iter()
	for it.Next() {
		count++
	}

	return count
}

func (m *treeMap) Len() int { return m.tree.Len() }

func (m *treeMap) Check() error { return m.tree.Check() }

type pair struct {
	key, value uint64
}

func lessPair(a, b pair) bool { return a.key < b.key }

type googleMap struct {
	tree *googleBTree.BTreeG[pair]
}

func newGoogleMap(degree int) *googleMap {
	return &googleMap{tree: googleBTree.NewG[pair](degree, lessPair)}
}

func (m *googleMap) Insert(key, value uint64) { m.tree.ReplaceOrInsert(pair{key, value}) }

func (m *googleMap) Find(key uint64) (uint64, bool) {
	p, ok := m.tree.Get(pair{key: key})
	return p.value, ok
}

func (m *googleMap) Delete(key uint64) bool {
	_, ok := m.tree.Delete(pair{key: key})
	return ok
}

func (m *googleMap) Iterate() int {
	count := 0
	m.tree.Ascend(func(pair) bool {
		count++
		return true
	})

	return count
}

func (m *googleMap) Len() int { return m.tree.Len() }

// google/btree exposes no structural check.
func (m *googleMap) Check() error { return nil }

package btree

import (
	mathRand "math/rand"
	"testing"

	googleBTree "github.com/google/btree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIterEmpty(t *testing.T) {
	tree := getTree(t, 2)
	it := tree.Iter()
	assert.False(t, it.Next())
	assert.NoError(t, it.Err())
}

func TestIterAscendingOrder(t *testing.T) {
	for _, degree := range []int{2, 3, 7} {
		tree := getTree(t, degree)
		for _, key := range getRandomKeys(int64(degree)) {
			tree.Insert(key, "")
		}

		prev, count := -1, 0
		it := tree.Iter()
		for it.Next() {
			require.Greater(t, it.Key(), prev)
			prev = it.Key()
			count++
		}

		assert.NoError(t, it.Err())
		assert.Equal(t, tree.Len(), count)
		assert.Equal(t, MULTIPLE_TEST_COUNT-1, prev)
	}
}

func TestIterMatchesGoogleBTree(t *testing.T) {
	tree := getTree(t, 4)
	reference := googleBTree.NewOrderedG[int](4)
	rnd := mathRand.New(mathRand.NewSource(7))

	for op := 0; op < 5000; op++ {
		key := rnd.Intn(2000)
		if rnd.Intn(3) == 0 {
			tree.Delete(key)
			reference.Delete(key)
		} else {
			tree.Insert(key, "")
			reference.ReplaceOrInsert(key)
		}
	}

	var want []int
	reference.Ascend(func(key int) bool {
		want = append(want, key)
		return true
	})

	assert.Equal(t, want, keysOf(tree))
	assert.Equal(t, reference.Len(), tree.Len())
}

func TestIterValues(t *testing.T) {
	tree := getTree(t, 2)
	ascendingLoop(func(key int, val string) {
		tree.Insert(key, val)
	})

	i := 0
	it := tree.Iter()
	for it.Next() {
		assert.Equal(t, i, it.Key())
		res, _ := tree.Find(i)
		assert.Equal(t, res, it.Value())
		i++
	}
	assert.Equal(t, MULTIPLE_TEST_COUNT, i)
}

func TestIterReset(t *testing.T) {
	tree := getTree(t, 2)
	for i := 0; i < 10; i++ {
		tree.Insert(i, "")
	}

	it := tree.Iter()
	for j := 0; j < 5; j++ {
		require.True(t, it.Next())
	}
	assert.Equal(t, 4, it.Key())

	it.Reset()
	require.True(t, it.Next())
	assert.Equal(t, 0, it.Key())
}

func TestIterInvalidatedByMutation(t *testing.T) {
	tree := getTree(t, 2)
	for i := 0; i < 10; i++ {
		tree.Insert(i, "")
	}

	it := tree.Iter()
	require.True(t, it.Next())

	tree.Insert(100, "")
	assert.False(t, it.Next())
	assert.ErrorIs(t, it.Err(), INVALID_ITERATOR_ERROR)
	assert.False(t, it.Next())

	it.Reset()
	assert.NoError(t, it.Err())
	assert.Equal(t, 11, len(keysOf(tree)))

	require.True(t, it.Next())
	tree.Delete(5)
	assert.False(t, it.Next())
	assert.ErrorIs(t, it.Err(), INVALID_ITERATOR_ERROR)
}

func TestIterNotInvalidatedByReads(t *testing.T) {
	tree := getTree(t, 2)
	for i := 0; i < 10; i++ {
		tree.Insert(i, "")
	}

	it := tree.Iter()
	require.True(t, it.Next())

	tree.Find(3)
	tree.Delete(42)
	tree.Update(42, "")

	count := 1
	for it.Next() {
		count++
	}
	assert.NoError(t, it.Err())
	assert.Equal(t, 10, count)
}

func TestAscendStops(t *testing.T) {
	tree := getTree(t, 2)
	ascendingLoop(func(key int, val string) {
		tree.Insert(key, val)
	})

	var seen []int
	tree.Ascend(func(key int, _ string) bool {
		seen = append(seen, key)
		return len(seen) < 3
	})
	assert.Equal(t, []int{0, 1, 2}, seen)
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Aasim-A/btree/btree"
)

func main() {
	tree := btree.NewTree[int, string]()
	tree.Insert(1, "foo")
	tree.Insert(42, "bar")

	for _, key := range []int{1, 42, 7} {
		val, ok := tree.Find(key)
		fmt.Printf("find(%d) -> %q %v\n", key, val, ok)
	}

	small, err := btree.NewTreeWithDegree[string, int](btree.MIN_DEGREE, strings.Compare)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	for i := 0; i < 16; i++ {
		small.Insert(fmt.Sprintf("%02d", i), i)
	}
	small.Fprint(os.Stdout)

	it := small.Iter()
	for it.Next() {
		fmt.Print(it.Key(), "=", it.Value(), " ")
	}
	fmt.Println()

	if err := small.Check(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	tree.Clear()
	fmt.Println("empty:", tree.IsEmpty())
}

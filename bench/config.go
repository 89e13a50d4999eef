// Package bench drives a btree.BTreeMap with synthetic workloads and reports
// insert, lookup, iteration and delete throughput, optionally side by side
// with github.com/google/btree.
package bench

import (
	"strings"

	"tlog.app/go/errors"

	"github.com/Aasim-A/btree/btree"
)

type Workload string

const (
	SEQUENTIAL Workload = "sequential"
	REVERSE    Workload = "reverse"
	RANDOM     Workload = "random"
	HASHED     Workload = "hashed"
)

var Workloads = []Workload{SEQUENTIAL, REVERSE, RANDOM, HASHED}

var INVALID_WORKLOAD_ERROR = errors.New("Invalid workload")
var INVALID_SIZE_ERROR = errors.New("Invalid size. Sizes must be positive")
var LOOKUP_MISS_ERROR = errors.New("Inserted key not found")
var DELETE_MISS_ERROR = errors.New("Inserted key could not be deleted")
var ITERATION_COUNT_ERROR = errors.New("Iteration count does not match length")

type Config struct {
	// Entry counts to run every workload with.
	Sizes     []int
	Workloads []Workload
	Degree    int
	Seed      int64

	// Also run github.com/google/btree with the same degree.
	Baseline bool
	// Run BTreeMap.Check after the insert and delete phases.
	Verify bool

	// Report file path. Empty means stdout only.
	Output string
}

func DefaultConfig() Config {
	return Config{
		Sizes:     []int{1_000, 10_000, 100_000, 1_000_000},
		Workloads: []Workload{RANDOM},
		Degree:    btree.DEFAULT_DEGREE,
		Seed:      42,
		Baseline:  true,
	}
}

func (c Config) Validate() error {
	if c.Degree < btree.MIN_DEGREE {
		return errors.Wrap(btree.INVALID_DEGREE_ERROR, "degree %d", c.Degree)
	}

	if len(c.Sizes) == 0 {
		return errors.Wrap(INVALID_SIZE_ERROR, "no sizes")
	}

	for _, n := range c.Sizes {
		if n <= 0 {
			return errors.Wrap(INVALID_SIZE_ERROR, "size %d", n)
		}
	}

	if len(c.Workloads) == 0 {
		return errors.Wrap(INVALID_WORKLOAD_ERROR, "no workloads")
	}

	for _, w := range c.Workloads {
		if _, err := ParseWorkload(string(w)); err != nil {
			return err
		}
	}

	return nil
}

func ParseWorkload(s string) (Workload, error) {
	w := Workload(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Workloads {
		if w == known {
			return w, nil
		}
	}

	return "", errors.Wrap(INVALID_WORKLOAD_ERROR, "%q", s)
}

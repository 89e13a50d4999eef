package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Aasim-A/btree/bench"
)

func TestParseInts(t *testing.T) {
	ns, err := parseInts("1_000, 20,,300")
	assert.NoError(t, err)
	assert.Equal(t, []int{1000, 20, 300}, ns)

	_, err = parseInts("10,x")
	assert.Error(t, err)
}

func TestJoinInts(t *testing.T) {
	assert.Equal(t, "1,20,300", joinInts([]int{1, 20, 300}))
	assert.Equal(t, "", joinInts(nil))
}

func TestRunInvalidWorkload(t *testing.T) {
	err := run(bench.DefaultConfig(), "10", "random,zipf", zap.NewNop())
	assert.ErrorIs(t, err, bench.INVALID_WORKLOAD_ERROR)
}

func TestRunInvalidSize(t *testing.T) {
	err := run(bench.DefaultConfig(), "10,-1", "random", zap.NewNop())
	assert.ErrorIs(t, err, bench.INVALID_SIZE_ERROR)
}

func TestRun(t *testing.T) {
	cfg := bench.DefaultConfig()
	cfg.Verify = true
	cfg.Output = t.TempDir() + "/report.txt"

	err := run(cfg, "100", "sequential,hashed", zap.NewNop())
	assert.NoError(t, err)
	assert.FileExists(t, cfg.Output)
}

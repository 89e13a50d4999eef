package bench

import (
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Aasim-A/btree/btree"
)

func getConfig() Config {
	cfg := DefaultConfig()
	cfg.Sizes = []int{10, 500}
	cfg.Workloads = Workloads
	cfg.Degree = 3
	cfg.Verify = true

	return cfg
}

func TestKeysDistinct(t *testing.T) {
	for _, w := range Workloads {
		keys := Keys(w, 1000, 42)
		assert.Len(t, keys, 1000)

		sorted := slices.Clone(keys)
		slices.Sort(sorted)
		assert.Len(t, slices.Compact(sorted), 1000, "workload %s", w)
	}
}

func TestKeysOrder(t *testing.T) {
	assert.Equal(t, []uint64{0, 1, 2, 3}, Keys(SEQUENTIAL, 4, 42))
	assert.Equal(t, []uint64{3, 2, 1, 0}, Keys(REVERSE, 4, 42))
	assert.Equal(t, Keys(RANDOM, 100, 7), Keys(RANDOM, 100, 7))
	assert.Equal(t, Keys(HASHED, 100, 7), Keys(HASHED, 100, 7))
	assert.NotEqual(t, Keys(HASHED, 100, 7), Keys(HASHED, 100, 8))
}

func TestParseWorkload(t *testing.T) {
	w, err := ParseWorkload(" Random ")
	assert.NoError(t, err)
	assert.Equal(t, RANDOM, w)

	_, err = ParseWorkload("zipf")
	assert.ErrorIs(t, err, INVALID_WORKLOAD_ERROR)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Degree = 1
	assert.ErrorIs(t, cfg.Validate(), btree.INVALID_DEGREE_ERROR)

	cfg = DefaultConfig()
	cfg.Sizes = []int{10, 0}
	assert.ErrorIs(t, cfg.Validate(), INVALID_SIZE_ERROR)

	cfg = DefaultConfig()
	cfg.Sizes = nil
	assert.ErrorIs(t, cfg.Validate(), INVALID_SIZE_ERROR)

	cfg = DefaultConfig()
	cfg.Workloads = []Workload{"zipf"}
	assert.ErrorIs(t, cfg.Validate(), INVALID_WORKLOAD_ERROR)
}

func TestRun(t *testing.T) {
	cfg := getConfig()
	runner, err := NewRunner(cfg, zap.NewNop())
	require.NoError(t, err)

	report, err := runner.Run(context.Background())
	require.NoError(t, err)

	// workloads * sizes * impls * ops
	assert.Len(t, report.Results, len(Workloads)*2*2*4)

	for _, res := range report.Results {
		assert.Contains(t, []string{IMPL_BTREEMAP, IMPL_GOOGLEBTREE}, res.Impl)
		assert.Contains(t, cfg.Sizes, res.N)
		assert.GreaterOrEqual(t, res.NsPerOp, 0.0)
	}
}

func TestRunWithoutBaseline(t *testing.T) {
	cfg := getConfig()
	cfg.Baseline = false
	cfg.Workloads = []Workload{SEQUENTIAL}

	runner, err := NewRunner(cfg, nil)
	require.NoError(t, err)

	report, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 2*4)

	for _, res := range report.Results {
		assert.Equal(t, IMPL_BTREEMAP, res.Impl)
	}
}

func TestRunCanceled(t *testing.T) {
	runner, err := NewRunner(getConfig(), zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := runner.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, report)
}

func TestNewRunnerInvalidConfig(t *testing.T) {
	cfg := getConfig()
	cfg.Degree = 0

	runner, err := NewRunner(cfg, zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, runner)
}

func TestNewResult(t *testing.T) {
	res := newResult(IMPL_BTREEMAP, RANDOM, OP_INSERT, 1000, time.Millisecond)
	assert.InDelta(t, 1000.0, res.NsPerOp, 0.001)
	assert.InDelta(t, 1_000_000.0, res.OpsPerSec, 0.001)

	res = newResult(IMPL_BTREEMAP, RANDOM, OP_INSERT, 1000, 0)
	assert.Zero(t, res.OpsPerSec)
}

func TestWriteReport(t *testing.T) {
	fs := afero.NewMemMapFs()
	report := NewReport(getConfig())
	report.Results = append(report.Results, newResult(IMPL_BTREEMAP, RANDOM, OP_FIND, 500, time.Millisecond))

	err := WriteReport(fs, "reports/bench.txt", report)
	require.NoError(t, err)

	content, err := afero.ReadFile(fs, "reports/bench.txt")
	require.NoError(t, err)

	text := string(content)
	assert.True(t, strings.HasPrefix(text, "=== BTreeMap Benchmark Report ==="))
	assert.Contains(t, text, "Degree: 3, Seed: 42")
	assert.Contains(t, text, "btreemap")
	assert.Contains(t, text, "2000.00")
	assert.Contains(t, text, "500000")
}

func TestWriteReportReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	err := WriteReport(fs, "bench.txt", NewReport(getConfig()))
	assert.Error(t, err)
}

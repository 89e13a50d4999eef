package bench

import (
	"context"
	"time"

	"go.uber.org/zap"
	"tlog.app/go/errors"
)

type Op string

const (
	OP_INSERT  Op = "insert"
	OP_FIND    Op = "find"
	OP_ITERATE Op = "iterate"
	OP_DELETE  Op = "delete"
)

type Runner struct {
	cfg    Config
	logger *zap.Logger

	// Replaced in tests.
	now func() time.Time
}

func NewRunner(cfg Config, logger *zap.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Runner{cfg: cfg, logger: logger, now: time.Now}, nil
}

// Run executes every configured workload at every size and collects the
// timings. It stops between phases once ctx is done.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := NewReport(r.cfg)
	report.Timestamp = r.now()

	for _, w := range r.cfg.Workloads {
		for _, n := range r.cfg.Sizes {
			keys := Keys(w, n, r.cfg.Seed)

			impls := []string{IMPL_BTREEMAP}
			if r.cfg.Baseline {
				impls = append(impls, IMPL_GOOGLEBTREE)
			}

			for _, impl := range impls {
				m, err := r.newMap(impl)
				if err != nil {
					return nil, err
				}

				results, err := r.runOne(ctx, m, impl, w, keys)
				if err != nil {
					return nil, errors.Wrap(err, "%s %s n=%d", impl, w, n)
				}

				report.Results = append(report.Results, results...)
			}
		}
	}

	report.Elapsed = r.now().Sub(report.Timestamp)
	return report, nil
}

func (r *Runner) newMap(impl string) (orderedMap, error) {
	if impl == IMPL_GOOGLEBTREE {
		return newGoogleMap(r.cfg.Degree), nil
	}

	return newTreeMap(r.cfg.Degree)
}

func (r *Runner) runOne(ctx context.Context, m orderedMap, impl string, w Workload, keys []uint64) ([]Result, error) {
	results := make([]Result, 0, 4)
	logger := r.logger.With(zap.String("impl", impl), zap.String("workload", string(w)), zap.Int("n", len(keys)))

	phase := func(op Op, fn func() error) error {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "before %s", op)
		}

		start := r.now()
		if err := fn(); err != nil {
			return errors.Wrap(err, "%s", op)
		}

		res := newResult(impl, w, op, len(keys), r.now().Sub(start))
		results = append(results, res)
		logger.Debug("phase done", zap.String("op", string(op)), zap.Float64("ns_per_op", res.NsPerOp), zap.Float64("ops_per_sec", res.OpsPerSec))

		return nil
	}

	err := phase(OP_INSERT, func() error {
		for _, key := range keys {
			m.Insert(key, key)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err = r.verify(m, len(keys), logger); err != nil {
		return nil, err
	}

	err = phase(OP_FIND, func() error {
		for _, key := range keys {
			val, ok := m.Find(key)
			if !ok || val != key {
				return errors.Wrap(LOOKUP_MISS_ERROR, "key %d", key)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	err = phase(OP_ITERATE, func() error {
		if count := m.Iterate(); count != m.Len() {
			return errors.Wrap(ITERATION_COUNT_ERROR, "visited %d, length %d", count, m.Len())
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	err = phase(OP_DELETE, func() error {
		for _, key := range keys {
			if !m.Delete(key) {
				return errors.Wrap(DELETE_MISS_ERROR, "key %d", key)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err = r.verify(m, 0, logger); err != nil {
		return nil, err
	}

	logger.Info("workload done")

	return results, nil
}

func (r *Runner) verify(m orderedMap, wantLen int, logger *zap.Logger) error {
	if !r.cfg.Verify {
		return nil
	}

	if m.Len() != wantLen {
		return errors.Wrap(ITERATION_COUNT_ERROR, "length %d, want %d", m.Len(), wantLen)
	}

	if err := m.Check(); err != nil {
		logger.Error("tree check failed", zap.Error(err))
		return errors.Wrap(err, "check")
	}

	return nil
}

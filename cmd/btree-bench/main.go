package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"tlog.app/go/errors"

	"github.com/Aasim-A/btree/bench"
)

func main() {
	cfg := bench.DefaultConfig()

	sizes := flag.String("sizes", joinInts(cfg.Sizes), "comma separated entry counts")
	workloads := flag.String("workloads", string(cfg.Workloads[0]), "comma separated workloads: sequential, reverse, random, hashed")
	flag.IntVar(&cfg.Degree, "degree", cfg.Degree, "minimum degree of the tree")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for the random and hashed workloads")
	flag.BoolVar(&cfg.Baseline, "baseline", cfg.Baseline, "also benchmark github.com/google/btree")
	flag.BoolVar(&cfg.Verify, "verify", cfg.Verify, "check tree invariants after insert and delete phases")
	flag.StringVar(&cfg.Output, "o", cfg.Output, "write the report to this file as well as stdout")
	verbose := flag.Bool("v", false, "log every phase")
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err = run(cfg, *sizes, *workloads, logger); err != nil {
		logger.Error("benchmark failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg bench.Config, sizes, workloads string, logger *zap.Logger) (err error) {
	cfg.Sizes, err = parseInts(sizes)
	if err != nil {
		return errors.Wrap(err, "parse sizes")
	}

	cfg.Workloads = cfg.Workloads[:0]
	for _, s := range strings.Split(workloads, ",") {
		w, err := bench.ParseWorkload(s)
		if err != nil {
			return err
		}

		cfg.Workloads = append(cfg.Workloads, w)
	}

	runner, err := bench.NewRunner(cfg, logger)
	if err != nil {
		return errors.Wrap(err, "config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("starting benchmark",
		zap.Ints("sizes", cfg.Sizes),
		zap.Int("degree", cfg.Degree),
		zap.Int64("seed", cfg.Seed),
		zap.Bool("baseline", cfg.Baseline),
		zap.Bool("verify", cfg.Verify))

	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if err = report.WriteText(os.Stdout); err != nil {
		return errors.Wrap(err, "print report")
	}

	if cfg.Output != "" {
		if err = bench.WriteReport(afero.NewOsFs(), cfg.Output, report); err != nil {
			return err
		}

		logger.Info("report written", zap.String("path", cfg.Output))
	}

	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if !verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	return zcfg.Build()
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ReplaceAll(part, "_", ""))
		if part == "" {
			continue
		}

		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}

		out = append(out, n)
	}

	return out, nil
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}

	return strings.Join(parts, ",")
}

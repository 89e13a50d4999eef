package bench

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/afero"
	"tlog.app/go/errors"
)

// Result is the timing of one operation kind over all keys of a run.
type Result struct {
	Impl     string
	Workload Workload
	Op       Op
	N        int
	Elapsed  time.Duration

	NsPerOp   float64
	OpsPerSec float64
}

func newResult(impl string, w Workload, op Op, n int, elapsed time.Duration) Result {
	res := Result{Impl: impl, Workload: w, Op: op, N: n, Elapsed: elapsed}
	if n > 0 {
		res.NsPerOp = float64(elapsed.Nanoseconds()) / float64(n)
	}
	if elapsed > 0 {
		res.OpsPerSec = float64(n) / elapsed.Seconds()
	}

	return res
}

type Report struct {
	Timestamp time.Time
	Elapsed   time.Duration
	GoVersion string
	OS        string
	Arch      string
	Degree    int
	Seed      int64
	Results   []Result
}

func NewReport(cfg Config) *Report {
	return &Report{
		Timestamp: time.Now(),
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Degree:    cfg.Degree,
		Seed:      cfg.Seed,
		Results:   make([]Result, 0),
	}
}

// WriteText writes a plain text table of all results.
func (r *Report) WriteText(w io.Writer) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "=== BTreeMap Benchmark Report ===\n\n")
	fmt.Fprintf(&sb, "Generated: %s\n", r.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Go Version: %s\n", r.GoVersion)
	fmt.Fprintf(&sb, "Platform: %s/%s\n", r.OS, r.Arch)
	fmt.Fprintf(&sb, "Degree: %d, Seed: %d\n\n", r.Degree, r.Seed)

	fmt.Fprintf(&sb, "%-14s %-11s %-8s %10s %14s %16s\n", "Impl", "Workload", "Op", "N", "ns/op", "ops/sec")
	fmt.Fprintf(&sb, "%s\n", strings.Repeat("-", 78))
	for _, res := range r.Results {
		fmt.Fprintf(&sb, "%-14s %-11s %-8s %10d %14.2f %16.0f\n",
			res.Impl, res.Workload, res.Op, res.N, res.NsPerOp, res.OpsPerSec)
	}

	if r.Elapsed > 0 {
		fmt.Fprintf(&sb, "\nTotal: %s\n", r.Elapsed.Round(time.Millisecond))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteReport writes the text report to path on fs, creating parent
// directories as needed.
func WriteReport(fs afero.Fs, path string, r *Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "create report dir")
		}
	}

	f, err := fs.Create(path)
	if err != nil {
		return errors.Wrap(err, "create report")
	}

	if err = r.WriteText(f); err != nil {
		f.Close()
		return errors.Wrap(err, "write report")
	}

	if err = f.Close(); err != nil {
		return errors.Wrap(err, "close report")
	}

	return nil
}

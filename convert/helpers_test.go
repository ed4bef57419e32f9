package convert

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeTree creates each slash-separated path under root with some content.
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("audio:"+f), 0o644))
	}
}

// listTree returns every regular file under root as a sorted slash path.
func listTree(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	sort.Strings(files)
	return files
}

func symlinkOrSkip(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
}

func testConfig(t *testing.T, root string) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Root = root
	cfg.Workers = 2
	require.NoError(t, cfg.Validate())
	return cfg
}

// fakeTool stands in for ffmpeg. It copies the source to the destination
// and records how many runs overlap.
type fakeTool struct {
	fail         map[string]bool // source base names that fail
	noOutput     bool            // succeed without writing the destination
	removeSource bool            // delete the source while converting
	delay        time.Duration

	mu    sync.Mutex
	jobs  []Job
	calls atomic.Int64

	running atomic.Int64
	peak    atomic.Int64
}

func (f *fakeTool) Command(job Job) []string {
	argv := []string{"fake", "-i", job.Source}
	argv = append(argv, job.ExtraArgs...)
	return append(argv, job.Destination)
}

func (f *fakeTool) Run(_ context.Context, job Job) error {
	n := f.running.Add(1)
	defer f.running.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	f.calls.Add(1)
	f.mu.Lock()
	f.jobs = append(f.jobs, job)
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.fail[filepath.Base(job.Source)] {
		_ = os.WriteFile(job.Destination, []byte("partial"), 0o644)
		return &ConversionError{Source: job.Source, ExitCode: 1, Stderr: "Invalid data found when processing input"}
	}
	if f.noOutput {
		return nil
	}
	data, err := os.ReadFile(job.Source)
	if err != nil {
		return err
	}
	if f.removeSource {
		if err := os.Remove(job.Source); err != nil {
			return err
		}
	}
	return os.WriteFile(job.Destination, data, 0o644)
}

func (f *fakeTool) sources() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, j := range f.jobs {
		out = append(out, j.Source)
	}
	sort.Strings(out)
	return out
}

// recorder is an Observer that keeps every event.
type recorder struct {
	mu         sync.Mutex
	discovered []string
	invoked    [][]string
	outcomes   []Outcome
	errs       []error
	finished   []Summary
}

func (r *recorder) Discovered(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.discovered = append(r.discovered, e.Path)
}

func (r *recorder) DiscoveryFailed(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recorder) Invoking(_ int, _ Job, argv []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invoked = append(r.invoked, argv)
}

func (r *recorder) Done(_ int, o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func (r *recorder) Finished(s Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = append(r.finished, s)
}

// plannedSources returns the sorted source argument of every reported
// invocation.
func (r *recorder) plannedSources() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, argv := range r.invoked {
		out = append(out, argv[2])
	}
	sort.Strings(out)
	return out
}

func (r *recorder) outcomeFor(t *testing.T, source string) Outcome {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.outcomes {
		if o.Job.Source == source {
			return o
		}
	}
	t.Fatalf("no outcome for %s", source)
	return Outcome{}
}

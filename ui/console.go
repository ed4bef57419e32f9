package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/lepinkainen/ffconvert/convert"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// ConsoleReporter prints pipeline events as styled lines. Output is
// serialised so lines from different workers never interleave.
type ConsoleReporter struct {
	mu        sync.Mutex
	out       io.Writer
	verbosity convert.Verbosity
	dryRun    bool
	preserve  bool
	base      string
	bar       *progressbar.ProgressBar
}

// NewConsoleReporter creates a reporter writing to out. Paths are shown
// relative to the working directory.
func NewConsoleReporter(out io.Writer, cfg *convert.Config) *ConsoleReporter {
	base, _ := os.Getwd()
	return &ConsoleReporter{
		out:       out,
		verbosity: cfg.Verbosity,
		dryRun:    cfg.DryRun,
		preserve:  cfg.Preserve,
		base:      base,
	}
}

// EnableProgress shows a spinner with the number of finished jobs on w
// when w is a terminal and the run is not quiet.
func (r *ConsoleReporter) EnableProgress(w *os.File) {
	if r.verbosity == convert.Quiet || !IsTerminal(w) {
		return
	}
	r.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Converting"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionShowIts(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Header prints the run banner.
func (r *ConsoleReporter) Header(version string, cfg *convert.Config) {
	if r.verbosity == convert.Quiet {
		return
	}
	r.println(HeaderStyle.Render(fmt.Sprintf("ffconvert %s", version)))
	if cfg.DryRun {
		r.println(ProcessingStyle.Render("🔍 DRY RUN MODE - No files will be modified"))
	}
	r.println(ProcessingStyle.Render(fmt.Sprintf("🎵 Converting %v → %s in %s with %d workers",
		cfg.From, cfg.To, DisplayPath(r.base, cfg.Root), cfg.Workers)))
	if r.verbosity == convert.Verbose {
		depth := "unbounded"
		if cfg.Bounded() {
			depth = fmt.Sprintf("%d", cfg.MaxDepth)
		}
		r.println(DimStyle.Render(fmt.Sprintf("⚙️  Tool=%s, Max depth=%s, Follow links=%t, Same filesystem=%t, Preserve=%t",
			cfg.Tool, depth, cfg.FollowLinks, cfg.SameFS, cfg.Preserve)))
	}
}

// Discovered implements convert.Observer.
func (r *ConsoleReporter) Discovered(convert.Entry) {}

// DiscoveryFailed implements convert.Observer.
func (r *ConsoleReporter) DiscoveryFailed(err error) {
	if r.verbosity == convert.Quiet {
		return
	}
	r.println(WarnStyle.Render(fmt.Sprintf("⚠️  %v", err)))
}

// Invoking implements convert.Observer. Dry runs always show what would be
// executed; live runs only in verbose mode.
func (r *ConsoleReporter) Invoking(worker int, job convert.Job, argv []string) {
	switch {
	case r.verbosity == convert.Quiet:
		return
	case job.DryRun:
		r.println(InfoStyle.Render(fmt.Sprintf("🔍 Would run: %s", CommandLine(argv))))
		if !r.preserve {
			r.println(InfoStyle.Render(fmt.Sprintf("🔍 Would remove: %s", DisplayPath(r.base, job.Source))))
		}
	case r.verbosity == convert.Verbose:
		r.println(DimStyle.Render(fmt.Sprintf("Worker %d: %s", worker+1, CommandLine(argv))))
	}
}

// Done implements convert.Observer.
func (r *ConsoleReporter) Done(_ int, o convert.Outcome) {
	defer r.tick()

	src := DisplayPath(r.base, o.Job.Source)
	dst := DisplayPath(r.base, o.Job.Destination)

	switch o.Status {
	case convert.StatusConversionFailed:
		r.println(ErrorStyle.Render(fmt.Sprintf("❌ %s: %v", src, o.Err)))
	case convert.StatusDeleteFailed:
		r.println(ErrorStyle.Render(fmt.Sprintf("⚠️  %s → %s: %v", src, dst, o.Err)))
	}
	if r.verbosity == convert.Quiet {
		return
	}

	switch o.Status {
	case convert.StatusDeleted:
		r.println(SuccessStyle.Render(fmt.Sprintf("✅ %s → %s", src, dst)) + r.elapsed(o.Duration) + DimStyle.Render(" (original removed)"))
	case convert.StatusConverted:
		r.println(SuccessStyle.Render(fmt.Sprintf("✅ %s → %s", src, dst)) + r.elapsed(o.Duration))
	case convert.StatusSkipped:
		r.println(fmt.Sprintf("⏭️  Skipped %s: %s", src, o.Reason))
	}
}

// Finished implements convert.Observer and prints the summary. The summary
// is shown at every verbosity.
func (r *ConsoleReporter) Finished(s convert.Summary) {
	r.mu.Lock()
	if r.bar != nil {
		_ = r.bar.Finish()
		r.bar = nil
	}
	r.mu.Unlock()

	r.println("")
	r.println(HeaderStyle.Render("📊 Conversion Summary"))
	r.println(fmt.Sprintf("   Discovered: %d files", s.Discovered))
	r.println(fmt.Sprintf("   Converted: %d files", s.Converted))
	r.println(fmt.Sprintf("   Originals removed: %d files", s.Deleted))
	r.println(fmt.Sprintf("   Skipped: %d files", s.Skipped))
	r.println(fmt.Sprintf("   Conversion errors: %d files", s.Failed))
	r.println(fmt.Sprintf("   Removal errors: %d files", s.DeleteFailed))
	if s.DiscoveryErrors > 0 {
		r.println(fmt.Sprintf("   Unreadable paths: %d", s.DiscoveryErrors))
	}
	r.println(fmt.Sprintf("   Elapsed: %s", s.Elapsed.Round(time.Millisecond)))

	if s.HasFailures() {
		r.println("\n" + ErrorStyle.Render("❌ Finished with errors"))
		return
	}
	r.println("\n" + SuccessStyle.Render("🎉 Conversion complete!"))
}

func (r *ConsoleReporter) elapsed(d time.Duration) string {
	if r.verbosity != convert.Verbose {
		return ""
	}
	return DimStyle.Render(fmt.Sprintf(" [%s]", d.Round(time.Millisecond)))
}

func (r *ConsoleReporter) println(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar != nil {
		_ = r.bar.Clear()
	}
	_, _ = fmt.Fprintln(r.out, line)
}

func (r *ConsoleReporter) tick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar != nil {
		_ = r.bar.Add(1)
	}
}

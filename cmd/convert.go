package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/lepinkainen/ffconvert/convert"
	"github.com/lepinkainen/ffconvert/types"
	"github.com/lepinkainen/ffconvert/ui"
	"github.com/lepinkainen/ffconvert/utils"
)

type ConvertCmd struct {
	From          []string `arg:"" name:"from" optional:"" default:"mp3" help:"Extensions of the files to convert"`
	Output        string   `short:"o" default:"opus" help:"Extension of the converted files"`
	Target        string   `short:"t" default:"." type:"path" help:"Directory to search for files"`
	MaxDepth      int      `short:"m" default:"-1" help:"Deepest directory level to search, 0 for the target only (-1 = unbounded)"`
	FollowLinks   bool     `short:"f" help:"Follow symbolic links"`
	SameFS        bool     `short:"s" name:"same-fs" help:"Do not descend into other filesystems"`
	Workers       int      `short:"n" default:"-1" help:"Number of parallel conversions (-1 = CPU count)"`
	PreserveFiles bool     `short:"p" help:"Keep the original files after conversion"`
	DryRun        bool     `short:"d" help:"Show what would be done without changing anything"`
	Verbose       bool     `short:"v" help:"Print the exact command for every file"`
	Quiet         bool     `short:"q" help:"Only print errors and the summary"`
	Tool          string   `default:"ffmpeg" help:"Conversion program, called as <tool> -i <source> [args after --] <destination>"`
	TUI           bool     `name:"tui" help:"Show an interactive progress view"`
}

// Config maps the flags onto a run configuration. extra holds the
// arguments given after "--".
func (cmd *ConvertCmd) Config(extra []string) *convert.Config {
	verbosity := convert.Normal
	switch {
	case cmd.Quiet:
		verbosity = convert.Quiet
	case cmd.Verbose:
		verbosity = convert.Verbose
	}

	return &convert.Config{
		From:        cmd.From,
		To:          cmd.Output,
		Root:        cmd.Target,
		MaxDepth:    cmd.MaxDepth,
		FollowLinks: cmd.FollowLinks,
		SameFS:      cmd.SameFS,
		Workers:     cmd.Workers,
		Preserve:    cmd.PreserveFiles,
		DryRun:      cmd.DryRun,
		Verbosity:   verbosity,
		ExtraArgs:   extra,
		Tool:        cmd.Tool,
	}
}

func (cmd *ConvertCmd) Run(appCtx *types.AppContext) error {
	version := types.DefaultVersion
	var extra []string
	if appCtx != nil {
		version = appCtx.Version
		extra = appCtx.Passthrough
	}

	cfg := cmd.Config(extra)
	if err := cfg.Validate(); err != nil {
		return err
	}

	// A dry run never starts the tool, so it may be missing.
	if !cfg.DryRun {
		path, err := utils.ValidateTool(cfg.Tool)
		if err != nil {
			return &convert.ConfigError{Field: "tool", Reason: "conversion tool unavailable", Err: err}
		}
		cfg.Tool = path
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var summary convert.Summary
	if cmd.TUI && ui.IsTerminal(os.Stdout) {
		var err error
		summary, err = runTUI(ctx, cfg, version)
		if err != nil {
			return err
		}
	} else {
		summary = runConsole(ctx, cfg, version, os.Stdout, os.Stderr)
	}

	if err := failureError(summary); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return errors.New("interrupted before all files were processed")
	}
	return nil
}

// runConsole runs the pool with line output on out and a spinner on
// progress when it is a terminal.
func runConsole(ctx context.Context, cfg *convert.Config, version string, out io.Writer, progress *os.File) convert.Summary {
	reporter := ui.NewConsoleReporter(out, cfg)
	reporter.Header(version, cfg)
	reporter.EnableProgress(progress)

	return convert.NewPool(cfg, convert.NewExecTool(cfg.Tool), reporter).Run(ctx)
}

// runTUI runs the pool behind the interactive view. Quitting the view stops
// dispatching new files; running conversions are allowed to finish.
func runTUI(ctx context.Context, cfg *convert.Config, version string) (convert.Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reporter := ui.NewTUIReporter(cfg.Workers, version)
	reporter.OnQuit = cancel
	reporter.Start()

	summary := convert.NewPool(cfg, convert.NewExecTool(cfg.Tool), reporter).Run(ctx)
	if err := reporter.Wait(); err != nil {
		return summary, fmt.Errorf("interactive view failed: %w", err)
	}

	ui.NewConsoleReporter(os.Stdout, cfg).Finished(summary)
	return summary, nil
}

// failureError turns failed jobs into the command's error result.
func failureError(s convert.Summary) error {
	if !s.HasFailures() {
		return nil
	}
	switch {
	case s.Failed > 0 && s.DeleteFailed > 0:
		return fmt.Errorf("%d of %d files failed to convert, %d originals could not be removed", s.Failed, s.Discovered, s.DeleteFailed)
	case s.Failed > 0:
		return fmt.Errorf("%d of %d files failed to convert", s.Failed, s.Discovered)
	default:
		return fmt.Errorf("%d originals could not be removed", s.DeleteFailed)
	}
}

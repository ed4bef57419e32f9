package convert

import (
	"context"
	"errors"
	"os"
	"time"
)

// Invoker runs one job: conversion first, then removal of the source when
// the conversion is confirmed and originals are not preserved.
type Invoker struct {
	tool     Tool
	preserve bool
	observer Observer
}

// NewInvoker creates an invoker. A nil observer is replaced by NopObserver.
func NewInvoker(tool Tool, preserve bool, observer Observer) *Invoker {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Invoker{tool: tool, preserve: preserve, observer: observer}
}

// Execute runs the job and returns its outcome. It never returns without
// an outcome and never touches the source unless the tool succeeded and the
// destination exists.
func (inv *Invoker) Execute(ctx context.Context, worker int, job Job) Outcome {
	start := time.Now()
	out := inv.execute(ctx, worker, job)
	out.Job = job
	out.Duration = time.Since(start)
	return out
}

func (inv *Invoker) execute(ctx context.Context, worker int, job Job) Outcome {
	if exists(job.Destination) {
		return Outcome{Status: StatusSkipped, Reason: SkipDestinationExists}
	}

	inv.observer.Invoking(worker, job, inv.tool.Command(job))
	if job.DryRun {
		return Outcome{Status: StatusSkipped, Reason: SkipDryRun}
	}

	if err := inv.tool.Run(ctx, job); err != nil {
		// The destination was absent when the job started and the pool
		// gives each destination to one job per run, so whatever is there
		// now was written by this run of the tool.
		_ = os.Remove(job.Destination)
		var convErr *ConversionError
		if !errors.As(err, &convErr) {
			err = &ConversionError{Source: job.Source, ExitCode: -1, Err: err}
		}
		return Outcome{Status: StatusConversionFailed, Err: err}
	}
	if !exists(job.Destination) {
		return Outcome{
			Status: StatusConversionFailed,
			Err:    &ConversionError{Source: job.Source, Err: ErrMissingOutput},
		}
	}

	if inv.preserve {
		return Outcome{Status: StatusConverted}
	}
	if err := os.Remove(job.Source); err != nil {
		return Outcome{Status: StatusDeleteFailed, Err: &DeleteError{Source: job.Source, Err: err}}
	}
	return Outcome{Status: StatusDeleted}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

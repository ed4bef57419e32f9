package convert

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Pool feeds walker entries to a fixed number of workers. Workers pull
// from a shared unbuffered channel, so an idle worker always takes the
// next entry and at most cfg.Workers jobs run at once.
type Pool struct {
	cfg      *Config
	walker   *Walker
	invoker  *Invoker
	observer Observer
	tally    Tally
}

// NewPool wires the matcher, walker and invoker for a validated config.
func NewPool(cfg *Config, tool Tool, observer Observer) *Pool {
	if observer == nil {
		observer = NopObserver{}
	}
	p := &Pool{
		cfg:      cfg,
		walker:   NewWalker(cfg, NewMatcher(cfg)),
		invoker:  NewInvoker(tool, cfg.Preserve, observer),
		observer: observer,
	}
	p.walker.OnError = func(err error) {
		p.tally.DiscoveryFailed()
		p.observer.DiscoveryFailed(err)
	}
	return p
}

// FeederWorker is the worker number reported for outcomes decided before
// dispatch.
const FeederWorker = -1

// Run walks the tree and converts every accepted file. It returns once the
// walk is exhausted and every dispatched job has an outcome. Cancelling ctx
// stops dispatch; jobs already running are waited for.
func (p *Pool) Run(ctx context.Context) Summary {
	start := time.Now()
	jobCtx := context.WithoutCancel(ctx)
	jobs := make(chan Job)

	var g errgroup.Group
	g.Go(func() error {
		defer close(jobs)
		// Destinations handed out in this run. A second entry mapping to
		// the same destination would overwrite the first one's output.
		claimed := make(map[string]bool)
		for e := range p.walker.Entries(ctx) {
			if ctx.Err() != nil {
				return nil
			}
			job := NewJob(p.cfg, e)
			p.tally.Discovered()
			p.observer.Discovered(e)

			if claimed[job.Destination] {
				p.finish(FeederWorker, Outcome{Job: job, Status: StatusSkipped, Reason: SkipDestinationClaimed})
				continue
			}
			claimed[job.Destination] = true

			select {
			case jobs <- job:
			case <-ctx.Done():
				return nil
			}
		}
		return nil
	})

	for worker := range p.cfg.Workers {
		g.Go(func() error {
			for job := range jobs {
				p.finish(worker, p.invoker.Execute(jobCtx, worker, job))
			}
			return nil
		})
	}
	_ = g.Wait()

	summary := p.tally.Snapshot()
	summary.Elapsed = time.Since(start)
	p.observer.Finished(summary)
	return summary
}

func (p *Pool) finish(worker int, out Outcome) {
	p.tally.Record(out)
	p.observer.Done(worker, out)
}

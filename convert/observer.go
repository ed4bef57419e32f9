package convert

// Observer receives pipeline events. Workers call it concurrently, so
// implementations must be safe for concurrent use. Calls must not block
// for long; a worker waits for each call to return.
type Observer interface {
	// Discovered is called when the walker hands an entry to the pool.
	Discovered(e Entry)
	// DiscoveryFailed is called for every *DiscoveryError.
	DiscoveryFailed(err error)
	// Invoking is called with the exact command line before a job runs,
	// and in dry-run mode instead of running it.
	Invoking(worker int, job Job, argv []string)
	// Done is called once per job with its outcome. worker is FeederWorker
	// for jobs skipped before dispatch.
	Done(worker int, o Outcome)
	// Finished is called once after every job has produced an outcome.
	Finished(s Summary)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) Discovered(Entry)            {}
func (NopObserver) DiscoveryFailed(error)       {}
func (NopObserver) Invoking(int, Job, []string) {}
func (NopObserver) Done(int, Outcome)           {}
func (NopObserver) Finished(Summary)            {}

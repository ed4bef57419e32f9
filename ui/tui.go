package ui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lepinkainen/ffconvert/convert"
)

// TUIReporter forwards pipeline events to a bubbletea program.
type TUIReporter struct {
	program *tea.Program
	base    string
	done    chan error

	// OnQuit is called when the user quits before the run finished. The
	// command uses it to stop dispatching new jobs.
	OnQuit func()
}

// NewTUIReporter creates the program without starting it. Paths are shown
// relative to the working directory.
func NewTUIReporter(workers int, version string, opts ...tea.ProgramOption) *TUIReporter {
	base, _ := os.Getwd()
	return &TUIReporter{
		program: tea.NewProgram(NewTUIModel(workers, version), opts...),
		base:    base,
		done:    make(chan error, 1),
	}
}

// Start runs the program in the background.
func (r *TUIReporter) Start() {
	go func() {
		final, err := r.program.Run()
		if m, ok := final.(TUIModel); ok && m.quitting && r.OnQuit != nil {
			r.OnQuit()
		}
		r.done <- err
	}()
}

// Wait blocks until the program has exited.
func (r *TUIReporter) Wait() error {
	return <-r.done
}

// Discovered implements convert.Observer.
func (r *TUIReporter) Discovered(e convert.Entry) {
	r.program.Send(JobDiscoveredMsg{Filename: e.Rel})
}

// DiscoveryFailed implements convert.Observer.
func (r *TUIReporter) DiscoveryFailed(err error) {
	r.program.Send(DiscoveryFailedMsg{Error: err})
}

// Invoking implements convert.Observer.
func (r *TUIReporter) Invoking(worker int, job convert.Job, argv []string) {
	r.program.Send(WorkerStartedMsg{
		WorkerID: worker,
		Filename: DisplayPath(r.base, job.Source),
		Command:  CommandLine(argv),
	})
}

// Done implements convert.Observer.
func (r *TUIReporter) Done(worker int, o convert.Outcome) {
	r.program.Send(WorkerCompletedMsg{
		WorkerID: worker,
		Filename: DisplayPath(r.base, o.Job.Source),
		NewName:  DisplayPath(r.base, o.Job.Destination),
		Status:   o.Status,
		Reason:   o.Reason,
		Error:    o.Err,
	})
}

// Finished implements convert.Observer and makes the program exit.
func (r *TUIReporter) Finished(s convert.Summary) {
	r.program.Send(RunFinishedMsg{Summary: s})
}

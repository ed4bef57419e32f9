package ui

import "github.com/lepinkainen/ffconvert/convert"

// TUI Message Types for worker communication
type JobDiscoveredMsg struct {
	Filename string
}

type WorkerStartedMsg struct {
	WorkerID int
	Filename string
	Command  string
}

type WorkerCompletedMsg struct {
	WorkerID int
	Filename string
	NewName  string
	Status   convert.Status
	Reason   convert.SkipReason
	Error    error
}

type DiscoveryFailedMsg struct {
	Error error
}

type RunFinishedMsg struct {
	Summary convert.Summary
}

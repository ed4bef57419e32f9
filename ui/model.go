package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lepinkainen/ffconvert/convert"
)

// File log entry for the processed files list
type FileLogEntry struct {
	OriginalName string
	NewName      string
	Status       convert.Status
	Reason       convert.SkipReason
	Error        string
}

func (f FileLogEntry) FilterValue() string { return f.OriginalName }
func (f FileLogEntry) Title() string       { return f.OriginalName }
func (f FileLogEntry) Description() string {
	switch {
	case f.Error != "":
		return fmt.Sprintf("❌ %s", f.Error)
	case f.Status == convert.StatusSkipped:
		return fmt.Sprintf("⏭️  %s", f.Reason)
	case f.Status == convert.StatusDeleted:
		return fmt.Sprintf("✓ → %s (original removed)", f.NewName)
	default:
		return fmt.Sprintf("✓ → %s", f.NewName)
	}
}

// Worker state tracking
type WorkerState struct {
	ID          int
	CurrentFile string
	Status      string // "idle", "converting"
}

// TUIModel shows overall progress, what each worker is converting, and a
// log of finished files.
type TUIModel struct {
	// Application state
	discovered int
	lastFound  string
	completed  int
	failed     int
	warnings   []string
	workers    []*WorkerState
	entries    []FileLogEntry
	summary    *convert.Summary

	// UI components
	overallProgress progress.Model
	fileList        list.Model

	// Layout
	width  int
	height int

	quitting bool

	// Version for display
	Version string
}

// NewTUIModel creates a new TUI model
func NewTUIModel(numWorkers int, version string) TUIModel {
	workers := make([]*WorkerState, numWorkers)
	for i := range workers {
		workers[i] = &WorkerState{ID: i, Status: "idle"}
	}

	fileList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	fileList.Title = "Processed Files"

	return TUIModel{
		workers:         workers,
		overallProgress: progress.New(progress.WithDefaultGradient()),
		fileList:        fileList,
		Version:         version,
	}
}

// Init implements tea.Model
func (m TUIModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.fileList.SetSize(msg.Width-4, msg.Height/3)

	case JobDiscoveredMsg:
		m.discovered++
		m.lastFound = msg.Filename

	case DiscoveryFailedMsg:
		m.warnings = append(m.warnings, msg.Error.Error())

	case WorkerStartedMsg:
		if w := m.worker(msg.WorkerID); w != nil {
			w.CurrentFile = msg.Filename
			w.Status = "converting"
		}

	case WorkerCompletedMsg:
		if w := m.worker(msg.WorkerID); w != nil {
			w.CurrentFile = ""
			w.Status = "idle"
		}
		m.completed++
		if msg.Status.Failed() {
			m.failed++
		}

		entry := FileLogEntry{
			OriginalName: msg.Filename,
			NewName:      msg.NewName,
			Status:       msg.Status,
			Reason:       msg.Reason,
		}
		if msg.Error != nil {
			entry.Error = msg.Error.Error()
		}
		m.entries = append(m.entries, entry)
		items := make([]list.Item, len(m.entries))
		for i, e := range m.entries {
			items[i] = e
		}
		m.fileList.SetItems(items)

	case RunFinishedMsg:
		s := msg.Summary
		m.summary = &s
		return m, tea.Quit
	}

	return m, nil
}

func (m TUIModel) worker(id int) *WorkerState {
	if id < 0 || id >= len(m.workers) {
		return nil
	}
	return m.workers[id]
}

// View implements tea.Model
func (m TUIModel) View() string {
	if m.quitting {
		return "Stopping: waiting for running conversions to finish...\n"
	}

	header := HeaderStyle.Render(fmt.Sprintf("ffconvert %s", m.Version))

	percent := 0.0
	if m.discovered > 0 {
		percent = float64(m.completed) / float64(m.discovered)
	}
	overallView := fmt.Sprintf("Overall Progress: %s (%d/%d found, %d failed)",
		m.overallProgress.ViewAs(percent),
		m.completed,
		m.discovered,
		m.failed)

	if m.lastFound != "" && m.summary == nil {
		overallView += "\n" + DimStyle.Render("Found: "+m.lastFound)
	}

	workerViews := []string{"Worker Status:"}
	for _, w := range m.workers {
		workerViews = append(workerViews, fmt.Sprintf("Worker %d: %-12s %s", w.ID+1, w.Status, w.CurrentFile))
	}

	sections := []string{header, overallView, strings.Join(workerViews, "\n")}
	if n := len(m.warnings); n > 0 {
		sections = append(sections, WarnStyle.Render(fmt.Sprintf("⚠️  %d unreadable path(s), last: %s", n, m.warnings[n-1])))
	}
	sections = append(sections, m.fileList.View())

	if m.summary != nil {
		sections = append(sections, SuccessStyle.Render("Done."))
	} else {
		sections = append(sections, "Controls: [q] Quit")
	}

	return strings.Join(sections, "\n\n")
}

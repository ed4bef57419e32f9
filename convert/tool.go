package convert

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Tool runs the external conversion program for one job.
type Tool interface {
	// Command returns the full command line, program first.
	Command(job Job) []string
	// Run executes the command and waits for it. A nil error means the
	// program exited successfully.
	Run(ctx context.Context, job Job) error
}

// ExecTool runs an ffmpeg-compatible program as
// `<path> -i <source> <extra args...> <destination>`.
type ExecTool struct {
	Path string
}

// NewExecTool returns a tool for the named program, DefaultTool when empty.
func NewExecTool(path string) *ExecTool {
	if path == "" {
		path = DefaultTool
	}
	return &ExecTool{Path: path}
}

// Command builds the argument vector. The extra arguments stay between the
// input and the output because ffmpeg applies options to the next file.
func (t *ExecTool) Command(job Job) []string {
	argv := make([]string, 0, len(job.ExtraArgs)+4)
	argv = append(argv, t.Path, "-i", job.Source)
	argv = append(argv, job.ExtraArgs...)
	argv = append(argv, job.Destination)
	return argv
}

// Run starts the program with stdin closed and stderr captured. Failures
// are returned as *ConversionError.
func (t *ExecTool) Run(ctx context.Context, job Job) error {
	argv := t.Command(job)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	if err == nil {
		return nil
	}

	convErr := &ConversionError{
		Source:   job.Source,
		ExitCode: -1,
		Stderr:   lastLine(stderrBuf.String()),
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		convErr.ExitCode = exitErr.ExitCode()
	}
	return convErr
}

// lastLine returns the last non-empty line of s, which is where ffmpeg
// prints the reason it gave up.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

package convert

import (
	"errors"
	"fmt"
)

// ErrMissingOutput is wrapped by a ConversionError when the tool exits
// successfully but the destination file does not exist.
var ErrMissingOutput = errors.New("tool reported success but produced no output file")

// ConfigError is a fatal problem with the run settings, raised before any
// discovery or conversion starts.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// DiscoveryError records an unreadable or vanished part of the tree. The
// walker skips the affected subtree and continues.
type DiscoveryError struct {
	Path string
	Err  error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// ConversionError describes why the tool did not produce a destination file.
type ConversionError struct {
	Source   string
	ExitCode int    // -1 when the process never started or was killed
	Stderr   string // last non-empty line of the tool's stderr
	Err      error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("converting %s failed", e.Source)
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(" (exit status %d)", e.ExitCode)
	}
	if e.Stderr != "" {
		return msg + ": " + e.Stderr
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error { return e.Err }

// DeleteError means the conversion succeeded but the source could not be
// removed. The converted file is kept.
type DeleteError struct {
	Source string
	Err    error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("converted but could not remove %s: %v", e.Source, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }

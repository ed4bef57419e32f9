package convert

import (
	"path/filepath"
	"strings"
)

// Job is the conversion of one discovered file.
type Job struct {
	Source      string
	Destination string
	ExtraArgs   []string
	DryRun      bool
}

// NewJob derives the job for an entry: the destination keeps the source's
// directory and stem and takes the configured output extension.
func NewJob(cfg *Config, e Entry) Job {
	return Job{
		Source:      e.Path,
		Destination: DestinationPath(e.Path, cfg.To),
		ExtraArgs:   cfg.ExtraArgs,
		DryRun:      cfg.DryRun,
	}
}

// DestinationPath replaces the extension of path with ext.
func DestinationPath(path, ext string) string {
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	return stem + "." + ext
}

package convert

import (
	"path/filepath"
	"strings"
)

// Verdict is the result of matching one filesystem entry.
type Verdict int

const (
	Accept Verdict = iota
	RejectDirectory
	RejectSymlink
	RejectDepth
	RejectDevice
	RejectExtension
)

func (v Verdict) String() string {
	switch v {
	case Accept:
		return "accepted"
	case RejectDirectory:
		return "directory"
	case RejectSymlink:
		return "symlink not followed"
	case RejectDepth:
		return "too deep"
	case RejectDevice:
		return "other filesystem"
	case RejectExtension:
		return "extension mismatch"
	default:
		return "unknown"
	}
}

// Structural reports whether the rejection applies to everything beneath
// the entry, so the walker may prune it.
func (v Verdict) Structural() bool {
	return v == RejectSymlink || v == RejectDepth || v == RejectDevice
}

// Candidate is what the walker knows about an entry when it asks the matcher.
type Candidate struct {
	Name          string
	Depth         int  // 0 for entries directly inside the root
	IsDir         bool // after resolving symlinks
	IsSymlink     bool
	CrossesDevice bool // lives on a different device than the root
}

// Matcher decides which entries become conversion jobs. It does no I/O.
type Matcher struct {
	exts        map[string]bool
	maxDepth    int
	followLinks bool
	sameFS      bool
}

// NewMatcher builds a matcher from a validated config.
func NewMatcher(cfg *Config) *Matcher {
	exts := make(map[string]bool, len(cfg.From))
	for _, ext := range cfg.From {
		exts[strings.ToLower(ext)] = true
	}
	return &Matcher{
		exts:        exts,
		maxDepth:    cfg.MaxDepth,
		followLinks: cfg.FollowLinks,
		sameFS:      cfg.SameFS,
	}
}

// Check applies the file rules in order: directories, symlinks, depth,
// device, and finally a case-insensitive extension match.
func (m *Matcher) Check(c Candidate) Verdict {
	if c.IsDir {
		return RejectDirectory
	}
	if v := m.structural(c, c.Depth); v != Accept {
		return v
	}
	if !m.MatchExt(c.Name) {
		return RejectExtension
	}
	return Accept
}

// Descend decides whether the walker should read a directory. The depth
// check applies to the directory's children, so with a maximum depth of 0
// no subdirectory is entered.
func (m *Matcher) Descend(c Candidate) Verdict {
	return m.structural(c, c.Depth+1)
}

// MatchExt reports whether name carries one of the source extensions.
func (m *Matcher) MatchExt(name string) bool {
	ext := filepath.Ext(name)
	if ext == "" {
		return false
	}
	return m.exts[strings.ToLower(ext[1:])]
}

func (m *Matcher) structural(c Candidate, depth int) Verdict {
	if c.IsSymlink && !m.followLinks {
		return RejectSymlink
	}
	if m.maxDepth >= 0 && depth > m.maxDepth {
		return RejectDepth
	}
	if m.sameFS && c.CrossesDevice {
		return RejectDevice
	}
	return Accept
}

package convert

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
)

// Entry is a file the matcher accepted.
type Entry struct {
	Path  string // root joined with Rel
	Rel   string // path relative to the root
	Depth int
}

// Walker lists convertible files under a root directory. The traversal is
// depth-first with siblings in lexical order, so a fixed tree always
// yields the same sequence.
type Walker struct {
	root    string
	matcher *Matcher
	follow  bool
	sameFS  bool

	// OnError receives a *DiscoveryError for every unreadable directory or
	// vanished entry. The walk continues past it. May be nil.
	OnError func(error)
}

// NewWalker creates a walker for a validated config.
func NewWalker(cfg *Config, m *Matcher) *Walker {
	return &Walker{
		root:    cfg.Root,
		matcher: m,
		follow:  cfg.FollowLinks,
		sameFS:  cfg.SameFS,
	}
}

type walkState struct {
	rootDev uint64
	needID  bool
	dirs    map[fileID]bool
	files   map[fileID]bool
}

// Entries returns a lazy sequence of accepted files. Each call starts a
// fresh walk. The sequence ends early when ctx is cancelled.
func (w *Walker) Entries(ctx context.Context) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		st := &walkState{
			needID: identitySupported && (w.follow || w.sameFS),
			dirs:   make(map[fileID]bool),
			files:  make(map[fileID]bool),
		}
		if st.needID {
			id, err := statID(w.root)
			if err != nil {
				w.report(w.root, err)
				return
			}
			st.rootDev = id.dev
			st.dirs[id] = true
		}
		w.walkDir(ctx, st, w.root, "", 0, yield)
	}
}

// walkDir visits the children of dir, which sit at the given depth. It
// returns false when the consumer stopped or ctx was cancelled.
func (w *Walker) walkDir(ctx context.Context, st *walkState, dir, rel string, depth int, yield func(Entry) bool) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// ReadDir still returns whatever it read before the failure.
		w.report(dir, err)
	}

	for _, de := range entries {
		if ctx.Err() != nil {
			return false
		}

		path := filepath.Join(dir, de.Name())
		relPath := filepath.Join(rel, de.Name())
		c := Candidate{
			Name:      de.Name(),
			Depth:     depth,
			IsDir:     de.IsDir(),
			IsSymlink: de.Type()&fs.ModeSymlink != 0,
		}

		if c.IsSymlink {
			if !w.follow {
				continue
			}
			fi, err := os.Stat(path)
			if err != nil {
				w.report(path, err)
				continue
			}
			c.IsDir = fi.IsDir()
			if !c.IsDir && !fi.Mode().IsRegular() {
				continue
			}
		} else if !c.IsDir && !de.Type().IsRegular() {
			continue
		}

		if c.IsDir {
			if !w.enterDir(st, path, c) {
				continue
			}
			if !w.walkDir(ctx, st, path, relPath, depth+1, yield) {
				return false
			}
			continue
		}

		if !w.acceptFile(st, path, c) {
			continue
		}
		if !yield(Entry{Path: path, Rel: relPath, Depth: depth}) {
			return false
		}
	}
	return true
}

func (w *Walker) enterDir(st *walkState, path string, c Candidate) bool {
	if w.matcher.Descend(c) != Accept {
		return false
	}
	if !st.needID {
		return true
	}

	id, err := statID(path)
	if err != nil {
		w.report(path, err)
		return false
	}
	c.CrossesDevice = id.dev != st.rootDev
	if w.matcher.Descend(c) != Accept {
		return false
	}
	if st.dirs[id] {
		// Already visited through another link; also breaks cycles.
		return false
	}
	st.dirs[id] = true
	return true
}

func (w *Walker) acceptFile(st *walkState, path string, c Candidate) bool {
	if w.matcher.Check(c) != Accept {
		return false
	}
	if !st.needID {
		return true
	}

	id, err := statID(path)
	if err != nil {
		w.report(path, err)
		return false
	}
	c.CrossesDevice = id.dev != st.rootDev
	if w.matcher.Check(c) != Accept {
		return false
	}
	if w.follow {
		if st.files[id] {
			return false
		}
		st.files[id] = true
	}
	return true
}

func (w *Walker) report(path string, err error) {
	if w.OnError != nil {
		w.OnError(&DiscoveryError{Path: path, Err: err})
	}
}

package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Verbosity gates which pipeline events reach the user.
type Verbosity int

const (
	Quiet Verbosity = iota
	Normal
	Verbose
)

func (v Verbosity) String() string {
	switch v {
	case Quiet:
		return "quiet"
	case Verbose:
		return "verbose"
	default:
		return "normal"
	}
}

// Unbounded disables the depth limit when used as Config.MaxDepth.
const Unbounded = -1

// DefaultTool is the conversion program used when Config.Tool is empty.
const DefaultTool = "ffmpeg"

// Config holds the settings for one conversion run. It is built once from
// user input, validated, and then only read.
type Config struct {
	From        []string  // Source extensions, without leading dot
	To          string    // Destination extension, without leading dot
	Root        string    // Directory to search
	MaxDepth    int       // Unbounded, or the deepest allowed entry depth (0 = root only)
	FollowLinks bool      // Follow symbolic links to files and directories
	SameFS      bool      // Do not cross filesystem boundaries
	Workers     int       // Concurrent jobs; <0 means runtime.NumCPU()
	Preserve    bool      // Keep source files after a successful conversion
	DryRun      bool      // Report jobs without running or deleting anything
	Verbosity   Verbosity // Output level
	ExtraArgs   []string  // Passed verbatim to the tool between input and output
	Tool        string    // Conversion program, DefaultTool when empty
}

// DefaultConfig returns the settings used when no flags are given.
func DefaultConfig() *Config {
	return &Config{
		From:      []string{"mp3"},
		To:        "opus",
		Root:      ".",
		MaxDepth:  Unbounded,
		Workers:   -1,
		Verbosity: Normal,
		Tool:      DefaultTool,
	}
}

// Validate normalises extensions, resolves the worker count and checks
// that the root is a readable directory. Any problem is a *ConfigError and
// must stop the run before discovery starts.
func (c *Config) Validate() error {
	if c.Workers == 0 {
		return &ConfigError{Field: "workers", Reason: "must be positive"}
	}
	if c.Workers < 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.MaxDepth < Unbounded {
		return &ConfigError{Field: "max-depth", Reason: fmt.Sprintf("must be non-negative, got %d", c.MaxDepth)}
	}
	if c.Tool == "" {
		c.Tool = DefaultTool
	}

	c.To = normalizeExt(c.To)
	if c.To == "" {
		return &ConfigError{Field: "output", Reason: "extension is empty"}
	}

	if len(c.From) == 0 {
		return &ConfigError{Field: "from", Reason: "no source extension given"}
	}
	seen := make(map[string]bool, len(c.From))
	from := make([]string, 0, len(c.From))
	for _, ext := range c.From {
		ext = normalizeExt(ext)
		if ext == "" {
			return &ConfigError{Field: "from", Reason: "extension is empty"}
		}
		if ext == c.To {
			return &ConfigError{Field: "from", Reason: fmt.Sprintf("source extension %q equals the output extension, files would be overwritten", ext)}
		}
		if seen[ext] {
			continue
		}
		seen[ext] = true
		from = append(from, ext)
	}
	c.From = from

	if c.Root == "" {
		c.Root = "."
	}
	if err := checkReadableDir(c.Root); err != nil {
		return &ConfigError{Field: "target", Reason: "cannot read target directory", Err: err}
	}

	return nil
}

// Bounded reports whether a depth limit is configured.
func (c *Config) Bounded() bool {
	return c.MaxDepth >= 0
}

func checkReadableDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	if _, err := f.ReadDir(1); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// normalizeExt lowercases an extension and strips surrounding space and a
// leading dot.
func normalizeExt(ext string) string {
	ext = strings.TrimSpace(ext)
	ext = strings.TrimPrefix(ext, ".")
	return strings.ToLower(ext)
}

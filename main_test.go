package main

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/ffconvert/types"
)

func TestCLI_Structure(t *testing.T) {
	// Compile-time check that the expected commands exist
	var cli CLI
	_ = cli.Convert
	_ = cli.Version
}

func parse(t *testing.T, args ...string) *CLI {
	t.Helper()
	var cli CLI
	parser, err := newParser(&cli, &types.AppContext{Version: "test"}, kong.Exit(func(int) {
		t.Fatalf("unexpected exit while parsing %v", args)
	}))
	if err != nil {
		t.Fatalf("Failed to build parser: %v", err)
	}
	if _, err := parser.Parse(args); err != nil {
		t.Fatalf("Failed to parse %v: %v", args, err)
	}
	return &cli
}

func TestConvertCmd_Defaults(t *testing.T) {
	cli := parse(t)
	c := cli.Convert

	if !slices.Equal(c.From, []string{"mp3"}) {
		t.Errorf("Expected default from [mp3], got %v", c.From)
	}
	if c.Output != "opus" {
		t.Errorf("Expected default output opus, got %s", c.Output)
	}
	wd, err := filepath.Abs(".")
	if err != nil {
		t.Fatal(err)
	}
	if c.Target != wd {
		t.Errorf("Expected default target %s, got %s", wd, c.Target)
	}
	if c.MaxDepth != -1 {
		t.Errorf("Expected default max depth -1, got %d", c.MaxDepth)
	}
	if c.Workers != -1 {
		t.Errorf("Expected default workers -1 (CPU count), got %d", c.Workers)
	}
	if c.Tool != "ffmpeg" {
		t.Errorf("Expected default tool ffmpeg, got %s", c.Tool)
	}
	if c.DryRun || c.Verbose || c.Quiet || c.FollowLinks || c.SameFS || c.PreserveFiles || c.TUI {
		t.Errorf("Expected all switches off by default: %+v", c)
	}
}

func TestConvertCmd_Flags(t *testing.T) {
	target := t.TempDir()
	cli := parse(t, "-d", "-v", "-q", "-o", "ogg", "-t", target, "-m", "2", "-f", "-s", "-n", "4", "-p", "--tool", "/opt/ffmpeg", "--tui", "wav", "flac")
	c := cli.Convert

	if !slices.Equal(c.From, []string{"wav", "flac"}) {
		t.Errorf("Expected from [wav flac], got %v", c.From)
	}
	if c.Output != "ogg" || c.Target != target || c.MaxDepth != 2 || c.Workers != 4 || c.Tool != "/opt/ffmpeg" {
		t.Errorf("Value flags not parsed: %+v", c)
	}
	if !c.DryRun || !c.Verbose || !c.Quiet || !c.FollowLinks || !c.SameFS || !c.PreserveFiles || !c.TUI {
		t.Errorf("Switches not parsed: %+v", c)
	}
}

func TestConvertCmd_LongFlags(t *testing.T) {
	cli := parse(t, "--dry-run", "--max-depth", "0", "--follow-links", "--same-fs", "--workers", "1", "--preserve-files", "--output", "flac")
	c := cli.Convert

	if !c.DryRun || c.MaxDepth != 0 || !c.FollowLinks || !c.SameFS || c.Workers != 1 || !c.PreserveFiles || c.Output != "flac" {
		t.Errorf("Long flags not parsed: %+v", c)
	}
}

func TestConvertCmd_ExplicitCommand(t *testing.T) {
	cli := parse(t, "convert", "m4a")
	if !slices.Equal(cli.Convert.From, []string{"m4a"}) {
		t.Errorf("Expected from [m4a], got %v", cli.Convert.From)
	}
}

func TestSplitPassthrough(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		own         []string
		passthrough []string
	}{
		{"No separator", []string{"-d", "mp3"}, []string{"-d", "mp3"}, nil},
		{"Separator", []string{"mp3", "--", "-b:a", "96k"}, []string{"mp3"}, []string{"-b:a", "96k"}},
		{"Only first separator splits", []string{"-v", "--", "-af", "--", "x"}, []string{"-v"}, []string{"-af", "--", "x"}},
		{"Trailing separator", []string{"mp3", "--"}, []string{"mp3"}, []string{}},
		{"Empty", nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			own, passthrough := splitPassthrough(tt.args)
			if !slices.Equal(own, tt.own) {
				t.Errorf("Expected own args %v, got %v", tt.own, own)
			}
			if !slices.Equal(passthrough, tt.passthrough) {
				t.Errorf("Expected passthrough %v, got %v", tt.passthrough, passthrough)
			}
		})
	}
}

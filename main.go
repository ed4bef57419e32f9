package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/ffconvert/cmd"
	"github.com/lepinkainen/ffconvert/types"
)

var Version = "dev"

type CLI struct {
	Convert cmd.ConvertCmd   `cmd:"" default:"withargs" help:"Convert matching files under a directory tree"`
	Version kong.VersionFlag `short:"V" help:"Print version information and quit"`
}

// splitPassthrough separates the program's own arguments from the ones
// after the first "--", which go to the conversion tool unchanged.
func splitPassthrough(args []string) (own, passthrough []string) {
	for i, arg := range args {
		if arg == "--" {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}

func newParser(cli *CLI, appCtx *types.AppContext, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("ffconvert"),
		kong.Description("Batch convert media files with ffmpeg, replacing the originals.\n\nArguments after -- are passed to the tool between input and output."),
		kong.UsageOnError(),
		kong.Vars{"version": appCtx.Version},
		kong.Bind(appCtx),
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	args, passthrough := splitPassthrough(os.Args[1:])
	appCtx := &types.AppContext{Version: Version, Passthrough: passthrough}

	var cli CLI
	parser, err := newParser(&cli, appCtx)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

package main

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"colortrans/imageio"
	"colortrans/inspect"
	"colortrans/recolor"
	"colortrans/transfer"

	"github.com/alecthomas/kong"
)

var version = "dev"

const (
	exitOK = iota
	exitFailure
	exitUsage
	exitBadInput
	exitSingular
)

type CLI struct {
	LogLevel  string           `help:"Minimum level of log messages (${enum})." enum:"debug,info,warn,error" default:"info" env:"COLORTRANS_LOG_LEVEL"`
	LogFormat string           `help:"Format of log messages (${enum})." enum:"text,json" default:"text" env:"COLORTRANS_LOG_FORMAT"`
	Version   kong.VersionFlag `help:"Print version and exit."`

	Recolor recolor.CLICmd `cmd:"" default:"withargs" help:"Transfer the colors of a reference image onto a content image."`
	Stats   inspect.CLICmd `cmd:"" help:"Print the color statistics of an image or palette."`
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("colortrans"),
		kong.Description("Recolor a content image with the color statistics of a reference image."),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
			"methods": strings.Join(transfer.Names(), ","),
			"formats": strings.Join(imageio.Formats, ","),
		},
	}, options...)
	return kong.New(cli, options...)
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, transfer.ErrShapeMismatch), errors.Is(err, transfer.ErrEmptyImage):
		return exitBadInput
	case errors.Is(err, transfer.ErrSingularMatrix):
		return exitSingular
	default:
		return exitFailure
	}
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		slog.Error("invalid command line definition", "error", err)
		os.Exit(exitFailure)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		parser.Errorf("%s", err)
		os.Exit(exitUsage)
	}

	logger := newLogger(os.Stderr, cli.LogLevel, cli.LogFormat)
	slog.SetDefault(logger)

	if err := kctx.Run(logger); err != nil {
		logger.Error("failed", "command", kctx.Command(), "error", err)
		os.Exit(exitCode(err))
	}
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"rasterkit/invert"
	"rasterkit/mangle"
	"rasterkit/movie"
	"rasterkit/parallel"
	"rasterkit/sys"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

type CLI struct {
	LogLevel  string `help:"Log level" enum:"debug,info,warn,error" default:"info"`
	LogFormat string `help:"Log output format" enum:"text,json,logfmt" default:"text"`
	Workers   int    `help:"Number of parallel workers, 0 uses every CPU" default:"0"`

	Invert invert.CLICmd `cmd:"" help:"Invert the colors of one image"`
	Mangle mangle.CLICmd `cmd:"" help:"Resize, invert and repaint every image of a folder"`
	Movie  movie.CLICmd  `cmd:"" help:"Make a slideshow movie that cross-fades between images"`
}

func setupLogging(level, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "rasterkit",
		Level:           lvl,
	})
	switch format {
	case "json":
		logger.SetFormatter(log.JSONFormatter)
	case "logfmt":
		logger.SetFormatter(log.LogfmtFormatter)
	default:
		logger.SetFormatter(log.TextFormatter)
	}

	slog.SetDefault(slog.New(logger))
	return nil
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("rasterkit"),
		kong.Description("Small image manipulation tools."),
		kong.UsageOnError(),
	)

	if err := setupLogging(cli.LogLevel, cli.LogFormat); err != nil {
		sys.Die(1, "%v", err)
	}

	pool := parallel.Start(cli.Workers)
	slog.Debug("running", "command", kctx.Command(), "workers", pool.Size())

	err := kctx.Run(pool)
	pool.Close()
	if err != nil {
		sys.Die(1, "%s failed: %v", kctx.Command(), err)
	}
}

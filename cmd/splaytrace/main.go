package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(-1)
	}
}

func run(args []string) error {

	app := cli.App{
		Name:      "splaytrace",
		Usage:     "replay a script of splay forest queries and print every step",
		ArgsUsage: "[script]",
		Version:   versioninfo.Short(),
	}
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "script",
			Usage:   "query script to run; stdin when empty",
			EnvVars: []string{"SPLAYTRACE_SCRIPT"},
		},
		&cli.BoolFlag{
			Name:    "steps",
			Usage:   "print every intermediate event with the forest it shows",
			Value:   true,
			EnvVars: []string{"SPLAYTRACE_STEPS"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log verbosity level (eg: warn, info, debug)",
			Value:   "warn",
			EnvVars: []string{"SPLAYTRACE_LOG_LEVEL", "LOG_LEVEL"},
		},
	}
	app.Action = runTrace
	return app.Run(args)
}

func configLogger(cctx *cli.Context, writer io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
}

func runTrace(cctx *cli.Context) error {
	logger := configLogger(cctx, cctx.App.ErrWriter)

	var in io.Reader = os.Stdin
	p := cctx.String("script")
	if p == "" {
		p = cctx.Args().First()
	}
	if p != "" && p != "-" {
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	lines, err := parseScript(in)
	if err != nil {
		return err
	}
	logger.Info("script loaded", "queries", len(lines), "steps", cctx.Bool("steps"))
	return trace(lines, cctx.App.Writer, cctx.Bool("steps"), logger)
}

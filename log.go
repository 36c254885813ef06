package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/inconshreveable/log15"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// useColor decides whether diagnostics on stderr get ANSI colors.
func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		fd := os.Stderr.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
}

// setupOutput configures the root logger and the color package and returns
// the writer diagnostics should go to.
func setupOutput(cfg Config) io.Writer {
	colored := useColor(cfg.Run.Color)
	color.NoColor = !colored

	var stderr io.Writer = os.Stderr
	format := log15.LogfmtFormat()
	if colored {
		stderr = colorable.NewColorableStderr()
		format = log15.TerminalFormat()
	}
	setupLogging(cfg.Log.Verbosity, log15.StreamHandler(stderr, format))
	return stderr
}

func setupLogging(verbosity int, h log15.Handler) {
	log15.Root().SetHandler(log15.LvlFilterHandler(log15.Lvl(verbosity), h))
}

package main

import (
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v1"
)

var (
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug",
		Value: DefaultConfig.Log.Verbosity,
	}
	colorFlag = cli.StringFlag{
		Name:  "color",
		Usage: "Colorize diagnostics: auto, always or never",
		Value: DefaultConfig.Run.Color,
	}
	inputFlag = cli.StringFlag{
		Name:  "input",
		Usage: "File that read statements take words from (default: stdin)",
	}

	astFormatFlag = cli.StringFlag{
		Name:  "format",
		Usage: "Output format: sexpr or yaml",
		Value: "sexpr",
	}
	astExprFlag = cli.BoolFlag{
		Name:  "expr",
		Usage: "Treat the argument as an inline expression instead of a file",
	}
)

var (
	runCommand = cli.Command{
		Action:    runFile,
		Name:      "run",
		Usage:     "Execute a Mini-PL program",
		ArgsUsage: "<file>",
	}
	checkCommand = cli.Command{
		Action:    checkFile,
		Name:      "check",
		Usage:     "Parse and type-check a Mini-PL program",
		ArgsUsage: "<file>",
	}
	evalCommand = cli.Command{
		Action:    evalCode,
		Name:      "eval",
		Usage:     "Execute inline Mini-PL code",
		ArgsUsage: "<code>",
	}
	tokensCommand = cli.Command{
		Action:    dumpTokens,
		Name:      "tokens",
		Usage:     "Print the tokens of a Mini-PL program",
		ArgsUsage: "<file>",
	}
	astCommand = cli.Command{
		Action:    dumpAST,
		Name:      "ast",
		Usage:     "Print the syntax tree of a Mini-PL program",
		ArgsUsage: "<file|expression>",
		Flags:     []cli.Flag{astFormatFlag, astExprFlag},
	}
	replCommand = cli.Command{
		Action: runREPL,
		Name:   "repl",
		Usage:  "Start an interactive session",
	}
	dumpConfigCommand = cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "[file]",
		Description: `The dumpconfig command shows configuration values.`,
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "minipl"
	app.Usage = "Mini-PL interpreter"
	app.ArgsUsage = "<file>"
	app.HideVersion = true
	app.Flags = []cli.Flag{configFileFlag, verbosityFlag, colorFlag, inputFlag}
	app.Commands = []cli.Command{
		runCommand,
		checkCommand,
		evalCommand,
		tokensCommand,
		astCommand,
		replCommand,
		dumpConfigCommand,
	}
	app.Action = runFile
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

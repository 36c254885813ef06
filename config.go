package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/naoina/toml"
	"gopkg.in/urfave/cli.v1"
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// Config is the interpreter configuration, loaded from an optional TOML file
// and then overridden by command line flags.
type Config struct {
	Log LogConfig
	Run RunConfig
}

type LogConfig struct {
	// Verbosity is the most detailed log level shown:
	// 0=crit, 1=error, 2=warn, 3=info, 4=debug.
	Verbosity int
}

type RunConfig struct {
	Color string // auto, always or never
	Input string `toml:",omitempty"` // file read statements take words from; stdin if empty
}

var DefaultConfig = Config{
	Log: LogConfig{Verbosity: 3},
	Run: RunConfig{Color: "auto"},
}

func loadConfig(file string, cfg *Config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	return decodeConfig(file, f, cfg)
}

func decodeConfig(name string, r io.Reader, cfg *Config) error {
	err := tomlSettings.NewDecoder(bufio.NewReader(r)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(name + ", " + err.Error())
	}
	return err
}

// makeConfig loads the defaults, then the config file, then the flags.
func makeConfig(ctx *cli.Context) (Config, error) {
	cfg := DefaultConfig

	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}

	if ctx.GlobalIsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.GlobalInt(verbosityFlag.Name)
	}
	if ctx.GlobalIsSet(colorFlag.Name) {
		cfg.Run.Color = ctx.GlobalString(colorFlag.Name)
	}
	if ctx.GlobalIsSet(inputFlag.Name) {
		cfg.Run.Input = ctx.GlobalString(inputFlag.Name)
	}

	switch cfg.Run.Color {
	case "auto", "always", "never":
	default:
		return cfg, fmt.Errorf("invalid color mode %q (want auto, always or never)", cfg.Run.Color)
	}
	return cfg, nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	dump := os.Stdout
	if ctx.NArg() > 0 {
		dump, err = os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer dump.Close()
	}
	_, err = dump.Write(out)
	return err
}

package main

import (
	"context"
	"os"

	"github.com/aretw0/markov/internal/cli"
	"github.com/aretw0/markov/internal/config"
	"github.com/aretw0/markov/internal/logging"
	"github.com/spf13/cobra"
)

// app is built from flags and the config file before any subcommand runs.
var app *cli.App

var rootCmd = &cobra.Command{
	Use:   "markov",
	Short: "markov generates random walks over Markov chains",
	Long: `markov builds a Markov chain from a seed input and prints random walks over it.

Two clients ship with it: "tweets" learns word transitions from a text file
and "snakes" models a 100-cell snakes and ladders board. Negative numbers are
read as positional arguments.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := positionalArgs(cmd, args); err != nil {
			return err
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		app = cli.New(cfg, os.Stdout, logging.New(level))
		return nil
	},
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// positionalArgs applies the flags mixed into args for commands that parse
// their own flags and returns what is left. Other commands get args back.
func positionalArgs(cmd *cobra.Command, args []string) ([]string, error) {
	if !cmd.DisableFlagParsing {
		return args, nil
	}
	flags := cmd.Flags()
	flags.AddFlagSet(cmd.InheritedFlags())
	return cli.SplitArgs(flags, args)
}

// loadConfig reads the config file, then applies explicitly set flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("sink") {
		cfg.Sink.Type, _ = flags.GetString("sink")
	}
	if flags.Changed("redis-addr") {
		cfg.Sink.Redis.Addr, _ = flags.GetString("redis-addr")
	}
	if flags.Changed("redis-key") {
		cfg.Sink.Redis.Key, _ = flags.GetString("redis-key")
	}
	if flags.Changed("color") {
		cfg.Color, _ = flags.GetString("color")
	}
	return cfg, cfg.Validate()
}

func init() {
	defaults := config.Default()
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file (default ./"+config.DefaultPath+" if present)")
	pf.String("log-level", defaults.LogLevel, "Log level: debug, info, warn or error")
	pf.String("sink", defaults.Sink.Type, "Walk sink: stdout or redis")
	pf.String("redis-addr", defaults.Sink.Redis.Addr, "Redis address for --sink redis")
	pf.String("redis-key", defaults.Sink.Redis.Key, "Redis list receiving walks")
	pf.String("color", defaults.Color, "Color output: auto, always or never")
}

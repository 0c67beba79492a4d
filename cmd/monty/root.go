package main

import (
	"fmt"

	"monty/internal/config"
	"monty/internal/logger"
	"monty/internal/runner"
	"monty/pkg/color"
	"monty/pkg/interpreter"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type options struct {
	configPath  string
	logLevel    string
	noColor     bool
	trace       bool
	snapshot    string
	maxDepth    int
	listOpcodes bool
}

func newRootCmd() *cobra.Command {
	var opts options
	var settings config.Config

	cmd := &cobra.Command{
		Use:           "monty file",
		Short:         "Run a Monty bytecode file",
		Long:          "monty executes a line-oriented bytecode file against a single integer stack and stops at the first error.",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.listOpcodes && len(args) == 0 {
				return nil
			}
			if len(args) != 1 {
				return interpreter.NewUsageError()
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			settings, err = resolve(cmd, opts)
			if err != nil {
				return err
			}

			if err := logger.Init(cmd.ErrOrStderr(), settings.LogLevel, settings.NoColor); err != nil {
				return err
			}
			if settings.NoColor {
				color.EnableColor(false)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.listOpcodes {
				for _, name := range interpreter.Opcodes() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			r := runner.Runner{
				SourceFile: args[0],
				Trace:      settings.Trace,
				Snapshot:   settings.Snapshot,
				MaxDepth:   settings.MaxDepth,
				Stdout:     cmd.OutOrStdout(),
				Stderr:     cmd.ErrOrStderr(),
			}
			log.Debug("Starting run", "file", r.SourceFile, "trace", r.Trace, "max_depth", r.MaxDepth, "color", color.IsColorEnabled())

			return r.Run(cmd.Context())
		},
	}

	cmd.SetFlagErrorFunc(func(*cobra.Command, error) error {
		return interpreter.NewUsageError()
	})

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Path to a monty.toml file (default $"+config.EnvVar+")")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Set log level (debug, info, warn, error)")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&opts.trace, "trace", false, "Print every executed instruction and the resulting stack to stderr")
	flags.StringVar(&opts.snapshot, "snapshot", "", "Write the final stack as msgpack to this path")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "Maximum stack depth, 0 for unlimited")
	flags.BoolVar(&opts.listOpcodes, "list-opcodes", false, "List the supported opcodes and exit")

	return cmd
}

// resolve loads the config file and applies the flags the user set
// explicitly on top of it
func resolve(cmd *cobra.Command, opts options) (config.Config, error) {
	c, err := config.Load(opts.configPath)
	if err != nil {
		return c, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		c.LogLevel = opts.logLevel
	}
	if flags.Changed("no-color") {
		c.NoColor = opts.noColor
	}
	if flags.Changed("trace") {
		c.Trace = opts.trace
	}
	if flags.Changed("snapshot") {
		c.Snapshot = opts.snapshot
	}
	if flags.Changed("max-depth") {
		if opts.maxDepth < 0 {
			return c, errors.Errorf("--max-depth must not be negative, got %d", opts.maxDepth)
		}
		c.MaxDepth = opts.maxDepth
	}

	return c, nil
}

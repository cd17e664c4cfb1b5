package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/prtdcd/internal/config"
	"github.com/danmuck/prtdcd/internal/source"
	"github.com/spf13/cobra"
)

const sampleStream = "L,H  L,O  L,L  M,2  L,A  L,Space  L,W  M,-2  L,O  L,R  L,L  L,D"

type options struct {
	configPath  string
	sim         string
	serial      string
	format      string
	metricsAddr string
	showRotor   bool
	maxLine     int
}

// Execute is the single entry point for the CLI.
func Execute(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "prtdcd (--sim <file> | --serial <device>)",
		Short:         "Decode PRT-7 LOAD/MAP frame streams into the hidden message",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if errors.Is(err, config.ErrMissingSource) {
				printUsage(cmd.ErrOrStderr())
				return err
			}
			if err != nil {
				return err
			}
			return runDecoder(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := root.Flags()
	flags.StringVar(&opts.configPath, "config", "", "TOML config file")
	flags.StringVar(&opts.sim, "sim", "", "simulation file to read frames from (\"-\" for stdin, .gz accepted)")
	flags.StringVar(&opts.serial, "serial", "", "serial device to read frames from, e.g. /dev/ttyUSB0")
	flags.StringVarP(&opts.format, "format", "f", config.FormatText, "output format: text|json")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve /metrics and /health on this address while decoding")
	flags.BoolVar(&opts.showRotor, "show-rotor", false, "print the rotor state after every MAP frame")
	flags.IntVar(&opts.maxLine, "max-line-bytes", source.DefaultMaxLine, "longest accepted frame line")
	root.MarkFlagsMutuallyExclusive("sim", "serial")

	root.AddCommand(newConfigCommand())
	return root
}

// resolveConfig layers explicitly set flags over the config file over defaults.
func resolveConfig(cmd *cobra.Command, opts *options) (config.DecoderConfig, error) {
	cfg := config.DefaultDecoderConfig()
	if opts.configPath != "" {
		loaded, err := config.LoadDecoderConfig(opts.configPath)
		if err != nil {
			return config.DecoderConfig{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("sim") {
		cfg.Source = opts.sim
		cfg.Mode = source.ModeSim
	}
	if flags.Changed("serial") {
		cfg.Source = opts.serial
		cfg.Mode = source.ModeSerial
	}
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = opts.metricsAddr
	}
	if flags.Changed("show-rotor") {
		cfg.ShowRotor = opts.showRotor
	}
	if flags.Changed("max-line-bytes") {
		cfg.MaxLineBytes = opts.maxLine
	}

	if err := config.ValidateDecoderConfig(cfg, true); err != nil {
		return config.DecoderConfig{}, err
	}
	return cfg, nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: prtdcd --sim <simulation_file>   (or)  --serial <device>")
	fmt.Fprintf(w, "Example simulation file (one frame per line): %s\n", sampleStream)
	fmt.Fprintln(w, "Exiting (no file or serial device given).")
}

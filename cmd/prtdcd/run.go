package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/danmuck/prtdcd/internal/config"
	"github.com/danmuck/prtdcd/internal/decoder"
	"github.com/danmuck/prtdcd/internal/logging"
	"github.com/danmuck/prtdcd/internal/observability"
	"github.com/danmuck/prtdcd/internal/sink"
	"github.com/danmuck/prtdcd/internal/source"
	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
)

func runDecoder(ctx context.Context, cfg config.DecoderConfig, out, errOut io.Writer) error {
	logCfg := logging.ConfigureRuntime()
	if lvl, ok := logging.ParseLevel(cfg.LogLevel); ok {
		zerolog.SetGlobalLevel(lvl)
		logCfg.Level = lvl
	}
	if !observability.IsTerminal(errOut) {
		logCfg.NoColor = true
	}
	logger := observability.InitLoggerTo("prtdcd", errOut, logCfg)

	text := cfg.Format == config.FormatText
	if text {
		fmt.Fprintln(out, "Starting PRT-7 decoder. Preparing structures...")
	}

	src, err := source.Open(cfg.Source, cfg.MaxLineBytes)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", cfg.Source, err)
	}
	defer src.Close()
	logger.Info().Str("source", cfg.Source).Str("mode", string(cfg.Mode)).Msg("source opened")

	if text {
		if cfg.Mode == source.ModeSerial {
			fmt.Fprintf(out, "Serial connection opened on %s\n", cfg.Source)
		} else {
			fmt.Fprintf(out, "Simulation file opened: %s\n", cfg.Source)
		}
		fmt.Fprint(out, "Connection established. Waiting for frames...\n\n")
	}

	if cfg.MetricsAddr != "" {
		ms := observability.NewMetricsServer(cfg.MetricsAddr, logger)
		if err := ms.Start(); err != nil {
			return fmt.Errorf("metrics server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := ms.Shutdown(shutdownCtx); err != nil {
				logger.Warn().Err(err).Msg("metrics server shutdown")
			}
		}()
	}

	dec := decoder.New(logger)
	_, runErr := dec.Run(ctx, src, newSink(cfg, out, logCfg))
	if text {
		fmt.Fprintln(out, "Releasing resources... System shut down.")
	}
	return runErr
}

func newSink(cfg config.DecoderConfig, out io.Writer, logCfg logging.Config) decoder.Sink {
	if cfg.Format == config.FormatJSON {
		return sink.NewJSON(out)
	}
	color := !logCfg.NoColor && observability.IsTerminal(out)
	if f, ok := out.(*os.File); ok && color {
		out = colorable.NewColorable(f)
	}
	return &sink.Console{Out: out, ShowRotor: cfg.ShowRotor, Color: color}
}

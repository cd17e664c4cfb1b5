package observability

import (
	"io"
	"os"
	"time"

	"github.com/danmuck/prtdcd/internal/logging"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a console logger tagged with app as the global logger.
// Diagnostics go to stderr so stdout stays free for decoder output.
func InitLogger(app string, cfg logging.Config) zerolog.Logger {
	if !IsTerminal(os.Stderr) {
		cfg.NoColor = true
	}
	return InitLoggerTo(app, os.Stderr, cfg)
}

func InitLoggerTo(app string, w io.Writer, cfg logging.Config) zerolog.Logger {
	if f, ok := w.(*os.File); ok && !cfg.NoColor {
		w = colorable.NewColorable(f)
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    cfg.NoColor,
	}
	ctx := zerolog.New(output).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	logger := ctx.Str("app", app).Logger().Level(cfg.Level)
	log.Logger = logger
	return logger
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

package sink

import (
	"github.com/danmuck/prtdcd/internal/decoder"
	"github.com/danmuck/prtdcd/internal/protocol/frame"
	"github.com/rs/zerolog"
)

// Log mirrors events into a structured logger.
type Log struct {
	Logger zerolog.Logger
}

func (l Log) Emit(ev decoder.Event) error {
	switch ev.Type {
	case decoder.EventApplied:
		l.Logger.Info().
			Int("seq", ev.Seq).
			Str("frame", ev.Status.Frame.String()).
			Int("offset", ev.Offset).
			Msg(ev.Status.String())
	case decoder.EventSkipped:
		l.Logger.Warn().
			Int("seq", ev.Seq).
			Str("line", ev.Line).
			Str("reason", frame.Reason(ev.Err)).
			Err(ev.Err).
			Msg("invalid frame ignored")
	case decoder.EventFinal:
		l.Logger.Info().
			Int("lines", ev.Seq).
			Str("payload", ev.Message).
			Msg("hidden message assembled")
	}
	return nil
}

// Multi fans events out to every sink in order and stops at the first error.
type Multi []decoder.Sink

func (m Multi) Emit(ev decoder.Event) error {
	for _, s := range m {
		if err := s.Emit(ev); err != nil {
			return err
		}
	}
	return nil
}

package decoder

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/prtdcd/internal/observability"
	"github.com/danmuck/prtdcd/internal/protocol/frame"
	"github.com/danmuck/prtdcd/internal/protocol/payload"
	"github.com/danmuck/prtdcd/internal/protocol/rotor"
	"github.com/rs/zerolog"
)

// LineSource yields lines in arrival order and io.EOF once exhausted.
type LineSource interface {
	Next(ctx context.Context) (string, error)
}

// Sink receives every status event the loop produces.
type Sink interface {
	Emit(Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event) error

func (f SinkFunc) Emit(ev Event) error { return f(ev) }

// Result summarizes a finished run.
type Result struct {
	Message string
	Lines   int
	Applied int
	Skipped int
	Offset  int
}

// Decoder holds the long-lived rotor and payload for one run. It is not
// safe for concurrent use.
type Decoder struct {
	rotor   *rotor.Rotor
	payload *payload.Payload
	logger  zerolog.Logger

	lines   int
	applied int
	skipped int
}

func New(logger zerolog.Logger) *Decoder {
	observability.RegisterMetrics()
	return &Decoder{
		rotor:   rotor.New(),
		payload: payload.New(),
		logger:  logger.With().Str("component", "decoder").Logger(),
	}
}

// Step parses and applies one line. Parse failures come back as an
// EventSkipped and leave the rotor and payload untouched.
func (d *Decoder) Step(line string) Event {
	d.lines++
	f, err := frame.Parse(line)
	if err != nil {
		d.skipped++
		reason := frame.Reason(err)
		observability.RecordFrameSkipped(reason)
		lvl := zerolog.WarnLevel
		if errors.Is(err, frame.ErrEmptyLine) {
			lvl = zerolog.DebugLevel
		}
		d.logger.WithLevel(lvl).
			Int("seq", d.lines).
			Str("line", line).
			Str("reason", reason).
			Err(err).
			Msg("frame skipped")
		return Event{Type: EventSkipped, Seq: d.lines, Line: line, Err: err, Offset: d.rotor.Offset()}
	}

	st := frame.Apply(f, d.rotor, d.payload)
	d.applied++
	observability.RecordFrameApplied(f.Kind.String(), d.rotor.Offset(), d.payload.Len())
	d.logger.Debug().
		Int("seq", d.lines).
		Str("frame", f.String()).
		Int("offset", d.rotor.Offset()).
		Int("payload_len", d.payload.Len()).
		Msg("frame applied")
	return Event{Type: EventApplied, Seq: d.lines, Line: line, Status: st, Offset: d.rotor.Offset()}
}

// Run drains src through Step, emitting one event per line, then emits the
// assembled message exactly once. A read error or ctx cancellation ends the
// stream early; the final message is still emitted and the error returned
// alongside the result. Sink errors abort immediately.
func (d *Decoder) Run(ctx context.Context, src LineSource, sink Sink) (Result, error) {
	d.logger.Info().Msg("waiting for frames")

	var streamErr error
	for {
		if err := ctx.Err(); err != nil {
			streamErr = err
			break
		}
		line, err := src.Next(ctx)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				streamErr = fmt.Errorf("decoder: read line: %w", err)
			}
			break
		}
		if err := sink.Emit(d.Step(line)); err != nil {
			return d.Result(), fmt.Errorf("decoder: emit: %w", err)
		}
	}

	res := d.Result()
	final := Event{Type: EventFinal, Seq: res.Lines, Offset: res.Offset, Message: res.Message}
	if err := sink.Emit(final); err != nil {
		return res, fmt.Errorf("decoder: emit final: %w", err)
	}
	d.logger.Info().
		Int("lines", res.Lines).
		Int("applied", res.Applied).
		Int("skipped", res.Skipped).
		Str("payload", res.Message).
		Msg("stream finished")
	return res, streamErr
}

func (d *Decoder) Result() Result {
	return Result{
		Message: d.payload.RenderFinal(),
		Lines:   d.lines,
		Applied: d.applied,
		Skipped: d.skipped,
		Offset:  d.rotor.Offset(),
	}
}

// RotorState renders the wheel from its current zero position.
func (d *Decoder) RotorState() string {
	return d.rotor.State()
}

package sink

import (
	"fmt"
	"io"

	"github.com/danmuck/prtdcd/internal/decoder"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

// Console writes the human-readable status log.
type Console struct {
	Out       io.Writer
	ShowRotor bool
	Color     bool
}

func NewConsole(out io.Writer) *Console {
	return &Console{Out: out}
}

func (c *Console) Emit(ev decoder.Event) error {
	switch ev.Type {
	case decoder.EventApplied:
		if _, err := fmt.Fprintf(c.Out, "Frame received: [%s] %s\n", ev.Line, ev.Status); err != nil {
			return err
		}
		if c.ShowRotor && ev.Status.RotorState != "" {
			if _, err := fmt.Fprintf(c.Out, "Rotor state (from zero): %s\n", c.paint(ansiCyan, ev.Status.RotorState)); err != nil {
				return err
			}
		}
		return nil
	case decoder.EventSkipped:
		_, err := fmt.Fprintf(c.Out, "Frame received: [%s] %s\n", ev.Line,
			c.paint(ansiYellow, fmt.Sprintf("-> invalid frame, ignored (%v)", ev.Err)))
		return err
	case decoder.EventFinal:
		_, err := fmt.Fprintf(c.Out, "\n---\nData stream finished.\nHIDDEN MESSAGE ASSEMBLED:\n%s\n---\n",
			c.paint(ansiBold, ev.Message))
		return err
	default:
		return nil
	}
}

func (c *Console) paint(code, s string) string {
	if !c.Color || s == "" {
		return s
	}
	return code + s + ansiReset
}

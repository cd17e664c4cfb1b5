package decoder

import (
	"fmt"

	"github.com/danmuck/prtdcd/internal/protocol/frame"
)

type EventType int

const (
	EventApplied EventType = iota + 1
	EventSkipped
	EventFinal
)

func (t EventType) String() string {
	switch t {
	case EventApplied:
		return "applied"
	case EventSkipped:
		return "skipped"
	case EventFinal:
		return "final"
	default:
		return "unknown"
	}
}

// Event is one status notification from the loop. Seq is the 1-based line
// number; it is the total line count on EventFinal.
type Event struct {
	Type    EventType
	Seq     int
	Line    string
	Status  frame.Status
	Err     error
	Offset  int
	Message string
}

func (e Event) String() string {
	switch e.Type {
	case EventApplied:
		return e.Status.String()
	case EventSkipped:
		return fmt.Sprintf("invalid frame %q ignored: %v", e.Line, e.Err)
	case EventFinal:
		return e.Message
	default:
		return ""
	}
}

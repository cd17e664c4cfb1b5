package frame

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danmuck/prtdcd/internal/protocol/payload"
	"github.com/danmuck/prtdcd/internal/protocol/rotor"
)

// Kind tags the two frame shapes.
type Kind uint8

const (
	KindLoad Kind = iota + 1
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindLoad:
		return "load"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// SpaceToken is the literal LOAD argument that carries a space.
const SpaceToken = "Space"

var (
	ErrEmptyLine       = errors.New("frame: empty line")
	ErrMissingKind     = errors.New("frame: missing kind")
	ErrMissingArgument = errors.New("frame: missing argument")
	ErrUnknownKind     = errors.New("frame: unknown kind")
)

// UnknownKindError carries the rejected kind token. It matches ErrUnknownKind.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("frame: unknown kind %q", e.Kind)
}

func (e *UnknownKindError) Is(target error) bool {
	return target == ErrUnknownKind
}

// Frame is one parsed PRT-7 instruction. Symbol is set for KindLoad,
// Offset for KindMap.
type Frame struct {
	Kind   Kind
	Symbol byte
	Offset int
}

func Load(symbol byte) Frame {
	return Frame{Kind: KindLoad, Symbol: symbol}
}

func Map(offset int) Frame {
	return Frame{Kind: KindMap, Offset: offset}
}

// String renders the frame the way it appears in status output: [L, H], [L, Space], [M,-2].
func (f Frame) String() string {
	switch f.Kind {
	case KindLoad:
		return fmt.Sprintf("[L, %s]", symbolLabel(f.Symbol))
	case KindMap:
		return fmt.Sprintf("[M,%d]", f.Offset)
	default:
		return "[?]"
	}
}

func symbolLabel(b byte) string {
	if b == ' ' {
		return SpaceToken
	}
	return string([]byte{b})
}

// Parse turns one text line into a Frame.
//
// Grammar: `L,<char>`, `L,Space`, `M,<int>`; whitespace around fields is
// ignored and the kind letter is case-insensitive. The argument ends at the
// next comma. Extra characters after the first in a LOAD argument are ignored.
func Parse(line string) (Frame, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Frame{}, ErrEmptyLine
	}

	kind, rest, hasRest := strings.Cut(line, ",")
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return Frame{}, ErrMissingKind
	}

	switch {
	case strings.EqualFold(kind, "L"):
		arg, ok := argument(rest, hasRest)
		if !ok {
			return Frame{}, fmt.Errorf("%w: L frame", ErrMissingArgument)
		}
		if strings.EqualFold(arg, SpaceToken) {
			return Load(' '), nil
		}
		return Load(arg[0]), nil
	case strings.EqualFold(kind, "M"):
		arg, ok := argument(rest, hasRest)
		if !ok {
			return Frame{}, fmt.Errorf("%w: M frame", ErrMissingArgument)
		}
		return Map(atoi(arg)), nil
	default:
		return Frame{}, &UnknownKindError{Kind: kind}
	}
}

// argument extracts the first non-empty comma-delimited token after the kind.
func argument(rest string, present bool) (string, bool) {
	if !present {
		return "", false
	}
	rest = strings.TrimLeft(rest, ",")
	if i := strings.IndexByte(rest, ','); i >= 0 {
		rest = rest[:i]
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", false
	}
	return rest, true
}

// atoi is a lenient integer parse: optional sign, longest digit prefix,
// zero when there are no digits. Out-of-range values saturate.
func atoi(s string) int {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	const maxInt = int(^uint(0) >> 1)
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		d := int(c - '0')
		if n > (maxInt-d)/10 {
			if neg {
				return -maxInt - 1
			}
			return maxInt
		}
		n = n*10 + d
	}
	if neg {
		return -n
	}
	return n
}

// Status describes what applying one frame did.
type Status struct {
	Frame Frame

	// LOAD
	Decoded byte
	Partial string

	// MAP
	Effective  int
	RotorState string
}

func (s Status) String() string {
	switch s.Frame.Kind {
	case KindLoad:
		return fmt.Sprintf(
			"Frame: %s -> fragment '%c' decoded as '%c'. Message: %s",
			s.Frame, s.Frame.Symbol, s.Decoded, s.Partial,
		)
	case KindMap:
		sign := ""
		if s.Frame.Offset >= 0 {
			sign = "+"
		}
		return fmt.Sprintf(
			"Frame: %s -> rotating rotor %s%d (effective: +%d)",
			s.Frame, sign, s.Frame.Offset, s.Effective,
		)
	default:
		return "Frame: [?]"
	}
}

// Apply executes f against the decoder state and reports the result.
func Apply(f Frame, r *rotor.Rotor, p *payload.Payload) Status {
	switch f.Kind {
	case KindLoad:
		decoded := r.Decode(f.Symbol)
		p.Append(decoded)
		return Status{Frame: f, Decoded: decoded, Partial: p.RenderPartial()}
	case KindMap:
		r.Rotate(f.Offset)
		return Status{Frame: f, Effective: rotor.Effective(f.Offset), RotorState: r.State()}
	default:
		return Status{Frame: f}
	}
}

// Reason maps a parse error to a short stable label.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyLine):
		return "empty_line"
	case errors.Is(err, ErrMissingKind):
		return "missing_kind"
	case errors.Is(err, ErrMissingArgument):
		return "missing_argument"
	case errors.Is(err, ErrUnknownKind):
		return "unknown_kind"
	default:
		return "other"
	}
}

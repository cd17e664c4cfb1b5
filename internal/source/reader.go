package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// DefaultMaxLine bounds a single frame line.
const DefaultMaxLine = 64 * 1024

// Reader yields one line per Next call with the line terminator removed.
type Reader struct {
	Name string

	sc     *bufio.Scanner
	closer io.Closer
}

func NewReader(r io.Reader, maxLine int) *Reader {
	if maxLine <= 0 {
		maxLine = DefaultMaxLine
	}
	sc := bufio.NewScanner(r)
	initial := 4 * 1024
	if initial > maxLine {
		initial = maxLine
	}
	sc.Buffer(make([]byte, initial), maxLine)
	return &Reader{sc: sc}
}

// Next blocks until a line is available. It returns io.EOF at end of stream.
// ctx is checked before each read; a read already blocked in the underlying
// stream is not interrupted.
func (r *Reader) Next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", fmt.Errorf("source: scan: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimRight(r.sc.Text(), "\r\n"), nil
}

func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Slice is an in-memory line source.
type Slice struct {
	lines []string
	pos   int
}

func Lines(lines ...string) *Slice {
	return &Slice{lines: lines}
}

func (s *Slice) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/danmuck/prtdcd/internal/decoder"
	"github.com/danmuck/prtdcd/internal/source"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, s decoder.Sink, lines ...string) decoder.Result {
	t.Helper()
	res, err := decoder.New(zerolog.Nop()).Run(context.Background(), source.Lines(lines...), s)
	require.NoError(t, err)
	return res
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	c.ShowRotor = true
	run(t, c, "L,H", "M,2", "X,Z", "L,Space", "L,a")

	want := strings.Join([]string{
		"Frame received: [L,H] Frame: [L, H] -> fragment 'H' decoded as 'H'. Message: [H]",
		"Frame received: [M,2] Frame: [M,2] -> rotating rotor +2 (effective: +2)",
		"Rotor state (from zero): CDEFGHIJKLMNOPQRSTUVWXYZAB",
		`Frame received: [X,Z] -> invalid frame, ignored (frame: unknown kind "X")`,
		"Frame received: [L,Space] Frame: [L, Space] -> fragment ' ' decoded as ' '. Message: [H][ ]",
		"Frame received: [L,a] Frame: [L, a] -> fragment 'a' decoded as 'C'. Message: [H][ ][C]",
		"",
		"---",
		"Data stream finished.",
		"HIDDEN MESSAGE ASSEMBLED:",
		"H C",
		"---",
		"",
	}, "\n")
	require.Equal(t, want, buf.String())
}

func TestConsoleColor(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{Out: &buf, Color: true}
	run(t, c, "L,A")
	require.Contains(t, buf.String(), ansiBold+"A"+ansiReset)
}

func TestJSONLines(t *testing.T) {
	var buf bytes.Buffer
	run(t, NewJSON(&buf), "L,H", "M,-2", "", "L,A")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)

	var recs []Record
	for _, l := range lines {
		var r Record
		require.NoError(t, json.Unmarshal([]byte(l), &r))
		recs = append(recs, r)
	}

	require.Equal(t, "applied", recs[0].Type)
	require.Equal(t, "load", recs[0].Kind)
	require.Equal(t, "H", recs[0].Decoded)
	require.Equal(t, "[H]", recs[0].Partial)

	require.Equal(t, "map", recs[1].Kind)
	require.NotNil(t, recs[1].Rotation)
	require.Equal(t, -2, *recs[1].Rotation)
	require.Equal(t, 24, *recs[1].Effective)
	require.Equal(t, 24, recs[1].Offset)

	require.Equal(t, "skipped", recs[2].Type)
	require.Equal(t, "empty_line", recs[2].Reason)

	require.Equal(t, "Y", recs[3].Decoded)

	require.Equal(t, "final", recs[4].Type)
	require.NotNil(t, recs[4].Message)
	require.Equal(t, "HY", *recs[4].Message)
	require.Equal(t, 4, recs[4].Seq)
}

func TestJSONFinalOnEmptyStreamHasEmptyMessage(t *testing.T) {
	var buf bytes.Buffer
	run(t, NewJSON(&buf))
	require.JSONEq(t, `{"seq":0,"type":"final","offset":0,"message":""}`, buf.String())
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	run(t, Log{Logger: zerolog.New(&buf)}, "L,H", "bogus")
	out := buf.String()
	require.Contains(t, out, `"frame":"[L, H]"`)
	require.Contains(t, out, `"reason":"unknown_kind"`)
	require.Contains(t, out, `"message":"hidden message assembled"`)
}

func TestMultiStopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	var calls int
	m := Multi{
		decoder.SinkFunc(func(decoder.Event) error { calls++; return boom }),
		decoder.SinkFunc(func(decoder.Event) error { t.Fatalf("second sink reached"); return nil }),
	}
	_, err := decoder.New(zerolog.Nop()).Run(context.Background(), source.Lines("L,A"), m)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, calls)
}

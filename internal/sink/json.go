package sink

import (
	"encoding/json"
	"io"

	"github.com/danmuck/prtdcd/internal/decoder"
	"github.com/danmuck/prtdcd/internal/protocol/frame"
)

// Record is the JSON-lines shape of one event.
type Record struct {
	Seq        int     `json:"seq"`
	Type       string  `json:"type"`
	Line       string  `json:"line,omitempty"`
	Frame      string  `json:"frame,omitempty"`
	Kind       string  `json:"kind,omitempty"`
	Symbol     string  `json:"symbol,omitempty"`
	Decoded    string  `json:"decoded,omitempty"`
	Partial    string  `json:"partial,omitempty"`
	Rotation   *int    `json:"rotation,omitempty"`
	Effective  *int    `json:"effective,omitempty"`
	RotorState string  `json:"rotor_state,omitempty"`
	Offset     int     `json:"offset"`
	Error      string  `json:"error,omitempty"`
	Reason     string  `json:"reason,omitempty"`
	Message    *string `json:"message,omitempty"`
}

// JSON writes one Record per event, newline-delimited.
type JSON struct {
	enc *json.Encoder
}

func NewJSON(w io.Writer) *JSON {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSON{enc: enc}
}

func (j *JSON) Emit(ev decoder.Event) error {
	return j.enc.Encode(RecordFor(ev))
}

func RecordFor(ev decoder.Event) Record {
	rec := Record{Seq: ev.Seq, Type: ev.Type.String(), Line: ev.Line, Offset: ev.Offset}
	switch ev.Type {
	case decoder.EventApplied:
		st := ev.Status
		rec.Frame = st.Frame.String()
		rec.Kind = st.Frame.Kind.String()
		switch st.Frame.Kind {
		case frame.KindLoad:
			rec.Symbol = string([]byte{st.Frame.Symbol})
			rec.Decoded = string([]byte{st.Decoded})
			rec.Partial = st.Partial
		case frame.KindMap:
			rotation, effective := st.Frame.Offset, st.Effective
			rec.Rotation = &rotation
			rec.Effective = &effective
			rec.RotorState = st.RotorState
		}
	case decoder.EventSkipped:
		if ev.Err != nil {
			rec.Error = ev.Err.Error()
		}
		rec.Reason = frame.Reason(ev.Err)
	case decoder.EventFinal:
		msg := ev.Message
		rec.Message = &msg
	}
	return rec
}

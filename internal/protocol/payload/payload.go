package payload

import "strings"

// Payload accumulates decoded symbols in arrival order. Append-only.
type Payload struct {
	symbols []byte
}

func New() *Payload {
	return &Payload{symbols: make([]byte, 0, 64)}
}

func (p *Payload) Append(symbol byte) {
	p.symbols = append(p.symbols, symbol)
}

func (p *Payload) Len() int {
	return len(p.symbols)
}

// Bytes returns a copy of the accumulated symbols.
func (p *Payload) Bytes() []byte {
	out := make([]byte, len(p.symbols))
	copy(out, p.symbols)
	return out
}

// RenderPartial brackets every symbol, e.g. [H][O][ ][W].
func (p *Payload) RenderPartial() string {
	var b strings.Builder
	b.Grow(3 * len(p.symbols))
	for _, s := range p.symbols {
		b.WriteByte('[')
		b.WriteByte(s)
		b.WriteByte(']')
	}
	return b.String()
}

// RenderFinal is the assembled message without delimiters.
func (p *Payload) RenderFinal() string {
	return string(p.symbols)
}

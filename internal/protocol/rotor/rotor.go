package rotor

import "strings"

// Size is the number of positions on the wheel.
const Size = 26

// ring is the canonical wheel. Only the zero position moves.
var ring = [Size]byte{
	'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M',
	'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z',
}

// Rotor is the PRT-7 cipher wheel. The zero value is a wheel at offset 0.
type Rotor struct {
	offset int
}

func New() *Rotor {
	return &Rotor{}
}

// Effective reduces any rotation amount into [0, Size).
func Effective(n int) int {
	return ((n % Size) + Size) % Size
}

// Rotate moves the zero position n places relative to where it is now.
// Negative n rotates backwards.
func (r *Rotor) Rotate(n int) {
	r.offset = (r.offset + Effective(n)) % Size
}

// Decode maps one input byte through the wheel. Spaces and anything that
// is not an ASCII letter pass through unchanged; lowercase is folded first.
func (r *Rotor) Decode(in byte) byte {
	if in == ' ' {
		return ' '
	}
	if in >= 'a' && in <= 'z' {
		in = in - 'a' + 'A'
	}
	if in < 'A' || in > 'Z' {
		return in
	}
	index := int(in - 'A')
	return ring[(r.offset+index)%Size]
}

func (r *Rotor) Offset() int {
	return r.offset
}

// State renders the wheel starting at the current zero position.
func (r *Rotor) State() string {
	var b strings.Builder
	b.Grow(Size)
	for i := 0; i < Size; i++ {
		b.WriteByte(ring[(r.offset+i)%Size])
	}
	return b.String()
}

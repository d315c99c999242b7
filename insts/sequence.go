package insts

// Sequence is an ordered list of instructions in program order. Passes
// never modify a Sequence they are given; they build a new one.
type Sequence []Instruction

// Clone returns an independent copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// NOPCount returns the number of inserted filler instructions.
func (s Sequence) NOPCount() int {
	n := 0
	for _, inst := range s {
		if inst.IsNOP() {
			n++
		}
	}
	return n
}

// Words returns the raw encodings in order.
func (s Sequence) Words() []uint32 {
	words := make([]uint32, len(s))
	for i, inst := range s {
		words[i] = inst.Word
	}
	return words
}

// HexLines returns the canonical hexadecimal form of every instruction.
func (s Sequence) HexLines() []string {
	lines := make([]string, len(s))
	for i, inst := range s {
		lines[i] = inst.Hex()
	}
	return lines
}

// DecodeWords decodes a list of raw words into a sequence.
func (d *Decoder) DecodeWords(words ...uint32) Sequence {
	seq := make(Sequence, len(words))
	for i, w := range words {
		seq[i] = d.Decode(w)
	}
	return seq
}

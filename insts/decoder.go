// Package insts provides RISC-V instruction definitions and decoding.
package insts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedInstruction is returned when instruction text is not a
// hexadecimal number that fits in 32 bits.
var ErrMalformedInstruction = errors.New("malformed instruction")

// Kind represents a RISC-V instruction encoding format.
type Kind uint8

// Instruction kinds.
const (
	KindUnknown Kind = iota
	KindR
	KindI
	KindS
	KindB
	KindU
	KindJ
	KindNOP // Filler inserted by scheduling passes, never produced by Decode
)

var kindNames = [...]string{
	KindUnknown: "Unknown",
	KindR:       "R",
	KindI:       "I",
	KindS:       "S",
	KindB:       "B",
	KindU:       "U",
	KindJ:       "J",
	KindNOP:     "NOP",
}

// String returns the short name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// RISC-V base opcodes (bits [6:0]).
const (
	OpcodeOp     uint8 = 0b0110011 // add, sub, ...
	OpcodeOpImm  uint8 = 0b0010011 // addi, ori, ...
	OpcodeLoad   uint8 = 0b0000011 // lw, lb, ...
	OpcodeJALR   uint8 = 0b1100111
	OpcodeStore  uint8 = 0b0100011 // sw, sb, ...
	OpcodeBranch uint8 = 0b1100011 // beq, bne, ...
	OpcodeLUI    uint8 = 0b0110111
	OpcodeAUIPC  uint8 = 0b0010111
	OpcodeJAL    uint8 = 0b1101111
	OpcodeSystem uint8 = 0b1110011 // ecall, ebreak
)

// opcodeKinds maps every recognised opcode to its format. Opcodes absent
// from the table decode as KindUnknown.
var opcodeKinds = map[uint8]Kind{
	OpcodeOp:     KindR,
	OpcodeOpImm:  KindI,
	OpcodeLoad:   KindI,
	OpcodeJALR:   KindI,
	OpcodeStore:  KindS,
	OpcodeBranch: KindB,
	OpcodeLUI:    KindU,
	OpcodeAUIPC:  KindU,
	OpcodeJAL:    KindJ,
	OpcodeSystem: KindI,
}

// NOPWord is the canonical no-operation encoding: ADDI x0, x0, 0.
const NOPWord uint32 = 0x00000013

// Reg is an optional register field. Valid is false when the instruction
// format has no such field.
type Reg struct {
	Index uint8
	Valid bool
}

// R returns a present register field with the given index.
func R(index uint8) Reg {
	return Reg{Index: index & 0x1F, Valid: true}
}

// Effective reports whether the field can carry a dependency: it must be
// present and must not name x0, which is hard-wired to zero.
func (r Reg) Effective() bool {
	return r.Valid && r.Index != 0
}

// String returns "xN" or "-" for an absent field.
func (r Reg) String() string {
	if !r.Valid {
		return "-"
	}
	return fmt.Sprintf("x%d", r.Index)
}

// Instruction represents a decoded RISC-V instruction. Instructions are
// values and are never modified after decoding.
type Instruction struct {
	Word   uint32 // Raw 32-bit encoding
	Opcode uint8  // Bits [6:0]
	Kind   Kind   // Encoding format

	Rd  Reg // Destination register
	Rs1 Reg // First source register
	Rs2 Reg // Second source register

	IsLoad   bool
	IsStore  bool
	IsBranch bool // Conditional branches and jumps (JAL, JALR)
}

// NOP returns the filler instruction inserted by scheduling passes. It has
// no register fields and therefore never participates in a dependency.
func NOP() Instruction {
	return Instruction{Word: NOPWord, Opcode: OpcodeOpImm, Kind: KindNOP}
}

// IsNOP reports whether the instruction is an inserted filler.
func (i Instruction) IsNOP() bool {
	return i.Kind == KindNOP
}

// Hex returns the canonical 8-digit uppercase hexadecimal encoding.
func (i Instruction) Hex() string {
	return FormatHex(i.Word)
}

// Binary returns the 32-character binary pattern, most significant bit first.
func (i Instruction) Binary() string {
	return fmt.Sprintf("%032b", i.Word)
}

// Reads reports whether the instruction reads register r through rs1 or rs2.
func (i Instruction) Reads(r Reg) bool {
	if !r.Effective() {
		return false
	}
	return (i.Rs1.Valid && i.Rs1.Index == r.Index) ||
		(i.Rs2.Valid && i.Rs2.Index == r.Index)
}

// String renders the instruction for debugging output.
func (i Instruction) String() string {
	return fmt.Sprintf("%s{%s rd=%v rs1=%v rs2=%v}", i.Hex(), i.Kind, i.Rd, i.Rs1, i.Rs2)
}

// FormatHex renders a word as 8 uppercase hexadecimal digits.
func FormatHex(word uint32) string {
	return fmt.Sprintf("%08X", word)
}

// ParseWord parses hexadecimal text into a 32-bit word. Surrounding
// whitespace and an optional 0x prefix are ignored; case does not matter.
// Shorter inputs are zero-extended.
func ParseWord(text string) (uint32, error) {
	s := strings.TrimSpace(text)
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedInstruction, "%q", text)
	}

	return uint32(v), nil
}

// Decoder decodes RISC-V machine code into instructions.
type Decoder struct{}

// NewDecoder creates a new RISC-V instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit RISC-V instruction word. Unknown opcodes are not
// an error: they decode as KindUnknown with no register fields.
func (d *Decoder) Decode(word uint32) Instruction {
	opcode := uint8(word & 0x7F) // bits [6:0]

	inst := Instruction{
		Word:     word,
		Opcode:   opcode,
		Kind:     d.Classify(word),
		IsLoad:   opcode == OpcodeLoad,
		IsStore:  opcode == OpcodeStore,
		IsBranch: opcode == OpcodeBranch || opcode == OpcodeJAL || opcode == OpcodeJALR,
	}

	rd := R(uint8(word >> 7))   // bits [11:7]
	rs1 := R(uint8(word >> 15)) // bits [19:15]
	rs2 := R(uint8(word >> 20)) // bits [24:20]

	switch inst.Kind {
	case KindR:
		inst.Rd, inst.Rs1, inst.Rs2 = rd, rs1, rs2
	case KindI:
		inst.Rd, inst.Rs1 = rd, rs1
	case KindS, KindB:
		inst.Rs1, inst.Rs2 = rs1, rs2
	case KindU, KindJ:
		inst.Rd = rd
	}

	return inst
}

// DecodeHex parses and decodes one line of hexadecimal instruction text.
func (d *Decoder) DecodeHex(text string) (Instruction, error) {
	word, err := ParseWord(text)
	if err != nil {
		return Instruction{}, err
	}
	return d.Decode(word), nil
}

// Classify returns the kind selected by the opcode of word.
func (d *Decoder) Classify(word uint32) Kind {
	if k, ok := opcodeKinds[uint8(word&0x7F)]; ok {
		return k
	}
	return KindUnknown
}

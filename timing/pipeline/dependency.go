// Package pipeline provides static hazard analysis and schedule
// transformations for a classic 5-stage (IF/ID/EX/MEM/WB) pipeline.
package pipeline

import (
	"strings"

	"github.com/sarchlab/rvhazard/insts"
)

// Dependency is a set of register dependence kinds between two
// instructions in program order.
type Dependency uint8

const (
	// DepNone means the instructions touch no common register.
	DepNone Dependency = 0
	// DepRAW means the later instruction reads what the earlier one writes.
	DepRAW Dependency = 1 << iota
	// DepWAR means the later instruction writes what the earlier one reads.
	DepWAR
	// DepWAW means both instructions write the same register.
	DepWAW
)

// Has reports whether every kind in x is present in d.
func (d Dependency) Has(x Dependency) bool {
	return x != DepNone && d&x == x
}

// Any reports whether at least one dependence kind holds.
func (d Dependency) Any() bool {
	return d != DepNone
}

// String lists the dependence kinds, e.g. "RAW|WAW".
func (d Dependency) String() string {
	if d == DepNone {
		return "None"
	}

	var parts []string
	if d.Has(DepRAW) {
		parts = append(parts, "RAW")
	}
	if d.Has(DepWAR) {
		parts = append(parts, "WAR")
	}
	if d.Has(DepWAW) {
		parts = append(parts, "WAW")
	}

	return strings.Join(parts, "|")
}

// DependsOn returns the dependences of b on a, where a precedes b.
// Register x0 never participates.
func DependsOn(a, b insts.Instruction) Dependency {
	d := DepNone

	if b.Reads(a.Rd) {
		d |= DepRAW
	}
	if a.Reads(b.Rd) {
		d |= DepWAR
	}
	if a.Rd.Effective() && b.Rd.Effective() && a.Rd.Index == b.Rd.Index {
		d |= DepWAW
	}

	return d
}

// Independent reports whether neither instruction can observe the other
// through a register. The relation is symmetric: a RAW of b on a is a WAR
// of a on b.
func Independent(a, b insts.Instruction) bool {
	return !DependsOn(a, b).Any()
}

// isOrderPinned reports whether an instruction must keep its position
// relative to every other instruction. Memory aliasing is not modelled, so
// loads and stores are pinned along with branches.
func isOrderPinned(inst insts.Instruction) bool {
	return inst.IsBranch || inst.IsLoad || inst.IsStore
}

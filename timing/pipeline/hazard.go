package pipeline

import "github.com/sarchlab/rvhazard/insts"

// detectWindow is how far back the detector looks for producers. Without
// forwarding a producer 3 or more positions away has already written back.
const detectWindow = 3

// HazardRecord describes one data hazard that costs stall cycles.
type HazardRecord struct {
	// Position is the index of the consuming instruction.
	Position int
	// Source is the index of the producing instruction.
	Source int
	// Register is the register carrying the dependence (never x0).
	Register uint8
	// Distance is Position - Source.
	Distance int
	// LoadUse is true when the producer is a load at distance 1.
	LoadUse bool
}

// ControlHazardRecord describes one branch or jump.
type ControlHazardRecord struct {
	Position int
	Kind     insts.Kind
}

// HazardUnit detects data hazards and computes stall padding under a
// single policy.
type HazardUnit struct {
	policy Policy
}

// NewHazardUnit creates a new hazard detection unit.
func NewHazardUnit(policy Policy) *HazardUnit {
	return &HazardUnit{policy: policy}
}

// Policy returns the policy the unit applies.
func (h *HazardUnit) Policy() Policy {
	return h.policy
}

// StallCycles returns how many bubbles a consumer at the given distance
// needs behind producer. It assumes the consumer reads producer's rd.
//
// Timing: the producer writes back 4 cycles after it is fetched and a
// consumer decodes 1 cycle after its own fetch; the register file writes in
// the first half of a cycle and reads in the second. With forwarding, ALU
// results reach EX in time and a load result arrives one cycle late.
func (h *HazardUnit) StallCycles(producer insts.Instruction, distance int) int {
	if h.policy.Forwarding {
		if producer.IsLoad && distance == 1 {
			return 1
		}
		return 0
	}

	switch distance {
	case 1:
		return 2
	case 2:
		return 1
	default:
		return 0
	}
}

// DetectDataHazards returns every RAW hazard in seq that costs at least one
// stall cycle under the unit's policy, ordered by consumer then producer.
func (h *HazardUnit) DetectDataHazards(seq insts.Sequence) []HazardRecord {
	var records []HazardRecord

	for i, consumer := range seq {
		for j := max(0, i-detectWindow); j < i; j++ {
			producer := seq[j]
			if !consumer.Reads(producer.Rd) {
				continue
			}

			distance := i - j
			if h.StallCycles(producer, distance) == 0 {
				continue
			}

			records = append(records, HazardRecord{
				Position: i,
				Source:   j,
				Register: producer.Rd.Index,
				Distance: distance,
				LoadUse:  producer.IsLoad && distance == 1,
			})
		}
	}

	return records
}

// stallsAfter returns the bubbles to insert right after position idx: the
// largest demand of the next two instructions that read its result.
func (h *HazardUnit) stallsAfter(seq insts.Sequence, idx int) int {
	producer := seq[idx]
	if !producer.Rd.Effective() {
		return 0
	}

	need := 0
	for k := 1; k <= 2 && idx+k < len(seq); k++ {
		if seq[idx+k].Reads(producer.Rd) {
			need = max(need, h.StallCycles(producer, k))
		}
	}

	return need
}

// CountStalls returns the number of NOPs InsertStalls would add.
func (h *HazardUnit) CountStalls(seq insts.Sequence) int {
	total := 0
	for i := range seq {
		total += h.stallsAfter(seq, i)
	}
	return total
}

// InsertStalls returns a copy of seq with NOPs placed after each producer so
// that no consumer reads a value before it is available, together with the
// number of NOPs inserted.
func (h *HazardUnit) InsertStalls(seq insts.Sequence) (insts.Sequence, int) {
	out := make(insts.Sequence, 0, len(seq))
	added := 0

	for i, inst := range seq {
		out = append(out, inst)

		n := h.stallsAfter(seq, i)
		for range n {
			out = append(out, insts.NOP())
		}
		added += n
	}

	return out, added
}

// DetectControlHazards returns the position and kind of every branch or
// jump in seq.
func DetectControlHazards(seq insts.Sequence) []ControlHazardRecord {
	var records []ControlHazardRecord

	for i, inst := range seq {
		if inst.IsBranch {
			records = append(records, ControlHazardRecord{Position: i, Kind: inst.Kind})
		}
	}

	return records
}

package pipeline

import "github.com/sarchlab/rvhazard/insts"

// DefaultDelaySlotWindow is how many positions before a branch are searched
// for an instruction to hoist into its delay slot.
const DefaultDelaySlotWindow = 3

// InsertBranchStalls returns a copy of seq with one NOP after every branch
// or jump, together with the number of NOPs inserted.
func InsertBranchStalls(seq insts.Sequence) (insts.Sequence, int) {
	out := make(insts.Sequence, 0, len(seq))
	added := 0

	for _, inst := range seq {
		out = append(out, inst)
		if inst.IsBranch {
			out = append(out, insts.NOP())
			added++
		}
	}

	return out, added
}

// DelaySlotOption configures a DelaySlotFiller.
type DelaySlotOption func(*DelaySlotFiller)

// WithDelaySlotWindow sets the backward search window.
func WithDelaySlotWindow(n int) DelaySlotOption {
	return func(f *DelaySlotFiller) {
		if n > 0 {
			f.window = n
		}
	}
}

// DelaySlotResult is the outcome of DelaySlotFiller.Fill.
type DelaySlotResult struct {
	Sequence insts.Sequence
	// Filled counts delay slots holding a hoisted instruction.
	Filled int
	// NOPs counts delay slots holding a NOP.
	NOPs int
}

// DelaySlotFiller resolves control hazards by moving an earlier independent
// instruction into the slot after each branch.
type DelaySlotFiller struct {
	window int
}

// NewDelaySlotFiller creates a filler with the default window.
func NewDelaySlotFiller(opts ...DelaySlotOption) *DelaySlotFiller {
	f := &DelaySlotFiller{window: DefaultDelaySlotWindow}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fill places an instruction in the delay slot of every branch. The nearest
// acceptable instruction before the branch is moved there; if none exists
// the slot gets a NOP. Branches keep their relative order, and nothing is
// taken from at or before an earlier branch's delay slot.
func (f *DelaySlotFiller) Fill(seq insts.Sequence) DelaySlotResult {
	out := make(insts.Sequence, 0, len(seq)+len(seq)/2)
	res := DelaySlotResult{}

	// Entries before floor belong to an earlier branch or its slot.
	floor := 0

	for _, inst := range seq {
		out = append(out, inst)
		if !inst.IsBranch {
			continue
		}

		branch := len(out) - 1
		slot := insts.NOP()
		hoisted := false

		for back := 1; back <= f.window; back++ {
			c := branch - back
			if c < floor {
				break
			}
			if f.canFill(out, c, branch) {
				slot = out[c]
				out = append(out[:c], out[c+1:]...)
				hoisted = true
				break
			}
		}

		out = append(out, slot)
		floor = len(out)

		if hoisted {
			res.Filled++
		} else {
			res.NOPs++
		}
	}

	res.Sequence = out
	return res
}

// canFill reports whether out[candidate] may move into the delay slot of
// the branch at out[branch].
func (f *DelaySlotFiller) canFill(out insts.Sequence, candidate, branch int) bool {
	c := out[candidate]
	if isOrderPinned(c) || c.IsNOP() {
		return false
	}

	// The branch must not read what the candidate writes, and the candidate
	// must not read or overwrite a register the branch links into.
	if !Independent(c, out[branch]) {
		return false
	}

	for k := candidate + 1; k < branch; k++ {
		if !Independent(c, out[k]) {
			return false
		}
	}

	return true
}

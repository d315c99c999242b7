// Package core provides a cycle-level replay of an instruction schedule.
// It pushes a Sequence through an interlocked 5-stage pipeline as an akita
// ticking component, one tick per cycle, and reports how many bubbles the hardware interlock
// would still have to insert.
package core

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/rvhazard/insts"
	"github.com/sarchlab/rvhazard/timing/pipeline"
)

// Pipeline stages.
const (
	stageIF = iota
	stageID
	stageEX
	stageMEM
	stageWB
	numStages
)

// Stats holds replay statistics for the core.
type Stats struct {
	// Cycles is the total number of cycles until the pipeline drained.
	Cycles uint64
	// Instructions is the number of entries retired, NOPs included.
	Instructions uint64
	// NOPs is the number of retired filler instructions.
	NOPs uint64
	// Stalls is the number of bubbles the interlock inserted.
	Stalls uint64
}

// CPI returns cycles per useful (non-NOP) instruction.
func (s Stats) CPI() float64 {
	useful := s.Instructions - s.NOPs
	if useful == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(useful)
}

type slot struct {
	inst  insts.Instruction
	valid bool
}

// Option configures a Core.
type Option func(*Core)

// WithFrequency sets the clock used to space tick events.
func WithFrequency(freq sim.Freq) Option {
	return func(c *Core) {
		c.freq = freq
	}
}

// Core replays a schedule through an in-order 5-stage pipeline that stalls
// in decode whenever an operand is not yet available under its policy.
type Core struct {
	*sim.TickingComponent

	policy pipeline.Policy
	freq   sim.Freq

	program insts.Sequence
	next    int
	stages  [numStages]slot
	stats   Stats
}

// NewCore creates a core that interlocks according to policy.
func NewCore(policy pipeline.Policy, opts ...Option) *Core {
	c := &Core{
		policy: policy,
		freq:   1 * sim.GHz,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load resets the core and places seq in its instruction memory.
func (c *Core) Load(seq insts.Sequence) {
	c.Reset()
	c.program = seq
	c.fetch()
}

// Reset clears all core state.
func (c *Core) Reset() {
	c.program = nil
	c.next = 0
	c.stages = [numStages]slot{}
	c.stats = Stats{}
}

// Stats returns statistics gathered so far.
func (c *Core) Stats() Stats {
	return c.stats
}

// Halted returns true once every instruction has left the pipeline.
func (c *Core) Halted() bool {
	if c.next < len(c.program) {
		return false
	}
	for _, s := range c.stages {
		if s.valid {
			return false
		}
	}
	return true
}

// Replay loads seq and runs it to completion. Each replay gets its own
// serial engine, and the core ticks on it until the pipeline drains.
func (c *Core) Replay(seq insts.Sequence) (Stats, error) {
	c.Load(seq)
	if c.Halted() {
		return c.stats, nil
	}

	engine := sim.NewSerialEngine()
	c.TickingComponent = sim.NewTickingComponent("Core", engine, c.freq, c)
	c.TickNow()

	if err := engine.Run(); err != nil {
		return c.stats, err
	}

	return c.stats, nil
}

// Tick executes one pipeline cycle. It returns false once the pipeline has
// drained.
func (c *Core) Tick() bool {
	if c.Halted() {
		return false
	}

	c.stats.Cycles++

	if wb := c.stages[stageWB]; wb.valid {
		c.stats.Instructions++
		if wb.inst.IsNOP() {
			c.stats.NOPs++
		}
	}

	c.stages[stageWB] = c.stages[stageMEM]
	c.stages[stageMEM] = c.stages[stageEX]

	if c.operandsPending() {
		c.stages[stageEX] = slot{}
		c.stats.Stalls++
		return true
	}

	c.stages[stageEX] = c.stages[stageID]
	c.stages[stageID] = c.stages[stageIF]
	c.fetch()

	return true
}

func (c *Core) fetch() {
	if c.next >= len(c.program) {
		c.stages[stageIF] = slot{}
		return
	}
	c.stages[stageIF] = slot{inst: c.program[c.next], valid: true}
	c.next++
}

// operandsPending reports whether the instruction in ID must wait. It is
// evaluated after EX and MEM have advanced, so stageMEM and stageWB hold
// the instructions that were in EX and MEM during this cycle.
func (c *Core) operandsPending() bool {
	id := c.stages[stageID]
	if !id.valid {
		return false
	}

	inEX := c.stages[stageMEM]
	inMEM := c.stages[stageWB]

	if c.policy.Forwarding {
		// Only a load's result is late: it leaves MEM, not EX.
		return inEX.valid && inEX.inst.IsLoad && id.inst.Reads(inEX.inst.Rd)
	}

	// The register file writes in the first half of WB and reads in the
	// second half of ID.
	return (inEX.valid && id.inst.Reads(inEX.inst.Rd)) ||
		(inMEM.valid && id.inst.Reads(inMEM.inst.Rd))
}

package pipeline

import "github.com/sarchlab/rvhazard/insts"

// DefaultReorderWindow is how many positions after a producer the scheduler
// searches for an instruction to move up.
const DefaultReorderWindow = 3

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithReorderWindow sets the forward search window.
func WithReorderWindow(n int) SchedulerOption {
	return func(s *Scheduler) {
		if n > 0 {
			s.window = n
		}
	}
}

// ReorderResult is the outcome of Scheduler.Reorder.
type ReorderResult struct {
	// Order is the reordered program without stall padding.
	Order insts.Sequence
	// Scheduled is Order with stall padding applied.
	Scheduled insts.Sequence
	// BaselineStalls is the padding the unmodified program needs.
	BaselineStalls int
	// FinalStalls is the padding Order needs.
	FinalStalls int
	// StallsAvoided is BaselineStalls - FinalStalls, never negative.
	StallsAvoided int
	// Migrations is the number of accepted moves.
	Migrations int
}

// Scheduler removes stalls by moving independent instructions into the slot
// right after a producer.
type Scheduler struct {
	hazards *HazardUnit
	window  int
}

// NewScheduler creates a scheduler that measures cost under policy.
func NewScheduler(policy Policy, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		hazards: NewHazardUnit(policy),
		window:  DefaultReorderWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HazardUnit returns the unit used as the cost oracle.
func (s *Scheduler) HazardUnit() *HazardUnit {
	return s.hazards
}

// CanHoist reports whether the instruction at candidate may move to the
// slot right after producer. The candidate must not be pinned, must be
// independent of the producer, and every instruction it passes over must be
// unpinned and independent of it.
func (s *Scheduler) CanHoist(seq insts.Sequence, producer, candidate int) bool {
	if producer < 0 || candidate <= producer || candidate >= len(seq) {
		return false
	}

	c := seq[candidate]
	if isOrderPinned(c) || !Independent(seq[producer], c) {
		return false
	}

	for k := producer + 1; k < candidate; k++ {
		if isOrderPinned(seq[k]) || !Independent(seq[k], c) {
			return false
		}
	}

	return true
}

// Reorder repeatedly applies the first stall-reducing move it finds,
// restarting the search after every accepted move, until no move helps.
// Each accepted move strictly lowers the stall count, so the loop ends.
func (s *Scheduler) Reorder(seq insts.Sequence) ReorderResult {
	baseline := s.hazards.CountStalls(seq)

	cur := seq.Clone()
	curStalls := baseline
	migrations := 0

	for {
		next, stalls, ok := s.improve(cur, curStalls)
		if !ok {
			break
		}
		cur, curStalls = next, stalls
		migrations++
	}

	scheduled, _ := s.hazards.InsertStalls(cur)

	return ReorderResult{
		Order:          cur,
		Scheduled:      scheduled,
		BaselineStalls: baseline,
		FinalStalls:    curStalls,
		StallsAvoided:  max(0, baseline-curStalls),
		Migrations:     migrations,
	}
}

// improve finds the first move, scanning producers front to back and
// candidates nearest first, that lowers the stall count below curStalls.
func (s *Scheduler) improve(cur insts.Sequence, curStalls int) (insts.Sequence, int, bool) {
	for i := range cur {
		if !cur[i].Rd.Effective() {
			continue
		}

		// A candidate at i+1 is already in place.
		last := min(i+s.window, len(cur)-1)
		for j := i + 2; j <= last; j++ {
			if !s.CanHoist(cur, i, j) {
				continue
			}

			trial := migrate(cur, j, i+1)
			if stalls := s.hazards.CountStalls(trial); stalls < curStalls {
				return trial, stalls, true
			}
		}
	}

	return nil, curStalls, false
}

// migrate returns a copy of seq with the instruction at from moved to to,
// where to < from.
func migrate(seq insts.Sequence, from, to int) insts.Sequence {
	out := make(insts.Sequence, 0, len(seq))
	out = append(out, seq[:to]...)
	out = append(out, seq[from])
	out = append(out, seq[to:from]...)
	out = append(out, seq[from+1:]...)
	return out
}

// Package schedule runs every hazard resolution strategy over one program
// and collects the results side by side.
package schedule

import (
	"github.com/sarchlab/rvhazard/config"
	"github.com/sarchlab/rvhazard/insts"
	"github.com/sarchlab/rvhazard/timing/pipeline"
)

// Transform is what a strategy produces from the original program.
type Transform struct {
	Sequence insts.Sequence
	// StallsAvoided is only set by reordering strategies.
	StallsAvoided int
}

// Strategy is one way of making a program safe to run on the pipeline.
type Strategy struct {
	// Name is a short identifier used in logs and metrics.
	Name string
	// Title is the human-readable description used in the summary.
	Title string
	// File is the output listing name.
	File string
	// Policy is the hazard model the output is replayed under.
	Policy pipeline.Policy
	// Apply transforms the original program. It must not modify seq.
	Apply func(seq insts.Sequence) Transform
}

// Strategy names.
const (
	NOPNoForwarding     = "nop-no-forwarding"
	NOPForwarding       = "nop-forwarding"
	ReorderNoForwarding = "reorder-no-forwarding"
	ReorderForwarding   = "reorder-forwarding"
	BranchNOP           = "branch-nop"
	BranchDelay         = "branch-delay"
	Combined            = "reorder-forwarding+branch-delay"
)

// Catalogue returns every strategy in reporting order.
func Catalogue(cfg *config.Config) []Strategy {
	padding := func(policy pipeline.Policy) func(insts.Sequence) Transform {
		h := pipeline.NewHazardUnit(policy)
		return func(seq insts.Sequence) Transform {
			out, _ := h.InsertStalls(seq)
			return Transform{Sequence: out}
		}
	}

	reorder := func(policy pipeline.Policy) func(insts.Sequence) Transform {
		s := pipeline.NewScheduler(policy, pipeline.WithReorderWindow(cfg.ReorderWindow))
		return func(seq insts.Sequence) Transform {
			res := s.Reorder(seq)
			return Transform{Sequence: res.Scheduled, StallsAvoided: res.StallsAvoided}
		}
	}

	filler := pipeline.NewDelaySlotFiller(pipeline.WithDelaySlotWindow(cfg.DelaySlotWindow))
	reorderFwd := reorder(pipeline.PolicyForwarding)

	return []Strategy{
		{
			Name:   NOPNoForwarding,
			Title:  "NOPs (data) without forwarding",
			File:   "out_nop_no_forwarding.hex",
			Policy: pipeline.PolicyNoForwarding,
			Apply:  padding(pipeline.PolicyNoForwarding),
		},
		{
			Name:   NOPForwarding,
			Title:  "NOPs (data) with forwarding",
			File:   "out_nop_forwarding.hex",
			Policy: pipeline.PolicyForwarding,
			Apply:  padding(pipeline.PolicyForwarding),
		},
		{
			Name:   ReorderNoForwarding,
			Title:  "Reorder (data) without forwarding",
			File:   "out_reorder_no_forwarding.hex",
			Policy: pipeline.PolicyNoForwarding,
			Apply:  reorder(pipeline.PolicyNoForwarding),
		},
		{
			Name:   ReorderForwarding,
			Title:  "Reorder (data) with forwarding",
			File:   "out_reorder_forwarding.hex",
			Policy: pipeline.PolicyForwarding,
			Apply:  reorderFwd,
		},
		{
			Name:   BranchNOP,
			Title:  "NOPs (control)",
			File:   "out_branch_nop.hex",
			Policy: pipeline.PolicyForwarding,
			Apply: func(seq insts.Sequence) Transform {
				out, _ := pipeline.InsertBranchStalls(seq)
				return Transform{Sequence: out}
			},
		},
		{
			Name:   BranchDelay,
			Title:  "Delayed branch (control)",
			File:   "out_branch_delay.hex",
			Policy: pipeline.PolicyForwarding,
			Apply: func(seq insts.Sequence) Transform {
				return Transform{Sequence: filler.Fill(seq).Sequence}
			},
		},
		{
			Name:   Combined,
			Title:  "Reorder with forwarding + delayed branch",
			File:   "out_combined.hex",
			Policy: pipeline.PolicyForwarding,
			Apply: func(seq insts.Sequence) Transform {
				data := reorderFwd(seq)
				return Transform{
					Sequence:      filler.Fill(data.Sequence).Sequence,
					StallsAvoided: data.StallsAvoided,
				}
			},
		},
	}
}

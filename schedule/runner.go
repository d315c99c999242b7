package schedule

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/rvhazard/config"
	"github.com/sarchlab/rvhazard/insts"
	"github.com/sarchlab/rvhazard/timing/core"
	"github.com/sarchlab/rvhazard/timing/pipeline"
)

// Analysis holds the hazards detected in the original program.
type Analysis struct {
	DataNoForwarding []pipeline.HazardRecord
	DataForwarding   []pipeline.HazardRecord
	Control          []pipeline.ControlHazardRecord
}

// Detect runs hazard detection under both policies.
func Detect(seq insts.Sequence) Analysis {
	return Analysis{
		DataNoForwarding: pipeline.NewHazardUnit(pipeline.PolicyNoForwarding).DetectDataHazards(seq),
		DataForwarding:   pipeline.NewHazardUnit(pipeline.PolicyForwarding).DetectDataHazards(seq),
		Control:          pipeline.DetectControlHazards(seq),
	}
}

// Outcome is the result of one strategy.
type Outcome struct {
	Strategy
	Transform

	// Added is the number of instructions beyond the original count.
	Added int
	// NOPs is the number of filler instructions in the output.
	NOPs int
	// Replay holds cycle replay statistics when replay is enabled.
	Replay   core.Stats
	Replayed bool
}

// Result collects everything a run produced.
type Result struct {
	Original insts.Sequence
	Analysis Analysis
	// Outcomes are in catalogue order.
	Outcomes []Outcome
}

// Outcome returns the outcome of the named strategy.
func (r *Result) Outcome(name string) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Name == name {
			return o, true
		}
	}
	return Outcome{}, false
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger used for per-strategy debug output.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithStrategies replaces the default catalogue.
func WithStrategies(strategies ...Strategy) RunnerOption {
	return func(r *Runner) {
		r.strategies = strategies
	}
}

// Runner applies strategies to a program. Strategies share nothing, so they
// run concurrently.
type Runner struct {
	cfg        *config.Config
	logger     *slog.Logger
	strategies []Strategy
}

// NewRunner creates a runner over the default catalogue.
func NewRunner(cfg *config.Config, opts ...RunnerOption) *Runner {
	r := &Runner{
		cfg:        cfg,
		logger:     slog.Default(),
		strategies: Catalogue(cfg),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run detects hazards in seq and applies every strategy to it.
func (r *Runner) Run(ctx context.Context, seq insts.Sequence) (*Result, error) {
	res := &Result{
		Original: seq,
		Analysis: Detect(seq),
		Outcomes: make([]Outcome, len(r.strategies)),
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, s := range r.strategies {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			out, err := r.apply(s, seq)
			if err != nil {
				return err
			}
			res.Outcomes[i] = out

			r.logger.Debug("strategy applied",
				"strategy", s.Name,
				"instructions", len(out.Sequence),
				"nops", out.NOPs,
				"stalls_avoided", out.StallsAvoided)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return res, nil
}

func (r *Runner) apply(s Strategy, seq insts.Sequence) (Outcome, error) {
	t := s.Apply(seq)
	out := Outcome{
		Strategy:  s,
		Transform: t,
		Added:     len(t.Sequence) - len(seq),
		NOPs:      t.Sequence.NOPCount(),
	}

	if !r.cfg.Replay {
		return out, nil
	}

	stats, err := core.NewCore(s.Policy).Replay(t.Sequence)
	if err != nil {
		return out, err
	}
	out.Replay = stats
	out.Replayed = true

	return out, nil
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/sarchlab/rvhazard/config"
	"github.com/sarchlab/rvhazard/loader"
	"github.com/sarchlab/rvhazard/report"
	"github.com/sarchlab/rvhazard/schedule"
)

type analyzeFlags struct {
	outputDir       string
	metricsFile     string
	reorderWindow   int
	delaySlotWindow int
	noReplay        bool
}

func newAnalyzeCmd(base *BaseCmd) *cobra.Command {
	flags := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:           "analyze [file]",
		Short:         "Detect hazards and write every transformed listing.",
		Example:       "rvhazard analyze program.hex --config rvhazard.yaml",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		cfg, err := base.loadConfig()
		if err != nil {
			return err
		}
		if err := flags.apply(c, cfg); err != nil {
			return err
		}
		if len(args) > 0 {
			cfg.Input = args[0]
		}
		return runAnalyze(c, base, cfg)
	}

	defaults := config.DefaultConfig()
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", defaults.OutputDir,
		"directory receiving listings and reports")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-file", defaults.MetricsFile,
		"write Prometheus text metrics to this file")
	cmd.Flags().IntVar(&flags.reorderWindow, "reorder-window", defaults.ReorderWindow,
		"positions after a producer searched for a candidate")
	cmd.Flags().IntVar(&flags.delaySlotWindow, "delay-slot-window", defaults.DelaySlotWindow,
		"positions before a branch searched for a delay slot candidate")
	cmd.Flags().BoolVar(&flags.noReplay, "no-replay", false,
		"skip the cycle replay of each output")

	return cmd
}

// apply overrides cfg with the flags set on the command line.
func (f *analyzeFlags) apply(c *cobra.Command, cfg *config.Config) error {
	set := c.Flags().Changed

	if set("output-dir") {
		cfg.OutputDir = f.outputDir
	}
	if set("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
	if set("reorder-window") {
		cfg.ReorderWindow = f.reorderWindow
	}
	if set("delay-slot-window") {
		cfg.DelaySlotWindow = f.delaySlotWindow
	}
	if set("no-replay") {
		cfg.Replay = !f.noReplay
	}

	return cfg.Validate()
}

func runAnalyze(c *cobra.Command, base *BaseCmd, cfg *config.Config) error {
	logger := base.logger(c.ErrOrStderr())

	prog, err := loader.Load(cfg.Input)
	if err != nil {
		return err
	}
	for _, skipped := range prog.Skipped {
		logger.Warn("skipping malformed line",
			"file", cfg.Input, "line", skipped.Line, "text", skipped.Text)
	}

	runner := schedule.NewRunner(cfg, schedule.WithLogger(logger))
	res, err := runner.Run(c.Context(), prog.Instructions)
	if err != nil {
		return err
	}

	written, err := report.WriteAll(cfg.OutputDir, res)
	if err != nil {
		return err
	}
	logger.Debug("outputs written", "dir", cfg.OutputDir, "files", len(written))

	if cfg.MetricsFile != "" {
		m := report.NewMetrics()
		m.Observe(res)
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
	}

	report.Summary(c.OutOrStdout(), cfg.Input, res)
	return nil
}

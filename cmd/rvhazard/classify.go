package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/rvhazard/insts"
	"github.com/sarchlab/rvhazard/loader"
)

func newClassifyCmd(base *BaseCmd) *cobra.Command {
	return &cobra.Command{
		Use:           "classify [file]",
		Short:         "Print the encoding format of every instruction.",
		Example:       "rvhazard classify program.hex",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := base.loadConfig()
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.Input = args[0]
			}

			logger := base.logger(c.ErrOrStderr())

			prog, err := loader.Load(cfg.Input)
			if err != nil {
				return err
			}
			for _, skipped := range prog.Skipped {
				logger.Warn("skipping malformed line",
					"file", cfg.Input, "line", skipped.Line, "text", skipped.Text)
			}

			classifier := insts.NewClassifier()
			for _, line := range prog.Lines {
				if _, err := classifier.Classify(line); err != nil {
					return err
				}
			}

			out := c.OutOrStdout()
			fmt.Fprintln(out, "Classified instructions:")
			for _, e := range classifier.Entries() {
				fmt.Fprintf(out, "%s => Type %s\n", e.Text, e.Kind)
			}

			fmt.Fprintln(out, "\nCount by type:")
			for _, k := range insts.TallyOrder {
				fmt.Fprintf(out, "%s: %d\n", k, classifier.Count(k))
			}

			return nil
		},
	}
}

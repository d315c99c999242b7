// Package main provides the entry point for rvhazard.
// rvhazard detects pipeline hazards in a RISC-V listing and writes the
// program transformed by each resolution strategy.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/rvhazard/config"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// BaseCmd holds the flags shared by every command.
type BaseCmd struct {
	Cmd *cobra.Command

	configPath string
	verbose    bool
}

// loadConfig returns the config file named by --config, or the defaults.
func (b *BaseCmd) loadConfig() (*config.Config, error) {
	if b.configPath == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(b.configPath)
}

// logger returns a text logger on w, at debug level with --verbose.
func (b *BaseCmd) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if b.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewRootCommand builds the command tree. Running the root without a
// subcommand analyses a listing.
func NewRootCommand() *cobra.Command {
	base := &BaseCmd{}
	analyze := newAnalyzeCmd(base)

	root := &cobra.Command{
		Use:           "rvhazard [file]",
		Short:         "Static pipeline hazard analysis for RISC-V listings.",
		Example:       "rvhazard program.hex --output-dir out",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          analyze.RunE,
	}
	root.Flags().AddFlagSet(analyze.Flags())

	root.PersistentFlags().StringVarP(&base.configPath, "config", "c", "",
		"config file (yaml, json or toml)")
	root.PersistentFlags().BoolVarP(&base.verbose, "verbose", "v", false,
		"log every strategy at debug level")

	root.AddCommand(analyze)
	root.AddCommand(newClassifyCmd(base))

	base.Cmd = root
	return root
}

// Package main provides the entry point for rvhazard.
// rvhazard is a static hazard analyser and scheduler for a 5-stage RISC-V
// pipeline.
//
// For the full CLI, use: go run ./cmd/rvhazard
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	usage(os.Stdout, os.Args[1:])
}

// usage prints the banner. The options listed belong to ./cmd/rvhazard.
func usage(w io.Writer, args []string) {
	fmt.Fprintln(w, "rvhazard - RISC-V pipeline hazard analyser")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage: go run ./cmd/rvhazard [options] [program.hex]")
	fmt.Fprintln(w, "       go run ./cmd/rvhazard classify [program.hex]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Options (accepted by ./cmd/rvhazard only, this binary ignores them):")
	fmt.Fprintln(w, "  -c, --config             Config file (yaml, json or toml)")
	fmt.Fprintln(w, "  -o, --output-dir         Directory receiving listings and reports")
	fmt.Fprintln(w, "      --metrics-file       Write Prometheus text metrics")
	fmt.Fprintln(w, "      --reorder-window     Reorder search window")
	fmt.Fprintln(w, "      --delay-slot-window  Delay slot search window")
	fmt.Fprintln(w, "      --no-replay          Skip the cycle replay")
	fmt.Fprintln(w, "  -v, --verbose            Debug logging")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'go run ./cmd/rvhazard' for the full CLI.")

	if len(args) > 0 {
		fmt.Fprintln(w, "\nNote: You provided arguments. Use 'go run ./cmd/rvhazard' instead.")
	}
}

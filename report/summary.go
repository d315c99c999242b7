package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/sarchlab/rvhazard/schedule"
)

// Summary prints detection counts and a table comparing every strategy.
func Summary(w io.Writer, input string, res *schedule.Result) {
	heading := color.New(color.FgCyan, color.Bold)

	heading.Fprintln(w, "=== PIPELINE HAZARD ANALYSIS ===")
	fmt.Fprintf(w, "Input file: %s\n", input)
	fmt.Fprintf(w, "Instructions: %d\n\n", len(res.Original))

	heading.Fprintln(w, "=== DETECTION ===")
	fmt.Fprintf(w, "Data conflicts without forwarding: %d\n", len(res.Analysis.DataNoForwarding))
	fmt.Fprintf(w, "Data conflicts with forwarding: %d\n", len(res.Analysis.DataForwarding))
	fmt.Fprintf(w, "Control conflicts: %d\n\n", len(res.Analysis.Control))

	heading.Fprintln(w, "=== OVERHEAD ===")

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Strategy", "Instructions", "Added", "NOPs", "Stalls avoided", "Cycles", "CPI", "Output"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(summaryRows(res))
	table.Render()
}

func summaryRows(res *schedule.Result) [][]string {
	rows := make([][]string, 0, len(res.Outcomes)+1)
	rows = append(rows, []string{
		"Original", strconv.Itoa(len(res.Original)), "+0", strconv.Itoa(res.Original.NOPCount()), "0", "-", "-", "-",
	})
	for _, o := range res.Outcomes {
		cycles, cpi := "-", "-"
		if o.Replayed {
			cycles = strconv.FormatUint(o.Replay.Cycles, 10)
			cpi = strconv.FormatFloat(o.Replay.CPI(), 'f', 2, 64)
		}

		rows = append(rows, []string{
			o.Title,
			strconv.Itoa(len(o.Sequence)),
			fmt.Sprintf("%+d", o.Added),
			strconv.Itoa(o.NOPs),
			strconv.Itoa(o.StallsAvoided),
			cycles,
			cpi,
			o.File,
		})
	}
	return rows
}

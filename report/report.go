// Package report writes the artifacts of an analysis run: transformed
// listings, conflict reports, the console summary and metrics.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/sarchlab/rvhazard/insts"
	"github.com/sarchlab/rvhazard/schedule"
	"github.com/sarchlab/rvhazard/timing/pipeline"
)

// Conflict report files.
const (
	DataNoForwardingFile = "conflicts_data_no_forwarding.txt"
	DataForwardingFile   = "conflicts_data_forwarding.txt"
	ControlFile          = "conflicts_control.txt"
)

// Conflict report titles.
const (
	DataNoForwardingTitle = "DATA CONFLICTS WITHOUT FORWARDING"
	DataForwardingTitle   = "DATA CONFLICTS WITH FORWARDING"
	ControlTitle          = "CONTROL CONFLICTS"
)

const noConflicts = "No conflicts detected."

// WriteSequence writes one 8-digit uppercase hexadecimal word per line.
func WriteSequence(w io.Writer, seq insts.Sequence) error {
	bw := bufio.NewWriter(w)
	for _, inst := range seq {
		if _, err := fmt.Fprintln(bw, inst.Hex()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteDataConflicts writes a data hazard report.
func WriteDataConflicts(w io.Writer, title string, records []pipeline.HazardRecord) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "=== %s ===\n\n", title)

	if len(records) == 0 {
		fmt.Fprintln(bw, noConflicts)
	}
	for _, r := range records {
		kind := "RAW"
		if r.LoadUse {
			kind = "Load-Use"
		}
		fmt.Fprintf(bw, "%s conflict at position %d: register x%d (source: pos %d, distance: %d)\n",
			kind, r.Position, r.Register, r.Source, r.Distance)
	}

	return bw.Flush()
}

// WriteControlConflicts writes a control hazard report.
func WriteControlConflicts(w io.Writer, title string, records []pipeline.ControlHazardRecord) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "=== %s ===\n\n", title)

	if len(records) == 0 {
		fmt.Fprintln(bw, noConflicts)
	}
	for _, r := range records {
		fmt.Fprintf(bw, "Control conflict at position %d: instruction type %s\n", r.Position, r.Kind)
	}

	return bw.Flush()
}

// WriteAll writes the three conflict reports and every strategy's listing
// into dir, creating it if needed. It returns the paths written.
func WriteAll(dir string, res *schedule.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", dir)
	}

	var written []string
	write := func(name string, fn func(io.Writer) error) error {
		path := filepath.Join(dir, name)
		if err := writeFile(path, fn); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	a := res.Analysis
	reports := []struct {
		file string
		fn   func(io.Writer) error
	}{
		{DataNoForwardingFile, func(w io.Writer) error {
			return WriteDataConflicts(w, DataNoForwardingTitle, a.DataNoForwarding)
		}},
		{DataForwardingFile, func(w io.Writer) error {
			return WriteDataConflicts(w, DataForwardingTitle, a.DataForwarding)
		}},
		{ControlFile, func(w io.Writer) error {
			return WriteControlConflicts(w, ControlTitle, a.Control)
		}},
	}
	for _, r := range reports {
		if err := write(r.file, r.fn); err != nil {
			return written, err
		}
	}

	for _, o := range res.Outcomes {
		seq := o.Sequence
		if err := write(o.File, func(w io.Writer) error { return WriteSequence(w, seq) }); err != nil {
			return written, err
		}
	}

	return written, nil
}

func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "failed to close %s", path)
		}
	}()

	if err := fn(f); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// Package loader reads instruction listings: plain text files holding one
// hexadecimal instruction word per line.
package loader

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/sarchlab/rvhazard/insts"
)

// ErrInputFileNotFound is returned when the listing file does not exist.
var ErrInputFileNotFound = errors.New("input file not found")

// LineError records a line that could not be decoded.
type LineError struct {
	// Line is the 1-based line number.
	Line int
	// Text is the line as read, without the trailing newline.
	Text string
	// Err wraps insts.ErrMalformedInstruction.
	Err error
}

func (e LineError) Error() string {
	return errors.Wrapf(e.Err, "line %d", e.Line).Error()
}

// Program represents a decoded instruction listing.
type Program struct {
	// Path is the file the listing was read from, if any.
	Path string
	// Instructions holds the decoded instructions in file order.
	Instructions insts.Sequence
	// Lines holds the trimmed, upper-cased source text of each instruction.
	Lines []string
	// Skipped lists lines that were not valid hexadecimal.
	Skipped []LineError
}

// Load reads and decodes the listing at path. Blank lines are ignored and
// malformed lines are skipped and reported in Program.Skipped.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(ErrInputFileNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "failed to open listing %s", path)
	}
	defer func() { _ = f.Close() }()

	prog, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read listing %s", path)
	}
	prog.Path = path

	return prog, nil
}

// Parse decodes a listing from r.
func Parse(r io.Reader) (*Program, error) {
	decoder := insts.NewDecoder()
	prog := &Program{}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		inst, err := decoder.DecodeHex(text)
		if err != nil {
			prog.Skipped = append(prog.Skipped, LineError{Line: line, Text: text, Err: err})
			continue
		}

		prog.Instructions = append(prog.Instructions, inst)
		prog.Lines = append(prog.Lines, strings.ToUpper(text))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return prog, nil
}

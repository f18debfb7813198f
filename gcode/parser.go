package gcode

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse reads G-code text line by line and appends each recognized
// command to a fresh Evaluator. Lines that don't start with "G", are
// blank after trimming, or carry no parameter tokens are skipped —
// this is a path-replay collaborator, not a full dialect parser. A
// command written without parameters, such as a bare G28, G90 or G91
// line, is therefore skipped as well.
func Parse(r io.Reader) (*Evaluator, error) {
	e := NewEvaluator()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.IndexByte(line, ';'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" || line[0] != 'G' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		e.AddCommand(fields[0], fields[1:])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("gcode: scan: %w", err)
	}
	return e, nil
}

// ParseFile is a convenience wrapper around Parse for a path on disk.
func ParseFile(name string) (*Evaluator, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("gcode: open %s: %w", name, err)
	}
	defer f.Close()
	e, err := Parse(f)
	if err != nil {
		return nil, err
	}
	e.FileName = name
	return e, nil
}

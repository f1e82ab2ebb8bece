package horizons

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Shared field-level helpers for the per-type decoders. Every helper is a
// pure function over one line; decoders own the record-level state machines.

// civil layouts cover the calendar timestamps in OBSERVER rows, with and
// without seconds.
var civilLayouts = []string{
	"2006-Jan-02 15:04:05",
	"2006-Jan-02 15:04",
}

// parseCivilTime parses an OBSERVER timestamp like "2025-Dec-05 00:00".
func parseCivilTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range civilLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// epochTimeLayout matches the calendar portion of a VECTORS/ELEMENTS epoch
// line. The fractional seconds and the trailing scale marker are sliced off
// before parsing.
const epochTimeLayout = "2006-Jan-02 15:04:05"

// parseEpochLine parses a VECTORS/ELEMENTS epoch line of the form
//
//	2459805.372175926 = A.D. 2022-Aug-13 19:55:56.0000 TDB
func parseEpochLine(line string) (time.Time, error) {
	_, rest, found := strings.Cut(line, "=")
	if !found {
		return time.Time{}, fmt.Errorf("epoch line missing '=': %q", line)
	}
	return parseEpochValue(rest)
}

// parseEpochValue parses the calendar part of an epoch cell, e.g.
// "A.D. 2022-Aug-13 19:55:56.0000 TDB". The fractional seconds and the
// time-scale marker are sliced off before parsing.
func parseEpochValue(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	rest, ok := strings.CutPrefix(s, "A.D. ")
	if !ok {
		return time.Time{}, fmt.Errorf("epoch %q missing era prefix", s)
	}
	if len(rest) < len(epochTimeLayout) {
		return time.Time{}, fmt.Errorf("epoch %q truncated", s)
	}
	t, err := time.Parse(epochTimeLayout, rest[:len(epochTimeLayout)])
	if err != nil {
		return time.Time{}, fmt.Errorf("epoch time: %w", err)
	}
	return t.UTC(), nil
}

// labeledFieldWidth is the fixed width of a value following its label in
// labeled VECTORS/ELEMENTS rows.
const labeledFieldWidth = 22

// cutLabeled consumes a "LBL= value" pair from a fixed-width row, returning
// the parsed value and the remainder of the line.
func cutLabeled(line, label string) (float64, string, error) {
	rest, ok := strings.CutPrefix(line, label)
	if !ok {
		return 0, "", fmt.Errorf("expected %q in row %q", strings.TrimSpace(label), line)
	}
	field := rest
	if len(rest) > labeledFieldWidth {
		field = rest[:labeledFieldWidth]
		rest = rest[labeledFieldWidth:]
	} else {
		rest = ""
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, "", fmt.Errorf("field %s: %w", strings.TrimSpace(label), err)
	}
	return v, rest, nil
}

// splitCSV splits a comma-delimited payload row, trimming each cell and
// dropping the empty trailing cell the service appends after the last comma.
func splitCSV(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if n := len(parts); n > 0 && parts[n-1] == "" {
		parts = parts[:n-1]
	}
	return parts
}

// parseFloats parses every cell as a float, failing on the first cell that
// is not numeric.
func parseFloats(cells []string) ([]float64, error) {
	out := make([]float64, len(cells))
	for i, c := range cells {
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return nil, fmt.Errorf("field %d (%q) is not numeric", i+1, c)
		}
		out[i] = v
	}
	return out, nil
}

package horizons

import (
	"strconv"
	"strings"
)

// BodyRecord is one entry of the major-bodies catalog: a stable numeric id
// and a display name. Catalog order follows the service's listing order.
type BodyRecord struct {
	ID   int
	Name string
}

// decodeMajorBodies parses the COMMAND=MB catalog listing. The catalog has
// no sentinel markers; it interleaves a column header, dashed rules, and
// section separators with data lines, so non-matching lines are skipped
// rather than treated as errors.
func decodeMajorBodies(text string) []BodyRecord {
	var records []BodyRecord
	for _, line := range strings.Split(text, "\n") {
		rec, ok := parseBodyLine(line)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// parseBodyLine parses a catalog line of the form
//
//	399  Earth       Geocenter
//
// where the name may contain spaces and trailing designation/alias columns
// are separated by runs of two or more spaces.
func parseBodyLine(line string) (BodyRecord, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return BodyRecord{}, false
	}

	idField, rest, found := cutAnySpace(trimmed)
	if !found {
		return BodyRecord{}, false
	}
	id, err := strconv.Atoi(idField)
	if err != nil {
		return BodyRecord{}, false
	}

	name := strings.TrimSpace(rest)
	// Designation and alias columns follow the name after a wide gap.
	if idx := strings.Index(name, "  "); idx >= 0 {
		name = strings.TrimSpace(name[:idx])
	}
	if name == "" {
		return BodyRecord{}, false
	}
	return BodyRecord{ID: id, Name: name}, true
}

// cutAnySpace splits off the first whitespace-separated token.
func cutAnySpace(s string) (token, rest string, found bool) {
	idx := strings.IndexAny(s, " \t")
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx:], true
}

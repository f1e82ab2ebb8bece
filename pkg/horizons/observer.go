package horizons

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ObserverRecord is one row of an OBSERVER table. Which fields are
// populated follows the request's quantity selection; the Has* flags
// report what the row carried.
type ObserverRecord struct {
	Time time.Time

	// Right ascension / declination in degrees (quantities 1 or 2,
	// ANG_FORMAT=DEG).
	RADeg, DecDeg float64
	HasRADec      bool

	// Apparent azimuth / elevation in degrees (quantity 4).
	AzDeg, ElDeg float64
	HasAzEl      bool

	// Range from the coordinate center (AU, or km with WithRangeKm) and
	// range rate in km/s (quantity 20).
	Range, RangeRateKmS float64
	HasRange            bool
}

// observerColumns validates that the decoder knows the column layout for
// the requested quantity selection. Each supported code contributes two
// numeric columns, in request order.
func observerColumns(qs []Quantity) error {
	if len(qs) == 0 {
		return configErr(keyQuantities, fmt.Errorf("observer requests need an explicit quantity selection"))
	}
	for _, q := range qs {
		switch q {
		case QuantityAstrometricRADec, QuantityApparentRADec, QuantityApparentAzEl, QuantityRange:
		default:
			return configErr(keyQuantities, fmt.Errorf("no decoder column layout for quantity %d", q))
		}
	}
	return nil
}

// decodeObserver turns framed OBSERVER payload lines into records. A single
// malformed row fails the whole decode: positional misalignment means the
// column layout is not what was requested, and the remaining rows' field
// mapping cannot be trusted.
func decodeObserver(p payload, qs []Quantity, csv bool) ([]ObserverRecord, error) {
	if err := observerColumns(qs); err != nil {
		return nil, err
	}

	want := 2 * len(qs)
	var records []ObserverRecord
	for _, line := range p.lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		var (
			rec ObserverRecord
			err error
		)
		if csv {
			rec, err = parseObserverCSVRow(line, qs, want)
		} else {
			rec, err = parseObserverRow(line, qs, want)
		}
		if err != nil {
			return nil, decodeErr(strings.TrimSpace(line), err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseObserverRow parses one fixed-width row, e.g. for quantity 4:
//
//	2025-Dec-05 00:00 *   261.032124  32.878027
//
// The third column is an optional solar/lunar presence flag.
func parseObserverRow(line string, qs []Quantity, want int) (ObserverRecord, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ObserverRecord{}, fmt.Errorf("row has no timestamp")
	}

	t, err := parseCivilTime(fields[0] + " " + fields[1])
	if err != nil {
		return ObserverRecord{}, err
	}

	rest := fields[2:]
	switch {
	case len(rest) == want:
	case len(rest) == want+1 && !isNumeric(rest[0]):
		rest = rest[1:]
	default:
		return ObserverRecord{}, fmt.Errorf("expected %d quantity fields, found %d", want, len(rest))
	}

	values, err := parseFloats(rest)
	if err != nil {
		return ObserverRecord{}, err
	}
	return buildObserverRecord(t, qs, values), nil
}

// parseObserverCSVRow parses one CSV-mode row. CSV output carries the
// presence flags as their own (often empty) cells between the timestamp
// and the quantity columns.
func parseObserverCSVRow(line string, qs []Quantity, want int) (ObserverRecord, error) {
	cells := splitCSV(line)
	if len(cells) == 0 {
		return ObserverRecord{}, fmt.Errorf("empty row")
	}

	t, err := parseCivilTime(cells[0])
	if err != nil {
		return ObserverRecord{}, err
	}

	var numeric []string
	for _, cell := range cells[1:] {
		if cell == "" || isPresenceFlag(cell) {
			continue
		}
		numeric = append(numeric, cell)
	}
	if len(numeric) != want {
		return ObserverRecord{}, fmt.Errorf("expected %d quantity fields, found %d", want, len(numeric))
	}

	values, err := parseFloats(numeric)
	if err != nil {
		return ObserverRecord{}, err
	}
	return buildObserverRecord(t, qs, values), nil
}

// buildObserverRecord assigns value pairs to fields in quantity order.
func buildObserverRecord(t time.Time, qs []Quantity, values []float64) ObserverRecord {
	rec := ObserverRecord{Time: t}
	for i, q := range qs {
		a, b := values[2*i], values[2*i+1]
		switch q {
		case QuantityAstrometricRADec, QuantityApparentRADec:
			rec.RADeg, rec.DecDeg = a, b
			rec.HasRADec = true
		case QuantityApparentAzEl:
			rec.AzDeg, rec.ElDeg = a, b
			rec.HasAzEl = true
		case QuantityRange:
			rec.Range, rec.RangeRateKmS = a, b
			rec.HasRange = true
		}
	}
	return rec
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// isPresenceFlag matches the solar/lunar presence and interference markers
// the service prints between the timestamp and the data columns.
func isPresenceFlag(s string) bool {
	if len(s) > 3 {
		return false
	}
	for _, r := range s {
		switch {
		case r == '*', r == 'C', r == 'N', r == 'A', r == 'm', r == 'r', r == 't', r == 's':
		default:
			return false
		}
	}
	return true
}

package horizons

import (
	"fmt"
	"strings"
	"time"
)

// ElementRecord is one osculating-elements sample from an ELEMENTS table.
// Distances are km, angles degrees, rates degrees/s and periods seconds in
// the default output units.
type ElementRecord struct {
	Time time.Time

	Eccentricity      float64 // EC
	PeriapsisDistance float64 // QR
	InclinationDeg    float64 // IN, w.r.t. the reference plane

	AscendingNodeDeg     float64 // OM, longitude of ascending node
	PeriapsisArgumentDeg float64 // W
	PeriapsisTimeJD      float64 // Tp, Julian day number

	MeanMotionDegSec float64 // N
	MeanAnomalyDeg   float64 // MA
	TrueAnomalyDeg   float64 // TA

	SemiMajorAxis    float64 // A
	ApoapsisDistance float64 // AD
	OrbitPeriodSec   float64 // PR
}

// elementRows describes the four labeled rows of one fixed-width ELEMENTS
// record, in order, with setters into the record under construction.
var elementRows = [4][3]struct {
	label string
	set   func(*ElementRecord, float64)
}{
	{
		{" EC=", func(r *ElementRecord, v float64) { r.Eccentricity = v }},
		{" QR=", func(r *ElementRecord, v float64) { r.PeriapsisDistance = v }},
		{" IN=", func(r *ElementRecord, v float64) { r.InclinationDeg = v }},
	},
	{
		{" OM=", func(r *ElementRecord, v float64) { r.AscendingNodeDeg = v }},
		{" W =", func(r *ElementRecord, v float64) { r.PeriapsisArgumentDeg = v }},
		{" Tp=", func(r *ElementRecord, v float64) { r.PeriapsisTimeJD = v }},
	},
	{
		{" N =", func(r *ElementRecord, v float64) { r.MeanMotionDegSec = v }},
		{" MA=", func(r *ElementRecord, v float64) { r.MeanAnomalyDeg = v }},
		{" TA=", func(r *ElementRecord, v float64) { r.TrueAnomalyDeg = v }},
	},
	{
		{" A =", func(r *ElementRecord, v float64) { r.SemiMajorAxis = v }},
		{" AD=", func(r *ElementRecord, v float64) { r.ApoapsisDistance = v }},
		{" PR=", func(r *ElementRecord, v float64) { r.OrbitPeriodSec = v }},
	},
}

// decodeElements turns framed ELEMENTS payload lines into records. Each
// fixed-width record is an epoch line followed by four labeled rows
// (EC/QR/IN, OM/W/Tp, N/MA/TA, A/AD/PR). All-or-nothing on malformed rows.
func decodeElements(p payload, csv bool) ([]ElementRecord, error) {
	if csv {
		return decodeElementsCSV(p)
	}

	var (
		records []ElementRecord
		rec     ElementRecord
		row     = -1 // -1 means awaiting the epoch line
	)
	for _, line := range p.lines {
		if row == -1 {
			if strings.TrimSpace(line) == "" {
				continue
			}
			t, err := parseEpochLine(line)
			if err != nil {
				return nil, decodeErr(strings.TrimSpace(line), err)
			}
			rec = ElementRecord{Time: t}
			row = 0
			continue
		}

		rest := line
		for _, field := range elementRows[row] {
			v, r, err := cutLabeled(rest, field.label)
			if err != nil {
				return nil, decodeErr(strings.TrimSpace(line), err)
			}
			field.set(&rec, v)
			rest = r
		}
		row++
		if row == len(elementRows) {
			records = append(records, rec)
			row = -1
		}
	}
	if row != -1 {
		return nil, decodeErr("", fmt.Errorf("payload ended mid-record"))
	}
	return records, nil
}

// decodeElementsCSV parses the comma-delimited layout: JD, calendar epoch,
// then the twelve element cells in EC..PR order.
func decodeElementsCSV(p payload) ([]ElementRecord, error) {
	var records []ElementRecord
	for _, line := range p.lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := splitCSV(line)
		if len(cells) < 2 {
			return nil, decodeErr(strings.TrimSpace(line), fmt.Errorf("row has no epoch cells"))
		}
		t, err := parseEpochValue(cells[1])
		if err != nil {
			return nil, decodeErr(strings.TrimSpace(line), err)
		}
		values, err := parseFloats(cells[2:])
		if err != nil {
			return nil, decodeErr(strings.TrimSpace(line), err)
		}
		if len(values) != 12 {
			return nil, decodeErr(strings.TrimSpace(line),
				fmt.Errorf("expected 12 element fields, found %d", len(values)))
		}
		rec := ElementRecord{Time: t}
		i := 0
		for _, rowFields := range elementRows {
			for _, field := range rowFields {
				field.set(&rec, values[i])
				i++
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

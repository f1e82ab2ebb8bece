package horizons

import (
	"fmt"
	"strings"
	"time"
)

// VectorRecord is one Cartesian state sample from a VECTORS table: position
// and velocity relative to the requested center, in the requested output
// units (km and km/s by default).
type VectorRecord struct {
	Time     time.Time
	Position [3]float64
	Velocity [3]float64
}

// Per-record states for the fixed-width vector decoder. Each record spans
// an epoch line, a position line, a velocity line, and (VEC_TABLE=3) a
// range-quantities line that is skipped.
type vectorRowState int

const (
	vecWantEpoch vectorRowState = iota
	vecWantPosition
	vecWantVelocity
)

// decodeVectors turns framed VECTORS payload lines into records. Decoding
// is all-or-nothing: one malformed line means the table layout diverged
// from the request and nothing after it can be trusted.
func decodeVectors(p payload, csv bool) ([]VectorRecord, error) {
	if csv {
		return decodeVectorsCSV(p)
	}

	var (
		records []VectorRecord
		rec     VectorRecord
		state   = vecWantEpoch
	)
	for _, line := range p.lines {
		switch state {
		case vecWantEpoch:
			if strings.TrimSpace(line) == "" {
				continue
			}
			// VEC_TABLE=3 appends a light-time/range/range-rate line
			// after each velocity line; it carries no state data.
			if strings.HasPrefix(line, " LT=") {
				continue
			}
			t, err := parseEpochLine(line)
			if err != nil {
				return nil, decodeErr(strings.TrimSpace(line), err)
			}
			rec = VectorRecord{Time: t}
			state = vecWantPosition

		case vecWantPosition:
			x, rest, err := cutLabeled(line, " X =")
			if err != nil {
				return nil, decodeErr(strings.TrimSpace(line), err)
			}
			y, rest, err := cutLabeled(rest, " Y =")
			if err != nil {
				return nil, decodeErr(strings.TrimSpace(line), err)
			}
			z, _, err := cutLabeled(rest, " Z =")
			if err != nil {
				return nil, decodeErr(strings.TrimSpace(line), err)
			}
			rec.Position = [3]float64{x, y, z}
			state = vecWantVelocity

		case vecWantVelocity:
			vx, rest, err := cutLabeled(line, " VX=")
			if err != nil {
				return nil, decodeErr(strings.TrimSpace(line), err)
			}
			vy, rest, err := cutLabeled(rest, " VY=")
			if err != nil {
				return nil, decodeErr(strings.TrimSpace(line), err)
			}
			vz, _, err := cutLabeled(rest, " VZ=")
			if err != nil {
				return nil, decodeErr(strings.TrimSpace(line), err)
			}
			rec.Velocity = [3]float64{vx, vy, vz}
			records = append(records, rec)
			state = vecWantEpoch
		}
	}
	if state != vecWantEpoch {
		return nil, decodeErr("", fmt.Errorf("payload ended mid-record"))
	}
	return records, nil
}

// decodeVectorsCSV parses the comma-delimited layout: JD, calendar epoch,
// X, Y, Z, VX, VY, VZ, and for VEC_TABLE=3 the trailing LT/RG/RR cells.
func decodeVectorsCSV(p payload) ([]VectorRecord, error) {
	var records []VectorRecord
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
		if len(values) != 6 && len(values) != 9 {
			return nil, decodeErr(strings.TrimSpace(line),
				fmt.Errorf("expected 6 or 9 state fields, found %d", len(values)))
		}
		records = append(records, VectorRecord{
			Time:     t,
			Position: [3]float64{values[0], values[1], values[2]},
			Velocity: [3]float64{values[3], values[4], values[5]},
		})
	}
	return records, nil
}

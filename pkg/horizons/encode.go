package horizons

import (
	"strconv"
	"strings"
)

// timeLayout is the START_TIME/STOP_TIME format the command language accepts.
const timeLayout = "2006-01-02 15:04:05"

// Param is one query parameter, ready for the transport. Encode returns
// params in a stable order; HTTP encoding may reorder them freely since the
// service treats the query string as a set.
type Param struct {
	Key   string
	Value string
}

// Encode serializes the request into the literal key=value pairs the
// Horizons command language expects. It either produces the complete,
// internally consistent parameter set or fails with a config error,
// never a partial query.
func (r Request) Encode() ([]Param, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	if r.typ.mask() == 0 {
		return nil, configErr(keyEphemType, ErrNotApplicable)
	}

	params := []Param{
		{keyFormat, r.format.value()},
		{keyCommand, quoteIfNeeded(r.command)},
		{keyObjData, yesNo(r.objData)},
		{keyMakeEphem, "YES"},
		{keyEphemType, r.typ.String()},
		{keyCenter, quoteIfNeeded(string(r.center))},
	}

	if r.has(keyCoordType) {
		params = append(params,
			Param{keyCoordType, r.coordType},
			Param{keySiteCoord, quoteIfNeeded(r.siteCoord)},
		)
	}
	if r.has(keyStartTime) {
		params = append(params,
			Param{keyStartTime, quoteIfNeeded(r.start.Format(timeLayout))},
			Param{keyStopTime, quoteIfNeeded(r.stop.Format(timeLayout))},
			Param{keyStepSize, quoteIfNeeded(r.step.String())},
		)
	}
	if r.has(keyQuantities) {
		params = append(params, Param{keyQuantities, quoteIfNeeded(joinQuantities(r.quantities))})
	}
	if r.has(keyAngFormat) {
		v := "HMS"
		if r.angFormat == AngleDegrees {
			v = "DEG"
		}
		params = append(params, Param{keyAngFormat, v})
	}
	if r.has(keyRangeUnits) {
		params = append(params, Param{keyRangeUnits, "KM"})
	}
	if r.has(keyExtraPrec) {
		params = append(params, Param{keyExtraPrec, yesNo(r.extraPrec)})
	}
	if r.has(keyApparent) {
		v := "AIRLESS"
		if r.refracted {
			v = "REFRACTED"
		}
		params = append(params, Param{keyApparent, v})
	}
	if r.has(keyCalFormat) {
		params = append(params, Param{keyCalFormat, r.calFormat.value()})
	}
	if r.has(keyCalType) {
		params = append(params, Param{keyCalType, r.calType.value()})
	}
	if r.has(keySkipDaylt) {
		params = append(params, Param{keySkipDaylt, yesNo(r.skipDaylt)})
	}
	if r.has(keyElevCut) {
		params = append(params, Param{keyElevCut, strconv.FormatFloat(r.elevCut, 'f', -1, 64)})
	}
	if r.has(keyRefPlane) {
		params = append(params, Param{keyRefPlane, quoteIfNeeded(r.refPlane.value())})
	}
	if r.has(keyRefSystem) {
		params = append(params, Param{keyRefSystem, r.refSystem.value()})
	}
	if r.has(keyOutUnits) {
		params = append(params, Param{keyOutUnits, quoteIfNeeded(r.outUnits.value())})
	}
	if r.has(keyVecTable) {
		params = append(params, Param{keyVecTable, strconv.Itoa(r.vecTable)})
	}
	if r.has(keyVecCorr) {
		params = append(params, Param{keyVecCorr, quoteIfNeeded(r.vecCorr.value())})
	}
	if r.has(keyVecLabels) {
		params = append(params, Param{keyVecLabels, yesNo(r.vecLabels)})
	}
	if r.has(keyVecDeltaT) {
		params = append(params, Param{keyVecDeltaT, yesNo(r.vecDeltaT)})
	}
	if r.has(keyElmLabels) {
		params = append(params, Param{keyElmLabels, yesNo(r.elmLabels)})
	}
	if r.has(keyTPType) {
		v := "ABSOLUTE"
		if r.tpRelative {
			v = "RELATIVE"
		}
		params = append(params, Param{keyTPType, v})
	}
	if r.has(keyCSVFormat) {
		params = append(params, Param{keyCSVFormat, yesNo(r.csv)})
	}
	if r.email != "" {
		params = append(params, Param{keyEmail, r.email})
	}

	return params, nil
}

// ParseParams reverses the quoting applied by Encode, returning the logical
// key/value pairs. Used to verify round-trip encoding; it does not
// reconstruct a Request.
func ParseParams(params []Param) map[string]string {
	out := make(map[string]string, len(params))
	for _, p := range params {
		out[p.Key] = unquote(p.Value)
	}
	return out
}

// quoteIfNeeded wraps values in single quotes when the command grammar
// requires it: compound center specifiers, values with spaces or commas,
// and name lookups. Incorrect quoting here shows up as a service-side
// parse error, so quote conservatively.
func quoteIfNeeded(v string) string {
	if v == "" {
		return v
	}
	if strings.HasPrefix(v, "'") && strings.HasSuffix(v, "'") {
		return v
	}
	if strings.ContainsAny(v, " ,@=;") {
		return "'" + v + "'"
	}
	return v
}

func unquote(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, "'") && strings.HasSuffix(v, "'") {
		return v[1 : len(v)-1]
	}
	return v
}

func joinQuantities(qs []Quantity) string {
	parts := make([]string, len(qs))
	for i, q := range qs {
		parts[i] = strconv.Itoa(int(q))
	}
	return strings.Join(parts, ",")
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

package horizons

// Query parameter keys from the Horizons command language (v1.2).
// The upper/lower casing matters to the service.
const (
	keyFormat    = "format"
	keyCommand   = "COMMAND"
	keyObjData   = "OBJ_DATA"
	keyMakeEphem = "MAKE_EPHEM"
	keyEphemType = "EPHEM_TYPE"
	keyEmail     = "EMAIL_ADDR"

	keyCenter    = "CENTER"
	keyCoordType = "COORD_TYPE"
	keySiteCoord = "SITE_COORD"
	keyStartTime = "START_TIME"
	keyStopTime  = "STOP_TIME"
	keyStepSize  = "STEP_SIZE"
	keyCSVFormat = "CSV_FORMAT"
	keyCalType   = "CAL_TYPE"
	keyRefSystem = "REF_SYSTEM"

	keyQuantities = "QUANTITIES"
	keyAngFormat  = "ANG_FORMAT"
	keyApparent   = "APPARENT"
	keyCalFormat  = "CAL_FORMAT"
	keyRangeUnits = "RANGE_UNITS"
	keyExtraPrec  = "EXTRA_PREC"
	keySkipDaylt  = "SKIP_DAYLT"
	keyElevCut    = "ELEV_CUT"

	keyRefPlane = "REF_PLANE"
	keyOutUnits = "OUT_UNITS"

	keyVecTable  = "VEC_TABLE"
	keyVecCorr   = "VEC_CORR"
	keyVecLabels = "VEC_LABELS"
	keyVecDeltaT = "VEC_DELTA_T"

	keyElmLabels = "ELM_LABELS"
	keyTPType    = "TP_TYPE"
)

type typeMask uint8

const (
	maskObserver typeMask = 1 << iota
	maskVectors
	maskElements
)

func (t EphemerisType) mask() typeMask {
	switch t {
	case TypeObserver:
		return maskObserver
	case TypeVectors:
		return maskVectors
	case TypeElements:
		return maskElements
	default:
		return 0
	}
}

const maskAll = maskObserver | maskVectors | maskElements

// applicability records which ephemeris-specific keys each ephemeris type
// accepts, per the documented parameter compatibility table. Cells the
// documentation leaves blank are treated as not applicable: a key absent
// here is rejected rather than silently forwarded to the service.
var applicability = map[string]typeMask{
	keyCenter:    maskAll,
	keyCoordType: maskAll,
	keySiteCoord: maskAll,
	keyStartTime: maskAll,
	keyStopTime:  maskAll,
	keyStepSize:  maskAll,
	keyCSVFormat: maskAll,
	keyCalType:   maskAll,
	keyRefSystem: maskAll,
	keyEmail:     maskAll,
	keyObjData:   maskAll,

	keyQuantities: maskObserver,
	keyAngFormat:  maskObserver,
	keyApparent:   maskObserver,
	keyCalFormat:  maskObserver,
	keyRangeUnits: maskObserver,
	keyExtraPrec:  maskObserver,
	keySkipDaylt:  maskObserver,
	keyElevCut:    maskObserver,

	keyRefPlane: maskVectors | maskElements,
	keyOutUnits: maskVectors | maskElements,

	keyVecTable:  maskVectors,
	keyVecCorr:   maskVectors,
	keyVecLabels: maskVectors,
	keyVecDeltaT: maskVectors,

	keyElmLabels: maskElements,
	keyTPType:    maskElements,
}

// applicable reports whether key may be sent for the given ephemeris type.
func applicable(key string, t EphemerisType) bool {
	m, ok := applicability[key]
	if !ok {
		return false
	}
	return m&t.mask() != 0
}

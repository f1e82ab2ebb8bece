package horizons

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// EphemerisType selects which kind of ephemeris table the service produces,
// which in turn selects the decoder applied to the response.
type EphemerisType int

const (
	TypeObserver EphemerisType = iota + 1
	TypeVectors
	TypeElements
)

func (t EphemerisType) String() string {
	switch t {
	case TypeObserver:
		return "OBSERVER"
	case TypeVectors:
		return "VECTORS"
	case TypeElements:
		return "ELEMENTS"
	default:
		return "UNKNOWN"
	}
}

// OutputFormat selects the response envelope requested from the service.
type OutputFormat int

const (
	// FormatJSON wraps the text bundle in a JSON envelope with a "result"
	// field. This is the service default and what the client expects.
	FormatJSON OutputFormat = iota
	// FormatText returns the bare text bundle.
	FormatText
)

func (f OutputFormat) value() string {
	if f == FormatText {
		return "text"
	}
	return "json"
}

// Center identifies the coordinate origin for an ephemeris. Values follow
// the service grammar: "500" (geocentric), "500@399", "@10" (body center),
// "coord@399" (site coordinates on Earth).
type Center string

// Geocenter is the default coordinate origin (site 500 on Earth).
const Geocenter Center = "500"

// GeocentricOf returns the geocentric site of the given body.
func GeocentricOf(body int) Center {
	return Center(fmt.Sprintf("500@%d", body))
}

// BodyCenter returns the center of mass of the given body, e.g. BodyCenter(10)
// for the Sun.
func BodyCenter(body int) Center {
	return Center(fmt.Sprintf("@%d", body))
}

// SiteOn returns the topocentric origin on a body, to be combined with
// WithGeodeticSite or WithCylindricalSite.
func SiteOn(body int) Center {
	return Center(fmt.Sprintf("coord@%d", body))
}

// StepUnit is the unit of a step size.
type StepUnit int

const (
	StepMinutes StepUnit = iota
	StepHours
	StepDays
	StepMonths
	StepYears
	// StepUnitless divides the time span into a fixed number of intervals.
	StepUnitless
)

// StepSize is the sampling interval between ephemeris rows.
type StepSize struct {
	Value int
	Unit  StepUnit
}

func (s StepSize) String() string {
	switch s.Unit {
	case StepMinutes:
		return fmt.Sprintf("%d m", s.Value)
	case StepHours:
		return fmt.Sprintf("%d h", s.Value)
	case StepDays:
		return fmt.Sprintf("%d d", s.Value)
	case StepMonths:
		return fmt.Sprintf("%d mo", s.Value)
	case StepYears:
		return fmt.Sprintf("%d y", s.Value)
	default:
		return fmt.Sprintf("%d", s.Value)
	}
}

// Quantity is an observer-table quantity code (1..48). The code set
// controls which columns appear in OBSERVER responses.
type Quantity int

// Quantity codes the observer decoder knows the column layout for.
const (
	QuantityAstrometricRADec Quantity = 1
	QuantityApparentRADec    Quantity = 2
	QuantityApparentAzEl     Quantity = 4
	QuantityRange            Quantity = 20
)

// AngleFormat controls how OBSERVER angles are printed.
type AngleFormat int

const (
	AngleHMS AngleFormat = iota // sexagesimal, the service default
	AngleDegrees
)

// CalFormat controls the epoch representation in OBSERVER rows.
type CalFormat int

const (
	CalFormatCalendar CalFormat = iota // the service default
	CalFormatJulianDay
	CalFormatBoth
)

func (f CalFormat) value() string {
	switch f {
	case CalFormatJulianDay:
		return "JD"
	case CalFormatBoth:
		return "BOTH"
	default:
		return "CAL"
	}
}

// CalType selects the calendar used to interpret and print dates.
type CalType int

const (
	CalTypeMixed CalType = iota // Julian before 1582-Oct-15, Gregorian after
	CalTypeGregorian
)

func (t CalType) value() string {
	if t == CalTypeGregorian {
		return "GREGORIAN"
	}
	return "MIXED"
}

// RefPlane is the reference plane for VECTORS and ELEMENTS output.
type RefPlane int

const (
	RefPlaneEcliptic RefPlane = iota
	RefPlaneFrame
	RefPlaneBodyEquator
)

func (p RefPlane) value() string {
	switch p {
	case RefPlaneFrame:
		return "FRAME"
	case RefPlaneBodyEquator:
		return "BODY EQUATOR"
	default:
		return "ECLIPTIC"
	}
}

// RefSystem is the reference frame for output coordinates.
type RefSystem int

const (
	RefSystemICRF RefSystem = iota
	RefSystemB1950
)

func (s RefSystem) value() string {
	if s == RefSystemB1950 {
		return "B1950"
	}
	return "ICRF"
}

// OutUnits selects output units for VECTORS and ELEMENTS tables.
type OutUnits int

const (
	UnitsKmSec OutUnits = iota
	UnitsAuDay
	UnitsKmDay
)

func (u OutUnits) value() string {
	switch u {
	case UnitsAuDay:
		return "AU-D"
	case UnitsKmDay:
		return "KM-D"
	default:
		return "KM-S"
	}
}

// VecCorrection selects aberration corrections for VECTORS tables.
type VecCorrection int

const (
	VecCorrNone VecCorrection = iota
	VecCorrLightTime
	VecCorrLightTimeStellar
)

func (c VecCorrection) value() string {
	switch c {
	case VecCorrLightTime:
		return "LT"
	case VecCorrLightTimeStellar:
		return "LT+S"
	default:
		return "NONE"
	}
}

// Request is a validated, immutable ephemeris query. Build one with
// NewRequest; a zero Request is invalid and will not encode.
type Request struct {
	command string
	typ     EphemerisType
	format  OutputFormat

	objData    bool
	center     Center
	coordType  string
	siteCoord  string
	start      time.Time
	stop       time.Time
	step       StepSize
	quantities []Quantity
	angFormat  AngleFormat
	calFormat  CalFormat
	calType    CalType
	refracted  bool
	skipDaylt  bool
	elevCut    float64
	refPlane   RefPlane
	refSystem  RefSystem
	outUnits   OutUnits
	vecTable   int
	vecCorr    VecCorrection
	vecLabels  bool
	elmLabels  bool
	vecDeltaT  bool
	tpRelative bool
	rangeKm    bool
	extraPrec  bool
	csv        bool
	email      string

	// assigned tracks which ephemeris-specific keys the caller set, so the
	// encoder emits exactly those and the applicability check has run for
	// each of them.
	assigned map[string]bool
}

// RequestOption configures a Request during construction.
type RequestOption func(*Request) error

// mark records a caller-set key, rejecting keys the request's ephemeris
// type does not accept. Rejection happens at construction, never silently.
func (r *Request) mark(key string) error {
	if !applicable(key, r.typ) {
		return configErr(fmt.Sprintf("%s on %s request", key, r.typ), ErrNotApplicable)
	}
	r.assigned[key] = true
	return nil
}

func (r *Request) has(key string) bool {
	return r.assigned[key]
}

// WithFormat selects the response envelope (JSON by default).
func WithFormat(f OutputFormat) RequestOption {
	return func(r *Request) error {
		r.format = f
		return nil
	}
}

// WithObjData toggles the object summary block in the response header.
func WithObjData(on bool) RequestOption {
	return func(r *Request) error {
		r.objData = on
		return r.mark(keyObjData)
	}
}

// WithCenter sets the coordinate origin.
func WithCenter(c Center) RequestOption {
	return func(r *Request) error {
		r.center = c
		return r.mark(keyCenter)
	}
}

// WithGeodeticSite sets a geodetic site coordinate (east longitude and
// latitude in degrees, altitude in km). Combine with SiteOn as the center.
func WithGeodeticSite(eastLon, lat, altKm float64) RequestOption {
	return func(r *Request) error {
		r.coordType = "GEODETIC"
		r.siteCoord = fmt.Sprintf("%g,%g,%g", eastLon, lat, altKm)
		if err := r.mark(keyCoordType); err != nil {
			return err
		}
		return r.mark(keySiteCoord)
	}
}

// WithCylindricalSite sets a cylindrical site coordinate (east longitude in
// degrees, DXY and DZ in km).
func WithCylindricalSite(eastLon, dxy, dz float64) RequestOption {
	return func(r *Request) error {
		r.coordType = "CYLINDRICAL"
		r.siteCoord = fmt.Sprintf("%g,%g,%g", eastLon, dxy, dz)
		if err := r.mark(keyCoordType); err != nil {
			return err
		}
		return r.mark(keySiteCoord)
	}
}

// WithTimeSpan sets the sampled time window and step. All three are
// required together by the service.
func WithTimeSpan(start, stop time.Time, step StepSize) RequestOption {
	return func(r *Request) error {
		r.start = start.UTC()
		r.stop = stop.UTC()
		r.step = step
		for _, key := range []string{keyStartTime, keyStopTime, keyStepSize} {
			if err := r.mark(key); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithQuantities selects observer-table quantity codes.
func WithQuantities(qs ...Quantity) RequestOption {
	return func(r *Request) error {
		r.quantities = append([]Quantity(nil), qs...)
		return r.mark(keyQuantities)
	}
}

// WithAngleFormat selects degrees or sexagesimal angles for OBSERVER
// tables. The decoder expects degrees.
func WithAngleFormat(f AngleFormat) RequestOption {
	return func(r *Request) error {
		r.angFormat = f
		return r.mark(keyAngFormat)
	}
}

// WithRangeKm reports observer range in km instead of AU.
func WithRangeKm() RequestOption {
	return func(r *Request) error {
		r.rangeKm = true
		return r.mark(keyRangeUnits)
	}
}

// WithExtraPrecision requests extra digits in OBSERVER angle output.
func WithExtraPrecision() RequestOption {
	return func(r *Request) error {
		r.extraPrec = true
		return r.mark(keyExtraPrec)
	}
}

// WithRefraction models atmospheric refraction in apparent OBSERVER
// quantities. The service default is an airless model.
func WithRefraction() RequestOption {
	return func(r *Request) error {
		r.refracted = true
		return r.mark(keyApparent)
	}
}

// WithCalFormat selects calendar or Julian-day epochs in OBSERVER rows.
// The decoder reads calendar epochs.
func WithCalFormat(f CalFormat) RequestOption {
	return func(r *Request) error {
		r.calFormat = f
		return r.mark(keyCalFormat)
	}
}

// WithCalType selects the calendar used for input and output dates.
func WithCalType(t CalType) RequestOption {
	return func(r *Request) error {
		r.calType = t
		return r.mark(keyCalType)
	}
}

// WithSkipDaylight drops OBSERVER rows that fall in local daylight.
func WithSkipDaylight() RequestOption {
	return func(r *Request) error {
		r.skipDaylt = true
		return r.mark(keySkipDaylt)
	}
}

// WithElevationCutoff drops OBSERVER rows below the given elevation in
// degrees (-90 to 90).
func WithElevationCutoff(deg float64) RequestOption {
	return func(r *Request) error {
		r.elevCut = deg
		return r.mark(keyElevCut)
	}
}

// WithCSV switches the payload rows to comma-delimited form.
func WithCSV() RequestOption {
	return func(r *Request) error {
		r.csv = true
		return r.mark(keyCSVFormat)
	}
}

// WithRefPlane sets the reference plane for VECTORS/ELEMENTS output.
func WithRefPlane(p RefPlane) RequestOption {
	return func(r *Request) error {
		r.refPlane = p
		return r.mark(keyRefPlane)
	}
}

// WithRefSystem sets the reference frame.
func WithRefSystem(s RefSystem) RequestOption {
	return func(r *Request) error {
		r.refSystem = s
		return r.mark(keyRefSystem)
	}
}

// WithOutUnits sets output units for VECTORS/ELEMENTS tables.
func WithOutUnits(u OutUnits) RequestOption {
	return func(r *Request) error {
		r.outUnits = u
		return r.mark(keyOutUnits)
	}
}

// WithVectorTable selects the VECTORS table layout (1=position, 2=state
// vector, 3=state vector plus range quantities).
func WithVectorTable(n int) RequestOption {
	return func(r *Request) error {
		r.vecTable = n
		return r.mark(keyVecTable)
	}
}

// WithVectorCorrection selects aberration corrections for VECTORS tables.
func WithVectorCorrection(c VecCorrection) RequestOption {
	return func(r *Request) error {
		r.vecCorr = c
		return r.mark(keyVecCorr)
	}
}

// WithVectorLabels toggles the X =/Y =/Z = labels in VECTORS rows. The
// decoder expects labels on fixed-width output.
func WithVectorLabels(on bool) RequestOption {
	return func(r *Request) error {
		r.vecLabels = on
		return r.mark(keyVecLabels)
	}
}

// WithVectorDeltaT appends the TDB-UT offset column to VECTORS rows.
func WithVectorDeltaT() RequestOption {
	return func(r *Request) error {
		r.vecDeltaT = true
		return r.mark(keyVecDeltaT)
	}
}

// WithElementLabels toggles the EC=/QR=/... labels in ELEMENTS rows.
func WithElementLabels(on bool) RequestOption {
	return func(r *Request) error {
		r.elmLabels = on
		return r.mark(keyElmLabels)
	}
}

// WithRelativePeriapsisTime reports periapsis time relative to the epoch
// instead of as an absolute Julian day.
func WithRelativePeriapsisTime() RequestOption {
	return func(r *Request) error {
		r.tpRelative = true
		return r.mark(keyTPType)
	}
}

// WithEmail attaches a contact address to the query.
func WithEmail(addr string) RequestOption {
	return func(r *Request) error {
		r.email = addr
		return r.mark(keyEmail)
	}
}

// NewRequest builds a validated ephemeris request for the given object
// identifier (a numeric id like "499", a designation, or a quoted name
// lookup). All parameter combinations are checked here, before any network
// call: an option that does not apply to typ fails construction.
func NewRequest(command string, typ EphemerisType, opts ...RequestOption) (Request, error) {
	r := Request{
		command:  command,
		typ:      typ,
		objData:  true,
		center:   Geocenter,
		vecTable: 3,
		assigned: make(map[string]bool),
	}

	if typ.mask() == 0 {
		return Request{}, configErr(keyEphemType, fmt.Errorf("unknown ephemeris type %d", typ))
	}

	for _, opt := range opts {
		if err := opt(&r); err != nil {
			return Request{}, err
		}
	}

	if err := r.validate(); err != nil {
		return Request{}, err
	}
	return r, nil
}

// validate checks scalar constraints. Applicability has already been
// enforced per-option by mark.
func (r *Request) validate() error {
	if err := validation.Validate(r.command, validation.Required); err != nil {
		return configErr(keyCommand, ErrEmptyCommand)
	}
	if r.has(keyStartTime) {
		if !r.stop.After(r.start) {
			return configErr(keyStopTime, fmt.Errorf("stop time %s is not after start time %s",
				r.stop.Format(timeLayout), r.start.Format(timeLayout)))
		}
		if err := validation.Validate(r.step.Value, validation.Required, validation.Min(1)); err != nil {
			return configErr(keyStepSize, fmt.Errorf("step size: %w", err))
		}
	}
	for _, q := range r.quantities {
		if err := validation.Validate(int(q), validation.Min(1), validation.Max(48)); err != nil {
			return configErr(keyQuantities, fmt.Errorf("quantity %d: %w", q, err))
		}
	}
	if r.has(keyVecTable) {
		if err := validation.Validate(r.vecTable, validation.Min(1), validation.Max(6)); err != nil {
			return configErr(keyVecTable, fmt.Errorf("vector table %d: %w", r.vecTable, err))
		}
	}
	if r.has(keyElevCut) {
		if err := validation.Validate(r.elevCut, validation.Min(-90.0), validation.Max(90.0)); err != nil {
			return configErr(keyElevCut, fmt.Errorf("elevation cutoff %g: %w", r.elevCut, err))
		}
	}
	if r.email != "" {
		if err := validation.Validate(r.email, is.Email); err != nil {
			return configErr(keyEmail, fmt.Errorf("email address %q: %w", r.email, err))
		}
	}
	return nil
}

// Type returns the request's ephemeris type.
func (r Request) Type() EphemerisType {
	return r.typ
}

// Command returns the request's object identifier.
func (r Request) Command() string {
	return r.command
}

// CSV reports whether the request asked for comma-delimited rows.
func (r Request) CSV() bool {
	return r.csv
}

// Quantities returns the requested observer quantity codes.
func (r Request) Quantities() []Quantity {
	return append([]Quantity(nil), r.quantities...)
}

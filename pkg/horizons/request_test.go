package horizons

import (
	"errors"
	"testing"
	"time"
)

func TestNewRequest_Defaults(t *testing.T) {
	r, err := NewRequest("499", TypeVectors)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	if r.Command() != "499" {
		t.Errorf("Command = %q, want 499", r.Command())
	}
	if r.Type() != TypeVectors {
		t.Errorf("Type = %v, want TypeVectors", r.Type())
	}
	if !r.objData {
		t.Error("OBJ_DATA should default on")
	}
	if r.center != Geocenter {
		t.Errorf("center = %q, want %q", r.center, Geocenter)
	}
	if r.vecTable != 3 {
		t.Errorf("vecTable = %d, want 3", r.vecTable)
	}
}

func TestNewRequest_EmptyCommand(t *testing.T) {
	_, err := NewRequest("", TypeObserver)
	if !errors.Is(err, ErrEmptyCommand) {
		t.Fatalf("err = %v, want ErrEmptyCommand", err)
	}
	if !IsStage(err, StageConfig) {
		t.Errorf("err not tagged as config stage: %v", err)
	}
}

func TestNewRequest_UnknownType(t *testing.T) {
	_, err := NewRequest("499", EphemerisType(0))
	if err == nil {
		t.Fatal("expected error for zero ephemeris type")
	}
	if !IsStage(err, StageConfig) {
		t.Errorf("err not tagged as config stage: %v", err)
	}
}

func TestNewRequest_Applicability(t *testing.T) {
	tests := []struct {
		name    string
		typ     EphemerisType
		opt     RequestOption
		wantErr bool
	}{
		{"quantities on observer", TypeObserver, WithQuantities(QuantityApparentAzEl), false},
		{"quantities on vectors", TypeVectors, WithQuantities(QuantityApparentAzEl), true},
		{"quantities on elements", TypeElements, WithQuantities(QuantityApparentAzEl), true},
		{"vec table on vectors", TypeVectors, WithVectorTable(2), false},
		{"vec table on observer", TypeObserver, WithVectorTable(2), true},
		{"vec correction on elements", TypeElements, WithVectorCorrection(VecCorrLightTime), true},
		{"element labels on elements", TypeElements, WithElementLabels(false), false},
		{"element labels on vectors", TypeVectors, WithElementLabels(false), true},
		{"tp type on observer", TypeObserver, WithRelativePeriapsisTime(), true},
		{"ref plane on vectors", TypeVectors, WithRefPlane(RefPlaneFrame), false},
		{"ref plane on elements", TypeElements, WithRefPlane(RefPlaneFrame), false},
		{"ref plane on observer", TypeObserver, WithRefPlane(RefPlaneFrame), true},
		{"out units on observer", TypeObserver, WithOutUnits(UnitsAuDay), true},
		{"angle format on vectors", TypeVectors, WithAngleFormat(AngleDegrees), true},
		{"range km on elements", TypeElements, WithRangeKm(), true},
		{"extra precision on vectors", TypeVectors, WithExtraPrecision(), true},
		{"refraction on observer", TypeObserver, WithRefraction(), false},
		{"refraction on vectors", TypeVectors, WithRefraction(), true},
		{"cal format on observer", TypeObserver, WithCalFormat(CalFormatJulianDay), false},
		{"cal format on elements", TypeElements, WithCalFormat(CalFormatJulianDay), true},
		{"skip daylight on observer", TypeObserver, WithSkipDaylight(), false},
		{"skip daylight on elements", TypeElements, WithSkipDaylight(), true},
		{"elevation cutoff on observer", TypeObserver, WithElevationCutoff(10), false},
		{"elevation cutoff on vectors", TypeVectors, WithElevationCutoff(10), true},
		{"vec delta-t on vectors", TypeVectors, WithVectorDeltaT(), false},
		{"vec delta-t on observer", TypeObserver, WithVectorDeltaT(), true},
		{"cal type anywhere", TypeElements, WithCalType(CalTypeGregorian), false},
		{"csv anywhere", TypeElements, WithCSV(), false},
		{"center anywhere", TypeVectors, WithCenter(BodyCenter(10)), false},
		{"email anywhere", TypeElements, WithEmail("ops@example.org"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRequest("499", tt.typ, tt.opt)
			if tt.wantErr {
				if !errors.Is(err, ErrNotApplicable) {
					t.Fatalf("err = %v, want ErrNotApplicable", err)
				}
				if !IsStage(err, StageConfig) {
					t.Errorf("err not tagged as config stage: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewRequest_Validation(t *testing.T) {
	start := time.Date(2006, 1, 1, 0, 0, 0, 0, time.UTC)
	stop := time.Date(2006, 1, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		typ     EphemerisType
		opts    []RequestOption
		wantErr bool
	}{
		{
			name: "valid span",
			typ:  TypeObserver,
			opts: []RequestOption{WithTimeSpan(start, stop, StepSize{1, StepDays})},
		},
		{
			name:    "stop before start",
			typ:     TypeObserver,
			opts:    []RequestOption{WithTimeSpan(stop, start, StepSize{1, StepDays})},
			wantErr: true,
		},
		{
			name:    "stop equals start",
			typ:     TypeObserver,
			opts:    []RequestOption{WithTimeSpan(start, start, StepSize{1, StepDays})},
			wantErr: true,
		},
		{
			name:    "zero step",
			typ:     TypeObserver,
			opts:    []RequestOption{WithTimeSpan(start, stop, StepSize{0, StepDays})},
			wantErr: true,
		},
		{
			name:    "quantity out of range",
			typ:     TypeObserver,
			opts:    []RequestOption{WithQuantities(Quantity(49))},
			wantErr: true,
		},
		{
			name:    "vector table out of range",
			typ:     TypeVectors,
			opts:    []RequestOption{WithVectorTable(7)},
			wantErr: true,
		},
		{
			name:    "bad email",
			typ:     TypeVectors,
			opts:    []RequestOption{WithEmail("not-an-address")},
			wantErr: true,
		},
		{
			name:    "elevation cutoff out of range",
			typ:     TypeObserver,
			opts:    []RequestOption{WithElevationCutoff(91)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRequest("499", tt.typ, tt.opts...)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !IsStage(err, StageConfig) {
					t.Errorf("err not tagged as config stage: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCenterConstructors(t *testing.T) {
	if got := GeocentricOf(399); got != "500@399" {
		t.Errorf("GeocentricOf(399) = %q", got)
	}
	if got := BodyCenter(10); got != "@10" {
		t.Errorf("BodyCenter(10) = %q", got)
	}
	if got := SiteOn(301); got != "coord@301" {
		t.Errorf("SiteOn(301) = %q", got)
	}
}

func TestStepSizeString(t *testing.T) {
	tests := []struct {
		step StepSize
		want string
	}{
		{StepSize{10, StepMinutes}, "10 m"},
		{StepSize{6, StepHours}, "6 h"},
		{StepSize{1, StepDays}, "1 d"},
		{StepSize{2, StepMonths}, "2 mo"},
		{StepSize{1, StepYears}, "1 y"},
		{StepSize{60, StepUnitless}, "60"},
	}
	for _, tt := range tests {
		if got := tt.step.String(); got != tt.want {
			t.Errorf("StepSize%v = %q, want %q", tt.step, got, tt.want)
		}
	}
}

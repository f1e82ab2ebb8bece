package horizons

import (
	"errors"
	"strings"
	"testing"
)

func TestFramePayload(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantLines []string
		wantErr   error
	}{
		{
			name:      "simple payload",
			text:      "header\n$$SOE\nrow one\nrow two\n$$EOE\nfooter\n",
			wantLines: []string{"row one", "row two"},
		},
		{
			name:      "empty payload is valid",
			text:      "header\n$$SOE\n$$EOE\n",
			wantLines: nil,
		},
		{
			name:      "markers with surrounding whitespace",
			text:      "  $$SOE  \nrow\n  $$EOE\n",
			wantLines: []string{"row"},
		},
		{
			name:    "no start marker",
			text:    "No ephemeris for target \"Foo\"\n",
			wantErr: ErrNoStartMarker,
		},
		{
			name:    "start without end",
			text:    "header\n$$SOE\nrow one\n",
			wantErr: ErrNoEndMarker,
		},
		{
			name:    "empty input",
			text:    "",
			wantErr: ErrNoStartMarker,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := framePayload(tt.text)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				if !IsStage(err, StageFrame) {
					t.Errorf("err not tagged as frame stage: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("framePayload failed: %v", err)
			}
			if len(p.lines) != len(tt.wantLines) {
				t.Fatalf("got %d lines, want %d", len(p.lines), len(tt.wantLines))
			}
			for i, want := range tt.wantLines {
				if p.lines[i] != want {
					t.Errorf("line %d = %q, want %q", i, p.lines[i], want)
				}
			}
		})
	}
}

func TestFramePayload_ErrorCarriesHeader(t *testing.T) {
	_, err := framePayload("Horizons output\n\nCannot interpret request\n")
	var he *Error
	if !errors.As(err, &he) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if !strings.Contains(he.Context, "Cannot interpret request") {
		t.Errorf("context %q missing service explanation", he.Context)
	}
}

func TestFramePayload_IgnoresFooter(t *testing.T) {
	text := "$$SOE\nrow\n$$EOE\nCoordinate system description:\n$$SOE stray\n"
	p, err := framePayload(text)
	if err != nil {
		t.Fatalf("framePayload failed: %v", err)
	}
	if len(p.lines) != 1 || p.lines[0] != "row" {
		t.Errorf("lines = %v, want [row]", p.lines)
	}
}

package horizons

import "testing"

func TestLookupTarget(t *testing.T) {
	tests := []struct {
		in     string
		wantID int
		found  bool
	}{
		{"mars", 499, true},
		{"MARS", 499, true},
		{"VGR1", -31, true},
		{"voyager 1", -31, true},
		{"webb", -170, true},
		{"James Webb", -170, true},
		{"moon", 301, true},
		{"luna", 301, true},
		{"unknown body", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			target, ok := LookupTarget(tt.in)
			if ok != tt.found {
				t.Fatalf("found = %v, want %v", ok, tt.found)
			}
			if ok && target.ID != tt.wantID {
				t.Errorf("ID = %d, want %d", target.ID, tt.wantID)
			}
		})
	}
}

func TestResolveCommand(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"499", "499"},           // numeric passthrough
		{"-170", "-170"},         // negative id passthrough
		{"mars", "499"},          // catalog name
		{"PSP", "-96"},           // catalog code
		{"Apophis", "Apophis"},   // unknown, forwarded for service lookup
		{"DES=2021PDC;", "DES=2021PDC;"}, // designation query passthrough
	}

	for _, tt := range tests {
		if got := ResolveCommand(tt.in); got != tt.want {
			t.Errorf("ResolveCommand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

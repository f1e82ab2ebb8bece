package horizons

import "testing"

func TestDecodeMajorBodies(t *testing.T) {
	text := `
  ID#      Name                               Designation  IAU/aliases/other
  -------  ---------------------------------- -----------  -------------------
        0  Solar System Barycenter                         SSB
       10  Sun                                             Sol
      301  Moon                                            Luna
      399  Earth                                           Geocenter
      499  Mars
      -31  Voyager 1 (spacecraft)                          VG1 Voyager-1

   Number of matches =  6. Use ID# to make unique selection.
`

	records := decodeMajorBodies(text)
	want := []BodyRecord{
		{ID: 0, Name: "Solar System Barycenter"},
		{ID: 10, Name: "Sun"},
		{ID: 301, Name: "Moon"},
		{ID: 399, Name: "Earth"},
		{ID: 499, Name: "Mars"},
		{ID: -31, Name: "Voyager 1 (spacecraft)"},
	}

	if len(records) != len(want) {
		t.Fatalf("got %d records, want %d: %v", len(records), len(want), records)
	}
	for i, w := range want {
		if records[i] != w {
			t.Errorf("record %d = %+v, want %+v", i, records[i], w)
		}
	}
}

func TestDecodeMajorBodies_SkipsNonMatching(t *testing.T) {
	text := "  399  Earth\n-------  ------\n  499  Mars\nnot a record\n"
	records := decodeMajorBodies(text)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2: %v", len(records), records)
	}
	if records[0] != (BodyRecord{ID: 399, Name: "Earth"}) {
		t.Errorf("record 0 = %+v", records[0])
	}
	if records[1] != (BodyRecord{ID: 499, Name: "Mars"}) {
		t.Errorf("record 1 = %+v", records[1])
	}
}

func TestDecodeMajorBodies_Empty(t *testing.T) {
	if records := decodeMajorBodies("no data here\n"); records != nil {
		t.Errorf("expected nil, got %v", records)
	}
}

package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-ephem/pkg/horizons"
)

func sampleTime() time.Time {
	return time.Date(2022, time.August, 13, 19, 55, 56, 0, time.UTC)
}

func TestBodiesTable(t *testing.T) {
	tbl := BodiesTable([]horizons.BodyRecord{
		{ID: 399, Name: "Earth"},
		{ID: -31, Name: "Voyager 1"},
	})

	if len(tbl.Rows) != 2 {
		t.Fatalf("got %d rows", len(tbl.Rows))
	}
	if tbl.Rows[1][0] != "-31" || tbl.Rows[1][1] != "Voyager 1" {
		t.Errorf("row = %v", tbl.Rows[1])
	}
}

func TestObserverTable_ColumnsFollowRecords(t *testing.T) {
	records := []horizons.ObserverRecord{
		{Time: sampleTime(), AzDeg: 261.032124, ElDeg: 32.878027, HasAzEl: true},
	}
	tbl := ObserverTable("499", records)

	wantCols := []string{"Time (UTC)", "Az (deg)", "El (deg)"}
	if len(tbl.Columns) != len(wantCols) {
		t.Fatalf("columns = %v", tbl.Columns)
	}
	for i, c := range wantCols {
		if tbl.Columns[i] != c {
			t.Errorf("column %d = %q, want %q", i, tbl.Columns[i], c)
		}
	}
	if tbl.Rows[0][1] != "261.032124" {
		t.Errorf("az cell = %q", tbl.Rows[0][1])
	}
}

func TestVectorsTable(t *testing.T) {
	records := []horizons.VectorRecord{
		{
			Time:     sampleTime(),
			Position: [3]float64{1.870010427985840e+02, 2.484687803242536e+03, -5.861602653492581e+03},
			Velocity: [3]float64{-3.362664133558439e-01, 1.344100266143978e-02, -5.030275220358716e-03},
		},
	}
	tbl := VectorsTable("-170", records)

	if len(tbl.Columns) != 7 {
		t.Fatalf("columns = %v", tbl.Columns)
	}
	if tbl.Rows[0][0] != "2022-08-13 19:55:56" {
		t.Errorf("time cell = %q", tbl.Rows[0][0])
	}
	if !strings.HasPrefix(tbl.Rows[0][1], "1.870010428E+02") {
		t.Errorf("x cell = %q", tbl.Rows[0][1])
	}
}

func TestElementsTable(t *testing.T) {
	records := []horizons.ElementRecord{
		{Time: sampleTime(), Eccentricity: 1.711794334680415e-02},
	}
	tbl := ElementsTable("399", records)
	if len(tbl.Columns) != 13 {
		t.Fatalf("columns = %v", tbl.Columns)
	}
	if !strings.HasPrefix(tbl.Rows[0][1], "1.711794335E-02") {
		t.Errorf("EC cell = %q", tbl.Rows[0][1])
	}
}

func TestWritePlain(t *testing.T) {
	tbl := Table{
		Title:   "Test",
		Columns: []string{"A", "B"},
		Rows:    [][]string{{"one", "two"}, {"three", "four"}},
	}

	var buf bytes.Buffer
	tbl.WritePlain(&buf)
	out := buf.String()

	if !strings.Contains(out, "Test") {
		t.Error("missing title")
	}
	if !strings.Contains(out, "three  four") {
		t.Errorf("rows not aligned:\n%s", out)
	}
	if !strings.Contains(out, "Total: 2 records") {
		t.Error("missing total line")
	}
}

func TestWritePlain_Empty(t *testing.T) {
	tbl := Table{Columns: []string{"A"}}
	var buf bytes.Buffer
	tbl.WritePlain(&buf)
	if !strings.Contains(buf.String(), "No records") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	tbl := Table{
		Columns: []string{"ID", "Name"},
		Rows:    [][]string{{"399", "Earth"}},
	}

	var buf bytes.Buffer
	if err := tbl.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var out []map[string]string
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(out) != 1 || out[0]["Name"] != "Earth" {
		t.Errorf("out = %v", out)
	}
}

// Package render formats ephemeris records as text and JSON tables for the
// CLI and the TUI viewer.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-ephem/pkg/horizons"
)

// Table is a generic column/row table ready for rendering.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

const timeColumnLayout = "2006-01-02 15:04:05"

// BodiesTable converts the major-bodies catalog.
func BodiesTable(records []horizons.BodyRecord) Table {
	t := Table{
		Title:   "Major Bodies",
		Columns: []string{"ID", "Name"},
	}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{strconv.Itoa(r.ID), r.Name})
	}
	return t
}

// ObserverTable converts observer rows, emitting only the columns the
// records actually carry.
func ObserverTable(target string, records []horizons.ObserverRecord) Table {
	t := Table{
		Title:   fmt.Sprintf("Observer Ephemeris: %s", target),
		Columns: []string{"Time (UTC)"},
	}

	var hasRADec, hasAzEl, hasRange bool
	for _, r := range records {
		hasRADec = hasRADec || r.HasRADec
		hasAzEl = hasAzEl || r.HasAzEl
		hasRange = hasRange || r.HasRange
	}
	if hasRADec {
		t.Columns = append(t.Columns, "RA (deg)", "Dec (deg)")
	}
	if hasAzEl {
		t.Columns = append(t.Columns, "Az (deg)", "El (deg)")
	}
	if hasRange {
		t.Columns = append(t.Columns, "Range", "Rate (km/s)")
	}

	for _, r := range records {
		row := []string{r.Time.Format(timeColumnLayout)}
		if hasRADec {
			row = append(row, angle(r.RADeg), angle(r.DecDeg))
		}
		if hasAzEl {
			row = append(row, angle(r.AzDeg), angle(r.ElDeg))
		}
		if hasRange {
			row = append(row, sci(r.Range), sci(r.RangeRateKmS))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// VectorsTable converts Cartesian state records.
func VectorsTable(target string, records []horizons.VectorRecord) Table {
	t := Table{
		Title:   fmt.Sprintf("State Vectors: %s", target),
		Columns: []string{"Time (UTC)", "X", "Y", "Z", "VX", "VY", "VZ"},
	}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{
			r.Time.Format(timeColumnLayout),
			sci(r.Position[0]), sci(r.Position[1]), sci(r.Position[2]),
			sci(r.Velocity[0]), sci(r.Velocity[1]), sci(r.Velocity[2]),
		})
	}
	return t
}

// ElementsTable converts osculating-element records.
func ElementsTable(target string, records []horizons.ElementRecord) Table {
	t := Table{
		Title:   fmt.Sprintf("Osculating Elements: %s", target),
		Columns: []string{"Time (UTC)", "EC", "QR", "IN", "OM", "W", "Tp", "N", "MA", "TA", "A", "AD", "PR"},
	}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{
			r.Time.Format(timeColumnLayout),
			sci(r.Eccentricity), sci(r.PeriapsisDistance), sci(r.InclinationDeg),
			sci(r.AscendingNodeDeg), sci(r.PeriapsisArgumentDeg), sci(r.PeriapsisTimeJD),
			sci(r.MeanMotionDegSec), sci(r.MeanAnomalyDeg), sci(r.TrueAnomalyDeg),
			sci(r.SemiMajorAxis), sci(r.ApoapsisDistance), sci(r.OrbitPeriodSec),
		})
	}
	return t
}

func sci(v float64) string {
	return strconv.FormatFloat(v, 'E', 9, 64)
}

func angle(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// WritePlain writes the table as aligned monospace text, suitable for
// non-TTY output and piping.
func (t Table) WritePlain(w io.Writer) {
	widths := t.columnWidths()

	if t.Title != "" {
		fmt.Fprintln(w, t.Title)
	}
	fmt.Fprintln(w, strings.Repeat("─", totalWidth(widths)))

	var header []string
	for i, col := range t.Columns {
		header = append(header, pad(col, widths[i]))
	}
	fmt.Fprintln(w, strings.Join(header, "  "))
	fmt.Fprintln(w, strings.Repeat("─", totalWidth(widths)))

	if len(t.Rows) == 0 {
		fmt.Fprintln(w, "No records")
		return
	}
	for _, row := range t.Rows {
		var cells []string
		for i, cell := range row {
			cells = append(cells, pad(cell, widths[i]))
		}
		fmt.Fprintln(w, strings.Join(cells, "  "))
	}
	fmt.Fprintf(w, "\nTotal: %d records\n", len(t.Rows))
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	zebraStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// WriteStyled writes the table with lipgloss styling for TTY output.
func (t Table) WriteStyled(w io.Writer) {
	widths := t.columnWidths()

	if t.Title != "" {
		fmt.Fprintln(w, titleStyle.Render(t.Title))
	}

	var header []string
	for i, col := range t.Columns {
		header = append(header, pad(col, widths[i]))
	}
	fmt.Fprintln(w, headerStyle.Render(strings.Join(header, "  ")))

	if len(t.Rows) == 0 {
		fmt.Fprintln(w, zebraStyle.Render("No records"))
		return
	}
	for n, row := range t.Rows {
		var cells []string
		for i, cell := range row {
			cells = append(cells, pad(cell, widths[i]))
		}
		line := strings.Join(cells, "  ")
		if n%2 == 1 {
			line = zebraStyle.Render(line)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "\nTotal: %d records\n", len(t.Rows))
}

// WriteJSON writes the rows as an array of column-keyed objects.
func (t Table) WriteJSON(w io.Writer) error {
	out := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		obj := make(map[string]string, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				obj[col] = row[i]
			}
		}
		out = append(out, obj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (t Table) columnWidths() []int {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = len(col)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

func totalWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	if len(widths) > 1 {
		total += 2 * (len(widths) - 1)
	}
	return total
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

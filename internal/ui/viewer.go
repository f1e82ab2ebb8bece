// Package ui provides the terminal table viewer using Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-ephem/internal/render"
	"github.com/litescript/ls-ephem/internal/version"
)

// Styles for the viewer
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	altRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// Loader fetches a fresh table; the viewer calls it on startup and on
// manual refresh.
type Loader func(ctx context.Context) (render.Table, error)

// Msg types for Bubble Tea
type (
	// tableLoadedMsg carries a freshly loaded table.
	tableLoadedMsg struct {
		table render.Table
		took  time.Duration
	}

	// loadErrorMsg signals a fetch failure.
	loadErrorMsg struct {
		err error
	}
)

// Model is the table viewer Bubble Tea model.
type Model struct {
	ctx    context.Context
	loader Loader

	table   render.Table
	loaded  bool
	loading bool
	lastErr error
	took    time.Duration

	width  int
	height int
	offset int
}

// NewModel creates a viewer that displays the loader's table. Loads are
// cancelled when ctx is, so signal-driven shutdown reaches in-flight
// fetches.
func NewModel(ctx context.Context, loader Loader) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	return Model{ctx: ctx, loader: loader, loading: true}
}

// Init implements the Bubble Tea model interface.
func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	base, loader := m.ctx, m.loader
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(base, 60*time.Second)
		defer cancel()

		start := time.Now()
		table, err := loader(ctx)
		if err != nil {
			return loadErrorMsg{err: err}
		}
		return tableLoadedMsg{table: table, took: time.Since(start)}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampOffset()

	case tableLoadedMsg:
		m.table = msg.table
		m.took = msg.took
		m.loaded = true
		m.loading = false
		m.lastErr = nil
		m.clampOffset()

	case loadErrorMsg:
		m.loading = false
		m.lastErr = msg.err

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if !m.loading {
				m.loading = true
				return m, m.load()
			}
		case "up", "k":
			m.offset--
		case "down", "j":
			m.offset++
		case "pgup":
			m.offset -= m.pageSize()
		case "pgdown", " ":
			m.offset += m.pageSize()
		case "home", "g":
			m.offset = 0
		case "end", "G":
			m.offset = len(m.table.Rows)
		}
		m.clampOffset()
	}

	return m, nil
}

// pageSize is the number of data rows visible at the current height.
func (m Model) pageSize() int {
	// Title, header, status bar and padding take five lines.
	n := m.height - 5
	if n < 1 {
		return 1
	}
	return n
}

func (m *Model) clampOffset() {
	max := len(m.table.Rows) - m.pageSize()
	if max < 0 {
		max = 0
	}
	if m.offset > max {
		m.offset = max
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View renders the table viewport.
func (m Model) View() string {
	var b strings.Builder

	title := m.table.Title
	if title == "" {
		title = "Ephemeris"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	switch {
	case m.lastErr != nil:
		b.WriteString(errorStyle.Render("Error: " + m.lastErr.Error()))
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("r: retry  q: quit"))
		return b.String()
	case m.loading && !m.loaded:
		b.WriteString("Fetching ephemeris...\n")
		return b.String()
	}

	widths := m.columnWidths()
	b.WriteString(headerStyle.Render(m.formatRow(m.table.Columns, widths)))
	b.WriteString("\n")

	page := m.pageSize()
	end := m.offset + page
	if end > len(m.table.Rows) {
		end = len(m.table.Rows)
	}
	for i := m.offset; i < end; i++ {
		style := rowStyle
		if i%2 == 1 {
			style = altRowStyle
		}
		b.WriteString(style.Render(m.formatRow(m.table.Rows[i], widths)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.statusLine(end)))
	return b.String()
}

func (m Model) statusLine(end int) string {
	status := fmt.Sprintf("rows %d-%d of %d", m.offset+1, end, len(m.table.Rows))
	if len(m.table.Rows) == 0 {
		status = "no records"
	}
	if m.loading {
		status += "  refreshing..."
	} else if m.took > 0 {
		status += fmt.Sprintf("  fetched in %s", m.took.Round(time.Millisecond))
	}
	return fmt.Sprintf("%s  |  j/k: scroll  r: refresh  q: quit  |  ls-ephem %s",
		status, version.Version)
}

func (m Model) formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = pad(cell, widths[i])
	}
	return strings.Join(parts, "  ")
}

func (m Model) columnWidths() []int {
	widths := make([]int, len(m.table.Columns))
	for i, col := range m.table.Columns {
		widths[i] = len(col)
	}
	for _, row := range m.table.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Run starts the viewer in the alternate screen. ctx cancellation shuts
// the program down and aborts any in-flight load.
func Run(ctx context.Context, loader Loader) error {
	p := tea.NewProgram(NewModel(ctx, loader), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

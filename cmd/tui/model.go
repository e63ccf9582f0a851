package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eivissacopter/battdash/app"
	"github.com/eivissacopter/battdash/models"
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	inputStyle = lipgloss.NewStyle().
			Margin(1, 0, 1, 0)
	tableStyle = lipgloss.NewStyle().
			Margin(0, 0, 1, 0)
)

type model struct {
	textInput textinput.Model
	table     table.Model
	entries   []app.FolderEntry
	filtered  []app.FolderEntry
	stats     models.CrawlStats
	err       error
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	var enter = key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("⏎", "filter/open"),
	)
	var toggleFocus = key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "toggle focus"),
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, enter):
			if m.textInput.Focused() {
				m.applyFilter(m.textInput.Value())
				// Switch focus to table after filtering
				m.textInput.Blur()
				m.table.Focus()
				return m, nil
			} else if m.table.Focused() && len(m.filtered) > 0 {
				// Open the selected folder listing in the browser
				selectedIndex := m.table.Cursor()
				if selectedIndex < len(m.filtered) {
					if err := openURL(m.filtered[selectedIndex].Folder.URL); err != nil {
						m.err = err
					}
				} else {
					m.err = fmt.Errorf("no folder available for selected row")
				}
				return m, nil
			}
		case key.Matches(msg, toggleFocus):
			if m.textInput.Focused() {
				m.textInput.Blur()
				m.table.Focus()
			} else {
				m.table.Blur()
				m.textInput.Focus()
			}
			return m, nil
		case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
			return m, tea.Quit
		}

		if m.textInput.Focused() {
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		}
		if m.table.Focused() {
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		// If neither is focused, pass to both to catch navigation or typing
		var tiCmd, tCmd tea.Cmd
		m.textInput, tiCmd = m.textInput.Update(msg)
		m.table, tCmd = m.table.Update(msg)
		return m, tea.Batch(tiCmd, tCmd)

	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width) // Use full terminal width
		m.table.SetHeight(msg.Height - 8)
		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(inputStyle.Render(m.textInput.View()))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(fmt.Sprintf("Error: %v\n", m.err))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString(fmt.Sprintf("\n%d of %d folders · %d files · %d unrecognized\n",
		len(m.filtered), m.stats.Classified, m.stats.Files, m.stats.Excluded))
	b.WriteString("Press Enter to filter (in input) or open folder (in table), Tab to toggle focus, Esc to quit.\n")

	return baseStyle.Render(b.String())
}

// applyFilter keeps folders whose attributes contain the query,
// case-insensitively. An empty query keeps everything.
func (m *model) applyFilter(query string) {
	query = strings.ToLower(strings.TrimSpace(query))

	m.filtered = m.filtered[:0]
	for _, e := range m.entries {
		if query == "" || folderMatches(e.Folder, query) {
			m.filtered = append(m.filtered, e)
		}
	}

	rows := []table.Row{}
	for _, e := range m.filtered {
		f := e.Folder
		rows = append(rows, table.Row{
			f.Manufacturer + " " + f.Model + " " + f.Variant,
			strconv.Itoa(f.ModelYear),
			f.Battery,
			formatDrivetrain(f),
			strconv.Itoa(len(e.Node.Leaves())),
		})
	}
	m.table.SetRows(rows)
}

func folderMatches(f models.ClassifiedFolder, query string) bool {
	for _, key := range models.FolderAttributeKeys() {
		v, _ := f.Attribute(key)
		if strings.Contains(strings.ToLower(v), query) {
			return true
		}
	}
	return false
}

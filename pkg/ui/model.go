package ui

import (
	"fmt"
	"strings"
	"time"

	"chunkdb/pkg/database"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model represents the application state
type Model struct {
	database     *database.Database
	commandInput textinput.Model
	resultTable  table.Model
	spinner      spinner.Model
	help         help.Model
	highlighter  *CommandHighlighter

	width       int
	height      int
	executing   bool
	showHelp    bool
	lastCommand string
	lastResult  database.QueryResult
	lastError   error

	history    []string
	historyPos int

	lastCommandTime time.Duration
	keys            keyMap
}

func NewModel(db *database.Database) Model {
	ti := textinput.New()
	ti.Placeholder = "filter|users|age|30|biggerThan"
	ti.CharLimit = 512
	ti.Prompt = "❯ "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(primaryColor)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(textMuted)
	ti.TextStyle = lipgloss.NewStyle().Foreground(textPrimary)
	ti.Focus()

	t := table.New(
		table.WithColumns([]table.Column{{Title: "Results", Width: 80}}),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(primaryColor).
		BorderBottom(true).
		Bold(true).
		Foreground(primaryColor)
	s.Selected = s.Selected.
		Foreground(bgDark).
		Background(secondaryColor).
		Bold(false)
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	return Model{
		database:     db,
		commandInput: ti,
		resultTable:  t,
		spinner:      sp,
		help:         help.New(),
		highlighter:  NewCommandHighlighter(),
		keys:         keys,
		history:      make([]string, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		textinput.Blink,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()

	case tea.KeyMsg:
		if m.executing {
			return m, nil // Ignore input while executing
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Execute):
			command := m.commandInput.Value()
			if strings.TrimSpace(command) != "" {
				m.executing = true
				return m, tea.Batch(m.runCommand(command), m.spinner.Tick)
			}
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			m.commandInput.SetValue("")
			m.lastResult = database.QueryResult{}
			m.lastError = nil
			m.lastCommand = ""
			return m, nil

		case key.Matches(msg, m.keys.ShowTables):
			return m, m.listTables()

		case key.Matches(msg, m.keys.ShowStats):
			return m, m.showStatistics()

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.HistoryPrev):
			if m.historyPos > 0 {
				m.historyPos--
				m.commandInput.SetValue(m.history[m.historyPos])
				m.commandInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, m.keys.HistoryNext):
			if m.historyPos < len(m.history) {
				m.historyPos++
				if m.historyPos == len(m.history) {
					m.commandInput.SetValue("")
				} else {
					m.commandInput.SetValue(m.history[m.historyPos])
					m.commandInput.CursorEnd()
				}
			}
			return m, nil

		case key.Matches(msg, m.keys.PageUp):
			m.resultTable.MoveUp(5)
			return m, nil

		case key.Matches(msg, m.keys.PageDown):
			m.resultTable.MoveDown(5)
			return m, nil
		}

	case commandResultMsg:
		m.executing = false
		m.lastCommand = msg.command
		m.lastResult = msg.result
		m.lastError = msg.err
		m.lastCommandTime = msg.duration

		if msg.record {
			m.history = append(m.history, msg.command)
			m.commandInput.SetValue("")
		}
		m.historyPos = len(m.history)

		if msg.err == nil && len(msg.result.Rows) > 0 {
			m.loadResultTable()
		}
		return m, nil

	case spinner.TickMsg:
		if m.executing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.executing {
		return m, nil
	}

	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderCommandEditor())

	switch {
	case m.executing:
		sections = append(sections, m.renderExecuting())
	case m.lastError != nil:
		sections = append(sections, m.renderError())
	case len(m.lastResult.Rows) > 0:
		sections = append(sections, m.renderResultTable())
	case m.lastResult.Message != "":
		sections = append(sections, m.renderMessage())
	}

	sections = append(sections, m.renderStatusBar())

	if m.showHelp {
		sections = append(sections, m.renderHelp())
	}

	return appStyle.Render(strings.Join(sections, "\n"))
}

func (m Model) renderHelp() string {
	helpText := m.help.FullHelpView([][]key.Binding{
		{
			m.keys.Execute,
			m.keys.Clear,
			m.keys.ShowTables,
			m.keys.ShowStats,
			m.keys.Help,
		},
		{
			m.keys.HistoryPrev,
			m.keys.HistoryNext,
			m.keys.PageUp,
			m.keys.PageDown,
			m.keys.Quit,
		},
	})

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(primaryColor).
		Padding(1, 2).
		Background(bgMedium).
		Render(helpText)
}

func (m Model) renderHeader() string {
	info := m.database.GetStatistics()

	title := titleStyle.Render("⛁ ChunkDB Terminal")
	badge := dbBadgeStyle.Render(info.Name)
	counters := lipgloss.NewStyle().
		Foreground(textSecondary).
		Render(fmt.Sprintf("Tables: %d | Commands: %d",
			info.TableCount, info.CommandsExecuted))

	header := lipgloss.JoinHorizontal(
		lipgloss.Left,
		title,
		"  ",
		badge,
		"  ",
		counters,
	)

	separatorWidth := m.width - 4
	if separatorWidth < 0 {
		separatorWidth = 0
	}
	separator := strings.Repeat("─", separatorWidth)
	sepStyle := lipgloss.NewStyle().
		Foreground(bgLight).
		Render(separator)

	return header + "\n" + sepStyle
}

func (m Model) renderCommandEditor() string {
	label := lipgloss.NewStyle().
		Foreground(primaryColor).
		Bold(true).
		Render("Command")

	editor := editorStyle.Render(m.commandInput.View())

	return fmt.Sprintf("%s\n%s", label, editor)
}

func (m Model) renderExecuting() string {
	content := lipgloss.JoinHorizontal(
		lipgloss.Left,
		m.spinner.View(),
		" Running command...",
	)

	return lipgloss.NewStyle().
		Foreground(primaryColor).
		Padding(1, 0).
		Render(content)
}

func (m Model) renderError() string {
	icon := errorStyle.Render(" ⚠ ERROR ")
	message := lipgloss.NewStyle().
		Foreground(errorColor).
		Render(m.lastError.Error())

	content := fmt.Sprintf("%s %s", icon, message)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(errorColor).
		Padding(0, 1).
		Render(content)
}

func (m Model) renderResultTable() string {
	label := m.lastResult.Message
	if m.lastCommandTime > 0 {
		label = fmt.Sprintf("%s in %v", label, m.lastCommandTime)
	}
	header := lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true).
		Render("✓ " + label)

	echo := m.highlighter.Highlight(m.lastCommand)

	return fmt.Sprintf("%s  %s\n%s", header, echo, m.resultTable.View())
}

func (m Model) renderMessage() string {
	icon := successStyle.Render(" ✓ ")
	echo := m.highlighter.Highlight(m.lastCommand)

	return lipgloss.NewStyle().
		Foreground(accentColor).
		Padding(1, 0).
		Render(fmt.Sprintf("%s %s  %s", icon, m.lastResult.Message, echo))
}

func (m Model) renderStatusBar() string {
	status := lipgloss.NewStyle().
		Foreground(accentColor).
		Render(fmt.Sprintf("● %s", m.database.Name()))

	details := fmt.Sprintf(" | chunk cap %d", m.database.ChunkCap())
	if m.lastCommandTime > 0 {
		details += fmt.Sprintf(" | last command: %v", m.lastCommandTime)
	}
	details += " | Ctrl+H for help"

	content := status + lipgloss.NewStyle().
		Foreground(textMuted).
		Render(details)

	return statusBarStyle.
		Width(m.width - 4).
		Render(content)
}

// loadResultTable rebuilds the table component from the last result, so
// page keys scroll real state rather than a per-frame copy.
func (m *Model) loadResultTable() {
	columns := make([]table.Column, len(m.lastResult.Columns))
	for i, col := range m.lastResult.Columns {
		columns[i] = table.Column{
			Title: col,
			Width: m.calculateColumnWidth(col, i),
		}
	}

	rows := make([]table.Row, len(m.lastResult.Rows))
	for i, row := range m.lastResult.Rows {
		rows[i] = table.Row(row)
	}

	m.resultTable.SetRows(nil)
	m.resultTable.SetColumns(columns)
	m.resultTable.SetRows(rows)
	m.resultTable.GotoTop()
}

func (m Model) calculateColumnWidth(columnName string, index int) int {
	maxWidth := 30
	minWidth := 10

	width := len(columnName) + 2

	for _, row := range m.lastResult.Rows {
		if index < len(row) {
			dataWidth := len(row[index]) + 2
			if dataWidth > width {
				width = dataWidth
			}
		}
	}

	if width < minWidth {
		width = minWidth
	} else if width > maxWidth {
		width = maxWidth
	}

	return width
}

// updateLayout adjusts component sizes based on window size
func (m *Model) updateLayout() {
	inputWidth := m.width - 12
	if inputWidth < 20 {
		inputWidth = 20
	}
	m.commandInput.Width = inputWidth

	tableHeight := m.height - 14
	if tableHeight < 3 {
		tableHeight = 3
	}
	m.resultTable.SetHeight(tableHeight)
}

type commandResultMsg struct {
	command  string
	result   database.QueryResult
	err      error
	duration time.Duration
	record   bool
}

func (m Model) runCommand(command string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		result, err := m.database.ExecuteCommand(command)
		duration := time.Since(start)

		return commandResultMsg{
			command:  command,
			result:   result,
			err:      err,
			duration: duration,
			record:   true,
		}
	}
}

// listTables builds a synthetic result from the catalog.
func (m Model) listTables() tea.Cmd {
	return func() tea.Msg {
		names := m.database.GetTables()

		rows := make([][]string, len(names))
		for i, name := range names {
			rows[i] = []string{name}
		}

		return commandResultMsg{
			command: "tables",
			result: database.QueryResult{
				Success: true,
				Columns: []string{"table"},
				Rows:    rows,
				Message: fmt.Sprintf("%d table(s)", len(names)),
			},
		}
	}
}

// showStatistics displays database statistics
func (m Model) showStatistics() tea.Cmd {
	return func() tea.Msg {
		info := m.database.GetStatistics()

		columns := []string{"Metric", "Value"}
		rows := [][]string{
			{"Database Name", info.Name},
			{"Data Directory", info.DataDir},
			{"Chunk Cap", fmt.Sprintf("%d", info.ChunkCap)},
			{"Total Tables", fmt.Sprintf("%d", info.TableCount)},
			{"Commands Executed", fmt.Sprintf("%d", info.CommandsExecuted)},
			{"Rows Returned", fmt.Sprintf("%d", info.RowsReturned)},
			{"Errors", fmt.Sprintf("%d", info.ErrorCount)},
		}

		if len(info.Tables) > 0 {
			rows = append(rows, []string{"Tables", strings.Join(info.Tables, ", ")})
		}

		return commandResultMsg{
			command: "stats",
			result: database.QueryResult{
				Success: true,
				Columns: columns,
				Rows:    rows,
				Message: "Database statistics",
			},
		}
	}
}

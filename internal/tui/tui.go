// Package tui provides a Bubble Tea terminal user interface for lyrics-editor.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/lyrics-editor/internal/editor"
	"github.com/handiism/lyrics-editor/internal/library"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6C757D")).
			Padding(0, 1)

	focusedPaneStyle = paneStyle.
				BorderForeground(lipgloss.Color("#4ECDC4"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateScanning
	StateEditing
)

// Focus is the pane receiving keys while editing.
type Focus int

const (
	FocusList Focus = iota
	FocusEditor
)

// LogEntry represents a scan log message in the UI.
type LogEntry struct {
	Message string
	Level   library.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
//
// The session is only touched from Update and View. Folder scans run as a
// command and their result is applied when FolderOpenedMsg arrives.
type Model struct {
	state     State
	focus     Focus
	textInput textinput.Model
	textarea  textarea.Model
	spinner   spinner.Model
	session   *editor.Session
	logs      []LogEntry
	notice    *editor.Notice
	verbose   bool

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// NewModel creates a new TUI model editing through session. startFolder
// pre-fills the folder prompt.
func NewModel(session *editor.Session, startFolder string) Model {
	ti := textinput.New()
	ti.Placeholder = "/path/to/album"
	ti.SetValue(startFolder)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = 60

	ta := textarea.New()
	ta.Placeholder = "No lyrics"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(60)
	ta.SetHeight(16)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		focus:     FocusList,
		textInput: ti,
		textarea:  ta,
		spinner:   sp,
		session:   session,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent for each scan progress event.
	ProgressMsg struct {
		Event library.ProgressEvent
	}

	// FolderOpenedMsg is sent when a folder scan completes.
	FolderOpenedMsg struct {
		Dir     string
		Entries []library.Entry
		Err     error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeEditor()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			return m, tea.Quit
		}

		switch m.state {
		case StateInput:
			return m.updateInput(msg)
		case StateScanning:
			if msg.String() == "esc" {
				m.cancel()
			}
			return m, nil
		case StateEditing:
			return m.updateEditing(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level == library.LevelVerbose && !m.verbose {
			return m, nil
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		// Keep only last 10 logs
		if len(m.logs) > 10 {
			m.logs = m.logs[len(m.logs)-10:]
		}

	case FolderOpenedMsg:
		err := msg.Err
		if err == nil {
			err = m.session.Load(msg.Dir, msg.Entries)
		}
		m.showError(err)
		if m.session.Len() == 0 {
			m.state = StateInput
			m.textInput.Focus()
			return m, textinput.Blink
		}
		m.state = StateEditing
		m.textInput.Blur()
		m.syncEditor()
		m.setFocus(FocusList)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.session.Len() > 0 {
			m.state = StateEditing
			m.textInput.Blur()
			return m, nil
		}
		return m, tea.Quit

	case "ctrl+v":
		m.verbose = !m.verbose
		return m, nil

	case "enter":
		dir := strings.TrimSpace(m.textInput.Value())
		if dir == "" {
			return m, nil
		}
		m.state = StateScanning
		m.notice = nil
		m.logs = m.logs[:0]
		m.ctx, m.cancel = context.WithCancel(context.Background())
		return m, tea.Batch(m.openFolder(dir), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = nil

	switch msg.String() {
	case "ctrl+o":
		m.state = StateInput
		m.textarea.Blur()
		if folder := m.session.Folder(); folder != "" {
			m.textInput.SetValue(folder)
		}
		m.textInput.Focus()
		return m, textinput.Blink

	case "ctrl+s":
		if err := m.session.Save(); err != nil {
			m.showError(err)
		} else if entry, ok := m.session.Current(); ok {
			n := editor.SavedNotice(entry.Track.Name())
			m.notice = &n
			m.syncEditor()
		}
		return m, nil

	case "ctrl+l":
		m.showError(m.session.Clear())
		m.textarea.SetValue(m.session.Pending())
		return m, nil

	case "ctrl+n":
		m.showError(m.session.Next())
		m.syncEditor()
		return m, nil

	case "ctrl+p":
		m.showError(m.session.Previous())
		m.syncEditor()
		return m, nil

	case "tab":
		if m.focus == FocusList {
			m.setFocus(FocusEditor)
			return m, textarea.Blink
		}
		m.setFocus(FocusList)
		return m, nil
	}

	if m.focus == FocusList {
		switch msg.String() {
		case "up", "k":
			if m.session.Index() > 0 {
				m.showError(m.session.Previous())
				m.syncEditor()
			}
		case "down", "j":
			if m.session.Index() < m.session.Len()-1 {
				m.showError(m.session.Next())
				m.syncEditor()
			}
		case "enter":
			m.setFocus(FocusEditor)
			return m, textarea.Blink
		case "esc", "q":
			return m, tea.Quit
		}
		return m, nil
	}

	if msg.String() == "esc" {
		m.setFocus(FocusList)
		return m, nil
	}

	before := m.textarea.Value()
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	if after := m.textarea.Value(); after != before {
		m.session.Edit(after)
	}
	return m, cmd
}

// openFolder scans dir in the background. The session is left unchanged
// until Update receives the result.
func (m Model) openFolder(dir string) tea.Cmd {
	session, ctx := m.session, m.ctx
	return func() tea.Msg {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		entries, err := session.Scan(ctx, dir)
		return FolderOpenedMsg{Dir: dir, Entries: entries, Err: err}
	}
}

// syncEditor loads the session's pending text into the textarea.
func (m *Model) syncEditor() {
	m.textarea.SetValue(m.session.Pending())
	m.textarea.CursorStart()
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	if f == FocusEditor {
		m.textarea.Focus()
	} else {
		m.textarea.Blur()
	}
}

func (m *Model) showError(err error) {
	if n, ok := editor.NoticeFor(err); ok {
		m.notice = &n
	}
}

func (m *Model) resizeEditor() {
	w := m.width/2 - 6
	if w < 30 {
		w = 30
	}
	h := m.height - 12
	if h < 5 {
		h = 5
	}
	m.textarea.SetWidth(w)
	m.textarea.SetHeight(h)
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("♪ Lyrics Editor"))
	b.WriteString("\n")
	if m.state == StateEditing {
		b.WriteString(dimStyle.Render(m.session.Folder()))
	} else {
		b.WriteString(dimStyle.Render("View and edit embedded lyrics"))
	}
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateScanning:
		b.WriteString(m.viewScanning())
	case StateEditing:
		b.WriteString(m.viewEditing())
	}

	if m.notice != nil {
		b.WriteString("\n")
		b.WriteString(renderNotice(*m.notice))
		b.WriteString("\n")
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Folder with audio files:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}
	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Verbose scan output (ctrl+v)\n", verboseCheck))

	if len(m.logs) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderLogs())
	}

	return b.String()
}

func (m Model) viewScanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Reading metadata..."))
	b.WriteString("\n\n")

	// Show logs
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewEditing() string {
	listStyle, editStyle := focusedPaneStyle, paneStyle
	if m.focus == FocusEditor {
		listStyle, editStyle = paneStyle, focusedPaneStyle
	}

	list := listStyle.Render(m.renderList())

	title := "Lyrics"
	if entry, ok := m.session.Current(); ok {
		title = entry.Track.Name()
	}
	if m.session.Dirty() {
		title += warningStyle.Render(" ● modified")
	}
	edit := editStyle.Render(subtitleStyle.Render(title) + "\n" + m.textarea.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, list, edit)
}

// renderList renders the window of entries around the selection that fits
// the editor height.
func (m Model) renderList() string {
	entries := m.session.Entries()
	rows := m.textarea.Height() + 1

	start := m.session.Index() - rows/2
	if start > len(entries)-rows {
		start = len(entries) - rows
	}
	if start < 0 {
		start = 0
	}
	end := start + rows
	if end > len(entries) {
		end = len(entries)
	}

	width := m.width/2 - 6
	if width < 30 {
		width = 30
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		label := truncate(entries[i].Label, width-2)
		if i == m.session.Index() {
			b.WriteString(selectedStyle.Render("› " + label))
		} else if entries[i].Err != nil {
			b.WriteString(dimStyle.Render("  " + label))
		} else {
			b.WriteString("  " + label)
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case library.LevelError:
			style = errorStyle
			prefix = "✗"
		case library.LevelWarning:
			style = warningStyle
			prefix = "!"
		case library.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case library.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func renderNotice(n editor.Notice) string {
	switch n.Level {
	case editor.LevelError:
		return errorStyle.Render("✗ " + n.Title + ": " + n.Message)
	case editor.LevelWarning:
		return warningStyle.Render("! " + n.Message)
	default:
		if n.Title == "Success" {
			return successStyle.Render("✓ " + n.Message)
		}
		return infoStyle.Render("› " + n.Message)
	}
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: open folder • ctrl+v: verbose • esc: back/quit"
	case StateScanning:
		return "esc: cancel"
	case StateEditing:
		return "tab: switch pane • ↑/↓: select • ctrl+s: save • ctrl+l: clear • ctrl+n/p: next/previous • ctrl+o: open folder • ctrl+c: quit"
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Run starts the TUI application.
//
// newSession receives the progress callback to hand to the folder scanner,
// so scan events reach the running program.
func Run(newSession func(onProgress func(library.ProgressEvent)) *editor.Session, startFolder string) error {
	var p *tea.Program
	onProgress := func(event library.ProgressEvent) {
		if p != nil {
			p.Send(ProgressMsg{Event: event})
		}
	}

	p = tea.NewProgram(NewModel(newSession(onProgress), startFolder), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

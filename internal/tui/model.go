// Package tui is the full-screen task editor.
//
// Edits go through a session.Session and stay in memory until the user saves;
// quitting never writes the file.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todo/internal/session"
	"todo/internal/task"
)

const (
	doneMark = "✔"
	openMark = "❌"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeConfirmDelete
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C2185B"))
	cursorStyle  = lipgloss.NewStyle().Background(lipgloss.Color("#F7CFD6"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5E8C3A"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#D32F2F"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E6F8E"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
	keyAddStyle  = lipgloss.NewStyle().Background(lipgloss.Color("#F7CFD6")).Padding(0, 1)
	keyDoneStyle = lipgloss.NewStyle().Background(lipgloss.Color("#CFEBB4")).Padding(0, 1)
	keyDelStyle  = lipgloss.NewStyle().Background(lipgloss.Color("#FAAAAA")).Padding(0, 1)
	keySaveStyle = lipgloss.NewStyle().Background(lipgloss.Color("#ADD8E6")).Padding(0, 1)
)

// Model is the bubbletea model of the editor.
type Model struct {
	sess       *session.Session
	tasks      []task.Task
	cursor     int
	mode       mode
	input      textinput.Model
	status     string
	warning    bool
	pendingDel *task.Task
	saved      bool
}

// New returns a model editing sess.
func New(sess *session.Session) Model {
	ti := textinput.New()
	ti.Placeholder = "Task description"
	ti.CharLimit = 0
	ti.Width = 40

	m := Model{
		sess:   sess,
		input:  ti,
		mode:   modeList,
		status: "Press 'a' to add, 'c' to complete, 'd' to delete, 's' to save.",
	}
	m.refresh()
	return m
}

// Run shows the editor until the user saves or quits. It reports whether the
// list was saved.
func Run(ctx context.Context, sess *session.Session, in io.Reader, out io.Writer) (bool, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(out)}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}

	final, err := tea.NewProgram(New(sess), opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return false, nil
		}
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.saved, nil
}

// Saved reports whether the user saved before leaving.
func (m Model) Saved() bool { return m.saved }

// Cursor returns the selected row.
func (m Model) Cursor() int { return m.cursor }

// Status returns the message shown under the list.
func (m Model) Status() string { return m.status }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAddMode(msg)
		case modeConfirmDelete:
			return m.updateDeleteConfirm(msg.String())
		}
		return m.updateListMode(msg.String())
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-10, 10)
	}
	return m, nil
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.info("Cancelled")
		return m, nil
	case "enter":
		if _, err := m.sess.Add(m.input.Value()); err != nil {
			// Stay in add mode so the user can type a description.
			m.warn(session.Warning(err))
			return m, nil
		}
		m.refresh()
		m.cursor = clampCursor(len(m.tasks)-1, len(m.tasks))
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		m.info("Added task")
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(m.tasks))
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(m.tasks))
	case "a":
		m.mode = modeAdd
		m.input.Focus()
		m.info("Add mode: type a description and press Enter")
	case "c", " ":
		if err := m.sess.Complete(m.selection()); err != nil {
			m.warn(session.Warning(err))
			return m, nil
		}
		m.refresh()
		m.info("Marked task completed")
	case "d":
		sel := m.selection()
		if sel == session.NoSelection {
			m.warn(session.Warning(m.sess.Delete(sel)))
			return m, nil
		}
		t := m.tasks[sel]
		m.pendingDel = &t
		m.mode = modeConfirmDelete
		m.info(fmt.Sprintf("Delete %q? y/n", t.Description))
	case "s":
		if err := m.sess.Save(); err != nil {
			m.warn(session.Warning(err))
			return m, nil
		}
		m.saved = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		// By id: the row under the cursor is not necessarily the one confirmed.
		if err := m.sess.DeleteID(m.pendingDel.ID); err != nil {
			m.warn(session.Warning(err))
		} else {
			m.refresh()
			m.cursor = clampCursor(m.cursor, len(m.tasks))
			m.info("Deleted task")
		}
	case "n", "N", "esc":
		m.info("Delete cancelled")
	default:
		return m, nil
	}
	m.mode = modeList
	m.pendingDel = nil
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("To-Do List"))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString("No tasks yet. Press 'a' to add one.\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	if m.mode == modeAdd {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.warning {
		b.WriteString(warnStyle.Render("⚠ " + m.status))
	} else {
		b.WriteString(infoStyle.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(renderHelp())
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderTaskList() string {
	var b strings.Builder
	for i, t := range m.tasks {
		line := RenderTask(t)
		if t.Completed {
			line = doneStyle.Render(line)
		}
		if i == m.cursor && m.mode != modeAdd {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// RenderTask is the list row of t: a check mark or cross, then the description.
func RenderTask(t task.Task) string {
	if t.Completed {
		return doneMark + " " + t.Description
	}
	return openMark + " " + t.Description
}

func renderHelp() string {
	return strings.Join([]string{
		keyAddStyle.Render("a add"),
		keyDoneStyle.Render("c complete"),
		keyDelStyle.Render("d delete"),
		keySaveStyle.Render("s save & exit"),
		helpStyle.Render("↑/↓ move • q quit"),
	}, " ")
}

func (m *Model) refresh() {
	m.tasks = m.sess.Tasks()
	m.cursor = clampCursor(m.cursor, len(m.tasks))
}

func (m Model) selection() int {
	if len(m.tasks) == 0 {
		return session.NoSelection
	}
	return m.cursor
}

func (m *Model) info(s string) {
	m.status = s
	m.warning = false
}

func (m *Model) warn(s string) {
	m.status = s
	m.warning = true
}

func clampCursor(cur, n int) int {
	if n <= 0 || cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/session"
	"todo/internal/task"
	"todo/internal/taskfile"
)

type failingStorage struct{}

func (failingStorage) Save(*task.List) error {
	return &taskfile.PersistenceError{Op: "save", Path: "tasks.txt", Err: errors.New("disk full")}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(Model)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestAddTask(t *testing.T) {
	sess := session.New(nil, nil)
	m := New(sess)

	m, _ = press(t, m, runes("a"), runes("buy milk"), tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, sess.Tasks(), 1)
	assert.Equal(t, "buy milk", sess.Tasks()[0].Description)
	assert.Equal(t, "Added task", m.Status())
	assert.Contains(t, m.View(), "❌ buy milk")
}

func TestAddEmptyWarns(t *testing.T) {
	sess := session.New(nil, nil)
	m := New(sess)

	m, _ = press(t, m, runes("a"), tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, sess.Tasks())
	assert.Equal(t, "please enter a task description", m.Status())
	assert.False(t, sess.Dirty())
}

func TestAddCancel(t *testing.T) {
	sess := session.New(nil, nil)
	m := New(sess)

	m, _ = press(t, m, runes("a"), runes("x"), tea.KeyMsg{Type: tea.KeyEsc})

	assert.Empty(t, sess.Tasks())
	assert.Equal(t, "Cancelled", m.Status())
}

func TestAddLongDescription(t *testing.T) {
	sess := session.New(nil, nil)
	m := New(sess)
	long := strings.Repeat("y", 1000)

	press(t, m, runes("a"), runes(long), tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, sess.Tasks(), 1)
	assert.Equal(t, long, sess.Tasks()[0].Description)
}

func TestCtrlCQuitsWhileAdding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	sess := session.New(nil, taskfile.New(path))
	m := New(sess)

	m, cmd := press(t, m, runes("a"), runes("half typed"), tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.True(t, isQuit(cmd))
	assert.Empty(t, sess.Tasks())
	assert.False(t, m.Saved())
	assert.NoFileExists(t, path)
}

func TestCompleteSelected(t *testing.T) {
	sess := session.New(task.NewList(task.Task{Description: "a"}, task.Task{Description: "b"}), nil)
	m := New(sess)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeySpace})

	got := sess.Tasks()
	assert.False(t, got[0].Completed)
	assert.True(t, got[1].Completed)
	assert.Contains(t, m.View(), "✔ b")
}

func TestCompleteWithoutTasksWarns(t *testing.T) {
	m := New(session.New(nil, nil))

	m, _ = press(t, m, runes("c"))
	assert.Equal(t, "select a task to mark as completed", m.Status())

	m, _ = press(t, m, runes("d"))
	assert.Equal(t, "select a task to delete", m.Status())
}

func TestDeleteConfirm(t *testing.T) {
	sess := session.New(task.NewList(task.Task{Description: "a"}, task.Task{Description: "b"}), nil)
	m := New(sess)

	m, _ = press(t, m, runes("d"), runes("n"))
	assert.Len(t, sess.Tasks(), 2)
	assert.Equal(t, "Delete cancelled", m.Status())

	m, _ = press(t, m, runes("d"), runes("y"))
	require.Len(t, sess.Tasks(), 1)
	assert.Equal(t, "b", sess.Tasks()[0].Description)
	assert.Equal(t, 0, m.Cursor())
}

func TestDeleteLastMovesCursor(t *testing.T) {
	sess := session.New(task.NewList(task.Task{Description: "a"}, task.Task{Description: "b"}), nil)
	m := New(sess)

	m, _ = press(t, m, runes("j"), runes("d"), runes("y"))

	require.Len(t, sess.Tasks(), 1)
	assert.Equal(t, 0, m.Cursor())
}

func TestSaveAndExit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	sess := session.New(nil, taskfile.New(path))
	m := New(sess)

	m, _ = press(t, m, runes("a"), runes("x"), tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := press(t, m, runes("s"))

	assert.True(t, isQuit(cmd))
	assert.True(t, m.Saved())

	l, err := taskfile.New(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())
}

func TestSaveFailureStaysOpen(t *testing.T) {
	sess := session.New(task.NewList(task.Task{Description: "a"}), failingStorage{})
	m := New(sess)

	m, cmd := press(t, m, runes("s"))

	assert.False(t, isQuit(cmd))
	assert.False(t, m.Saved())
	assert.Equal(t, "error saving tasks: disk full", m.Status())
}

func TestQuitDoesNotSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	sess := session.New(nil, taskfile.New(path))
	m := New(sess)

	m, _ = press(t, m, runes("a"), runes("x"), tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := press(t, m, runes("q"))

	assert.True(t, isQuit(cmd))
	assert.False(t, m.Saved())
	assert.NoFileExists(t, path)
}

func TestRenderTask(t *testing.T) {
	assert.Equal(t, "✔ done", RenderTask(task.Task{Description: "done", Completed: true}))
	assert.Equal(t, "❌ open", RenderTask(task.Task{Description: "open"}))
}

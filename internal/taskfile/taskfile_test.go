package taskfile_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/task"
	"todo/internal/taskfile"
)

func descriptions(l *task.List) []string {
	var out []string
	for _, t := range l.All() {
		out = append(out, t.String())
	}
	return out
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	f := taskfile.New(filepath.Join(t.TempDir(), "tasks.txt"))

	l, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
}

func TestLoad_TwoTasksInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	require.NoError(t, os.WriteFile(path, []byte("buy milk;true\nwrite report;false\n"), 0644))

	l, err := taskfile.New(path).Load()
	require.NoError(t, err)
	require.Equal(t, 2, l.Len())

	first, _ := l.At(0)
	second, _ := l.At(1)
	assert.Equal(t, "buy milk", first.Description)
	assert.True(t, first.Completed)
	assert.Equal(t, "write report", second.Description)
	assert.False(t, second.Completed)
}

func TestLoad_DropsMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	require.NoError(t, os.WriteFile(path, []byte("no-semicolon-here\nbuy milk;false\n"), 0644))

	l, err := taskfile.New(path).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"buy milk;false"}, descriptions(l))
}

func TestLoad_UnreadableIsPersistenceError(t *testing.T) {
	dir := t.TempDir()

	// A directory cannot be read as a task file.
	l, err := taskfile.New(dir).Load()
	require.Error(t, err)

	var perr *taskfile.PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "load", perr.Op)
	assert.Equal(t, dir, perr.Path)
	assert.NotNil(t, l)
	assert.Equal(t, 0, l.Len())
}

func TestDecode_CRLF(t *testing.T) {
	l, err := taskfile.Decode(strings.NewReader("a;true\r\nb;false\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a;true", "b;false"}, descriptions(l))
}

func TestDecode_LongLine(t *testing.T) {
	long := strings.Repeat("x", 2<<20)

	l, err := taskfile.Decode(strings.NewReader("a;true\n" + long + ";false\nb;false"))
	require.NoError(t, err)
	require.Equal(t, 3, l.Len())
	assert.Equal(t, []string{"a;true", long + ";false", "b;false"}, descriptions(l))
}

func TestDecode_PartialOnReadError(t *testing.T) {
	failing := &failAfter{data: []byte("a;true\nbroken"), err: errors.New("disk on fire")}

	l, err := taskfile.Decode(failing)
	require.Error(t, err)
	assert.Equal(t, []string{"a;true"}, descriptions(l))
}

type failAfter struct {
	data []byte
	err  error
	done bool
}

func (f *failAfter) Read(p []byte) (int, error) {
	if f.done {
		return 0, f.err
	}
	f.done = true
	return copy(p, f.data), nil
}

func TestSave_RewritesWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	require.NoError(t, os.WriteFile(path, []byte("old;true\nolder;true\nstale;false\n"), 0644))

	l := task.NewList(task.Task{Description: "buy milk", Completed: true}, task.Task{Description: "write report"})
	require.NoError(t, taskfile.New(path).Save(l))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "buy milk;true\nwrite report;false\n", string(data))
}

func TestSave_EmptyListTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	require.NoError(t, os.WriteFile(path, []byte("old;true\n"), 0644))

	require.NoError(t, taskfile.New(path).Save(task.NewList()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestSave_UnwritableIsPersistenceError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "tasks.txt")

	err := taskfile.New(path).Save(task.NewList(task.Task{Description: "a"}))
	require.Error(t, err)

	var perr *taskfile.PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "save", perr.Op)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	l := task.NewList(
		task.Task{Description: "a", Completed: true},
		task.Task{Description: "b"},
		task.Task{Description: "a"},
	)
	f := taskfile.New(path)
	require.NoError(t, f.Save(l))

	back, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, descriptions(l), descriptions(back))
}

func TestNew_DefaultName(t *testing.T) {
	assert.Equal(t, taskfile.DefaultName, taskfile.New("").Path)
}

package task_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/task"
)

// fields strips ids so lists can be compared by content.
func fields(l *task.List) [][2]any {
	var out [][2]any
	for _, t := range l.All() {
		out = append(out, [2]any{t.Description, t.Completed})
	}
	return out
}

func TestAdd_AppendsOpenTask(t *testing.T) {
	l := task.NewList()

	for i, s := range []string{"buy milk", "write report", "buy milk"} {
		added, err := l.Add(s)
		require.NoError(t, err)
		assert.Equal(t, i+1, l.Len())

		last, ok := l.At(l.Len() - 1)
		require.True(t, ok)
		assert.Equal(t, s, last.Description)
		assert.False(t, last.Completed)
		assert.Equal(t, added.ID, last.ID)
	}
}

func TestAdd_TrimsSurroundingWhitespace(t *testing.T) {
	l := task.NewList()
	added, err := l.Add("  call mom \t")
	require.NoError(t, err)
	assert.Equal(t, "call mom", added.Description)
}

func TestAdd_RejectsBlank(t *testing.T) {
	l := task.NewList(task.Task{Description: "existing"})

	for _, s := range []string{"", "   ", "\t\n"} {
		_, err := l.Add(s)
		require.Error(t, err)
		assert.ErrorIs(t, err, task.ErrEmptyDescription)

		var verr *task.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "add", verr.Op)
		assert.Equal(t, 1, l.Len())
	}
}

func TestComplete_SetsFlagOnly(t *testing.T) {
	l := task.NewList(task.Task{Description: "a"}, task.Task{Description: "b"})
	before, _ := l.At(1)

	require.NoError(t, l.Complete(1))

	after, _ := l.At(1)
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, "b", after.Description)
	assert.True(t, after.Completed)
	assert.Equal(t, before.ID, after.ID)

	first, _ := l.At(0)
	assert.False(t, first.Completed)
}

func TestComplete_Idempotent(t *testing.T) {
	l := task.NewList(task.Task{Description: "a", Completed: true})
	require.NoError(t, l.Complete(0))
	got, _ := l.At(0)
	assert.True(t, got.Completed)
}

func TestComplete_InvalidIndex(t *testing.T) {
	l := task.NewList(task.Task{Description: "a"})

	for _, i := range []int{-1, 1, 42} {
		err := l.Complete(i)
		assert.ErrorIs(t, err, task.ErrNoSelection)
	}
	assert.Equal(t, [][2]any{{"a", false}}, fields(l))
}

func TestDelete_RemovesExactlyOne(t *testing.T) {
	l := task.NewList(
		task.Task{Description: "a"},
		task.Task{Description: "b", Completed: true},
		task.Task{Description: "c"},
	)

	require.NoError(t, l.Delete(1))
	assert.Equal(t, [][2]any{{"a", false}, {"c", false}}, fields(l))

	require.NoError(t, l.Delete(1))
	assert.Equal(t, [][2]any{{"a", false}}, fields(l))
}

func TestDelete_InvalidIndex(t *testing.T) {
	l := task.NewList(task.Task{Description: "a"})

	err := l.Delete(3)
	assert.ErrorIs(t, err, task.ErrNoSelection)

	var verr *task.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "delete", verr.Op)
	assert.Equal(t, 1, l.Len())
}

func TestByID_SurvivesReordering(t *testing.T) {
	l := task.NewList()
	a, _ := l.Add("a")
	b, _ := l.Add("b")

	require.NoError(t, l.DeleteID(a.ID))
	require.NoError(t, l.CompleteID(b.ID))

	assert.Equal(t, [][2]any{{"b", true}}, fields(l))
	assert.ErrorIs(t, l.DeleteID(a.ID), task.ErrNotFound)
}

func TestScenario_AddCompleteDelete(t *testing.T) {
	l := task.NewList()
	_, err := l.Add("buy milk")
	require.NoError(t, err)
	_, err = l.Add("write report")
	require.NoError(t, err)
	require.NoError(t, l.Complete(0))
	require.NoError(t, l.Delete(1))

	assert.Equal(t, [][2]any{{"buy milk", true}}, fields(l))
}

func TestSerialize_LineFormat(t *testing.T) {
	l := task.NewList(
		task.Task{Description: "buy milk", Completed: true},
		task.Task{Description: "write report"},
	)

	got := slices.Collect(l.Serialize())
	assert.Equal(t, []string{"buy milk;true", "write report;false"}, got)
}

func TestSerialize_StopsEarly(t *testing.T) {
	l := task.NewList(task.Task{Description: "a"}, task.Task{Description: "b"})

	var seen []string
	for line := range l.Serialize() {
		seen = append(seen, line)
		break
	}
	assert.Equal(t, []string{"a;false"}, seen)
}

func TestRoundTrip(t *testing.T) {
	l := task.NewList(
		task.Task{Description: "buy milk", Completed: true},
		task.Task{Description: "write report"},
		task.Task{Description: "buy milk"},
		task.Task{Description: "  padded  ", Completed: true},
	)

	back := task.Deserialize(l.Serialize())
	assert.Equal(t, fields(l), fields(back))
}

func TestDeserialize_Total(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  [][2]any
	}{
		{"empty input", nil, nil},
		{"blank lines", []string{"", "", ""}, nil},
		{"no delimiter", []string{"no-semicolon-here"}, nil},
		{"malformed interleaved", []string{"no-semicolon-here", "buy milk;true"}, [][2]any{{"buy milk", true}}},
		{"case sensitive true", []string{"a;TRUE", "b;True", "c;true"}, [][2]any{{"a", false}, {"b", false}, {"c", true}}},
		{"anything else is false", []string{"a;yes", "b;1", "c;false"}, [][2]any{{"a", false}, {"b", false}, {"c", false}}},
		{"extra fields ignored", []string{"a;true;extra"}, [][2]any{{"a", true}}},
		{"trailing empty field dropped", []string{"a;", "b;;"}, nil},
		{"empty description kept", []string{";true"}, [][2]any{{"", true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := task.Deserialize(slices.Values(tt.lines))
			assert.Equal(t, tt.want, fields(l))
		})
	}
}

func TestDeserialize_AssignsIDs(t *testing.T) {
	l := task.Deserialize(slices.Values([]string{"a;false", "b;false"}))
	a, _ := l.At(0)
	b, _ := l.At(1)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 1, l.IndexOf(b.ID))
}

package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubescan/internal/facelet"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *editModel, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func TestParsePair(t *testing.T) {
	i, j, err := parsePair("8-26")
	require.NoError(t, err)
	assert.Equal(t, 8, i)
	assert.Equal(t, 26, j)

	i, j, err = parsePair(" 0 - 53 ")
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	assert.Equal(t, 53, j)

	for _, bad := range []string{"8", "a-b", "60-1", "-1-2"} {
		_, _, err := parsePair(bad)
		assert.Error(t, err, bad)
	}
}

func TestRenderNet(t *testing.T) {
	out := renderNet(facelet.Solved(), nil, -1)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 9)
	for _, f := range facelet.Faces {
		assert.GreaterOrEqual(t, strings.Count(out, f.String()), facelet.FaceSize, "face %s", f)
	}

	blank := renderNet(facelet.BlankNotation(), nil, 0)
	assert.GreaterOrEqual(t, strings.Count(blank, "."), facelet.Count)
}

func TestEditCursor(t *testing.T) {
	m := newEditModel(facelet.Solved(), "", nil)

	press(m, "left")
	assert.Equal(t, facelet.Count-1, m.cursor)
	press(m, "right", "down")
	assert.Equal(t, 3, m.cursor)
	press(m, "tab")
	assert.Equal(t, 12, m.cursor)
}

func TestEditLabelAndUndo(t *testing.T) {
	m := newEditModel(facelet.Solved(), "", nil)

	press(m, "r")
	assert.Equal(t, facelet.R, m.n.At(0))
	assert.Contains(t, m.View(), "count")

	press(m, "z")
	assert.Equal(t, facelet.Solved(), m.n)
	assert.Contains(t, m.View(), "solvable")

	// Undo with nothing recorded is a no-op.
	press(m, "z")
	assert.Equal(t, facelet.Solved(), m.n)
}

func TestEditCentresAreFixed(t *testing.T) {
	m := newEditModel(facelet.Solved(), "", nil)
	press(m, "right", "right", "right", "right", "f")
	assert.Equal(t, 4, m.cursor)
	assert.Equal(t, facelet.U, m.n.At(4))
	assert.Equal(t, "centres are fixed", m.message)

	press(m, "x", "right", "x")
	assert.Equal(t, facelet.Solved(), m.n)
	assert.Equal(t, -1, m.mark)
}

func TestEditSwap(t *testing.T) {
	m := newEditModel(facelet.Solved(), "", nil)
	press(m, "x", "tab", "x")
	assert.Equal(t, facelet.R, m.n.At(0))
	assert.Equal(t, facelet.U, m.n.At(9))
	assert.Equal(t, -1, m.mark)
	assert.Equal(t, []int{0, 9}, m.original.Diff(m.n))
}

func TestEditSave(t *testing.T) {
	var got facelet.Notation
	m := newEditModel(facelet.Solved(), "scan-1", func(n facelet.Notation) error {
		got = n
		return nil
	})

	press(m, "x", "tab", "x")
	cmd := press(m, "s")
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.True(t, m.saved)
	assert.Equal(t, m.n, got)

	// Further edits mark the model unsaved again.
	press(m, "z")
	assert.False(t, m.saved)
}

func TestEditSaveWithoutTarget(t *testing.T) {
	m := newEditModel(facelet.Solved(), "", nil)
	cmd := press(m, "s")
	assert.Nil(t, cmd)
	assert.NotEmpty(t, m.message)
}

func TestEditQuit(t *testing.T) {
	m := newEditModel(facelet.Solved(), "", nil)
	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubescan/internal/diagnose"
	"github.com/SeamusWaldron/cubescan/internal/facelet"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	okStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// netRows lists the faces drawn side by side on each band of the net; a Blank
// entry is an empty slot.
var netRows = [3][4]facelet.Face{
	{facelet.Blank, facelet.U, facelet.Blank, facelet.Blank},
	{facelet.L, facelet.F, facelet.R, facelet.B},
	{facelet.Blank, facelet.D, facelet.Blank, facelet.Blank},
}

func faceOffset(f facelet.Face) int {
	return f.Ordinal() * facelet.FaceSize
}

func cellStyle(f facelet.Face) lipgloss.Style {
	fg := lipgloss.Color("0")
	if f == facelet.B || f == facelet.R || f == facelet.Blank {
		fg = lipgloss.Color("15")
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(diagnose.FaceColors[f])).
		Foreground(fg)
}

// renderNet draws n as an unfolded cube. Positions in marked are drawn
// bold and underlined; cursor, when non-negative, is drawn reversed.
func renderNet(n facelet.Notation, marked map[int]bool, cursor int) string {
	var b strings.Builder
	for _, band := range netRows {
		for row := 0; row < 3; row++ {
			for _, f := range band {
				if f == facelet.Blank {
					b.WriteString(strings.Repeat(" ", 7))
					continue
				}
				for col := 0; col < 3; col++ {
					i := faceOffset(f) + row*3 + col
					sym := n.At(i)
					st := cellStyle(sym)
					if marked[i] {
						st = st.Bold(true).Underline(true)
					}
					if i == cursor {
						st = st.Reverse(true)
					}
					label := string(rune(sym))
					if sym == facelet.Blank {
						label = "."
					}
					b.WriteString(st.Render(" " + label))
				}
				b.WriteString(" ")
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func markSet(positions []int) map[int]bool {
	m := make(map[int]bool, len(positions))
	for _, i := range positions {
		m[i] = true
	}
	return m
}

package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubescan/internal/cube"
	"github.com/SeamusWaldron/cubescan/internal/facelet"
	"github.com/SeamusWaldron/cubescan/internal/storage"
)

var editLast bool

var editCmd = &cobra.Command{
	Use:   "edit [scan-id|notation]",
	Short: "Correct a notation by hand",
	Long: `Open an interactive editor on a notation. Used when the repair search finds
nothing, or finds the wrong cube.

Keyboard shortcuts:
  arrows      - Move the cursor
  tab         - Jump to the next face
  u r f d l b - Label the facelet under the cursor
  x           - Mark the facelet for a swap; x again swaps with the mark
  z           - Undo
  s           - Save (stored as the scan's corrected notation)
  q/Esc       - Quit

Facelets that differ from the starting notation are underlined.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().BoolVar(&editLast, "last", false, "Edit the most recent scan")
}

type savedMsg struct{ err error }

type editModel struct {
	original facelet.Notation
	n        facelet.Notation
	cursor   int
	mark     int
	undo     []facelet.Notation

	scanID string
	save   func(facelet.Notation) error

	saved    bool
	message  string
	err      error
	quitting bool
}

func newEditModel(n facelet.Notation, scanID string, save func(facelet.Notation) error) *editModel {
	return &editModel{original: n, n: n, cursor: 0, mark: -1, scanID: scanID, save: save}
}

func (m *editModel) Init() tea.Cmd {
	return nil
}

func (m *editModel) push() {
	m.undo = append(m.undo, m.n)
	m.saved = false
}

func (m *editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.saved = true
			m.message = "saved"
		}
		return m, nil

	case tea.KeyMsg:
		m.err = nil
		m.message = ""
		key := msg.String()
		switch key {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "left":
			m.cursor = (m.cursor + facelet.Count - 1) % facelet.Count
		case "right":
			m.cursor = (m.cursor + 1) % facelet.Count
		case "up":
			m.cursor = (m.cursor + facelet.Count - 3) % facelet.Count
		case "down":
			m.cursor = (m.cursor + 3) % facelet.Count
		case "tab":
			m.cursor = (m.cursor + facelet.FaceSize) % facelet.Count

		case "u", "r", "f", "d", "l", "b", "U", "R", "F", "D", "L", "B":
			m.label(facelet.Face(strings.ToUpper(key)[0]))

		case "x":
			switch {
			case m.mark < 0:
				m.mark = m.cursor
			case m.mark == m.cursor:
				m.mark = -1
			case facelet.IsCentre(m.mark) || facelet.IsCentre(m.cursor):
				m.message = "centres cannot be swapped"
				m.mark = -1
			default:
				m.push()
				m.n.Swap(m.mark, m.cursor)
				m.mark = -1
			}

		case "z":
			if k := len(m.undo); k > 0 {
				m.n = m.undo[k-1]
				m.undo = m.undo[:k-1]
				m.saved = false
			}

		case "s":
			if m.save == nil {
				m.message = "nothing to save to; the notation is printed on exit"
				return m, nil
			}
			n, save := m.n, m.save
			return m, func() tea.Msg { return savedMsg{err: save(n)} }
		}
	}
	return m, nil
}

// label sets the facelet under the cursor. Centres stay fixed.
func (m *editModel) label(f facelet.Face) {
	if facelet.IsCentre(m.cursor) {
		m.message = "centres are fixed"
		return
	}
	if m.n.At(m.cursor) == f {
		return
	}
	m.push()
	m.n.Set(m.cursor, f)
}

func (m *editModel) status() string {
	rep := facelet.Validate(m.n)
	if !rep.Valid() {
		return errorStyle.Render(rep.Summary())
	}
	if err := cube.Verify(m.n); err != nil {
		return errorStyle.Render(err.Error())
	}
	return okStyle.Render("solvable")
}

func (m *editModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	title := "cubescan edit"
	if m.scanID != "" {
		title += "  " + m.scanID
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	marked := markSet(m.original.Diff(m.n))
	if m.mark >= 0 {
		marked[m.mark] = true
	}
	b.WriteString(renderNet(m.n, marked, m.cursor))
	b.WriteString("\n\n")

	class := facelet.ClassOf(m.cursor)
	b.WriteString(fmt.Sprintf("Facelet %d (%s)", m.cursor, class))
	if mates := facelet.GroupMates(m.cursor); len(mates) > 0 {
		b.WriteString(fmt.Sprintf("  piece %v", append([]int{m.cursor}, mates...)))
	}
	if m.mark >= 0 {
		b.WriteString(fmt.Sprintf("  swap from %d", m.mark))
	}
	b.WriteString("\n")
	b.WriteString(m.n.String())
	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n")

	if m.message != "" {
		b.WriteString(statusStyle.Render(m.message))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Keys: arrows move  U R F D L B label  x swap  z undo  s save  q quit"))
	b.WriteString("\n")
	return b.String()
}

func runEdit(cmd *cobra.Command, args []string) error {
	var (
		n      facelet.Notation
		scanID string
		save   func(facelet.Notation) error
	)

	if len(args) == 1 && len(args[0]) == facelet.Count {
		parsed, err := facelet.ParseNotation(args[0])
		if err != nil {
			return err
		}
		n = parsed
	} else {
		db, err := openHistory()
		if err != nil {
			return err
		}
		defer db.Close()

		s, err := findScan(db, args, editLast)
		if err != nil {
			return err
		}
		start, err := finalNotation(db, s)
		if err != nil {
			return err
		}
		if n, err = facelet.ParseNotation(start); err != nil {
			return err
		}
		scanID = s.ScanID
		scans := storage.NewScanRepository(db)
		save = func(n facelet.Notation) error {
			return scans.SetCorrected(scanID, n.String())
		}
	}

	model := newEditModel(n, scanID, save)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	fmt.Println(model.n)
	if model.saved {
		fmt.Println(okStyle.Render("Saved correction for " + scanID))
	}
	return nil
}

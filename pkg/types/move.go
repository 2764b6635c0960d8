// Package types contains the move type shared by the solver adapter, the
// cube model and the command line tools.
package types

// Face represents a cube face in standard notation.
type Face string

const (
	FaceR Face = "R" // Right
	FaceL Face = "L" // Left
	FaceU Face = "U" // Up
	FaceD Face = "D" // Down
	FaceF Face = "F" // Front
	FaceB Face = "B" // Back
)

// Turn represents the direction and magnitude of a face turn.
type Turn int

const (
	TurnCW  Turn = 1  // Clockwise quarter turn
	TurnCCW Turn = -1 // Counter-clockwise quarter turn
	Turn180 Turn = 2  // 180 degree turn (half turn)
)

// Move represents a single face turn.
type Move struct {
	Face Face `json:"face"`
	Turn Turn `json:"turn"`
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2, U, U', U2
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case TurnCCW:
		suffix = "'"
	case Turn180:
		suffix = "2"
	}
	return string(m.Face) + suffix
}

func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the inverse of this move.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case TurnCW:
		inv.Turn = TurnCCW
	case TurnCCW:
		inv.Turn = TurnCW
		// Turn180 is its own inverse
	}
	return inv
}

// Merge combines two same-face moves into one (or returns nil if they cancel).
// Returns nil if the moves cannot be merged or if they cancel out completely.
func (m Move) Merge(other Move) *Move {
	if m.Face != other.Face {
		return nil
	}

	combined := ((int(m.Turn)+int(other.Turn))%4 + 4) % 4
	switch combined {
	case 0:
		return nil // Moves cancel out
	case 3:
		return &Move{Face: m.Face, Turn: TurnCCW}
	default:
		return &Move{Face: m.Face, Turn: Turn(combined)}
	}
}

// Invert returns the sequence that undoes moves.
func Invert(moves []Move) []Move {
	out := make([]Move, len(moves))
	for i, m := range moves {
		out[len(moves)-1-i] = m.Inverse()
	}
	return out
}

// Simplify merges adjacent same-face moves until none remain.
func Simplify(moves []Move) []Move {
	out := make([]Move, 0, len(moves))
	for _, m := range moves {
		if n := len(out); n > 0 && out[n-1].Face == m.Face {
			merged := out[n-1].Merge(m)
			out = out[:n-1]
			if merged != nil {
				out = append(out, *merged)
			}
			continue
		}
		out = append(out, m)
	}
	return out
}

// Package notation reads and writes face-turn sequences such as the output
// of an external solver.
package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cubescan/pkg/types"
)

// ErrBadMove is returned by ParseSequence for a token that is not a move.
var ErrBadMove = errors.New("notation: invalid move")

// ParseMove parses a standard cube notation string into a Move.
// Examples: R, R', R2, U, U', U2
func ParseMove(s string) (types.Move, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return types.Move{}, false
	}

	// Extract face
	var face types.Face
	switch s[0] {
	case 'R', 'r':
		face = types.FaceR
	case 'L', 'l':
		face = types.FaceL
	case 'U', 'u':
		face = types.FaceU
	case 'D', 'd':
		face = types.FaceD
	case 'F', 'f':
		face = types.FaceF
	case 'B', 'b':
		face = types.FaceB
	default:
		return types.Move{}, false
	}

	// Extract turn
	turn := types.TurnCW // Default is clockwise
	if len(s) > 1 {
		switch s[1:] {
		case "'", "`", "3":
			turn = types.TurnCCW
		case "1":
		case "2", "2'":
			turn = types.Turn180
		default:
			return types.Move{}, false
		}
	}

	return types.Move{Face: face, Turn: turn}, true
}

// ParseSequence parses a whitespace-separated sequence of moves. A trailing
// move count such as "(20f)" is ignored; any other unreadable token is an
// error.
func ParseSequence(s string) ([]types.Move, error) {
	parts := strings.Fields(s)
	moves := make([]types.Move, 0, len(parts))

	for i, part := range parts {
		if strings.HasPrefix(part, "(") && i == len(parts)-1 {
			break
		}
		move, ok := ParseMove(part)
		if !ok {
			return nil, fmt.Errorf("%w: %q at token %d", ErrBadMove, part, i)
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatSequence formats a slice of moves as a space-separated string.
func FormatSequence(moves []types.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}
	return strings.Join(parts, " ")
}

// HalfTurnCount returns the number of moves counting half turns as one.
func HalfTurnCount(moves []types.Move) int {
	return len(types.Simplify(moves))
}

// QuarterTurnCount returns the number of moves counting half turns as two.
func QuarterTurnCount(moves []types.Move) int {
	n := 0
	for _, m := range types.Simplify(moves) {
		if m.Turn == types.Turn180 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

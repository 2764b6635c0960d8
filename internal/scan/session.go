// Package scan collects color samples from a scanning rig and reads and
// writes them as flat text files.
package scan

import (
	"errors"

	"github.com/SeamusWaldron/cubescan/internal/colorpoint"
	"github.com/SeamusWaldron/cubescan/internal/facelet"
)

// ErrSessionFull is returned when more samples are recorded than there are
// facelets.
var ErrSessionFull = errors.New("scan: all facelets already recorded")

// Session receives live samples in the rig's visiting order and stores each
// one at its notation position.
type Session struct {
	Samples colorpoint.Arena
	Cursor  int
}

// NewSession starts an empty session.
func NewSession() *Session {
	return &Session{Samples: colorpoint.NewArena()}
}

// Next returns the notation position the next sample will be stored at.
func (s *Session) Next() (int, bool) {
	if s.Complete() {
		return -1, false
	}
	return facelet.ScanOrder[s.Cursor], true
}

// Record stores the next sample and advances the cursor.
func (s *Session) Record(c1, c2, c3 float64) (int, error) {
	i, ok := s.Next()
	if !ok {
		return -1, ErrSessionFull
	}
	p := colorpoint.New(c1, c2, c3, i)
	if err := p.Validate(); err != nil {
		return -1, err
	}
	s.Samples[i] = p
	s.Cursor++
	return i, nil
}

// Complete reports whether every facelet has been recorded.
func (s *Session) Complete() bool {
	return s.Cursor >= facelet.Count
}

// Remaining returns the number of samples still expected.
func (s *Session) Remaining() int {
	return facelet.Count - s.Cursor
}

// Reset discards every sample.
func (s *Session) Reset() {
	s.Samples = colorpoint.NewArena()
	s.Cursor = 0
}

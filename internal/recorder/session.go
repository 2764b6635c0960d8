package recorder

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubescan/internal/colorpoint"
	"github.com/SeamusWaldron/cubescan/internal/scan"
)

// ErrIncomplete is returned by Finish before every facelet is recorded.
var ErrIncomplete = errors.New("recorder: scan incomplete")

// SessionState represents the current state of a recording session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateComplete
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Session records one live scan and mirrors every sample to the state file.
type Session struct {
	stateFile *StateFile
	scanDir   string
	logger    *zap.Logger
	now       func() time.Time

	mu       sync.Mutex
	scan     *scan.Session
	live     LiveScan
	recorded bool

	onSample func(pos int, p colorpoint.ColorPoint)
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// NewSession creates a session that exports finished scans into scanDir. A
// scan left in progress in stateFile is resumed.
func NewSession(stateFile *StateFile, scanDir string, opts ...Option) (*Session, error) {
	s := &Session{
		stateFile: stateFile,
		scanDir:   scanDir,
		logger:    zap.NewNop(),
		now:       time.Now,
		scan:      scan.NewSession(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if stateFile == nil || !stateFile.HasLive() {
		return s, nil
	}
	live := stateFile.State().Live
	for _, c := range live.Samples {
		if _, err := s.scan.Record(c[0], c[1], c[2]); err != nil {
			return nil, fmt.Errorf("failed to resume scan: %w", err)
		}
	}
	s.live = *live
	s.recorded = true
	s.logger.Info("resumed live scan",
		zap.Int("recorded", s.scan.Cursor),
		zap.Time("started_at", live.StartedAt))
	return s, nil
}

// SetSampleCallback sets the callback invoked after each recorded sample.
func (s *Session) SetSampleCallback(cb func(pos int, p colorpoint.ColorPoint)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSample = cb
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() SessionState {
	switch {
	case s.scan.Complete():
		return StateComplete
	case s.recorded:
		return StateRecording
	default:
		return StateIdle
	}
}

// Recorded returns how many samples have been recorded.
func (s *Session) Recorded() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scan.Cursor
}

// Remaining returns how many samples are still expected.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scan.Remaining()
}

// Next returns the notation position the next sample belongs to.
func (s *Session) Next() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scan.Next()
}

// Record stores the next live sample and persists the scan in progress.
func (s *Session) Record(c1, c2, c3 float64) (int, error) {
	s.mu.Lock()
	pos, err := s.scan.Record(c1, c2, c3)
	if err != nil {
		s.mu.Unlock()
		return -1, err
	}
	if !s.recorded {
		s.live = LiveScan{StartedAt: s.now().UTC()}
		s.recorded = true
	}
	s.live.Samples = append(s.live.Samples, [3]float64{c1, c2, c3})
	p := s.scan.Samples[pos]
	cb := s.onSample
	var saveErr error
	if s.stateFile != nil {
		live := s.live
		saveErr = s.stateFile.SetLive(&live)
	}
	s.mu.Unlock()

	if saveErr != nil {
		s.logger.Warn("failed to persist live scan", zap.Error(saveErr))
	}
	s.logger.Debug("sample recorded", zap.Int("position", pos), zap.Stringer("sample", p))
	if cb != nil {
		cb(pos, p)
	}
	return pos, nil
}

// Finish exports the completed scan and clears the state in progress. It
// returns the samples and the path written.
func (s *Session) Finish() (colorpoint.Arena, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.scan.Complete() {
		return colorpoint.Arena{}, "", fmt.Errorf("%w: %d samples missing", ErrIncomplete, s.scan.Remaining())
	}
	samples := s.scan.Samples
	path, err := scan.ExportDir(s.scanDir, &samples, s.now())
	if err != nil {
		return samples, "", err
	}
	if s.stateFile != nil {
		if err := s.stateFile.ClearLive(); err != nil {
			return samples, path, err
		}
	}
	s.logger.Info("scan finished", zap.String("path", path))
	s.scan.Reset()
	s.live = LiveScan{}
	s.recorded = false
	return samples, path, nil
}

// Abort discards the scan in progress.
func (s *Session) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scan.Reset()
	s.live = LiveScan{}
	s.recorded = false
	if s.stateFile != nil {
		return s.stateFile.ClearLive()
	}
	return nil
}

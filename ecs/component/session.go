package component

type SessionState int

const (
	SessionNotStarted SessionState = iota
	SessionPlaying
	SessionGameOver
)

func (s SessionState) String() string {
	switch s {
	case SessionNotStarted:
		return "not_started"
	case SessionPlaying:
		return "playing"
	case SessionGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Session is the per-play state shared by the scene callbacks and systems.
// GameOver is terminal; only a new scene leaves it.
type Session struct {
	State  SessionState
	Frames int
}

func (s *Session) Playing() bool {
	return s != nil && s.State == SessionPlaying
}

func (s *Session) GameOver() bool {
	return s != nil && s.State == SessionGameOver
}

var SessionComponent = NewComponent[Session]()

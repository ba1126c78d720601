package quiz

import (
	"github.com/abhisek/examiz/internal/profile"
	sess "github.com/abhisek/examiz/internal/session"
)

// sessionInitMsg is sent when stats are loaded and questions are drawn.
type sessionInitMsg struct {
	Session *sess.Session
	Stats   *profile.Stats
	Err     error
}

// sessionSavedMsg is sent once the finalized stats have been written.
type sessionSavedMsg struct {
	Stats *profile.Stats
	Err   error
}

// persistAnswerMsg is sent to confirm answer persistence completed.
type persistAnswerMsg struct {
	Err error
}

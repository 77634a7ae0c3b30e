package conversationnode

import (
	"errors"
	"strings"
	"time"

	contractx "github.com/tanpawarit/kopibot/agent/contract"
	memoryx "github.com/tanpawarit/kopibot/agent/memory"
)

var (
	ErrInvalidMessage = errors.New("message is empty")
	ErrInvalidSession = errors.New("session id is empty")
)

type GraphInput struct {
	SessionID string
	Text      string
}

type GraphOutput struct {
	Reply string
}

// GraphState flows through the conversation pipeline. Session is attached by
// the service after validation, once the session's exchange gate is held.
type GraphState struct {
	SessionID string
	Text      string
	Now       time.Time

	Session *memoryx.Session
	Plan    contractx.PlanningResult

	Reply string
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	return &GraphState{
		SessionID: sessionID,
		Text:      text,
		Now:       nowFn().UTC(),
	}, nil
}

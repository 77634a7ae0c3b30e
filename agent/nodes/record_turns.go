package conversationnode

import (
	"fmt"

	contractx "github.com/tanpawarit/kopibot/agent/contract"
)

// RecordTurns appends the (user, agent) pair for this exchange. It is the
// only writer of session turns, so every branch of the pipeline leaves the
// transcript with the same shape.
func RecordTurns(in *GraphState) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}
	if in.Reply == "" {
		return nil, fmt.Errorf("%w: reply must be set before recording turns", contractx.ErrValidation)
	}

	in.Session.Append(contractx.RoleUser, in.Text)
	in.Session.Append(contractx.RoleAgent, in.Reply)
	return in, nil
}

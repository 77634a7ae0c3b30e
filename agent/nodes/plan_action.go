package conversationnode

import (
	"fmt"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/kopibot/agent/contract"
)

// ActionPlanner decides the next action for a user message.
type ActionPlanner interface {
	Plan(text string) contractx.PlanningResult
}

func PlanAction(in *GraphState, planner ActionPlanner) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	in.Plan = planner.Plan(in.Text)

	log.Debug().
		Str("session_id", in.SessionID).
		Str("intent", string(in.Plan.Intent)).
		Str("action", string(in.Plan.Action)).
		Float64("confidence", in.Plan.Confidence).
		Msg("planned next action")

	return in, nil
}

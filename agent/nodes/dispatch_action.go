package conversationnode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/kopibot/agent/contract"
)

const (
	brokenCalculationReply = "I encountered an issue with the calculation. Could you please rephrase the calculation clearly?"
	brokenOutletQueryReply = "I need more details to find outlet information. Please specify a location or what you're looking for."
	degradedChatReply      = "I'm having trouble generating a response right now. Please try again in a moment."
	unhandledActionReply   = "I'm not sure how to handle that request. Can you rephrase?"
)

// DispatchAction executes the planned action and fills in the reply. Every
// branch produces text: collaborator failures degrade to a fixed apology
// instead of erroring the exchange.
func DispatchAction(
	ctx context.Context,
	in *GraphState,
	tools contractx.Toolset,
) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	switch in.Plan.Action {
	case contractx.ActionAskForInfo:
		if in.Plan.MissingInfoPrompt == "" {
			in.Reply = unhandledActionReply
			break
		}
		in.Reply = in.Plan.MissingInfoPrompt

	case contractx.ActionUseCalculator:
		if in.Plan.Calculation == nil {
			in.Reply = brokenCalculationReply
			break
		}
		in.Reply = tools.Calculator().Calculate(*in.Plan.Calculation)

	case contractx.ActionUseOutletDB:
		if in.Plan.Outlet == nil {
			in.Reply = brokenOutletQueryReply
			break
		}
		in.Reply = tools.Outlets().Lookup(ctx, *in.Plan.Outlet)

	case contractx.ActionRespondDirectly:
		// History is the transcript before this exchange; the new message
		// rides in as the prompt input.
		reply, err := tools.Completer().Complete(ctx, in.Session.Turns(), in.Text)
		if err != nil {
			log.Warn().Err(err).Str("session_id", in.SessionID).Msg("general chat completion failed")
			in.Reply = degradedChatReply
			break
		}
		in.Reply = reply

	default:
		log.Error().
			Str("session_id", in.SessionID).
			Str("action", string(in.Plan.Action)).
			Msg("planner produced unhandled action")
		in.Reply = unhandledActionReply
	}

	return in, nil
}

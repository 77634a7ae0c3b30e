package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/kopibot/agent/contract"
	outletx "github.com/tanpawarit/kopibot/agent/outlet"
)

// OutletLookup renders outlet knowledge into reply text. Store failures
// degrade to an apology; the tool's contract is a plain string.
type OutletLookup struct {
	store outletx.Store
}

func NewOutletLookup(store outletx.Store) *OutletLookup {
	return &OutletLookup{store: store}
}

func (l *OutletLookup) Lookup(ctx context.Context, query contractx.OutletQuery) string {
	if query.Location == "" {
		return "I need a specific outlet (like SS2, SS15, or Damansara) to give you information."
	}

	record, err := l.store.Find(ctx, query.Location)
	if errors.Is(err, outletx.ErrOutletNotFound) {
		return fmt.Sprintf("I don't have detailed information for an outlet specifically called '%s'. Did you mean SS2, SS15, or Damansara?", query.Location)
	}
	if err != nil {
		log.Error().Err(err).Str("location", query.Location).Msg("outlet store lookup failed")
		return "I'm having trouble reaching outlet information right now. Please try again in a moment."
	}

	if contractx.IsGeneralArea(record.Name) {
		if query.InfoType != "" {
			return fmt.Sprintf("We have several outlets in %s. Which specific one (e.g., SS2, SS15, Damansara) are you interested in for its %s?",
				record.Name, query.InfoType.Human())
		}
		return fmt.Sprintf("Yes, we have outlets in %s, including %s. Which specific outlet would you like to know about?",
			record.Name, record.Description)
	}

	switch query.InfoType {
	case contractx.InfoOpeningHours:
		return fmt.Sprintf("The %s outlet opens at %s.", record.Name, record.OpeningTime)
	case contractx.InfoClosingHours:
		return fmt.Sprintf("The %s outlet closes at %s.", record.Name, record.ClosingTime)
	case contractx.InfoHours:
		return fmt.Sprintf("The %s outlet opens at %s and closes at %s.", record.Name, record.OpeningTime, record.ClosingTime)
	default:
		return fmt.Sprintf("The %s outlet is %s. Would you like to know its opening or closing hours?", record.Name, record.Description)
	}
}

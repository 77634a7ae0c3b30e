package conversationnode

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/kopibot/agent/contract"
	memoryx "github.com/tanpawarit/kopibot/agent/memory"
)

// RestoreTranscript warms an empty in-memory session from the archive, so a
// conversation survives a process restart. Archive failures degrade to a
// fresh session rather than failing the exchange.
func RestoreTranscript(
	ctx context.Context,
	in *GraphState,
	archive contractx.TranscriptArchive,
) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	if in.Session.Len() > 0 {
		return in, nil
	}

	turns, err := archive.Load(ctx, in.SessionID)
	if err != nil {
		if !errors.Is(err, memoryx.ErrTranscriptNotFound) {
			log.Warn().Err(err).Str("session_id", in.SessionID).Msg("transcript restore failed, starting fresh")
		}
		return in, nil
	}

	in.Session.Restore(turns)
	return in, nil
}

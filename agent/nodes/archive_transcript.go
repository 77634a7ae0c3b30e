package conversationnode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/kopibot/agent/contract"
)

// ArchiveTranscript persists the session transcript after each exchange.
// The archive is best effort: a failed save must not lose the reply.
func ArchiveTranscript(
	ctx context.Context,
	in *GraphState,
	archive contractx.TranscriptArchive,
) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	if err := archive.Save(ctx, in.SessionID, in.Session.Turns()); err != nil {
		log.Warn().Err(err).Str("session_id", in.SessionID).Msg("transcript archive failed")
	}
	return in, nil
}

// Package conversation is the front door of the agent: it owns the
// per-exchange pipeline that plans an action for each user message, runs the
// matching tool, and records exactly one (user, agent) turn pair per call.
package conversation

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/tanpawarit/kopibot/agent/contract"
	memoryx "github.com/tanpawarit/kopibot/agent/memory"
	nodex "github.com/tanpawarit/kopibot/agent/nodes"
	plannerx "github.com/tanpawarit/kopibot/agent/planner"
)

var (
	ErrInvalidMessage = nodex.ErrInvalidMessage
	ErrInvalidSession = nodex.ErrInvalidSession
)

type Service struct {
	memory  *memoryx.Store
	tools   contractx.Toolset
	archive contractx.TranscriptArchive
	planner nodex.ActionPlanner

	graphRunner compose.Runnable[*nodex.GraphState, nodex.GraphOutput]

	now func() time.Time
}

func New(
	memory *memoryx.Store,
	tools contractx.Toolset,
	archive contractx.TranscriptArchive,
) (*Service, error) {
	if memory == nil {
		return nil, errors.New("session memory store is required")
	}
	if tools == nil {
		return nil, errors.New("toolset is required")
	}
	if archive == nil {
		archive = noopArchive{}
	}

	s := &Service{
		memory:  memory,
		tools:   tools,
		archive: archive,
		planner: plannerx.New(),
		now:     time.Now,
	}

	graphRunner, err := s.compileExchangeGraph(context.Background())
	if err != nil {
		return nil, err
	}
	s.graphRunner = graphRunner

	return s, nil
}

// Handle runs one full exchange for the session and returns the agent reply.
// The session's exchange gate is held for the whole pipeline, so concurrent
// calls for the same session serialize while other sessions proceed freely.
func (s *Service) Handle(ctx context.Context, sessionID string, text string) (string, error) {
	st, err := nodex.ValidateRequest(nodex.GraphInput{
		SessionID: sessionID,
		Text:      text,
	}, s.now)
	if err != nil {
		return "", err
	}

	sess := s.memory.Get(st.SessionID)
	st.Session = sess

	sess.Lock()
	defer sess.Unlock()

	out, err := s.graphRunner.Invoke(ctx, st)
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}

type noopArchive struct{}

func (noopArchive) Save(context.Context, string, []contractx.Turn) error {
	return nil
}

func (noopArchive) Load(context.Context, string) ([]contractx.Turn, error) {
	return nil, memoryx.ErrTranscriptNotFound
}

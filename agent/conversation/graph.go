package conversation

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	nodex "github.com/tanpawarit/kopibot/agent/nodes"
)

func (s *Service) compileExchangeGraph(
	ctx context.Context,
) (compose.Runnable[*nodex.GraphState, nodex.GraphOutput], error) {
	graph := compose.NewGraph[*nodex.GraphState, nodex.GraphOutput]()

	if err := graph.AddLambdaNode("restore_transcript",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.RestoreTranscript(ctx, in, s.archive)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node restore_transcript: %w", err)
	}

	if err := graph.AddLambdaNode("plan_action",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.PlanAction(in, s.planner)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node plan_action: %w", err)
	}

	if err := graph.AddLambdaNode("dispatch_action",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.DispatchAction(ctx, in, s.tools)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node dispatch_action: %w", err)
	}

	if err := graph.AddLambdaNode("record_turns",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.RecordTurns(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node record_turns: %w", err)
	}

	if err := graph.AddLambdaNode("archive_transcript",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ArchiveTranscript(ctx, in, s.archive)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node archive_transcript: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.FinalizeReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	edges := [][2]string{
		{compose.START, "restore_transcript"},
		{"restore_transcript", "plan_action"},
		{"plan_action", "dispatch_action"},
		{"dispatch_action", "record_turns"},
		{"record_turns", "archive_transcript"},
		{"archive_transcript", "finalize_reply"},
		{"finalize_reply", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("conversation.exchange"))
	if err != nil {
		return nil, fmt.Errorf("compile conversation graph: %w", err)
	}
	return runner, nil
}

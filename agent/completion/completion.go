// Package completion turns free-form chat into model completions. It owns the
// general-conversation graph: system prompt, prior transcript, then the new
// user message. Callers pass history explicitly so the package stays free of
// session bookkeeping.
package completion

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/kopibot/agent/contract"
)

// GeneralChat answers conversational messages with full session history in
// the prompt window.
type GeneralChat struct {
	runner compose.Runnable[map[string]any, *schema.Message]
}

var _ contractx.Completer = (*GeneralChat)(nil)

func NewGeneralChat(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
) (*GeneralChat, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("%w: chat model is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: general chat system prompt", contractx.ErrPromptMissing)
	}

	runner, err := compileGeneralChatGraph(ctx, chatModel, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: compile general chat graph: %v", contractx.ErrModelInvoke, err)
	}

	return &GeneralChat{runner: runner}, nil
}

// Complete renders history plus the new input into the chat template and
// invokes the model. The returned text is trimmed and never empty.
func (g *GeneralChat) Complete(ctx context.Context, history []contractx.Turn, input string) (string, error) {
	out, err := g.runner.Invoke(ctx, map[string]any{
		"history": toSchemaMessages(history),
		"input":   input,
	})
	if err != nil {
		return "", fmt.Errorf("%w: general chat invoke: %v", contractx.ErrModelInvoke, err)
	}
	if out == nil {
		return "", fmt.Errorf("%w: general chat returned nil message", contractx.ErrModelInvoke)
	}

	reply := strings.TrimSpace(out.Content)
	if reply == "" {
		return "", fmt.Errorf("%w: general chat returned empty content", contractx.ErrModelInvoke)
	}
	return reply, nil
}

func compileGeneralChatGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
) (compose.Runnable[map[string]any, *schema.Message], error) {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{input}"),
	)

	graph := compose.NewGraph[map[string]any, *schema.Message]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add general chat prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add general chat model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return nil, fmt.Errorf("add general chat edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return nil, fmt.Errorf("add general chat edge prompt->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add general chat edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("completion.general_chat_graph"))
	if err != nil {
		return nil, fmt.Errorf("compile general chat graph: %w", err)
	}
	return runner, nil
}

func toSchemaMessages(turns []contractx.Turn) []*schema.Message {
	msgs := make([]*schema.Message, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case contractx.RoleAgent:
			msgs = append(msgs, schema.AssistantMessage(turn.Text, nil))
		default:
			msgs = append(msgs, schema.UserMessage(turn.Text))
		}
	}
	return msgs
}

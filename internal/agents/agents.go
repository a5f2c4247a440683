// Package agents implements the research, qualification, and drafting
// providers on top of go-agents. Each call composes the stage prompt from
// the prompts domain, sends one chat request, and parses a JSON response.
package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/JaimeStill/leadpipe/internal/prompts"
	"github.com/JaimeStill/leadpipe/internal/workflow"
)

// ChatFunc sends a prompt to a model and returns the response text.
type ChatFunc func(ctx context.Context, prompt string) (string, error)

// AgentChat returns a ChatFunc that creates a go-agents agent from cfg for
// every call.
func AgentChat(cfg gaconfig.AgentConfig) ChatFunc {
	return func(ctx context.Context, prompt string) (string, error) {
		a, err := agent.New(&cfg)
		if err != nil {
			return "", fmt.Errorf("create agent: %w", err)
		}

		resp, err := a.Chat(ctx, prompt)
		if err != nil {
			return "", fmt.Errorf("chat call: %w", err)
		}

		return resp.Content(), nil
	}
}

// Provider implements workflow.Researcher, workflow.Classifier, and
// workflow.Drafter. Every error it returns wraps workflow.ErrProvider.
type Provider struct {
	chat    ChatFunc
	prompts prompts.System
	logger  *slog.Logger
}

var (
	_ workflow.Researcher = (*Provider)(nil)
	_ workflow.Classifier = (*Provider)(nil)
	_ workflow.Drafter    = (*Provider)(nil)
)

func New(chat ChatFunc, ps prompts.System, logger *slog.Logger) *Provider {
	return &Provider{
		chat:    chat,
		prompts: ps,
		logger:  logger.With("system", "agents"),
	}
}

// ComposePrompt joins the stage instructions, the stage response spec, and
// the JSON encoded input.
func ComposePrompt(ctx context.Context, ps prompts.System, stage prompts.Stage, input any) (string, error) {
	instructions, err := ps.Instructions(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", stage, err)
	}

	spec, err := ps.Spec(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", stage, err)
	}

	data, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize %s input: %w", stage, err)
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\n")
	sb.WriteString(spec)
	sb.WriteString("\n\nInput:\n\n")
	sb.Write(data)

	return sb.String(), nil
}

func (p *Provider) complete(ctx context.Context, stage prompts.Stage, input any) (string, error) {
	prompt, err := ComposePrompt(ctx, p.prompts, stage, input)
	if err != nil {
		return "", fmt.Errorf("%w: %w", workflow.ErrProvider, err)
	}

	content, err := p.chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", workflow.ErrProvider, stage, err)
	}

	p.logger.DebugContext(ctx, "agent response", "stage", stage, "length", len(content))
	return content, nil
}

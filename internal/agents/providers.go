package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/leadpipe/internal/leads"
	"github.com/JaimeStill/leadpipe/internal/prompts"
	"github.com/JaimeStill/leadpipe/internal/workflow"
	"github.com/JaimeStill/leadpipe/pkg/formatting"
)

type researchResponse struct {
	Summary string `json:"summary"`
}

type qualifyInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Company  string `json:"company,omitempty"`
	Message  string `json:"message"`
	Research string `json:"research"`
}

type qualifyResponse struct {
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

type draftInput struct {
	Research      string                 `json:"research"`
	Qualification workflow.Qualification `json:"qualification"`
}

type draftResponse struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (p *Provider) Research(ctx context.Context, req workflow.ResearchRequest) (string, error) {
	content, err := p.complete(ctx, prompts.StageResearch, req)
	if err != nil {
		return "", err
	}

	parsed, err := formatting.Parse[researchResponse](content)
	if err != nil {
		return "", fmt.Errorf("%w: research: %w", workflow.ErrProvider, err)
	}

	summary := strings.TrimSpace(parsed.Summary)
	if summary == "" {
		return "", fmt.Errorf("%w: research: empty summary", workflow.ErrProvider)
	}
	return summary, nil
}

// Classify rejects any category outside the four known values with
// leads.ErrInvalidCategory.
func (p *Provider) Classify(ctx context.Context, lead leads.Lead, research string) (workflow.Qualification, error) {
	content, err := p.complete(ctx, prompts.StageQualify, qualifyInput{
		Name:     lead.Name,
		Email:    lead.Email,
		Company:  lead.CompanyName(),
		Message:  lead.Message,
		Research: research,
	})
	if err != nil {
		return workflow.Qualification{}, err
	}

	parsed, err := formatting.Parse[qualifyResponse](content)
	if err != nil {
		return workflow.Qualification{}, fmt.Errorf("%w: qualify: %w", workflow.ErrProvider, err)
	}

	category, err := leads.ParseCategory(parsed.Category)
	if err != nil {
		return workflow.Qualification{}, fmt.Errorf("%w: qualify: %w", workflow.ErrProvider, err)
	}

	return workflow.Qualification{
		Category: category,
		Reason:   strings.TrimSpace(parsed.Reason),
	}, nil
}

// Draft returns the email as a Subject line, a blank line, and the body.
func (p *Provider) Draft(ctx context.Context, research string, q workflow.Qualification) (string, error) {
	content, err := p.complete(ctx, prompts.StageDraft, draftInput{
		Research:      research,
		Qualification: q,
	})
	if err != nil {
		return "", err
	}

	parsed, err := formatting.Parse[draftResponse](content)
	if err != nil {
		return "", fmt.Errorf("%w: draft: %w", workflow.ErrProvider, err)
	}

	body := strings.TrimSpace(parsed.Body)
	if body == "" {
		return "", fmt.Errorf("%w: draft: empty body", workflow.ErrProvider)
	}

	subject := strings.TrimSpace(parsed.Subject)
	if subject == "" {
		return body, nil
	}
	return "Subject: " + subject + "\n\n" + body, nil
}

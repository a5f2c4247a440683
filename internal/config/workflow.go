package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/JaimeStill/leadpipe/internal/scoring"
)

// Approval channels.
const (
	ChannelBroker = "broker"
	ChannelMail   = "mail"
)

// WorkflowConfig controls when lead workflows run and where approval
// requests go.
type WorkflowConfig struct {
	// MinTier is the lowest tier whose submissions start a workflow run.
	MinTier         string   `toml:"min_tier"`
	ApprovalChannel string   `toml:"approval_channel"`
	Reviewers       []string `toml:"reviewers"`
	// Concurrency bounds batch re-runs.
	Concurrency int `toml:"concurrency"`
}

func (c *WorkflowConfig) Tier() scoring.Tier {
	t, _ := scoring.ParseTier(c.MinTier)
	return t
}

func (c *WorkflowConfig) Finalize() error {
	if c.MinTier == "" {
		c.MinTier = string(scoring.TierHot)
	}
	if c.ApprovalChannel == "" {
		c.ApprovalChannel = ChannelBroker
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}

	if v := os.Getenv("LEADPIPE_WORKFLOW_MIN_TIER"); v != "" {
		c.MinTier = v
	}
	if v := os.Getenv("LEADPIPE_WORKFLOW_APPROVAL_CHANNEL"); v != "" {
		c.ApprovalChannel = v
	}
	if v := os.Getenv("LEADPIPE_WORKFLOW_REVIEWERS"); v != "" {
		c.Reviewers = nil
		for r := range strings.SplitSeq(v, ",") {
			if r = strings.TrimSpace(r); r != "" {
				c.Reviewers = append(c.Reviewers, r)
			}
		}
	}
	if v := os.Getenv("LEADPIPE_WORKFLOW_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Concurrency = n
		}
	}

	if _, err := scoring.ParseTier(c.MinTier); err != nil {
		return fmt.Errorf("invalid min_tier: %w", err)
	}
	switch c.ApprovalChannel {
	case ChannelBroker:
	case ChannelMail:
		if len(c.Reviewers) == 0 {
			return fmt.Errorf("reviewers required for mail approval channel")
		}
	default:
		return fmt.Errorf("invalid approval_channel: %q", c.ApprovalChannel)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be positive")
	}
	return nil
}

func (c *WorkflowConfig) Merge(overlay *WorkflowConfig) {
	if overlay.MinTier != "" {
		c.MinTier = overlay.MinTier
	}
	if overlay.ApprovalChannel != "" {
		c.ApprovalChannel = overlay.ApprovalChannel
	}
	if overlay.Reviewers != nil {
		c.Reviewers = overlay.Reviewers
	}
	if overlay.Concurrency != 0 {
		c.Concurrency = overlay.Concurrency
	}
}

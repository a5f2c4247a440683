package config

import (
	"fmt"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvAgentProviderName = "LEADPIPE_AGENT_PROVIDER_NAME"
	EnvAgentBaseURL      = "LEADPIPE_AGENT_BASE_URL"
	EnvAgentToken        = "LEADPIPE_AGENT_TOKEN"
	EnvAgentModelName    = "LEADPIPE_AGENT_MODEL_NAME"
)

// FinalizeAgent fills c from go-agents DefaultAgentConfig, applies
// LEADPIPE_AGENT_* overrides, and validates the result.
func FinalizeAgent(c *gaconfig.AgentConfig) error {
	defaults := gaconfig.DefaultAgentConfig()
	defaults.Merge(c)
	*c = defaults

	if c.Provider == nil {
		c.Provider = &gaconfig.ProviderConfig{}
	}
	if c.Provider.Options == nil {
		c.Provider.Options = make(map[string]any)
	}
	if c.Model == nil {
		c.Model = &gaconfig.ModelConfig{}
	}

	if v := os.Getenv(EnvAgentProviderName); v != "" {
		c.Provider.Name = v
	}
	if v := os.Getenv(EnvAgentBaseURL); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv(EnvAgentModelName); v != "" {
		c.Model.Name = v
	}
	if v := os.Getenv(EnvAgentToken); v != "" {
		c.Provider.Options["token"] = v
	}

	switch {
	case c.Name == "":
		return fmt.Errorf("name required")
	case c.Provider.Name == "":
		return fmt.Errorf("provider name required")
	}
	return nil
}

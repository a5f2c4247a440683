// Package infrastructure assembles the shared systems every domain needs:
// lifecycle coordination, logging, the database pool, the approval broker,
// and the SMTP mailer.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/leadpipe/internal/config"
	"github.com/JaimeStill/leadpipe/pkg/broker"
	"github.com/JaimeStill/leadpipe/pkg/database"
	"github.com/JaimeStill/leadpipe/pkg/lifecycle"
	"github.com/JaimeStill/leadpipe/pkg/mailer"
)

type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Broker    broker.System
	Mailer    mailer.System
}

// New creates an Infrastructure from the application configuration.
// The broker is only created when approvals are published to it.
// Systems are not started; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger := cfg.Logging.NewLogger(os.Stderr)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	infra := &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Database:  db,
		Mailer:    mailer.New(&cfg.Mail, logger),
	}

	if cfg.Workflow.ApprovalChannel == config.ChannelBroker {
		infra.Broker = broker.New(&cfg.Broker, logger)
	}

	return infra, nil
}

// Start registers startup and shutdown hooks for every connected system.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if i.Broker != nil {
		if err := i.Broker.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("broker start failed: %w", err)
		}
	}
	return nil
}

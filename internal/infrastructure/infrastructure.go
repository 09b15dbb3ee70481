// Package infrastructure assembles the systems every module shares:
// lifecycle coordination, logging, the registration database, and object storage.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/regdesk/internal/config"
	"github.com/JaimeStill/regdesk/pkg/database"
	"github.com/JaimeStill/regdesk/pkg/lifecycle"
	"github.com/JaimeStill/regdesk/pkg/logging"
	"github.com/JaimeStill/regdesk/pkg/storage"
)

// Infrastructure holds the shared systems. Build it with New and call Start
// before serving requests.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
}

// New initializes every system from cfg without starting any of them.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
	}, nil
}

// Start registers each system's startup and shutdown hooks.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}

// Scoped returns a copy whose logger carries the module attribute.
func (i *Infrastructure) Scoped(module string) *Infrastructure {
	return &Infrastructure{
		Lifecycle: i.Lifecycle,
		Logger:    i.Logger.With("module", module),
		Database:  i.Database,
		Storage:   i.Storage,
	}
}

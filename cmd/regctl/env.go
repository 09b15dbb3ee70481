package main

import (
	"github.com/JaimeStill/regdesk/internal/config"
	"github.com/JaimeStill/regdesk/internal/infrastructure"
	"github.com/JaimeStill/regdesk/internal/registrations"
)

// env is what every database-backed subcommand needs.
type env struct {
	cfg           *config.Config
	infra         *infrastructure.Infrastructure
	registrations registrations.System
}

func openEnv() (*env, error) {
	cfg, err := config.LoadDir(configDir)
	if err != nil {
		return nil, err
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:   cfg,
		infra: infra,
		registrations: registrations.New(
			infra.Database.Connection(),
			infra.Logger.With("module", "regctl"),
			cfg.API.Pagination,
		),
	}, nil
}

func (e *env) Close() error {
	return e.infra.Database.Connection().Close()
}

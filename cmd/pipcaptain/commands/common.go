package commands

import (
	"fmt"

	"github.com/ecairns22/PipCaptain/internal/config"
	ghclient "github.com/ecairns22/PipCaptain/internal/github"
	"github.com/ecairns22/PipCaptain/internal/orchestrator"
	"github.com/ecairns22/PipCaptain/internal/pip"
	"github.com/ecairns22/PipCaptain/internal/state"
)

// buildOrchestrator loads config and constructs all parts into an
// Orchestrator. The caller is responsible for calling the returned
// cleanup function.
func buildOrchestrator() (*orchestrator.Orchestrator, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := state.Open(cfg.State.Driver, cfg.State.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("opening state db: %w", err)
	}

	// The GitHub client is optional; only fetch needs it.
	var gh *ghclient.Client
	if cfg.GitHub.Token != "" {
		gh, err = ghclient.New(cfg.GitHub.Token, cfg.GitHub.Owner, cfg.GitHub.WheelPattern, cfg.GitHub.WheelDir)
		if err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("creating github client: %w", err)
		}
	}

	p := pip.New(cfg.Env.Root, pip.WithCacheDir(cfg.Env.CacheDir))

	orc := orchestrator.New(cfg, store, p, gh)

	cleanup := func() {
		store.Close()
	}

	return orc, cleanup, nil
}

// buildStateOnly opens just the state store (for read-only commands like list/history).
func buildStateOnly() (*state.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return state.Open(cfg.State.Driver, cfg.State.DSN)
}

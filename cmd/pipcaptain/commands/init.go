package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ecairns22/PipCaptain/internal/config"
	"github.com/ecairns22/PipCaptain/internal/pip"
	"github.com/ecairns22/PipCaptain/internal/state"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "First-time setup: write config template, check the environment, create the state database",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	// 1. Write template config if missing
	configPath := config.DefaultPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			return fmt.Errorf("creating config dir: %w", err)
		}
		if err := os.WriteFile(configPath, []byte(config.TemplateConfig()), 0600); err != nil {
			return fmt.Errorf("writing config template: %w", err)
		}
		fmt.Fprintf(w, "  wrote config template to %s\n", configPath)
		fmt.Fprintf(w, "\nEdit %s with your settings, then run 'pipcaptain init' again.\n", configPath)
		return nil
	}

	// 2. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	fmt.Fprintf(w, "  config loaded from %s\n", configPath)

	// 3. Check the environment root and pip
	info, err := os.Stat(cfg.Env.Root)
	if err != nil {
		return fmt.Errorf("environment root %s: %w", cfg.Env.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("environment root %s is not a directory", cfg.Env.Root)
	}
	p := pip.New(cfg.Env.Root)
	if p.Exists() {
		fmt.Fprintf(w, "  pip at %s: OK\n", p.Path())
	} else {
		fmt.Fprintf(w, "  pip at %s: MISSING (create the virtualenv first)\n", p.Path())
	}

	// 4. Create the wheel directory
	if err := os.MkdirAll(cfg.GitHub.WheelDir, 0755); err != nil {
		return fmt.Errorf("creating wheel dir %s: %w", cfg.GitHub.WheelDir, err)
	}
	fmt.Fprintf(w, "  wheel dir %s: OK\n", cfg.GitHub.WheelDir)

	// 5. Initialize the state database
	if cfg.State.Driver == "sqlite" {
		if err := os.MkdirAll(filepath.Dir(cfg.State.DSN), 0755); err != nil {
			return fmt.Errorf("creating state dir: %w", err)
		}
	}
	store, err := state.Open(cfg.State.Driver, cfg.State.DSN)
	if err != nil {
		return fmt.Errorf("initializing state database: %w", err)
	}
	store.Close()
	fmt.Fprintf(w, "  state database: OK\n")

	fmt.Fprintf(w, "\nPipCaptain initialized successfully.\n")
	return nil
}

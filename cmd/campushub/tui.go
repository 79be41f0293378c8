package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"campushub/internal/assistant"
	"campushub/internal/campus"
	"campushub/internal/config"
	"campushub/internal/eventbus"
	"campushub/internal/ui"
)

func assistantConfig(cfg *config.Config) assistant.Config {
	return assistant.Config{
		APIKey:       cfg.Assistant.APIKey,
		BaseURL:      cfg.Assistant.BaseURL,
		Model:        cfg.Assistant.Model,
		SystemPrompt: cfg.Assistant.SystemPrompt,
		Timeout:      cfg.Assistant.Timeout(),
	}
}

// runTUI starts the interactive browser. stdout belongs to the UI, so logs
// go to the configured file.
func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	logFile, err := os.OpenFile(a.cfg.Log.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile, a.cfg.Log.Level, a.verbose)

	bus := eventbus.New(logger)
	defer bus.Close()

	bus.Subscribe(eventbus.EventEntityMutated, func(e eventbus.DomainEvent) {
		if m, ok := e.(eventbus.EntityMutatedEvent); ok {
			logger.Debug("entity mutated", "page", m.Page, "id", m.EntityID, "kind", m.Kind, "flags", m.Flags.Names())
		}
	})
	bus.Subscribe(eventbus.EventCriteriaChanged, func(e eventbus.DomainEvent) {
		if c, ok := e.(eventbus.CriteriaChangedEvent); ok {
			logger.Debug("criteria changed", "page", c.Page, "visible", c.Visible)
		}
	})
	bus.Subscribe(eventbus.EventAssistantReplied, func(e eventbus.DomainEvent) {
		if r, ok := e.(eventbus.AssistantRepliedEvent); ok && r.Err != "" {
			logger.Warn("assistant failed", "err", r.Err)
		}
	})

	registry, err := campus.NewRegistry(campus.Options{
		Clock:  a.clock,
		Logger: logger,
		Bus:    bus,
	})
	if err != nil {
		return err
	}

	chat := assistant.NewChat(assistant.NewClient(assistantConfig(a.cfg), logger), bus)
	model := ui.NewModel(ui.Options{
		Registry: registry,
		Config:   a.cfg,
		Bus:      bus,
		Chat:     chat,
		Logger:   logger,
	})
	defer model.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting ui", "start_page", a.cfg.StartPage, "config", a.configSvc.Path())
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("ui failed", "err", err)
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("ui exited")
	return nil
}

package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/dex/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoSource is returned when Run is called without a catalog source.
var ErrNoSource = errors.New("tui: catalog source is required")

// New builds the browse model without starting a program.
func New(ctx context.Context, opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Source == nil {
		return Model{}, ErrNoSource
	}
	return newModel(ctx, cfg), nil
}

// Run shows the browse screen until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts ...Option) error {
	m, err := New(ctx, opts...)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if m.session != nil {
		cancel := m.session.Subscribe(func(*model.User) {
			p.Send(sessionChangedMsg{})
		})
		defer cancel()
	}

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run browser: %w", err)
	}
	return nil
}

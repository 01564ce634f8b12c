package tui

import (
	"time"

	"github.com/Veraticus/dex/internal/catalog"
	"github.com/Veraticus/dex/internal/session"
	"github.com/Veraticus/dex/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme       themes.Theme
	Source      catalog.Source
	Session     *session.Session
	LoadTimeout time.Duration
	PageSize    int
	Width       int
	Height      int
	ShowHelp    bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:       themes.Default,
		PageSize:    catalog.DefaultPageSize,
		LoadTimeout: 2 * time.Minute,
		Width:       100,
		Height:      30,
		ShowHelp:    true,
	}
}

// WithSource sets where the catalog is loaded from.
func WithSource(src catalog.Source) Option {
	return func(c *Config) {
		c.Source = src
	}
}

// WithSession sets the session shown in the navigation bar.
func WithSession(s *session.Session) Option {
	return func(c *Config) {
		c.Session = s
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithPageSize sets how many cards make up a page.
func WithPageSize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.PageSize = n
		}
	}
}

// WithLoadTimeout bounds each catalog load.
func WithLoadTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.LoadTimeout = d
	}
}

// WithHelp toggles the short help footer.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}

// Package server exposes the catalog, accounts and contact form as a JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Veraticus/dex/internal/auth"
	"github.com/Veraticus/dex/internal/catalog"
	"github.com/Veraticus/dex/internal/config"
	"github.com/Veraticus/dex/internal/contact"
	"github.com/Veraticus/dex/internal/model"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// Deps are the services the API serves.
type Deps struct {
	Source   catalog.Source
	Auth     *auth.Service
	Contact  *contact.Service
	PageSize int
}

// Server is the dex JSON API.
type Server struct {
	router   *gin.Engine
	source   catalog.Source
	auth     *auth.Service
	contact  *contact.Service
	working  []model.Pokemon
	types    []string
	cfg      config.ServerConfig
	mu       sync.RWMutex
	pageSize int
}

// New creates a server and registers its routes. The catalog is empty until
// Load is called.
func New(deps Deps, cfg config.ServerConfig) *Server {
	pageSize := deps.PageSize
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}

	s := &Server{
		source:   deps.Source,
		auth:     deps.Auth,
		contact:  deps.Contact,
		cfg:      cfg,
		pageSize: pageSize,
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	if corsCfg := CORSConfigFor(cfg.AllowOrigins); corsCfg.Enabled() {
		router.Use(CORS(corsCfg))
	}

	router.GET("/healthz", s.health)

	api := router.Group("/api")
	api.GET("/pokemon", s.listPokemon)
	api.GET("/pokemon/:name", s.getPokemon)
	api.GET("/types", s.listTypes)
	api.GET("/nav", s.optionalUser(), s.navItems)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)

	signedIn := authGroup.Group("", s.requireUser())
	signedIn.POST("/logout", s.logout)
	signedIn.GET("/me", s.me)
	signedIn.PUT("/profile", s.updateProfile)

	api.POST("/contact", s.submitContact)

	s.router = router
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Load fetches the catalog and publishes whichever halves succeeded. A
// failure is returned but leaves the server usable.
func (s *Server) Load(ctx context.Context) error {
	snap := catalog.Fetch(ctx, s.source)
	b := catalog.NewBrowser(s.source, s.pageSize)
	err := b.Publish(snap)

	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.WorkingErr == nil {
		s.working = b.Working()
	}
	if snap.TypesErr == nil {
		s.types = b.Types()
	}
	return err
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

func (s *Server) snapshot() ([]model.Pokemon, []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.working, s.types
}

func (s *Server) health(c *gin.Context) {
	working, types := s.snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"pokemon": len(working),
		"types":   len(types),
	})
}

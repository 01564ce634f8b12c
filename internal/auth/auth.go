// Package auth signs users up, in and out against an account Provider. The
// CLI and TUI share one local Session; API callers carry bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/dex/internal/common"
	"github.com/Veraticus/dex/internal/model"
	"github.com/Veraticus/dex/internal/service"
	"github.com/Veraticus/dex/internal/session"
)

// Auth errors.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrAlreadySignedIn    = errors.New("already signed in")
	ErrNotSignedIn        = errors.New("not signed in")
	ErrInvalidCredentials = common.ErrInvalidCredentials
)

// Provider is the account backend. *storage.SQLiteStorage implements it.
type Provider = service.AccountStore

type registration struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type profile struct {
	DisplayName string `json:"display_name" validate:"max=64"`
	PhotoURL    string `json:"photo_url" validate:"omitempty,url"`
}

// Service owns the session writer: it is the only code that changes who is
// signed in.
type Service struct {
	provider Provider
	session  *session.Session
	writer   *session.Writer
}

// NewService creates a Service that publishes sign-in changes through w.
func NewService(provider Provider, w *session.Writer) *Service {
	return &Service{
		provider: provider,
		session:  w.Session(),
		writer:   w,
	}
}

// Session returns the read side of the signed-in state.
func (s *Service) Session() *session.Session {
	return s.session
}

// Current returns the signed-in user, or nil.
func (s *Service) Current() *model.User {
	return s.session.Current()
}

// Register creates an account and signs it in. The account and its session
// are stored together, so a failure leaves no account behind.
func (s *Service) Register(ctx context.Context, email, password string) (*model.User, error) {
	if s.session.SignedIn() {
		return nil, ErrAlreadySignedIn
	}

	user, _, err := s.register(ctx, email, password, model.ScopeLocal)
	if err != nil {
		return nil, err
	}
	s.writer.Set(user)
	slog.Info("Registered account", "user_id", user.ID)
	return user, nil
}

// Login signs in an existing account, replacing any current session.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.verify(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if _, err := s.provider.SaveSession(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	s.writer.Set(user)
	slog.Info("Logged in", "user_id", user.ID)
	return user, nil
}

// RegisterToken creates an account and returns a bearer token for it. The
// local session is not touched.
func (s *Service) RegisterToken(ctx context.Context, email, password string) (*model.User, string, error) {
	user, token, err := s.register(ctx, email, password, model.ScopeAPI)
	if err != nil {
		return nil, "", err
	}
	slog.Info("Registered account over the API", "user_id", user.ID)
	return user, token, nil
}

// LoginToken checks credentials and issues a new bearer token. The local
// session is not touched.
func (s *Service) LoginToken(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.verify(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.provider.CreateToken(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

// Authenticate resolves a bearer token to its user. Empty and unknown
// tokens return ErrNotSignedIn.
func (s *Service) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrNotSignedIn
	}
	user, err := s.provider.TokenUser(ctx, token)
	if errors.Is(err, common.ErrNotFound) {
		return nil, ErrNotSignedIn
	}
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	return user, nil
}

// RevokeToken deletes a bearer token. Revoking an unknown token is not an
// error.
func (s *Service) RevokeToken(ctx context.Context, token string) error {
	if err := s.provider.DeleteToken(ctx, token); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// Logout ends the persisted session and signs out. Logging out while signed
// out is not an error.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.provider.DeleteSession(ctx); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	s.writer.Clear()
	return nil
}

// Restore loads the persisted session into the process Session. It returns
// nil without error when nobody is signed in.
func (s *Service) Restore(ctx context.Context) (*model.User, error) {
	user, err := s.provider.ActiveSession(ctx)
	if errors.Is(err, common.ErrNotFound) {
		s.writer.Clear()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	s.writer.Set(user)
	return user, nil
}

// UpdateProfile changes the signed-in user's display name and photo.
func (s *Service) UpdateProfile(ctx context.Context, displayName, photoURL string) (*model.User, error) {
	current := s.session.Current()
	if current == nil {
		return nil, ErrNotSignedIn
	}
	return s.UpdateProfileOf(ctx, current, displayName, photoURL)
}

// UpdateProfileOf changes user's display name and photo. The local session
// follows the change when user is the one signed in.
func (s *Service) UpdateProfileOf(ctx context.Context, user *model.User, displayName, photoURL string) (*model.User, error) {
	if user == nil {
		return nil, ErrNotSignedIn
	}

	in := profile{DisplayName: strings.TrimSpace(displayName), PhotoURL: strings.TrimSpace(photoURL)}
	if err := common.Validate(in); err != nil {
		return nil, err
	}

	updated, err := s.provider.UpdateProfile(ctx, user.ID, in.DisplayName, in.PhotoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if current := s.session.Current(); current != nil && current.ID == updated.ID {
		s.writer.Set(updated)
	}
	return updated, nil
}

func (s *Service) register(ctx context.Context, email, password string, scope model.SessionScope) (*model.User, string, error) {
	in := registration{Email: normalizeEmail(email), Password: password}
	if err := common.Validate(in); err != nil {
		return nil, "", err
	}

	user, token, err := s.provider.RegisterAccount(ctx, in.Email, in.Password, scope)
	if errors.Is(err, common.ErrDuplicateEntry) {
		return nil, "", fmt.Errorf("%w: %s", ErrEmailTaken, in.Email)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to register: %w", err)
	}
	return user, token, nil
}

func (s *Service) verify(ctx context.Context, email, password string) (*model.User, error) {
	in := credentials{Email: normalizeEmail(email), Password: password}
	if err := common.Validate(in); err != nil {
		return nil, err
	}

	user, err := s.provider.VerifyPassword(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			slog.Debug("Rejected login", "email", in.Email)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

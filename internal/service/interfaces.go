// Package service defines the interfaces between dex's components and its
// persistence layer.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/dex/internal/model"
)

// AccountStore persists accounts, the local sign-in session and API tokens.
type AccountStore interface {
	// CreateAccount stores a new account with a hashed password.
	// A duplicate email returns common.ErrDuplicateEntry.
	CreateAccount(ctx context.Context, email, password string) (*model.User, error)
	// RegisterAccount creates an account and a session of scope in one
	// transaction. Nothing is stored if either step fails.
	RegisterAccount(ctx context.Context, email, password string, scope model.SessionScope) (*model.User, string, error)
	// VerifyPassword returns the account for email if password matches.
	// Unknown emails and wrong passwords both return common.ErrInvalidCredentials.
	VerifyPassword(ctx context.Context, email, password string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID, displayName, photoURL string) (*model.User, error)

	// SaveSession records userID as signed in and returns the session token.
	SaveSession(ctx context.Context, userID string) (string, error)
	// ActiveSession returns the signed-in user, or common.ErrNotFound.
	ActiveSession(ctx context.Context) (*model.User, error)
	DeleteSession(ctx context.Context) error

	// CreateToken issues an API bearer token for userID. Tokens accumulate
	// and never replace the local session.
	CreateToken(ctx context.Context, userID string) (string, error)
	// TokenUser returns the owner of an API token, or common.ErrNotFound.
	TokenUser(ctx context.Context, token string) (*model.User, error)
	DeleteToken(ctx context.Context, token string) error
}

// ContactStore persists submitted contact messages.
type ContactStore interface {
	SaveContactMessage(ctx context.Context, msg *model.ContactMessage) error
	GetContactMessages(ctx context.Context) ([]model.ContactMessage, error)
}

// CatalogCache persists the last loaded working set and type registry.
// A zero time means nothing is cached.
type CatalogCache interface {
	CachedPokemon(ctx context.Context) ([]model.Pokemon, time.Time, error)
	SavePokemon(ctx context.Context, pokemon []model.Pokemon) error
	CachedTypes(ctx context.Context) ([]string, time.Time, error)
	SaveTypes(ctx context.Context, types []string) error
	ClearCatalog(ctx context.Context) error
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	AccountStore
	ContactStore
	CatalogCache

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

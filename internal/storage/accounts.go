package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/dex/internal/common"
	"github.com/Veraticus/dex/internal/model"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor for stored password hashes.
var bcryptCost = bcrypt.DefaultCost

// CreateAccount stores a new account. Emails are unique regardless of case.
func (s *SQLiteStorage) CreateAccount(ctx context.Context, email, password string) (*model.User, error) {
	if err := validateCredentials(ctx, email, password); err != nil {
		return nil, err
	}
	return s.createAccountTx(ctx, s.db, email, password)
}

// RegisterAccount creates an account and a session for it in one
// transaction, so a failed sign-in never leaves an orphaned account.
func (s *SQLiteStorage) RegisterAccount(ctx context.Context, email, password string, scope model.SessionScope) (*model.User, string, error) {
	if err := validateCredentials(ctx, email, password); err != nil {
		return nil, "", err
	}

	var (
		user  *model.User
		token string
	)
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		if user, err = s.createAccountTx(ctx, tx, email, password); err != nil {
			return err
		}
		token, err = insertSessionTx(ctx, tx, user.ID, scope)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func validateCredentials(ctx context.Context, email, password string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(email, "email"); err != nil {
		return err
	}
	return validateString(password, "password")
}

func (s *SQLiteStorage) createAccountTx(ctx context.Context, q queryable, email, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:        uuid.New().String(),
		Email:     strings.TrimSpace(email),
		CreatedAt: time.Now().UTC(),
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`, user.ID, user.Email, string(hash), user.CreatedAt)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: account %s", common.ErrDuplicateEntry, user.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return user, nil
}

// VerifyPassword returns the account for email when password matches its hash.
func (s *SQLiteStorage) VerifyPassword(ctx context.Context, email, password string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var user model.User
	var hash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, display_name, photo_url, created_at
		FROM users
		WHERE email = ?
	`, strings.TrimSpace(email)).Scan(
		&user.ID,
		&user.Email,
		&hash,
		&user.DisplayName,
		&user.PhotoURL,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}
	return &user, nil
}

// GetUser retrieves an account by ID.
func (s *SQLiteStorage) GetUser(ctx context.Context, id string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return s.getUserTx(ctx, s.db, id)
}

func (s *SQLiteStorage) getUserTx(ctx context.Context, q queryable, id string) (*model.User, error) {
	var user model.User
	err := q.QueryRowContext(ctx, `
		SELECT id, email, display_name, photo_url, created_at
		FROM users
		WHERE id = ?
	`, id).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.PhotoURL,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpdateProfile sets the display name and photo URL shown in the navigation bar.
func (s *SQLiteStorage) UpdateProfile(ctx context.Context, userID, displayName, photoURL string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	var user *model.User
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE users SET display_name = ?, photo_url = ?
			WHERE id = ?
		`, strings.TrimSpace(displayName), strings.TrimSpace(photoURL), userID)
		if err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return common.ErrNotFound
		}

		user, err = s.getUserTx(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SaveSession records userID as the signed-in account. Any earlier local
// session is replaced; dex keeps one local session at a time.
func (s *SQLiteStorage) SaveSession(ctx context.Context, userID string) (string, error) {
	return s.saveSession(ctx, userID, model.ScopeLocal)
}

// CreateToken issues an API bearer token for userID. Tokens accumulate; each
// client holds its own.
func (s *SQLiteStorage) CreateToken(ctx context.Context, userID string) (string, error) {
	return s.saveSession(ctx, userID, model.ScopeAPI)
}

func (s *SQLiteStorage) saveSession(ctx context.Context, userID string, scope model.SessionScope) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(userID, "userID"); err != nil {
		return "", err
	}

	var token string
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		token, err = insertSessionTx(ctx, tx, userID, scope)
		return err
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// insertSessionTx stores a new session token. A local session replaces the
// previous one.
func insertSessionTx(ctx context.Context, q queryable, userID string, scope model.SessionScope) (string, error) {
	if scope == model.ScopeLocal {
		if _, err := q.ExecContext(ctx, `DELETE FROM sessions WHERE scope = ?`, scope); err != nil {
			return "", fmt.Errorf("failed to clear sessions: %w", err)
		}
	}

	token := uuid.New().String()
	if _, err := q.ExecContext(ctx, `
		INSERT INTO sessions (token, user_id, scope, created_at)
		VALUES (?, ?, ?, ?)
	`, token, userID, scope, time.Now().UTC()); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return token, nil
}

// ActiveSession returns the locally signed-in account, or common.ErrNotFound.
func (s *SQLiteStorage) ActiveSession(ctx context.Context) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	user, err := scanUser(s.db.QueryRowContext(ctx, `
		SELECT u.id, u.email, u.display_name, u.photo_url, u.created_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.scope = ?
		ORDER BY s.created_at DESC
		LIMIT 1
	`, model.ScopeLocal))
	if err != nil {
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}
	return user, nil
}

// TokenUser returns the account holding an API token, or common.ErrNotFound.
func (s *SQLiteStorage) TokenUser(ctx context.Context, token string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(token, "token"); err != nil {
		return nil, err
	}

	user, err := scanUser(s.db.QueryRowContext(ctx, `
		SELECT u.id, u.email, u.display_name, u.photo_url, u.created_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = ? AND s.scope = ?
	`, token, model.ScopeAPI))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}
	return user, nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.PhotoURL,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteSession signs out locally. It is not an error when nobody is
// signed in.
func (s *SQLiteStorage) DeleteSession(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE scope = ?`, model.ScopeLocal); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteToken revokes an API token. Unknown tokens are not an error.
func (s *SQLiteStorage) DeleteToken(ctx context.Context, token string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ? AND scope = ?`, token, model.ScopeAPI); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

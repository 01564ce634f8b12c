// Package testutil provides test helpers shared across dex packages.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/dex/internal/model"
	"github.com/Veraticus/dex/internal/service"
	"github.com/Veraticus/dex/internal/storage"
)

// TestDB represents a test database with the accounts seeded into it.
type TestDB struct {
	Storage  service.Storage
	t        *testing.T
	Accounts map[string]*model.User
}

// Account is an account to seed.
type Account struct {
	Email    string
	Password string
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, service.Storage) error
	SignedIn       string
	Accounts       []Account
	SkipMigrations bool
}

// SetupTestDB creates a migrated in-memory database seeded with accounts.
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.Account{Email: "ash@pallet.town", Password: "pikachu"})
//	user := db.MustGetUser("ash@pallet.town")
func SetupTestDB(t *testing.T, accounts ...Account) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{Accounts: accounts})
}

// SetupTestDBWithOptions creates a test database with custom options.
// SignedIn names a seeded account to start with an active session.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	ctx := context.Background()

	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	db := &TestDB{
		Storage:  store,
		Accounts: make(map[string]*model.User),
		t:        t,
	}

	for _, acct := range opts.Accounts {
		user, err := store.CreateAccount(ctx, acct.Email, acct.Password)
		if err != nil {
			t.Fatalf("failed to seed account %q: %v", acct.Email, err)
		}
		db.Accounts[acct.Email] = user
	}

	if opts.SignedIn != "" {
		user := db.MustGetUser(opts.SignedIn)
		if _, err := store.SaveSession(ctx, user.ID); err != nil {
			t.Fatalf("failed to sign in %q: %v", opts.SignedIn, err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return db
}

// MustGetUser returns the seeded account for email or fails the test.
func (db *TestDB) MustGetUser(email string) *model.User {
	db.t.Helper()
	user, ok := db.Accounts[email]
	if !ok {
		db.t.Fatalf("account %q was not seeded", email)
	}
	return user
}

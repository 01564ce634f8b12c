package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/dex/internal/auth"
	"github.com/Veraticus/dex/internal/cli"
	"github.com/Veraticus/dex/internal/common"
	"github.com/Veraticus/dex/internal/model"
	"github.com/spf13/cobra"
)

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a local account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCredentials(cmd, "Registered", (*auth.Service).Register)
		},
	}
	addCredentialFlags(cmd)
	return cmd
}

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to a local account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCredentials(cmd, "Signed in", (*auth.Service).Login)
		},
	}
	addCredentialFlags(cmd)
	return cmd
}

func addCredentialFlags(cmd *cobra.Command) {
	cmd.Flags().String("email", "", "account email (prompted when empty)")
	cmd.Flags().String("password", "", "account password (prompted when empty)")
}

type credentialAction func(*auth.Service, context.Context, string, string) (*model.User, error)

func runCredentials(cmd *cobra.Command, done string, action credentialAction) error {
	ctx := cmd.Context()
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	svc, err := newAuth(ctx, store)
	if err != nil {
		return err
	}

	prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	if email, err = prompter.Ask(ctx, "Email", email); err != nil {
		return err
	}
	if password, err = prompter.Ask(ctx, "Password", password); err != nil {
		return err
	}

	user, err := action(svc, ctx, email, password)
	if err != nil {
		return accountError(err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s as %s", done, user.Email)))
	return nil
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			svc, err := newAuth(ctx, store)
			if err != nil {
				return err
			}
			if err := svc.Logout(ctx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Signed out"))
			return nil
		},
	}
}

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the signed-in profile",
		Example: `  dex profile
  dex profile --name Ash --photo https://example.com/ash.png`,
		RunE: runProfile,
	}

	cmd.Flags().String("name", "", "set the display name")
	cmd.Flags().String("photo", "", "set the profile photo URL")

	return cmd
}

func runProfile(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	svc, err := newAuth(ctx, store)
	if err != nil {
		return err
	}

	user := svc.Current()
	if user == nil {
		return accountError(auth.ErrNotSignedIn)
	}

	if cmd.Flags().Changed("name") || cmd.Flags().Changed("photo") {
		name := user.DisplayName
		if cmd.Flags().Changed("name") {
			name, _ = cmd.Flags().GetString("name")
		}
		photo := user.PhotoURL
		if cmd.Flags().Changed("photo") {
			photo, _ = cmd.Flags().GetString("photo")
		}
		if user, err = svc.UpdateProfile(ctx, name, photo); err != nil {
			return accountError(err)
		}
	}

	content := strings.Join([]string{
		"Name:   " + user.Label(),
		"Email:  " + user.Email,
		"Avatar: " + user.Avatar(),
		"Since:  " + user.CreatedAt.Format("2006-01-02"),
	}, "\n")
	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox(cli.BallIcon+" Profile", content))
	return nil
}

// accountError turns account failures into messages a person can act on.
func accountError(err error) error {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		return common.NewUserError(verr.Error(), err)
	case errors.Is(err, auth.ErrEmailTaken):
		return common.NewUserError("That email is already registered. Try 'dex login'.", err)
	case errors.Is(err, auth.ErrAlreadySignedIn):
		return common.NewUserError("You are already signed in. Run 'dex logout' first.", err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return common.NewUserError("Wrong email or password.", err)
	case errors.Is(err, auth.ErrNotSignedIn):
		return common.NewUserError("You are not signed in. Run 'dex login'.", err)
	}
	return err
}

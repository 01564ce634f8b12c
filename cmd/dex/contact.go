package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Veraticus/dex/internal/cli"
	"github.com/Veraticus/dex/internal/common"
	"github.com/Veraticus/dex/internal/contact"
	"github.com/Veraticus/dex/internal/model"
	"github.com/spf13/cobra"
)

func contactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send the team a message",
		Long: `Send a message through the contact form. Missing fields are prompted for,
and the terms must be accepted before the message is stored.`,
		Example: `  dex contact --email ash@example.com --subject Hi --description "Love it" --accept-terms`,
		RunE:    runContact,
	}

	cmd.Flags().String("email", "", "your email")
	cmd.Flags().String("subject", "", "message subject")
	cmd.Flags().String("description", "", "message body")
	cmd.Flags().Bool("accept-terms", false, "accept the terms and conditions")
	cmd.Flags().Bool("list", false, "print the messages stored so far instead of sending one")

	return cmd
}

func runContact(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	email, _ := cmd.Flags().GetString("email")
	subject, _ := cmd.Flags().GetString("subject")
	description, _ := cmd.Flags().GetString("description")
	accepted, _ := cmd.Flags().GetBool("accept-terms")
	list, _ := cmd.Flags().GetBool("list")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	svc := contact.NewService(store)
	if list {
		return printMessages(ctx, cmd.OutOrStdout(), svc)
	}

	prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	if email, err = prompter.Ask(ctx, "Email", email); err != nil {
		return err
	}
	if subject, err = prompter.Ask(ctx, "Subject", subject); err != nil {
		return err
	}
	if description, err = prompter.Ask(ctx, "Description", description); err != nil {
		return err
	}
	if !accepted {
		if accepted, err = prompter.Confirm(ctx, "Accept the terms and conditions?"); err != nil {
			return err
		}
	}

	_, err = svc.Submit(ctx, model.ContactMessage{
		Email:         email,
		Subject:       subject,
		Description:   description,
		TermsAccepted: accepted,
	})
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		return common.NewUserError(verr.Error(), err)
	case errors.Is(err, contact.ErrTermsNotAccepted):
		return common.NewUserError("You must accept the terms and conditions.", err)
	case err != nil:
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(contact.Confirmation))
	return nil
}

func printMessages(ctx context.Context, out io.Writer, svc *contact.Service) error {
	messages, err := svc.List(ctx)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		_, err := fmt.Fprintln(out, cli.FormatInfo("No messages yet."))
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SENT\tEMAIL\tSUBJECT")
	for _, m := range messages {
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.CreatedAt.Local().Format("2006-01-02 15:04"), m.Email, m.Subject)
	}
	return w.Flush()
}

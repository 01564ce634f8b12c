package main

import (
	"fmt"

	"github.com/Veraticus/dex/internal/cli"
	"github.com/Veraticus/dex/internal/common"
	"github.com/spf13/cobra"
)

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local catalog cache",
	}

	cmd.AddCommand(cacheRefreshCmd())
	cmd.AddCommand(cacheClearCmd())

	return cmd
}

func cacheRefreshCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Download the catalog from PokeAPI and store it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			noProgress, _ := cmd.Flags().GetBool("no-progress")

			handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx, stop := handler.HandleInterrupts(cmd.Context(), "Cache refresh")
			defer stop()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			progress := cli.NewLoadProgress(cmd.ErrOrStderr(), "Catching pokemon")
			if noProgress {
				progress = nil
			}
			src, _, err := newSource(store, progress)
			if err != nil {
				return err
			}

			pokemon, types, err := src.Refresh(ctx)
			if err != nil {
				if handler.WasInterrupted() {
					return common.NewUserError("Cache refresh interrupted. The previous cache is unchanged.", err)
				}
				common.LogError(err, "Cache refresh failed", common.Fields{"db": store.Path()})
				return common.NewUserError("Could not download the catalog from PokeAPI.", err)
			}
			common.LogInfo("Catalog cached", common.Fields{"pokemon": pokemon, "types": types})

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Cached %d pokemon and %d types", pokemon, types)))
			return nil
		},
	}

	cmd.Flags().Bool("no-progress", false, "hide the progress bar")

	return cmd
}

func cacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the cached catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.ClearCatalog(ctx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Catalog cache cleared"))
			return nil
		},
	}
}

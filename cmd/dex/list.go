package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/dex/internal/catalog"
	"github.com/Veraticus/dex/internal/cli"
	"github.com/Veraticus/dex/internal/common"
	"github.com/Veraticus/dex/internal/model"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the catalog",
		Long: `Load the catalog, apply the given filters, and print one page as a table.

Filters combine: a name fragment (case-insensitive), an exact type, and a
minimum weight. An unparsable minimum weight is ignored.`,
		Example: `  dex list --type fire
  dex list --name chu --min-weight 100
  dex list --page 3`,
		RunE: runList,
	}

	cmd.Flags().String("name", "", "filter by name fragment")
	cmd.Flags().String("type", "", "filter by type")
	cmd.Flags().String("min-weight", "", "minimum weight")
	cmd.Flags().Int("page", 1, "page to print")
	cmd.Flags().Bool("no-progress", false, "hide the load progress bar")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("name")
	typ, _ := cmd.Flags().GetString("type")
	minWeight, _ := cmd.Flags().GetString("min-weight")
	page, _ := cmd.Flags().GetInt("page")
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	if page < 1 {
		return common.NewUserError("--page must be at least 1.", nil)
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx, stop := handler.HandleInterrupts(cmd.Context(), "Catalog load")
	defer stop()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var progress catalog.ProgressFunc
	if !noProgress {
		progress = cli.NewLoadProgress(cmd.ErrOrStderr(), "Catching pokemon")
	}
	src, catalogCfg, err := newSource(store, progress)
	if err != nil {
		return err
	}

	b := catalog.NewBrowser(src, catalogCfg.PageSize)
	if err := b.Load(ctx); err != nil {
		if handler.WasInterrupted() {
			return common.NewUserError("Catalog load interrupted.", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(loadWarning(err)))
	}

	if err := b.SetCriteria(model.Criteria{Name: name, Type: typ, MinWeight: minWeight}); err != nil {
		return common.NewUserError(fmt.Sprintf("Unknown type %q. Run 'dex types' to see the options.", typ), err)
	}
	b.Apply()

	items, info := catalog.PageAt(b.Filtered(), catalogCfg.PageSize, page)
	if info.OutOfRange() {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(
			fmt.Sprintf("Page %d is past the last page (%d).", page, max(info.TotalPages, 1))))
	}
	return cli.PrintPokemonPage(cmd.OutOrStdout(), items, info)
}

func loadWarning(err error) string {
	switch {
	case errors.Is(err, common.ErrCatalogUnavailable) && errors.Is(err, common.ErrTypesUnavailable):
		return "Could not reach PokeAPI. Nothing to show."
	case errors.Is(err, common.ErrCatalogUnavailable):
		return "Could not load pokemon. The list is empty."
	default:
		return "Could not load types. Type filtering is unavailable."
	}
}

func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "Print the pokemon types you can filter by",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			src, _, err := newSource(store, nil)
			if err != nil {
				return err
			}

			types, err := src.LoadTypes(ctx)
			if err != nil {
				return common.NewUserError("Could not load types from PokeAPI.", err)
			}
			for _, t := range types {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}

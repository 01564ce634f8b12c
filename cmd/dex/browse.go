package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Veraticus/dex/internal/common"
	"github.com/Veraticus/dex/internal/tui"
	"github.com/Veraticus/dex/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		Long: `Open the interactive browser: a filter bar, a grid of cards twelve to a
page, and a detail view for each pokemon. Press ? inside for key bindings.`,
		RunE: runBrowse,
	}

	cmd.Flags().String("theme", "default", "color theme (default, night)")
	cmd.Flags().String("log-file", "", "write logs here while the browser is open")

	return cmd
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	theme, _ := cmd.Flags().GetString("theme")
	logFile, _ := cmd.Flags().GetString("log-file")

	// The browser owns the terminal; logs go to a file or nowhere.
	restore, err := redirectLogs(logFile)
	if err != nil {
		return err
	}
	defer restore()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	src, catalogCfg, err := newSource(store, nil)
	if err != nil {
		return err
	}

	authSvc, err := newAuth(ctx, store)
	if err != nil {
		return err
	}

	return tui.Run(ctx,
		tui.WithSource(src),
		tui.WithSession(authSvc.Session()),
		tui.WithPageSize(catalogCfg.PageSize),
		tui.WithTheme(themes.GetTheme(theme)),
	)
}

func redirectLogs(path string) (func(), error) {
	prev := slog.Default()
	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return nil, err
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	if err := common.SetupLoggerTo(w, level, viper.GetString("logging.format")); err != nil {
		closeFn()
		return nil, err
	}
	return func() {
		slog.SetDefault(prev)
		closeFn()
	}, nil
}

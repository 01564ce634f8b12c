package main

import (
	"log/slog"

	"github.com/Veraticus/dex/internal/config"
	"github.com/Veraticus/dex/internal/contact"
	"github.com/Veraticus/dex/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog and accounts as a JSON API",
		Long: `Start the JSON API. The catalog is loaded once at startup and served
from memory, for example GET /api/pokemon?page=2&type=fire.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", config.DefaultServerAddr, "listen address")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	serverCfg, err := config.LoadServerConfig(viper.GetViper())
	if err != nil {
		return err
	}

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

	srv := server.New(server.Deps{
		Source:   src,
		Auth:     authSvc,
		Contact:  contact.NewService(store),
		PageSize: catalogCfg.PageSize,
	}, serverCfg)

	if err := srv.Load(ctx); err != nil {
		slog.Warn("Serving a partial catalog", "error", err)
	}

	return srv.Run(ctx)
}

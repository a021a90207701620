package main

import (
	"context"
	"fmt"

	"github.com/amonks/musicareas/config"
	"github.com/amonks/musicareas/db"
	"github.com/amonks/musicareas/server"
	"github.com/amonks/musicareas/subcmd"
)

func serve(ctx context.Context, cfg config.Config, db *db.DB, args []string) error {
	subcmd := subcmd.New("serve", "serve stored music areas over http")
	var (
		addr = subcmd.String("addr", cfg.Addr, "listen address (default $MUSICAREAS_ADDR)")
	)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	return server.Run(ctx, db, *addr)
}

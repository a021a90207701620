// musicareas keeps a local sqlite3 copy of the music area feed: which track
// plays in which region of the map.
//
// see db/schema.sql for info about the resulting database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/amonks/musicareas/config"
	"github.com/amonks/musicareas/db"
	"github.com/amonks/musicareas/sigctx"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var usage = strings.TrimSpace(`
usage: musicareas $cmd
valid $cmd are 'fetch', 'list', 'show', 'serve'
for help: musicareas $cmd -help
`)

func run() error {
	ctx := sigctx.New()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if len(os.Args) < 2 {
		return errors.New(usage)
	}
	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "fetch", "list", "show", "serve":
	default:
		return fmt.Errorf("unknown cmd: '%s'\n%s", cmd, usage)
	}

	db, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	switch cmd {
	case "fetch":
		if err := fetch(ctx, cfg, db, args); err != nil {
			return fmt.Errorf("fetch error: %w", err)
		}
		return nil

	case "list":
		return list(ctx, db, args)

	case "show":
		return show(ctx, db, args)

	case "serve":
		return serve(ctx, cfg, db, args)
	}

	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/amonks/musicareas/config"
	"github.com/amonks/musicareas/data"
	"github.com/amonks/musicareas/db"
	"github.com/amonks/musicareas/feed"
	"github.com/amonks/musicareas/limiter"
	"github.com/amonks/musicareas/readthrough"
	"github.com/amonks/musicareas/subcmd"
)

func fetch(ctx context.Context, cfg config.Config, db *db.DB, args []string) error {
	subcmd := subcmd.New("fetch", "fetch the music area feed and store it")
	var (
		url    = subcmd.String("url", cfg.FeedURL, "feed url (default $MUSICAREAS_FEED_URL)")
		cached = subcmd.Bool("cached", false, "reparse the last fetched feed instead of fetching")
	)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}
	if *url == "" {
		return errors.New("no feed url; set -url or $MUSICAREAS_FEED_URL")
	}

	lim := limiter.New(filepath.Join(cfg.CacheDir, "next-req"), cfg.RequestDelay)
	if err := lim.Load(); err != nil {
		return err
	}
	client := feed.NewClient(*url, readthrough.New(cfg.CacheDir, "feed-"), lim)

	var (
		profiles []data.MusicAreaProfile
		err      error
	)
	if *cached {
		profiles, err = client.Cached()
	} else {
		profiles, err = client.Fetch(ctx)
	}
	if err != nil {
		return err
	}

	if err := db.ReplaceProfiles(ctx, profiles); err != nil {
		return err
	}

	stored, err := db.CountProfiles(ctx)
	if err != nil {
		return err
	}
	log.Printf("stored %d music areas", stored)
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/amonks/musicareas/data"
	"github.com/amonks/musicareas/db"
	"github.com/amonks/musicareas/setflag"
	"github.com/amonks/musicareas/subcmd"
)

const (
	fieldID              = "id"
	fieldTrack           = "track"
	fieldRegion          = "region"
	fieldIgnoreTerritory = "ignore-territory"
)

func list(ctx context.Context, db *db.DB, args []string) error {
	subcmd := subcmd.New("list", "list stored music areas")
	fields := setflag.New(fieldID, fieldTrack, fieldRegion, fieldIgnoreTerritory)
	subcmd.Var(fields, "fields", "comma-separated columns to print")
	asJSON := subcmd.Bool("json", false, "print json")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	profiles, err := db.AllProfiles(ctx)
	if err != nil {
		return err
	}

	if *asJSON {
		return printJSON(os.Stdout, profiles)
	}
	return printTable(os.Stdout, profiles, fields.List())
}

func show(ctx context.Context, db *db.DB, args []string) error {
	subcmd := subcmd.New("show", "print one music area as json").
		SetArg("id", "string", "music area id")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}
	id, err := subcmd.Arg()
	if err != nil {
		return err
	}

	profile, err := db.GetProfile(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, profile)
}

func printJSON(w io.Writer, v any) error {
	bs, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(bs))
	return err
}

func printTable(w io.Writer, profiles []data.MusicAreaProfile, fields []string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(fields, "\t")))
	for _, p := range profiles {
		cols := make([]string, len(fields))
		for i, field := range fields {
			switch field {
			case fieldID:
				cols[i] = p.ID()
			case fieldTrack:
				cols[i] = p.TrackName()
			case fieldRegion:
				cols[i] = p.Region().String()
			case fieldIgnoreTerritory:
				cols[i] = strconv.FormatBool(p.IgnoreTerritory())
			}
		}
		fmt.Fprintln(tw, strings.Join(cols, "\t"))
	}
	return tw.Flush()
}

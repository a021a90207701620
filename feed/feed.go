// Package feed loads music area profiles from the published JSON feed.
//
// The feed is a JSON array of records like:
//
//	{
//	  "id": "forest_theme",
//	  "trackName": "Forest Ambience",
//	  "ignoreTerritory": false,
//	  "region": {"x1": 0, "y1": 0, "x2": 100, "y2": 100}
//	}
//
// Records are validated here, before any profile is constructed.
package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/amonks/musicareas/data"
)

var (
	ErrMissingID     = errors.New("missing id")
	ErrMissingTrack  = errors.New("missing track name")
	ErrMissingRegion = errors.New("missing region")
	ErrDuplicateID   = errors.New("duplicate id")
	ErrNotArray      = errors.New("feed is not a json array")
	ErrTrailingData  = errors.New("trailing data after feed")
)

// record mirrors a feed entry. Region is a pointer so that an absent or null
// region can be told apart from a region at the origin.
type record struct {
	ID              string             `json:"id"`
	TrackName       string             `json:"trackName"`
	IgnoreTerritory bool               `json:"ignoreTerritory"`
	Region          *data.SquareRegion `json:"region"`
}

// Parse decodes a feed, rejecting the whole feed if any record is malformed.
func Parse(r io.Reader) ([]data.MusicAreaProfile, error) {
	dec := json.NewDecoder(r)
	var records []record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("feed decode error: %w", err)
	}
	// only a literal [] is an empty feed
	if records == nil {
		return nil, ErrNotArray
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}

	seen := make(map[string]int, len(records))
	profiles := make([]data.MusicAreaProfile, 0, len(records))
	for i, rec := range records {
		if err := rec.validate(); err != nil {
			return nil, fmt.Errorf("invalid record %d ('%s'): %w", i, rec.ID, err)
		}
		if first, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("invalid record %d ('%s'), first seen at %d: %w", i, rec.ID, first, ErrDuplicateID)
		}
		seen[rec.ID] = i

		profiles = append(profiles, data.NewMusicAreaProfile(rec.ID, rec.TrackName, rec.IgnoreTerritory, *rec.Region))
	}

	return profiles, nil
}

func (rec record) validate() error {
	if strings.TrimSpace(rec.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(rec.TrackName) == "" {
		return ErrMissingTrack
	}
	if rec.Region == nil {
		return ErrMissingRegion
	}
	return nil
}

package data

import "encoding/json"

// A MusicAreaProfile says which track should play while the player is inside
// a region of the map.
//
// Profiles are built once, usually while decoding the music feed, and are
// read-only afterwards: the fields are unexported and there are no setters, so
// a profile can be shared between goroutines freely.
type MusicAreaProfile struct {
	// like "forest_theme"
	id string

	// like "Forest Ambience"
	trackName string

	// When set, this area wins over the territory-based music rules.
	ignoreTerritory bool

	region SquareRegion
}

// NewMusicAreaProfile stores its arguments as given. Validation belongs to
// whoever decodes the records; see the feed package.
func NewMusicAreaProfile(id, trackName string, ignoreTerritory bool, region SquareRegion) MusicAreaProfile {
	return MusicAreaProfile{
		id:              id,
		trackName:       trackName,
		ignoreTerritory: ignoreTerritory,
		region:          region,
	}
}

func (p MusicAreaProfile) ID() string { return p.id }

func (p MusicAreaProfile) TrackName() string { return p.trackName }

func (p MusicAreaProfile) IgnoreTerritory() bool { return p.ignoreTerritory }

func (p MusicAreaProfile) Region() SquareRegion { return p.region }

// musicAreaJSON is the wire shape of a profile.
type musicAreaJSON struct {
	ID              string       `json:"id"`
	TrackName       string       `json:"trackName"`
	IgnoreTerritory bool         `json:"ignoreTerritory"`
	Region          SquareRegion `json:"region"`
}

func (p MusicAreaProfile) MarshalJSON() ([]byte, error) {
	return json.Marshal(musicAreaJSON{
		ID:              p.id,
		TrackName:       p.trackName,
		IgnoreTerritory: p.ignoreTerritory,
		Region:          p.region,
	})
}

// UnmarshalJSON decodes without validating. A missing region decodes as the
// zero region; use feed.Parse to reject malformed records.
func (p *MusicAreaProfile) UnmarshalJSON(bs []byte) error {
	var raw musicAreaJSON
	if err := json.Unmarshal(bs, &raw); err != nil {
		return err
	}
	*p = NewMusicAreaProfile(raw.ID, raw.TrackName, raw.IgnoreTerritory, raw.Region)
	return nil
}

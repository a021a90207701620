package db

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/amonks/musicareas/data"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB represents our sqlite3 database file.
type DB struct{ *gorm.DB }

//go:embed schema.sql
var schema string

var ErrNotFound = errors.New("not found")

// Open returns a connection to a migrated sqlite3 database file on disk,
// creating the file and running migrations if necessary.
func Open(filename string) (*DB, error) {
	gdb, err := gorm.Open(sqlite.Open(filename), &gorm.Config{
		Logger: logger.New(log.Default(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening db file at '%s': %w", filename, err)
	}

	db := &DB{gdb}

	if err := db.Exec(schema).Error; err != nil {
		return nil, fmt.Errorf("error migrating db at '%s': %w", filename, err)
	}

	return db, nil
}

func (db *DB) Close() error {
	pool, err := db.DB.DB()
	if err != nil {
		return err
	}
	return pool.Close()
}

// musicArea is the row shape of a profile. Profiles themselves have no
// exported fields, so they're copied in and out through this.
type musicArea struct {
	ID              string `gorm:"primaryKey"`
	TrackName       string
	IgnoreTerritory bool

	X1, Y1, X2, Y2 int
}

func (musicArea) TableName() string { return "music_areas" }

func rowFromProfile(p data.MusicAreaProfile) musicArea {
	r := p.Region()
	return musicArea{
		ID:              p.ID(),
		TrackName:       p.TrackName(),
		IgnoreTerritory: p.IgnoreTerritory(),
		X1:              r.X1,
		Y1:              r.Y1,
		X2:              r.X2,
		Y2:              r.Y2,
	}
}

func (row musicArea) profile() data.MusicAreaProfile {
	return data.NewMusicAreaProfile(row.ID, row.TrackName, row.IgnoreTerritory,
		data.NewSquareRegion(row.X1, row.Y1, row.X2, row.Y2))
}

// ReplaceProfiles swaps the whole stored set for the given profiles in one
// transaction.
func (db *DB) ReplaceProfiles(ctx context.Context, profiles []data.MusicAreaProfile) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("1 = 1").
			Delete(&musicArea{}).
			Error; err != nil {
			return fmt.Errorf("error clearing music areas: %w", err)
		}
		if len(profiles) == 0 {
			return nil
		}

		rows := make([]musicArea, len(profiles))
		for i, p := range profiles {
			rows[i] = rowFromProfile(p)
		}
		if err := tx.
			CreateInBatches(rows, 100).
			Error; err != nil {
			return fmt.Errorf("error inserting %d music areas: %w", len(rows), err)
		}
		return nil
	})
}

func (db *DB) GetProfile(ctx context.Context, id string) (data.MusicAreaProfile, error) {
	var row musicArea
	if err := db.
		WithContext(ctx).
		Where("id = ?", id).
		Take(&row).
		Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return data.MusicAreaProfile{}, fmt.Errorf("music area '%s': %w", id, ErrNotFound)
	} else if err != nil {
		return data.MusicAreaProfile{}, fmt.Errorf("error getting music area '%s': %w", id, err)
	}
	return row.profile(), nil
}

// AllProfiles returns every stored profile, ordered by id.
func (db *DB) AllProfiles(ctx context.Context) ([]data.MusicAreaProfile, error) {
	var rows []musicArea
	if err := db.
		WithContext(ctx).
		Order("id asc").
		Find(&rows).
		Error; err != nil {
		return nil, fmt.Errorf("error listing music areas: %w", err)
	}

	profiles := make([]data.MusicAreaProfile, len(rows))
	for i, row := range rows {
		profiles[i] = row.profile()
	}
	return profiles, nil
}

func (db *DB) CountProfiles(ctx context.Context) (int, error) {
	var count int64
	if err := db.
		WithContext(ctx).
		Table("music_areas").
		Count(&count).
		Error; err != nil {
		return 0, fmt.Errorf("error counting music areas: %w", err)
	}
	return int(count), nil
}

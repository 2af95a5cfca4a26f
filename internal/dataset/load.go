package dataset

import (
	"fmt"
	"path/filepath"

	"github.com/senseiyukisan/sports-analytics/internal/models"
	"github.com/senseiyukisan/sports-analytics/internal/table"
)

// Raw holds the four input tables as read from disk
type Raw struct {
	Players     table.Frame[models.Player]
	Clubs       table.Frame[models.Club]
	Appearances table.Frame[models.Appearance]
	Games       table.Frame[models.Game]
}

// LoadRaw reads players, clubs, appearances and games from dir
func LoadRaw(dir string) (*Raw, error) {
	raw := &Raw{}
	var err error
	if raw.Players, err = readFrame(filepath.Join(dir, PlayersFile), DecodePlayers); err != nil {
		return nil, err
	}
	if raw.Clubs, err = readFrame(filepath.Join(dir, ClubsFile), DecodeClubs); err != nil {
		return nil, err
	}
	if raw.Appearances, err = readFrame(filepath.Join(dir, AppearancesFile), DecodeAppearances); err != nil {
		return nil, err
	}
	if raw.Games, err = readFrame(filepath.Join(dir, GamesFile), DecodeGames); err != nil {
		return nil, err
	}
	return raw, nil
}

// Enriched is the read-only view the dashboard consumer works from
type Enriched struct {
	Players []models.Player
	Clubs   []models.Club
	Games   []models.Game
}

// LoadEnriched reads the pipeline outputs from dir
func LoadEnriched(dir string) (*Enriched, error) {
	players, err := readFrame(filepath.Join(dir, PlayersOutFile), DecodePlayers)
	if err != nil {
		return nil, err
	}
	clubs, err := readFrame(filepath.Join(dir, ClubsOutFile), DecodeClubs)
	if err != nil {
		return nil, err
	}
	games, err := readFrame(filepath.Join(dir, GamesOutFile), DecodeGames)
	if err != nil {
		return nil, err
	}
	return &Enriched{
		Players: players.Records,
		Clubs:   clubs.Records,
		Games:   games.Records,
	}, nil
}

func readFrame[T any](path string, decode func(*table.Table) (table.Frame[T], error)) (table.Frame[T], error) {
	t, err := table.ReadFile(path)
	if err != nil {
		return table.Frame[T]{}, err
	}
	frame, err := decode(t)
	if err != nil {
		return table.Frame[T]{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return frame, nil
}

// Package analytics computes the dashboard views over the enriched tables.
// Every function is pure and leaves its inputs untouched.
package analytics

import (
	"fmt"

	"github.com/senseiyukisan/sports-analytics/internal/models"
	"github.com/senseiyukisan/sports-analytics/internal/outcome"
)

// Basis selects which market value decides the favorite of a game
type Basis string

const (
	BasisWeighted Basis = "weighted"
	BasisRaw      Basis = "raw"
)

// ParseBasis accepts "", "weighted" or "raw"; empty means weighted
func ParseBasis(s string) (Basis, error) {
	switch Basis(s) {
	case "", BasisWeighted:
		return BasisWeighted, nil
	case BasisRaw:
		return BasisRaw, nil
	}
	return "", fmt.Errorf("unknown basis %q", s)
}

// AdvantageCounts tallies how often the market value favorite got the actual result.
// Win: the favorite outcome matched. Draw: it did not and the game was drawn. Loss: otherwise.
type AdvantageCounts struct {
	Win   int `json:"win"`
	Draw  int `json:"draw"`
	Loss  int `json:"loss"`
	Games int `json:"games"`
}

func AdvantageResults(games []models.Game, basis Basis) AdvantageCounts {
	var counts AdvantageCounts
	for _, g := range games {
		actual := outcome.Classify(g.HomeClubGoals, g.AwayClubGoals)

		home, away := g.WeightedMarketValueHome, g.WeightedMarketValueAway
		if basis == BasisRaw {
			home, away = g.MarketValueHome, g.MarketValueAway
		}
		favorite := outcome.Classify(home, away)

		switch {
		case favorite == actual:
			counts.Win++
		case actual == outcome.Draw:
			counts.Draw++
		default:
			counts.Loss++
		}
		counts.Games++
	}
	return counts
}

func FilterGamesByLeague(games []models.Game, league string) []models.Game {
	var out []models.Game
	for _, g := range games {
		if g.LeagueCode == league {
			out = append(out, g)
		}
	}
	return out
}

// FilterGamesByClub keeps the games where club played home or away
func FilterGamesByClub(games []models.Game, club string) []models.Game {
	var out []models.Game
	for _, g := range games {
		if g.HomeClubName == club || g.AwayClubName == club {
			out = append(out, g)
		}
	}
	return out
}

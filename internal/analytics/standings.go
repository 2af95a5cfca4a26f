package analytics

import (
	"sort"

	"github.com/senseiyukisan/sports-analytics/internal/models"
	"github.com/senseiyukisan/sports-analytics/internal/outcome"
)

const (
	pointsWin  = 3
	pointsDraw = 1
)

type StandingEntry struct {
	ClubID       int64  `json:"club_id"`
	Club         string `json:"club"`
	Played       int    `json:"played"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	GoalDiff     int    `json:"goal_diff"`
	Points       int    `json:"points"`
}

func (e *StandingEntry) add(goalsFor, goalsAgainst int) {
	e.Played++
	e.GoalsFor += goalsFor
	e.GoalsAgainst += goalsAgainst
	switch outcome.Classify(goalsFor, goalsAgainst).ForFirst() {
	case outcome.Win:
		e.Wins++
		e.Points += pointsWin
	case outcome.Loss:
		e.Losses++
	default:
		e.Draws++
		e.Points += pointsDraw
	}
}

// Standings builds the league table of the given games, sorted by points,
// goal difference, goals scored and club name.
func Standings(games []models.Game) []StandingEntry {
	entries := make(map[int64]*StandingEntry)
	entry := func(id int64, name string) *StandingEntry {
		e, ok := entries[id]
		if !ok {
			e = &StandingEntry{ClubID: id, Club: name}
			entries[id] = e
		}
		return e
	}

	for _, g := range games {
		entry(g.HomeClubID, g.HomeClubName).add(g.HomeClubGoals, g.AwayClubGoals)
		entry(g.AwayClubID, g.AwayClubName).add(g.AwayClubGoals, g.HomeClubGoals)
	}

	table := make([]StandingEntry, 0, len(entries))
	for _, e := range entries {
		e.GoalDiff = e.GoalsFor - e.GoalsAgainst
		table = append(table, *e)
	}
	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDiff != b.GoalDiff {
			return a.GoalDiff > b.GoalDiff
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		if a.Club != b.Club {
			return a.Club < b.Club
		}
		return a.ClubID < b.ClubID
	})
	return table
}

package analytics

import (
	"sort"

	"github.com/senseiyukisan/sports-analytics/internal/models"
)

// PlayerRow is one line of the player details table
type PlayerRow struct {
	Name          string  `json:"name"`
	Age           *int    `json:"age"`
	Club          string  `json:"club"`
	Position      string  `json:"position"`
	Games         int     `json:"games"`
	MinutesPlayed int     `json:"minutes_played"`
	Goals         int     `json:"goals"`
	Assists       int     `json:"assists"`
	Wins          int     `json:"wins"`
	Draws         int     `json:"draws"`
	Losses        int     `json:"losses"`
	MarketValue   float64 `json:"market_value"`
}

// PlayersTable lists players by market value, highest first. Equal values keep input order.
func PlayersTable(players []models.Player) []PlayerRow {
	rows := make([]PlayerRow, len(players))
	for i, p := range players {
		rows[i] = PlayerRow{
			Name:          p.PrettyName,
			Age:           p.Age,
			Club:          p.ClubName,
			Position:      p.SubPosition,
			Games:         p.Stats.Games,
			MinutesPlayed: p.Stats.MinutesPlayed,
			Goals:         p.Stats.Goals,
			Assists:       p.Stats.Assists,
			Wins:          p.Stats.Wins,
			Draws:         p.Stats.Draws,
			Losses:        p.Stats.Losses,
			MarketValue:   p.MarketValue,
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].MarketValue > rows[j].MarketValue
	})
	return rows
}

// FilterPlayersByLeague keeps players of the given leagues; no leagues keeps everyone
func FilterPlayersByLeague(players []models.Player, leagues []string) []models.Player {
	if len(leagues) == 0 {
		return players
	}
	set := models.NewLeagueSet(leagues)
	var out []models.Player
	for _, p := range players {
		if set.Contains(p.LeagueID) {
			out = append(out, p)
		}
	}
	return out
}

// FilterClubsByLeague keeps clubs of the given leagues; no leagues keeps everyone
func FilterClubsByLeague(clubs []models.Club, leagues []string) []models.Club {
	if len(leagues) == 0 {
		return clubs
	}
	set := models.NewLeagueSet(leagues)
	var out []models.Club
	for _, c := range clubs {
		if set.Contains(c.LeagueID) {
			out = append(out, c)
		}
	}
	return out
}

// ClubOptions lists the club names of a league's games in alphabetical order
func ClubOptions(games []models.Game, league string) []string {
	seen := make(map[string]struct{})
	for _, g := range FilterGamesByLeague(games, league) {
		for _, name := range []string{g.HomeClubName, g.AwayClubName} {
			if name != "" {
				seen[name] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

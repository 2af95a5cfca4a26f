package pipeline

import (
	"github.com/senseiyukisan/sports-analytics/internal/dataset"
	"github.com/senseiyukisan/sports-analytics/internal/models"
	"github.com/senseiyukisan/sports-analytics/internal/table"
)

const stageFilter = "filter"

// Dataset is the league-filtered input every later stage works from
type Dataset struct {
	Players     table.Frame[models.Player]
	Clubs       table.Frame[models.Club]
	Appearances table.Frame[models.Appearance]
	Games       table.Frame[models.Game]
}

// FilterLeagues attaches a league to players and appearances and keeps only
// rows of whitelisted leagues. Rows whose league cannot be resolved are
// dropped and reported.
func FilterLeagues(raw *dataset.Raw, leagues models.LeagueSet, rep *Report) *Dataset {
	clubLeague := make(map[int64]string, raw.Clubs.Len())
	for _, c := range raw.Clubs.Records {
		clubLeague[c.ID] = c.LeagueID
	}
	gameLeague := make(map[int64]string, raw.Games.Len())
	for _, g := range raw.Games.Records {
		gameLeague[g.ID] = g.LeagueCode
	}

	players := withRecords(raw.Players, func(p models.Player) models.Player {
		league, ok := clubLeague[p.ClubID]
		if !ok {
			rep.record(IssueDropped, &LookupError{Stage: stageFilter, ClubID: p.ClubID, PlayerID: p.ID, Err: ErrUnknownClub})
			p.LeagueID = ""
			return p
		}
		p.LeagueID = league
		return p
	})

	appearances := withRecords(raw.Appearances, func(a models.Appearance) models.Appearance {
		if a.LeagueID != "" {
			return a
		}
		league, ok := gameLeague[a.GameID]
		if !ok {
			rep.record(IssueDropped, &LookupError{Stage: stageFilter, GameID: a.GameID, PlayerID: a.PlayerID, Err: ErrUnresolvedLeague})
			return a
		}
		a.LeagueID = league
		return a
	})

	ds := &Dataset{
		Players:     players.Filter(func(p models.Player) bool { return leagues.Contains(p.LeagueID) }),
		Clubs:       raw.Clubs.Filter(func(c models.Club) bool { return leagues.Contains(c.LeagueID) }),
		Appearances: appearances.Filter(func(a models.Appearance) bool { return leagues.Contains(a.LeagueID) }),
		Games:       raw.Games.Filter(func(g models.Game) bool { return leagues.Contains(g.LeagueCode) }),
	}

	rep.Tables["players"] = TableCounts{Input: raw.Players.Len(), Filtered: ds.Players.Len()}
	rep.Tables["clubs"] = TableCounts{Input: raw.Clubs.Len(), Filtered: ds.Clubs.Len()}
	rep.Tables["appearances"] = TableCounts{Input: raw.Appearances.Len(), Filtered: ds.Appearances.Len()}
	rep.Tables["games"] = TableCounts{Input: raw.Games.Len(), Filtered: ds.Games.Len()}
	return ds
}

// withRecords returns a frame over the same table with every record passed through fn
func withRecords[T any](f table.Frame[T], fn func(T) T) table.Frame[T] {
	records := make([]T, len(f.Records))
	for i, rec := range f.Records {
		records[i] = fn(rec)
	}
	return table.Frame[T]{Table: f.Table, Records: records}
}

package pipeline

import (
	"path/filepath"

	"github.com/senseiyukisan/sports-analytics/internal/dataset"
	"github.com/senseiyukisan/sports-analytics/internal/models"
	"github.com/senseiyukisan/sports-analytics/internal/table"
)

// column renders one derived value of a record
type column[T any] struct {
	name  string
	value func(T) string
}

var playerColumns = []column[models.Player]{
	{dataset.ColSubPosition, func(p models.Player) string { return p.SubPosition }},
	{dataset.ColLeagueID, func(p models.Player) string { return p.LeagueID }},
	{dataset.ColMarketValue, func(p models.Player) string { return dataset.FormatAmount(p.MarketValue) }},
	{dataset.ColGames, func(p models.Player) string { return dataset.FormatCount(p.Stats.Games) }},
	{dataset.ColMinutesPlayed, func(p models.Player) string { return dataset.FormatCount(p.Stats.MinutesPlayed) }},
	{dataset.ColGoals, func(p models.Player) string { return dataset.FormatCount(p.Stats.Goals) }},
	{dataset.ColAssists, func(p models.Player) string { return dataset.FormatCount(p.Stats.Assists) }},
	{dataset.ColWins, func(p models.Player) string { return dataset.FormatCount(p.Stats.Wins) }},
	{dataset.ColDraws, func(p models.Player) string { return dataset.FormatCount(p.Stats.Draws) }},
	{dataset.ColLosses, func(p models.Player) string { return dataset.FormatCount(p.Stats.Losses) }},
	{dataset.ColYellowCards, func(p models.Player) string { return dataset.FormatCount(p.Stats.YellowCards) }},
	{dataset.ColRedCards, func(p models.Player) string { return dataset.FormatCount(p.Stats.RedCards) }},
	{dataset.ColAge, func(p models.Player) string { return dataset.FormatAge(p.Age) }},
	{dataset.ColClubName, func(p models.Player) string { return p.ClubName }},
}

var clubColumns = []column[models.Club]{
	{dataset.ColMarketValue, func(c models.Club) string { return dataset.FormatAmount(c.MarketValue) }},
}

var appearanceColumns = []column[models.Appearance]{
	{dataset.ColWeightedMarketValue, func(a models.Appearance) string { return dataset.FormatAmount(a.WeightedMarketValue) }},
}

var gameColumns = []column[models.Game]{
	{dataset.ColHomeClubName, func(g models.Game) string { return g.HomeClubName }},
	{dataset.ColAwayClubName, func(g models.Game) string { return g.AwayClubName }},
	{dataset.ColMarketValueHome, func(g models.Game) string { return dataset.FormatAmount(g.MarketValueHome) }},
	{dataset.ColMarketValueAway, func(g models.Game) string { return dataset.FormatAmount(g.MarketValueAway) }},
	{dataset.ColWeightedMarketValueHome, func(g models.Game) string { return dataset.FormatAmount(g.WeightedMarketValueHome) }},
	{dataset.ColWeightedMarketValueAway, func(g models.Game) string { return dataset.FormatAmount(g.WeightedMarketValueAway) }},
}

// render copies the frame's table and fills the derived columns. Input
// columns keep their position; new columns are appended in list order.
func render[T any](f table.Frame[T], cols []column[T]) *table.Table {
	t := f.Table.Clone()
	for _, c := range cols {
		t.EnsureColumn(c.name)
	}
	for i, rec := range f.Records {
		for _, c := range cols {
			t.Set(i, c.name, c.value(rec))
		}
	}
	return t
}

// Output is the enriched dataset of a successful run
type Output struct {
	Players     table.Frame[models.Player]
	Clubs       table.Frame[models.Club]
	Appearances table.Frame[models.Appearance]
	Games       table.Frame[models.Game]
}

// WriteOutputs writes the four enriched tables into dir. Every table is
// staged before the first rename, so a failed write leaves the previous run's
// files in place.
func WriteOutputs(dir string, out *Output) error {
	files := []struct {
		name string
		t    *table.Table
	}{
		{dataset.PlayersOutFile, render(out.Players, playerColumns)},
		{dataset.ClubsOutFile, render(out.Clubs, clubColumns)},
		{dataset.AppearancesOutFile, render(out.Appearances, appearanceColumns)},
		{dataset.GamesOutFile, render(out.Games, gameColumns)},
	}

	staged := make([]*table.Staged, 0, len(files))
	for _, f := range files {
		st, err := f.t.Stage(filepath.Join(dir, f.name))
		if err != nil {
			for _, done := range staged {
				done.Discard()
			}
			return err
		}
		staged = append(staged, st)
	}
	for i, st := range staged {
		if err := st.Commit(); err != nil {
			for _, rest := range staged[i+1:] {
				rest.Discard()
			}
			return err
		}
	}
	return nil
}

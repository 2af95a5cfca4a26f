package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senseiyukisan/sports-analytics/internal/dataset"
	"github.com/senseiyukisan/sports-analytics/internal/models"
	"github.com/senseiyukisan/sports-analytics/internal/table"
)

type valueMap map[int64]float64

func (m valueMap) Resolve(_ context.Context, p models.Player) (float64, error) {
	v, ok := m[p.ID]
	if !ok {
		return 0, errors.New("no token")
	}
	return v, nil
}

func frameOf[T any](records ...T) table.Frame[T] {
	return table.Frame[T]{Records: records}
}

func lookupErrors(t *testing.T, err error) []*LookupError {
	t.Helper()
	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok, "expected a joined error")
	var out []*LookupError
	for _, e := range joined.Unwrap() {
		var le *LookupError
		require.True(t, errors.As(e, &le))
		out = append(out, le)
	}
	return out
}

func TestFilterLeagues(t *testing.T) {
	players, err := dataset.DecodePlayers(table.New(
		[]string{"player_id", "club_id", "pretty_name"},
		[][]string{{"1", "10", "A"}, {"2", "40", "B"}, {"3", "99", "C"}},
	))
	require.NoError(t, err)
	clubs, err := dataset.DecodeClubs(table.New(
		[]string{"club_id", "league_id"},
		[][]string{{"10", "GB1"}, {"40", "NL1"}},
	))
	require.NoError(t, err)
	games, err := dataset.DecodeGames(table.New(
		[]string{"game_id", "home_club_id", "away_club_id", "home_club_goals", "away_club_goals", "league_code"},
		[][]string{{"100", "10", "40", "1", "0", "GB1"}, {"101", "40", "10", "0", "0", "NL1"}},
	))
	require.NoError(t, err)
	apps, err := dataset.DecodeAppearances(table.New(
		[]string{"player_id", "game_id", "player_club_id", "league_id"},
		[][]string{
			{"1", "100", "10", ""},    // league from game: GB1
			{"1", "101", "10", ""},    // league from game: NL1
			{"1", "555", "10", ""},    // unknown game
			{"1", "101", "10", "FR1"}, // own column wins
		},
	))
	require.NoError(t, err)

	raw := &dataset.Raw{Players: players, Clubs: clubs, Appearances: apps, Games: games}
	rep := NewReport("test")
	ds := FilterLeagues(raw, models.NewLeagueSet(models.DefaultLeagues), rep)

	require.Equal(t, 1, ds.Players.Len())
	assert.Equal(t, int64(1), ds.Players.Records[0].ID)
	assert.Equal(t, "GB1", ds.Players.Records[0].LeagueID)
	assert.Equal(t, [][]string{{"1", "10", "A"}}, ds.Players.Table.Rows)

	assert.Equal(t, 1, ds.Clubs.Len())
	assert.Equal(t, 1, ds.Games.Len())

	require.Equal(t, 2, ds.Appearances.Len())
	assert.Equal(t, "GB1", ds.Appearances.Records[0].LeagueID)
	assert.Equal(t, "FR1", ds.Appearances.Records[1].LeagueID)

	// the raw frames are untouched
	assert.Equal(t, "", raw.Players.Records[0].LeagueID)
	assert.Equal(t, 3, raw.Players.Table.Len())

	dropped := rep.IssuesOf(IssueDropped)
	require.Len(t, dropped, 2)
	assert.Equal(t, int64(3), dropped[0].PlayerID)
	assert.Equal(t, int64(99), dropped[0].ClubID)
	assert.Equal(t, ErrUnknownClub.Error(), dropped[0].Reason)
	assert.Equal(t, int64(555), dropped[1].GameID)
	assert.NoError(t, rep.Err())

	assert.Equal(t, TableCounts{Input: 3, Filtered: 1}, rep.Tables["players"])
	assert.Equal(t, TableCounts{Input: 4, Filtered: 2}, rep.Tables["appearances"])
}

func TestAggregateStats(t *testing.T) {
	rep := NewReport("test")
	stats := AggregateStats([]models.Appearance{
		{PlayerID: 1, GameID: 100, MinutesPlayed: 90, Goals: 1, Assists: 2, YellowCards: 1},
		{PlayerID: 1, GameID: 101, MinutesPlayed: 30, Goals: 1, RedCards: 1},
		{PlayerID: 2, GameID: 100, MinutesPlayed: 95},
		{PlayerID: 2, GameID: 100, MinutesPlayed: 10},
	}, rep)

	assert.Equal(t, models.PlayerStats{Games: 2, MinutesPlayed: 120, Goals: 2, Assists: 2, YellowCards: 1, RedCards: 1}, stats[1])
	// duplicates are counted and flagged
	assert.Equal(t, models.PlayerStats{Games: 2, MinutesPlayed: 105}, stats[2])
	assert.Equal(t, models.PlayerStats{}, stats[3])

	anomalies := rep.IssuesOf(IssueAnomaly)
	require.Len(t, anomalies, 1)
	assert.Equal(t, int64(2), anomalies[0].PlayerID)
	assert.Equal(t, int64(100), anomalies[0].GameID)
}

func TestResolveResults(t *testing.T) {
	games := map[int64]models.Game{
		100: {ID: 100, HomeClubID: 10, AwayClubID: 20, HomeClubGoals: 2, AwayClubGoals: 1},
		101: {ID: 101, HomeClubID: 20, AwayClubID: 10, HomeClubGoals: 2, AwayClubGoals: 2},
		102: {ID: 102, HomeClubID: 30, AwayClubID: 20, HomeClubGoals: 0, AwayClubGoals: 3},
	}
	rep := NewReport("test")
	records := ResolveResults([]models.Appearance{
		{PlayerID: 1, GameID: 100, PlayerClubID: 10}, // home win
		{PlayerID: 1, GameID: 101, PlayerClubID: 10}, // away draw
		{PlayerID: 2, GameID: 100, PlayerClubID: 20}, // away loss
		{PlayerID: 2, GameID: 102, PlayerClubID: 20}, // away win
		{PlayerID: 3, GameID: 102, PlayerClubID: 30}, // home loss
		{PlayerID: 3, GameID: 100, PlayerClubID: 30}, // club on neither side
	}, games, rep)

	assert.Equal(t, Record{Wins: 1, Draws: 1}, records[1])
	// wins for a later club add to losses at an earlier one
	assert.Equal(t, Record{Wins: 1, Losses: 1}, records[2])
	assert.Equal(t, Record{Losses: 1}, records[3])

	anomalies := rep.IssuesOf(IssueAnomaly)
	require.Len(t, anomalies, 1)
	assert.Equal(t, int64(30), anomalies[0].ClubID)
	assert.NoError(t, rep.Err())
}

func TestResolveResults_UnplayedGame(t *testing.T) {
	games := map[int64]models.Game{
		200: {ID: 200, HomeClubID: 10, AwayClubID: 20, Unplayed: true},
	}
	rep := NewReport("test")
	records := ResolveResults([]models.Appearance{
		{PlayerID: 1, GameID: 200, PlayerClubID: 10},
		{PlayerID: 2, GameID: 200, PlayerClubID: 20},
	}, games, rep)

	assert.Equal(t, Record{}, records[1])
	assert.Equal(t, Record{}, records[2])

	anomalies := rep.IssuesOf(IssueAnomaly)
	require.Len(t, anomalies, 1)
	assert.Equal(t, int64(200), anomalies[0].GameID)
	assert.Equal(t, ErrMissingResult.Error(), anomalies[0].Reason)
	assert.NoError(t, rep.Err())
}

func TestResolveResults_MissingGame(t *testing.T) {
	rep := NewReport("test")
	ResolveResults([]models.Appearance{{PlayerID: 1, GameID: 404, PlayerClubID: 10}}, nil, rep)

	err := rep.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingGame)
	le := lookupErrors(t, err)
	require.Len(t, le, 1)
	assert.Equal(t, int64(404), le[0].GameID)
	assert.Equal(t, stageResults, le[0].Stage)
}

func TestEnrichPlayers(t *testing.T) {
	asOf := time.Date(2021, 6, 8, 0, 0, 0, 0, time.UTC)
	players := frameOf(
		models.Player{ID: 1, ClubID: 10, DateOfBirth: "1990-06-08", Position: "Goalkeeper"},
		models.Player{ID: 2, ClubID: 10, DateOfBirth: "", Position: "Attack", SubPosition: "Centre-Forward"},
		models.Player{ID: 3, ClubID: 77},
	)
	rep := NewReport("test")
	out, err := EnrichPlayers(context.Background(), players, PlayerInputs{
		Clubs:   map[int64]models.Club{10: {ID: 10, PrettyName: "FC A"}},
		Stats:   map[int64]models.PlayerStats{1: {Games: 3, MinutesPlayed: 200}},
		Results: map[int64]Record{1: {Wins: 2, Losses: 1}},
		Values:  valueMap{1: 1_000_000, 3: 5},
		AsOf:    asOf,
	}, rep)
	require.NoError(t, err)
	require.Equal(t, 3, out.Len())

	p1 := out.Records[0]
	assert.Equal(t, "Goalkeeper", p1.SubPosition)
	require.NotNil(t, p1.Age)
	assert.Equal(t, 31, *p1.Age)
	assert.Equal(t, "FC A", p1.ClubName)
	assert.Equal(t, 1_000_000.0, p1.MarketValue)
	assert.Equal(t, models.PlayerStats{Games: 3, MinutesPlayed: 200, Wins: 2, Losses: 1}, p1.Stats)

	p2 := out.Records[1]
	assert.Equal(t, "Centre-Forward", p2.SubPosition)
	assert.Nil(t, p2.Age)
	assert.Zero(t, p2.MarketValue)
	assert.Equal(t, models.PlayerStats{}, p2.Stats)

	// the input frame is not modified
	assert.Equal(t, "Goalkeeper", players.Records[0].Position)
	assert.Equal(t, "", players.Records[0].SubPosition)

	defaults := rep.IssuesOf(IssueDefaulted)
	require.Len(t, defaults, 1)
	assert.Equal(t, int64(2), defaults[0].PlayerID)

	err = rep.Err()
	assert.ErrorIs(t, err, ErrMissingClubName)
	le := lookupErrors(t, err)
	require.Len(t, le, 1)
	assert.Equal(t, int64(3), le[0].PlayerID)
	assert.Equal(t, int64(77), le[0].ClubID)
}

func TestEnrichPlayers_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := EnrichPlayers(ctx, frameOf(models.Player{ID: 1}), PlayerInputs{Values: valueMap{}}, NewReport("test"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAggregateClubValues(t *testing.T) {
	clubs := frameOf(
		models.Club{ID: 10},
		models.Club{ID: 20},
		models.Club{ID: 30},
	)
	players := []models.Player{
		{ID: 1, ClubID: 10, MarketValue: 1_000_000},
		{ID: 2, ClubID: 10, MarketValue: 450_000},
		{ID: 3, ClubID: 20, MarketValue: 0},
	}
	rep := NewReport("test")
	out, values := AggregateClubValues(clubs, players, rep)

	assert.Equal(t, 1_450_000.0, out.Records[0].MarketValue)
	assert.Equal(t, 0.0, out.Records[1].MarketValue)
	assert.Equal(t, 0.0, out.Records[2].MarketValue)
	assert.Equal(t, map[int64]float64{10: 1_450_000, 20: 0, 30: 0}, values)

	// a club whose players are worth 0 is not a default; a club without players is
	defaults := rep.IssuesOf(IssueDefaulted)
	require.Len(t, defaults, 1)
	assert.Equal(t, int64(30), defaults[0].ClubID)
	assert.NoError(t, rep.Err())
}

func TestWeightedMarketValue(t *testing.T) {
	assert.Equal(t, 500_000.0, WeightedMarketValue(1_000_000, 45))
	assert.Equal(t, 1_000_000.0, WeightedMarketValue(1_000_000, 90))
	assert.Equal(t, 0.0, WeightedMarketValue(1_000_000, 0))
	// stoppage time is not clamped
	assert.Equal(t, 1_100_000.0, WeightedMarketValue(900_000, 110))
}

func TestWeightAppearances(t *testing.T) {
	apps := frameOf(
		models.Appearance{PlayerID: 1, GameID: 100, PlayerClubID: 10, MinutesPlayed: 45},
		models.Appearance{PlayerID: 2, GameID: 100, PlayerClubID: 10, MinutesPlayed: 90},
		models.Appearance{PlayerID: 3, GameID: 100, PlayerClubID: 20, MinutesPlayed: 90},
		models.Appearance{PlayerID: 1, GameID: 101, PlayerClubID: 10, MinutesPlayed: 90},
	)
	rep := NewReport("test")
	out, sums := WeightAppearances(apps, map[int64]float64{1: 1_000_000, 2: 450_000, 3: 0}, rep)

	require.NoError(t, rep.Err())
	assert.Equal(t, 500_000.0, out.Records[0].WeightedMarketValue)
	assert.Equal(t, 450_000.0, out.Records[1].WeightedMarketValue)
	assert.Equal(t, map[SideKey]float64{
		{GameID: 100, ClubID: 10}: 950_000,
		{GameID: 100, ClubID: 20}: 0,
		{GameID: 101, ClubID: 10}: 1_000_000,
	}, sums)

	for key, sum := range sums {
		var total float64
		for _, a := range out.Records {
			if a.GameID == key.GameID && a.PlayerClubID == key.ClubID {
				total += a.WeightedMarketValue
			}
		}
		assert.Equal(t, total, sum)
	}
}

func TestWeightAppearances_MissingPlayer(t *testing.T) {
	rep := NewReport("test")
	_, sums := WeightAppearances(frameOf(
		models.Appearance{PlayerID: 9, GameID: 100, PlayerClubID: 10, MinutesPlayed: 90},
	), map[int64]float64{}, rep)

	assert.Empty(t, sums)
	err := rep.Err()
	assert.ErrorIs(t, err, ErrMissingPlayer)
	le := lookupErrors(t, err)
	require.Len(t, le, 1)
	assert.Equal(t, int64(9), le[0].PlayerID)
	assert.Equal(t, int64(100), le[0].GameID)
	assert.Equal(t, int64(10), le[0].ClubID)
}

func TestEnrichGames(t *testing.T) {
	in := GameInputs{
		Clubs: map[int64]models.Club{
			10: {ID: 10, PrettyName: "FC A"},
			20: {ID: 20, PrettyName: "FC B"},
		},
		ClubValues: map[int64]float64{10: 1_450_000, 20: 2_500_000},
		Weighted: map[SideKey]float64{
			{GameID: 100, ClubID: 10}: 950_000,
			{GameID: 100, ClubID: 20}: 2_500_000,
		},
	}
	rep := NewReport("test")
	out := EnrichGames(frameOf(models.Game{ID: 100, HomeClubID: 10, AwayClubID: 20}), in, rep)

	require.NoError(t, rep.Err())
	g := out.Records[0]
	assert.Equal(t, "FC A", g.HomeClubName)
	assert.Equal(t, "FC B", g.AwayClubName)
	assert.Equal(t, 1_450_000.0, g.MarketValueHome)
	assert.Equal(t, 2_500_000.0, g.MarketValueAway)
	assert.Equal(t, 950_000.0, g.WeightedMarketValueHome)
	assert.Equal(t, 2_500_000.0, g.WeightedMarketValueAway)
}

func TestEnrichGames_StrictLookups(t *testing.T) {
	in := GameInputs{
		Clubs:      map[int64]models.Club{10: {ID: 10, PrettyName: "FC A"}},
		ClubValues: map[int64]float64{10: 1_000},
		Weighted:   map[SideKey]float64{{GameID: 100, ClubID: 10}: 500},
	}
	rep := NewReport("test")
	EnrichGames(frameOf(models.Game{ID: 100, HomeClubID: 10, AwayClubID: 20}), in, rep)

	err := rep.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingClubName)
	assert.ErrorIs(t, err, ErrMissingClubValue)
	assert.ErrorIs(t, err, ErrMissingWeightedValue)

	for _, le := range lookupErrors(t, err) {
		assert.Equal(t, stageGames, le.Stage)
		assert.Equal(t, int64(100), le.GameID)
		assert.Equal(t, int64(20), le.ClubID)
	}
	assert.Equal(t, 3, rep.Summary.Failed)
}

func TestClubWithoutPlayersIsLenientButGameLookupIsStrict(t *testing.T) {
	rep := NewReport("test")
	clubs := frameOf(models.Club{ID: 10, PrettyName: "FC A"}, models.Club{ID: 20, PrettyName: "FC B"})
	_, values := AggregateClubValues(clubs, []models.Player{{ID: 1, ClubID: 10, MarketValue: 100}}, rep)

	// club 20 has no players: defaulted to 0, not a failure
	assert.Equal(t, 0.0, values[20])
	require.NoError(t, rep.Err())

	// the same game is missing a weighted sum for club 20: that fails
	EnrichGames(frameOf(models.Game{ID: 100, HomeClubID: 10, AwayClubID: 20}), GameInputs{
		Clubs:      map[int64]models.Club{10: clubs.Records[0], 20: clubs.Records[1]},
		ClubValues: values,
		Weighted:   map[SideKey]float64{{GameID: 100, ClubID: 10}: 100},
	}, rep)

	err := rep.Err()
	assert.ErrorIs(t, err, ErrMissingWeightedValue)
	assert.NotErrorIs(t, err, ErrMissingClubValue)
	assert.Equal(t, 1, rep.Summary.Defaulted)
	assert.Equal(t, 1, rep.Summary.Failed)
}

func TestLookupError(t *testing.T) {
	err := &LookupError{Stage: "games", GameID: 100, ClubID: 20, Err: ErrMissingClubName}
	assert.Equal(t, "games game 100 club 20: club name not found", err.Error())
	assert.ErrorIs(t, err, ErrMissingClubName)
}

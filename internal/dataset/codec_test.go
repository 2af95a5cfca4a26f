package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/senseiyukisan/sports-analytics/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T, csv string) *table.Table {
	t.Helper()
	tbl, err := table.Read(strings.NewReader(csv))
	require.NoError(t, err)
	return tbl
}

func TestParseID(t *testing.T) {
	v, err := ParseID("3333")
	require.NoError(t, err)
	assert.Equal(t, int64(3333), v)

	v, err = ParseID("3333.0")
	require.NoError(t, err)
	assert.Equal(t, int64(3333), v)

	for _, bad := range []string{"", "12.5", "abc"} {
		_, err := ParseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"90", 90, false},
		{"96.0", 96, false},
		{"-1", 0, true},
		{"1.5", 0, true},
		{"n/a", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseCount(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseAmount(t *testing.T) {
	v, err := ParseAmount("1500000")
	require.NoError(t, err)
	assert.Equal(t, 1500000.0, v)

	v, err = ParseAmount("")
	require.NoError(t, err)
	assert.Zero(t, v)

	_, err = ParseAmount("-5")
	assert.Error(t, err)
	_, err = ParseAmount("NaN")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "500000", FormatAmount(500000))
	assert.Equal(t, "1250000.5", FormatAmount(1250000.5))
	assert.Equal(t, "", FormatAge(nil))
	age := 27
	assert.Equal(t, "27", FormatAge(&age))
	assert.Equal(t, "42", FormatID(42))
	assert.Equal(t, "7", FormatCount(7))
}

func TestDecodePlayers(t *testing.T) {
	tbl := mustTable(t, "player_id,club_id,pretty_name,date_of_birth,position,sub_position,url,foot\n"+
		"1,10,Harry Kane,1993-07-28,Attack,Centre-Forward,https://example.test/kane,right\n"+
		"2,11,Hugo Lloris,,Goalkeeper,,https://example.test/lloris,left\n")

	frame, err := DecodePlayers(tbl)
	require.NoError(t, err)
	require.Len(t, frame.Records, 2)

	kane := frame.Records[0]
	assert.Equal(t, int64(1), kane.ID)
	assert.Equal(t, int64(10), kane.ClubID)
	assert.Equal(t, "Centre-Forward", kane.SubPosition)
	assert.Nil(t, kane.Age)
	assert.Zero(t, kane.Stats.Games)
	assert.Equal(t, "", frame.Records[1].DateOfBirth)
}

func TestDecodePlayers_UnresolvableClub(t *testing.T) {
	tbl := mustTable(t, "player_id,club_id,pretty_name\n"+
		"1,,Blank\n"+
		"2,n/a,Garbled\n"+
		"3,12.0,Float\n")

	frame, err := DecodePlayers(tbl)
	require.NoError(t, err)
	require.Len(t, frame.Records, 3)
	assert.Zero(t, frame.Records[0].ClubID)
	assert.Zero(t, frame.Records[1].ClubID)
	assert.Equal(t, int64(12), frame.Records[2].ClubID)
}

func TestDecodePlayers_Errors(t *testing.T) {
	_, err := DecodePlayers(mustTable(t, "player_id,name\n1,x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "club_id")

	_, err = DecodePlayers(mustTable(t, "player_id,club_id\n1,10\nx,10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3 column player_id")
}

func TestDecodeGames(t *testing.T) {
	tbl := mustTable(t, "game_id,home_club_id,away_club_id,home_club_goals,away_club_goals,league_code,stadium\n"+
		"100,10,11,2,1,GB1,Wembley\n")

	frame, err := DecodeGames(tbl)
	require.NoError(t, err)
	require.Len(t, frame.Records, 1)
	game := frame.Records[0]
	assert.Equal(t, int64(100), game.ID)
	assert.Equal(t, 2, game.HomeClubGoals)
	assert.Equal(t, "GB1", game.LeagueCode)

	assert.False(t, game.Unplayed)

	frame, err = DecodeGames(mustTable(t, "game_id,home_club_id,away_club_id,home_club_goals,away_club_goals,league_code\n"+
		"101,10,11,,,GB1\n"+
		"102,10,11,0,,GB1\n"+
		"103,10,11,0,0,GB1\n"))
	require.NoError(t, err)
	assert.True(t, frame.Records[0].Unplayed)
	assert.True(t, frame.Records[1].Unplayed)
	assert.False(t, frame.Records[2].Unplayed)

	_, err = DecodeGames(mustTable(t, "game_id,home_club_id,away_club_id\n1,2,3\n"))
	assert.Error(t, err)
}

func TestDecodeAppearances(t *testing.T) {
	tbl := mustTable(t, "appearance_id,game_id,player_id,player_club_id,league_id,goals,assists,minutes_played,yellow_cards,red_cards\n"+
		"a1,100,1,10,GB1,1,0,90,1,0\n")

	frame, err := DecodeAppearances(tbl)
	require.NoError(t, err)
	app := frame.Records[0]
	assert.Equal(t, int64(100), app.GameID)
	assert.Equal(t, int64(10), app.PlayerClubID)
	assert.Equal(t, "GB1", app.LeagueID)
	assert.Equal(t, 90, app.MinutesPlayed)
	assert.Equal(t, 1, app.YellowCards)
}

func TestLoadRaw(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write(PlayersFile, "player_id,club_id\n1,10\n")
	write(ClubsFile, "club_id,pretty_name,league_id\n10,Fc Arsenal,GB1\n")
	write(AppearancesFile, "player_id,game_id,player_club_id\n1,100,10\n")
	write(GamesFile, "game_id,home_club_id,away_club_id,home_club_goals,away_club_goals,league_code\n100,10,11,0,0,GB1\n")

	raw, err := LoadRaw(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, raw.Players.Len())
	assert.Equal(t, 1, raw.Clubs.Len())
	assert.Equal(t, 1, raw.Appearances.Len())
	assert.Equal(t, 1, raw.Games.Len())

	require.NoError(t, os.Remove(filepath.Join(dir, GamesFile)))
	_, err = LoadRaw(dir)
	assert.Error(t, err)
}

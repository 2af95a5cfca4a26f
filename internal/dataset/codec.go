package dataset

import (
	"fmt"
	"math"
	"strconv"

	"github.com/senseiyukisan/sports-analytics/internal/models"
	"github.com/senseiyukisan/sports-analytics/internal/table"
)

// rowDecoder reads typed cells from one row and keeps the first error
type rowDecoder struct {
	t    *table.Table
	name string
	row  int
	err  error
}

func (d *rowDecoder) fail(col string, err error) {
	if d.err == nil {
		// +2: one for the header line, one for 1-based line numbers
		d.err = fmt.Errorf("%s line %d column %s: %w", d.name, d.row+2, col, err)
	}
}

func (d *rowDecoder) text(col string) string {
	return d.t.Value(d.row, col)
}

func (d *rowDecoder) id(col string) int64 {
	v, err := ParseID(d.t.Value(d.row, col))
	if err != nil {
		d.fail(col, err)
	}
	return v
}

// optionalID reads a reference that may be blank or malformed; both decode as 0, which matches no row
func (d *rowDecoder) optionalID(col string) int64 {
	v, err := ParseID(d.t.Value(d.row, col))
	if err != nil {
		return 0
	}
	return v
}

func (d *rowDecoder) count(col string) int {
	v, err := ParseCount(d.t.Value(d.row, col))
	if err != nil {
		d.fail(col, err)
	}
	return v
}

func (d *rowDecoder) amount(col string) float64 {
	v, err := ParseAmount(d.t.Value(d.row, col))
	if err != nil {
		d.fail(col, err)
	}
	return v
}

func (d *rowDecoder) age(col string) *int {
	s := d.t.Value(d.row, col)
	if s == "" {
		return nil
	}
	v, err := ParseCount(s)
	if err != nil {
		d.fail(col, err)
		return nil
	}
	return &v
}

// ParseID parses an integer identifier. Integral floats such as "3333.0" are accepted.
func ParseID(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty identifier")
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid identifier %q", s)
	}
	return int64(f), nil
}

// ParseCount parses a non-negative integer; empty means 0
func ParseCount(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) {
			return 0, fmt.Errorf("invalid count %q", s)
		}
		v = int(f)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative count %q", s)
	}
	return v, nil
}

// ParseAmount parses a non-negative currency amount; empty means 0
func ParseAmount(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative amount %q", s)
	}
	return v, nil
}

func FormatID(v int64) string {
	return strconv.FormatInt(v, 10)
}

func FormatCount(v int) string {
	return strconv.Itoa(v)
}

// FormatAmount uses the shortest representation that round-trips, so reruns are byte-identical
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatAge renders a missing age as an empty cell
func FormatAge(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func DecodePlayers(t *table.Table) (table.Frame[models.Player], error) {
	if err := t.Require(ColPlayerID, ColClubID); err != nil {
		return table.Frame[models.Player]{}, fmt.Errorf("players: %w", err)
	}
	players := make([]models.Player, t.Len())
	for i := range t.Rows {
		d := &rowDecoder{t: t, name: "players", row: i}
		players[i] = models.Player{
			ID:          d.id(ColPlayerID),
			ClubID:      d.optionalID(ColClubID),
			PrettyName:  d.text(ColPrettyName),
			DateOfBirth: d.text(ColDateOfBirth),
			Position:    d.text(ColPosition),
			SubPosition: d.text(ColSubPosition),
			URL:         d.text(ColURL),
			LeagueID:    d.text(ColLeagueID),
			ClubName:    d.text(ColClubName),
			Age:         d.age(ColAge),
			MarketValue: d.amount(ColMarketValue),
			Stats: models.PlayerStats{
				Games:         d.count(ColGames),
				MinutesPlayed: d.count(ColMinutesPlayed),
				Goals:         d.count(ColGoals),
				Assists:       d.count(ColAssists),
				YellowCards:   d.count(ColYellowCards),
				RedCards:      d.count(ColRedCards),
				Wins:          d.count(ColWins),
				Draws:         d.count(ColDraws),
				Losses:        d.count(ColLosses),
			},
		}
		if d.err != nil {
			return table.Frame[models.Player]{}, d.err
		}
	}
	return table.Frame[models.Player]{Table: t, Records: players}, nil
}

func DecodeClubs(t *table.Table) (table.Frame[models.Club], error) {
	if err := t.Require(ColClubID, ColLeagueID); err != nil {
		return table.Frame[models.Club]{}, fmt.Errorf("clubs: %w", err)
	}
	clubs := make([]models.Club, t.Len())
	for i := range t.Rows {
		d := &rowDecoder{t: t, name: "clubs", row: i}
		clubs[i] = models.Club{
			ID:          d.id(ColClubID),
			Name:        d.text(ColName),
			PrettyName:  d.text(ColPrettyName),
			LeagueID:    d.text(ColLeagueID),
			MarketValue: d.amount(ColMarketValue),
		}
		if d.err != nil {
			return table.Frame[models.Club]{}, d.err
		}
	}
	return table.Frame[models.Club]{Table: t, Records: clubs}, nil
}

func DecodeAppearances(t *table.Table) (table.Frame[models.Appearance], error) {
	if err := t.Require(ColPlayerID, ColGameID, ColPlayerClubID); err != nil {
		return table.Frame[models.Appearance]{}, fmt.Errorf("appearances: %w", err)
	}
	appearances := make([]models.Appearance, t.Len())
	for i := range t.Rows {
		d := &rowDecoder{t: t, name: "appearances", row: i}
		appearances[i] = models.Appearance{
			PlayerID:            d.id(ColPlayerID),
			GameID:              d.id(ColGameID),
			PlayerClubID:        d.id(ColPlayerClubID),
			LeagueID:            d.text(ColLeagueID),
			MinutesPlayed:       d.count(ColMinutesPlayed),
			Goals:               d.count(ColGoals),
			Assists:             d.count(ColAssists),
			YellowCards:         d.count(ColYellowCards),
			RedCards:            d.count(ColRedCards),
			WeightedMarketValue: d.amount(ColWeightedMarketValue),
		}
		if d.err != nil {
			return table.Frame[models.Appearance]{}, d.err
		}
	}
	return table.Frame[models.Appearance]{Table: t, Records: appearances}, nil
}

func DecodeGames(t *table.Table) (table.Frame[models.Game], error) {
	if err := t.Require(ColGameID, ColHomeClubID, ColAwayClubID, ColHomeClubGoals, ColAwayClubGoals, ColLeagueCode); err != nil {
		return table.Frame[models.Game]{}, fmt.Errorf("games: %w", err)
	}
	games := make([]models.Game, t.Len())
	for i := range t.Rows {
		d := &rowDecoder{t: t, name: "games", row: i}
		games[i] = models.Game{
			ID:                      d.id(ColGameID),
			HomeClubID:              d.id(ColHomeClubID),
			AwayClubID:              d.id(ColAwayClubID),
			HomeClubGoals:           d.count(ColHomeClubGoals),
			AwayClubGoals:           d.count(ColAwayClubGoals),
			LeagueCode:              d.text(ColLeagueCode),
			HomeClubName:            d.text(ColHomeClubName),
			AwayClubName:            d.text(ColAwayClubName),
			MarketValueHome:         d.amount(ColMarketValueHome),
			MarketValueAway:         d.amount(ColMarketValueAway),
			WeightedMarketValueHome: d.amount(ColWeightedMarketValueHome),
			WeightedMarketValueAway: d.amount(ColWeightedMarketValueAway),
			Unplayed:                d.text(ColHomeClubGoals) == "" || d.text(ColAwayClubGoals) == "",
		}
		if d.err != nil {
			return table.Frame[models.Game]{}, d.err
		}
	}
	return table.Frame[models.Game]{Table: t, Records: games}, nil
}

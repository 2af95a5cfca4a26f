package models

// Player is one row of the players export plus the columns the pipeline derives
type Player struct {
	ID          int64  `json:"player_id"`
	ClubID      int64  `json:"club_id"`
	PrettyName  string `json:"pretty_name"`
	DateOfBirth string `json:"date_of_birth"`
	Position    string `json:"position"`
	SubPosition string `json:"sub_position"`
	URL         string `json:"url"`

	LeagueID    string      `json:"league_id"`
	ClubName    string      `json:"club_name"`
	Age         *int        `json:"age"`
	MarketValue float64     `json:"market_value"`
	Stats       PlayerStats `json:"stats"`
}

// PlayerStats are the season aggregates built from appearances
type PlayerStats struct {
	Games         int `json:"games"`
	MinutesPlayed int `json:"minutes_played"`
	Goals         int `json:"goals"`
	Assists       int `json:"assists"`
	YellowCards   int `json:"yellow_cards"`
	RedCards      int `json:"red_cards"`
	Wins          int `json:"wins"`
	Draws         int `json:"draws"`
	Losses        int `json:"losses"`
}

type Club struct {
	ID          int64   `json:"club_id"`
	Name        string  `json:"name"`
	PrettyName  string  `json:"pretty_name"`
	LeagueID    string  `json:"league_id"`
	MarketValue float64 `json:"market_value"`
}

type Appearance struct {
	PlayerID      int64  `json:"player_id"`
	GameID        int64  `json:"game_id"`
	PlayerClubID  int64  `json:"player_club_id"`
	LeagueID      string `json:"league_id"`
	MinutesPlayed int    `json:"minutes_played"`
	Goals         int    `json:"goals"`
	Assists       int    `json:"assists"`
	YellowCards   int    `json:"yellow_cards"`
	RedCards      int    `json:"red_cards"`

	WeightedMarketValue float64 `json:"weighted_market_value"`
}

type Game struct {
	ID            int64  `json:"game_id"`
	HomeClubID    int64  `json:"home_club_id"`
	AwayClubID    int64  `json:"away_club_id"`
	HomeClubGoals int    `json:"home_club_goals"`
	AwayClubGoals int    `json:"away_club_goals"`
	LeagueCode    string `json:"league_code"`

	HomeClubName            string  `json:"home_club_name"`
	AwayClubName            string  `json:"away_club_name"`
	MarketValueHome         float64 `json:"market_value_home"`
	MarketValueAway         float64 `json:"market_value_away"`
	WeightedMarketValueHome float64 `json:"weighted_market_value_home"`
	WeightedMarketValueAway float64 `json:"weighted_market_value_away"`

	// Unplayed is set when a goals cell is blank; goals then read as 0
	Unplayed bool `json:"-"`
}

// Side returns which side of the game clubID played on
func (g Game) Side(clubID int64) (Side, bool) {
	switch clubID {
	case g.HomeClubID:
		return SideHome, true
	case g.AwayClubID:
		return SideAway, true
	}
	return "", false
}

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

package dataset

// Column names shared by the raw exports and the enriched outputs
const (
	ColPlayerID     = "player_id"
	ColClubID       = "club_id"
	ColGameID       = "game_id"
	ColPlayerClubID = "player_club_id"
	ColLeagueID     = "league_id"
	ColLeagueCode   = "league_code"
	ColPrettyName   = "pretty_name"
	ColName         = "name"
	ColDateOfBirth  = "date_of_birth"
	ColPosition     = "position"
	ColSubPosition  = "sub_position"
	ColURL          = "url"

	ColHomeClubID    = "home_club_id"
	ColAwayClubID    = "away_club_id"
	ColHomeClubGoals = "home_club_goals"
	ColAwayClubGoals = "away_club_goals"

	ColMinutesPlayed = "minutes_played"
	ColGoals         = "goals"
	ColAssists       = "assists"
	ColYellowCards   = "yellow_cards"
	ColRedCards      = "red_cards"
	ColGames         = "games"
	ColWins          = "wins"
	ColDraws         = "draws"
	ColLosses        = "losses"
	ColAge           = "age"
	ColClubName      = "club_name"
	ColMarketValue   = "market_value"

	ColWeightedMarketValue     = "weighted_market_value"
	ColHomeClubName            = "home_club_name"
	ColAwayClubName            = "away_club_name"
	ColMarketValueHome         = "market_value_home"
	ColMarketValueAway         = "market_value_away"
	ColWeightedMarketValueHome = "weighted_market_value_home"
	ColWeightedMarketValueAway = "weighted_market_value_away"
)

// File names inside the input and output directories
const (
	PlayersFile     = "players.csv"
	ClubsFile       = "clubs.csv"
	AppearancesFile = "appearances.csv"
	GamesFile       = "games.csv"

	PlayersOutFile     = "players_updated.csv"
	ClubsOutFile       = "clubs_updated.csv"
	AppearancesOutFile = "appearances_updated.csv"
	GamesOutFile       = "games_updated.csv"
	ReportFile         = "report.json"
)

package models

// DefaultLeagues are the five top-tier leagues every analysis is restricted to
var DefaultLeagues = []string{"GB1", "ES1", "L1", "IT1", "FR1"}

var leagueNames = map[string]string{
	"GB1": "Premier League",
	"ES1": "La Liga",
	"L1":  "Bundesliga",
	"IT1": "Serie A",
	"FR1": "Ligue 1",
}

// LeagueName returns the display name for a league code, or the code itself
func LeagueName(code string) string {
	if name, ok := leagueNames[code]; ok {
		return name
	}
	return code
}

// LeagueSet is a whitelist of league codes
type LeagueSet map[string]struct{}

func NewLeagueSet(codes []string) LeagueSet {
	set := make(LeagueSet, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return set
}

func (s LeagueSet) Contains(code string) bool {
	_, ok := s[code]
	return ok
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/senseiyukisan/sports-analytics/internal/analytics"
	"github.com/senseiyukisan/sports-analytics/internal/dataset"
	"github.com/senseiyukisan/sports-analytics/internal/models"
	"github.com/senseiyukisan/sports-analytics/pkg/utils"
)

type StatsHandler struct {
	data  *dataset.Enriched
	known models.LeagueSet
}

func NewStatsHandler(data *dataset.Enriched, leagues []string) *StatsHandler {
	return &StatsHandler{data: data, known: models.NewLeagueSet(leagues)}
}

func (h *StatsHandler) leagues(c *gin.Context) ([]string, bool) {
	leagues, err := leagueParams(c, h.known)
	if err != nil {
		utils.SendValidationError(c, "Invalid league filter", err.Error())
		return nil, false
	}
	return leagues, true
}

// GetPlayers returns the player details table, highest market value first
// GET /api/v1/players?league=GB1,ES1
func (h *StatsHandler) GetPlayers(c *gin.Context) {
	leagues, ok := h.leagues(c)
	if !ok {
		return
	}
	rows := analytics.PlayersTable(analytics.FilterPlayersByLeague(h.data.Players, leagues))
	utils.SendSuccessWithMeta(c, rows, &utils.Meta{Total: len(rows)})
}

// GetClubs returns clubs with their aggregated market value
// GET /api/v1/clubs?league=GB1
func (h *StatsHandler) GetClubs(c *gin.Context) {
	leagues, ok := h.leagues(c)
	if !ok {
		return
	}
	clubs := analytics.FilterClubsByLeague(h.data.Clubs, leagues)
	if clubs == nil {
		clubs = []models.Club{}
	}
	utils.SendSuccessWithMeta(c, clubs, &utils.Meta{Total: len(clubs)})
}

// GetClubStats returns highest, lowest, mean and median club value
// GET /api/v1/stats/clubs?league=GB1
func (h *StatsHandler) GetClubStats(c *gin.Context) {
	leagues, ok := h.leagues(c)
	if !ok {
		return
	}
	summary, ok := analytics.SummarizeValues(analytics.ClubValues(analytics.FilterClubsByLeague(h.data.Clubs, leagues)))
	if !ok {
		utils.SendNotFound(c, "No clubs for the selected leagues")
		return
	}
	utils.SendSuccess(c, summary)
}

// GetPlayerStats returns highest, lowest, mean and median player value
// GET /api/v1/stats/players?league=GB1
func (h *StatsHandler) GetPlayerStats(c *gin.Context) {
	leagues, ok := h.leagues(c)
	if !ok {
		return
	}
	summary, ok := analytics.SummarizeValues(analytics.PlayerValues(analytics.FilterPlayersByLeague(h.data.Players, leagues)))
	if !ok {
		utils.SendNotFound(c, "No players for the selected leagues")
		return
	}
	utils.SendSuccess(c, summary)
}

// GetClubPositions returns market value per club and position
// GET /api/v1/stats/club-positions?league=GB1
func (h *StatsHandler) GetClubPositions(c *gin.Context) {
	leagues, ok := h.leagues(c)
	if !ok {
		return
	}
	values := analytics.ClubPositionValues(analytics.FilterPlayersByLeague(h.data.Players, leagues))
	utils.SendSuccessWithMeta(c, values, &utils.Meta{Total: len(values)})
}

// GetPositions returns market value by sub position with pitch coordinates
// GET /api/v1/positions?league=GB1&agg=mean
func (h *StatsHandler) GetPositions(c *gin.Context) {
	leagues, ok := h.leagues(c)
	if !ok {
		return
	}
	agg, err := analytics.ParseAggregation(c.Query("agg"))
	if err != nil {
		utils.SendValidationError(c, "Invalid aggregation", "agg must be one of: sum, mean, max")
		return
	}
	values := analytics.ValueByPosition(analytics.FilterPlayersByLeague(h.data.Players, leagues), agg)
	utils.SendSuccessWithMeta(c, values, &utils.Meta{Total: len(values)})
}

type advantageResponse struct {
	Basis         analytics.Basis            `json:"basis"`
	League        string                     `json:"league,omitempty"`
	LeagueName    string                     `json:"league_name,omitempty"`
	LeagueResults *analytics.AdvantageCounts `json:"league_results,omitempty"`
	Club          string                     `json:"club,omitempty"`
	ClubResults   *analytics.AdvantageCounts `json:"club_results,omitempty"`
}

// GetAdvantage compares market value favorites with actual results for a league and/or a club
// GET /api/v1/advantage?league=GB1&club=Fc+Chelsea&basis=weighted
func (h *StatsHandler) GetAdvantage(c *gin.Context) {
	basis, err := analytics.ParseBasis(c.Query("basis"))
	if err != nil {
		utils.SendValidationError(c, "Invalid basis", "basis must be one of: weighted, raw")
		return
	}
	league := c.Query("league")
	club := c.Query("club")
	if league == "" && club == "" {
		utils.SendValidationError(c, "Missing filter", "league or club is required")
		return
	}
	if league != "" && !h.known.Contains(league) {
		utils.SendValidationError(c, "Invalid league filter", "unknown league "+league)
		return
	}

	resp := advantageResponse{Basis: basis}
	if league != "" {
		counts := analytics.AdvantageResults(analytics.FilterGamesByLeague(h.data.Games, league), basis)
		resp.League = league
		resp.LeagueName = models.LeagueName(league)
		resp.LeagueResults = &counts
	}
	if club != "" {
		games := analytics.FilterGamesByClub(h.data.Games, club)
		if len(games) == 0 {
			utils.SendNotFound(c, "Club not found")
			return
		}
		counts := analytics.AdvantageResults(games, basis)
		resp.Club = club
		resp.ClubResults = &counts
	}
	utils.SendSuccess(c, resp)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/senseiyukisan/sports-analytics/internal/analytics"
	"github.com/senseiyukisan/sports-analytics/internal/dataset"
	"github.com/senseiyukisan/sports-analytics/internal/models"
	"github.com/senseiyukisan/sports-analytics/pkg/utils"
)

type LeagueHandler struct {
	data    *dataset.Enriched
	leagues []string
	known   models.LeagueSet
}

func NewLeagueHandler(data *dataset.Enriched, leagues []string) *LeagueHandler {
	return &LeagueHandler{
		data:    data,
		leagues: leagues,
		known:   models.NewLeagueSet(leagues),
	}
}

type leagueInfo struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Clubs int    `json:"clubs"`
	Games int    `json:"games"`
}

// ListLeagues returns the served leagues in configured order
// GET /api/v1/leagues
func (h *LeagueHandler) ListLeagues(c *gin.Context) {
	out := make([]leagueInfo, 0, len(h.leagues))
	for _, code := range h.leagues {
		out = append(out, leagueInfo{
			Code:  code,
			Name:  models.LeagueName(code),
			Clubs: len(analytics.FilterClubsByLeague(h.data.Clubs, []string{code})),
			Games: len(analytics.FilterGamesByLeague(h.data.Games, code)),
		})
	}
	utils.SendSuccessWithMeta(c, out, &utils.Meta{Total: len(out)})
}

// GetLeagueClubs returns the club names of a league, alphabetically
// GET /api/v1/leagues/:code/clubs
func (h *LeagueHandler) GetLeagueClubs(c *gin.Context) {
	code := c.Param("code")
	if !h.known.Contains(code) {
		utils.SendNotFound(c, "League not found")
		return
	}
	clubs := analytics.ClubOptions(h.data.Games, code)
	utils.SendSuccessWithMeta(c, clubs, &utils.Meta{Total: len(clubs)})
}

// GetStandings returns the league table built from the season's games
// GET /api/v1/leagues/:code/standings
func (h *LeagueHandler) GetStandings(c *gin.Context) {
	code := c.Param("code")
	if !h.known.Contains(code) {
		utils.SendNotFound(c, "League not found")
		return
	}
	table := analytics.Standings(analytics.FilterGamesByLeague(h.data.Games, code))
	utils.SendSuccessWithMeta(c, table, &utils.Meta{Total: len(table)})
}

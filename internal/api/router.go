package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/senseiyukisan/sports-analytics/internal/api/handlers"
	"github.com/senseiyukisan/sports-analytics/internal/api/middleware"
	"github.com/senseiyukisan/sports-analytics/internal/dataset"
	"github.com/senseiyukisan/sports-analytics/pkg/config"
	"github.com/senseiyukisan/sports-analytics/pkg/utils"
)

// NewRouter builds the read-only stats API over the enriched tables
func NewRouter(cfg *config.Config, data *dataset.Enriched, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.WithField("panic", recovered).Error("Recovered from panic")
		utils.SendInternalError(c, "Internal server error")
	}))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	healthHandler := handlers.NewHealthHandler(data, time.Now())
	router.GET("/health", healthHandler.GetHealth)
	router.HEAD("/health", healthHandler.GetHealth)

	SetupRoutes(router.Group("/api/v1"), data, cfg.Leagues)
	return router
}

// SetupRoutes registers the league and stats endpoints on group
func SetupRoutes(group *gin.RouterGroup, data *dataset.Enriched, leagues []string) {
	leagueHandler := handlers.NewLeagueHandler(data, leagues)
	statsHandler := handlers.NewStatsHandler(data, leagues)

	leagueRoutes := group.Group("/leagues")
	{
		leagueRoutes.GET("", leagueHandler.ListLeagues)
		leagueRoutes.GET("/:code/clubs", leagueHandler.GetLeagueClubs)
		leagueRoutes.GET("/:code/standings", leagueHandler.GetStandings)
	}

	group.GET("/players", statsHandler.GetPlayers)
	group.GET("/clubs", statsHandler.GetClubs)
	group.GET("/positions", statsHandler.GetPositions)
	group.GET("/advantage", statsHandler.GetAdvantage)

	stats := group.Group("/stats")
	{
		stats.GET("/clubs", statsHandler.GetClubStats)
		stats.GET("/players", statsHandler.GetPlayerStats)
		stats.GET("/club-positions", statsHandler.GetClubPositions)
	}
}

package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/senseiyukisan/sports-analytics/internal/models"
)

// leagueParams reads ?league= as repeated or comma-separated codes and
// rejects codes outside the served leagues
func leagueParams(c *gin.Context, known models.LeagueSet) ([]string, error) {
	var leagues []string
	for _, raw := range c.QueryArray("league") {
		for _, code := range strings.Split(raw, ",") {
			code = strings.TrimSpace(code)
			if code == "" {
				continue
			}
			if !known.Contains(code) {
				return nil, fmt.Errorf("unknown league %q", code)
			}
			leagues = append(leagues, code)
		}
	}
	return leagues, nil
}

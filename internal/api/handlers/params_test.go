package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senseiyukisan/sports-analytics/internal/models"
)

func TestLeagueParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	known := models.NewLeagueSet(models.DefaultLeagues)

	tests := []struct {
		name    string
		query   string
		want    []string
		wantErr bool
	}{
		{"none", "", nil, false},
		{"single", "league=GB1", []string{"GB1"}, false},
		{"comma list", "league=GB1,%20ES1", []string{"GB1", "ES1"}, false},
		{"repeated", "league=GB1&league=L1", []string{"GB1", "L1"}, false},
		{"empty items", "league=,GB1,", []string{"GB1"}, false},
		{"unknown", "league=GB1,NL1", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/players?"+tt.query, nil)

			got, err := leagueParams(c, known)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "NL1")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

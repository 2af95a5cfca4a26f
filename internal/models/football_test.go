package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameSide(t *testing.T) {
	game := Game{ID: 1, HomeClubID: 10, AwayClubID: 20}

	side, ok := game.Side(10)
	assert.True(t, ok)
	assert.Equal(t, SideHome, side)

	side, ok = game.Side(20)
	assert.True(t, ok)
	assert.Equal(t, SideAway, side)

	_, ok = game.Side(30)
	assert.False(t, ok)
}

func TestLeagueSet(t *testing.T) {
	set := NewLeagueSet(DefaultLeagues)

	for _, code := range []string{"GB1", "ES1", "L1", "IT1", "FR1"} {
		assert.True(t, set.Contains(code), code)
	}
	assert.False(t, set.Contains("NL1"))
	assert.False(t, set.Contains(""))
}

func TestLeagueName(t *testing.T) {
	assert.Equal(t, "Bundesliga", LeagueName("L1"))
	assert.Equal(t, "NL1", LeagueName("NL1"))
}

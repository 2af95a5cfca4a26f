package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/senseiyukisan/sports-analytics/internal/models"
)

// Aggregation is how market values of one position are combined
type Aggregation string

const (
	AggSum  Aggregation = "sum"
	AggMean Aggregation = "mean"
	AggMax  Aggregation = "max"
)

// ParseAggregation is case-insensitive; empty means sum
func ParseAggregation(s string) (Aggregation, error) {
	switch Aggregation(strings.ToLower(s)) {
	case "", AggSum:
		return AggSum, nil
	case AggMean:
		return AggMean, nil
	case AggMax:
		return AggMax, nil
	}
	return "", fmt.Errorf("unknown aggregation %q", s)
}

// Point is a spot on a 130x90 pitch, attacking left to right
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

var pitchPositions = map[string]Point{
	"Goalkeeper":         {10, 45},
	"Right-Back":         {25, 20},
	"Centre-Back":        {25, 45},
	"Left-Back":          {25, 70},
	"Right Midfield":     {65, 20},
	"Defensive Midfield": {45, 45},
	"Central Midfield":   {65, 45},
	"Attacking Midfield": {90, 45},
	"Left Midfield":      {65, 70},
	"Right Winger":       {100, 20},
	"Second Striker":     {100, 45},
	"Centre-Forward":     {110, 45},
	"Left Winger":        {100, 70},
}

// PitchPosition returns the pitch coordinates of a sub position
func PitchPosition(subPosition string) (Point, bool) {
	p, ok := pitchPositions[subPosition]
	return p, ok
}

type PositionValue struct {
	SubPosition string  `json:"sub_position"`
	Point       Point   `json:"point"`
	MarketValue float64 `json:"market_value"`
	Players     int     `json:"players"`
}

// ValueByPosition aggregates market values per sub position, ordered by
// position name. Positions without pitch coordinates are left out.
func ValueByPosition(players []models.Player, agg Aggregation) []PositionValue {
	byPos := make(map[string]*PositionValue)
	for _, p := range players {
		pt, ok := PitchPosition(p.SubPosition)
		if !ok {
			continue
		}
		pv, ok := byPos[p.SubPosition]
		if !ok {
			pv = &PositionValue{SubPosition: p.SubPosition, Point: pt, MarketValue: p.MarketValue}
			byPos[p.SubPosition] = pv
		} else if agg == AggMax {
			pv.MarketValue = max(pv.MarketValue, p.MarketValue)
		} else {
			pv.MarketValue += p.MarketValue
		}
		pv.Players++
	}

	out := make([]PositionValue, 0, len(byPos))
	for _, pv := range byPos {
		if agg == AggMean {
			pv.MarketValue /= float64(pv.Players)
		}
		out = append(out, *pv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubPosition < out[j].SubPosition })
	return out
}

type ClubPositionValue struct {
	Club        string  `json:"club"`
	Position    string  `json:"position"`
	MarketValue float64 `json:"market_value"`
}

// ClubPositionValues sums market values per (club, position), ordered by club then position
func ClubPositionValues(players []models.Player) []ClubPositionValue {
	type key struct{ club, position string }
	sums := make(map[key]float64)
	for _, p := range players {
		sums[key{p.ClubName, p.Position}] += p.MarketValue
	}

	out := make([]ClubPositionValue, 0, len(sums))
	for k, v := range sums {
		out = append(out, ClubPositionValue{Club: k.club, Position: k.position, MarketValue: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Club != out[j].Club {
			return out[i].Club < out[j].Club
		}
		return out[i].Position < out[j].Position
	})
	return out
}

package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/senseiyukisan/sports-analytics/internal/models"
)

// NamedValue is one club or player and its market value
type NamedValue struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"market_value"`
}

// ValueSummary holds the headline figures of a set of market values.
// Mean and median are truncated to whole currency units.
type ValueSummary struct {
	Highest NamedValue `json:"highest"`
	Lowest  NamedValue `json:"lowest"`
	Mean    int64      `json:"mean"`
	Median  int64      `json:"median"`
	Count   int        `json:"count"`
}

// SummarizeValues returns false for an empty input. Ties for highest and
// lowest go to the first item.
func SummarizeValues(items []NamedValue) (ValueSummary, bool) {
	if len(items) == 0 {
		return ValueSummary{}, false
	}

	s := ValueSummary{Highest: items[0], Lowest: items[0], Count: len(items)}
	sum := decimal.Zero
	values := make([]float64, len(items))
	for i, it := range items {
		if it.Value > s.Highest.Value {
			s.Highest = it
		}
		if it.Value < s.Lowest.Value {
			s.Lowest = it
		}
		sum = sum.Add(decimal.NewFromFloat(it.Value))
		values[i] = it.Value
	}
	s.Mean = sum.Div(decimal.NewFromInt(int64(len(items)))).IntPart()

	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 1 {
		s.Median = decimal.NewFromFloat(values[mid]).IntPart()
	} else {
		s.Median = decimal.NewFromFloat(values[mid-1]).Add(decimal.NewFromFloat(values[mid])).Div(decimal.NewFromInt(2)).IntPart()
	}
	return s, true
}

func ClubValues(clubs []models.Club) []NamedValue {
	out := make([]NamedValue, len(clubs))
	for i, c := range clubs {
		out[i] = NamedValue{ID: c.ID, Name: c.PrettyName, Value: c.MarketValue}
	}
	return out
}

func PlayerValues(players []models.Player) []NamedValue {
	out := make([]NamedValue, len(players))
	for i, p := range players {
		out[i] = NamedValue{ID: p.ID, Name: p.PrettyName, Value: p.MarketValue}
	}
	return out
}

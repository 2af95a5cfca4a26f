package pipeline

import (
	"time"

	"github.com/senseiyukisan/sports-analytics/pkg/config"
)

// Age returns completed years between birth (YYYY-MM-DD) and asOf.
// An absent or unparseable birth date gives nil.
func Age(birth string, asOf time.Time) *int {
	if birth == "" {
		return nil
	}
	b, err := time.Parse(config.AsOfLayout, birth)
	if err != nil {
		return nil
	}

	age := asOf.Year() - b.Year()
	if asOf.Month() < b.Month() || (asOf.Month() == b.Month() && asOf.Day() < b.Day()) {
		age--
	}
	return &age
}

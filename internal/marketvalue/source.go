package marketvalue

import (
	"context"

	"github.com/senseiyukisan/sports-analytics/internal/models"
)

// Source produces the raw market value token for a player
type Source interface {
	Name() string
	FetchToken(ctx context.Context, player models.Player) (string, error)
}

// DisabledSource never has a token; every player resolves to the default
type DisabledSource struct{}

func (DisabledSource) Name() string { return "none" }

func (DisabledSource) FetchToken(context.Context, models.Player) (string, error) {
	return "", ErrNoToken
}

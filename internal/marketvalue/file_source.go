package marketvalue

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/senseiyukisan/sports-analytics/internal/dataset"
	"github.com/senseiyukisan/sports-analytics/internal/models"
	"github.com/senseiyukisan/sports-analytics/internal/table"
)

// FileSource serves tokens from a player_id,market_value CSV snapshot
type FileSource struct {
	tokens map[int64]string
}

// LoadFileSource reads a snapshot. Duplicate player ids keep the last row.
func LoadFileSource(path string) (*FileSource, error) {
	t, err := table.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load market value snapshot: %w", err)
	}
	if err := t.Require(dataset.ColPlayerID, dataset.ColMarketValue); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	tokens := make(map[int64]string, t.Len())
	for i := 0; i < t.Len(); i++ {
		id, err := dataset.ParseID(t.Value(i, dataset.ColPlayerID))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, i+2, err)
		}
		tokens[id] = t.Value(i, dataset.ColMarketValue)
	}
	return &FileSource{tokens: tokens}, nil
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) FetchToken(_ context.Context, player models.Player) (string, error) {
	token, ok := s.tokens[player.ID]
	if !ok || strings.TrimSpace(token) == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Len returns the number of players in the snapshot
func (s *FileSource) Len() int { return len(s.tokens) }

// WriteSnapshot stores raw tokens in the format LoadFileSource reads, ordered by player id
func WriteSnapshot(path string, tokens map[int64]string) error {
	ids := make([]int64, 0, len(tokens))
	for id := range tokens {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, []string{dataset.FormatID(id), tokens[id]})
	}
	return table.New([]string{dataset.ColPlayerID, dataset.ColMarketValue}, rows).WriteFile(path)
}

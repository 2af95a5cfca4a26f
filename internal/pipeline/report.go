package pipeline

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/senseiyukisan/sports-analytics/internal/table"
	"github.com/senseiyukisan/sports-analytics/pkg/logger"
)

type IssueKind string

const (
	IssueDropped   IssueKind = "dropped"
	IssueDefaulted IssueKind = "defaulted"
	IssueAnomaly   IssueKind = "anomaly"
	IssueFailed    IssueKind = "failed"
)

// Issue is one row that did not resolve cleanly
type Issue struct {
	Kind     IssueKind `json:"kind"`
	Stage    string    `json:"stage"`
	GameID   int64     `json:"game_id,omitempty"`
	ClubID   int64     `json:"club_id,omitempty"`
	PlayerID int64     `json:"player_id,omitempty"`
	Reason   string    `json:"reason"`
}

// TableCounts are the row counts of one table before and after league filtering
type TableCounts struct {
	Input    int `json:"input"`
	Filtered int `json:"filtered"`
}

type StageTiming struct {
	Stage      string `json:"stage"`
	DurationMS int64  `json:"duration_ms"`
	Rows       int    `json:"rows"`
}

type Summary struct {
	Dropped   int `json:"dropped"`
	Defaulted int `json:"defaulted"`
	Anomalies int `json:"anomalies"`
	Failed    int `json:"failed"`
}

// Report describes one pipeline run and is written next to the outputs
type Report struct {
	RunID             string                 `json:"run_id"`
	StartedAt         time.Time              `json:"started_at"`
	FinishedAt        time.Time              `json:"finished_at"`
	AsOf              string                 `json:"as_of"`
	Leagues           []string               `json:"leagues"`
	MarketValueSource string                 `json:"market_value_source"`
	Tables            map[string]TableCounts `json:"tables"`
	Stages            []StageTiming          `json:"stages"`
	Summary           Summary                `json:"summary"`
	Issues            []Issue                `json:"issues"`
	Error             string                 `json:"error,omitempty"`

	failures []error
	log      *logrus.Entry
}

// NewReport starts an empty report for one run
func NewReport(runID string) *Report {
	return &Report{
		RunID:  runID,
		Tables: make(map[string]TableCounts),
		Issues: []Issue{},
		log:    logger.WithRunContext(runID),
	}
}

func (r *Report) record(kind IssueKind, e *LookupError) {
	r.Issues = append(r.Issues, Issue{
		Kind:     kind,
		Stage:    e.Stage,
		GameID:   e.GameID,
		ClubID:   e.ClubID,
		PlayerID: e.PlayerID,
		Reason:   e.Err.Error(),
	})
	entry := r.log.WithFields(logrus.Fields{
		"stage":     e.Stage,
		"game_id":   e.GameID,
		"club_id":   e.ClubID,
		"player_id": e.PlayerID,
	})
	switch kind {
	case IssueDropped:
		r.Summary.Dropped++
		entry.Debugf("Row dropped: %v", e.Err)
	case IssueDefaulted:
		r.Summary.Defaulted++
		entry.Debugf("Value defaulted: %v", e.Err)
	case IssueAnomaly:
		r.Summary.Anomalies++
		entry.Warnf("Data anomaly: %v", e.Err)
	case IssueFailed:
		r.Summary.Failed++
		r.failures = append(r.failures, e)
		entry.Errorf("Lookup failed: %v", e.Err)
	}
}

// Err joins every hard failure of the run, nil when there were none
func (r *Report) Err() error {
	return errors.Join(r.failures...)
}

// IssuesOf returns the issues of one kind in the order they were recorded
func (r *Report) IssuesOf(kind IssueKind) []Issue {
	var out []Issue
	for _, is := range r.Issues {
		if is.Kind == kind {
			out = append(out, is)
		}
	}
	return out
}

// WriteFile stores the report as indented JSON, atomically
func (r *Report) WriteFile(path string) error {
	return table.WriteFileAtomic(path, func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	})
}

package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Status classifies how a single row lookup was resolved
type Status string

const (
	StatusOK        Status = "ok"
	StatusDefaulted Status = "defaulted"
	StatusFailed    Status = "failed"
)

// Resolution is the outcome of one row lookup: a value, or a default with its reason, or a failure
type Resolution[T any] struct {
	Value  T
	Status Status
	Err    *LookupError
}

func resolved[T any](v T) Resolution[T] {
	return Resolution[T]{Value: v, Status: StatusOK}
}

func defaulted[T any](v T, err *LookupError) Resolution[T] {
	return Resolution[T]{Value: v, Status: StatusDefaulted, Err: err}
}

func failed[T any](err *LookupError) Resolution[T] {
	return Resolution[T]{Status: StatusFailed, Err: err}
}

// Soft defaults and drops
var (
	ErrUnknownClub       = errors.New("club not found")
	ErrUnresolvedLeague  = errors.New("league could not be resolved")
	ErrNoMarketValue     = errors.New("market value unavailable")
	ErrClubWithoutPlayer = errors.New("club has no players")
)

// Anomalies
var (
	ErrSideMismatch        = errors.New("player club is neither home nor away")
	ErrDuplicateAppearance = errors.New("duplicate appearance for game")
	ErrMissingResult       = errors.New("game has no recorded result")
)

// Hard failures
var (
	ErrMissingPlayer        = errors.New("referenced player not found")
	ErrMissingGame          = errors.New("referenced game not found")
	ErrMissingClubName      = errors.New("club name not found")
	ErrMissingClubValue     = errors.New("club market value not found")
	ErrMissingWeightedValue = errors.New("weighted market value not found")
)

// LookupError carries the row context of a failed or defaulted lookup
type LookupError struct {
	Stage    string
	GameID   int64
	ClubID   int64
	PlayerID int64
	Err      error
}

func (e *LookupError) Error() string {
	var b strings.Builder
	b.WriteString(e.Stage)
	if e.GameID != 0 {
		fmt.Fprintf(&b, " game %d", e.GameID)
	}
	if e.ClubID != 0 {
		fmt.Fprintf(&b, " club %d", e.ClubID)
	}
	if e.PlayerID != 0 {
		fmt.Fprintf(&b, " player %d", e.PlayerID)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

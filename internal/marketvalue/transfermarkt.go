package marketvalue

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/senseiyukisan/sports-analytics/internal/models"
)

// marketValueSelector is the block on a player profile page that holds the current value
const marketValueSelector = "div.dataMarktwert"

// TransfermarktOptions configures the profile page scraper
type TransfermarktOptions struct {
	UserAgent        string
	RequestsPerSec   float64
	Timeout          time.Duration
	MaxRetries       int
	RetryBackoff     time.Duration
	BreakerThreshold int
	BreakerTimeout   time.Duration
}

// TransfermarktSource scrapes the market value token from a player's profile page
type TransfermarktSource struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *logrus.Logger
	opts       TransfermarktOptions
}

// statusError is a non-200 response
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

func (e *statusError) retryable() bool {
	return e.code == http.StatusTooManyRequests || e.code >= 500
}

func NewTransfermarktSource(opts TransfermarktOptions, logger *logrus.Logger) *TransfermarktSource {
	if opts.RequestsPerSec <= 0 {
		opts.RequestsPerSec = 1
	}
	if opts.BreakerThreshold <= 0 {
		opts.BreakerThreshold = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "transfermarkt",
		MaxRequests: 1,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(opts.BreakerThreshold)
		},
		// A page without a value block is an answer, not an outage; a
		// cancelled run says nothing about the site
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNoToken) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"source":     name,
				"from_state": from.String(),
				"to_state":   to.String(),
			}).Warn("Market value source circuit breaker state changed")
		},
	})

	return &TransfermarktSource{
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSec), 1),
		breaker:    breaker,
		logger:     logger,
		opts:       opts,
	}
}

func (s *TransfermarktSource) Name() string { return "transfermarkt" }

// FetchToken downloads the player's profile page and extracts the value token
func (s *TransfermarktSource) FetchToken(ctx context.Context, player models.Player) (string, error) {
	if player.URL == "" {
		return "", fmt.Errorf("player %d has no profile url: %w", player.ID, ErrNoToken)
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.fetchWithRetry(ctx, player.URL)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (s *TransfermarktSource) fetchWithRetry(ctx context.Context, url string) (string, error) {
	var err error
	for attempt := 0; attempt <= s.opts.MaxRetries; attempt++ {
		var token string
		token, err = s.fetchOnce(ctx, url)
		if err == nil {
			return token, nil
		}
		var se *statusError
		if errors.Is(err, ErrNoToken) || (errors.As(err, &se) && !se.retryable()) {
			return "", err
		}
		if attempt == s.opts.MaxRetries {
			break
		}

		wait := s.opts.RetryBackoff * time.Duration(attempt+1)
		s.logger.WithFields(logrus.Fields{
			"url":     url,
			"attempt": attempt + 1,
			"wait":    wait.String(),
		}).Warnf("Profile page request failed: %v", err)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
	}
	return "", err
}

func (s *TransfermarktSource) fetchOnce(ctx context.Context, url string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	if s.opts.UserAgent != "" {
		req.Header.Set("User-Agent", s.opts.UserAgent)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &statusError{code: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse profile page: %w", err)
	}
	block := doc.Find(marketValueSelector).First()
	if block.Length() == 0 {
		return "", fmt.Errorf("%s not found: %w", marketValueSelector, ErrNoToken)
	}
	return ExtractToken(block.Text())
}

// Package nationalbank reads the daily exchange rate feed published by Danmarks Nationalbank.
package nationalbank

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/dkk_exchange_service/internal/apperrors"
	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
	"github.com/SscSPs/dkk_exchange_service/internal/core/ports/feeds"
	"github.com/SscSPs/dkk_exchange_service/internal/platform/metrics"
	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
	"golang.org/x/net/html/charset"
)

// DefaultFeedURL is the public XML endpoint of the Nationalbank rate feed.
const DefaultFeedURL = "https://www.nationalbanken.dk/api/currencyratesxml"

// feedUnits is the number of foreign units each published rate is quoted for.
var feedUnits = decimal.NewFromInt(100)

const dailyRatesDateLayout = "2006-01-02"

// Config controls how the feed is fetched.
type Config struct {
	URL          string
	Timeout      time.Duration
	MaxRetries   uint64
	RetryBackoff time.Duration
}

// Fetcher implements feeds.RateFetcher against the Nationalbank XML feed.
type Fetcher struct {
	cfg     Config
	client  *http.Client
	logger  *slog.Logger
	metrics *metrics.ExchangeMetrics
	now     func() time.Time
}

var _ feeds.RateFetcher = (*Fetcher)(nil)

// NewFetcher creates a Fetcher. Zero values in cfg fall back to sane defaults.
func NewFetcher(cfg Config, logger *slog.Logger, m *metrics.ExchangeMetrics) *Fetcher {
	if cfg.URL == "" {
		cfg.URL = DefaultFeedURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 500 * time.Millisecond
	}
	return &Fetcher{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// FetchLatestRates downloads the feed and returns one candidate per usable record.
// Transport failures and non-200 responses wrap apperrors.ErrFetch, malformed XML wraps apperrors.ErrParse.
func (f *Fetcher) FetchLatestRates(ctx context.Context) ([]domain.RateCandidate, error) {
	f.logger.InfoContext(ctx, "Fetching currency rates", slog.String("url", f.cfg.URL))

	var body []byte
	backoff := retry.WithMaxRetries(f.cfg.MaxRetries, retry.NewExponential(f.cfg.RetryBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		body, err = f.download(ctx)
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrFetch) {
			err = fmt.Errorf("%w: %w", apperrors.ErrFetch, err)
		}
		f.logger.ErrorContext(ctx, "Failed to fetch currency rates", slog.String("error", err.Error()))
		return nil, err
	}

	candidates, err := f.parse(ctx, body)
	if err != nil {
		f.logger.ErrorContext(ctx, "Failed to parse currency rates", slog.String("error", err.Error()))
		return nil, err
	}

	f.logger.InfoContext(ctx, "Successfully fetched currency rates", slog.Int("count", len(candidates)))
	return candidates, nil
}

// download performs one GET. Network errors and 5xx/429 responses are retryable.
func (f *Fetcher) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", apperrors.ErrFetch, err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrFetch, ctx.Err())
		}
		return nil, retry.RetryableError(fmt.Errorf("%w: %v", apperrors.ErrFetch, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("%w: unexpected status %d", apperrors.ErrFetch, resp.StatusCode)
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			return nil, retry.RetryableError(statusErr)
		}
		return nil, statusErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, retry.RetryableError(fmt.Errorf("%w: reading body: %v", apperrors.ErrFetch, err))
	}
	return body, nil
}

// parse walks the document looking for the first <dailyrates> element and every
// <currency> element, at any depth and in any namespace.
func (f *Fetcher) parse(ctx context.Context, body []byte) ([]domain.RateCandidate, error) {
	decoder := xml.NewDecoder(bytes.NewReader(body))
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		foundDailyRates bool
		fetchedAt       time.Time
		records         []currencyRecord
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrParse, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "dailyrates":
			if !foundDailyRates {
				foundDailyRates = true
				fetchedAt = f.parseFeedDate(ctx, attr(start, "id"))
			}
		case "currency":
			records = append(records, currencyRecord{
				code: attr(start, "code"),
				desc: attr(start, "desc"),
				rate: attr(start, "rate"),
			})
		}
	}

	if !foundDailyRates {
		f.logger.WarnContext(ctx, "No dailyrates element found in feed")
		return []domain.RateCandidate{}, nil
	}

	candidates := make([]domain.RateCandidate, 0, len(records))
	for _, rec := range records {
		if candidate, ok := f.toCandidate(ctx, rec, fetchedAt); ok {
			candidates = append(candidates, candidate)
		}
	}
	return candidates, nil
}

func (f *Fetcher) toCandidate(ctx context.Context, rec currencyRecord, fetchedAt time.Time) (domain.RateCandidate, bool) {
	code := strings.TrimSpace(rec.code)
	if code == "" || rec.rate == "" {
		f.skip(metrics.SkipMissingField)
		return domain.RateCandidate{}, false
	}

	perHundred, err := decimal.NewFromString(strings.TrimSpace(rec.rate))
	if err != nil {
		f.logger.WarnContext(ctx, "Failed to parse rate for currency",
			slog.String("currencyCode", code), slog.String("rate", rec.rate))
		f.skip(metrics.SkipBadNumber)
		return domain.RateCandidate{}, false
	}

	name := rec.desc
	if name == "" {
		name = code
	}
	return domain.RateCandidate{
		CurrencyCode: code,
		CurrencyName: name,
		Rate:         perHundred.Div(feedUnits),
		FetchedAt:    fetchedAt,
	}, true
}

func (f *Fetcher) parseFeedDate(ctx context.Context, raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{dailyRatesDateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	f.logger.DebugContext(ctx, "Unparseable dailyrates id, using current time", slog.String("id", raw))
	return f.now().UTC()
}

func (f *Fetcher) skip(reason string) {
	if f.metrics != nil {
		f.metrics.FeedRecordsSkippedTotal.WithLabelValues(reason).Inc()
	}
}

type currencyRecord struct {
	code string
	desc string
	rate string
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

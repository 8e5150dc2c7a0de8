package extracting

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-media-etl/internal/domain"
)

// maxPagesPerWindow stops runaway pagination on a cursor that never ends.
const maxPagesPerWindow = 10000

type Options struct {
	ChunkDays    int
	RequestDelay time.Duration
}

type extractor struct {
	source PageSource
	opts   Options
}

func NewExtractor(source PageSource, opts Options) Extractor {
	if opts.ChunkDays < 1 {
		opts.ChunkDays = 1
	}
	return &extractor{source: source, opts: opts}
}

func (e *extractor) Platform() domain.Platform {
	return e.source.Platform()
}

// Extract pages through every account and window of dateRange. Any page error
// fails the whole extraction; no partial result is returned.
func (e *extractor) Extract(ctx context.Context, accounts []domain.PlatformAccount, dateRange domain.DateRange) (*Result, error) {
	result := &Result{}
	if len(accounts) == 0 {
		return result, nil
	}

	platform := e.source.Platform()
	if err := e.source.Ready(); err != nil {
		return nil, fmt.Errorf("%s: %w", platform, err)
	}

	windows := dateRange.Chunks(e.opts.ChunkDays)

	for _, account := range accounts {
		for _, window := range windows {
			if err := e.extractWindow(ctx, account, window, result); err != nil {
				return nil, fmt.Errorf("%s account %s window %s: %w", platform, account.ID, window, err)
			}
		}

		logrus.WithFields(logrus.Fields{
			"platform":   platform,
			"account_id": account.ID,
			"windows":    len(windows),
		}).Debug("extract: account done")
	}

	logrus.WithFields(logrus.Fields{
		"platform": platform,
		"accounts": len(accounts),
		"records":  len(result.Records),
		"pages":    result.Pages,
	}).Info("extract: platform done")

	return result, nil
}

func (e *extractor) extractWindow(ctx context.Context, account domain.PlatformAccount, window domain.DateRange, result *Result) error {
	cursor := ""
	seen := make(map[string]bool)

	for page := 0; page < maxPagesPerWindow; page++ {
		if page > 0 {
			if err := e.wait(ctx); err != nil {
				return err
			}
		}

		records, err := e.source.FetchPage(ctx, account, window, cursor)
		if err != nil {
			return err
		}

		result.Pages++
		if records == nil {
			return nil
		}
		result.Records = append(result.Records, records.Records...)
		result.Bytes += records.Bytes

		if records.NextCursor == "" {
			return nil
		}
		if seen[records.NextCursor] {
			return fmt.Errorf("pagination cursor %q repeated", records.NextCursor)
		}
		seen[records.NextCursor] = true
		cursor = records.NextCursor
	}

	return fmt.Errorf("pagination exceeded %d pages", maxPagesPerWindow)
}

func (e *extractor) wait(ctx context.Context) error {
	if e.opts.RequestDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(e.opts.RequestDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

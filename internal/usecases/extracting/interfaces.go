package extracting

import (
	"context"

	"github.com/vfg2006/paid-media-etl/internal/domain"
)

// PageSource fetches one page of raw records for an account and window.
// An empty NextCursor ends the window.
type PageSource interface {
	Platform() domain.Platform
	Ready() error
	FetchPage(ctx context.Context, account domain.PlatformAccount, window domain.DateRange, cursor string) (*domain.RecordPage, error)
}

type Extractor interface {
	Platform() domain.Platform
	Extract(ctx context.Context, accounts []domain.PlatformAccount, dateRange domain.DateRange) (*Result, error)
}

type Result struct {
	Records []domain.RawRecord
	Pages   int
	Bytes   int
}

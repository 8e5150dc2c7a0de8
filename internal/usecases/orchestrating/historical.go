package orchestrating

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-media-etl/internal/domain"
	"github.com/vfg2006/paid-media-etl/internal/usecases/extracting"
	"github.com/vfg2006/paid-media-etl/internal/usecases/resolving"
	"github.com/vfg2006/paid-media-etl/pkg/log"
	"github.com/vfg2006/paid-media-etl/pkg/utils"
)

type Output string

const (
	OutputSQL Output = "sql"
	OutputCSV Output = "csv"
)

func ParseOutput(s string) (Output, error) {
	switch output := Output(strings.ToLower(strings.TrimSpace(s))); output {
	case OutputSQL, OutputCSV:
		return output, nil
	case "":
		return OutputCSV, nil
	}
	return "", fmt.Errorf("unknown output %q: want sql or csv", s)
}

type HistoricalRequest struct {
	Client string
	Range  domain.DateRange
	Output Output
	// ChunkDays overrides the historical window size when positive.
	ChunkDays int
	// OutputDir overrides where csv files are written.
	OutputDir string
}

type HistoricalResult struct {
	Client string
	RunID  string
	Rows   int
	// Target is the table name for sql output, the file path for csv output.
	Target string
	Units  []domain.UnitOutcome
}

// Historical backfills one client. Accounts come from the reference file, or
// from the live mapping when the client is not listed there.
func (o *orchestrator) Historical(ctx context.Context, req HistoricalRequest) (*HistoricalResult, error) {
	runID := utils.NewRunID(o.opts.Clock())
	ctx = log.WithRunID(ctx, runID)

	advertiser, err := o.historicalAdvertiser(ctx, req.Client)
	if err != nil {
		return nil, err
	}

	chunkDays := req.ChunkDays
	if chunkDays < 1 {
		chunkDays = o.opts.HistoricalChunkDays
	}
	extractors := make(map[domain.Platform]extracting.Extractor, len(o.sources))
	for platform, source := range o.sources {
		opts := source.Options
		opts.ChunkDays = chunkDays
		extractors[platform] = extracting.NewExtractor(source.Pages, opts)
	}

	logger := logrus.WithFields(logrus.Fields{
		"run_id":     runID,
		"client":     req.Client,
		"date_range": req.Range.String(),
		"chunk_days": chunkDays,
		"output":     req.Output,
	})
	logger.Info("historical fetch started")

	sets, units := o.collect(ctx, runID, advertiser, req.Range, extractors)
	table := domain.CanonicalTable(sets...)
	result := &HistoricalResult{Client: req.Client, RunID: runID, Rows: table.Len(), Units: units}

	if table.Len() == 0 {
		logger.Warn("historical fetch returned no data")
		return result, nil
	}

	switch req.Output {
	case OutputSQL:
		loaded, err := o.loader.LoadPaidTable(ctx, runID, req.Client, table, req.Range)
		if err != nil {
			return result, domain.NewPipelineError(domain.RunStateLoad, req.Client, "", err)
		}
		result.Target = loaded.Table
	default:
		dir := req.OutputDir
		if dir == "" {
			dir = o.opts.OutputDir
		}
		path := filepath.Join(dir, CSVFileName(req.Client))
		if err := writeCSV(path, table); err != nil {
			return result, err
		}
		result.Target = path
	}

	logger.WithFields(logrus.Fields{"rows": result.Rows, "target": result.Target}).Info("historical fetch finished")
	return result, nil
}

// HistoricalAll backfills every client of the reference file. A failing
// client does not stop the others; the first error is returned at the end.
func (o *orchestrator) HistoricalAll(ctx context.Context, req HistoricalRequest) ([]*HistoricalResult, error) {
	clients := o.reference.ClientNames()
	if len(clients) == 0 {
		return nil, fmt.Errorf("%w: reference file lists no clients", domain.ErrUnknownClient)
	}

	var (
		results  []*HistoricalResult
		firstErr error
	)
	for _, client := range clients {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		clientReq := req
		clientReq.Client = client
		result, err := o.Historical(ctx, clientReq)
		if err != nil {
			logrus.WithField("client", client).WithError(err).Error("historical fetch failed")
			if firstErr == nil {
				firstErr = err
			}
		}
		if result != nil {
			results = append(results, result)
		}
	}
	return results, firstErr
}

func (o *orchestrator) historicalAdvertiser(ctx context.Context, client string) (*domain.AdvertiserAccounts, error) {
	if advertiser, ok := o.reference.Advertiser(client); ok {
		return advertiser, nil
	}

	mapping, err := o.resolver.BuildMapping(ctx)
	if err != nil {
		return nil, err
	}
	if advertiser, ok := mapping[resolving.NormalizeAccountName(client)]; ok {
		return advertiser, nil
	}
	if advertiser, ok := mapping.ByDisplayName(client); ok {
		return advertiser, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnknownClient, client)
}

// CSVFileName is "{client}_paid_data.csv" with spaces replaced by underscores.
func CSVFileName(client string) string {
	return strings.ReplaceAll(client, " ", "_") + "_paid_data.csv"
}

func writeCSV(path string, table domain.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i := range record {
			record[i] = csvCell(row[i])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return file.Close()
}

func csvCell(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Format(time.DateOnly)
	}
	return utils.ToString(v)
}

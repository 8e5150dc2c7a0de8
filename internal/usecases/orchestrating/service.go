package orchestrating

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-media-etl/internal/config"
	"github.com/vfg2006/paid-media-etl/internal/domain"
	"github.com/vfg2006/paid-media-etl/internal/usecases/extracting"
	"github.com/vfg2006/paid-media-etl/internal/usecases/ingesting"
	"github.com/vfg2006/paid-media-etl/internal/usecases/loading"
	"github.com/vfg2006/paid-media-etl/internal/usecases/recording"
	"github.com/vfg2006/paid-media-etl/internal/usecases/resolving"
	"github.com/vfg2006/paid-media-etl/internal/usecases/transforming"
	"github.com/vfg2006/paid-media-etl/pkg/log"
	"github.com/vfg2006/paid-media-etl/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// Source is the page source of one platform with its extraction options.
type Source struct {
	Pages   extracting.PageSource
	Options extracting.Options
}

type Options struct {
	MaxConcurrentJobs   int
	HistoricalChunkDays int
	OutputDir           string
	// Clock defaults to time.Now.
	Clock func() time.Time
}

type Orchestrator interface {
	// Run executes the daily pipeline for dateRange. The returned error is
	// set only when the account mapping could not be resolved.
	Run(ctx context.Context, dateRange domain.DateRange) (*domain.RunOutcome, error)
	Historical(ctx context.Context, req HistoricalRequest) (*HistoricalResult, error)
	HistoricalAll(ctx context.Context, req HistoricalRequest) ([]*HistoricalResult, error)
}

type orchestrator struct {
	resolver    resolving.Resolver
	sources     map[domain.Platform]Source
	extractors  map[domain.Platform]extracting.Extractor
	transformer transforming.Transformer
	loader      loading.Loader
	ingestor    ingesting.Ingestor
	ops         recording.OpsLogger
	reference   config.Reference
	opts        Options
}

// NewOrchestrator wires the pipeline. ingestor may be nil when the drive
// source is disabled.
func NewOrchestrator(
	resolver resolving.Resolver,
	sources []Source,
	transformer transforming.Transformer,
	loader loading.Loader,
	ingestor ingesting.Ingestor,
	ops recording.OpsLogger,
	reference config.Reference,
	opts Options,
) Orchestrator {
	if opts.MaxConcurrentJobs < 1 {
		opts.MaxConcurrentJobs = 1
	}
	if opts.HistoricalChunkDays < 1 {
		opts.HistoricalChunkDays = 7
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if ops == nil {
		ops = recording.NewLogrusLogger()
	}

	o := &orchestrator{
		resolver:    resolver,
		sources:     make(map[domain.Platform]Source, len(sources)),
		extractors:  make(map[domain.Platform]extracting.Extractor, len(sources)),
		transformer: transformer,
		loader:      loader,
		ingestor:    ingestor,
		ops:         ops,
		reference:   reference,
		opts:        opts,
	}
	for _, source := range sources {
		platform := source.Pages.Platform()
		o.sources[platform] = source
		o.extractors[platform] = extracting.NewExtractor(source.Pages, source.Options)
	}
	return o
}

func (o *orchestrator) Run(ctx context.Context, dateRange domain.DateRange) (outcome *domain.RunOutcome, err error) {
	start := o.opts.Clock()
	runID := utils.NewRunID(start)
	ctx = log.WithRunID(ctx, runID)

	outcome = &domain.RunOutcome{RunID: runID, State: domain.RunStateInit, StartTime: start}
	logger := logrus.WithFields(logrus.Fields{"run_id": runID, "date_range": dateRange.String()})
	logger.Info("pipeline run started")

	defer func() {
		outcome.EndTime = o.opts.Clock()
		if outcome.State != domain.RunStateFailed {
			o.transition(outcome, domain.RunStateDone)
			outcome.Success = true
		}
		o.ops.RecordRun(context.WithoutCancel(ctx), *outcome)

		logger.WithFields(logrus.Fields{
			"state":        outcome.State,
			"units":        len(outcome.Units),
			"units_failed": outcome.FailedUnits(),
			"rows_loaded":  outcome.RowsLoaded,
			"duration":     outcome.EndTime.Sub(outcome.StartTime).String(),
		}).Info("pipeline run finished")
	}()

	o.transition(outcome, domain.RunStateResolveMapping)
	mapping, err := o.resolver.BuildMapping(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrMappingResolution) {
			err = fmt.Errorf("%w: %v", domain.ErrMappingResolution, err)
		}
		o.transition(outcome, domain.RunStateFailed)
		outcome.ErrorMessage = err.Error()
		return outcome, domain.NewPipelineError(domain.RunStateResolveMapping, "", "", err)
	}

	o.transition(outcome, domain.RunStateExtract)
	var (
		mu    sync.Mutex
		group errgroup.Group
	)
	group.SetLimit(o.opts.MaxConcurrentJobs)

	for _, advertiser := range mapping.Sorted() {
		group.Go(func() error {
			units, rows := o.runAdvertiser(ctx, runID, advertiser, dateRange, o.extractors)

			mu.Lock()
			outcome.Units = append(outcome.Units, units...)
			outcome.RowsLoaded += rows
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()

	if o.ingestor != nil {
		o.transition(outcome, domain.RunStateDriveIngest)
		files, err := o.ingestor.Ingest(ctx, runID)
		outcome.FilesIngested = files
		if err != nil {
			outcome.ErrorMessage = fmt.Sprintf("drive ingestion: %v", err)
			logger.WithError(err).Error("drive ingestion failed")
		}
	}

	return outcome, nil
}

func (o *orchestrator) transition(outcome *domain.RunOutcome, state domain.RunState) {
	logrus.WithFields(logrus.Fields{"run_id": outcome.RunID, "from": outcome.State, "to": state}).Debug("run state")
	outcome.State = state
}

// runAdvertiser extracts and transforms every platform of one advertiser in
// parallel, then loads the concatenated rows once.
func (o *orchestrator) runAdvertiser(
	ctx context.Context,
	runID string,
	advertiser *domain.AdvertiserAccounts,
	dateRange domain.DateRange,
	extractors map[domain.Platform]extracting.Extractor,
) ([]domain.UnitOutcome, int64) {
	sets, units := o.collect(ctx, runID, advertiser, dateRange, extractors)

	table := domain.CanonicalTable(sets...)
	if table.Len() == 0 {
		return units, 0
	}

	result, err := o.loader.LoadPaidData(ctx, runID, advertiser.DisplayName, table, dateRange)
	if err != nil {
		err = domain.NewPipelineError(domain.RunStateLoad, advertiser.DisplayName, "", err)
		logrus.WithFields(logrus.Fields{"run_id": runID, "client": advertiser.DisplayName}).WithError(err).Error("load failed")
		return failLoaded(units, err), 0
	}
	return units, result.Primary.RowsInserted
}

// collect runs one unit per platform that has accounts. Sets come back in
// platform order.
func (o *orchestrator) collect(
	ctx context.Context,
	runID string,
	advertiser *domain.AdvertiserAccounts,
	dateRange domain.DateRange,
	extractors map[domain.Platform]extracting.Extractor,
) ([]domain.RowSet, []domain.UnitOutcome) {
	sets := make([]domain.RowSet, len(domain.Platforms))
	units := make([]*domain.UnitOutcome, len(domain.Platforms))

	var group errgroup.Group
	for i, platform := range domain.Platforms {
		accounts := advertiser.AccountsFor(platform)
		extractor, ok := extractors[platform]
		if len(accounts) == 0 || !ok {
			continue
		}

		group.Go(func() error {
			set, unit := o.runUnit(ctx, runID, advertiser.DisplayName, extractor, accounts, dateRange)
			sets[i], units[i] = set, &unit
			return nil
		})
	}
	_ = group.Wait()

	var (
		outSets  []domain.RowSet
		outUnits []domain.UnitOutcome
	)
	for i := range domain.Platforms {
		if units[i] == nil {
			continue
		}
		outUnits = append(outUnits, *units[i])
		if sets[i].Len() > 0 {
			outSets = append(outSets, sets[i])
		}
	}
	return outSets, outUnits
}

func (o *orchestrator) runUnit(
	ctx context.Context,
	runID string,
	client string,
	extractor extracting.Extractor,
	accounts []domain.PlatformAccount,
	dateRange domain.DateRange,
) (domain.RowSet, domain.UnitOutcome) {
	platform := extractor.Platform()
	started := time.Now()
	unit := domain.UnitOutcome{Client: client, Platform: platform}
	logger := logrus.WithFields(logrus.Fields{"run_id": runID, "client": client, "platform": platform})

	result, err := extractor.Extract(ctx, accounts, dateRange)

	call := domain.APICallOutcome{
		RunID:      runID,
		Platform:   platform,
		Client:     client,
		Endpoint:   endpointFor(platform),
		StatusCode: 200,
		Success:    err == nil,
		Duration:   time.Since(started),
	}
	if err != nil {
		call.StatusCode = 500
		call.Error = err.Error()
	} else {
		call.PayloadSize = result.Bytes
	}
	o.ops.RecordAPICall(ctx, call)

	if err != nil {
		unit.Duration = time.Since(started)
		unit.Error = domain.NewPipelineError(domain.RunStateExtract, client, platform, err).Error()
		logger.WithError(err).Error("extract failed")
		return domain.RowSet{Platform: platform}, unit
	}

	set, err := o.transformer.Transform(platform, result.Records)
	unit.Duration = time.Since(started)
	if err != nil {
		unit.Error = domain.NewPipelineError(domain.RunStateTransform, client, platform, err).Error()
		logger.WithError(err).Error("transform failed")
		return domain.RowSet{Platform: platform}, unit
	}

	unit.Rows = set.Len()
	logger.WithFields(logrus.Fields{"records": len(result.Records), "rows": unit.Rows}).Info("unit done")
	return set, unit
}

// failLoaded marks the units whose rows were lost by a failed load.
func failLoaded(units []domain.UnitOutcome, err error) []domain.UnitOutcome {
	for i := range units {
		if units[i].Success() && units[i].Rows > 0 {
			units[i].Error = err.Error()
		}
	}
	return units
}

var endpoints = map[domain.Platform]string{
	domain.PlatformFacebook: "act/insights",
	domain.PlatformTikTok:   "report/integrated/get",
	domain.PlatformLinkedIn: "adAnalytics",
	domain.PlatformYouTube:  "googleAds:search",
}

func endpointFor(platform domain.Platform) string {
	if endpoint, ok := endpoints[platform]; ok {
		return endpoint
	}
	return string(platform)
}

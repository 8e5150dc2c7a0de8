package ingesting

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-media-etl/infrastructure/repository"
	"github.com/vfg2006/paid-media-etl/internal/domain"
	"github.com/vfg2006/paid-media-etl/internal/usecases/loading"
	"github.com/vfg2006/paid-media-etl/internal/usecases/recording"
	"github.com/vfg2006/paid-media-etl/internal/usecases/resolving"
	"github.com/vfg2006/paid-media-etl/pkg/log"
)

const (
	StatusLoaded  = "loaded"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

type DriveSource interface {
	ListFiles(ctx context.Context) ([]domain.DriveFile, error)
	Download(ctx context.Context, file domain.DriveFile) ([]byte, error)
}

type Registry interface {
	Contains(name string) bool
	Add(name string) error
}

type Ingestor interface {
	// Ingest loads every unregistered file and returns the names it loaded.
	Ingest(ctx context.Context, runID string) ([]string, error)
}

type ingestor struct {
	source   DriveSource
	registry Registry
	loader   loading.Loader
	tables   repository.TableRepository
	namer    *resolving.Namer
	routes   []domain.FileRoute
	ops      recording.OpsLogger
}

func NewIngestor(
	source DriveSource,
	registry Registry,
	loader loading.Loader,
	tables repository.TableRepository,
	namer *resolving.Namer,
	routes []domain.FileRoute,
	ops recording.OpsLogger,
) Ingestor {
	if len(routes) == 0 {
		routes = DefaultRoutes
	}
	if ops == nil {
		ops = recording.NewLogrusLogger()
	}
	return &ingestor{
		source:   source,
		registry: registry,
		loader:   loader,
		tables:   tables,
		namer:    namer,
		routes:   routes,
		ops:      ops,
	}
}

func (i *ingestor) Ingest(ctx context.Context, runID string) ([]string, error) {
	ctx = log.WithRunID(ctx, runID)

	files, err := i.source.ListFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drive files: %w", err)
	}

	ingested := make([]string, 0)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return ingested, err
		}
		if i.registry.Contains(file.Name) {
			continue
		}

		logger := logrus.WithFields(logrus.Fields{"run_id": runID, "file": file.Name})
		status, err := i.process(ctx, file)

		outcome := domain.DriveFileOutcome{RunID: runID, FileID: file.ID, FileName: file.Name, Status: status}
		if err != nil {
			outcome.Error = err.Error()
			i.ops.RecordDriveFile(ctx, outcome)
			logger.WithError(err).Error("drive file failed, it will be retried next run")
			continue
		}
		i.ops.RecordDriveFile(ctx, outcome)

		if err := i.registry.Add(file.Name); err != nil {
			logger.WithError(err).Error("could not register processed file")
		}
		if status == StatusLoaded {
			ingested = append(ingested, file.Name)
		}
	}

	logrus.WithFields(logrus.Fields{"run_id": runID, "files": len(ingested)}).Info("drive ingestion finished")
	return ingested, nil
}

func (i *ingestor) process(ctx context.Context, file domain.DriveFile) (string, error) {
	kind := kindOf(file)
	if kind == kindUnsupported {
		return StatusSkipped, nil
	}

	content, err := i.source.Download(ctx, file)
	if err != nil {
		return StatusFailed, err
	}

	var table domain.Table
	if kind == kindXLSX {
		table, err = ParseXLSX(content)
	} else {
		table, err = ParseCSV(content)
	}
	if err != nil {
		return StatusFailed, fmt.Errorf("parse %s: %w", file.Name, err)
	}

	route := RouteFor(i.routes, file.Name)
	table, err = applyTransform(route.Transform, file.Stem(), table)
	if err != nil {
		return StatusFailed, fmt.Errorf("transform %s (%s): %w", file.Name, route.Name, err)
	}

	dest, err := i.destination(ctx, route, file)
	if err != nil {
		return StatusFailed, err
	}

	result, err := i.loader.Load(ctx, dest, table)
	if err != nil {
		return StatusFailed, err
	}

	logrus.WithFields(logrus.Fields{
		"file":     file.Name,
		"route":    route.Name,
		"database": result.Database,
		"table":    result.Table,
		"rows":     result.RowsInserted,
	}).Info("drive file loaded")
	return StatusLoaded, nil
}

// destination fills the client fallback: the database comes from the file
// name and the table is the first one holding historical data.
func (i *ingestor) destination(ctx context.Context, route domain.FileRoute, file domain.DriveFile) (loading.Destination, error) {
	dest := loading.Destination{
		Client:   file.Stem(),
		Database: route.Database,
		Table:    route.Table,
		Mode:     route.Mode,
	}
	if dest.Database == "" {
		dest.Database = i.namer.ClientDatabaseName(file.Stem())
	}
	if dest.Table != "" {
		return dest, nil
	}

	if err := i.tables.EnsureDatabase(ctx, dest.Database); err != nil {
		return dest, fmt.Errorf("ensure database %s: %w", dest.Database, err)
	}
	tables, err := i.tables.ListTables(ctx, dest.Database)
	if err != nil {
		return dest, fmt.Errorf("list tables of %s: %w", dest.Database, err)
	}

	dest.Table = dest.Database + " " + historicalDataMarker
	for _, table := range tables {
		if strings.Contains(table, historicalDataMarker) {
			dest.Table = table
			break
		}
	}
	return dest, nil
}

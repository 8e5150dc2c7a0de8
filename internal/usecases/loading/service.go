package loading

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-media-etl/infrastructure/repository"
	"github.com/vfg2006/paid-media-etl/internal/domain"
	"github.com/vfg2006/paid-media-etl/internal/usecases/recording"
	"github.com/vfg2006/paid-media-etl/internal/usecases/resolving"
	"github.com/vfg2006/paid-media-etl/pkg/log"
)

const (
	PaidDataSuffix    = "_Paid_Data"
	IndustryDBSuffix  = "_industry_db"
	IndustryDataTable = "industry_data"
)

// Destination is where one table-ready row set lands.
type Destination struct {
	Client   string
	Database string
	Table    string
	// Baseline is the schema used when the table does not exist yet.
	Baseline []domain.ColumnDef
	Mode     domain.LoadMode
	// Window, when set, removes the rows a previous run loaded for the same window.
	Window *domain.WindowFilter
}

type Result struct {
	Database       string
	Table          string
	Operation      domain.LoadOperation
	RowsInserted   int64
	RowsDeleted    int64
	AddedColumns   []string
	SkippedColumns []string
}

// PaidDataResult reports the client table load and the industry copy separately.
type PaidDataResult struct {
	Primary     *Result
	Industry    *Result
	IndustryErr error
}

type IndustryLookup interface {
	IndustryFor(client string) string
}

type Loader interface {
	Load(ctx context.Context, dest Destination, data domain.Table) (*Result, error)
	// LoadPaidTable appends to the advertiser paid-data table only.
	LoadPaidTable(ctx context.Context, runID, advertiser string, data domain.Table, window domain.DateRange) (*Result, error)
	// LoadPaidData is LoadPaidTable followed by the industry copy.
	LoadPaidData(ctx context.Context, runID, advertiser string, data domain.Table, window domain.DateRange) (*PaidDataResult, error)
}

type loader struct {
	tables     repository.TableRepository
	namer      *resolving.Namer
	industries IndustryLookup
	ops        recording.OpsLogger
}

func NewLoader(
	tables repository.TableRepository,
	namer *resolving.Namer,
	industries IndustryLookup,
	ops recording.OpsLogger,
) Loader {
	if ops == nil {
		ops = recording.NewLogrusLogger()
	}
	return &loader{
		tables:     tables,
		namer:      namer,
		industries: industries,
		ops:        ops,
	}
}

// MaxIdentifierLength is the Postgres limit on identifier bytes; longer names are silently truncated by the server.
const MaxIdentifierLength = 63

// PaidTableName returns advertiser + PaidDataSuffix. Names over MaxIdentifierLength
// keep a rune-aligned prefix of advertiser plus a short hash of the full name, so
// distinct long advertisers never collide on one table.
func PaidTableName(advertiser string) string {
	name := advertiser + PaidDataSuffix
	if len(name) <= MaxIdentifierLength {
		return name
	}

	sum := sha256.Sum256([]byte(advertiser))
	tag := "_" + hex.EncodeToString(sum[:4])
	cut := MaxIdentifierLength - len(tag) - len(PaidDataSuffix)
	for cut > 0 && !utf8.RuneStart(advertiser[cut]) {
		cut--
	}
	return advertiser[:cut] + tag + PaidDataSuffix
}

func IndustryDatabaseName(industry string) string {
	return resolving.Slug(industry) + IndustryDBSuffix
}

func (l *loader) Load(ctx context.Context, dest Destination, data domain.Table) (*Result, error) {
	result := &Result{Database: dest.Database, Table: dest.Table}
	if data.Len() == 0 {
		return result, nil
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"client": dest.Client,
		"table":  dest.Table,
		"rows":   data.Len(),
	})

	if err := l.tables.EnsureDatabase(ctx, dest.Database); err != nil {
		return nil, fmt.Errorf("ensure database %s: %w", dest.Database, err)
	}

	var err error
	switch dest.Mode {
	case domain.LoadReplace:
		err = l.replace(ctx, dest, data, result)
	case domain.LoadUnionReplace:
		err = l.unionReplace(ctx, dest, data, result)
	default:
		err = l.append(ctx, dest, data, result)
	}
	if err != nil {
		return nil, err
	}

	l.ops.RecordLoad(ctx, domain.LoadOutcome{
		RunID:        log.GetRunID(ctx),
		Client:       dest.Client,
		Database:     dest.Database,
		Table:        dest.Table,
		RowsAffected: result.RowsInserted,
		Operation:    result.Operation,
	})

	logger.Infof("loaded %d rows (%s), %d replaced", result.RowsInserted, result.Operation, result.RowsDeleted)
	return result, nil
}

func (l *loader) append(ctx context.Context, dest Destination, data domain.Table, result *Result) error {
	result.Operation = domain.OperationInsert

	live, exists, err := l.tables.TableColumns(ctx, dest.Database, dest.Table)
	if err != nil {
		return fmt.Errorf("inspect %s.%s: %w", dest.Database, dest.Table, err)
	}

	if !exists {
		live = append([]domain.ColumnDef(nil), dest.Baseline...)
		if len(live) == 0 {
			live = data.Schema()
		}
		if err := l.tables.CreateTable(ctx, dest.Database, dest.Table, live); err != nil {
			return fmt.Errorf("create %s.%s: %w", dest.Database, dest.Table, err)
		}
		logrus.WithFields(logrus.Fields{"database": dest.Database, "table": dest.Table}).Info("created table")
	}

	data = alignColumns(live, data)

	for _, addition := range PlanColumnAdditions(live, schemaWith(dest.Baseline, data)) {
		column := domain.ColumnDef{Name: addition.Name, Type: addition.Type}
		if err := l.tables.AddColumn(ctx, dest.Database, dest.Table, column); err != nil {
			logrus.WithFields(logrus.Fields{
				"table":  dest.Table,
				"column": addition.Name,
			}).WithError(err).Warn("could not add column, dropping it from the insert")
			result.SkippedColumns = append(result.SkippedColumns, addition.Name)
			continue
		}

		live = append(live, column)
		result.AddedColumns = append(result.AddedColumns, addition.Name)
		l.ops.RecordLoad(ctx, domain.LoadOutcome{
			RunID:     log.GetRunID(ctx),
			Client:    dest.Client,
			Database:  dest.Database,
			Table:     dest.Table,
			Operation: domain.OperationAlter,
		})
	}

	if len(result.SkippedColumns) > 0 {
		data = data.Without(result.SkippedColumns...)
	}

	rows := coerce(live, data)
	if !dest.Window.Empty() && hasColumns(live, dest.Window.MatchColumn, dest.Window.DateColumn) {
		deleted, inserted, err := l.tables.ReplaceWindow(ctx, dest.Database, dest.Table, *dest.Window, rows)
		if err != nil {
			return fmt.Errorf("replace window of %s.%s: %w", dest.Database, dest.Table, err)
		}
		result.RowsDeleted = deleted
		result.RowsInserted = inserted
		return nil
	}

	inserted, err := l.tables.InsertRows(ctx, dest.Database, dest.Table, rows)
	if err != nil {
		return fmt.Errorf("append to %s.%s: %w", dest.Database, dest.Table, err)
	}
	result.RowsInserted = inserted
	return nil
}

func (l *loader) replace(ctx context.Context, dest Destination, data domain.Table, result *Result) error {
	result.Operation = domain.OperationReplace

	schema := schemaWith(dest.Baseline, data)
	inserted, err := l.tables.ReplaceTable(ctx, dest.Database, dest.Table, schema, coerce(schema, data))
	if err != nil {
		return fmt.Errorf("replace %s.%s: %w", dest.Database, dest.Table, err)
	}
	result.RowsInserted = inserted
	return nil
}

func (l *loader) unionReplace(ctx context.Context, dest Destination, data domain.Table, result *Result) error {
	result.Operation = domain.OperationReplace

	inserted, err := l.tables.UnionReplaceTable(ctx, dest.Database, dest.Table, data)
	if err != nil {
		return fmt.Errorf("union replace %s.%s: %w", dest.Database, dest.Table, err)
	}
	result.RowsInserted = inserted
	return nil
}

func (l *loader) LoadPaidTable(ctx context.Context, runID, advertiser string, data domain.Table, window domain.DateRange) (*Result, error) {
	ctx = log.WithRunID(ctx, runID)

	return l.Load(ctx, Destination{
		Client:   advertiser,
		Database: l.namer.DatabaseName(advertiser),
		Table:    PaidTableName(advertiser),
		Baseline: domain.PaidDataBaseline,
		Mode:     domain.LoadAppend,
		Window:   paidWindow(data, window),
	}, data)
}

func (l *loader) LoadPaidData(ctx context.Context, runID, advertiser string, data domain.Table, window domain.DateRange) (*PaidDataResult, error) {
	primary, err := l.LoadPaidTable(ctx, runID, advertiser, data, window)
	if err != nil {
		return nil, err
	}

	out := &PaidDataResult{Primary: primary}
	if data.Len() == 0 {
		return out, nil
	}

	industry := l.industries.IndustryFor(advertiser)
	out.Industry, out.IndustryErr = l.Load(log.WithRunID(ctx, runID), Destination{
		Client:   advertiser,
		Database: IndustryDatabaseName(industry),
		Table:    IndustryDataTable,
		Baseline: withoutColumn(domain.PaidDataBaseline, domain.ColFollows),
		Mode:     domain.LoadAppend,
	}, data.Without(domain.ColFollows))

	if out.IndustryErr != nil {
		logrus.WithFields(logrus.Fields{
			"client":   advertiser,
			"industry": industry,
		}).WithError(out.IndustryErr).Error("industry routing failed")
	}
	return out, nil
}

// paidWindow scopes the replace window to the platforms present in data.
func paidWindow(data domain.Table, window domain.DateRange) *domain.WindowFilter {
	if window.Start.IsZero() {
		return nil
	}

	idx := data.Index(domain.ColPlatform)
	if idx < 0 {
		return nil
	}

	seen := make(map[string]bool)
	var platforms []string
	for _, row := range data.Rows {
		platform, ok := row[idx].(string)
		if !ok || platform == "" || seen[platform] {
			continue
		}
		seen[platform] = true
		platforms = append(platforms, platform)
	}
	if len(platforms) == 0 {
		return nil
	}

	return &domain.WindowFilter{
		MatchColumn: domain.ColPlatform,
		Values:      platforms,
		DateColumn:  domain.ColDate,
		Range:       window,
	}
}

func hasColumns(live []domain.ColumnDef, names ...string) bool {
	for _, name := range names {
		found := false
		for _, column := range live {
			if column.Name == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func withoutColumn(columns []domain.ColumnDef, name string) []domain.ColumnDef {
	out := make([]domain.ColumnDef, 0, len(columns))
	for _, column := range columns {
		if column.Name != name {
			out = append(out, column)
		}
	}
	return out
}

package orchestrating_test

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/paid-media-etl/internal/config"
	"github.com/vfg2006/paid-media-etl/internal/domain"
	"github.com/vfg2006/paid-media-etl/internal/usecases/loading"
	loadingmocks "github.com/vfg2006/paid-media-etl/internal/usecases/loading/mocks"
	"github.com/vfg2006/paid-media-etl/internal/usecases/orchestrating"
	"github.com/vfg2006/paid-media-etl/internal/usecases/transforming"
	"go.uber.org/mock/gomock"
)

func referenceWith(clients map[string]config.ClientReference) config.Reference {
	return config.Reference{Clients: clients}
}

func failingResolver() resolverFunc {
	return func(context.Context) (domain.AccountMapping, error) {
		return nil, errors.New("resolver must not be called")
	}
}

func TestOrchestrator_Historical_CSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	fb := facebookSource("ignored")

	reference := referenceWith(map[string]config.ClientReference{
		"Acme Corp": {Industry: "Retail", Facebook: []domain.PlatformAccount{{ID: "act_9", Name: "Acme Corp"}}},
	})

	orchestrator := orchestrating.NewOrchestrator(failingResolver(), sources(fb), transforming.NewTransformer(fixedClock),
		loadingmocks.NewMockLoader(ctrl), nil, nil, reference, orchestrating.Options{Clock: fixedClock, OutputDir: dir})

	result, err := orchestrator.Historical(context.Background(), orchestrating.HistoricalRequest{
		Client:    "Acme Corp",
		Range:     domain.DateRange{Start: march(1), End: march(5)},
		Output:    orchestrating.OutputCSV,
		ChunkDays: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, fb.windowCount(), "5 days in windows of 2")
	assert.Equal(t, 5, result.Rows)
	assert.Equal(t, filepath.Join(dir, "Acme_Corp_paid_data.csv"), result.Target)

	file, err := os.Open(result.Target)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, domain.CanonicalColumns, records[0])

	dateIdx := -1
	for i, column := range records[0] {
		if column == domain.ColDate {
			dateIdx = i
		}
	}
	require.GreaterOrEqual(t, dateIdx, 0)
	assert.Equal(t, "2024-03-01", records[1][dateIdx])
}

func TestOrchestrator_Historical_SQLUsesPaidTableOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	fb := facebookSource("Acme")

	loader := loadingmocks.NewMockLoader(ctrl)
	loader.EXPECT().LoadPaidTable(gomock.Any(), gomock.Any(), "Acme", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ string, data domain.Table, window domain.DateRange) (*loading.Result, error) {
			assert.Equal(t, 2, data.Len())
			assert.Equal(t, march(2), window.End)
			return &loading.Result{Table: loading.PaidTableName("Acme"), RowsInserted: 2}, nil
		})

	resolver := resolverFunc(func(context.Context) (domain.AccountMapping, error) {
		advertiser := domain.NewAdvertiserAccounts("acme", "Acme")
		advertiser.Add(domain.PlatformFacebook, fb.accounts[0])
		return domain.AccountMapping{"acme": advertiser}, nil
	})

	result, err := orchestrating.NewOrchestrator(resolver, sources(fb), transforming.NewTransformer(fixedClock),
		loader, nil, nil, config.Reference{}, orchestrating.Options{Clock: fixedClock}).
		Historical(context.Background(), orchestrating.HistoricalRequest{
			Client: "Acme",
			Range:  domain.DateRange{Start: march(1), End: march(2)},
			Output: orchestrating.OutputSQL,
		})
	require.NoError(t, err)
	assert.Equal(t, "Acme_Paid_Data", result.Target)
	assert.Equal(t, 1, fb.windowCount(), "default historical window covers both days")
}

func TestOrchestrator_Historical_UnknownClient(t *testing.T) {
	ctrl := gomock.NewController(t)

	resolver := resolverFunc(func(context.Context) (domain.AccountMapping, error) {
		return domain.AccountMapping{}, nil
	})

	_, err := orchestrating.NewOrchestrator(resolver, nil, transforming.NewTransformer(fixedClock),
		loadingmocks.NewMockLoader(ctrl), nil, nil, config.Reference{}, orchestrating.Options{Clock: fixedClock}).
		Historical(context.Background(), orchestrating.HistoricalRequest{Client: "Nobody", Range: domain.DateRange{Start: march(1), End: march(1)}})
	assert.ErrorIs(t, err, domain.ErrUnknownClient)
}

func TestOrchestrator_HistoricalAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()

	fb := facebookSource("ignored")
	reference := referenceWith(map[string]config.ClientReference{
		"Beta":  {Facebook: []domain.PlatformAccount{{ID: "act_2", Name: "Beta"}}},
		"Alpha": {Facebook: []domain.PlatformAccount{{ID: "act_1", Name: "Alpha"}}},
		"Empty": {},
	})

	results, err := orchestrating.NewOrchestrator(failingResolver(), sources(fb), transforming.NewTransformer(fixedClock),
		loadingmocks.NewMockLoader(ctrl), nil, nil, reference, orchestrating.Options{Clock: fixedClock, OutputDir: dir}).
		HistoricalAll(context.Background(), orchestrating.HistoricalRequest{
			Range:  domain.DateRange{Start: march(1), End: march(1)},
			Output: orchestrating.OutputCSV,
		})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "Alpha", results[0].Client)
	assert.Equal(t, "Beta", results[1].Client)
	assert.Equal(t, "Empty", results[2].Client)
	assert.Zero(t, results[2].Rows)
	assert.Empty(t, results[2].Target, "no file is written without data")

	assert.FileExists(t, filepath.Join(dir, "Alpha_paid_data.csv"))
	assert.FileExists(t, filepath.Join(dir, "Beta_paid_data.csv"))
}

func TestOrchestrator_HistoricalAll_NoClients(t *testing.T) {
	ctrl := gomock.NewController(t)

	_, err := orchestrating.NewOrchestrator(failingResolver(), nil, transforming.NewTransformer(fixedClock),
		loadingmocks.NewMockLoader(ctrl), nil, nil, config.Reference{}, orchestrating.Options{}).
		HistoricalAll(context.Background(), orchestrating.HistoricalRequest{})
	assert.ErrorIs(t, err, domain.ErrUnknownClient)
}

func TestParseOutput(t *testing.T) {
	output, err := orchestrating.ParseOutput("SQL")
	require.NoError(t, err)
	assert.Equal(t, orchestrating.OutputSQL, output)

	output, err = orchestrating.ParseOutput("")
	require.NoError(t, err)
	assert.Equal(t, orchestrating.OutputCSV, output)

	_, err = orchestrating.ParseOutput("parquet")
	assert.Error(t, err)
}

func TestCSVFileName(t *testing.T) {
	assert.Equal(t, "Angry_Orchard_paid_data.csv", orchestrating.CSVFileName("Angry Orchard"))
}

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/paid-media-etl/internal/usecases/orchestrating"
)

func fixNow(t *testing.T) {
	t.Helper()
	previous := now
	now = func() time.Time { return time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = previous })
}

func TestRunRange(t *testing.T) {
	fixNow(t)

	dateRange, err := runRange("", "", 3)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-07", dateRange.Start.Format(dateLayout))
	assert.Equal(t, "2024-03-09", dateRange.End.Format(dateLayout))

	dateRange, err = runRange("2024-03-01", "", 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", dateRange.Start.Format(dateLayout))
	assert.Equal(t, "2024-03-09", dateRange.End.Format(dateLayout))

	_, err = runRange("2024-03-09", "2024-03-01", 1)
	assert.Error(t, err)

	_, err = runRange("yesterday", "", 1)
	assert.Error(t, err)
}

func TestHistoricalFlags_Request(t *testing.T) {
	flags := &historicalFlags{start: "2024-01-01", end: "2024-01-31", output: "SQL", chunkDays: 10}

	req, err := flags.request("Acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", req.Client)
	assert.Equal(t, orchestrating.OutputSQL, req.Output)
	assert.Equal(t, 10, req.ChunkDays)
	assert.Equal(t, 31, req.Range.Days())

	flags.output = "parquet"
	_, err = flags.request("Acme")
	assert.Error(t, err)

	flags.output = "csv"
	flags.chunkDays = -1
	_, err = flags.request("Acme")
	assert.Error(t, err)
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"run", "historical", "historical-all", "serve", "token"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

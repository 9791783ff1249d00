package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gamelist/pkg/errors"
	"github.com/agentstation/gamelist/pkg/logging"
	"github.com/agentstation/gamelist/pkg/sheet"
)

func newFile(t *testing.T) *File {
	t.Helper()
	logging.DisableLoggingForTest(t)

	src, err := os.ReadFile(filepath.Join("testdata", "games.csv"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "games.csv")
	require.NoError(t, os.WriteFile(path, src, 0o644))

	f, err := Open(path)
	require.NoError(t, err)
	return f
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.csv"))
	assert.True(t, errors.IsNotFound(err))
}

func TestFetchRowsTrimsTrailingCells(t *testing.T) {
	f := newFile(t)

	rows, err := f.FetchRows(context.Background(), "Games!A1:O")
	require.NoError(t, err)

	require.Len(t, rows, 4)
	assert.Equal(t, "Title", rows[0][0])
	assert.Equal(t, []string{"Loom", "FALSE", "3", "2024-01-02"}, rows[1])
	assert.Empty(t, rows[2], "blank row")
}

func TestBatchWriteAppliesRanges(t *testing.T) {
	f := newFile(t)
	ctx := context.Background()

	err := f.BatchWrite(ctx, []sheet.Update{
		{Range: "Games!A2", Values: [][]string{{"Loom (1990)"}}},
		{Range: "Games!J2", Values: [][]string{{"11", "11", "", "Weave.", "https://loom"}}},
		{Range: "Games!A6", Values: [][]string{{"Appended"}}},
	})
	require.NoError(t, err)

	rows, err := f.FetchRows(ctx, "Games!A1:O")
	require.NoError(t, err)

	assert.Equal(t, "Loom (1990)", rows[1][0])
	assert.Equal(t, "3", rows[1][2], "cells outside the range are kept")
	require.Len(t, rows[1], 14)
	assert.Equal(t, []string{"11", "11", "", "Weave.", "https://loom"}, rows[1][9:14])
	require.Len(t, rows, 6)
	assert.Empty(t, rows[4], "gap rows are blank")
	assert.Equal(t, "Appended", rows[5][0])
}

func TestBatchWriteBadRangeChangesNothing(t *testing.T) {
	f := newFile(t)
	ctx := context.Background()

	before, err := os.ReadFile(f.Path())
	require.NoError(t, err)

	err = f.BatchWrite(ctx, []sheet.Update{
		{Range: "Games!A2", Values: [][]string{{"changed"}}},
		{Range: "Games!", Values: [][]string{{"bad"}}},
	})
	require.Error(t, err)
	assert.True(t, errors.IsSpreadsheetWriteFailed(err))

	after, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

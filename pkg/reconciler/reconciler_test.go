package reconciler_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gamelist/pkg/catalog"
	"github.com/agentstation/gamelist/pkg/errors"
	"github.com/agentstation/gamelist/pkg/logging"
	"github.com/agentstation/gamelist/pkg/reconciler"
	"github.com/agentstation/gamelist/pkg/records"
	"github.com/agentstation/gamelist/pkg/sheet"
)

// fakeCatalog answers lookups from fixed tables and counts calls.
type fakeCatalog struct {
	byTitle  map[string][]catalog.Entry
	byID     map[string]*catalog.Entry
	failOn   string
	titleLog []string
	idLog    []string
}

func (f *fakeCatalog) LookupByTitle(_ context.Context, title string) ([]catalog.Entry, error) {
	f.titleLog = append(f.titleLog, title)
	if title == f.failOn {
		return nil, errors.NewCatalogError("lookup_title", title, 503, "service unavailable")
	}
	return f.byTitle[title], nil
}

func (f *fakeCatalog) LookupByID(_ context.Context, id string) (*catalog.Entry, error) {
	f.idLog = append(f.idLog, id)
	if id == f.failOn {
		return nil, errors.NewCatalogError("lookup_id", id, 503, "service unavailable")
	}
	return f.byID[id], nil
}

func strPtr(s string) *string { return &s }

func row(n int, title string) records.Record {
	return records.Parse([]string{title}, n)
}

func newReconciler(t *testing.T, client catalog.Client) *reconciler.Reconciler {
	t.Helper()
	logging.DisableLoggingForTest(t)
	r, err := reconciler.New(client, reconciler.WithSheetName("Games"))
	require.NoError(t, err)
	return r
}

func TestNewRequiresClient(t *testing.T) {
	_, err := reconciler.New(nil)
	assert.True(t, errors.IsValidationError(err))
}

func TestReconciledRowsAreSkipped(t *testing.T) {
	fake := &fakeCatalog{}
	r := newReconciler(t, fake)

	done := row(2, "Loom")
	done.CatalogID = strPtr("1")
	done.OverrideID = strPtr("1")

	result, err := r.Reconcile(context.Background(), []records.Record{done})
	require.NoError(t, err)

	assert.Empty(t, result.Updates)
	assert.Len(t, result.Unchanged, 1)
	assert.Zero(t, result.Lookups)
	assert.Empty(t, fake.titleLog)
	assert.Empty(t, fake.idLog)
}

func TestExactTitleMatchWinsOverFirstCandidate(t *testing.T) {
	cover := "https://img/bar.jpg"
	fake := &fakeCatalog{byTitle: map[string][]catalog.Entry{
		"Bar": {
			{ID: "1", Title: "foo"},
			{ID: "2", Title: "Bar", Description: "d", OfficialURL: "https://bar", CoverImageURL: &cover},
		},
	}}
	r := newReconciler(t, fake)

	result, err := r.Reconcile(context.Background(), []records.Record{row(5, "Bar")})
	require.NoError(t, err)

	want := []sheet.Update{
		{Range: "Games!A5", Values: [][]string{{"Bar"}}},
		{Range: "Games!J5", Values: [][]string{{"2", "2", "https://img/bar.jpg", "d", "https://bar"}}},
	}
	if diff := cmp.Diff(want, result.Updates); diff != "" {
		t.Errorf("updates mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, result.Resolved, 1)
	assert.Equal(t, reconciler.MethodExact, result.Resolved[0].How)
}

func TestExactMatchIsCaseInsensitive(t *testing.T) {
	fake := &fakeCatalog{byTitle: map[string][]catalog.Entry{
		"another world": {
			{ID: "9", Title: "Another World: 20th Anniversary"},
			{ID: "7", Title: "Another World"},
		},
	}}
	r := newReconciler(t, fake)

	result, err := r.Reconcile(context.Background(), []records.Record{row(2, "another world")})
	require.NoError(t, err)

	require.Len(t, result.Resolved, 1)
	assert.Equal(t, "7", result.Resolved[0].Entry.ID)
	assert.Equal(t, "another world", result.Resolved[0].PreviousTitle)
	assert.Equal(t, [][]string{{"Another World"}}, result.Updates[0].Values, "title is corrected to the catalog casing")
}

func TestFirstCandidateWhenNoExactMatch(t *testing.T) {
	fake := &fakeCatalog{byTitle: map[string][]catalog.Entry{
		"Monkey Island": {
			{ID: "3", Title: "The Secret of Monkey Island"},
			{ID: "4", Title: "Monkey Island 2"},
		},
	}}
	r := newReconciler(t, fake)

	result, err := r.Reconcile(context.Background(), []records.Record{row(3, "Monkey Island")})
	require.NoError(t, err)

	require.Len(t, result.Resolved, 1)
	assert.Equal(t, reconciler.MethodFirst, result.Resolved[0].How)
	assert.Equal(t, "3", result.Resolved[0].Entry.ID)
}

func TestPlaceholderWhenCatalogHasNothing(t *testing.T) {
	fake := &fakeCatalog{}
	r := newReconciler(t, fake)

	result, err := r.Reconcile(context.Background(), []records.Record{row(7, "Obscure Thing")})
	require.NoError(t, err)

	want := []sheet.Update{
		{Range: "Games!A7", Values: [][]string{{"Obscure Thing"}}},
		{Range: "Games!J7", Values: [][]string{{"unknown", "unknown", "", "", ""}}},
	}
	if diff := cmp.Diff(want, result.Updates); diff != "" {
		t.Errorf("updates mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, result.Count(reconciler.MethodPlaceholder))
}

func TestOverrideLookup(t *testing.T) {
	tests := []struct {
		name        string
		catalogID   *string
		overrideID  string
		byID        map[string]*catalog.Entry
		byTitle     map[string][]catalog.Entry
		wantID      string
		wantHow     reconciler.Method
		wantTitleQs int
	}{
		{
			name:       "mismatched override re-resolves by id",
			catalogID:  strPtr("1"),
			overrideID: "42",
			byID:       map[string]*catalog.Entry{"42": {ID: "42", Title: "Real Game"}},
			wantID:     "42",
			wantHow:    reconciler.MethodOverride,
		},
		{
			name:       "override without catalog id",
			overrideID: "42",
			byID:       map[string]*catalog.Entry{"42": {ID: "42", Title: "Real Game"}},
			wantID:     "42",
			wantHow:    reconciler.MethodOverride,
		},
		{
			name:        "unknown override falls back to title",
			overrideID:  "404",
			byTitle:     map[string][]catalog.Entry{"Game": {{ID: "5", Title: "Game"}}},
			wantID:      "5",
			wantHow:     reconciler.MethodExact,
			wantTitleQs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCatalog{byID: tt.byID, byTitle: tt.byTitle}
			r := newReconciler(t, fake)

			rec := row(2, "Game")
			rec.CatalogID = tt.catalogID
			rec.OverrideID = strPtr(tt.overrideID)

			result, err := r.Reconcile(context.Background(), []records.Record{rec})
			require.NoError(t, err)

			require.Len(t, result.Resolved, 1)
			assert.Equal(t, tt.wantID, result.Resolved[0].Entry.ID)
			assert.Equal(t, tt.wantHow, result.Resolved[0].How)
			assert.Equal(t, []string{tt.overrideID}, fake.idLog)
			assert.Len(t, fake.titleLog, tt.wantTitleQs)
			assert.Equal(t, 1+tt.wantTitleQs, result.Lookups)
		})
	}
}

func TestCatalogErrorKeepsStagedUpdates(t *testing.T) {
	fake := &fakeCatalog{
		byTitle: map[string][]catalog.Entry{"A": {{ID: "1", Title: "A"}}},
		failOn:  "B",
	}
	r := newReconciler(t, fake)

	recs := []records.Record{row(2, "A"), row(3, "B"), row(4, "C")}
	result, err := r.Reconcile(context.Background(), recs)

	require.Error(t, err)
	assert.True(t, errors.IsCatalogUnavailable(err))
	require.NotNil(t, result)
	assert.Len(t, result.Updates, 2, "row A stays staged")
	assert.Equal(t, []string{"A", "B"}, fake.titleLog, "row C is never attempted")
}

func TestCancelledContextStopsBeforeNextRow(t *testing.T) {
	fake := &fakeCatalog{}
	r := newReconciler(t, fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := r.Reconcile(ctx, []records.Record{row(2, "A")})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result.Updates)
	assert.Empty(t, fake.titleLog)
}

func TestApplyThenVerify(t *testing.T) {
	fake := &fakeCatalog{byTitle: map[string][]catalog.Entry{
		"loom": {{ID: "11", Title: "Loom", Description: "Weave."}},
	}}
	r := newReconciler(t, fake)

	done := row(2, "Myst")
	done.CatalogID = strPtr("8")
	recs := []records.Record{done, row(3, "loom"), row(4, "Nothing Here")}

	assert.Len(t, reconciler.Verify(recs), 2)

	result, err := r.Reconcile(context.Background(), recs)
	require.NoError(t, err)

	applied, err := reconciler.Apply(recs, result.Updates)
	require.NoError(t, err)

	assert.Empty(t, reconciler.Verify(applied))
	assert.Equal(t, "Loom", applied[1].Title)
	assert.Equal(t, "Weave.", applied[1].Description)
	require.NotNil(t, applied[2].CatalogID)
	assert.Equal(t, "unknown", *applied[2].CatalogID)

	assert.Equal(t, "loom", recs[1].Title, "input is not modified")

	again, err := r.Reconcile(context.Background(), applied)
	require.NoError(t, err)
	assert.False(t, again.HasUpdates(), "a second pass is a no-op")
}

func TestApplyRejectsBadRange(t *testing.T) {
	_, err := reconciler.Apply([]records.Record{row(2, "A")}, []sheet.Update{{Range: "Games!!", Values: [][]string{{"x"}}}})
	assert.Error(t, err)
}

func TestClearedOverrideReresolvesByTitle(t *testing.T) {
	fake := &fakeCatalog{byTitle: map[string][]catalog.Entry{
		"Loom": {{ID: "1042", Title: "Loom"}},
	}}
	r := newReconciler(t, fake)

	rec := records.Parse([]string{
		"Loom", "", "", "", "", "", "", "", "", "7", "", "http://c/x.jpg", "desc", "http://loom",
	}, 4)
	require.NotNil(t, rec.OverrideID)

	result, err := r.Reconcile(context.Background(), []records.Record{rec})
	require.NoError(t, err)

	assert.Empty(t, result.Unchanged)
	require.Len(t, result.Resolved, 1)
	assert.Equal(t, "1042", result.Resolved[0].Entry.ID)
	assert.Equal(t, reconciler.MethodExact, result.Resolved[0].How)
	assert.Empty(t, fake.idLog, "an empty override is never looked up")
	assert.Equal(t, []string{"Loom"}, fake.titleLog)
	assert.Equal(t, 1, result.Lookups)
	assert.NotEmpty(t, result.Updates)
}

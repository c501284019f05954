package controller

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/jkap86/thelabbackground2026/db/mockdb"
	"github.com/jkap86/thelabbackground2026/ktc"
	"github.com/jkap86/thelabbackground2026/model"
	"github.com/jkap86/thelabbackground2026/sleeper"
	"github.com/jkap86/thelabbackground2026/testutils"
	"github.com/stretchr/testify/mock"
)

func intPtr(v int) *int {
	return &v
}

func TestMergeHistory(t *testing.T) {
	history := &model.ScrapedHistory{
		Values: []model.ScrapedSeriesPoint{
			{DateCode: "250827", Value: 9700},
			{DateCode: "250828", Value: 9750},
			{DateCode: "250829", Value: 9867},
		},
		OverallRanks: []model.ScrapedSeriesPoint{
			{DateCode: "250827", Value: 2},
			{DateCode: "250829", Value: 2},
		},
		PositionRanks: []model.ScrapedSeriesPoint{
			{DateCode: "250828", Value: 1},
			{DateCode: "250829", Value: 1},
		},
	}

	expected := []model.ValuationPoint{
		{PlayerID: "6794", Date: "2025-08-27", Value: 9700, OverallRank: intPtr(2)},
		{PlayerID: "6794", Date: "2025-08-28", Value: 9750, PositionRank: intPtr(1)},
		{PlayerID: "6794", Date: "2025-08-29", Value: 9867, OverallRank: intPtr(2), PositionRank: intPtr(1)},
	}

	result := mergeHistory("6794", history)
	if !reflect.DeepEqual(expected, result) {
		t.Errorf("merged points were not as expected - actual: %v", result)
	}

	// Merging the same payload again gives the identical result.
	again := mergeHistory("6794", history)
	if !reflect.DeepEqual(result, again) {
		t.Errorf("expected a stable merge, got %v", again)
	}
}

func TestMergeHistoryDuplicateAndBadDates(t *testing.T) {
	history := &model.ScrapedHistory{
		Values: []model.ScrapedSeriesPoint{
			{DateCode: "250827", Value: 9000},
			{DateCode: "xxx", Value: 1},
			{DateCode: "250230", Value: 2},
			// A second entry for the same date wins.
			{DateCode: "250827", Value: 9100},
		},
	}

	expected := []model.ValuationPoint{
		{PlayerID: "6794", Date: "2025-08-27", Value: 9100},
	}

	result := mergeHistory("6794", history)
	if !reflect.DeepEqual(expected, result) {
		t.Errorf("merged points were not as expected - actual: %v", result)
	}
}

func TestExpandDateCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		err      bool
	}{
		{input: "250829", expected: "2025-08-29"},
		{input: "240101", expected: "2024-01-01"},
		{input: "251231", expected: "2025-12-31"},
		{input: "250230", err: true},
		{input: "251301", err: true},
		{input: "2508", err: true},
		{input: "abcdef", err: true},
		{input: "", err: true},
	}

	for _, tc := range tests {
		result, err := expandDateCode(tc.input)
		if tc.err {
			if err == nil {
				t.Errorf("input: '%s', expected an error, got '%s'", tc.input, result)
			}
		} else if err != nil {
			t.Errorf("input: '%s', unexpected error: %v", tc.input, err)
		} else if result != tc.expected {
			t.Errorf("input: '%s', expected: '%s', got '%s'", tc.input, tc.expected, result)
		}
	}
}

func TestSyncCurrentValuations(t *testing.T) {
	tc := testutils.NewTestController()
	defer tc.Close()
	tc.Clock.Set(time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC))

	state := model.NewAliasState()
	mockDB := &mockdb.DB{}
	mockDB.On("GetAliasState", mock.Anything, "ktc_dynasty").Return(state, nil)
	mockDB.On("SaveAliasState", mock.Anything, "ktc_dynasty", state).Return(nil)

	expectedPoints := []model.ValuationPoint{
		{PlayerID: "6794", Date: "2025-08-29", Value: 9721, OverallRank: intPtr(1), PositionRank: intPtr(1)},
		{PlayerID: "4984", Date: "2025-08-29", Value: 9902, OverallRank: intPtr(2), PositionRank: intPtr(1)},
		{PlayerID: "5045", Date: "2025-08-29", Value: 1489, OverallRank: intPtr(184), PositionRank: intPtr(71)},
		{PlayerID: "2026 Mid 1st", Date: "2025-08-29", Value: 5030, OverallRank: intPtr(41)},
	}
	mockDB.On("UpsertValuations", mock.Anything, expectedPoints).Return(4, nil)

	ctrl := &controller{
		clock:   tc.Clock,
		sleeper: sleeper.NewForTest(tc.SleeperURL()),
		ktc:     ktc.NewForTest(tc.KTCURL()),
		db:      mockDB,
		season:  "2025",
	}

	n, err := ctrl.SyncCurrentValuations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 4 {
		t.Errorf("expected 4 points, got %d", n)
	}

	mockDB.AssertExpectations(t)

	// The three real players got aliases, the pick pseudo player did not.
	expectedAliases := map[string]string{
		"justin-jefferson":  "6794",
		"josh-allen-1445":   "4984",
		"mike-williams-lac": "5045",
	}
	for slug, id := range expectedAliases {
		if a, ok := state.Aliases[slug]; !ok || a.PlayerID != id {
			t.Errorf("expected alias %s -> %s, got %v", slug, id, a)
		}
	}
	if len(state.Aliases) != len(expectedAliases) {
		t.Errorf("expected %d aliases, got %v", len(expectedAliases), state.Aliases)
	}
	if !reflect.DeepEqual([]string{"phantom-nobody"}, state.Unmatched) {
		t.Errorf("unmatched slugs were not as expected - actual: %v", state.Unmatched)
	}
}

func TestSyncValuationHistory(t *testing.T) {
	tc := testutils.NewTestController()
	defer tc.Close()
	now := time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)
	tc.Clock.Set(now)

	state := model.NewAliasState()
	state.Aliases["justin-jefferson"] = &model.Alias{PlayerID: "6794"}
	// Synced an hour ago, not stale.
	state.Aliases["josh-allen-1445"] = &model.Alias{PlayerID: "4984", SyncedAt: now.Add(-time.Hour).UnixMilli()}

	expectedPoints := []model.ValuationPoint{
		{PlayerID: "6794", Date: "2025-08-27", Value: 9700, OverallRank: intPtr(2)},
		{PlayerID: "6794", Date: "2025-08-28", Value: 9750, PositionRank: intPtr(1)},
		{PlayerID: "6794", Date: "2025-08-29", Value: 9867, OverallRank: intPtr(2), PositionRank: intPtr(1)},
	}

	mockDB := &mockdb.DB{}
	mockDB.On("GetAliasState", mock.Anything, "ktc_dynasty").Return(state, nil)
	mockDB.On("UpsertValuations", mock.Anything, expectedPoints).Return(3, nil)
	mockDB.On("SaveAliasState", mock.Anything, "ktc_dynasty", state).Return(nil)

	ctrl := &controller{
		clock:  tc.Clock,
		ktc:    ktc.NewForTest(tc.KTCURL()),
		db:     mockDB,
		season: "2025",
	}

	remaining, err := ctrl.SyncValuationHistory(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if remaining != 0 {
		t.Errorf("expected no stale players left, got %d", remaining)
	}

	mockDB.AssertExpectations(t)

	if state.Aliases["justin-jefferson"].SyncedAt != now.UnixMilli() {
		t.Errorf("expected the sync time to be recorded, got %d", state.Aliases["justin-jefferson"].SyncedAt)
	}
}

// A slug whose page cannot be fetched is logged and left stale for the next
// run, without failing the pass.
func TestSyncValuationHistoryFetchFailure(t *testing.T) {
	tc := testutils.NewTestController()
	defer tc.Close()
	now := time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)
	tc.Clock.Set(now)

	state := model.NewAliasState()
	state.Aliases["unknown-player"] = &model.Alias{PlayerID: "1234"}

	mockDB := &mockdb.DB{}
	mockDB.On("GetAliasState", mock.Anything, "ktc_dynasty").Return(state, nil)
	mockDB.On("SaveAliasState", mock.Anything, "ktc_dynasty", state).Return(nil)

	ctrl := &controller{
		clock:  tc.Clock,
		ktc:    ktc.NewForTest(tc.KTCURL()),
		db:     mockDB,
		season: "2025",
	}

	remaining, err := ctrl.SyncValuationHistory(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if remaining != 1 {
		t.Errorf("expected 1 stale player left, got %d", remaining)
	}

	mockDB.AssertExpectations(t)
	mockDB.AssertNotCalled(t, "UpsertValuations", mock.Anything, mock.Anything)
}

// An empty alias map bootstraps itself with one current sync, then the
// history pass proceeds against the freshly built aliases.
func TestSyncValuationHistoryBootstrap(t *testing.T) {
	tc := testutils.NewTestController()
	defer tc.Close()
	now := time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)
	tc.Clock.Set(now)

	state := model.NewAliasState()
	mockDB := &mockdb.DB{}
	mockDB.On("GetAliasState", mock.Anything, "ktc_dynasty").Return(state, nil)
	mockDB.On("SaveAliasState", mock.Anything, "ktc_dynasty", state).Return(nil)

	currentPoints := []model.ValuationPoint{
		{PlayerID: "6794", Date: "2025-08-29", Value: 9721, OverallRank: intPtr(1), PositionRank: intPtr(1)},
		{PlayerID: "4984", Date: "2025-08-29", Value: 9902, OverallRank: intPtr(2), PositionRank: intPtr(1)},
		{PlayerID: "5045", Date: "2025-08-29", Value: 1489, OverallRank: intPtr(184), PositionRank: intPtr(71)},
		{PlayerID: "2026 Mid 1st", Date: "2025-08-29", Value: 5030, OverallRank: intPtr(41)},
	}
	mockDB.On("UpsertValuations", mock.Anything, currentPoints).Return(4, nil)

	historyPoints := []model.ValuationPoint{
		{PlayerID: "6794", Date: "2025-08-27", Value: 9700, OverallRank: intPtr(2)},
		{PlayerID: "6794", Date: "2025-08-28", Value: 9750, PositionRank: intPtr(1)},
		{PlayerID: "6794", Date: "2025-08-29", Value: 9867, OverallRank: intPtr(2), PositionRank: intPtr(1)},
	}
	mockDB.On("UpsertValuations", mock.Anything, historyPoints).Return(3, nil)

	ctrl := &controller{
		clock:   tc.Clock,
		sleeper: sleeper.NewForTest(tc.SleeperURL()),
		ktc:     ktc.NewForTest(tc.KTCURL()),
		db:      mockDB,
		season:  "2025",
	}

	remaining, err := ctrl.SyncValuationHistory(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The two slugs without a player page stay stale for the next run.
	if remaining != 2 {
		t.Errorf("expected 2 stale players left, got %d", remaining)
	}

	mockDB.AssertExpectations(t)

	if len(state.Aliases) != 3 {
		t.Errorf("expected the bootstrap sync to build 3 aliases, got %v", state.Aliases)
	}
	if state.Aliases["justin-jefferson"].SyncedAt != now.UnixMilli() {
		t.Errorf("expected the sync time to be recorded, got %d", state.Aliases["justin-jefferson"].SyncedAt)
	}
}

// When the rankings page never yields a resolvable player, the bootstrap
// gives up after a bounded number of current syncs.
func TestSyncValuationHistoryBootstrapExhausted(t *testing.T) {
	tc := testutils.NewTestController()
	defer tc.Close()
	now := time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)
	tc.Clock.Set(now)

	state := model.NewAliasState()
	mockDB := &mockdb.DB{}
	mockDB.On("GetAliasState", mock.Anything, "ktc_dynasty").Return(state, nil)
	mockDB.On("SaveAliasState", mock.Anything, "ktc_dynasty", state).Return(nil)

	// Only the pick pseudo player resolves against an empty index, and it
	// never becomes an alias.
	pickPoints := []model.ValuationPoint{
		{PlayerID: "2026 Mid 1st", Date: "2025-08-29", Value: 5030, OverallRank: intPtr(41)},
	}
	mockDB.On("UpsertValuations", mock.Anything, pickPoints).Return(1, nil)

	ctrl := &controller{
		clock:         tc.Clock,
		ktc:           ktc.NewForTest(tc.KTCURL()),
		db:            mockDB,
		season:        "2025",
		players:       model.PlayerIndex{},
		playersLoaded: now,
	}

	if _, err := ctrl.SyncValuationHistory(context.Background()); err == nil {
		t.Fatal("expected a hard failure once the bootstrap attempts ran out")
	}

	mockDB.AssertNumberOfCalls(t, "UpsertValuations", 3)

	expected := []string{"justin-jefferson", "josh-allen-1445", "mike-williams-lac", "phantom-nobody"}
	if !reflect.DeepEqual(expected, state.Unmatched) {
		t.Errorf("unmatched slugs were not as expected - actual: %v", state.Unmatched)
	}
}

func TestPlayerIndexCaching(t *testing.T) {
	tc := testutils.NewTestController()
	defer tc.Close()
	tc.Clock.Set(time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC))

	ctrl := &controller{
		clock:   tc.Clock,
		sleeper: sleeper.NewForTest(tc.SleeperURL()),
		season:  "2025",
	}

	ctx := context.Background()
	index, err := ctrl.playerIndex(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(index) != 5 {
		t.Fatalf("expected 5 players in the index, got %d", len(index))
	}

	// Within the max age the same index comes back even if the source
	// changes underneath.
	tc.Close()
	again, err := ctrl.playerIndex(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(index, again) {
		t.Error("expected the cached index to be reused")
	}

	// Past the max age a reload is required, which now fails.
	tc.Clock.Add(13 * time.Hour)
	if _, err := ctrl.playerIndex(ctx); err == nil {
		t.Error("expected a reload error after the index went stale")
	}
}

package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"
	"testing"

	"github.com/itbasis/go-clock"
	"github.com/jkap86/thelabbackground2026/containers"
	"github.com/jkap86/thelabbackground2026/model"
)

// A test global db instance to use for all of the tests instead of setting up a new one each time.
var testDB DB

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	container := containers.NewDBContainer()

	clock := clock.New()

	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if container != nil {
				container.Shutdown()
			}
			fmt.Println("panic")
		}
	}()

	var err error
	testDB, err = New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		fmt.Printf("error connecting to db: %v", err)
		os.Exit(-1)
	}

	code := m.Run()
	container.Shutdown()
	os.Exit(code)
}

func testLeague(leagueID string) model.League {
	return model.League{
		LeagueID:        leagueID,
		Name:            "Test League",
		Season:          "2025",
		Status:          "in_season",
		RosterPositions: []string{"QB", "RB", "WR", "TE", "SUPER_FLEX", "BN", "BN"},
		ScoringSettings: map[string]float64{"rec": 1.0},
		Settings:        model.LeagueSettings{Type: 2, DraftRounds: 4},
		Rosters: []model.Roster{
			{RosterID: 1, UserID: "u1", Username: "alice", Players: []string{"6794"}},
		},
	}
}

func TestUpsertLeagueData(t *testing.T) {
	ctx := context.Background()

	one := 1
	batch := &model.LeagueDataBatch{
		Users: []model.User{
			{UserID: "u1", Username: "alice", Type: model.UserTypeLeagueManager},
			{UserID: "u2", Username: "bob", Type: model.UserTypeLeagueManager},
		},
		Leagues: []model.League{testLeague("301")},
		Trades: []model.Trade{
			{
				TransactionID: "tx-301-1",
				StatusUpdated: 1710000000000,
				LeagueID:      "301",
				League:        testLeague("301"),
				Adds:          map[string]string{"6794": "u2"},
				Drops:         map[string]string{"6794": "u1"},
				DraftPicks: []model.TradePick{
					{Season: "2026", Round: 1, Order: &one, OriginalUsername: "alice", OldOwner: "u1", NewOwner: "u2"},
				},
				Rosters: []model.Roster{
					{RosterID: 1, UserID: "u1", Username: "alice", Players: []string{"4984"}},
				},
			},
		},
		Drafts: []model.Draft{
			{
				DraftID:    "draft-301",
				LeagueID:   "301",
				Season:     "2025",
				Type:       "linear",
				Status:     "complete",
				Rounds:     4,
				LastPicked: 1705000000000,
				DraftOrder: map[string]int{"u1": 1, "u2": 2},
			},
		},
		DraftSelections: []model.DraftSelection{
			{DraftID: "draft-301", PlayerID: "6794", PickedBy: "u1", RosterID: 1, Round: 1, DraftSlot: 1, PickNo: 1},
			{DraftID: "draft-301", PlayerID: "8155", PickedBy: "u2", RosterID: 2, Round: 1, DraftSlot: 2, PickNo: 2},
		},
	}

	counts, err := testDB.UpsertLeagueData(ctx, batch)
	if err != nil {
		t.Fatalf("error upserting league data: %v", err)
	}

	expected := &model.UpsertCounts{NewUsers: 2, NewLeagues: 1, NewTrades: 1, NewDrafts: 1, NewDraftSelections: 2}
	if !reflect.DeepEqual(expected, counts) {
		t.Errorf("counts were not as expected - actual: %+v", counts)
	}

	// The same batch again only updates, nothing is new.
	counts, err = testDB.UpsertLeagueData(ctx, batch)
	if err != nil {
		t.Fatalf("error upserting league data again: %v", err)
	}
	if !reflect.DeepEqual(&model.UpsertCounts{}, counts) {
		t.Errorf("expected all zero counts on the second upsert - actual: %+v", counts)
	}
}

func TestUpsertUsersPreservesSuperuser(t *testing.T) {
	ctx := context.Background()

	batch := &model.LeagueDataBatch{
		Users: []model.User{{UserID: "u-super", Username: "root", Type: model.UserTypeLeagueManager}},
	}
	if _, err := testDB.UpsertLeagueData(ctx, batch); err != nil {
		t.Fatalf("error upserting user: %v", err)
	}

	// Elevate the user outside of the sync path.
	pdb := testDB.(*postgresDB)
	if _, err := pdb.pool.Exec(ctx, `UPDATE users SET type='S' WHERE user_id='u-super'`); err != nil {
		t.Fatalf("error elevating user: %v", err)
	}

	// Another sync pass must not downgrade the type.
	if _, err := testDB.UpsertLeagueData(ctx, batch); err != nil {
		t.Fatalf("error upserting user again: %v", err)
	}

	var userType string
	err := pdb.pool.QueryRow(ctx, `SELECT type FROM users WHERE user_id='u-super'`).Scan(&userType)
	if err != nil {
		t.Fatalf("error reading user type: %v", err)
	}
	if userType != model.UserTypeSuperuser {
		t.Errorf("expected type '%s', got '%s'", model.UserTypeSuperuser, userType)
	}
}

func TestGetTrades(t *testing.T) {
	ctx := context.Background()

	league := testLeague("302")
	snapshot := league
	snapshot.Rosters = nil

	batch := &model.LeagueDataBatch{
		Leagues: []model.League{league},
		Trades: []model.Trade{
			{
				TransactionID: "tx-302-1",
				StatusUpdated: 1710000000000,
				LeagueID:      "302",
				League:        snapshot,
				Adds:          map[string]string{"6794": "u2"},
				Drops:         map[string]string{"6794": "u1"},
				DraftPicks:    []model.TradePick{},
				Rosters: []model.Roster{
					{RosterID: 1, UserID: "u1", Username: "alice", Players: []string{"4984"}, DraftPicks: []model.DraftPick{}},
				},
			},
			{
				TransactionID: "tx-302-2",
				StatusUpdated: 1720000000000,
				LeagueID:      "302",
				League:        snapshot,
				Adds:          map[string]string{"8155": "u1"},
				Drops:         map[string]string{"8155": "u2"},
				DraftPicks:    []model.TradePick{},
				Rosters: []model.Roster{
					{RosterID: 2, UserID: "u2", Username: "bob", Players: []string{}, DraftPicks: []model.DraftPick{}},
				},
			},
		},
	}
	if _, err := testDB.UpsertLeagueData(ctx, batch); err != nil {
		t.Fatalf("error upserting trades: %v", err)
	}

	trades, err := testDB.GetTrades(ctx, "302")
	if err != nil {
		t.Fatalf("error getting trades: %v", err)
	}
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}

	// Most recent first.
	if trades[0].TransactionID != "tx-302-2" || trades[1].TransactionID != "tx-302-1" {
		t.Errorf("trades were not in order - actual: %s, %s", trades[0].TransactionID, trades[1].TransactionID)
	}
	if !reflect.DeepEqual(batch.Trades[0], trades[1]) {
		t.Errorf("trade did not round trip - actual: %+v", trades[1])
	}
}

func TestGetTradesLeagueNotFound(t *testing.T) {
	_, err := testDB.GetTrades(context.Background(), "399")
	if !errors.Is(err, ErrLeagueNotFound) {
		t.Errorf("expected ErrLeagueNotFound, got %v", err)
	}
}

func TestGetTradesEmpty(t *testing.T) {
	ctx := context.Background()

	batch := &model.LeagueDataBatch{Leagues: []model.League{testLeague("303")}}
	if _, err := testDB.UpsertLeagueData(ctx, batch); err != nil {
		t.Fatalf("error upserting league: %v", err)
	}

	trades, err := testDB.GetTrades(ctx, "303")
	if err != nil {
		t.Fatalf("error getting trades: %v", err)
	}
	if len(trades) != 0 {
		t.Errorf("expected no trades, got %v", trades)
	}
}

func TestAliasStateRoundTrip(t *testing.T) {
	ctx := context.Background()

	state, err := testDB.GetAliasState(ctx, "test_source")
	if err != nil {
		t.Fatalf("error getting alias state: %v", err)
	}
	if len(state.Aliases) != 0 || len(state.Unmatched) != 0 {
		t.Fatalf("expected a fresh empty state, got %+v", state)
	}

	state.AddAlias("justin-jefferson", "6794")
	state.Aliases["justin-jefferson"].SyncedAt = 1710000000000
	state.AddUnmatched("phantom-nobody")

	if err := testDB.SaveAliasState(ctx, "test_source", state); err != nil {
		t.Fatalf("error saving alias state: %v", err)
	}

	loaded, err := testDB.GetAliasState(ctx, "test_source")
	if err != nil {
		t.Fatalf("error reloading alias state: %v", err)
	}
	if !reflect.DeepEqual(state, loaded) {
		t.Errorf("alias state did not round trip - actual: %+v", loaded)
	}

	// Saving again overwrites the stored copy.
	state.AddAlias("josh-allen-1445", "4984")
	if err := testDB.SaveAliasState(ctx, "test_source", state); err != nil {
		t.Fatalf("error saving alias state again: %v", err)
	}
	loaded, err = testDB.GetAliasState(ctx, "test_source")
	if err != nil {
		t.Fatalf("error reloading alias state again: %v", err)
	}
	if len(loaded.Aliases) != 2 {
		t.Errorf("expected 2 aliases, got %+v", loaded.Aliases)
	}
}

func TestUpsertValuations(t *testing.T) {
	ctx := context.Background()

	two := 2
	points := []model.ValuationPoint{
		{PlayerID: "val-6794", Date: "2025-08-27", Value: 9700, OverallRank: &two},
		{PlayerID: "val-6794", Date: "2025-08-28", Value: 9750},
	}

	n, err := testDB.UpsertValuations(ctx, points)
	if err != nil {
		t.Fatalf("error upserting valuations: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 new rows, got %d", n)
	}

	// Re-syncing the same dates updates in place.
	points[1].Value = 9760
	n, err = testDB.UpsertValuations(ctx, points)
	if err != nil {
		t.Fatalf("error upserting valuations again: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no new rows, got %d", n)
	}

	loaded, err := testDB.GetValuations(ctx, "val-6794")
	if err != nil {
		t.Fatalf("error getting valuations: %v", err)
	}

	expected := []model.ValuationPoint{
		{PlayerID: "val-6794", Date: "2025-08-27", Value: 9700, OverallRank: &two},
		{PlayerID: "val-6794", Date: "2025-08-28", Value: 9760},
	}
	if !reflect.DeepEqual(expected, loaded) {
		t.Errorf("valuations were not as expected - actual: %+v", loaded)
	}
}

func TestUpsertValuationsEmpty(t *testing.T) {
	n, err := testDB.UpsertValuations(context.Background(), nil)
	if err != nil {
		t.Fatalf("error upserting empty valuations: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 new rows, got %d", n)
	}
}

func TestGetValuationsUnknownPlayer(t *testing.T) {
	points, err := testDB.GetValuations(context.Background(), "val-none")
	if err != nil {
		t.Fatalf("error getting valuations: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("expected no points, got %v", points)
	}
}

func TestListCompletedDraftIDs(t *testing.T) {
	ctx := context.Background()

	batch := &model.LeagueDataBatch{
		Drafts: []model.Draft{
			{DraftID: "draft-304-done", LeagueID: "304", Season: "2025", Status: "complete", Rounds: 4},
			{DraftID: "draft-304-open", LeagueID: "304", Season: "2026", Status: "pre_draft", Rounds: 4},
		},
	}
	if _, err := testDB.UpsertLeagueData(ctx, batch); err != nil {
		t.Fatalf("error upserting drafts: %v", err)
	}

	known, err := testDB.ListCompletedDraftIDs(ctx, []string{"draft-304-done", "draft-304-open", "draft-304-missing"})
	if err != nil {
		t.Fatalf("error listing completed drafts: %v", err)
	}

	expected := map[string]bool{"draft-304-done": true}
	if !reflect.DeepEqual(expected, known) {
		t.Errorf("completed drafts were not as expected - actual: %v", known)
	}

	known, err = testDB.ListCompletedDraftIDs(ctx, nil)
	if err != nil {
		t.Fatalf("error listing completed drafts with no ids: %v", err)
	}
	if len(known) != 0 {
		t.Errorf("expected an empty result, got %v", known)
	}
}

func TestFilterUnknownLeagueIDs(t *testing.T) {
	ctx := context.Background()

	batch := &model.LeagueDataBatch{Leagues: []model.League{testLeague("305")}}
	if _, err := testDB.UpsertLeagueData(ctx, batch); err != nil {
		t.Fatalf("error upserting league: %v", err)
	}

	unknown, err := testDB.FilterUnknownLeagueIDs(ctx, []string{"305", "398", "398", "397"})
	if err != nil {
		t.Fatalf("error filtering league ids: %v", err)
	}

	expected := []string{"398", "397"}
	if !reflect.DeepEqual(expected, unknown) {
		t.Errorf("unknown leagues were not as expected - actual: %v", unknown)
	}
}

func TestStaleUserScanOrder(t *testing.T) {
	ctx := context.Background()

	batch := &model.LeagueDataBatch{
		Users: []model.User{
			{UserID: "u-scan-1", Username: "first", Type: model.UserTypeLeagueManager},
			{UserID: "u-scan-2", Username: "second", Type: model.UserTypeLeagueManager},
		},
	}
	if _, err := testDB.UpsertLeagueData(ctx, batch); err != nil {
		t.Fatalf("error upserting users: %v", err)
	}

	// Touching the first user moves it behind the second in scan order.
	if err := testDB.TouchUsers(ctx, []string{"u-scan-1"}); err != nil {
		t.Fatalf("error touching user: %v", err)
	}

	ids, err := testDB.ListStaleUserIDs(ctx, 1000)
	if err != nil {
		t.Fatalf("error listing stale users: %v", err)
	}

	first := slices.Index(ids, "u-scan-1")
	second := slices.Index(ids, "u-scan-2")
	if first < 0 || second < 0 {
		t.Fatalf("expected both users in the scan list, got %v", ids)
	}
	if second > first {
		t.Errorf("expected the touched user to scan later, got order %v", ids)
	}
}

func TestListStaleLeagueIDs(t *testing.T) {
	ctx := context.Background()

	batch := &model.LeagueDataBatch{Leagues: []model.League{testLeague("306")}}
	if _, err := testDB.UpsertLeagueData(ctx, batch); err != nil {
		t.Fatalf("error upserting league: %v", err)
	}

	ids, err := testDB.ListStaleLeagueIDs(ctx, 1000)
	if err != nil {
		t.Fatalf("error listing stale leagues: %v", err)
	}
	if !slices.Contains(ids, "306") {
		t.Errorf("expected league 306 in the stale list, got %v", ids)
	}
}

package mockdb

import (
	"context"

	"github.com/jkap86/thelabbackground2026/model"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (db *DB) UpsertLeagueData(ctx context.Context, batch *model.LeagueDataBatch) (*model.UpsertCounts, error) {
	args := db.Called(ctx, batch)

	var c *model.UpsertCounts
	if args.Get(0) != nil {
		c = args.Get(0).(*model.UpsertCounts)
	}
	return c, args.Error(1)
}

func (db *DB) ListCompletedDraftIDs(ctx context.Context, draftIDs []string) (map[string]bool, error) {
	args := db.Called(ctx, draftIDs)

	var r map[string]bool
	if args.Get(0) != nil {
		r = args.Get(0).(map[string]bool)
	}
	return r, args.Error(1)
}

func (db *DB) ListStaleLeagueIDs(ctx context.Context, limit int) ([]string, error) {
	args := db.Called(ctx, limit)

	var r []string
	if args.Get(0) != nil {
		r = args.Get(0).([]string)
	}
	return r, args.Error(1)
}

func (db *DB) FilterUnknownLeagueIDs(ctx context.Context, leagueIDs []string) ([]string, error) {
	args := db.Called(ctx, leagueIDs)

	var r []string
	if args.Get(0) != nil {
		r = args.Get(0).([]string)
	}
	return r, args.Error(1)
}

func (db *DB) ListStaleUserIDs(ctx context.Context, limit int) ([]string, error) {
	args := db.Called(ctx, limit)

	var r []string
	if args.Get(0) != nil {
		r = args.Get(0).([]string)
	}
	return r, args.Error(1)
}

func (db *DB) TouchUsers(ctx context.Context, userIDs []string) error {
	args := db.Called(ctx, userIDs)
	return args.Error(0)
}

func (db *DB) GetTrades(ctx context.Context, leagueID string) ([]model.Trade, error) {
	args := db.Called(ctx, leagueID)

	var r []model.Trade
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Trade)
	}
	return r, args.Error(1)
}

func (db *DB) GetAliasState(ctx context.Context, name string) (*model.AliasState, error) {
	args := db.Called(ctx, name)

	var s *model.AliasState
	if args.Get(0) != nil {
		s = args.Get(0).(*model.AliasState)
	}
	return s, args.Error(1)
}

func (db *DB) SaveAliasState(ctx context.Context, name string, state *model.AliasState) error {
	args := db.Called(ctx, name, state)
	return args.Error(0)
}

func (db *DB) UpsertValuations(ctx context.Context, points []model.ValuationPoint) (int, error) {
	args := db.Called(ctx, points)
	return args.Int(0), args.Error(1)
}

func (db *DB) GetValuations(ctx context.Context, playerID string) ([]model.ValuationPoint, error) {
	args := db.Called(ctx, playerID)

	var r []model.ValuationPoint
	if args.Get(0) != nil {
		r = args.Get(0).([]model.ValuationPoint)
	}
	return r, args.Error(1)
}

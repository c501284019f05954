package mockcontroller

import (
	"context"
	"sync"
	"time"

	"github.com/jkap86/thelabbackground2026/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) SyncLeagues(ctx context.Context, leagueIDs []string) (*model.UpsertCounts, error) {
	args := c.Called(ctx, leagueIDs)

	var counts *model.UpsertCounts
	if args.Get(0) != nil {
		counts = args.Get(0).(*model.UpsertCounts)
	}
	return counts, args.Error(1)
}

func (c *C) UpdateLeagues(ctx context.Context) (*model.UpsertCounts, error) {
	args := c.Called(ctx)

	var counts *model.UpsertCounts
	if args.Get(0) != nil {
		counts = args.Get(0).(*model.UpsertCounts)
	}
	return counts, args.Error(1)
}

func (c *C) GetTrades(ctx context.Context, leagueID string) ([]model.Trade, error) {
	args := c.Called(ctx, leagueID)

	var trades []model.Trade
	if args.Get(0) != nil {
		trades = args.Get(0).([]model.Trade)
	}
	return trades, args.Error(1)
}

func (c *C) RunPeriodicLeagueUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	c.Called(frequency, shutdown, wg)
}

func (c *C) SyncCurrentValuations(ctx context.Context) (int, error) {
	args := c.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (c *C) SyncValuationHistory(ctx context.Context) (int, error) {
	args := c.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (c *C) GetValuations(ctx context.Context, playerID string) ([]model.ValuationPoint, error) {
	args := c.Called(ctx, playerID)

	var values []model.ValuationPoint
	if args.Get(0) != nil {
		values = args.Get(0).([]model.ValuationPoint)
	}
	return values, args.Error(1)
}

func (c *C) RunPeriodicValuationUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	c.Called(frequency, shutdown, wg)
}

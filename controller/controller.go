package controller

import (
	"context"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/jkap86/thelabbackground2026/db"
	"github.com/jkap86/thelabbackground2026/ktc"
	"github.com/jkap86/thelabbackground2026/model"
	"github.com/jkap86/thelabbackground2026/sleeper"
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	// SyncLeagues fetches fresh snapshots for the given leagues and commits
	// everything they produced in one transaction. A league that fails to
	// fetch is skipped for this pass; the rest proceed.
	SyncLeagues(ctx context.Context, leagueIDs []string) (*model.UpsertCounts, error)
	// UpdateLeagues runs one full league pass: discover new leagues from
	// recently unscanned users, top the queue up with the stalest known
	// leagues, and sync the result.
	UpdateLeagues(ctx context.Context) (*model.UpsertCounts, error)
	GetTrades(ctx context.Context, leagueID string) ([]model.Trade, error)
	RunPeriodicLeagueUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)

	// SyncCurrentValuations scrapes the rankings page, resolves every record
	// to a player ID and upserts today's valuation points. Returns the
	// number of points written.
	SyncCurrentValuations(ctx context.Context) (int, error)
	// SyncValuationHistory processes one batch of players whose valuation
	// history is stale, leaving the rest for the next run. Returns how many
	// stale players remain.
	SyncValuationHistory(ctx context.Context) (int, error)
	GetValuations(ctx context.Context, playerID string) ([]model.ValuationPoint, error)
	RunPeriodicValuationUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)
}

type controller struct {
	clock   clock.Clock
	sleeper sleeper.Client
	ktc     ktc.Client
	db      db.DB
	season  string

	playerMu      sync.Mutex
	players       model.PlayerIndex
	playersLoaded time.Time

	queueMu     sync.Mutex
	leagueQueue []string
}

func New(clock clock.Clock, sleeper sleeper.Client, ktc ktc.Client, db db.DB, season string) (C, error) {
	c := &controller{
		clock:   clock,
		sleeper: sleeper,
		ktc:     ktc,
		db:      db,
		season:  season,
	}
	return c, nil
}

func (c *controller) GetTrades(ctx context.Context, leagueID string) ([]model.Trade, error) {
	return c.db.GetTrades(ctx, leagueID)
}

func (c *controller) GetValuations(ctx context.Context, playerID string) ([]model.ValuationPoint, error) {
	return c.db.GetValuations(ctx, playerID)
}

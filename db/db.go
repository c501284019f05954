package db

import (
	"context"

	"github.com/jkap86/thelabbackground2026/model"
)

type DB interface {
	// UpsertLeagueData commits everything a league sync pass produced in a
	// single transaction. A failure anywhere rolls the whole batch back.
	UpsertLeagueData(ctx context.Context, batch *model.LeagueDataBatch) (*model.UpsertCounts, error)

	// ListCompletedDraftIDs returns which of the given draft IDs are already
	// recorded as complete. Completed drafts are never re-fetched.
	ListCompletedDraftIDs(ctx context.Context, draftIDs []string) (map[string]bool, error)

	// ListStaleLeagueIDs returns the league IDs that have gone the longest
	// without a sync, oldest first.
	ListStaleLeagueIDs(ctx context.Context, limit int) ([]string, error)

	// FilterUnknownLeagueIDs returns the subset of leagueIDs that are not in
	// the store yet.
	FilterUnknownLeagueIDs(ctx context.Context, leagueIDs []string) ([]string, error)

	// ListStaleUserIDs returns the user IDs that have gone the longest
	// without a league scan, oldest first.
	ListStaleUserIDs(ctx context.Context, limit int) ([]string, error)

	// TouchUsers marks the given users as scanned now.
	TouchUsers(ctx context.Context, userIDs []string) error

	// GetTrades returns the committed trade records for a league, most
	// recent first.
	GetTrades(ctx context.Context, leagueID string) ([]model.Trade, error)

	// GetAliasState loads the identity-resolution state stored under name,
	// or a fresh empty state when none has been saved yet.
	GetAliasState(ctx context.Context, name string) (*model.AliasState, error)
	SaveAliasState(ctx context.Context, name string, state *model.AliasState) error

	// UpsertValuations writes valuation points keyed by (player, date) and
	// returns how many of them were new rows.
	UpsertValuations(ctx context.Context, points []model.ValuationPoint) (int, error)
	GetValuations(ctx context.Context, playerID string) ([]model.ValuationPoint, error)
}

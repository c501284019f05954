package db

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jkap86/thelabbackground2026/model"
)

func (db *postgresDB) ListCompletedDraftIDs(ctx context.Context, draftIDs []string) (map[string]bool, error) {
	if len(draftIDs) == 0 {
		return map[string]bool{}, nil
	}

	const query = `SELECT draft_id FROM drafts WHERE draft_id = ANY(@ids) AND status='complete'`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"ids": draftIDs})
	if err != nil {
		return nil, fmt.Errorf("error listing completed drafts: %w", err)
	}

	result := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result[id] = true
	}
	return result, nil
}

func (db *postgresDB) ListStaleLeagueIDs(ctx context.Context, limit int) ([]string, error) {
	const query = `SELECT league_id FROM leagues ORDER BY updated ASC LIMIT @limit`
	return db.listIDs(ctx, query, pgx.NamedArgs{"limit": limit})
}

func (db *postgresDB) FilterUnknownLeagueIDs(ctx context.Context, leagueIDs []string) ([]string, error) {
	if len(leagueIDs) == 0 {
		return nil, nil
	}

	const query = `SELECT league_id FROM leagues WHERE league_id = ANY(@ids)`

	known, err := db.listIDs(ctx, query, pgx.NamedArgs{"ids": leagueIDs})
	if err != nil {
		return nil, fmt.Errorf("error filtering league ids: %w", err)
	}

	unknown := make([]string, 0, len(leagueIDs))
	for _, id := range leagueIDs {
		if !slices.Contains(known, id) && !slices.Contains(unknown, id) {
			unknown = append(unknown, id)
		}
	}
	return unknown, nil
}

func (db *postgresDB) ListStaleUserIDs(ctx context.Context, limit int) ([]string, error) {
	const query = `SELECT user_id FROM users ORDER BY updated ASC LIMIT @limit`
	return db.listIDs(ctx, query, pgx.NamedArgs{"limit": limit})
}

func (db *postgresDB) TouchUsers(ctx context.Context, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}

	const query = `UPDATE users SET updated=@updated WHERE user_id = ANY(@ids)`

	args := pgx.NamedArgs{
		"ids":     userIDs,
		"updated": db.now(),
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error touching users: %w", err)
	}
	return nil
}

func (db *postgresDB) GetTrades(ctx context.Context, leagueID string) ([]model.Trade, error) {
	var exists bool
	err := db.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM leagues WHERE league_id=@leagueID)`,
		pgx.NamedArgs{"leagueID": leagueID}).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("error checking league %s: %w", leagueID, err)
	}
	if !exists {
		return nil, ErrLeagueNotFound
	}

	const query = `SELECT transaction_id, status_updated, league_id, league, adds, drops, draft_picks, rosters
		FROM trades WHERE league_id=@leagueID ORDER BY status_updated DESC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error querying trades: %w", err)
	}

	trades := make([]model.Trade, 0, 8)
	for rows.Next() {
		var t model.Trade
		var statusUpdated pgtype.Timestamptz
		var league, adds, drops, picks, rosters []byte
		if err := rows.Scan(&t.TransactionID, &statusUpdated, &t.LeagueID, &league, &adds, &drops, &picks, &rosters); err != nil {
			return nil, fmt.Errorf("error scanning trade: %w", err)
		}
		t.StatusUpdated = statusUpdated.Time.UnixMilli()
		if err := json.Unmarshal(league, &t.League); err != nil {
			return nil, fmt.Errorf("error unmarshaling trade league: %w", err)
		}
		if err := json.Unmarshal(adds, &t.Adds); err != nil {
			return nil, fmt.Errorf("error unmarshaling trade adds: %w", err)
		}
		if err := json.Unmarshal(drops, &t.Drops); err != nil {
			return nil, fmt.Errorf("error unmarshaling trade drops: %w", err)
		}
		if err := json.Unmarshal(picks, &t.DraftPicks); err != nil {
			return nil, fmt.Errorf("error unmarshaling trade draft picks: %w", err)
		}
		if err := json.Unmarshal(rosters, &t.Rosters); err != nil {
			return nil, fmt.Errorf("error unmarshaling trade rosters: %w", err)
		}
		trades = append(trades, t)
	}

	return trades, nil
}

func (db *postgresDB) listIDs(ctx context.Context, query string, args pgx.NamedArgs) ([]string, error) {
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, 16)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

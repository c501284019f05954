package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jkap86/thelabbackground2026/model"
)

var (
	ErrLeagueNotFound error = errors.New("league not found")
)

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

// UpsertLeagueData writes the whole batch inside one transaction so that a
// failed pass leaves the previously committed state untouched.
func (db *postgresDB) UpsertLeagueData(ctx context.Context, batch *model.LeagueDataBatch) (*model.UpsertCounts, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	counts := &model.UpsertCounts{}

	if counts.NewUsers, err = db.upsertUsers(ctx, tx, batch.Users); err != nil {
		return nil, fmt.Errorf("error upserting users: %w", err)
	}
	if counts.NewLeagues, err = db.upsertLeagues(ctx, tx, batch.Leagues); err != nil {
		return nil, fmt.Errorf("error upserting leagues: %w", err)
	}
	if counts.NewTrades, err = db.upsertTrades(ctx, tx, batch.Trades); err != nil {
		return nil, fmt.Errorf("error upserting trades: %w", err)
	}
	if counts.NewDrafts, err = db.upsertDrafts(ctx, tx, batch.Drafts); err != nil {
		return nil, fmt.Errorf("error upserting drafts: %w", err)
	}
	if counts.NewDraftSelections, err = db.upsertDraftSelections(ctx, tx, batch.DraftSelections); err != nil {
		return nil, fmt.Errorf("error upserting draft selections: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("error committing league data batch: %w", err)
	}
	return counts, nil
}

func (db *postgresDB) upsertUsers(ctx context.Context, tx pgx.Tx, users []model.User) (int, error) {
	// A user elevated to type S outside of the sync path keeps that type.
	const query = `INSERT INTO users (user_id, username, avatar, type, updated)
		VALUES (@userID, @username, @avatar, @type, @updated)
		ON CONFLICT (user_id) DO UPDATE SET
			username=EXCLUDED.username,
			avatar=EXCLUDED.avatar,
			type=CASE WHEN users.type='S' THEN users.type ELSE EXCLUDED.type END,
			updated=EXCLUDED.updated
		RETURNING (xmax = 0) AS inserted`

	inserts := 0
	for _, u := range users {
		args := pgx.NamedArgs{
			"userID":   u.UserID,
			"username": u.Username,
			"avatar":   u.Avatar,
			"type":     u.Type,
			"updated":  db.now(),
		}
		var inserted bool
		if err := tx.QueryRow(ctx, query, args).Scan(&inserted); err != nil {
			return 0, fmt.Errorf("error upserting user %s: %w", u.UserID, err)
		}
		if inserted {
			inserts++
		}
	}
	return inserts, nil
}

func (db *postgresDB) upsertLeagues(ctx context.Context, tx pgx.Tx, leagues []model.League) (int, error) {
	const query = `INSERT INTO leagues (
			league_id, name, avatar, season, status, settings, scoring_settings,
			roster_positions, rosters,
			qb_count, rb_count, wr_count, te_count, flex_count, super_flex_count,
			rec_flex_count, wrrb_flex_count, k_count, def_count, bn_count,
			dl_count, lb_count, db_count, idp_flex_count, starter_count, idp_count,
			updated
		) VALUES (
			@leagueID, @name, @avatar, @season, @status,
			CAST(@settings AS jsonb), CAST(@scoringSettings AS jsonb),
			CAST(@rosterPositions AS jsonb), CAST(@rosters AS jsonb),
			@qbCount, @rbCount, @wrCount, @teCount, @flexCount, @superFlexCount,
			@recFlexCount, @wrrbFlexCount, @kCount, @defCount, @bnCount,
			@dlCount, @lbCount, @dbCount, @idpFlexCount, @starterCount, @idpCount,
			@updated
		)
		ON CONFLICT (league_id) DO UPDATE SET
			name=EXCLUDED.name,
			avatar=EXCLUDED.avatar,
			season=EXCLUDED.season,
			status=EXCLUDED.status,
			settings=EXCLUDED.settings,
			scoring_settings=EXCLUDED.scoring_settings,
			roster_positions=EXCLUDED.roster_positions,
			rosters=EXCLUDED.rosters,
			qb_count=EXCLUDED.qb_count,
			rb_count=EXCLUDED.rb_count,
			wr_count=EXCLUDED.wr_count,
			te_count=EXCLUDED.te_count,
			flex_count=EXCLUDED.flex_count,
			super_flex_count=EXCLUDED.super_flex_count,
			rec_flex_count=EXCLUDED.rec_flex_count,
			wrrb_flex_count=EXCLUDED.wrrb_flex_count,
			k_count=EXCLUDED.k_count,
			def_count=EXCLUDED.def_count,
			bn_count=EXCLUDED.bn_count,
			dl_count=EXCLUDED.dl_count,
			lb_count=EXCLUDED.lb_count,
			db_count=EXCLUDED.db_count,
			idp_flex_count=EXCLUDED.idp_flex_count,
			starter_count=EXCLUDED.starter_count,
			idp_count=EXCLUDED.idp_count,
			updated=EXCLUDED.updated
		RETURNING (xmax = 0) AS inserted`

	inserts := 0
	for _, l := range leagues {
		settings, err := asJSON(l.Settings)
		if err != nil {
			return 0, err
		}
		scoring, err := asJSON(l.ScoringSettings)
		if err != nil {
			return 0, err
		}
		positions, err := asJSON(l.RosterPositions)
		if err != nil {
			return 0, err
		}
		rosters, err := asJSON(l.Rosters)
		if err != nil {
			return 0, err
		}

		args := pgx.NamedArgs{
			"leagueID":        l.LeagueID,
			"name":            l.Name,
			"avatar":          l.Avatar,
			"season":          l.Season,
			"status":          l.Status,
			"settings":        settings,
			"scoringSettings": scoring,
			"rosterPositions": positions,
			"rosters":         rosters,
			"qbCount":         countSlot(l.RosterPositions, "QB"),
			"rbCount":         countSlot(l.RosterPositions, "RB"),
			"wrCount":         countSlot(l.RosterPositions, "WR"),
			"teCount":         countSlot(l.RosterPositions, "TE"),
			"flexCount":       countSlot(l.RosterPositions, "FLEX"),
			"superFlexCount":  countSlot(l.RosterPositions, "SUPER_FLEX"),
			"recFlexCount":    countSlot(l.RosterPositions, "REC_FLEX"),
			"wrrbFlexCount":   countSlot(l.RosterPositions, "WRRB_FLEX"),
			"kCount":          countSlot(l.RosterPositions, "K"),
			"defCount":        countSlot(l.RosterPositions, "DEF"),
			"bnCount":         countSlot(l.RosterPositions, "BN"),
			"dlCount":         countSlot(l.RosterPositions, "DL"),
			"lbCount":         countSlot(l.RosterPositions, "LB"),
			"dbCount":         countSlot(l.RosterPositions, "DB"),
			"idpFlexCount":    countSlot(l.RosterPositions, "IDP_FLEX"),
			"starterCount":    countStarters(l.RosterPositions),
			"idpCount":        countIDP(l.RosterPositions),
			"updated":         db.now(),
		}
		var inserted bool
		if err := tx.QueryRow(ctx, query, args).Scan(&inserted); err != nil {
			return 0, fmt.Errorf("error upserting league %s: %w", l.LeagueID, err)
		}
		if inserted {
			inserts++
		}
	}
	return inserts, nil
}

func (db *postgresDB) upsertTrades(ctx context.Context, tx pgx.Tx, trades []model.Trade) (int, error) {
	// Adds, drops and the league snapshot of a completed trade never change;
	// only the reconstructed context is refreshed on conflict.
	const query = `INSERT INTO trades (transaction_id, status_updated, league_id, league, adds, drops, draft_picks, rosters)
		VALUES (@transactionID, @statusUpdated, @leagueID,
			CAST(@league AS jsonb), CAST(@adds AS jsonb), CAST(@drops AS jsonb),
			CAST(@draftPicks AS jsonb), CAST(@rosters AS jsonb))
		ON CONFLICT (transaction_id) DO UPDATE SET
			draft_picks=EXCLUDED.draft_picks,
			rosters=EXCLUDED.rosters
		RETURNING (xmax = 0) AS inserted`

	inserts := 0
	for _, t := range trades {
		league, err := asJSON(t.League)
		if err != nil {
			return 0, err
		}
		adds, err := asJSON(t.Adds)
		if err != nil {
			return 0, err
		}
		drops, err := asJSON(t.Drops)
		if err != nil {
			return 0, err
		}
		picks, err := asJSON(t.DraftPicks)
		if err != nil {
			return 0, err
		}
		rosters, err := asJSON(t.Rosters)
		if err != nil {
			return 0, err
		}

		args := pgx.NamedArgs{
			"transactionID": t.TransactionID,
			"statusUpdated": timestamptz(time.UnixMilli(t.StatusUpdated)),
			"leagueID":      t.LeagueID,
			"league":        league,
			"adds":          adds,
			"drops":         drops,
			"draftPicks":    picks,
			"rosters":       rosters,
		}
		var inserted bool
		if err := tx.QueryRow(ctx, query, args).Scan(&inserted); err != nil {
			return 0, fmt.Errorf("error upserting trade %s: %w", t.TransactionID, err)
		}
		if inserted {
			inserts++
		}
	}
	return inserts, nil
}

func (db *postgresDB) upsertDrafts(ctx context.Context, tx pgx.Tx, drafts []model.Draft) (int, error) {
	const query = `INSERT INTO drafts (draft_id, league_id, season, type, status, rounds,
			start_time, last_picked, draft_order, slot_to_roster_id, updated)
		VALUES (@draftID, @leagueID, @season, @type, @status, @rounds,
			@startTime, @lastPicked, CAST(@draftOrder AS jsonb), CAST(@slotToRosterID AS jsonb), @updated)
		ON CONFLICT (draft_id) DO UPDATE SET
			status=EXCLUDED.status,
			last_picked=EXCLUDED.last_picked,
			updated=EXCLUDED.updated
		RETURNING (xmax = 0) AS inserted`

	inserts := 0
	for _, d := range drafts {
		order, err := asJSON(d.DraftOrder)
		if err != nil {
			return 0, err
		}
		slots, err := asJSON(d.SlotToRosterID)
		if err != nil {
			return 0, err
		}

		args := pgx.NamedArgs{
			"draftID":        d.DraftID,
			"leagueID":       d.LeagueID,
			"season":         d.Season,
			"type":           d.Type,
			"status":         d.Status,
			"rounds":         d.Rounds,
			"startTime":      d.StartTime,
			"lastPicked":     d.LastPicked,
			"draftOrder":     order,
			"slotToRosterID": slots,
			"updated":        db.now(),
		}
		var inserted bool
		if err := tx.QueryRow(ctx, query, args).Scan(&inserted); err != nil {
			return 0, fmt.Errorf("error upserting draft %s: %w", d.DraftID, err)
		}
		if inserted {
			inserts++
		}
	}
	return inserts, nil
}

func (db *postgresDB) upsertDraftSelections(ctx context.Context, tx pgx.Tx, selections []model.DraftSelection) (int, error) {
	const query = `INSERT INTO draft_picks (draft_id, player_id, picked_by, roster_id,
			round, draft_slot, pick_no, amount, is_keeper)
		VALUES (@draftID, @playerID, @pickedBy, @rosterID,
			@round, @draftSlot, @pickNo, @amount, @isKeeper)
		ON CONFLICT (draft_id, pick_no) DO NOTHING`

	inserts := 0
	for _, s := range selections {
		args := pgx.NamedArgs{
			"draftID":   s.DraftID,
			"playerID":  s.PlayerID,
			"pickedBy":  s.PickedBy,
			"rosterID":  s.RosterID,
			"round":     s.Round,
			"draftSlot": s.DraftSlot,
			"pickNo":    s.PickNo,
			"amount":    s.Amount,
			"isKeeper":  s.IsKeeper,
		}
		tag, err := tx.Exec(ctx, query, args)
		if err != nil {
			return 0, fmt.Errorf("error inserting draft selection %s/%d: %w", s.DraftID, s.PickNo, err)
		}
		inserts += int(tag.RowsAffected())
	}
	return inserts, nil
}

func countSlot(positions []string, slot string) int {
	count := 0
	for _, p := range positions {
		if p == slot {
			count++
		}
	}
	return count
}

func countIDP(positions []string) int {
	count := 0
	for _, p := range positions {
		switch p {
		case "DL", "LB", "DB", "IDP_FLEX":
			count++
		}
	}
	return count
}

func countStarters(positions []string) int {
	count := 0
	for _, p := range positions {
		if p != "BN" {
			count++
		}
	}
	return count
}

func asJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("error marshaling value for jsonb column: %w", err)
	}
	return string(b), nil
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{
		Time:  t.UTC(),
		Valid: true,
	}
}

func (db *postgresDB) now() pgtype.Timestamptz {
	return timestamptz(db.clock.Now())
}

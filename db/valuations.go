package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jkap86/thelabbackground2026/model"
)

func (db *postgresDB) GetAliasState(ctx context.Context, name string) (*model.AliasState, error) {
	const query = `SELECT data FROM common WHERE name=@name`

	var data []byte
	err := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"name": name}).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.NewAliasState(), nil
		}
		return nil, fmt.Errorf("error reading alias state %s: %w", name, err)
	}

	state := model.NewAliasState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("error unmarshaling alias state %s: %w", name, err)
	}
	if state.Aliases == nil {
		state.Aliases = make(map[string]*model.Alias)
	}
	return state, nil
}

func (db *postgresDB) SaveAliasState(ctx context.Context, name string, state *model.AliasState) error {
	const query = `INSERT INTO common (name, data, updated)
		VALUES (@name, CAST(@data AS jsonb), @updated)
		ON CONFLICT (name) DO UPDATE SET
			data=EXCLUDED.data,
			updated=EXCLUDED.updated`

	data, err := asJSON(state)
	if err != nil {
		return err
	}

	args := pgx.NamedArgs{
		"name":    name,
		"data":    data,
		"updated": db.now(),
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error saving alias state %s: %w", name, err)
	}
	return nil
}

func (db *postgresDB) UpsertValuations(ctx context.Context, points []model.ValuationPoint) (int, error) {
	if len(points) == 0 {
		return 0, nil
	}

	const query = `INSERT INTO ktc_values (player_id, date, value, overall_rank, position_rank)
		VALUES (@playerID, @date, @value, @overallRank, @positionRank)
		ON CONFLICT (player_id, date) DO UPDATE SET
			value=EXCLUDED.value,
			overall_rank=EXCLUDED.overall_rank,
			position_rank=EXCLUDED.position_rank
		RETURNING (xmax = 0) AS inserted`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	inserts := 0
	for _, p := range points {
		args := pgx.NamedArgs{
			"playerID":     p.PlayerID,
			"date":         p.Date,
			"value":        p.Value,
			"overallRank":  p.OverallRank,
			"positionRank": p.PositionRank,
		}
		var inserted bool
		if err := tx.QueryRow(ctx, query, args).Scan(&inserted); err != nil {
			return 0, fmt.Errorf("error upserting valuation for %s on %s: %w", p.PlayerID, p.Date, err)
		}
		if inserted {
			inserts++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error committing valuations: %w", err)
	}
	return inserts, nil
}

func (db *postgresDB) GetValuations(ctx context.Context, playerID string) ([]model.ValuationPoint, error) {
	const query = `SELECT player_id, date, value, overall_rank, position_rank
		FROM ktc_values WHERE player_id=@playerID ORDER BY date ASC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"playerID": playerID})
	if err != nil {
		return nil, fmt.Errorf("error querying valuations: %w", err)
	}

	points := make([]model.ValuationPoint, 0, 32)
	for rows.Next() {
		var p model.ValuationPoint
		var date pgtype.Date
		if err := rows.Scan(&p.PlayerID, &date, &p.Value, &p.OverallRank, &p.PositionRank); err != nil {
			return nil, fmt.Errorf("error scanning valuation: %w", err)
		}
		p.Date = date.Time.Format("2006-01-02")
		points = append(points, p)
	}

	return points, nil
}

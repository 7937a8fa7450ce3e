package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/dungeonrpg/internal/battle"
)

// BattleRepository logs finished battles. It implements battle.Recorder.
type BattleRepository struct {
	pool *pgxpool.Pool
}

// NewBattleRepository creates a new battle log repository.
func NewBattleRepository(pool *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{pool: pool}
}

var _ battle.Recorder = (*BattleRepository)(nil)

// RecordBattle stores the summary and its participants in one transaction.
func (r *BattleRepository) RecordBattle(ctx context.Context, s battle.Summary) error {
	_, err := r.Insert(ctx, s)
	return err
}

// Insert stores the summary and returns the log row id.
func (r *BattleRepository) Insert(ctx context.Context, s battle.Summary) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO battle_log (battle_id, outcome, rounds, started_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		s.ID, string(s.Outcome), s.Rounds, s.StartedAt, s.FinishedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert battle %d: %w", s.ID, err)
	}

	if len(s.Participants) > 0 {
		batch := &pgx.Batch{}
		for i, p := range s.Participants {
			batch.Queue(
				`INSERT INTO battle_participants
				 (battle_log_id, position, name, team, level, boss, alive, health)
				 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
				id, i, p.Name, p.Team, p.Level, p.Boss, p.Alive, p.Health,
			)
		}
		br := tx.SendBatch(ctx, batch)
		for range s.Participants {
			if _, err := br.Exec(); err != nil {
				br.Close() //nolint:errcheck
				return 0, fmt.Errorf("insert battle participants: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return 0, fmt.Errorf("close participant batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit battle %d: %w", s.ID, err)
	}
	return id, nil
}

// Get loads a logged battle by row id.
func (r *BattleRepository) Get(ctx context.Context, id int64) (battle.Summary, error) {
	var (
		s       battle.Summary
		outcome string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT battle_id, outcome, rounds, started_at, finished_at
		 FROM battle_log WHERE id = $1`, id,
	).Scan(&s.ID, &outcome, &s.Rounds, &s.StartedAt, &s.FinishedAt)
	if err != nil {
		return battle.Summary{}, fmt.Errorf("loading battle %d: %w", id, err)
	}
	s.Outcome = battle.Outcome(outcome)

	rows, err := r.pool.Query(ctx,
		`SELECT name, team, level, boss, alive, health
		 FROM battle_participants WHERE battle_log_id = $1 ORDER BY position`, id)
	if err != nil {
		return battle.Summary{}, fmt.Errorf("loading battle %d participants: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var p battle.ParticipantSummary
		if err := rows.Scan(&p.Name, &p.Team, &p.Level, &p.Boss, &p.Alive, &p.Health); err != nil {
			return battle.Summary{}, fmt.Errorf("scanning participant: %w", err)
		}
		s.Participants = append(s.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return battle.Summary{}, fmt.Errorf("iterating participants: %w", err)
	}
	return s, nil
}

// CountByOutcome returns how many logged battles ended with each outcome.
func (r *BattleRepository) CountByOutcome(ctx context.Context) (map[battle.Outcome]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT outcome, count(*) FROM battle_log GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("counting outcomes: %w", err)
	}
	defer rows.Close()

	out := make(map[battle.Outcome]int, 4)
	for rows.Next() {
		var (
			outcome string
			n       int
		)
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		out[battle.Outcome(outcome)] = n
	}
	return out, rows.Err()
}

package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/dungeonrpg/internal/data"
)

const upsertTemplate = `
	INSERT INTO enemy_templates (alias, name, boss, action_points, definition, updated_at)
	VALUES ($1, $2, $3, $4, $5, now())
	ON CONFLICT (alias) DO UPDATE SET
	 name=$2, boss=$3, action_points=$4, definition=$5, updated_at=now()`

// TemplateRepository stores enemy templates. The full template is kept as
// YAML in the definition column; alias, name and boss are denormalized for
// queries.
type TemplateRepository struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository creates a new template repository.
func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{pool: pool}
}

// Save inserts or replaces a template.
func (r *TemplateRepository) Save(ctx context.Context, t *data.Template) error {
	def, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("encoding template %s: %w", t.Alias, err)
	}
	_, err = r.pool.Exec(ctx, upsertTemplate,
		t.Alias, t.DisplayName(), t.Boss, t.ActionPoints, string(def),
	)
	if err != nil {
		return fmt.Errorf("saving template %s: %w", t.Alias, err)
	}
	return nil
}

// SaveAll upserts templates in one transaction.
func (r *TemplateRepository) SaveAll(ctx context.Context, templates []*data.Template) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch := &pgx.Batch{}
	for _, t := range templates {
		def, err := yaml.Marshal(t)
		if err != nil {
			return fmt.Errorf("encoding template %s: %w", t.Alias, err)
		}
		batch.Queue(upsertTemplate, t.Alias, t.DisplayName(), t.Boss, t.ActionPoints, string(def))
	}
	br := tx.SendBatch(ctx, batch)
	for _, t := range templates {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return fmt.Errorf("saving template %s: %w", t.Alias, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close template batch: %w", err)
	}
	return tx.Commit(ctx)
}

// Lookup loads the template for alias. A missing row wraps
// data.ErrTemplateNotFound, so the repository can stand in for the
// in-memory catalog.
func (r *TemplateRepository) Lookup(ctx context.Context, alias string) (*data.Template, error) {
	var def string
	err := r.pool.QueryRow(ctx,
		`SELECT definition FROM enemy_templates WHERE alias = $1`, alias,
	).Scan(&def)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", data.ErrTemplateNotFound, alias)
		}
		return nil, fmt.Errorf("loading template %s: %w", alias, err)
	}
	return decodeTemplate(alias, def)
}

// Bosses returns the aliases of every boss template, sorted.
func (r *TemplateRepository) Bosses(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT alias FROM enemy_templates WHERE boss ORDER BY alias`)
	if err != nil {
		return nil, fmt.Errorf("listing boss templates: %w", err)
	}
	aliases, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning boss templates: %w", err)
	}
	return aliases, nil
}

// Count returns the number of stored templates.
func (r *TemplateRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM enemy_templates`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting templates: %w", err)
	}
	return n, nil
}

func decodeTemplate(alias, def string) (*data.Template, error) {
	var t data.Template
	if err := yaml.Unmarshal([]byte(def), &t); err != nil {
		return nil, fmt.Errorf("decoding template %s: %w", alias, err)
	}
	if t.Alias == "" {
		t.Alias = alias
	}
	return &t, nil
}

package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/dungeonrpg/internal/battle"
	"github.com/udisondev/dungeonrpg/internal/data"
	"github.com/udisondev/dungeonrpg/internal/spawn"
	"github.com/udisondev/dungeonrpg/internal/testutil"
)

func TestRunMigrations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres test in short mode")
	}
	ctx := context.Background()
	dsn := testutil.StartPostgres(t)

	require.NoError(t, RunMigrations(ctx, dsn))
	require.NoError(t, RunMigrations(ctx, dsn), "second run is a no-op")

	d, err := New(ctx, dsn)
	require.NoError(t, err)
	defer d.Close()

	n, err := d.Templates().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTemplateRepository(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := NewTemplateRepository(pool)

	cat, err := data.NewCatalog(data.TestSet())
	require.NoError(t, err)
	require.NoError(t, repo.SaveAll(ctx, cat.Enemies()))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := repo.Lookup(ctx, "grunt")
	require.NoError(t, err)
	want, err := cat.Lookup(ctx, "grunt")
	require.NoError(t, err)
	assert.Equal(t, want.Stats, got.Stats)
	assert.Equal(t, want.Skills, got.Skills)

	_, err = repo.Lookup(ctx, "dragon")
	assert.ErrorIs(t, err, data.ErrTemplateNotFound)

	bosses, err := repo.Bosses(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"warlord"}, bosses)

	// The repository serves as a spawn catalog.
	c, err := spawn.CreateEnemy(ctx, repo, "grunt", 0, spawn.Hard)
	require.NoError(t, err)
	assert.Equal(t, 125.0, c.MaximalHealth())

	updated := *want
	updated.Name = "Grunt Veteran"
	require.NoError(t, repo.Save(ctx, &updated))
	got, err = repo.Lookup(ctx, "grunt")
	require.NoError(t, err)
	assert.Equal(t, "Grunt Veteran", got.Name)
}

func TestBattleRepository(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := NewBattleRepository(pool)

	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := battle.Summary{
		ID:      42,
		Outcome: battle.OutcomeVictory,
		Rounds:  4,
		Participants: []battle.ParticipantSummary{
			{Name: "Hero", Team: 0, Level: 5, Alive: true, Health: 37},
			{Name: "Ogre", Team: 1, Level: 5, Boss: true, Alive: false, Health: 0},
		},
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
	}

	id, err := repo.Insert(ctx, s)
	require.NoError(t, err)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.Outcome, got.Outcome)
	assert.Equal(t, s.Rounds, got.Rounds)
	assert.Equal(t, s.Participants, got.Participants)
	assert.True(t, s.StartedAt.Equal(got.StartedAt))
	assert.Equal(t, 3*time.Second, got.Duration())

	require.NoError(t, repo.RecordBattle(ctx, battle.Summary{
		ID: 43, Outcome: battle.OutcomeEscaped, StartedAt: started, FinishedAt: started,
	}))
	counts, err := repo.CountByOutcome(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[battle.Outcome]int{battle.OutcomeVictory: 1, battle.OutcomeEscaped: 1}, counts)
}

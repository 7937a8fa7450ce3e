package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/dungeonrpg/internal/battle"
	"github.com/udisondev/dungeonrpg/internal/config"
	"github.com/udisondev/dungeonrpg/internal/data"
	"github.com/udisondev/dungeonrpg/internal/model"
	"github.com/udisondev/dungeonrpg/internal/skill"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want slog.Level
	}{
		{name: "debug", in: "debug", want: slog.LevelDebug},
		{name: "info", in: "info", want: slog.LevelInfo},
		{name: "warn", in: "warn", want: slog.LevelWarn},
		{name: "error", in: "error", want: slog.LevelError},
		{name: "unknown falls back to info", in: "verbose", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.in))
		})
	}
}

func testSimulator(t *testing.T, autopilot bool) *simulator {
	t.Helper()
	content, err := data.NewCatalog(data.TestSet())
	require.NoError(t, err)

	cfg := config.DefaultSimulator()
	cfg.Simulation.Battles = 6
	cfg.Simulation.Parallelism = 3
	cfg.Simulation.Seed = 7
	cfg.Simulation.Location = "camp"
	cfg.Simulation.PlayerClass = "knight"
	cfg.Simulation.Autopilot = autopilot
	return newSimulator(cfg, content)
}

func total(r Report) int {
	var n int
	for _, c := range r.Outcomes {
		n += c
	}
	return n
}

func TestSimulator_Run(t *testing.T) {
	tests := []struct {
		name      string
		autopilot bool
	}{
		{name: "autopilot drives the human path", autopilot: true},
		{name: "player handed to the AI", autopilot: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := testSimulator(t, tt.autopilot).Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 6, total(report))
		})
	}
}

func TestSimulator_SeedReproducesBatch(t *testing.T) {
	a, err := testSimulator(t, true).Run(context.Background())
	require.NoError(t, err)
	b, err := testSimulator(t, true).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Outcomes, b.Outcomes)
	assert.Equal(t, a.Bosses, b.Bosses)
}

type countingRecorder struct {
	summaries chan battle.Summary
}

func (r *countingRecorder) RecordBattle(_ context.Context, s battle.Summary) error {
	r.summaries <- s
	return nil
}

func TestSimulator_RecordsFinishedBattles(t *testing.T) {
	sim := testSimulator(t, true)
	rec := &countingRecorder{summaries: make(chan battle.Summary, sim.cfg.Simulation.Battles)}
	sim.recorder = rec

	report, err := sim.Run(context.Background())
	require.NoError(t, err)

	finished := total(report) - report.Outcomes[battle.OutcomeActive]
	assert.Len(t, rec.summaries, finished)
}

func TestSimulator_UnknownClass(t *testing.T) {
	sim := testSimulator(t, true)
	sim.cfg.Simulation.PlayerClass = "bard"

	_, err := sim.Run(context.Background())
	assert.ErrorIs(t, err, data.ErrClassNotFound)
}

func TestSimulator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testSimulator(t, false).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAutopilot_CapsFreeSkills(t *testing.T) {
	ctx := context.Background()
	book, err := skill.BuildBook([]skill.Definition{{
		Name:    "Focus",
		Target:  "self",
		Effects: []skill.EffectSpec{{Type: "StatBuff", Params: map[string]string{"stat": "Dodge", "value": "1", "duration": "1"}}},
	}})
	require.NoError(t, err)

	newCombatant := func(name string, speed float64, skills ...string) *model.Combatant {
		c, err := model.NewCombatant(model.Spec{
			Name:   name,
			Skills: skills,
			Stats: map[model.StatKind]model.StatSeed{
				model.StatMaximalHealth: {Base: 100},
				model.StatSpeed:         {Base: speed},
			},
		})
		require.NoError(t, err)
		return c
	}
	hero := model.NewBattleUser(newCombatant("hero", 20, "Focus"), 2, battle.PlayerTeam, model.ControlHuman)
	dummy := model.NewBattleUser(newCombatant("dummy", 10), 2, 1, model.ControlAI)

	b, err := battle.New([]*model.BattleUser{hero, dummy}, book, battle.Options{})
	require.NoError(t, err)
	var used int
	b.SetObserver(func(*skill.Result) { used++ })
	require.NoError(t, b.Start(ctx))
	require.Same(t, hero, b.Current())

	require.NoError(t, autopilot(ctx, b))
	assert.Equal(t, maxAutopilotActions, used)
	assert.Equal(t, 1, b.TurnCount(), "the turn was closed and the round advanced")
	assert.Same(t, hero, b.Current())
}

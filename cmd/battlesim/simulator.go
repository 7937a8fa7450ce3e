package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/dungeonrpg/internal/ai"
	"github.com/udisondev/dungeonrpg/internal/battle"
	"github.com/udisondev/dungeonrpg/internal/config"
	"github.com/udisondev/dungeonrpg/internal/data"
	"github.com/udisondev/dungeonrpg/internal/model"
	"github.com/udisondev/dungeonrpg/internal/spawn"
)

const enemyTeam = 1

// escapeBelow is the health fraction under which the autopilot tries to flee.
const escapeBelow = 0.2

// simulator runs a batch of independent battles.
type simulator struct {
	cfg      config.Simulator
	content  *data.Catalog
	catalog  spawn.Catalog
	bosses   spawn.BossSelector
	recorder battle.Recorder
	seed     uint64
}

func newSimulator(cfg config.Simulator, content *data.Catalog) *simulator {
	return &simulator{
		cfg:     cfg,
		content: content,
		catalog: content,
		bosses:  data.NewQuestBossSelector(content, data.NewQuestFlags(cfg.CompletedQuests...)),
		seed:    cfg.Simulation.Seed,
	}
}

// Report tallies battle outcomes. Battles stopped by the round limit count
// as OutcomeActive.
type Report struct {
	Outcomes map[battle.Outcome]int
	Bosses   int
	Elapsed  time.Duration
}

func (r Report) Log() {
	slog.Info("simulation finished",
		"victories", r.Outcomes[battle.OutcomeVictory],
		"defeats", r.Outcomes[battle.OutcomeDefeat],
		"escapes", r.Outcomes[battle.OutcomeEscaped],
		"unresolved", r.Outcomes[battle.OutcomeActive],
		"bosses", r.Bosses,
		"elapsed", r.Elapsed)
}

type result struct {
	outcome battle.Outcome
	boss    bool
}

// Run plays every configured battle, at most Parallelism at a time. Each
// battle draws from its own stream so a seed reproduces the whole batch.
func (s *simulator) Run(ctx context.Context) (Report, error) {
	n := s.cfg.Simulation.Battles
	results := make([]result, n)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Simulation.Parallelism)
	for i := range n {
		g.Go(func() error {
			res, err := s.runOne(gctx, i)
			if err != nil {
				return fmt.Errorf("battle %d: %w", i+1, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{Outcomes: make(map[battle.Outcome]int), Elapsed: time.Since(start)}
	for _, r := range results {
		report.Outcomes[r.outcome]++
		if r.boss {
			report.Bosses++
		}
	}
	return report, nil
}

func (s *simulator) runOne(ctx context.Context, i int) (result, error) {
	sim := s.cfg.Simulation
	rng := rand.New(rand.NewPCG(s.seed, uint64(i)))

	class, err := s.content.Class(sim.PlayerClass)
	if err != nil {
		return result{}, err
	}
	loc, err := s.content.Location(sim.Location)
	if err != nil {
		return result{}, err
	}

	factory := spawn.NewFactory(s.catalog, s.bosses, s.cfg.Difficulty, rng)
	factory.SetBossChance(s.cfg.BossChance)
	enc, err := factory.Encounter(ctx, loc, sim.Level)
	if err != nil {
		return result{}, fmt.Errorf("rolling encounter: %w", err)
	}

	player, err := spawn.CreatePlayer(class, sim.PlayerName, sim.Level)
	if err != nil {
		return result{}, fmt.Errorf("creating player: %w", err)
	}
	control := model.ControlAI
	if sim.Autopilot {
		control = model.ControlHuman
	}

	users := make([]*model.BattleUser, 0, len(enc.Enemies)+1)
	users = append(users, model.NewBattleUser(player, class.MaxActionPoints(), battle.PlayerTeam, control))
	for _, e := range enc.Enemies {
		users = append(users, model.NewBattleUser(e.Combatant, e.ActionPoints, enemyTeam, model.ControlAI))
	}

	b, err := battle.New(users, s.content.Book(), battle.Options{
		ID:        int64(i + 1),
		CanEscape: !enc.Boss,
		Escape:    s.cfg.Escape,
		Rand:      rng,
		Recorder:  s.recorder,
		MaxRounds: sim.MaxRounds,
	})
	if err != nil {
		return result{}, err
	}

	err = b.Start(ctx)
	for err == nil && !b.IsOver() {
		err = autopilot(ctx, b)
	}
	if errors.Is(err, battle.ErrRoundLimit) {
		slog.Warn("battle unresolved", "battle", b.ID(), "rounds", b.TurnCount())
		err = nil
	}
	if err != nil {
		return result{}, err
	}
	return result{outcome: b.Outcome(), boss: enc.Boss}, nil
}

// maxAutopilotActions caps the skills one autopilot turn may use.
const maxAutopilotActions = 16

// autopilot plays the current human turn through the same commands a client
// would issue.
func autopilot(ctx context.Context, b *battle.Battle) error {
	u := b.Current()
	if u == nil {
		return battle.ErrNoActiveTurn
	}

	if b.CanEscape() && u.Combatant().HealthFraction() < escapeBelow {
		_, err := b.TryEscape(ctx, u)
		return err
	}

	ctrl := ai.ForCombatant(u.Combatant())
	round := b.TurnCount()
	for range maxAutopilotActions {
		act := ctrl.ChooseAction(u, b, b.Book())
		if act.EndTurn() {
			return b.CompletePlayerMove(ctx, true)
		}
		if _, err := b.UseSkill(ctx, act.Skill.Name, act.Target); err != nil {
			slog.Debug("autopilot skill failed", "battle", b.ID(), "skill", act.Skill.Name, "err", err)
			return b.CompletePlayerMove(ctx, true)
		}
		if b.IsOver() {
			return nil
		}
		if err := b.CompletePlayerMove(ctx, false); err != nil {
			return err
		}
		if b.Current() != u || b.TurnCount() != round {
			return nil
		}
	}
	return b.CompletePlayerMove(ctx, true)
}

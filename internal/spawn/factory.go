package spawn

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/dungeonrpg/internal/data"
	"github.com/udisondev/dungeonrpg/internal/model"
)

// DefaultBossChance is how often an encounter tries for a boss.
const DefaultBossChance = 0.2

// BossSelector decides whether a location offers a boss right now.
type BossSelector interface {
	SelectBossCandidate(location string) (string, bool)
}

// Enemy is one spawned opponent with its per-turn action point budget.
type Enemy struct {
	Combatant    *model.Combatant
	ActionPoints float64
}

// Encounter is the opponent side of one battle.
type Encounter struct {
	Location string
	Boss     bool
	Enemies  []Enemy
}

// Factory rolls encounters for locations.
type Factory struct {
	catalog    Catalog
	bosses     BossSelector
	difficulty Difficulty
	bossChance float64
	rng        model.Rand
}

// NewFactory creates a factory with the default boss chance. A nil bosses
// selector disables bosses; a nil rng uses the global source.
func NewFactory(catalog Catalog, bosses BossSelector, d Difficulty, rng model.Rand) *Factory {
	if rng == nil {
		rng = model.DefaultRand
	}
	return &Factory{
		catalog:    catalog,
		bosses:     bosses,
		difficulty: d,
		bossChance: DefaultBossChance,
		rng:        rng,
	}
}

// SetBossChance overrides the boss roll probability, clamped to [0, 1].
func (f *Factory) SetBossChance(p float64) {
	f.bossChance = min(max(p, 0), 1)
}

func (f *Factory) Difficulty() Difficulty { return f.difficulty }

// Encounter rolls the opponents for loc at level. With probability
// bossChance the factory asks the selector for a boss; if none is offered it
// falls back to a regular pack.
func (f *Factory) Encounter(ctx context.Context, loc *data.Location, level int) (*Encounter, error) {
	if f.bosses != nil && f.rng.Float64() < f.bossChance {
		if alias, ok := f.bosses.SelectBossCandidate(loc.Name); ok {
			e, err := f.spawn(ctx, alias, level, "")
			if err != nil {
				return nil, err
			}
			slog.Info("boss encounter", "location", loc.Name, "boss", e.Combatant.Name(), "level", level)
			return &Encounter{Location: loc.Name, Boss: true, Enemies: []Enemy{e}}, nil
		}
	}

	if len(loc.Enemies) == 0 {
		return nil, fmt.Errorf("location %s has no enemies", loc.Name)
	}
	pack := loc.Pack()
	enc := &Encounter{Location: loc.Name, Enemies: make([]Enemy, 0, pack)}
	for i := range pack {
		alias := loc.Enemies[f.pick(len(loc.Enemies))]
		suffix := ""
		if pack > 1 {
			suffix = fmt.Sprintf(" #%d", i+1)
		}
		e, err := f.spawn(ctx, alias, level, suffix)
		if err != nil {
			return nil, err
		}
		enc.Enemies = append(enc.Enemies, e)
	}
	return enc, nil
}

func (f *Factory) spawn(ctx context.Context, alias string, level int, suffix string) (Enemy, error) {
	spec, tpl, err := EnemySpec(ctx, f.catalog, alias, level, f.difficulty)
	if err != nil {
		return Enemy{}, err
	}
	spec.Name += suffix
	c, err := model.NewCombatant(spec)
	if err != nil {
		return Enemy{}, fmt.Errorf("creating enemy %s: %w", alias, err)
	}
	return Enemy{Combatant: c, ActionPoints: tpl.MaxActionPoints()}, nil
}

func (f *Factory) pick(n int) int {
	return min(int(f.rng.Float64()*float64(n)), n-1)
}

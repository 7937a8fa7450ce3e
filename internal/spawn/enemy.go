// Package spawn instantiates combatants from templates.
package spawn

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/dungeonrpg/internal/data"
	"github.com/udisondev/dungeonrpg/internal/model"
)

// Catalog supplies enemy templates by alias.
type Catalog interface {
	Lookup(ctx context.Context, alias string) (*data.Template, error)
}

// scaledStats are multiplied by the difficulty factor. Resource, speed,
// accuracy, dodge and crit stats are copied as is.
var scaledStats = []model.StatKind{
	model.StatMaximalHealth,
	model.StatMinimalAttack,
	model.StatMaximalAttack,
	model.StatPhysicalDefense,
	model.StatMagicDefense,
}

// ScaleSpec multiplies the base and scaling of every offense, defense and
// health stat by the difficulty factor.
func ScaleSpec(spec *model.Spec, d Difficulty) {
	f := d.Factor()
	for _, k := range scaledStats {
		seed, ok := spec.Stats[k]
		if !ok {
			continue
		}
		spec.Stats[k] = model.StatSeed{Base: seed.Base * f, Scaling: seed.Scaling * f}
	}
}

// EnemySpec builds the scaled spec for alias at level. Enemies always start
// with an empty resource.
func EnemySpec(ctx context.Context, catalog Catalog, alias string, level int, d Difficulty) (model.Spec, *data.Template, error) {
	tpl, err := catalog.Lookup(ctx, alias)
	if err != nil {
		return model.Spec{}, nil, fmt.Errorf("looking up enemy %s: %w", alias, err)
	}
	spec, err := tpl.Spec(level)
	if err != nil {
		return model.Spec{}, nil, err
	}
	ScaleSpec(&spec, d)
	spec.InitialResource = 0
	return spec, tpl, nil
}

// CreateEnemy instantiates a fresh combatant from the template for alias.
// Current health starts at the scaled maximum.
func CreateEnemy(ctx context.Context, catalog Catalog, alias string, level int, d Difficulty) (*model.Combatant, error) {
	spec, _, err := EnemySpec(ctx, catalog, alias, level, d)
	if err != nil {
		return nil, err
	}
	c, err := model.NewCombatant(spec)
	if err != nil {
		return nil, fmt.Errorf("creating enemy %s: %w", alias, err)
	}
	slog.Debug("enemy created",
		"alias", alias,
		"level", level,
		"difficulty", d.String(),
		"hp", c.MaximalHealth())
	return c, nil
}

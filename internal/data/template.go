package data

import (
	"fmt"
	"strings"

	"github.com/udisondev/dungeonrpg/internal/effect"
	"github.com/udisondev/dungeonrpg/internal/model"
	"github.com/udisondev/dungeonrpg/internal/stat"
)

// DefaultActionPoints is the per-turn budget of a template without one.
const DefaultActionPoints = 3

// StatSeed is the YAML form of a stat's base and per-level scaling.
type StatSeed struct {
	Base    float64 `yaml:"base"`
	Scaling float64 `yaml:"scaling"`
}

// InnateDef is the YAML form of an innate effect. Innate effects start
// enabled unless Disabled is set.
type InnateDef struct {
	Name      string  `yaml:"name"`
	Tag       string  `yaml:"tag"`
	Type      string  `yaml:"type"`
	Magnitude float64 `yaml:"magnitude"`
	Disabled  bool    `yaml:"disabled"`
}

// Template is an immutable stat block for enemies, bosses and player
// classes. Stats and resistances are keyed by their names.
type Template struct {
	Alias           string              `yaml:"alias"`
	Name            string              `yaml:"name"`
	Boss            bool                `yaml:"boss"`
	Resource        string              `yaml:"resource"`
	InitialResource float64             `yaml:"initial_resource"`
	ActionPoints    float64             `yaml:"action_points"`
	Stats           map[string]StatSeed `yaml:"stats"`
	Resistances     map[string]float64  `yaml:"resistances"`
	Skills          []string            `yaml:"skills"`
	Innate          []InnateDef         `yaml:"innate"`
}

// DisplayName falls back to the alias.
func (t *Template) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Alias
}

// MaxActionPoints returns the per-turn action point budget.
func (t *Template) MaxActionPoints() float64 {
	if t.ActionPoints > 0 {
		return t.ActionPoints
	}
	return DefaultActionPoints
}

// Spec converts the template to an unscaled combatant spec at level.
// Unknown stat, resistance, resource or tag names fail.
func (t *Template) Spec(level int) (model.Spec, error) {
	spec := model.Spec{
		Name:            t.DisplayName(),
		Level:           level,
		Boss:            t.Boss,
		InitialResource: t.InitialResource,
		Stats:           make(map[model.StatKind]model.StatSeed, len(t.Stats)),
		Resistances:     make(map[model.StatusKind]float64, len(t.Resistances)),
		Skills:          append([]string(nil), t.Skills...),
	}

	if t.Resource != "" {
		r, err := model.ParseResourceType(t.Resource)
		if err != nil {
			return model.Spec{}, fmt.Errorf("template %s: %w", t.Alias, err)
		}
		spec.Resource = r
	}
	for name, seed := range t.Stats {
		k, err := model.ParseStatKind(name)
		if err != nil {
			return model.Spec{}, fmt.Errorf("template %s: %w", t.Alias, err)
		}
		spec.Stats[k] = model.StatSeed{Base: seed.Base, Scaling: seed.Scaling}
	}
	for name, v := range t.Resistances {
		k, err := model.ParseStatusKind(name)
		if err != nil {
			return model.Spec{}, fmt.Errorf("template %s: %w", t.Alias, err)
		}
		spec.Resistances[k] = v
	}
	for _, def := range t.Innate {
		e, err := def.innate()
		if err != nil {
			return model.Spec{}, fmt.Errorf("template %s: %w", t.Alias, err)
		}
		spec.Innate = append(spec.Innate, e)
	}
	return spec, nil
}

func (d InnateDef) innate() (effect.Innate, error) {
	tag, err := effect.ParseTag(d.Tag)
	if err != nil {
		return effect.Innate{}, err
	}
	modType := stat.ModAdditive
	if d.Type != "" {
		t, ok := stat.ParseModType(d.Type)
		if !ok {
			return effect.Innate{}, fmt.Errorf("innate %s: unknown modifier type %q", d.Name, d.Type)
		}
		modType = t
	}
	name := d.Name
	if name == "" {
		name = strings.TrimSpace(d.Tag)
	}
	return effect.Innate{
		Name:      name,
		Tag:       tag,
		Type:      modType,
		Magnitude: d.Magnitude,
		Enabled:   !d.Disabled,
	}, nil
}

// Package skill defines active skills and the effects they apply.
//
// A skill use is all-or-nothing: affordability (action points and resource)
// is validated before anything is spent or applied.
package skill

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/udisondev/dungeonrpg/internal/model"
)

var (
	ErrCannotAfford   = errors.New("cannot afford skill")
	ErrCasterDead     = errors.New("caster is dead")
	ErrTargetDead     = errors.New("target is dead")
	ErrInvalidTarget  = errors.New("invalid target")
	ErrUnknownSkill   = errors.New("unknown skill")
	ErrSkillNotKnown  = errors.New("skill not in caster's slots")
	ErrDuplicateSkill = errors.New("skill already registered")
)

// TargetMode tells who a skill is aimed at.
type TargetMode uint8

const (
	TargetEnemy TargetMode = iota
	TargetSelf
	TargetAlly
)

func (m TargetMode) String() string {
	switch m {
	case TargetSelf:
		return "self"
	case TargetAlly:
		return "ally"
	default:
		return "enemy"
	}
}

// ParseTargetMode resolves a target mode name. Empty means enemy.
func ParseTargetMode(s string) (TargetMode, error) {
	switch strings.ToLower(s) {
	case "", "enemy":
		return TargetEnemy, nil
	case "self":
		return TargetSelf, nil
	case "ally":
		return TargetAlly, nil
	}
	return 0, fmt.Errorf("unknown target mode: %q", s)
}

// Skill is an immutable active skill.
type Skill struct {
	Name         string
	Description  string
	ActionCost   float64
	ResourceCost float64
	Target       TargetMode
	Effects      []Effect
}

// Damaging reports whether the skill contains a damage effect.
func (s *Skill) Damaging() bool {
	for _, e := range s.Effects {
		if _, ok := e.(*DealDamageEffect); ok {
			return true
		}
	}
	return false
}

// Heals reports whether the skill contains a heal effect.
func (s *Skill) Heals() bool {
	for _, e := range s.Effects {
		if _, ok := e.(*HealEffect); ok {
			return true
		}
	}
	return false
}

// CanAfford checks the caster's action points and resource. It returns an
// error wrapping ErrCannotAfford.
func (s *Skill) CanAfford(caster *model.BattleUser) error {
	if !caster.CanAffordActions(s.ActionCost) {
		return fmt.Errorf("%w: %s needs %.1f action points, has %.1f",
			ErrCannotAfford, s.Name, s.ActionCost, caster.CurrentActionPoints())
	}
	c := caster.Combatant()
	if !c.CanAffordResource(s.ResourceCost) {
		return fmt.Errorf("%w: %s needs %.1f %s, has %.1f",
			ErrCannotAfford, s.Name, s.ResourceCost, c.ResourceType(), c.CurrentResource())
	}
	return nil
}

// validTarget checks the target against the skill's mode.
func (s *Skill) validTarget(caster, target *model.BattleUser) error {
	switch s.Target {
	case TargetSelf:
		if target != nil && target != caster {
			return fmt.Errorf("%w: %s targets self", ErrInvalidTarget, s.Name)
		}
	case TargetAlly:
		if target == nil || target.Team() != caster.Team() {
			return fmt.Errorf("%w: %s targets an ally", ErrInvalidTarget, s.Name)
		}
	default:
		if target == nil || target.Team() == caster.Team() {
			return fmt.Errorf("%w: %s targets an enemy", ErrInvalidTarget, s.Name)
		}
	}
	return nil
}

// Use validates, pays for, and resolves the skill. On error nothing is
// mutated. A miss still pays the costs.
func (s *Skill) Use(caster, target *model.BattleUser, rng model.Rand) (*Result, error) {
	if rng == nil {
		rng = model.DefaultRand
	}
	if !caster.Combatant().IsAlive() {
		return nil, ErrCasterDead
	}
	if s.Target == TargetSelf {
		target = caster
	}
	if err := s.validTarget(caster, target); err != nil {
		return nil, err
	}
	if !target.Combatant().IsAlive() {
		return nil, fmt.Errorf("%w: %s", ErrTargetDead, target.Name())
	}
	if err := s.CanAfford(caster); err != nil {
		return nil, err
	}

	// Affordability was checked above, this cannot fail.
	_ = caster.SpendActionPoints(s.ActionCost)
	caster.Combatant().UseResource(s.ResourceCost)

	res := &Result{Skill: s.Name, Caster: caster.Name(), Target: target.Name()}
	cast := &Cast{Skill: s, Caster: caster, Target: target, Rand: rng, Result: res}

	if s.Target == TargetEnemy {
		if rng.Float64() >= HitChance(caster.Combatant(), target.Combatant()) {
			res.Missed = true
			slog.Debug("skill missed", "skill", s.Name, "caster", caster.Name(), "target", target.Name())
			return res, nil
		}
		if s.Damaging() {
			cast.Crit = rng.Float64() < caster.Combatant().CritChance()
			res.Crit = cast.Crit
		}
	}

	for _, e := range s.Effects {
		if err := e.Apply(cast); err != nil {
			// Effects are validated at build time; a failure here is a data bug.
			slog.Warn("skill effect failed", "skill", s.Name, "effect", e.Name(), "err", err)
		}
	}
	return res, nil
}

// HitChance is (Accuracy − Dodge)/100 clamped to [0.05, 0.95].
func HitChance(attacker, target *model.Combatant) float64 {
	chance := (attacker.Accuracy() - target.Dodge()) / 100
	return min(max(chance, 0.05), 0.95)
}

// Definition is the data-file form of a skill.
type Definition struct {
	Name         string       `yaml:"name"`
	Description  string       `yaml:"description"`
	ActionCost   float64      `yaml:"action_cost"`
	ResourceCost float64      `yaml:"resource_cost"`
	Target       string       `yaml:"target"`
	Effects      []EffectSpec `yaml:"effects"`
}

// EffectSpec names a registered effect and its params.
type EffectSpec struct {
	Type   string            `yaml:"type"`
	Params map[string]string `yaml:"params"`
}

// Build turns a definition into a Skill, creating every effect.
func Build(def Definition) (*Skill, error) {
	if def.Name == "" {
		return nil, errors.New("skill definition without name")
	}
	if def.ActionCost < 0 {
		return nil, fmt.Errorf("skill %s: negative action cost", def.Name)
	}
	target, err := ParseTargetMode(def.Target)
	if err != nil {
		return nil, fmt.Errorf("skill %s: %w", def.Name, err)
	}

	s := &Skill{
		Name:         def.Name,
		Description:  def.Description,
		ActionCost:   def.ActionCost,
		ResourceCost: def.ResourceCost,
		Target:       target,
		Effects:      make([]Effect, 0, len(def.Effects)),
	}
	for _, spec := range def.Effects {
		e, err := CreateEffect(spec.Type, spec.Params)
		if err != nil {
			return nil, fmt.Errorf("skill %s: %w", def.Name, err)
		}
		s.Effects = append(s.Effects, e)
	}
	return s, nil
}

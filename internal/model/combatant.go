package model

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/udisondev/dungeonrpg/internal/effect"
	"github.com/udisondev/dungeonrpg/internal/stat"
)

// MaxActiveSkills is the number of skill slots a combatant has.
const MaxActiveSkills = 5

var (
	ErrUnsupportedStat = errors.New("unsupported stat")
	ErrSkillSlotsFull  = errors.New("skill slots full")
)

// Rand is the randomness source for combat rolls.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// DefaultRand uses the math/rand/v2 global source.
var DefaultRand Rand = globalRand{}

// StatSeed is the base value and per-level scaling of one stat.
type StatSeed struct {
	Base    float64
	Scaling float64
}

// Spec describes a combatant to construct.
type Spec struct {
	Name            string
	Level           int
	Boss            bool
	Resource        ResourceType
	Stats           map[StatKind]StatSeed
	Resistances     map[StatusKind]float64
	Skills          []string
	Innate          []effect.Innate
	InitialResource float64
}

// defaultSeeds fill stats a Spec leaves out.
var defaultSeeds = map[StatKind]StatSeed{
	StatMaximalHealth: {Base: 1},
	StatAccuracy:      {Base: 100},
	StatCritMod:       {Base: 1.5},
}

// Combatant is a participant's full stat block: stats, current gauges,
// resistances and passive effects. All derived state is computed on read;
// alive means current health is above zero.
//
// Not safe for concurrent use. A battle owns its combatants exclusively.
type Combatant struct {
	name         string
	level        int
	boss         bool
	resourceType ResourceType

	stats       [statKindCount]*stat.Stat
	resistances [statusKindCount]*stat.Stat
	passives    *effect.PassiveList

	currentHealth   float64
	currentResource float64

	skills []string
	rng    Rand
}

// NewCombatant builds a combatant from spec. Current health starts at the
// maximum.
func NewCombatant(spec Spec) (*Combatant, error) {
	if len(spec.Skills) > MaxActiveSkills {
		return nil, fmt.Errorf("combatant %q: %d skills: %w", spec.Name, len(spec.Skills), ErrSkillSlotsFull)
	}

	c := &Combatant{
		name:         spec.Name,
		level:        spec.Level,
		boss:         spec.Boss,
		resourceType: spec.Resource,
		passives:     effect.NewPassiveList(),
		skills:       append([]string(nil), spec.Skills...),
		rng:          DefaultRand,
	}

	for _, k := range StatKinds() {
		seed := defaultSeeds[k]
		c.stats[k] = stat.New(seed.Base, seed.Scaling)
	}
	for k, seed := range spec.Stats {
		if !k.Valid() {
			return nil, fmt.Errorf("combatant %q: %w: %s", spec.Name, ErrUnsupportedStat, k)
		}
		c.stats[k] = stat.New(seed.Base, seed.Scaling)
	}
	c.stats[StatMaximalAttack].SetBase(max(c.stats[StatMaximalAttack].Base(), c.stats[StatMinimalAttack].Base()))

	for i := range c.resistances {
		c.resistances[i] = stat.New(0, 0)
	}
	for k, v := range spec.Resistances {
		if !k.Valid() {
			return nil, fmt.Errorf("combatant %q: %w: %s", spec.Name, ErrUnsupportedStat, k)
		}
		c.resistances[k] = stat.New(v, 0)
	}

	for _, e := range spec.Innate {
		c.passives.AddInnate(e)
	}

	c.currentHealth = c.MaximalHealth()
	c.setResource(spec.InitialResource)
	return c, nil
}

// SetRand replaces the randomness source used by TakeDamage.
func (c *Combatant) SetRand(r Rand) {
	if r == nil {
		r = DefaultRand
	}
	c.rng = r
}

func (c *Combatant) Name() string               { return c.name }
func (c *Combatant) Level() int                 { return c.level }
func (c *Combatant) IsBoss() bool               { return c.boss }
func (c *Combatant) ResourceType() ResourceType { return c.resourceType }

// Passives returns the combatant's effect list.
func (c *Combatant) Passives() *effect.PassiveList { return c.passives }

// SetLevel changes the level. Current health is re-clamped.
func (c *Combatant) SetLevel(level int) {
	c.level = level
	c.setHealth(c.currentHealth)
}

// Stat returns the raw stat for kind, or ErrUnsupportedStat.
func (c *Combatant) Stat(kind StatKind) (*stat.Stat, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedStat, kind)
	}
	return c.stats[kind], nil
}

// ResistanceStat returns the raw resistance stat for kind, or ErrUnsupportedStat.
func (c *Combatant) ResistanceStat(kind StatusKind) (*stat.Stat, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: status %s", ErrUnsupportedStat, kind)
	}
	return c.resistances[kind], nil
}

// AddModifier attaches m to a stat. This and AddResistanceModifier are the
// only mutation points skills use on stats.
func (c *Combatant) AddModifier(kind StatKind, m stat.Modifier) error {
	s, err := c.Stat(kind)
	if err != nil {
		return err
	}
	s.AddModifier(m)
	if kind == StatMaximalHealth {
		c.setHealth(c.currentHealth)
	}
	if kind == StatMaximalResource {
		c.setResource(c.currentResource)
	}
	return nil
}

// AddResistanceModifier attaches m to a status resistance.
func (c *Combatant) AddResistanceModifier(kind StatusKind, m stat.Modifier) error {
	s, err := c.ResistanceStat(kind)
	if err != nil {
		return err
	}
	s.AddModifier(m)
	return nil
}

// value folds the stat, then any passive effects tagged with its name.
func (c *Combatant) value(kind StatKind) float64 {
	v := c.stats[kind].Value(c.level)
	if mods := c.passives.Modifiers(kind.Tag()); len(mods) > 0 {
		v = stat.Apply(v, mods)
	}
	return v
}

func (c *Combatant) MaximalHealth() float64   { return max(c.value(StatMaximalHealth), 0) }
func (c *Combatant) MinimalAttack() float64   { return c.value(StatMinimalAttack) }
func (c *Combatant) Dodge() float64           { return c.value(StatDodge) }
func (c *Combatant) PhysicalDefense() float64 { return c.value(StatPhysicalDefense) }
func (c *Combatant) MagicDefense() float64    { return c.value(StatMagicDefense) }
func (c *Combatant) CritMod() float64         { return c.value(StatCritMod) }
func (c *Combatant) MaximalResource() float64 { return c.value(StatMaximalResource) }
func (c *Combatant) ResourceRegen() float64   { return c.value(StatResourceRegen) }

// MaximalAttack never reads below MinimalAttack.
func (c *Combatant) MaximalAttack() float64 {
	return max(c.value(StatMaximalAttack), c.MinimalAttack())
}

// SetMaximalAttack sets the base maximal attack, raised to the minimal
// attack base if lower.
func (c *Combatant) SetMaximalAttack(v float64) {
	c.stats[StatMaximalAttack].SetBase(max(v, c.stats[StatMinimalAttack].Base()))
}

// SetMinimalAttack sets the base minimal attack. Maximal attack follows if
// it would fall below.
func (c *Combatant) SetMinimalAttack(v float64) {
	c.stats[StatMinimalAttack].SetBase(v)
	if c.stats[StatMaximalAttack].Base() < v {
		c.stats[StatMaximalAttack].SetBase(v)
	}
}

// CritChance is clamped to [0, 1].
func (c *Combatant) CritChance() float64 {
	return clamp(c.value(StatCritChance), 0, 1)
}

// Speed includes the Momentum bonus of currentResource/10.
func (c *Combatant) Speed() float64 {
	v := c.value(StatSpeed)
	if c.resourceType == ResourceMomentum {
		v += c.currentResource / 10
	}
	return v
}

// Accuracy includes the Fury penalty of currentResource/3.
func (c *Combatant) Accuracy() float64 {
	v := c.value(StatAccuracy)
	if c.resourceType == ResourceFury {
		v -= c.currentResource / 3
	}
	return v
}

// Resistance returns the effective resistance to kind.
func (c *Combatant) Resistance(kind StatusKind) float64 {
	if !kind.Valid() {
		return 0
	}
	return c.resistances[kind].Value(0)
}

func (c *Combatant) CurrentHealth() float64 { return c.currentHealth }

// SetCurrentHealth sets health clamped to [0, MaximalHealth].
func (c *Combatant) SetCurrentHealth(v float64) { c.setHealth(v) }

func (c *Combatant) setHealth(v float64) {
	if math.IsNaN(v) {
		return
	}
	c.currentHealth = clamp(v, 0, c.MaximalHealth())
}

// IsAlive reports whether current health is above zero.
func (c *Combatant) IsAlive() bool { return c.currentHealth > 0 }

// HealthFraction returns current/max health in [0, 1].
func (c *Combatant) HealthFraction() float64 {
	maxHP := c.MaximalHealth()
	if maxHP <= 0 {
		return 0
	}
	return c.currentHealth / maxHP
}

// CurrentPhase is 2 once a boss is at or below half health, else 1.
// Non-boss combatants are always in phase 1.
func (c *Combatant) CurrentPhase() int {
	if c.boss && c.HealthFraction() <= 0.5 {
		return 2
	}
	return 1
}

// IsStunned reports whether a Stun status is active.
func (c *Combatant) IsStunned() bool {
	return c.passives.HasTag(effect.TagStun)
}

// Skills returns the names of the combatant's active skills.
func (c *Combatant) Skills() []string {
	out := make([]string, len(c.skills))
	copy(out, c.skills)
	return out
}

// LearnSkill fills a free skill slot.
func (c *Combatant) LearnSkill(name string) error {
	if len(c.skills) >= MaxActiveSkills {
		return ErrSkillSlotsFull
	}
	c.skills = append(c.skills, name)
	return nil
}

// HandleModifiers advances every stat, resistance and timed effect by one
// turn. The caller invokes it exactly once per completed round.
func (c *Combatant) HandleModifiers() {
	removed := 0
	for _, s := range c.stats {
		removed += s.Tick()
	}
	for _, s := range c.resistances {
		removed += s.Tick()
	}
	expired := c.passives.Tick()

	if removed > 0 || len(expired) > 0 {
		slog.Debug("modifiers decayed",
			"combatant", c.name,
			"stat_modifiers", removed,
			"effects", expired)
	}
	// Maxima may have dropped with an expiring buff.
	c.setHealth(c.currentHealth)
	c.setResource(c.currentResource)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

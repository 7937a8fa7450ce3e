package model

import (
	"log/slog"
	"math"

	"github.com/udisondev/dungeonrpg/internal/effect"
	"github.com/udisondev/dungeonrpg/internal/stat"
)

// DamageSource is either another combatant or the environment.
type DamageSource struct {
	attacker *Combatant
}

// FromCombatant returns a source attributed to c. A nil c is environmental.
func FromCombatant(c *Combatant) DamageSource { return DamageSource{attacker: c} }

// Environmental is damage with no attacking combatant (status ticks, traps).
var Environmental = DamageSource{}

// Combatant returns the attacker, if any.
func (s DamageSource) Combatant() (*Combatant, bool) {
	return s.attacker, s.attacker != nil
}

// IsEnvironmental reports whether no combatant is attached.
func (s DamageSource) IsEnvironmental() bool { return s.attacker == nil }

// armorPen returns the attacker's penetration fraction for tag, 0 for the
// environment.
func (s DamageSource) armorPen(tag effect.Tag) float64 {
	if s.attacker == nil {
		return 0
	}
	return stat.Aggregate(s.attacker.passives.Modifiers(tag))
}

// DamageMitigated runs amount through the defense curve for kind and the
// target's damage-taken modifiers. The result is never below 1.
//
//	Physical:          a² / (a + PhysicalDefense × (1 − physicalPen))
//	Magic:             a² / (a + MagicDefense × (1 − physicalPen))
//	Bleed/Poison/Burn: a × (1.5 − resistance)
//	other:             a
//
// Magic deliberately reads the physical penetration fraction; MagicArmorPen
// is not consulted.
func (c *Combatant) DamageMitigated(amount float64, kind DamageKind, source DamageSource) float64 {
	if amount < 0 || math.IsNaN(amount) {
		amount = 0
	}
	if math.IsInf(amount, 1) {
		// Unbounded damage takes everything the target has left.
		return max(c.currentHealth+c.passives.ShieldTotal(), 1)
	}
	physicalPen := source.armorPen(effect.TagPhysicalArmorPen)

	dmg := amount
	switch kind {
	case DamagePhysical:
		dmg = defenseCurve(amount, c.PhysicalDefense()*(1-physicalPen))
	case DamageMagic:
		dmg = defenseCurve(amount, c.MagicDefense()*(1-physicalPen))
	case DamageBleed, DamagePoison, DamageBurn:
		status, _ := statusFor(kind)
		dmg = amount * (1.5 - c.Resistance(status))
	}

	dmg = stat.Apply(dmg, c.passives.Modifiers(effect.TagDamageTaken))
	if tag, ok := kind.takenTag(); ok {
		dmg = stat.Apply(dmg, c.passives.Modifiers(tag))
	}

	return max(dmg, 1)
}

func defenseCurve(amount, defense float64) float64 {
	if amount == 0 {
		return 0
	}
	if defense < 0 {
		defense = 0
	}
	return amount * amount / (amount + defense)
}

// TakeDamage applies a hit and returns what was removed from shields and
// health combined.
//
// Magic damage may be fully absorbed by the AbsorptionChance roll, in which
// case nothing else happens. Otherwise the mitigated amount is rounded to the
// nearest whole point, drained from Shield effects first, and the rest comes
// off health.
func (c *Combatant) TakeDamage(kind DamageKind, amount float64, source DamageSource) float64 {
	if kind == DamageMagic {
		chance := stat.Aggregate(c.passives.Modifiers(effect.TagAbsorptionChance))
		if chance > 0 && c.rng.Float64() < chance {
			slog.Debug("magic absorbed", "target", c.name, "raw", amount)
			return 0
		}
	}

	mitigated := max(math.Round(c.DamageMitigated(amount, kind, source)), 1)

	absorbed, rest := c.passives.AbsorbShield(mitigated)
	before := c.currentHealth
	c.setHealth(before - rest)
	applied := absorbed + (before - c.currentHealth)

	slog.Debug("damage taken",
		"target", c.name,
		"kind", kind.String(),
		"raw", amount,
		"mitigated", mitigated,
		"shield", absorbed,
		"health", c.currentHealth)

	return applied
}

// Heal adds amount to health, clamped to MaximalHealth. A negative amount
// lowers health.
func (c *Combatant) Heal(amount float64) float64 {
	before := c.currentHealth
	c.setHealth(before + amount)
	return c.currentHealth - before
}

// ApplyStatusDamage deals one tick of every active Bleed, Poison and Burn
// status as environmental damage. Returns the total applied.
func (c *Combatant) ApplyStatusDamage() float64 {
	total := 0.0
	for _, status := range []StatusKind{StatusBleed, StatusPoison, StatusBurn} {
		kind, _ := status.DamageKind()
		for _, e := range c.passives.Timed(status.Tag()) {
			if !c.IsAlive() {
				return total
			}
			total += c.TakeDamage(kind, e.Magnitude, Environmental)
		}
	}
	return total
}

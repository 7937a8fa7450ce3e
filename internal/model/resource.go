package model

import (
	"math"

	"github.com/udisondev/dungeonrpg/internal/effect"
	"github.com/udisondev/dungeonrpg/internal/stat"
)

// CurrentResource returns the resource gauge. Fury may be negative.
func (c *Combatant) CurrentResource() float64 { return c.currentResource }

// ResourceDisplay returns the gauge rounded to the nearest integer.
// Storage stays fractional.
func (c *Combatant) ResourceDisplay() int {
	return int(math.Round(c.currentResource))
}

func (c *Combatant) setResource(v float64) {
	if v > c.MaximalResource() {
		v = c.MaximalResource()
	}
	if v < 0 && c.resourceType != ResourceFury {
		v = 0
	}
	c.currentResource = v
}

// CanAffordResource reports whether a cost can be paid. Fury can always pay
// because its gauge is allowed to go negative.
func (c *Combatant) CanAffordResource(cost float64) bool {
	if cost <= 0 || c.resourceType == ResourceFury {
		return true
	}
	return c.currentResource >= cost
}

// UseResource subtracts amount. Every type except Fury floors at zero.
func (c *Combatant) UseResource(amount float64) {
	c.setResource(c.currentResource - amount)
}

// RegenResource adds amount transformed by ResourceRegenMod effects, clamped
// to MaximalResource. Does nothing while NoResourceRegen is active.
func (c *Combatant) RegenResource(amount float64) {
	if c.passives.HasInnate(effect.TagNoResourceRegen.String()) {
		return
	}
	gain := stat.Apply(amount, c.passives.Modifiers(effect.TagResourceRegenMod))
	c.setResource(c.currentResource + gain)
}

// SetCurrentResource sets the gauge with the usual clamps.
func (c *Combatant) SetCurrentResource(v float64) { c.setResource(v) }

package skill

import (
	"fmt"

	"github.com/udisondev/dungeonrpg/internal/effect"
	"github.com/udisondev/dungeonrpg/internal/stat"
)

// HealEffect restores health: "amount" plus "fraction" of MaximalHealth.
// Params: "amount", "fraction", "self".
type HealEffect struct {
	amount   float64
	fraction float64
	self     bool
}

func NewHealEffect(params map[string]string) (Effect, error) {
	amount, err := paramFloat(params, "amount", 0)
	if err != nil {
		return nil, err
	}
	fraction, err := paramFloat(params, "fraction", 0)
	if err != nil {
		return nil, err
	}
	return &HealEffect{amount: amount, fraction: fraction, self: paramBool(params, "self")}, nil
}

func (e *HealEffect) Name() string { return "Heal" }

func (e *HealEffect) Apply(c *Cast) error {
	target := c.recipient(e.self)
	c.Result.Healed += target.Heal(e.amount + e.fraction*target.MaximalHealth())
	return nil
}

// ShieldEffect grants an absorb pool consumed before health.
// Params: "amount", "duration" (default 3), "self".
type ShieldEffect struct {
	amount   float64
	duration int
	self     bool
}

func NewShieldEffect(params map[string]string) (Effect, error) {
	amount, err := paramFloat(params, "amount", 0)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("shield amount must be positive, got %v", amount)
	}
	duration, err := paramInt(params, "duration", 3)
	if err != nil {
		return nil, err
	}
	return &ShieldEffect{amount: amount, duration: duration, self: paramBool(params, "self")}, nil
}

func (e *ShieldEffect) Name() string { return "Shield" }

func (e *ShieldEffect) Apply(c *Cast) error {
	remaining := stat.Duration(e.duration)
	if e.duration < 0 {
		remaining = stat.Permanent
	}
	c.recipient(e.self).Passives().AddTimed(effect.Timed{
		Name:      c.Skill.Name,
		Tag:       effect.TagShield,
		Magnitude: e.amount,
		Remaining: remaining,
	})
	c.Result.Shielded += e.amount
	return nil
}

// ResourceTradeEffect changes resource gauges. "gain" goes to the caster
// (negative spends). "drain" is taken from the target and given to the caster.
type ResourceTradeEffect struct {
	gain  float64
	drain float64
}

func NewResourceTradeEffect(params map[string]string) (Effect, error) {
	gain, err := paramFloat(params, "gain", 0)
	if err != nil {
		return nil, err
	}
	drain, err := paramFloat(params, "drain", 0)
	if err != nil {
		return nil, err
	}
	return &ResourceTradeEffect{gain: gain, drain: drain}, nil
}

func (e *ResourceTradeEffect) Name() string { return "ResourceTrade" }

func (e *ResourceTradeEffect) Apply(c *Cast) error {
	caster := c.Caster.Combatant()
	before := caster.CurrentResource()

	if e.drain > 0 && c.Target != nil && c.Target != c.Caster {
		target := c.Target.Combatant()
		had := target.CurrentResource()
		target.UseResource(e.drain)
		taken := max(had-target.CurrentResource(), 0)
		caster.SetCurrentResource(caster.CurrentResource() + taken)
	}
	if e.gain != 0 {
		caster.SetCurrentResource(caster.CurrentResource() + e.gain)
	}

	c.Result.Resource += caster.CurrentResource() - before
	return nil
}

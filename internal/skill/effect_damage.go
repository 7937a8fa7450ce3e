package skill

import (
	"log/slog"

	"github.com/udisondev/dungeonrpg/internal/model"
)

// DealDamageEffect hits the target for a roll in [MinimalAttack,
// MaximalAttack] × power + flat, multiplied by CritMod on a critical cast.
// Params: "kind" (physical|magic|bleed|poison|burn|true), "power" (default 1),
// "flat" (default 0).
type DealDamageEffect struct {
	kind  model.DamageKind
	power float64
	flat  float64
}

func NewDealDamageEffect(params map[string]string) (Effect, error) {
	kind := model.DamagePhysical
	if raw := params["kind"]; raw != "" {
		k, err := model.ParseDamageKind(raw)
		if err != nil {
			return nil, err
		}
		kind = k
	}
	power, err := paramFloat(params, "power", 1)
	if err != nil {
		return nil, err
	}
	flat, err := paramFloat(params, "flat", 0)
	if err != nil {
		return nil, err
	}
	return &DealDamageEffect{kind: kind, power: power, flat: flat}, nil
}

func (e *DealDamageEffect) Name() string { return "DealDamage" }

// Kind returns the damage kind dealt.
func (e *DealDamageEffect) Kind() model.DamageKind { return e.kind }

// Power returns the attack multiplier.
func (e *DealDamageEffect) Power() float64 { return e.power }

func (e *DealDamageEffect) Apply(c *Cast) error {
	attacker := c.Caster.Combatant()
	target := c.recipient(false)

	lo, hi := attacker.MinimalAttack(), attacker.MaximalAttack()
	raw := (lo+(hi-lo)*c.Rand.Float64())*e.power + e.flat
	if c.Crit {
		raw *= attacker.CritMod()
	}

	applied := target.TakeDamage(e.kind, raw, model.FromCombatant(attacker))
	c.Result.Damage += applied

	slog.Debug("skill damage",
		"skill", c.Skill.Name,
		"attacker", attacker.Name(),
		"target", target.Name(),
		"kind", e.kind.String(),
		"raw", raw,
		"applied", applied,
		"crit", c.Crit)
	return nil
}

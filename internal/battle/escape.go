package battle

import "github.com/udisondev/dungeonrpg/internal/model"

// EscapePolicy decides the chance that escaper flees from opponents.
type EscapePolicy interface {
	Chance(escaper *model.BattleUser, opponents []*model.BattleUser) float64
}

// SpeedEscape compares the escaper's speed with the average speed of the
// living opponents: Base + PerSpeed × (speed − average), clamped to
// [Min, Max].
type SpeedEscape struct {
	Base     float64 `yaml:"base"`
	PerSpeed float64 `yaml:"per_speed"`
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
}

// DefaultEscapePolicy returns 0.5 ± 0.05 per point of speed, within [0.1, 0.9].
func DefaultEscapePolicy() SpeedEscape {
	return SpeedEscape{Base: 0.5, PerSpeed: 0.05, Min: 0.1, Max: 0.9}
}

func (p SpeedEscape) Chance(escaper *model.BattleUser, opponents []*model.BattleUser) float64 {
	var sum float64
	var n int
	for _, o := range opponents {
		if o.Combatant().IsAlive() {
			sum += o.Combatant().Speed()
			n++
		}
	}
	if n == 0 {
		return p.Max
	}
	chance := p.Base + p.PerSpeed*(escaper.Combatant().Speed()-sum/float64(n))
	return min(max(chance, p.Min), p.Max)
}

package skill

import (
	"github.com/udisondev/dungeonrpg/internal/model"
)

// Effect is one typed instruction a skill applies against the Combatant API.
type Effect interface {
	Name() string
	Apply(c *Cast) error
}

// Cast carries the state of a single skill use through its effects.
type Cast struct {
	Skill  *Skill
	Caster *model.BattleUser
	Target *model.BattleUser
	Rand   model.Rand
	Crit   bool
	Result *Result
}

// recipient returns the caster for self-directed effects, else the target.
func (c *Cast) recipient(self bool) *model.Combatant {
	if self || c.Target == nil {
		return c.Caster.Combatant()
	}
	return c.Target.Combatant()
}

// Result records what one skill use did.
type Result struct {
	Skill    string
	Caster   string
	Target   string
	Missed   bool
	Crit     bool
	Damage   float64
	Healed   float64
	Shielded float64
	Resource float64
	Statuses []string
	Applied  []string
}

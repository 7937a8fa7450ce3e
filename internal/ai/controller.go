// Package ai selects actions for computer-controlled battle participants.
package ai

import (
	"github.com/udisondev/dungeonrpg/internal/model"
	"github.com/udisondev/dungeonrpg/internal/skill"
)

// Action is one decision for the acting participant. A nil Skill ends the
// turn.
type Action struct {
	Skill  *skill.Skill
	Target *model.BattleUser
}

// EndTurn reports whether the action passes the rest of the turn.
func (a Action) EndTurn() bool { return a.Skill == nil }

// View is the read-only battle state a controller may inspect.
type View interface {
	Opponents(u *model.BattleUser) []*model.BattleUser
	Allies(u *model.BattleUser) []*model.BattleUser
	TurnCount() int
}

// Controller picks the next action for self. It must not mutate state; the
// battle validates and resolves the returned action.
type Controller interface {
	ChooseAction(self *model.BattleUser, view View, book *skill.Book) Action
}

// ForCombatant returns the default controller for c: bosses branch on phase.
func ForCombatant(c *model.Combatant) Controller {
	if c.IsBoss() {
		return NewBossController()
	}
	return NewBasicController()
}

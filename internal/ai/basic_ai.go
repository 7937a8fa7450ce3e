package ai

import (
	"log/slog"

	"github.com/udisondev/dungeonrpg/internal/model"
	"github.com/udisondev/dungeonrpg/internal/skill"
)

// lowHealthFraction is where controllers start preferring self-heals.
const lowHealthFraction = 0.35

// BasicController heals itself when low, otherwise uses the first affordable
// offensive skill on the weakest living opponent.
type BasicController struct {
	lowHealth float64
}

// NewBasicController creates the default enemy controller.
func NewBasicController() *BasicController {
	return &BasicController{lowHealth: lowHealthFraction}
}

func (c *BasicController) ChooseAction(self *model.BattleUser, view View, book *skill.Book) Action {
	skills, err := book.SkillsOf(self.Combatant())
	if err != nil {
		slog.Warn("ai skill lookup failed", "combatant", self.Name(), "err", err)
		return Action{}
	}
	return choose(self, view, skills, c.lowHealth)
}

// choose walks skills in the given order: heals first when health is low,
// then the first affordable skill with a valid target.
func choose(self *model.BattleUser, view View, skills []*skill.Skill, lowHealth float64) Action {
	if self.Combatant().HealthFraction() <= lowHealth {
		for _, s := range skills {
			if s.Heals() && s.Target == skill.TargetSelf && s.CanAfford(self) == nil {
				act := Action{Skill: s, Target: self}
				traceDecision(self, act, "low health")
				return act
			}
		}
	}

	target := Weakest(view.Opponents(self))
	for _, s := range skills {
		if s.CanAfford(self) != nil {
			continue
		}
		var act Action
		switch s.Target {
		case skill.TargetEnemy:
			if target != nil {
				act = Action{Skill: s, Target: target}
			}
		case skill.TargetSelf:
			// Heals are reserved for low health.
			if !s.Heals() {
				act = Action{Skill: s, Target: self}
			}
		case skill.TargetAlly:
			if ally := Weakest(view.Allies(self)); ally != nil {
				act = Action{Skill: s, Target: ally}
			}
		}
		if !act.EndTurn() {
			traceDecision(self, act, "first affordable")
			return act
		}
	}

	traceDecision(self, Action{}, "nothing affordable")
	return Action{}
}

// Weakest returns the living user with the lowest current health. Ties keep
// the earliest.
func Weakest(users []*model.BattleUser) *model.BattleUser {
	var best *model.BattleUser
	for _, u := range users {
		if !u.Combatant().IsAlive() {
			continue
		}
		if best == nil || u.Combatant().CurrentHealth() < best.Combatant().CurrentHealth() {
			best = u
		}
	}
	return best
}

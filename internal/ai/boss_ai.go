package ai

import (
	"log/slog"
	"slices"

	"github.com/udisondev/dungeonrpg/internal/model"
	"github.com/udisondev/dungeonrpg/internal/skill"
)

// BossController plays like BasicController in phase 1. In phase 2 it walks
// its slots from last to first (signature skills sit at the end) and no
// longer heals until much lower.
type BossController struct {
	lastPhase map[*model.BattleUser]int
}

// NewBossController creates a phase-aware controller.
func NewBossController() *BossController {
	return &BossController{lastPhase: make(map[*model.BattleUser]int, 1)}
}

func (c *BossController) ChooseAction(self *model.BattleUser, view View, book *skill.Book) Action {
	skills, err := book.SkillsOf(self.Combatant())
	if err != nil {
		slog.Warn("boss skill lookup failed", "combatant", self.Name(), "err", err)
		return Action{}
	}

	phase := self.Combatant().CurrentPhase()
	if prev, ok := c.lastPhase[self]; !ok || prev != phase {
		if ok {
			slog.Info("boss phase changed", "boss", self.Name(), "from", prev, "to", phase, "turn", view.TurnCount())
		}
		c.lastPhase[self] = phase
	}

	if phase >= 2 {
		reversed := slices.Clone(skills)
		slices.Reverse(reversed)
		return choose(self, view, reversed, lowHealthFraction/2)
	}
	return choose(self, view, skills, lowHealthFraction)
}

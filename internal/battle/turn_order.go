package battle

import (
	"cmp"
	"slices"

	"github.com/udisondev/dungeonrpg/internal/model"
)

// TurnOrder ranks users by effective speed, fastest first. Ties keep the
// input order. It reads speed on every call and never caches.
func TurnOrder(users []*model.BattleUser) []*model.BattleUser {
	ordered := slices.Clone(users)
	slices.SortStableFunc(ordered, func(a, b *model.BattleUser) int {
		return cmp.Compare(b.Combatant().Speed(), a.Combatant().Speed())
	})
	return ordered
}

// TurnEntry is one row of the displayed turn order.
type TurnEntry struct {
	User    *model.BattleUser
	Current bool
}

// GetTurnOrder returns the live turn order with the active participant
// flagged.
func (b *Battle) GetTurnOrder() []TurnEntry {
	ordered := TurnOrder(b.users)
	out := make([]TurnEntry, len(ordered))
	for i, u := range ordered {
		out[i] = TurnEntry{User: u, Current: u == b.current}
	}
	return out
}

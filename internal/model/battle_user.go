package model

import (
	"errors"

	"github.com/udisondev/dungeonrpg/internal/stat"
)

// ErrNotEnoughActionPoints is returned when a cost exceeds the remaining points.
var ErrNotEnoughActionPoints = errors.New("not enough action points")

// Control selects who issues a participant's commands.
type Control uint8

const (
	ControlAI Control = iota
	ControlHuman
)

func (c Control) String() string {
	if c == ControlHuman {
		return "human"
	}
	return "ai"
}

// BattleUser is a combatant's in-battle wrapper: action points and team.
type BattleUser struct {
	combatant       *Combatant
	actionPoints    float64
	maxActionPoints *stat.Stat
	team            int
	control         Control
}

// NewBattleUser wraps c for one battle. Action points start at zero and are
// granted when the user's turn begins.
func NewBattleUser(c *Combatant, maxActionPoints float64, team int, control Control) *BattleUser {
	return &BattleUser{
		combatant:       c,
		maxActionPoints: stat.New(maxActionPoints, 0),
		team:            team,
		control:         control,
	}
}

func (u *BattleUser) Combatant() *Combatant { return u.combatant }
func (u *BattleUser) Team() int             { return u.team }
func (u *BattleUser) Control() Control      { return u.control }
func (u *BattleUser) IsHuman() bool         { return u.control == ControlHuman }
func (u *BattleUser) Name() string          { return u.combatant.Name() }

// CurrentActionPoints returns the points left this turn.
func (u *BattleUser) CurrentActionPoints() float64 { return u.actionPoints }

// MaxActionPoints returns the effective per-turn budget.
func (u *BattleUser) MaxActionPoints() float64 {
	return max(u.maxActionPoints.Value(0), 0)
}

// MaxActionPointsStat exposes the budget stat for modifiers.
func (u *BattleUser) MaxActionPointsStat() *stat.Stat { return u.maxActionPoints }

// HandleModifiers advances the action point budget and the combatant's
// modifiers by one round.
func (u *BattleUser) HandleModifiers() {
	u.maxActionPoints.Tick()
	u.combatant.HandleModifiers()
}

// RefillActionPoints grants the full budget for a new turn.
func (u *BattleUser) RefillActionPoints() {
	u.actionPoints = u.MaxActionPoints()
}

// ClearActionPoints forfeits anything left this turn.
func (u *BattleUser) ClearActionPoints() { u.actionPoints = 0 }

// CanAffordActions reports whether cost fits in the remaining points.
func (u *BattleUser) CanAffordActions(cost float64) bool {
	return cost <= u.actionPoints
}

// SpendActionPoints consumes cost or fails without change.
func (u *BattleUser) SpendActionPoints(cost float64) error {
	if !u.CanAffordActions(cost) {
		return ErrNotEnoughActionPoints
	}
	u.actionPoints -= max(cost, 0)
	return nil
}

package ai

import (
	"log/slog"
	"sync/atomic"

	"github.com/udisondev/dungeonrpg/internal/model"
)

// decisionTrace gates per-decision logs. Simulations resolve many AI turns
// at once, so the check is a single atomic load.
var decisionTrace atomic.Bool

// EnableDebugLogging turns per-decision logs on or off. main sets it once
// the log level is known.
func EnableDebugLogging(enabled bool) {
	decisionTrace.Store(enabled)
}

// IsDebugEnabled reports whether per-decision logs are on.
func IsDebugEnabled() bool {
	return decisionTrace.Load()
}

// traceDecision logs what a controller picked for self and why.
func traceDecision(self *model.BattleUser, act Action, reason string) {
	if !decisionTrace.Load() {
		return
	}
	attrs := []any{
		"combatant", self.Name(),
		"reason", reason,
		"ap", self.CurrentActionPoints(),
		"phase", self.Combatant().CurrentPhase(),
	}
	if act.EndTurn() {
		slog.Debug("ai ends turn", attrs...)
		return
	}
	attrs = append(attrs, "skill", act.Skill.Name, "target", act.Target.Name())
	slog.Debug("ai chose skill", attrs...)
}

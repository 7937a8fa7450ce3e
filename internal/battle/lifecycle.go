package battle

import "github.com/looplab/fsm"

// Outcome is the battle lifecycle state. Every state except OutcomeActive
// is terminal.
type Outcome string

const (
	OutcomeActive  Outcome = "active"
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
	OutcomeEscaped Outcome = "escaped"
)

func (o Outcome) Terminal() bool { return o != OutcomeActive }

const (
	eventWin    = "win"
	eventLose   = "lose"
	eventEscape = "escape"
)

// newLifecycle builds the state machine. Terminal states have no outgoing
// events, so a finished battle stays finished.
func newLifecycle() *fsm.FSM {
	active := []string{string(OutcomeActive)}
	return fsm.NewFSM(
		string(OutcomeActive),
		fsm.Events{
			{Name: eventWin, Src: active, Dst: string(OutcomeVictory)},
			{Name: eventLose, Src: active, Dst: string(OutcomeDefeat)},
			{Name: eventEscape, Src: active, Dst: string(OutcomeEscaped)},
		},
		fsm.Callbacks{},
	)
}

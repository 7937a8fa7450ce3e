package battle

import (
	"context"
	"time"
)

// Recorder persists finished battles.
type Recorder interface {
	RecordBattle(ctx context.Context, s Summary) error
}

// ParticipantSummary is a participant's state when the battle ended.
type ParticipantSummary struct {
	Name   string
	Team   int
	Level  int
	Boss   bool
	Alive  bool
	Health float64
}

// Summary describes a battle for logging and persistence.
type Summary struct {
	ID           int64
	Outcome      Outcome
	Rounds       int
	Participants []ParticipantSummary
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Duration is zero until the battle finished.
func (s Summary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// Summary snapshots the battle. It can be taken at any point.
func (b *Battle) Summary() Summary {
	s := Summary{
		ID:           b.id,
		Outcome:      b.Outcome(),
		Rounds:       b.turnCount,
		Participants: make([]ParticipantSummary, 0, len(b.users)),
		StartedAt:    b.startedAt,
		FinishedAt:   b.finishedAt,
	}
	for _, u := range b.users {
		c := u.Combatant()
		s.Participants = append(s.Participants, ParticipantSummary{
			Name:   c.Name(),
			Team:   u.Team(),
			Level:  c.Level(),
			Boss:   c.IsBoss(),
			Alive:  c.IsAlive(),
			Health: c.CurrentHealth(),
		})
	}
	return s
}

// Package effect tracks the named innate and timed effects on a combatant.
//
// Effects are queried by Tag. The damage pipeline and resource model only
// ever see the modifiers an effect contributes, never the skill or item that
// produced it.
package effect

import (
	"log/slog"

	"github.com/udisondev/dungeonrpg/internal/stat"
)

// Innate is a permanent effect that can be switched on and off.
type Innate struct {
	Name      string
	Tag       Tag
	Type      stat.ModType
	Magnitude float64
	Enabled   bool
}

// Timed is a duration-bounded effect. Shield effects use Magnitude as the
// remaining absorb pool.
type Timed struct {
	Name      string
	Tag       Tag
	Type      stat.ModType
	Magnitude float64
	Remaining stat.Duration
}

func (e *Timed) live() bool {
	return e.Remaining.IsPermanent() || e.Remaining > 0
}

func (e *Timed) modifier() stat.Modifier {
	return stat.Modifier{Type: e.Type, Magnitude: e.Magnitude, Remaining: e.Remaining}
}

// PassiveList aggregates innate and timed effects for one combatant.
// Not safe for concurrent use; a battle owns its combatants exclusively.
type PassiveList struct {
	innate []*Innate
	timed  []*Timed
}

// NewPassiveList creates an empty list.
func NewPassiveList() *PassiveList {
	return &PassiveList{
		innate: make([]*Innate, 0, 4),
		timed:  make([]*Timed, 0, 8),
	}
}

// AddInnate registers an innate effect. An existing effect with the same
// name is replaced in place.
func (l *PassiveList) AddInnate(e Innate) {
	for i, existing := range l.innate {
		if existing.Name == e.Name {
			l.innate[i] = &e
			return
		}
	}
	l.innate = append(l.innate, &e)
}

// Toggle enables or disables an innate effect by name.
// Returns false if no such effect exists.
func (l *PassiveList) Toggle(name string, enabled bool) bool {
	for _, e := range l.innate {
		if e.Name == name {
			e.Enabled = enabled
			return true
		}
	}
	return false
}

// HasInnate reports whether an enabled innate effect with this name or tag
// name is present.
func (l *PassiveList) HasInnate(name string) bool {
	for _, e := range l.innate {
		if e.Enabled && (e.Name == name || e.Tag.String() == name) {
			return true
		}
	}
	return false
}

// AddTimed appends a timed effect. Effects never merge; two applications of
// the same skill both count.
func (l *PassiveList) AddTimed(e Timed) {
	l.timed = append(l.timed, &e)
}

// Has reports whether any live effect, innate or timed, has the given name.
func (l *PassiveList) Has(name string) bool {
	if l.HasInnate(name) {
		return true
	}
	for _, e := range l.timed {
		if e.live() && e.Name == name {
			return true
		}
	}
	return false
}

// HasTag reports whether any enabled innate or live timed effect carries tag.
func (l *PassiveList) HasTag(tag Tag) bool {
	for _, e := range l.innate {
		if e.Enabled && e.Tag == tag {
			return true
		}
	}
	for _, e := range l.timed {
		if e.live() && e.Tag == tag {
			return true
		}
	}
	return false
}

// Modifiers returns the modifiers contributed by effects tagged tag:
// enabled innate effects first, then live timed effects, each in insertion order.
func (l *PassiveList) Modifiers(tag Tag) []stat.Modifier {
	var mods []stat.Modifier
	for _, e := range l.innate {
		if e.Enabled && e.Tag == tag {
			mods = append(mods, stat.NewPermanent(e.Type, e.Magnitude))
		}
	}
	for _, e := range l.timed {
		if e.live() && e.Tag == tag {
			mods = append(mods, e.modifier())
		}
	}
	return mods
}

// Timed returns copies of the live timed effects carrying tag.
func (l *PassiveList) Timed(tag Tag) []Timed {
	var out []Timed
	for _, e := range l.timed {
		if e.live() && e.Tag == tag {
			out = append(out, *e)
		}
	}
	return out
}

// AbsorbShield routes amount through Shield effects, oldest first.
// Depleted shields are removed. Returns the absorbed part and the remainder.
func (l *PassiveList) AbsorbShield(amount float64) (absorbed, rest float64) {
	rest = amount
	kept := l.timed[:0]
	for _, e := range l.timed {
		if rest > 0 && e.live() && e.Tag == TagShield && e.Magnitude > 0 {
			take := min(e.Magnitude, rest)
			e.Magnitude -= take
			rest -= take
			absorbed += take
			if e.Magnitude <= 0 {
				slog.Debug("shield depleted", "name", e.Name)
				continue
			}
		}
		kept = append(kept, e)
	}
	clearTail(l.timed, len(kept))
	l.timed = kept
	return absorbed, rest
}

// ShieldTotal returns the sum of remaining shield pools.
func (l *PassiveList) ShieldTotal() float64 {
	total := 0.0
	for _, e := range l.timed {
		if e.live() && e.Tag == TagShield {
			total += e.Magnitude
		}
	}
	return total
}

// Remove drops every timed effect with the given name. Returns the count removed.
func (l *PassiveList) Remove(name string) int {
	kept := l.timed[:0]
	removed := 0
	for _, e := range l.timed {
		if e.Name == name {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	clearTail(l.timed, len(kept))
	l.timed = kept
	return removed
}

// Tick advances timed effects by one turn and prunes expired ones.
// Returns the names of expired effects.
func (l *PassiveList) Tick() []string {
	var expired []string
	kept := l.timed[:0]
	for _, e := range l.timed {
		if !e.Remaining.IsPermanent() {
			e.Remaining--
		}
		if !e.live() {
			expired = append(expired, e.Name)
			continue
		}
		kept = append(kept, e)
	}
	clearTail(l.timed, len(kept))
	l.timed = kept
	return expired
}

// TimedCount returns the number of stored timed effects.
func (l *PassiveList) TimedCount() int { return len(l.timed) }

// InnateCount returns the number of innate effects, enabled or not.
func (l *PassiveList) InnateCount() int { return len(l.innate) }

func clearTail(s []*Timed, from int) {
	for i := from; i < len(s); i++ {
		s[i] = nil
	}
}

// Package stat implements a single modifiable combat attribute.
//
// A Stat never caches its effective value. Value folds the base through
// every live modifier on each read, in a fixed order:
//
//	Absolute → Additive → Relative → Multiplicative
//
// Absolute replaces the running value (last one added wins), Additive sums
// onto it, Relative scales by (1 + Σ), Multiplicative compounds Π(1 + m).
package stat

// Stat is a base value with a per-level scaling factor and stacked modifiers.
type Stat struct {
	base      float64
	scaling   float64
	modifiers []Modifier
}

// New creates a Stat without modifiers.
func New(base, scaling float64) *Stat {
	return &Stat{base: base, scaling: scaling}
}

// Base returns the unmodified base value.
func (s *Stat) Base() float64 { return s.base }

// Scaling returns the per-level scaling factor.
func (s *Stat) Scaling() float64 { return s.scaling }

// SetBase replaces the base value. Modifiers are kept.
func (s *Stat) SetBase(v float64) { s.base = v }

// SetScaling replaces the per-level scaling factor.
func (s *Stat) SetScaling(v float64) { s.scaling = v }

// Value returns the effective value for an owner at the given level.
// Level 0 disables level scaling.
func (s *Stat) Value(level int) float64 {
	return Apply(s.base+s.scaling*float64(level), s.modifiers)
}

// AddModifier appends m. Identical modifiers stack.
func (s *Stat) AddModifier(m Modifier) {
	s.modifiers = append(s.modifiers, m)
}

// Modifiers returns a copy of the live modifiers in insertion order.
func (s *Stat) Modifiers() []Modifier {
	out := make([]Modifier, 0, len(s.modifiers))
	for _, m := range s.modifiers {
		if m.Live() {
			out = append(out, m)
		}
	}
	return out
}

// Len returns the number of stored modifiers.
func (s *Stat) Len() int { return len(s.modifiers) }

// Tick decrements every timed modifier by one turn and drops expired ones.
// Returns the number of removed modifiers.
func (s *Stat) Tick() int {
	kept := s.modifiers[:0]
	removed := 0
	for _, m := range s.modifiers {
		if !m.Remaining.IsPermanent() {
			m.Remaining--
		}
		if !m.Live() {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	// Clear the tail so dropped modifiers don't linger in the backing array.
	for i := len(kept); i < len(s.modifiers); i++ {
		s.modifiers[i] = Modifier{}
	}
	s.modifiers = kept
	return removed
}

// Clone returns a deep copy.
func (s *Stat) Clone() *Stat {
	c := &Stat{base: s.base, scaling: s.scaling}
	if len(s.modifiers) > 0 {
		c.modifiers = make([]Modifier, len(s.modifiers))
		copy(c.modifiers, s.modifiers)
	}
	return c
}

// Apply folds value through mods in the fixed category order.
// Non-live modifiers are skipped.
func Apply(value float64, mods []Modifier) float64 {
	var (
		add, rel float64
		mul      = 1.0
		absolute float64
		hasAbs   bool
	)

	for _, m := range mods {
		if !m.Live() {
			continue
		}
		switch m.Type {
		case ModAbsolute:
			absolute = m.Magnitude
			hasAbs = true
		case ModAdditive:
			add += m.Magnitude
		case ModRelative:
			rel += m.Magnitude
		case ModMultiplicative:
			mul *= 1 + m.Magnitude
		}
	}

	if hasAbs {
		value = absolute
	}
	value += add
	value *= 1 + rel
	value *= mul
	return value
}

// Aggregate folds a zero base through mods. Used for tag-queried fractions
// such as armor penetration or absorption chance.
func Aggregate(mods []Modifier) float64 {
	return Apply(0, mods)
}

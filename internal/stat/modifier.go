package stat

// ModType defines how a modifier is folded into a stat value.
type ModType int8

const (
	ModRelative       ModType = iota // value × (1 + Σ magnitudes)
	ModAdditive                      // value + Σ magnitudes
	ModMultiplicative                // value × Π(1 + magnitude)
	ModAbsolute                      // replaces the running value
)

// String returns the modifier type name used in data files.
func (t ModType) String() string {
	switch t {
	case ModRelative:
		return "Relative"
	case ModAdditive:
		return "Additive"
	case ModMultiplicative:
		return "Multiplicative"
	case ModAbsolute:
		return "Absolute"
	default:
		return "Unknown"
	}
}

// ParseModType converts a data-file name into ModType.
func ParseModType(s string) (ModType, bool) {
	switch s {
	case "Relative", "relative", "REL":
		return ModRelative, true
	case "Additive", "additive", "ADD":
		return ModAdditive, true
	case "Multiplicative", "multiplicative", "MUL":
		return ModMultiplicative, true
	case "Absolute", "absolute", "ABS":
		return ModAbsolute, true
	}
	return 0, false
}

// Duration is a remaining lifetime in turns.
type Duration int32

// Permanent marks a modifier that Tick never removes.
const Permanent Duration = -1

// IsPermanent reports whether d never expires.
func (d Duration) IsPermanent() bool { return d == Permanent }

// Modifier is an immutable stat instruction. Only the owning Stat
// decrements the lifetime of its copy.
type Modifier struct {
	Type      ModType
	Magnitude float64
	Remaining Duration
}

// NewModifier returns a modifier lasting the given number of turns.
func NewModifier(t ModType, magnitude float64, turns int) Modifier {
	return Modifier{Type: t, Magnitude: magnitude, Remaining: Duration(turns)}
}

// NewPermanent returns a modifier that never expires.
func NewPermanent(t ModType, magnitude float64) Modifier {
	return Modifier{Type: t, Magnitude: magnitude, Remaining: Permanent}
}

// Live reports whether the modifier still applies.
func (m Modifier) Live() bool {
	return m.Remaining.IsPermanent() || m.Remaining > 0
}

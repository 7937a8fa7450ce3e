package spawn

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulty scales enemy offense, defense and health.
type Difficulty uint8

const (
	Easy Difficulty = iota
	Normal
	Hard
	Nightmare
)

var difficultyFactors = [...]float64{
	Easy:      0.75,
	Normal:    1.0,
	Hard:      1.25,
	Nightmare: 1.5,
}

var difficultyNames = [...]string{
	Easy:      "easy",
	Normal:    "normal",
	Hard:      "hard",
	Nightmare: "nightmare",
}

// Factor returns the stat multiplier. Unknown values scale like Normal.
func (d Difficulty) Factor() float64 {
	if int(d) < len(difficultyFactors) {
		return difficultyFactors[d]
	}
	return 1
}

func (d Difficulty) String() string {
	if int(d) < len(difficultyNames) {
		return difficultyNames[d]
	}
	return fmt.Sprintf("Difficulty(%d)", uint8(d))
}

// ParseDifficulty resolves a difficulty name (case-insensitive).
func ParseDifficulty(s string) (Difficulty, error) {
	for i, name := range difficultyNames {
		if strings.EqualFold(s, name) {
			return Difficulty(i), nil
		}
	}
	return Normal, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// UnmarshalText lets config files name the difficulty.
func (d *Difficulty) UnmarshalText(text []byte) error {
	v, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

package skill

import (
	"fmt"
	"slices"

	"github.com/udisondev/dungeonrpg/internal/model"
)

// Book is the skill catalog, keyed by skill name.
type Book struct {
	skills map[string]*Skill
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{skills: make(map[string]*Skill, 32)}
}

// BuildBook builds every definition into a new book.
func BuildBook(defs []Definition) (*Book, error) {
	b := NewBook()
	for _, def := range defs {
		s, err := Build(def)
		if err != nil {
			return nil, err
		}
		if err := b.Add(s); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Add registers s. Names must be unique.
func (b *Book) Add(s *Skill) error {
	if _, ok := b.skills[s.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSkill, s.Name)
	}
	b.skills[s.Name] = s
	return nil
}

// Get returns the skill registered under name.
func (b *Book) Get(name string) (*Skill, error) {
	s, ok := b.skills[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSkill, name)
	}
	return s, nil
}

// Has reports whether name is registered.
func (b *Book) Has(name string) bool {
	_, ok := b.skills[name]
	return ok
}

// Names returns registered skill names, sorted.
func (b *Book) Names() []string {
	names := make([]string, 0, len(b.skills))
	for n := range b.skills {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of skills.
func (b *Book) Len() int { return len(b.skills) }

// SkillsOf resolves a combatant's slots. Unknown names are reported.
func (b *Book) SkillsOf(c *model.Combatant) ([]*Skill, error) {
	names := c.Skills()
	out := make([]*Skill, 0, len(names))
	for _, n := range names {
		s, err := b.Get(n)
		if err != nil {
			return nil, fmt.Errorf("combatant %s: %w", c.Name(), err)
		}
		out = append(out, s)
	}
	return out, nil
}

// Slot returns the skill in the caster's slot by name, rejecting skills the
// combatant has not learned.
func (b *Book) Slot(c *model.Combatant, name string) (*Skill, error) {
	if !slices.Contains(c.Skills(), name) {
		return nil, fmt.Errorf("%w: %s", ErrSkillNotKnown, name)
	}
	return b.Get(name)
}

package data

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/dungeonrpg/internal/effect"
	"github.com/udisondev/dungeonrpg/internal/skill"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrClassNotFound    = errors.New("class not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrDuplicateAlias   = errors.New("duplicate alias")
)

// Catalog is the validated, read-only view of a content set. Safe for
// concurrent readers.
type Catalog struct {
	enemies   map[string]*Template
	classes   map[string]*Template
	locations map[string]*Location
	book      *skill.Book
}

// NewCatalog validates set and indexes it. Every template must convert to a
// combatant spec, every referenced skill and enemy alias must exist.
func NewCatalog(set *Set) (*Catalog, error) {
	for _, name := range set.Tags {
		if name == "" {
			return nil, fmt.Errorf("tags: %w: empty name", effect.ErrUnknownTag)
		}
		effect.RegisterTag(name)
	}
	book, err := skill.BuildBook(set.Skills)
	if err != nil {
		return nil, fmt.Errorf("building skills: %w", err)
	}
	c := &Catalog{
		enemies:   make(map[string]*Template, len(set.Enemies)),
		classes:   make(map[string]*Template, len(set.Classes)),
		locations: make(map[string]*Location, len(set.Locations)),
		book:      book,
	}

	if err := c.index(c.enemies, set.Enemies); err != nil {
		return nil, fmt.Errorf("enemies: %w", err)
	}
	if err := c.index(c.classes, set.Classes); err != nil {
		return nil, fmt.Errorf("classes: %w", err)
	}

	for i := range set.Locations {
		loc := &set.Locations[i]
		if _, ok := c.locations[loc.Name]; ok {
			return nil, fmt.Errorf("location %s: %w", loc.Name, ErrDuplicateAlias)
		}
		for _, alias := range loc.Enemies {
			if _, ok := c.enemies[alias]; !ok {
				return nil, fmt.Errorf("location %s: %w: %s", loc.Name, ErrTemplateNotFound, alias)
			}
		}
		if loc.Boss != "" {
			if _, ok := c.enemies[loc.Boss]; !ok {
				return nil, fmt.Errorf("location %s boss: %w: %s", loc.Name, ErrTemplateNotFound, loc.Boss)
			}
		}
		c.locations[loc.Name] = loc
	}

	slog.Info("content loaded",
		"skills", book.Len(),
		"enemies", len(c.enemies),
		"classes", len(c.classes),
		"locations", len(c.locations))
	return c, nil
}

func (c *Catalog) index(into map[string]*Template, templates []Template) error {
	for i := range templates {
		t := &templates[i]
		if t.Alias == "" {
			return fmt.Errorf("template %d: empty alias", i)
		}
		if _, ok := into[t.Alias]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateAlias, t.Alias)
		}
		if _, err := t.Spec(1); err != nil {
			return err
		}
		for _, name := range t.Skills {
			if !c.book.Has(name) {
				return fmt.Errorf("template %s: %w: %s", t.Alias, skill.ErrUnknownSkill, name)
			}
		}
		into[t.Alias] = t
	}
	return nil
}

// Lookup returns the enemy template for alias.
func (c *Catalog) Lookup(_ context.Context, alias string) (*Template, error) {
	t, ok := c.enemies[alias]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, alias)
	}
	return t, nil
}

// Class returns the player class template.
func (c *Catalog) Class(name string) (*Template, error) {
	t, ok := c.classes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, name)
	}
	return t, nil
}

// Location returns the named location.
func (c *Catalog) Location(name string) (*Location, error) {
	l, ok := c.locations[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, name)
	}
	return l, nil
}

// Book returns the skill catalog.
func (c *Catalog) Book() *skill.Book { return c.book }

// Enemies returns every enemy template sorted by alias.
func (c *Catalog) Enemies() []*Template {
	out := make([]*Template, 0, len(c.enemies))
	for _, t := range c.enemies {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b *Template) int { return cmp.Compare(a.Alias, b.Alias) })
	return out
}

// LocationNames returns every location name, sorted.
func (c *Catalog) LocationNames() []string {
	out := make([]string, 0, len(c.locations))
	for name := range c.locations {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

package effect

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownTag is returned for a tag name that was never registered.
var ErrUnknownTag = errors.New("unknown effect tag")

// Tag is the key that couples skills and items to the damage pipeline.
// Built-in tags are fixed at compile time; content can register more.
type Tag uint16

const (
	TagNone Tag = iota

	TagDamageTaken
	TagPhysicalDamageTaken
	TagMagicDamageTaken
	TagBleedDamageTaken
	TagPoisonDamageTaken
	TagBurnDamageTaken

	TagPhysicalArmorPen
	TagMagicArmorPen
	TagAbsorptionChance

	TagResourceRegenMod
	TagNoResourceRegen

	TagShield

	// Status effects dealing damage at round end.
	TagBleed
	TagPoison
	TagBurn
	TagStun

	builtinTagCount
)

var builtinTagNames = [...]string{
	TagNone:                "None",
	TagDamageTaken:         "DamageTaken",
	TagPhysicalDamageTaken: "PhysicalDamageTaken",
	TagMagicDamageTaken:    "MagicDamageTaken",
	TagBleedDamageTaken:    "BleedDamageTaken",
	TagPoisonDamageTaken:   "PoisonDamageTaken",
	TagBurnDamageTaken:     "BurnDamageTaken",
	TagPhysicalArmorPen:    "PhysicalArmorPen",
	TagMagicArmorPen:       "MagicArmorPen",
	TagAbsorptionChance:    "AbsorptionChance",
	TagResourceRegenMod:    "ResourceRegenMod",
	TagNoResourceRegen:     "NoResourceRegen",
	TagShield:              "Shield",
	TagBleed:               "Bleed",
	TagPoison:              "Poison",
	TagBurn:                "Burn",
	TagStun:                "Stun",
}

// tagRegistry maps tag ↔ name, including content-registered tags.
var tagRegistry = struct {
	mu     sync.RWMutex
	byName map[string]Tag
	names  []string
}{
	byName: make(map[string]Tag, builtinTagCount),
}

func init() {
	tagRegistry.names = append(tagRegistry.names, builtinTagNames[:]...)
	for i, name := range builtinTagNames {
		tagRegistry.byName[name] = Tag(i)
	}
}

// String returns the registered tag name.
func (t Tag) String() string {
	tagRegistry.mu.RLock()
	defer tagRegistry.mu.RUnlock()
	if int(t) < len(tagRegistry.names) {
		return tagRegistry.names[t]
	}
	return fmt.Sprintf("Tag(%d)", uint16(t))
}

// IsBuiltin reports whether t is one of the compiled-in tags.
func (t Tag) IsBuiltin() bool { return t < builtinTagCount }

// RegisterTag returns the tag registered under name, allocating a new one
// if the name is unknown.
func RegisterTag(name string) Tag {
	tagRegistry.mu.Lock()
	defer tagRegistry.mu.Unlock()

	if t, ok := tagRegistry.byName[name]; ok {
		return t
	}
	t := Tag(len(tagRegistry.names))
	tagRegistry.names = append(tagRegistry.names, name)
	tagRegistry.byName[name] = t
	return t
}

// ParseTag looks up a registered tag by name.
func ParseTag(name string) (Tag, error) {
	tagRegistry.mu.RLock()
	defer tagRegistry.mu.RUnlock()

	t, ok := tagRegistry.byName[name]
	if !ok {
		return TagNone, fmt.Errorf("%w: %s", ErrUnknownTag, name)
	}
	return t, nil
}

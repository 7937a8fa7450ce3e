package model

import (
	"fmt"
	"strings"

	"github.com/udisondev/dungeonrpg/internal/effect"
)

// StatKind identifies one of the combatant's derived attributes.
type StatKind uint8

const (
	StatMaximalHealth StatKind = iota
	StatMinimalAttack
	StatMaximalAttack
	StatDodge
	StatPhysicalDefense
	StatMagicDefense
	StatCritChance
	StatSpeed
	StatAccuracy
	StatCritMod
	StatMaximalResource
	StatResourceRegen

	statKindCount
)

var statKindNames = [statKindCount]string{
	StatMaximalHealth:   "MaximalHealth",
	StatMinimalAttack:   "MinimalAttack",
	StatMaximalAttack:   "MaximalAttack",
	StatDodge:           "Dodge",
	StatPhysicalDefense: "PhysicalDefense",
	StatMagicDefense:    "MagicDefense",
	StatCritChance:      "CritChance",
	StatSpeed:           "Speed",
	StatAccuracy:        "Accuracy",
	StatCritMod:         "CritMod",
	StatMaximalResource: "MaximalResource",
	StatResourceRegen:   "ResourceRegen",
}

// StatKinds returns every stat kind in declaration order.
func StatKinds() []StatKind {
	kinds := make([]StatKind, statKindCount)
	for i := range kinds {
		kinds[i] = StatKind(i)
	}
	return kinds
}

// Valid reports whether k names a known stat.
func (k StatKind) Valid() bool { return k < statKindCount }

func (k StatKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("StatKind(%d)", uint8(k))
	}
	return statKindNames[k]
}

// statTags are the effect tags named after each stat. Passive effects
// carrying one fold into that stat's value.
var statTags = func() [statKindCount]effect.Tag {
	var tags [statKindCount]effect.Tag
	for i, name := range statKindNames {
		tags[i] = effect.RegisterTag(name)
	}
	return tags
}()

// Tag returns the effect tag that modifies k.
func (k StatKind) Tag() effect.Tag {
	if !k.Valid() {
		return effect.TagNone
	}
	return statTags[k]
}

// ParseStatKind resolves a stat by name (case-insensitive).
func ParseStatKind(name string) (StatKind, error) {
	for i, n := range statKindNames {
		if strings.EqualFold(n, name) {
			return StatKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedStat, name)
}

// ResourceType is the combatant's secondary gauge.
type ResourceType uint8

const (
	ResourceMana ResourceType = iota
	ResourceFury
	ResourceMomentum
)

func (r ResourceType) String() string {
	switch r {
	case ResourceMana:
		return "Mana"
	case ResourceFury:
		return "Fury"
	case ResourceMomentum:
		return "Momentum"
	default:
		return fmt.Sprintf("ResourceType(%d)", uint8(r))
	}
}

// ParseResourceType resolves a resource type by name (case-insensitive).
func ParseResourceType(name string) (ResourceType, error) {
	switch strings.ToLower(name) {
	case "mana", "":
		return ResourceMana, nil
	case "fury":
		return ResourceFury, nil
	case "momentum":
		return ResourceMomentum, nil
	}
	return 0, fmt.Errorf("unknown resource type: %q", name)
}

// DamageKind selects the mitigation curve.
type DamageKind uint8

const (
	DamagePhysical DamageKind = iota
	DamageMagic
	DamageBleed
	DamagePoison
	DamageBurn
	DamageTrue // bypasses the defense curve
)

func (k DamageKind) String() string {
	switch k {
	case DamagePhysical:
		return "Physical"
	case DamageMagic:
		return "Magic"
	case DamageBleed:
		return "Bleed"
	case DamagePoison:
		return "Poison"
	case DamageBurn:
		return "Burn"
	case DamageTrue:
		return "True"
	default:
		return fmt.Sprintf("DamageKind(%d)", uint8(k))
	}
}

// ParseDamageKind resolves a damage kind by name (case-insensitive).
func ParseDamageKind(name string) (DamageKind, error) {
	switch strings.ToLower(name) {
	case "physical":
		return DamagePhysical, nil
	case "magic":
		return DamageMagic, nil
	case "bleed":
		return DamageBleed, nil
	case "poison":
		return DamagePoison, nil
	case "burn":
		return DamageBurn, nil
	case "true":
		return DamageTrue, nil
	}
	return 0, fmt.Errorf("unknown damage kind: %q", name)
}

// takenTag returns the kind-specific "DamageTaken" tag.
func (k DamageKind) takenTag() (effect.Tag, bool) {
	switch k {
	case DamagePhysical:
		return effect.TagPhysicalDamageTaken, true
	case DamageMagic:
		return effect.TagMagicDamageTaken, true
	case DamageBleed:
		return effect.TagBleedDamageTaken, true
	case DamagePoison:
		return effect.TagPoisonDamageTaken, true
	case DamageBurn:
		return effect.TagBurnDamageTaken, true
	}
	return effect.TagNone, false
}

// StatusKind is a status effect a combatant can resist.
type StatusKind uint8

const (
	StatusBleed StatusKind = iota
	StatusPoison
	StatusBurn
	StatusStun

	statusKindCount
)

func (k StatusKind) String() string {
	switch k {
	case StatusBleed:
		return "Bleed"
	case StatusPoison:
		return "Poison"
	case StatusBurn:
		return "Burn"
	case StatusStun:
		return "Stun"
	default:
		return fmt.Sprintf("StatusKind(%d)", uint8(k))
	}
}

// Valid reports whether k names a known status.
func (k StatusKind) Valid() bool { return k < statusKindCount }

// ParseStatusKind resolves a status by name (case-insensitive).
func ParseStatusKind(name string) (StatusKind, error) {
	for k := StatusKind(0); k < statusKindCount; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: status %q", ErrUnsupportedStat, name)
}

// Tag returns the effect tag that marks an active status of this kind.
func (k StatusKind) Tag() effect.Tag {
	switch k {
	case StatusBleed:
		return effect.TagBleed
	case StatusPoison:
		return effect.TagPoison
	case StatusBurn:
		return effect.TagBurn
	case StatusStun:
		return effect.TagStun
	}
	return effect.TagNone
}

// DamageKind returns the damage kind dealt by a status, if any.
func (k StatusKind) DamageKind() (DamageKind, bool) {
	switch k {
	case StatusBleed:
		return DamageBleed, true
	case StatusPoison:
		return DamagePoison, true
	case StatusBurn:
		return DamageBurn, true
	}
	return 0, false
}

// statusFor maps a damage-over-time kind to the resistance it reads.
func statusFor(k DamageKind) (StatusKind, bool) {
	switch k {
	case DamageBleed:
		return StatusBleed, true
	case DamagePoison:
		return StatusPoison, true
	case DamageBurn:
		return StatusBurn, true
	}
	return 0, false
}

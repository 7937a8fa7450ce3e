package skill

import (
	"fmt"

	"github.com/udisondev/dungeonrpg/internal/effect"
	"github.com/udisondev/dungeonrpg/internal/model"
	"github.com/udisondev/dungeonrpg/internal/stat"
)

// InflictStatusEffect puts a timed status on the target. Damage statuses
// tick at round end for "power" before mitigation.
// Params: "status" (bleed|poison|burn|stun), "power", "duration" (default 3).
type InflictStatusEffect struct {
	status   model.StatusKind
	power    float64
	duration int
}

func NewInflictStatusEffect(params map[string]string) (Effect, error) {
	name, err := paramRequired(params, "status")
	if err != nil {
		return nil, err
	}
	kind, err := model.ParseStatusKind(name)
	if err != nil {
		return nil, err
	}
	power, err := paramFloat(params, "power", 0)
	if err != nil {
		return nil, err
	}
	duration, err := paramInt(params, "duration", 3)
	if err != nil {
		return nil, err
	}
	if duration == 0 {
		return nil, fmt.Errorf("status %s: zero duration", kind)
	}
	return &InflictStatusEffect{status: kind, power: power, duration: duration}, nil
}

func (e *InflictStatusEffect) Name() string { return "InflictStatus" }

func (e *InflictStatusEffect) Apply(c *Cast) error {
	target := c.recipient(false)
	// Stun does no damage, so its resistance is a chance to shrug it off.
	if e.status == model.StatusStun && c.Rand.Float64() < target.Resistance(model.StatusStun) {
		return nil
	}
	target.Passives().AddTimed(effect.Timed{
		Name:      e.status.String(),
		Tag:       e.status.Tag(),
		Type:      stat.ModAdditive,
		Magnitude: e.power,
		Remaining: stat.Duration(e.duration),
	})
	c.Result.Statuses = append(c.Result.Statuses, e.status.String())
	return nil
}

// TimedEffectEffect attaches an arbitrary tagged effect. This is how skills
// reach the tag-driven parts of the pipeline (DamageTaken, ArmorPen,
// AbsorptionChance, ResourceRegenMod and content-registered tags). The tag
// must already be registered.
// Params: "tag", "name" (default tag name), "type", "value", "duration", "self".
type TimedEffectEffect struct {
	name string
	tag  effect.Tag
	mod  stat.Modifier
	self bool
}

func NewTimedEffect(params map[string]string) (Effect, error) {
	tagName, err := paramRequired(params, "tag")
	if err != nil {
		return nil, err
	}
	tag, err := effect.ParseTag(tagName)
	if err != nil {
		return nil, err
	}
	mod, err := parseModifier(params)
	if err != nil {
		return nil, err
	}
	name := params["name"]
	if name == "" {
		name = tag.String()
	}
	return &TimedEffectEffect{name: name, tag: tag, mod: mod, self: paramBool(params, "self")}, nil
}

func (e *TimedEffectEffect) Name() string { return "TimedEffect" }

func (e *TimedEffectEffect) Apply(c *Cast) error {
	c.recipient(e.self).Passives().AddTimed(effect.Timed{
		Name:      e.name,
		Tag:       e.tag,
		Type:      e.mod.Type,
		Magnitude: e.mod.Magnitude,
		Remaining: e.mod.Remaining,
	})
	c.Result.Applied = append(c.Result.Applied, e.name)
	return nil
}

// ToggleInnateEffect switches an innate effect on or off.
// Params: "name", "enabled" (bool), "self".
type ToggleInnateEffect struct {
	name    string
	enabled bool
	self    bool
}

func NewToggleInnateEffect(params map[string]string) (Effect, error) {
	name, err := paramRequired(params, "name")
	if err != nil {
		return nil, err
	}
	return &ToggleInnateEffect{name: name, enabled: paramBool(params, "enabled"), self: paramBool(params, "self")}, nil
}

func (e *ToggleInnateEffect) Name() string { return "ToggleInnate" }

func (e *ToggleInnateEffect) Apply(c *Cast) error {
	if c.recipient(e.self).Passives().Toggle(e.name, e.enabled) {
		c.Result.Applied = append(c.Result.Applied, e.name)
	}
	return nil
}

package skill

import (
	"fmt"

	"github.com/udisondev/dungeonrpg/internal/model"
	"github.com/udisondev/dungeonrpg/internal/stat"
)

// StatBuffEffect adds a modifier to one stat.
// Params: "stat", "type" (Relative|Additive|Multiplicative|Absolute, default
// Additive), "value", "duration" (turns, -1 = permanent, default 3), "self".
type StatBuffEffect struct {
	stat model.StatKind
	mod  stat.Modifier
	self bool
}

func parseModifier(params map[string]string) (stat.Modifier, error) {
	mt := stat.ModAdditive
	if raw := params["type"]; raw != "" {
		t, ok := stat.ParseModType(raw)
		if !ok {
			return stat.Modifier{}, fmt.Errorf("unknown modifier type %q", raw)
		}
		mt = t
	}
	value, err := paramFloat(params, "value", 0)
	if err != nil {
		return stat.Modifier{}, err
	}
	turns, err := paramInt(params, "duration", 3)
	if err != nil {
		return stat.Modifier{}, err
	}
	if turns < 0 {
		return stat.NewPermanent(mt, value), nil
	}
	return stat.NewModifier(mt, value, turns), nil
}

func NewStatBuffEffect(params map[string]string) (Effect, error) {
	name, err := paramRequired(params, "stat")
	if err != nil {
		return nil, err
	}
	kind, err := model.ParseStatKind(name)
	if err != nil {
		return nil, err
	}
	mod, err := parseModifier(params)
	if err != nil {
		return nil, err
	}
	return &StatBuffEffect{stat: kind, mod: mod, self: paramBool(params, "self")}, nil
}

func (e *StatBuffEffect) Name() string { return "StatBuff" }

func (e *StatBuffEffect) Apply(c *Cast) error {
	if err := c.recipient(e.self).AddModifier(e.stat, e.mod); err != nil {
		return err
	}
	c.Result.Applied = append(c.Result.Applied, e.stat.String())
	return nil
}

// ResistanceBuffEffect adds a modifier to one status resistance.
// Params: "status", plus the modifier params of StatBuff.
type ResistanceBuffEffect struct {
	status model.StatusKind
	mod    stat.Modifier
	self   bool
}

func NewResistanceBuffEffect(params map[string]string) (Effect, error) {
	name, err := paramRequired(params, "status")
	if err != nil {
		return nil, err
	}
	kind, err := model.ParseStatusKind(name)
	if err != nil {
		return nil, err
	}
	mod, err := parseModifier(params)
	if err != nil {
		return nil, err
	}
	return &ResistanceBuffEffect{status: kind, mod: mod, self: paramBool(params, "self")}, nil
}

func (e *ResistanceBuffEffect) Name() string { return "ResistanceBuff" }

func (e *ResistanceBuffEffect) Apply(c *Cast) error {
	if err := c.recipient(e.self).AddResistanceModifier(e.status, e.mod); err != nil {
		return err
	}
	c.Result.Applied = append(c.Result.Applied, e.status.String()+"Resistance")
	return nil
}

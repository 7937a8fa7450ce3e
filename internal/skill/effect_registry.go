package skill

import (
	"fmt"
	"strconv"
	"strings"
)

// Factory builds an effect from data-file params.
type Factory func(params map[string]string) (Effect, error)

// effectRegistry maps effect name → factory.
var effectRegistry = map[string]Factory{}

// RegisterEffect registers an effect factory by name.
func RegisterEffect(name string, factory Factory) {
	effectRegistry[name] = factory
}

// CreateEffect creates an effect by name using the registered factory.
func CreateEffect(name string, params map[string]string) (Effect, error) {
	factory, ok := effectRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown effect type: %s", name)
	}
	e, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("effect %s: %w", name, err)
	}
	return e, nil
}

func init() {
	RegisterEffect("DealDamage", NewDealDamageEffect)
	RegisterEffect("StatBuff", NewStatBuffEffect)
	RegisterEffect("ResistanceBuff", NewResistanceBuffEffect)
	RegisterEffect("InflictStatus", NewInflictStatusEffect)
	RegisterEffect("Heal", NewHealEffect)
	RegisterEffect("Shield", NewShieldEffect)
	RegisterEffect("ResourceTrade", NewResourceTradeEffect)
	RegisterEffect("ToggleInnate", NewToggleInnateEffect)
	RegisterEffect("TimedEffect", NewTimedEffect)
}

// paramFloat parses a float param. Missing means def.
func paramFloat(params map[string]string, key string, def float64) (float64, error) {
	raw, ok := params[key]
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("param %s=%q: %w", key, raw, err)
	}
	return v, nil
}

func paramInt(params map[string]string, key string, def int) (int, error) {
	raw, ok := params[key]
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("param %s=%q: %w", key, raw, err)
	}
	return v, nil
}

func paramBool(params map[string]string, key string) bool {
	v, _ := strconv.ParseBool(params[key])
	return v
}

func paramRequired(params map[string]string, key string) (string, error) {
	v := strings.TrimSpace(params[key])
	if v == "" {
		return "", fmt.Errorf("missing param %s", key)
	}
	return v, nil
}

package spawn

import (
	"fmt"

	"github.com/udisondev/dungeonrpg/internal/data"
	"github.com/udisondev/dungeonrpg/internal/model"
)

// CreatePlayer builds a player combatant from a class template. Players are
// not scaled by difficulty and keep the class's initial resource.
func CreatePlayer(class *data.Template, name string, level int) (*model.Combatant, error) {
	spec, err := class.Spec(level)
	if err != nil {
		return nil, err
	}
	if name != "" {
		spec.Name = name
	}
	c, err := model.NewCombatant(spec)
	if err != nil {
		return nil, fmt.Errorf("creating player %s: %w", class.Alias, err)
	}
	return c, nil
}

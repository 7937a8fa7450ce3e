package data

import "github.com/udisondev/dungeonrpg/internal/skill"

// TestSet returns a small content set for tests from other packages. The
// "grunt" template has MaximalHealth base 100 and scaling 10.
func TestSet() *Set {
	return &Set{
		Skills: []skill.Definition{
			{Name: "Hit", ActionCost: 1, Effects: []skill.EffectSpec{{Type: "DealDamage"}}},
		},
		Enemies: []Template{
			{
				Alias: "grunt",
				Name:  "Grunt",
				Stats: map[string]StatSeed{
					"MaximalHealth":   {Base: 100, Scaling: 10},
					"MinimalAttack":   {Base: 8, Scaling: 1},
					"MaximalAttack":   {Base: 12, Scaling: 1},
					"PhysicalDefense": {Base: 20, Scaling: 2},
					"MagicDefense":    {Base: 10},
					"Speed":           {Base: 10, Scaling: 1},
					"Accuracy":        {Base: 90},
					"CritMod":         {Base: 2},
					"MaximalResource": {Base: 50},
				},
				Skills: []string{"Hit"},
			},
			{
				Alias:  "warlord",
				Name:   "Warlord",
				Boss:   true,
				Stats:  map[string]StatSeed{"MaximalHealth": {Base: 300}},
				Skills: []string{"Hit"},
			},
		},
		Classes: []Template{
			{
				Alias:           "knight",
				Name:            "Knight",
				Resource:        "fury",
				ActionPoints:    2,
				InitialResource: 10,
				Stats:           map[string]StatSeed{"MaximalHealth": {Base: 150, Scaling: 10}},
				Skills:          []string{"Hit"},
			},
		},
		Locations: []Location{
			{Name: "camp", Enemies: []string{"grunt"}, PackSize: 2, Boss: "warlord", BossQuest: "warlord_hunt"},
			{Name: "open", Enemies: []string{"grunt"}, Boss: "warlord"},
			{Name: "quiet", Enemies: []string{"grunt"}},
		},
	}
}

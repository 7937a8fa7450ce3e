package skill

import "github.com/udisondev/dungeonrpg/internal/stat"

func statAdd(v float64) stat.Modifier { return stat.NewPermanent(stat.ModAdditive, v) }

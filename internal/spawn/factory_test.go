package spawn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/dungeonrpg/internal/data"
	"github.com/udisondev/dungeonrpg/internal/model"
)

type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[min(r.i, len(r.vals)-1)]
	r.i++
	return v
}

func rolls(v ...float64) *seqRand { return &seqRand{vals: v} }

type fixedBoss struct {
	alias string
	ok    bool
	asked []string
}

func (b *fixedBoss) SelectBossCandidate(location string) (string, bool) {
	b.asked = append(b.asked, location)
	return b.alias, b.ok
}

func testCatalog(t *testing.T) *data.Catalog {
	t.Helper()
	cat, err := data.NewCatalog(data.TestSet())
	require.NoError(t, err)
	return cat
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in     string
		want   Difficulty
		factor float64
	}{
		{in: "easy", want: Easy, factor: 0.75},
		{in: "Normal", want: Normal, factor: 1},
		{in: "HARD", want: Hard, factor: 1.25},
		{in: "nightmare", want: Nightmare, factor: 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDifficulty(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
			assert.Equal(t, tt.factor, d.Factor())
		})
	}

	_, err := ParseDifficulty("insane")
	assert.ErrorIs(t, err, ErrUnknownDifficulty)

	var d Difficulty
	require.NoError(t, d.UnmarshalText([]byte("hard")))
	assert.Equal(t, Hard, d)
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "hard", string(text))
}

func TestCreateEnemy_HardScalesBase(t *testing.T) {
	c, err := CreateEnemy(context.Background(), testCatalog(t), "grunt", 0, Hard)
	require.NoError(t, err)

	hp, err := c.Stat(model.StatMaximalHealth)
	require.NoError(t, err)
	assert.Equal(t, 125.0, hp.Base())
	assert.Equal(t, 12.5, hp.Scaling())
	assert.Equal(t, 125.0, c.CurrentHealth(), "starts at scaled max")
	assert.Equal(t, 0.0, c.CurrentResource())
}

func TestCreateEnemy_ScalesOnlyOffenseDefenseHealth(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog(t)
	normal, err := CreateEnemy(ctx, cat, "grunt", 2, Normal)
	require.NoError(t, err)
	nightmare, err := CreateEnemy(ctx, cat, "grunt", 2, Nightmare)
	require.NoError(t, err)

	scaled := []struct {
		name string
		get  func(*model.Combatant) float64
	}{
		{"MaximalHealth", (*model.Combatant).MaximalHealth},
		{"MinimalAttack", (*model.Combatant).MinimalAttack},
		{"MaximalAttack", (*model.Combatant).MaximalAttack},
		{"PhysicalDefense", (*model.Combatant).PhysicalDefense},
		{"MagicDefense", (*model.Combatant).MagicDefense},
	}
	for _, s := range scaled {
		assert.InDelta(t, s.get(normal)*1.5, s.get(nightmare), 1e-9, s.name)
	}

	unscaled := []struct {
		name string
		get  func(*model.Combatant) float64
	}{
		{"Speed", (*model.Combatant).Speed},
		{"Accuracy", (*model.Combatant).Accuracy},
		{"CritMod", (*model.Combatant).CritMod},
		{"MaximalResource", (*model.Combatant).MaximalResource},
	}
	for _, s := range unscaled {
		assert.Equal(t, s.get(normal), s.get(nightmare), s.name)
	}
}

func TestCreateEnemy_UnknownAlias(t *testing.T) {
	_, err := CreateEnemy(context.Background(), testCatalog(t), "dragon", 1, Normal)
	assert.ErrorIs(t, err, data.ErrTemplateNotFound)
}

func TestCreateEnemy_FreshInstances(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog(t)
	a, err := CreateEnemy(ctx, cat, "grunt", 1, Normal)
	require.NoError(t, err)
	b, err := CreateEnemy(ctx, cat, "grunt", 1, Normal)
	require.NoError(t, err)

	a.SetCurrentHealth(1)
	assert.NotEqual(t, a.CurrentHealth(), b.CurrentHealth())
}

func TestFactory_RegularPack(t *testing.T) {
	cat := testCatalog(t)
	loc, err := cat.Location("camp")
	require.NoError(t, err)
	bosses := &fixedBoss{alias: "warlord", ok: true}

	f := NewFactory(cat, bosses, Normal, rolls(0.5, 0.1, 0.9))
	enc, err := f.Encounter(context.Background(), loc, 3)
	require.NoError(t, err)

	assert.False(t, enc.Boss)
	assert.Empty(t, bosses.asked, "roll above boss chance never asks")
	require.Len(t, enc.Enemies, 2)
	assert.Equal(t, "Grunt #1", enc.Enemies[0].Combatant.Name())
	assert.Equal(t, "Grunt #2", enc.Enemies[1].Combatant.Name())
	assert.Equal(t, float64(data.DefaultActionPoints), enc.Enemies[0].ActionPoints)
	assert.Equal(t, 3, enc.Enemies[0].Combatant.Level())
}

func TestFactory_BossRoll(t *testing.T) {
	cat := testCatalog(t)
	loc, err := cat.Location("camp")
	require.NoError(t, err)

	t.Run("boss offered", func(t *testing.T) {
		bosses := &fixedBoss{alias: "warlord", ok: true}
		enc, err := NewFactory(cat, bosses, Hard, rolls(0.1)).Encounter(context.Background(), loc, 1)
		require.NoError(t, err)
		assert.True(t, enc.Boss)
		require.Len(t, enc.Enemies, 1)
		c := enc.Enemies[0].Combatant
		assert.True(t, c.IsBoss())
		assert.Equal(t, 375.0, c.MaximalHealth())
		assert.Equal(t, []string{"camp"}, bosses.asked)
	})

	t.Run("boss gated", func(t *testing.T) {
		bosses := &fixedBoss{ok: false}
		enc, err := NewFactory(cat, bosses, Normal, rolls(0.1, 0.5)).Encounter(context.Background(), loc, 1)
		require.NoError(t, err)
		assert.False(t, enc.Boss)
		assert.Len(t, enc.Enemies, 2)
	})

	t.Run("chance zero", func(t *testing.T) {
		bosses := &fixedBoss{alias: "warlord", ok: true}
		f := NewFactory(cat, bosses, Normal, rolls(0))
		f.SetBossChance(-1)
		enc, err := f.Encounter(context.Background(), loc, 1)
		require.NoError(t, err)
		assert.False(t, enc.Boss)
	})

	t.Run("quest selector", func(t *testing.T) {
		flags := data.NewQuestFlags("warlord_hunt")
		f := NewFactory(cat, data.NewQuestBossSelector(cat, flags), Normal, rolls(0.19))
		enc, err := f.Encounter(context.Background(), loc, 1)
		require.NoError(t, err)
		assert.True(t, enc.Boss)
	})
}

func TestFactory_EmptyLocation(t *testing.T) {
	f := NewFactory(testCatalog(t), nil, Normal, rolls(0.5))
	_, err := f.Encounter(context.Background(), &data.Location{Name: "void"}, 1)
	assert.Error(t, err)
}

func TestCreatePlayer(t *testing.T) {
	cat := testCatalog(t)
	knight, err := cat.Class("knight")
	require.NoError(t, err)

	c, err := CreatePlayer(knight, "Aria", 2)
	require.NoError(t, err)
	assert.Equal(t, "Aria", c.Name())
	assert.Equal(t, model.ResourceFury, c.ResourceType())
	assert.Equal(t, 170.0, c.MaximalHealth())
	assert.Equal(t, 170.0, c.CurrentHealth())

	c, err = CreatePlayer(knight, "", 1)
	require.NoError(t, err)
	assert.Equal(t, "Knight", c.Name())
}

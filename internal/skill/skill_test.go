package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/dungeonrpg/internal/effect"
	"github.com/udisondev/dungeonrpg/internal/model"
)

// seqRand returns values in order, repeating the last one.
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

func newUser(t *testing.T, name string, team int, rt model.ResourceType, resource float64) *model.BattleUser {
	t.Helper()
	c, err := model.NewCombatant(model.Spec{
		Name:     name,
		Resource: rt,
		Stats: map[model.StatKind]model.StatSeed{
			model.StatMaximalHealth:   {Base: 100},
			model.StatMinimalAttack:   {Base: 10},
			model.StatMaximalAttack:   {Base: 20},
			model.StatMaximalResource: {Base: 50},
			model.StatCritMod:         {Base: 2},
		},
		InitialResource: resource,
	})
	require.NoError(t, err)
	u := model.NewBattleUser(c, 3, team, model.ControlAI)
	u.RefillActionPoints()
	return u
}

func mustBuild(t *testing.T, def Definition) *Skill {
	t.Helper()
	s, err := Build(def)
	require.NoError(t, err)
	return s
}

func strike() Definition {
	return Definition{
		Name:       "Strike",
		ActionCost: 2,
		Effects:    []EffectSpec{{Type: "DealDamage", Params: map[string]string{"kind": "true", "power": "1"}}},
	}
}

func TestUse_DealsDamage(t *testing.T) {
	caster := newUser(t, "hero", 0, model.ResourceMana, 0)
	target := newUser(t, "goblin", 1, model.ResourceMana, 0)
	s := mustBuild(t, strike())

	// hit, no crit, damage roll midpoint → 15
	res, err := s.Use(caster, target, rolls(0.5, 0.5, 0.5))
	require.NoError(t, err)
	assert.False(t, res.Missed)
	assert.InDelta(t, 15.0, res.Damage, 1e-9)
	assert.InDelta(t, 85.0, target.Combatant().CurrentHealth(), 1e-9)
	assert.InDelta(t, 1.0, caster.CurrentActionPoints(), 1e-9)
}

func TestUse_Crit(t *testing.T) {
	caster := newUser(t, "hero", 0, model.ResourceMana, 0)
	require.NoError(t, caster.Combatant().AddModifier(model.StatCritChance, statAdd(1)))
	target := newUser(t, "goblin", 1, model.ResourceMana, 0)
	s := mustBuild(t, strike())

	res, err := s.Use(caster, target, rolls(0.5, 0.5, 0.0))
	require.NoError(t, err)
	assert.True(t, res.Crit)
	assert.InDelta(t, 20.0, res.Damage, 1e-9, "10 × crit mod 2")
}

func TestUse_MissStillPays(t *testing.T) {
	caster := newUser(t, "hero", 0, model.ResourceMana, 0)
	target := newUser(t, "goblin", 1, model.ResourceMana, 0)
	s := mustBuild(t, strike())

	res, err := s.Use(caster, target, rolls(0.99))
	require.NoError(t, err)
	assert.True(t, res.Missed)
	assert.InDelta(t, 100.0, target.Combatant().CurrentHealth(), 1e-9)
	assert.InDelta(t, 1.0, caster.CurrentActionPoints(), 1e-9)
}

func TestUse_CannotAfford_NoMutation(t *testing.T) {
	tests := []struct {
		name     string
		rt       model.ResourceType
		resource float64
		ap       bool
		wantErr  bool
	}{
		{name: "not enough mana", rt: model.ResourceMana, resource: 5, ap: true, wantErr: true},
		{name: "not enough momentum", rt: model.ResourceMomentum, resource: 5, ap: true, wantErr: true},
		{name: "fury may go negative", rt: model.ResourceFury, resource: 0, ap: true, wantErr: false},
		{name: "no action points", rt: model.ResourceMana, resource: 50, ap: false, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caster := newUser(t, "hero", 0, tt.rt, tt.resource)
			if !tt.ap {
				caster.ClearActionPoints()
			}
			target := newUser(t, "goblin", 1, model.ResourceMana, 0)
			def := strike()
			def.ResourceCost = 10
			s := mustBuild(t, def)

			apBefore := caster.CurrentActionPoints()
			resBefore := caster.Combatant().CurrentResource()

			_, err := s.Use(caster, target, rolls(0.5))
			if !tt.wantErr {
				require.NoError(t, err)
				assert.InDelta(t, resBefore-10, caster.Combatant().CurrentResource(), 1e-9)
				return
			}
			assert.ErrorIs(t, err, ErrCannotAfford)
			assert.InDelta(t, apBefore, caster.CurrentActionPoints(), 1e-9)
			assert.InDelta(t, resBefore, caster.Combatant().CurrentResource(), 1e-9)
			assert.InDelta(t, 100.0, target.Combatant().CurrentHealth(), 1e-9)
		})
	}
}

func TestUse_Targeting(t *testing.T) {
	caster := newUser(t, "hero", 0, model.ResourceMana, 0)
	ally := newUser(t, "squire", 0, model.ResourceMana, 0)
	enemy := newUser(t, "goblin", 1, model.ResourceMana, 0)

	s := mustBuild(t, strike())
	_, err := s.Use(caster, ally, rolls(0.5))
	assert.ErrorIs(t, err, ErrInvalidTarget)

	enemy.Combatant().SetCurrentHealth(0)
	_, err = s.Use(caster, enemy, rolls(0.5))
	assert.ErrorIs(t, err, ErrTargetDead)

	caster.Combatant().SetCurrentHealth(0)
	_, err = s.Use(caster, ally, rolls(0.5))
	assert.ErrorIs(t, err, ErrCasterDead)
}

func TestUse_SelfEffects(t *testing.T) {
	caster := newUser(t, "hero", 0, model.ResourceMana, 20)
	caster.Combatant().SetCurrentHealth(40)

	s := mustBuild(t, Definition{
		Name:         "Second Wind",
		ActionCost:   1,
		ResourceCost: 10,
		Target:       "self",
		Effects: []EffectSpec{
			{Type: "Heal", Params: map[string]string{"amount": "10", "fraction": "0.2"}},
			{Type: "Shield", Params: map[string]string{"amount": "25", "duration": "2"}},
			{Type: "StatBuff", Params: map[string]string{"stat": "Speed", "type": "Additive", "value": "4", "duration": "2"}},
		},
	})

	res, err := s.Use(caster, nil, rolls(0.5))
	require.NoError(t, err)
	c := caster.Combatant()
	assert.InDelta(t, 30.0, res.Healed, 1e-9)
	assert.InDelta(t, 70.0, c.CurrentHealth(), 1e-9)
	assert.InDelta(t, 25.0, c.Passives().ShieldTotal(), 1e-9)
	assert.InDelta(t, 4.0, c.Speed(), 1e-9)
	assert.InDelta(t, 10.0, c.CurrentResource(), 1e-9)
}

func TestUse_StatusAndTimedEffects(t *testing.T) {
	caster := newUser(t, "hero", 0, model.ResourceMana, 0)
	target := newUser(t, "goblin", 1, model.ResourceMana, 0)

	s := mustBuild(t, Definition{
		Name:       "Rend",
		ActionCost: 1,
		Effects: []EffectSpec{
			{Type: "InflictStatus", Params: map[string]string{"status": "bleed", "power": "5", "duration": "2"}},
			{Type: "TimedEffect", Params: map[string]string{"tag": "DamageTaken", "type": "Relative", "value": "0.25", "duration": "2"}},
			{Type: "TimedEffect", Params: map[string]string{"tag": "PhysicalArmorPen", "value": "0.3", "self": "true"}},
		},
	})

	res, err := s.Use(caster, target, rolls(0.1))
	require.NoError(t, err)
	assert.Equal(t, []string{"Bleed"}, res.Statuses)

	tc := target.Combatant()
	assert.True(t, tc.Passives().HasTag(effect.TagBleed))
	assert.Len(t, tc.Passives().Modifiers(effect.TagDamageTaken), 1)
	assert.Len(t, caster.Combatant().Passives().Modifiers(effect.TagPhysicalArmorPen), 1)
}

func TestBuild_TimedEffectTag(t *testing.T) {
	timed := func(tag string) Definition {
		return Definition{
			Name:       "Hex",
			ActionCost: 1,
			Effects:    []EffectSpec{{Type: "TimedEffect", Params: map[string]string{"tag": tag, "value": "0.1", "duration": "2"}}},
		}
	}

	_, err := Build(timed("DamgeTaken"))
	assert.ErrorIs(t, err, effect.ErrUnknownTag, "misspelled tag is rejected")
	_, err = effect.ParseTag("DamgeTaken")
	assert.Error(t, err, "rejected name is not registered as a side effect")

	effect.RegisterTag("HexDamageTaken")
	_, err = Build(timed("HexDamageTaken"))
	assert.NoError(t, err, "registered content tag is accepted")
}

func TestUse_StunResistance(t *testing.T) {
	stomp := mustBuild(t, Definition{
		Name:       "Stomp",
		ActionCost: 1,
		Effects:    []EffectSpec{{Type: "InflictStatus", Params: map[string]string{"status": "stun", "duration": "1"}}},
	})

	tests := []struct {
		name       string
		resistance float64
		roll       float64
		stunned    bool
	}{
		{name: "no resistance", resistance: 0, roll: 0.1, stunned: true},
		{name: "resisted", resistance: 0.8, roll: 0.5, stunned: false},
		{name: "resistance fails", resistance: 0.3, roll: 0.5, stunned: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caster := newUser(t, "hero", 0, model.ResourceMana, 0)
			target := newUser(t, "ogre", 1, model.ResourceMana, 0)
			r, err := target.Combatant().ResistanceStat(model.StatusStun)
			require.NoError(t, err)
			r.SetBase(tt.resistance)

			// Hit roll first, then the resistance roll.
			_, err = stomp.Use(caster, target, rolls(0.1, tt.roll))
			require.NoError(t, err)
			assert.Equal(t, tt.stunned, target.Combatant().IsStunned())
		})
	}
}

func TestUse_ResourceTrade(t *testing.T) {
	caster := newUser(t, "hero", 0, model.ResourceMana, 5)
	target := newUser(t, "shaman", 1, model.ResourceMana, 8)

	s := mustBuild(t, Definition{
		Name:       "Siphon",
		ActionCost: 1,
		Effects:    []EffectSpec{{Type: "ResourceTrade", Params: map[string]string{"drain": "10", "gain": "2"}}},
	})

	res, err := s.Use(caster, target, rolls(0.1))
	require.NoError(t, err)
	assert.InDelta(t, 0.0, target.Combatant().CurrentResource(), 1e-9)
	assert.InDelta(t, 15.0, caster.Combatant().CurrentResource(), 1e-9)
	assert.InDelta(t, 10.0, res.Resource, 1e-9)
}

func TestUse_ToggleInnate(t *testing.T) {
	caster := newUser(t, "hero", 0, model.ResourceMana, 0)
	target := newUser(t, "golem", 1, model.ResourceMana, 0)
	target.Combatant().Passives().AddInnate(effect.Innate{Name: "NoResourceRegen", Tag: effect.TagNoResourceRegen})

	s := mustBuild(t, Definition{
		Name:       "Seal",
		ActionCost: 1,
		Effects:    []EffectSpec{{Type: "ToggleInnate", Params: map[string]string{"name": "NoResourceRegen", "enabled": "true"}}},
	})
	_, err := s.Use(caster, target, rolls(0.1))
	require.NoError(t, err)
	assert.True(t, target.Combatant().Passives().HasInnate("NoResourceRegen"))
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{name: "no name", def: Definition{}},
		{name: "unknown effect", def: Definition{Name: "x", Effects: []EffectSpec{{Type: "Teleport"}}}},
		{name: "unknown stat", def: Definition{Name: "x", Effects: []EffectSpec{{Type: "StatBuff", Params: map[string]string{"stat": "Luck"}}}}},
		{name: "bad number", def: Definition{Name: "x", Effects: []EffectSpec{{Type: "DealDamage", Params: map[string]string{"power": "lots"}}}}},
		{name: "bad target", def: Definition{Name: "x", Target: "everyone"}},
		{name: "zero shield", def: Definition{Name: "x", Effects: []EffectSpec{{Type: "Shield"}}}},
		{name: "negative cost", def: Definition{Name: "x", ActionCost: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.def)
			assert.Error(t, err)
		})
	}
}

func TestBuild_UnknownStatIsUnsupported(t *testing.T) {
	_, err := Build(Definition{Name: "x", Effects: []EffectSpec{{Type: "StatBuff", Params: map[string]string{"stat": "Luck"}}}})
	assert.ErrorIs(t, err, model.ErrUnsupportedStat)
}

func TestBook(t *testing.T) {
	b, err := BuildBook([]Definition{strike(), {Name: "Guard", Target: "self"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Guard", "Strike"}, b.Names())

	_, err = b.Get("Fireball")
	assert.ErrorIs(t, err, ErrUnknownSkill)
	assert.ErrorIs(t, b.Add(&Skill{Name: "Guard"}), ErrDuplicateSkill)

	c, err := model.NewCombatant(model.Spec{Name: "hero", Skills: []string{"Strike"}})
	require.NoError(t, err)

	skills, err := b.SkillsOf(c)
	require.NoError(t, err)
	require.Len(t, skills, 1)

	_, err = b.Slot(c, "Guard")
	assert.ErrorIs(t, err, ErrSkillNotKnown)
	s, err := b.Slot(c, "Strike")
	require.NoError(t, err)
	assert.Equal(t, "Strike", s.Name)
}

func TestHitChance(t *testing.T) {
	a := newUser(t, "a", 0, model.ResourceMana, 0).Combatant()
	d := newUser(t, "d", 1, model.ResourceMana, 0).Combatant()
	assert.InDelta(t, 0.95, HitChance(a, d), 1e-9)

	require.NoError(t, d.AddModifier(model.StatDodge, statAdd(60)))
	assert.InDelta(t, 0.40, HitChance(a, d), 1e-9)

	require.NoError(t, d.AddModifier(model.StatDodge, statAdd(500)))
	assert.InDelta(t, 0.05, HitChance(a, d), 1e-9)
}

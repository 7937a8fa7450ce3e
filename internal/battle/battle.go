// Package battle sequences combatants through turns.
//
// A Battle is driven synchronously by its owner. AI participants are
// resolved inline; when a human participant's turn begins the battle
// returns control and waits for UseSkill, TryEscape or CompletePlayerMove.
// Team 0 is the player side.
package battle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/looplab/fsm"

	"github.com/udisondev/dungeonrpg/internal/ai"
	"github.com/udisondev/dungeonrpg/internal/model"
	"github.com/udisondev/dungeonrpg/internal/skill"
)

var (
	ErrBattleOver           = errors.New("battle is over")
	ErrNotYourTurn          = errors.New("not your turn")
	ErrNoActiveTurn         = errors.New("no human turn is active")
	ErrEscapeDenied         = errors.New("escape is not allowed in this battle")
	ErrNotStarted           = errors.New("battle not started")
	ErrAlreadyStarted       = errors.New("battle already started")
	ErrUnknownParticipant   = errors.New("not a participant of this battle")
	ErrDuplicateParticipant = errors.New("participant joined twice")
	ErrNoPlayerSide         = errors.New("battle has no player side")
	ErrNoOpponents          = errors.New("battle has no opponents")
	ErrRoundLimit           = errors.New("battle exceeded its round limit")
)

// PlayerTeam is the team whose survival decides victory or defeat.
const PlayerTeam = 0

// maxAIActions caps the skills one AI turn may resolve.
const maxAIActions = 16

// Options configure a battle. Zero values pick the defaults.
type Options struct {
	ID        int64
	CanEscape bool
	Escape    EscapePolicy
	Rand      model.Rand
	Recorder  Recorder
	// MaxRounds stops advancing once that many rounds completed. Zero means
	// no limit.
	MaxRounds int
	// Controller picks the AI for a participant. Defaults to ai.ForCombatant.
	Controller func(*model.BattleUser) ai.Controller
	Now        func() time.Time
}

// Battle owns its participants for its whole lifetime. Not safe for
// concurrent use.
type Battle struct {
	id        int64
	users     []*model.BattleUser
	book      *skill.Book
	canEscape bool
	escape    EscapePolicy
	rng       model.Rand
	recorder  Recorder
	maxRounds int
	now       func() time.Time

	controllers map[*model.BattleUser]ai.Controller
	observer    func(*skill.Result)

	state     *fsm.FSM
	started   bool
	turnCount int
	acted     map[*model.BattleUser]bool
	current   *model.BattleUser

	startedAt  time.Time
	finishedAt time.Time
}

// New validates the participants and prepares a battle. Participants keep
// their join order for tie-breaking. Call Start to begin the first round.
func New(users []*model.BattleUser, book *skill.Book, opts Options) (*Battle, error) {
	seen := make(map[*model.BattleUser]bool, len(users))
	var player, opponents bool
	for _, u := range users {
		if seen[u] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParticipant, u.Name())
		}
		seen[u] = true
		if u.Team() == PlayerTeam {
			player = true
		} else {
			opponents = true
		}
	}
	if !player {
		return nil, ErrNoPlayerSide
	}
	if !opponents {
		return nil, ErrNoOpponents
	}
	if book == nil {
		book = skill.NewBook()
	}

	b := &Battle{
		id:          opts.ID,
		users:       append([]*model.BattleUser(nil), users...),
		book:        book,
		canEscape:   opts.CanEscape,
		escape:      opts.Escape,
		rng:         opts.Rand,
		recorder:    opts.Recorder,
		maxRounds:   opts.MaxRounds,
		now:         opts.Now,
		controllers: make(map[*model.BattleUser]ai.Controller, len(users)),
		acted:       make(map[*model.BattleUser]bool, len(users)),
		state:       newLifecycle(),
	}
	if b.escape == nil {
		b.escape = DefaultEscapePolicy()
	}
	if b.rng == nil {
		b.rng = model.DefaultRand
	}
	if b.now == nil {
		b.now = time.Now
	}
	pick := opts.Controller
	if pick == nil {
		pick = func(u *model.BattleUser) ai.Controller { return ai.ForCombatant(u.Combatant()) }
	}
	for _, u := range b.users {
		u.Combatant().SetRand(b.rng)
		if !u.IsHuman() {
			b.controllers[u] = pick(u)
		}
	}
	return b, nil
}

// SetObserver registers a callback for every resolved skill use.
func (b *Battle) SetObserver(fn func(*skill.Result)) {
	b.observer = fn
}

// Start runs turns until a human participant must act or the battle ends.
func (b *Battle) Start(ctx context.Context) error {
	if b.started {
		return ErrAlreadyStarted
	}
	b.started = true
	b.startedAt = b.now()
	slog.Info("battle started",
		"battle", b.id,
		"participants", len(b.users),
		"can_escape", b.canEscape)

	if b.resolveOutcome(ctx) {
		return nil
	}
	return b.advance(ctx)
}

func (b *Battle) ID() int64                         { return b.id }
func (b *Battle) CanEscape() bool                   { return b.canEscape }
func (b *Battle) Book() *skill.Book                 { return b.book }
func (b *Battle) Outcome() Outcome                  { return Outcome(b.state.Current()) }
func (b *Battle) IsOver() bool                      { return b.Outcome() != OutcomeActive }
func (b *Battle) Participants() []*model.BattleUser { return append([]*model.BattleUser(nil), b.users...) }

// TurnCount is the number of completed rounds.
func (b *Battle) TurnCount() int { return b.turnCount }

// Current returns the participant whose turn is in progress, or nil.
func (b *Battle) Current() *model.BattleUser { return b.current }

// HasActed reports whether u already took its turn this round.
func (b *Battle) HasActed(u *model.BattleUser) bool { return b.acted[u] }

// Opponents returns the participants not on u's team.
func (b *Battle) Opponents(u *model.BattleUser) []*model.BattleUser {
	var out []*model.BattleUser
	for _, o := range b.users {
		if o.Team() != u.Team() {
			out = append(out, o)
		}
	}
	return out
}

// Allies returns the participants on u's team, u included.
func (b *Battle) Allies(u *model.BattleUser) []*model.BattleUser {
	var out []*model.BattleUser
	for _, o := range b.users {
		if o.Team() == u.Team() {
			out = append(out, o)
		}
	}
	return out
}

func (b *Battle) isParticipant(u *model.BattleUser) bool {
	for _, o := range b.users {
		if o == u {
			return true
		}
	}
	return false
}

// humanTurn returns the current participant if a human turn is open.
func (b *Battle) humanTurn() (*model.BattleUser, error) {
	if !b.started {
		return nil, ErrNotStarted
	}
	if b.IsOver() {
		return nil, ErrBattleOver
	}
	if b.current == nil || !b.current.IsHuman() {
		return nil, ErrNoActiveTurn
	}
	return b.current, nil
}

// UseSkill resolves one of the current human's skills on target. The turn
// stays open; CompletePlayerMove closes it.
func (b *Battle) UseSkill(ctx context.Context, name string, target *model.BattleUser) (*skill.Result, error) {
	u, err := b.humanTurn()
	if err != nil {
		return nil, err
	}
	s, err := b.book.Slot(u.Combatant(), name)
	if err != nil {
		return nil, err
	}
	if target != nil && !b.isParticipant(target) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownParticipant, target.Name())
	}

	res, err := s.Use(u, target, b.rng)
	if err != nil {
		slog.Warn("skill rejected", "battle", b.id, "caster", u.Name(), "skill", name, "err", err)
		return nil, err
	}
	b.observe(res)
	b.resolveOutcome(ctx)
	return res, nil
}

// CompletePlayerMove signals that the human has finished acting for now.
// The turn ends when endTurn is set or no known skill is affordable any
// more; otherwise the same participant keeps the turn.
func (b *Battle) CompletePlayerMove(ctx context.Context, endTurn bool) error {
	u, err := b.humanTurn()
	if err != nil {
		return err
	}
	if !endTurn && b.canAffordAny(u) {
		return nil
	}
	b.finishTurn(u)
	return b.advance(ctx)
}

// TryEscape attempts to flee for u, which must hold the current human turn.
// In a battle that forbids escape it fails with ErrEscapeDenied and nothing
// is consumed. A failed roll consumes the turn.
func (b *Battle) TryEscape(ctx context.Context, u *model.BattleUser) (bool, error) {
	if !b.started {
		return false, ErrNotStarted
	}
	if b.IsOver() {
		return false, ErrBattleOver
	}
	if !b.canEscape {
		return false, ErrEscapeDenied
	}
	if !b.isParticipant(u) {
		return false, fmt.Errorf("%w: %s", ErrUnknownParticipant, u.Name())
	}
	if b.current != u {
		return false, fmt.Errorf("%w: %s", ErrNotYourTurn, u.Name())
	}

	chance := b.escape.Chance(u, b.Opponents(u))
	roll := b.rng.Float64()
	if roll < chance {
		slog.Info("escape succeeded", "battle", b.id, "combatant", u.Name(), "chance", chance)
		b.current = nil
		b.transition(ctx, eventEscape)
		return true, nil
	}

	slog.Debug("escape failed", "battle", b.id, "combatant", u.Name(), "chance", chance, "roll", roll)
	b.finishTurn(u)
	return false, b.advance(ctx)
}

// advance runs turns until a human must act or the battle ends.
func (b *Battle) advance(ctx context.Context) error {
	for !b.IsOver() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if b.current != nil {
			return nil
		}

		next := b.nextActor()
		if next == nil {
			b.endRound(ctx)
			if b.maxRounds > 0 && b.turnCount >= b.maxRounds && !b.IsOver() {
				return fmt.Errorf("%w: %d", ErrRoundLimit, b.maxRounds)
			}
			continue
		}

		b.beginTurn(next)
		if next.Combatant().IsStunned() {
			slog.Debug("turn skipped", "battle", b.id, "combatant", next.Name(), "reason", "stunned")
			b.finishTurn(next)
			continue
		}
		if next.IsHuman() {
			return nil
		}
		b.runAI(ctx, next)
		if b.current == next {
			b.finishTurn(next)
		}
	}
	return nil
}

// nextActor is the first living participant in live turn order that has
// not acted this round.
func (b *Battle) nextActor() *model.BattleUser {
	for _, u := range TurnOrder(b.users) {
		if u.Combatant().IsAlive() && !b.acted[u] {
			return u
		}
	}
	return nil
}

func (b *Battle) beginTurn(u *model.BattleUser) {
	b.current = u
	u.RefillActionPoints()
	c := u.Combatant()
	c.RegenResource(c.ResourceRegen())
	slog.Debug("turn granted",
		"battle", b.id,
		"round", b.turnCount+1,
		"combatant", u.Name(),
		"ap", u.CurrentActionPoints(),
		"resource", c.ResourceDisplay())
}

func (b *Battle) finishTurn(u *model.BattleUser) {
	b.acted[u] = true
	u.ClearActionPoints()
	if b.current == u {
		b.current = nil
	}
}

func (b *Battle) runAI(ctx context.Context, u *model.BattleUser) {
	ctrl := b.controllers[u]
	if ctrl == nil {
		return
	}
	for range maxAIActions {
		act := ctrl.ChooseAction(u, b, b.book)
		if act.EndTurn() {
			return
		}
		res, err := act.Skill.Use(u, act.Target, b.rng)
		if err != nil {
			slog.Warn("ai skill rejected", "battle", b.id, "combatant", u.Name(), "skill", act.Skill.Name, "err", err)
			return
		}
		b.observe(res)
		if b.resolveOutcome(ctx) {
			return
		}
	}
}

// endRound applies status damage, decays modifiers once per participant and
// starts the next round.
func (b *Battle) endRound(ctx context.Context) {
	for _, u := range b.users {
		c := u.Combatant()
		if !c.IsAlive() {
			continue
		}
		if dealt := c.ApplyStatusDamage(); dealt > 0 {
			slog.Debug("status damage", "battle", b.id, "combatant", u.Name(), "damage", dealt, "hp", c.CurrentHealth())
		}
	}
	for _, u := range b.users {
		u.HandleModifiers()
	}
	b.turnCount++
	clear(b.acted)
	b.resolveOutcome(ctx)
}

// canAffordAny reports whether u can still pay for one of its skills.
func (b *Battle) canAffordAny(u *model.BattleUser) bool {
	skills, err := b.book.SkillsOf(u.Combatant())
	if err != nil {
		return false
	}
	for _, s := range skills {
		if s.CanAfford(u) == nil {
			return true
		}
	}
	return false
}

func (b *Battle) observe(res *skill.Result) {
	slog.Debug("skill resolved",
		"battle", b.id,
		"skill", res.Skill,
		"caster", res.Caster,
		"target", res.Target,
		"missed", res.Missed,
		"crit", res.Crit,
		"damage", res.Damage,
		"healed", res.Healed)
	if b.observer != nil {
		b.observer(res)
	}
}

// resolveOutcome moves the battle to a terminal state once a side is wiped
// out. The player side is checked first, so a mutual wipe is a defeat.
func (b *Battle) resolveOutcome(ctx context.Context) bool {
	if b.IsOver() {
		return true
	}
	if !b.teamAlive(func(team int) bool { return team == PlayerTeam }) {
		b.transition(ctx, eventLose)
		return true
	}
	if !b.teamAlive(func(team int) bool { return team != PlayerTeam }) {
		b.transition(ctx, eventWin)
		return true
	}
	return false
}

func (b *Battle) teamAlive(match func(team int) bool) bool {
	for _, u := range b.users {
		if match(u.Team()) && u.Combatant().IsAlive() {
			return true
		}
	}
	return false
}

func (b *Battle) transition(ctx context.Context, event string) {
	if err := b.state.Event(ctx, event); err != nil {
		slog.Warn("battle transition failed", "battle", b.id, "event", event, "err", err)
		return
	}
	if b.current != nil {
		b.current.ClearActionPoints()
		b.current = nil
	}
	b.finishedAt = b.now()
	summary := b.Summary()
	slog.Info("battle finished",
		"battle", b.id,
		"outcome", summary.Outcome,
		"rounds", summary.Rounds,
		"duration", summary.Duration())

	if b.recorder != nil {
		if err := b.recorder.RecordBattle(ctx, summary); err != nil {
			slog.Warn("record battle failed", "battle", b.id, "err", err)
		}
	}
}

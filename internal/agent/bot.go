package agent

import (
	"context"

	"rpg-core/internal/core/types/enums"
	"rpg-core/internal/domain"
	"rpg-core/internal/engine"
	"rpg-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Decision - что бот сделал за тик.
type Decision uint8

const (
	DecisionWait Decision = iota
	DecisionHeal
	DecisionAbility
	DecisionAttack
	DecisionCollect
	DecisionExplore
)

var decisionNames = map[Decision]string{
	DecisionWait:    "wait",
	DecisionHeal:    "heal",
	DecisionAbility: "ability",
	DecisionAttack:  "attack",
	DecisionCollect: "collect",
	DecisionExplore: "explore",
}

func (d Decision) String() string {
	return decisionNames[d]
}

// Параметры бота по умолчанию
const (
	DefaultSightRadius = 8.0
	DefaultLowHealth   = 40.0
)

// Bot представляет собой "Игрока-компьютера" (Headless Agent).
// Он управляет игроком через те же команды Game, что и живой контроллер,
// и не трогает системы напрямую.
//
// Приоритеты makeMove:
//  1. Здоровья меньше LowHealth процентов -> зелье с панели, иначе лечащая способность.
//  2. Враг в радиусе SightRadius -> способность по нему, иначе атака оружием.
//  3. Доступный пикап рядом -> идти к нему.
//  4. Иначе -> идти к ближайшему порталу.
type Bot struct {
	SightRadius float64
	LowHealth   float64
	PotionSlot  int

	last Decision
}

func NewBot() *Bot {
	return &Bot{SightRadius: DefaultSightRadius, LowHealth: DefaultLowHealth}
}

// Act принимает решение за игрока на текущем тике.
func (b *Bot) Act(ctx context.Context, g *engine.Game) Decision {
	d := b.makeMove(ctx, g)
	if d != b.last {
		logger.Log.WithFields(logrus.Fields{
			"component": "bot",
			"from":      b.last.String(),
			"to":        d.String(),
			"tick":      g.Ticks,
		}).Debug("Bot decision changed")
		b.last = d
	}
	return d
}

func (b *Bot) makeMove(ctx context.Context, g *engine.Game) Decision {
	player := g.Player()
	// Мертвые не ходят, во время перехода игрок не управляется
	if player == nil || !player.IsAlive() || g.InTransition() {
		return DecisionWait
	}

	if player.Health != nil && player.Health.PercentRemaining() < b.LowHealth {
		if g.UseActionSlot(ctx, b.PotionSlot, "") {
			return DecisionHeal
		}
		if b.castOnSelf(g, player) {
			return DecisionHeal
		}
	}

	if enemy := b.nearest(g.World, player, b.SightRadius, isEnemy); enemy != nil {
		if b.castAt(g, player, enemy) {
			return DecisionAbility
		}
		if player.Combat != nil && player.Combat.TargetID == enemy.ID {
			return DecisionAttack
		}
		if g.AttackWithPlayer(enemy.ID) {
			return DecisionAttack
		}
	}

	collectable := func(e *domain.Entity) bool { return wantsPickup(g.World, player, e) }
	if pickup := b.nearest(g.World, player, b.SightRadius, collectable); pickup != nil {
		if b.walkTo(g, player, pickup.Pos) {
			return DecisionCollect
		}
	}

	if portal := nearestPortal(g.World, player); portal != nil {
		if b.walkTo(g, player, portal.Pos) {
			return DecisionExplore
		}
	}
	return DecisionWait
}

// walkTo не перезапускает движение к той же точке.
func (b *Bot) walkTo(g *engine.Game, player *domain.Entity, dest domain.Vec3) bool {
	if player.Mover != nil && player.Mover.Moving && player.Mover.Destination == dest {
		return true
	}
	return g.MovePlayer(dest)
}

func (b *Bot) castOnSelf(g *engine.Game, player *domain.Entity) bool {
	if player.Abilities == nil {
		return false
	}
	for i := 0; i < player.Abilities.Size(); i++ {
		a := player.Abilities.Ability(i)
		if a == nil || a.Ability == nil || !a.Ability.OnSelf || a.Ability.Heal <= 0 {
			continue
		}
		if g.UseAbility(i, "") {
			return true
		}
	}
	return false
}

func (b *Bot) castAt(g *engine.Game, player, target *domain.Entity) bool {
	if player.Abilities == nil {
		return false
	}
	for i := 0; i < player.Abilities.Size(); i++ {
		a := player.Abilities.Ability(i)
		if a == nil || a.Ability == nil || a.Ability.OnSelf {
			continue
		}
		if g.UseAbility(i, target.ID) {
			return true
		}
	}
	return false
}

// nearest - ближайшая сущность в радиусе, прошедшая фильтр.
func (b *Bot) nearest(w *domain.GameWorld, player *domain.Entity, radius float64, keep func(*domain.Entity) bool) *domain.Entity {
	var best *domain.Entity
	bestDist := 0.0
	for _, e := range w.FindWithinRadius(player.Pos, radius) {
		if e == player || !keep(e) {
			continue
		}
		if d := player.Pos.DistanceTo(e.Pos); best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

func isEnemy(e *domain.Entity) bool {
	return e.Type == enums.EntityTypeEnemy && e.IsAlive()
}

// wantsPickup: пикап доступен и игроку есть куда его положить.
func wantsPickup(w *domain.GameWorld, player, e *domain.Entity) bool {
	p := e.Pickup
	if p == nil || !p.IsAvailable(w.Time) {
		return false
	}
	switch p.Kind {
	case enums.PickupHealth:
		return player.Health != nil && player.Health.PercentRemaining() < 100
	case enums.PickupItem:
		return p.Item != nil && player.Inventory != nil && player.Inventory.HasSpaceForN(p.Item, p.Number)
	default:
		return true
	}
}

func nearestPortal(w *domain.GameWorld, player *domain.Entity) *domain.Entity {
	var best *domain.Entity
	bestDist := 0.0
	for _, e := range w.Entities() {
		if e.Portal == nil {
			continue
		}
		if d := player.Pos.DistanceTo(e.Pos); best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

package engine

import (
	"context"

	"rpg-core/internal/catalog"
	"rpg-core/internal/domain"
	"rpg-core/internal/infrastructure/storage"
	"rpg-core/internal/scripting"
	"rpg-core/internal/systems"
	"rpg-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Game - активная сцена и всё, что живёт между сценами: каталог,
// сохранения, скрипты эффектов. Работает в одной горутине игрового цикла.
type Game struct {
	Config  Config
	World   *domain.GameWorld
	Effects *scripting.Engine

	catalog    *catalog.Catalog
	store      storage.Store
	transition *transition

	// Ticks - число тиков с запуска
	Ticks uint64
}

func NewGame(cfg Config, cat *catalog.Catalog, store storage.Store) *Game {
	return &Game{
		Config:  cfg,
		Effects: scripting.NewEngine(cat.Script),
		catalog: cat,
		store:   store,
	}
}

// Game отдаёт шаблоны текущего каталога: перезагрузка подхватывается без пересборки мира.
var (
	_ domain.ItemResolver = (*Game)(nil)
	_ systems.LootSource  = (*Game)(nil)
)

func (g *Game) Item(id string) (*domain.Item, bool) { return g.catalog.Item(id) }
func (g *Game) Weapon(id string) (*domain.WeaponConfig, bool) { return g.catalog.Weapon(id) }
func (g *Game) LootTable(id string) (*domain.LootTable, bool) { return g.catalog.LootTable(id) }
func (g *Game) Catalog() *catalog.Catalog { return g.catalog }

// SetCatalog подменяет каталог. Живые сущности сохраняют свои шаблоны,
// новые (дроп, следующая сцена) берутся уже из нового.
func (g *Game) SetCatalog(cat *catalog.Catalog) {
	g.catalog = cat
	g.Effects.SetSource(cat.Script)
	logger.Log.WithFields(logrus.Fields{
		"component": "game",
		"scenes":    len(cat.SceneIndexes()),
	}).Info("Catalog swapped")
}

// Tick - один шаг симуляции: движение, бой, AI, регенерация, перезарядка,
// снаряды, подбор, порталы.
func (g *Game) Tick(ctx context.Context, dt float64) {
	w := g.World
	if w == nil || dt <= 0 {
		return
	}
	w.Time += dt
	entities := w.Entities()

	for _, e := range entities {
		systems.UpdateMovement(w, e, dt)
	}
	for _, e := range entities {
		systems.UpdateCombat(w, e, dt)
	}
	for _, e := range entities {
		if e.ID != w.PlayerID {
			systems.UpdateAI(w, e, dt)
		}
	}
	for _, e := range entities {
		if e.Magic != nil {
			e.Magic.Tick(dt)
		}
		systems.UpdateAbilities(e, dt)
	}
	systems.UpdateProjectiles(w, dt)
	systems.UpdatePickups(w)

	if g.transition == nil {
		g.checkPortals()
	}
	g.updateTransition(ctx, dt)
	g.Ticks++
}

// Player - сущность игрока активной сцены.
func (g *Game) Player() *domain.Entity {
	if g.World == nil {
		return nil
	}
	return g.World.Player()
}

// InTransition - идёт переход между сценами, игрок не управляется.
func (g *Game) InTransition() bool {
	return g.transition != nil
}

// controllable - игрок, которому можно отдавать команды.
func (g *Game) controllable() *domain.Entity {
	if g.InTransition() {
		return nil
	}
	player := g.Player()
	if player == nil || !player.IsAlive() {
		return nil
	}
	return player
}

// MovePlayer отправляет игрока в точку, если туда есть путь.
func (g *Game) MovePlayer(dest domain.Vec3) bool {
	player := g.controllable()
	if player == nil || !systems.CanMoveTo(g.World, player, dest) {
		return false
	}
	systems.StartMoveAction(player, dest)
	return true
}

// AttackWithPlayer назначает игроку цель атаки.
func (g *Game) AttackWithPlayer(targetID string) bool {
	player := g.controllable()
	if player == nil {
		return false
	}
	target := g.World.GetEntity(targetID)
	if !systems.CanAttack(g.World, player, target) {
		return false
	}
	systems.Attack(player, target)
	return true
}

// UseActionSlot использует слот панели действий игрока.
func (g *Game) UseActionSlot(ctx context.Context, index int, targetID string) bool {
	player := g.controllable()
	if player == nil {
		return false
	}
	return systems.UseActionSlot(ctx, g.World, player, index, targetID, g.Effects)
}

// UseAbility применяет способность из слота игрока.
func (g *Game) UseAbility(index int, targetID string) bool {
	player := g.controllable()
	if player == nil {
		return false
	}
	return systems.UseAbility(g.World, player, index, targetID)
}

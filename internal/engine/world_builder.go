package engine

import (
	"errors"
	"fmt"
	"math/rand"

	"rpg-core/internal/catalog"
	"rpg-core/internal/core/types/enums"
	"rpg-core/internal/domain"
	"rpg-core/internal/spatial"
	"rpg-core/internal/systems"
	"rpg-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Игрок один на все сцены: его ID - ключ записи в сохранении.
const (
	PlayerID     = "player"
	PlayerPrefab = "player"
)

// DefaultPortalRadius - радиус срабатывания портала без явного значения
const DefaultPortalRadius = 1.0

var ErrUnknownScene = errors.New("engine: unknown scene")

// BuildScene собирает мир сцены из каталога: препятствия, игрок, сущности, порталы.
// Уровни и пулы не инициализированы: это делает ResolveInitial после восстановления.
func (g *Game) BuildScene(index int) (*domain.GameWorld, error) {
	scene, ok := g.catalog.Scene(index)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScene, index)
	}

	rng := rand.New(rand.NewSource(g.Config.SceneSeed(index)))
	w := domain.NewGameWorld(index, spatial.NewIndex(), rng)

	for _, o := range scene.Obstacles {
		w.Obstacles = append(w.Obstacles, domain.Obstacle{Center: o.Center.Vec3(), Radius: o.Radius})
	}

	player, err := g.spawn(w, PlayerPrefab, PlayerID, scene.PlayerSpawn.Vec3(), nil, false)
	if err != nil {
		return nil, fmt.Errorf("scene %d: player: %w", index, err)
	}
	w.PlayerID = player.ID

	for _, spec := range scene.Entities {
		waypoints := make([]domain.Vec3, 0, len(spec.Waypoints))
		for _, wp := range spec.Waypoints {
			waypoints = append(waypoints, wp.Vec3())
		}
		if _, err := g.spawn(w, spec.Prefab, spec.ID, spec.Position.Vec3(), waypoints, spec.Spawner); err != nil {
			return nil, fmt.Errorf("scene %d: entity %s: %w", index, spec.ID, err)
		}
	}

	for _, p := range scene.Portals {
		w.RegisterEntity(newPortal(p))
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "world_builder",
		"scene":     index,
		"name":      scene.Name,
		"entities":  len(w.Entities()),
		"obstacles": len(w.Obstacles),
	}).Info("Scene built")
	return w, nil
}

// spawn создаёт сущность из префаба, вешает мировые хуки и регистрирует её.
func (g *Game) spawn(w *domain.GameWorld, prefabID, id string, pos domain.Vec3, waypoints []domain.Vec3, spawner bool) (*domain.Entity, error) {
	spec, ok := g.catalog.Prefab(prefabID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalog.ErrUnknownPrefab, prefabID)
	}
	e, err := newEntity(g.catalog, spec, id, pos, waypoints)
	if err != nil {
		return nil, err
	}
	if e.Pickup != nil {
		e.Pickup.Spawner = spawner
	}
	e.Animator = newLogAnimator(e.ID)
	g.attachHooks(w, e)
	w.RegisterEntity(e)
	return e, nil
}

// attachHooks - реакции, которым нужен мир: агрессия от урона и лут при смерти.
func (g *Game) attachHooks(w *domain.GameWorld, e *domain.Entity) {
	if e.Health == nil {
		return
	}
	if e.AI != nil {
		e.Health.OnDamaged = append(e.Health.OnDamaged, func(string, float64) {
			systems.Aggravate(w, e)
		})
	}
	if e.Dropper != nil {
		e.Health.OnDie = append(e.Health.OnDie, func() {
			systems.RandomDrop(w, e, g)
		})
	}
	if e.Type == enums.EntityTypePlayer {
		e.Health.OnDie = append(e.Health.OnDie, func() {
			logger.Log.WithFields(logrus.Fields{
				"component": "world_builder",
				"entity_id": e.ID,
				"scene":     w.SceneIndex,
			}).Warn("Player died")
		})
	}
}

// newEntity собирает компоненты по префабу. Wire вызывается до заполнения
// экипировки, чтобы бой получил оружие через OnEquipmentUpdated.
func newEntity(cat *catalog.Catalog, spec *catalog.PrefabSpec, id string, pos domain.Vec3, waypoints []domain.Vec3) (*domain.Entity, error) {
	e := domain.NewEntity(id, enums.ParseEntityType(spec.Type), spec.Name)
	e.PrefabID = spec.ID
	e.Pos = pos
	if spec.Height > 0 {
		e.Height = spec.Height
	}
	if spec.Radius > 0 {
		e.Radius = spec.Radius
	}

	if spec.Stats != nil {
		e.Stats = domain.NewBaseStats(enums.ParseCharacterClass(spec.Stats.Class), spec.Stats.Level, cat.Progression(), spec.Stats.UseModifiers)
	}
	if spec.Experience {
		e.Experience = domain.NewExperience()
	}
	if spec.Health != nil {
		e.Health = domain.NewHealth()
		if spec.Health.LevelUpBoost != nil {
			e.Health.LevelUpBoost = *spec.Health.LevelUpBoost
		}
	}
	if spec.Magic != nil {
		e.Magic = domain.NewMagic()
		if spec.Magic.RegenInterval > 0 {
			e.Magic.RegenInterval = spec.Magic.RegenInterval
		}
	}
	if spec.Combat != nil {
		combat, err := newCombat(cat, spec.Combat)
		if err != nil {
			return nil, err
		}
		e.Combat = combat
	}
	if spec.AI != nil {
		e.AI = newAI(spec.AI, pos, waypoints)
	}
	if spec.Mover != nil {
		e.Mover = domain.NewMover(spec.Mover.Speed)
		if spec.Mover.MaxPathLength > 0 {
			e.Mover.MaxPathLength = spec.Mover.MaxPathLength
		}
	}
	if spec.Inventory != nil {
		e.Inventory = domain.NewInventory(spec.Inventory.Size)
	}
	if spec.Equipment != nil || spec.Inventory != nil {
		e.Equipment = domain.NewEquipment()
	}
	if spec.ActionBar != nil || spec.Inventory != nil {
		e.ActionStore = domain.NewActionStore()
	}
	if spec.Abilities != nil {
		size := spec.Abilities.Size
		for _, s := range spec.Abilities.Slots {
			size = max(size, s.Index+1)
		}
		e.Abilities = domain.NewAbilities(size)
	}
	if spec.Dropper != nil {
		e.Dropper = domain.NewItemDropper(spec.Dropper.LootTable, spec.Dropper.DropDistance)
	}
	if spec.Pickup != nil {
		pickup, err := newPickup(cat, spec.Pickup)
		if err != nil {
			return nil, err
		}
		e.Pickup = pickup
		e.Radius = pickup.Radius
	}

	e.Wire()

	if err := populate(cat, spec, e); err != nil {
		return nil, fmt.Errorf("prefab %s: %w", spec.ID, err)
	}
	return e, nil
}

func newCombat(cat *catalog.Catalog, spec *catalog.CombatSpec) (*domain.CombatComponent, error) {
	var weapon *domain.WeaponConfig
	if spec.Weapon != "" {
		w, ok := cat.Weapon(spec.Weapon)
		if !ok {
			return nil, fmt.Errorf("%w: %s", catalog.ErrUnknownWeapon, spec.Weapon)
		}
		weapon = w
	}
	c := domain.NewCombatComponent(weapon)
	if spec.TimeBetweenAttacks > 0 {
		c.TimeBetweenAttacks = spec.TimeBetweenAttacks
	}
	return c, nil
}

func newAI(spec *catalog.AISpec, start domain.Vec3, waypoints []domain.Vec3) *domain.AIComponent {
	ai := domain.NewAIComponent(start, waypoints)
	override(&ai.ChaseDistance, spec.ChaseDistance)
	override(&ai.ChaseWaitTime, spec.ChaseWaitTime)
	override(&ai.WaypointStopDistance, spec.WaypointStopDistance)
	override(&ai.AggroRadius, spec.AggroRadius)
	override(&ai.WaypointDwellTime, spec.WaypointDwellTime)
	override(&ai.AggroDuration, spec.AggroDuration)
	return ai
}

// override: ноль в шаблоне - значение по умолчанию
func override(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

func newPickup(cat *catalog.Catalog, spec *catalog.PickupSpec) (*domain.PickupComponent, error) {
	var item *domain.Item
	if spec.Item != "" {
		it, ok := cat.Item(spec.Item)
		if !ok {
			return nil, fmt.Errorf("%w: %s", catalog.ErrUnknownItem, spec.Item)
		}
		item = it
	}
	p := domain.NewPickup(enums.ParsePickupKind(spec.Kind), item, spec.Number)
	if spec.Heal != nil {
		p.HealAmount = *spec.Heal
	}
	if spec.RespawnTime != nil {
		p.RespawnTime = *spec.RespawnTime
	}
	if spec.Radius > 0 {
		p.Radius = spec.Radius
	}
	return p, nil
}

// populate раскладывает стартовые предметы префаба.
func populate(cat *catalog.Catalog, spec *catalog.PrefabSpec, e *domain.Entity) error {
	if spec.Inventory != nil {
		for _, s := range spec.Inventory.Items {
			item, err := lookupItem(cat, s.Item)
			if err != nil {
				return err
			}
			added := false
			if s.Slot != nil {
				added = e.Inventory.AddToSlot(*s.Slot, item, max(s.Number, 1))
			} else {
				added = e.Inventory.AddToFirstEmptySlot(item, max(s.Number, 1))
			}
			if !added {
				return fmt.Errorf("inventory rejected %s", s.Item)
			}
		}
	}

	for locName, itemID := range spec.Equipment {
		item, err := lookupItem(cat, itemID)
		if err != nil {
			return err
		}
		if !e.Equipment.AddItem(item, enums.ParseEquipLocation(locName)) {
			return fmt.Errorf("equipment rejected %s in %s", itemID, locName)
		}
	}

	for _, s := range spec.ActionBar {
		item, err := lookupItem(cat, s.Item)
		if err != nil {
			return err
		}
		if !e.ActionStore.AddAction(item, *s.Slot, max(s.Number, 1)) {
			return fmt.Errorf("action bar rejected %s in slot %d", s.Item, *s.Slot)
		}
	}

	if spec.Abilities != nil {
		for _, s := range spec.Abilities.Slots {
			item, err := lookupItem(cat, s.Ability)
			if err != nil {
				return err
			}
			if !e.Abilities.SetAbility(s.Index, item, s.Level, s.Active) {
				return fmt.Errorf("ability slot %d rejected %s", s.Index, s.Ability)
			}
		}
	}
	return nil
}

func lookupItem(cat *catalog.Catalog, id string) (*domain.Item, error) {
	item, ok := cat.Item(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalog.ErrUnknownItem, id)
	}
	return item, nil
}

func newPortal(spec catalog.PortalSpec) *domain.Entity {
	radius := spec.Radius
	if radius <= 0 {
		radius = DefaultPortalRadius
	}
	e := domain.NewEntity(spec.ID, enums.EntityTypePortal, spec.ID)
	e.Pos = spec.Position.Vec3()
	e.Radius = radius
	e.Portal = &domain.PortalComponent{
		Identifier:       spec.ID,
		DestinationScene: spec.DestinationScene,
		Destination:      spec.DestinationPortal,
		SpawnPoint:       spec.SpawnPoint.Vec3(),
		Radius:           radius,
	}
	return e
}

// ResolveInitial - проход инициализации после сборки и восстановления:
// уровень из опыта, пулы от максимума, оружие из экипировки.
func ResolveInitial(w *domain.GameWorld) {
	for _, e := range w.Entities() {
		if e.Stats != nil {
			e.Stats.ResolveLevel()
		}
		if e.Health != nil {
			e.Health.Initialize(statOrZero(e, enums.StatHealth))
		}
		if e.Magic != nil {
			e.Magic.Initialize(statOrZero(e, enums.StatMagic))
		}
		if e.Combat != nil && e.Equipment != nil {
			e.Combat.UpdateWeapon(e.Equipment.ItemInSlot(enums.EquipWeapon))
		}
	}
}

func statOrZero(e *domain.Entity, stat enums.StatType) float64 {
	if e.Stats == nil {
		return 0
	}
	return e.Stats.Stat(stat)
}

package systems

import (
	"math"

	"rpg-core/internal/core/types/enums"
	"rpg-core/internal/domain"
	"rpg-core/pkg/logger"
	"rpg-core/pkg/utils"

	"github.com/sirupsen/logrus"
)

// dropAttempts - сколько случайных точек пробуем, прежде чем бросить под ноги
const dropAttempts = 30

// LootSource отдаёт таблицы лута по ID (каталог).
type LootSource interface {
	LootTable(id string) (*domain.LootTable, bool)
}

// SpawnPickup создаёт в мире пикап с предметом.
func SpawnPickup(w *domain.GameWorld, item *domain.Item, number int, pos domain.Vec3) *domain.Entity {
	e := domain.NewEntity("", enums.EntityTypePickup, item.DisplayName)
	e.PrefabID = item.PickupPrefab
	e.Pos = pos
	e.Pickup = domain.NewPickup(enums.PickupItem, item, number)
	e.Radius = e.Pickup.Radius
	w.RegisterEntity(e)
	return e
}

// DropItem бросает предмет в pos и запоминает его в ItemDropper бросившего.
func DropItem(w *domain.GameWorld, dropper *domain.Entity, item *domain.Item, number int, pos domain.Vec3) *domain.Entity {
	p := SpawnPickup(w, item, number, pos)
	p.Pickup.DroppedBy = dropper.ID
	if dropper.Dropper != nil {
		dropper.Dropper.Track(p.ID, domain.DropRecord{
			ItemID:   item.ID,
			Position: pos,
			Number:   p.Pickup.Number,
			Scene:    w.SceneIndex,
		})
	}
	return p
}

// RandomDrop бросает лут по таблице дроппера с учётом уровня.
func RandomDrop(w *domain.GameWorld, e *domain.Entity, tables LootSource) []*domain.Entity {
	if e.Dropper == nil || e.Dropper.LootTableID == "" || tables == nil {
		return nil
	}
	table, ok := tables.LootTable(e.Dropper.LootTableID)
	if !ok {
		logger.Log.WithFields(logrus.Fields{
			"component":  "loot_system",
			"entity_id":  e.ID,
			"loot_table": e.Dropper.LootTableID,
		}).Error("Unknown loot table")
		return nil
	}

	drops := table.GetRandomDrops(e.Level(), w.Rng)
	out := make([]*domain.Entity, 0, len(drops))
	for _, d := range drops {
		out = append(out, DropItem(w, e, d.Item, d.Number, dropLocation(w, e)))
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "loot_system",
		"entity_id": e.ID,
		"drops":     len(out),
	}).Debug("Random loot dropped")
	return out
}

// dropLocation - случайная свободная точка на плоскости в радиусе DropDistance.
func dropLocation(w *domain.GameWorld, e *domain.Entity) domain.Vec3 {
	for i := 0; i < dropAttempts; i++ {
		angle := utils.RangeFloat(w.Rng, 0, 2*math.Pi)
		r := e.Dropper.DropDistance * math.Sqrt(w.Rng.Float64())
		p := e.Pos.Add(domain.Vec3{X: r * math.Cos(angle), Z: r * math.Sin(angle)})
		if !w.Blocked(p) {
			return p
		}
	}
	return e.Pos
}

// SpawnPendingDrops спавнит дроп, восстановленный из сохранения для активной сцены.
func SpawnPendingDrops(w *domain.GameWorld, e *domain.Entity, items domain.ItemResolver) int {
	if e.Dropper == nil {
		return 0
	}
	n := 0
	for _, rec := range e.Dropper.TakePending() {
		item, ok := items.Item(rec.ItemID)
		if !ok {
			logger.Log.WithFields(logrus.Fields{
				"component": "loot_system",
				"entity_id": e.ID,
				"item_id":   rec.ItemID,
			}).Warn("Dropped item no longer exists, skipping")
			continue
		}
		DropItem(w, e, item, rec.Number, rec.Position)
		n++
	}
	return n
}

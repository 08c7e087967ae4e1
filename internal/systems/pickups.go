package systems

import (
	"rpg-core/internal/core/types/enums"
	"rpg-core/internal/domain"
	"rpg-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// UpdatePickups: игрок подбирает всё доступное в радиусе пикапа.
func UpdatePickups(w *domain.GameWorld) {
	player := w.Player()
	if player == nil || !player.IsAlive() {
		return
	}
	for _, e := range w.Entities() {
		if e.Pickup == nil || !e.Pickup.IsAvailable(w.Time) {
			continue
		}
		if player.Pos.DistanceTo(e.Pos) > e.Pickup.Radius {
			continue
		}
		Collect(w, player, e)
	}
}

// Collect - подбор пикапа сущностью. false, если подобрать нельзя.
func Collect(w *domain.GameWorld, collector, pickup *domain.Entity) bool {
	p := pickup.Pickup
	if p == nil || !p.IsAvailable(w.Time) || !collector.IsAlive() {
		return false
	}
	if w.GetEntity(pickup.ID) != pickup {
		return false
	}

	log := logger.Log.WithFields(logrus.Fields{
		"component":    "pickup_system",
		"collector_id": collector.ID,
		"pickup_id":    pickup.ID,
		"kind":         p.Kind.String(),
	})

	switch p.Kind {
	case enums.PickupItem:
		if p.Item == nil || collector.Inventory == nil || !collector.Inventory.AddToFirstEmptySlot(p.Item, p.Number) {
			log.Debug("Pickup rejected: no space")
			return false
		}
		removePickup(w, pickup)
	case enums.PickupHealth:
		if collector.Health == nil {
			return false
		}
		collector.Health.Heal(p.HealAmount)
		p.HideFor(w.Time, p.RespawnTime)
	case enums.PickupWeapon:
		if p.Item == nil || p.Item.Weapon == nil || collector.Combat == nil {
			return false
		}
		if collector.Equipment != nil {
			collector.Equipment.AddItem(p.Item, enums.EquipWeapon)
		} else {
			collector.Combat.EquipWeapon(p.Item.Weapon)
		}
		p.HideFor(w.Time, p.RespawnTime)
	default:
		return false
	}

	log.Debug("Pickup collected")
	return true
}

// removePickup: пикап сцены помечается собранным, выброшенный - удаляется из мира.
func removePickup(w *domain.GameWorld, pickup *domain.Entity) {
	p := pickup.Pickup
	if p.Spawner {
		p.Collected = true
		return
	}
	if dropper := w.GetEntity(p.DroppedBy); dropper != nil && dropper.Dropper != nil {
		dropper.Dropper.Forget(pickup.ID)
	}
	w.UnregisterEntity(pickup.ID)
}

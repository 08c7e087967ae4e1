package domain

import "rpg-core/internal/core/types/enums"

// Значения по умолчанию для пикапов
const (
	DefaultPickupHeal        = 15.0
	DefaultPickupRespawnTime = 5.0
	DefaultPickupRadius      = 1.0
)

// PickupComponent - предмет, лежащий в мире.
type PickupComponent struct {
	Kind   enums.PickupKind
	Item   *Item
	Number int

	HealAmount  float64
	RespawnTime float64
	Radius      float64

	// HiddenUntil - время мира, до которого пикап скрыт.
	HiddenUntil float64

	// Spawner - пикап из сцены, его состояние сохраняется флагом Collected.
	Spawner   bool
	Collected bool

	// DroppedBy - ID сущности с ItemDropper, выбросившей предмет.
	DroppedBy string
}

func NewPickup(kind enums.PickupKind, item *Item, number int) *PickupComponent {
	if number < 1 {
		number = 1
	}
	return &PickupComponent{
		Kind:        kind,
		Item:        item,
		Number:      number,
		HealAmount:  DefaultPickupHeal,
		RespawnTime: DefaultPickupRespawnTime,
		Radius:      DefaultPickupRadius,
	}
}

// IsAvailable - пикап можно подобрать в момент now.
func (p *PickupComponent) IsAvailable(now float64) bool {
	return !p.Collected && now >= p.HiddenUntil
}

// HideFor прячет пикап на seconds.
func (p *PickupComponent) HideFor(now, seconds float64) {
	p.HiddenUntil = now + seconds
}

// PortalComponent - переход в другую сцену.
type PortalComponent struct {
	Identifier       string
	DestinationScene int
	Destination      string // Identifier портала в сцене назначения
	SpawnPoint       Vec3
	Radius           float64
}

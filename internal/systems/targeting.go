package systems

import (
	"rpg-core/internal/domain"
)

// EntityProvider - интерфейс для поиска сущностей (чтобы не зависеть от мира напрямую)
type EntityProvider interface {
	GetEntity(id string) *domain.Entity
}

// ValidationResult - результат проверки цели
type ValidationResult struct {
	Target  *domain.Entity
	Valid   bool
	Message string // Причина отказа, если Valid == false
}

// ValidateTarget проверяет, может ли actor действовать на targetID.
//
// Параметры:
// - rangeLimit: максимальная дистанция (дальность оружия или способности).
// - needAlive: цель должна иметь здоровье и быть живой (атаки и способности).
func ValidateTarget(actor *domain.Entity, targetID string, rangeLimit float64, needAlive bool, finder EntityProvider) ValidationResult {
	// 1. Поиск цели
	target := finder.GetEntity(targetID)
	if target == nil {
		return ValidationResult{Valid: false, Message: "target not found"}
	}

	// 2. Жива ли цель
	if needAlive && (target.Health == nil || target.Health.IsDead()) {
		return ValidationResult{Target: target, Valid: false, Message: "target is dead"}
	}

	// 3. Проверка дистанции
	if actor.Pos.DistanceTo(target.Pos) > rangeLimit {
		return ValidationResult{Target: target, Valid: false, Message: "target out of range"}
	}

	return ValidationResult{Target: target, Valid: true}
}

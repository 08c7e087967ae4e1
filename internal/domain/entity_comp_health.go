package domain

import "math"

// DefaultLevelUpBoost - процент недостающего здоровья/магии, восполняемый при левел-апе.
const DefaultLevelUpBoost = 50.0

// HealthComponent - пул здоровья с защёлкой смерти.
type HealthComponent struct {
	current  float64
	max      float64
	restored bool
	dead     bool

	LevelUpBoost float64

	// MaxSource - максимум на текущем уровне (обычно BaseStats). nil - фиксированный max.
	MaxSource func() float64
	// XPReward - сколько опыта получает убийца
	XPReward func() float64
	// AwardXP выдаёт опыт атакующему. Ставится миром при регистрации.
	AwardXP func(attackerID string, amount float64)

	// OnDeathLatch - реакция самой сущности на смерть (анимация, отмена действия, AI).
	OnDeathLatch []func()
	// OnDie - внешние наблюдатели смерти.
	OnDie []func()
	// OnDamaged - урон, после которого сущность жива.
	OnDamaged []func(attackerID string, amount float64)
}

func NewHealth() *HealthComponent {
	return &HealthComponent{LevelUpBoost: DefaultLevelUpBoost}
}

// Initialize задаёт максимум. current = max, если значение не восстановлено из сохранения.
func (h *HealthComponent) Initialize(max float64) {
	h.max = max
	if !h.restored {
		h.current = h.Max()
	}
}

// TakeDamage наносит урон. Возвращает true, если цель погибла этим ударом.
func (h *HealthComponent) TakeDamage(attackerID string, amount float64) bool {
	if h.dead {
		return false
	}
	if amount < 0 {
		amount = 0
	}

	h.current = math.Max(0, h.current-amount)

	if h.current > 0 {
		for _, fn := range h.OnDamaged {
			fn(attackerID, amount)
		}
		return false
	}

	// Порядок: защёлка, опыт убийце, наблюдатели
	h.latchDeath()
	if h.AwardXP != nil && attackerID != "" {
		reward := 0.0
		if h.XPReward != nil {
			reward = h.XPReward()
		}
		h.AwardXP(attackerID, reward)
	}
	for _, fn := range h.OnDie {
		fn()
	}
	return true
}

// Heal лечит не выше максимума. Событий не шлёт.
func (h *HealthComponent) Heal(amount float64) {
	if amount < 0 {
		amount = 0
	}
	h.current = math.Min(h.Max(), h.current+amount)
}

// LevelUp восполняет часть разрыва до нового максимума.
func (h *HealthComponent) LevelUp() {
	boost := (h.Max() - h.current) * (h.LevelUpBoost / 100)
	h.Heal(boost)
}

func (h *HealthComponent) Current() float64 { return h.current }

func (h *HealthComponent) Max() float64 {
	if h.MaxSource != nil {
		return h.MaxSource()
	}
	return h.max
}

// PercentRemaining - 0..100
func (h *HealthComponent) PercentRemaining() float64 {
	max := h.Max()
	if max <= 0 {
		return 0
	}
	return 100 * h.current / max
}

func (h *HealthComponent) IsDead() bool { return h.dead }

// restore выставляет сохранённое значение. <= 0 проходит путь смерти без опыта.
func (h *HealthComponent) restore(value float64) {
	h.restored = true
	if value <= 0 {
		h.current = 0
		h.latchDeath()
		return
	}
	h.current = value
}

func (h *HealthComponent) latchDeath() {
	if h.dead {
		return
	}
	h.dead = true
	for _, fn := range h.OnDeathLatch {
		fn()
	}
}

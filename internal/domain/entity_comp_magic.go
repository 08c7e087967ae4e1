package domain

import "math"

// DefaultMagicRegenInterval - секунд между тиками регенерации.
const DefaultMagicRegenInterval = 1.0

// MagicComponent - пул магии с пассивной регенерацией.
type MagicComponent struct {
	current  float64
	max      float64
	restored bool

	LevelUpBoost  float64
	RegenInterval float64

	timeSinceRegen float64

	MaxSource func() float64
	// RegenRate - доля максимума за тик регенерации (стат MagicRegen)
	RegenRate func() float64
	// IsOwnerDead блокирует регенерацию
	IsOwnerDead func() bool
}

func NewMagic() *MagicComponent {
	return &MagicComponent{
		LevelUpBoost:   DefaultLevelUpBoost,
		RegenInterval:  DefaultMagicRegenInterval,
		timeSinceRegen: math.Inf(1),
	}
}

func (m *MagicComponent) Initialize(max float64) {
	m.max = max
	if !m.restored {
		m.current = m.Max()
	}
}

// UseMagic тратит магию. При нехватке ничего не меняет и возвращает false.
func (m *MagicComponent) UseMagic(amount float64) bool {
	if amount < 0 {
		amount = 0
	}
	if amount > m.current {
		return false
	}
	m.current -= amount
	m.timeSinceRegen = 0
	return true
}

func (m *MagicComponent) RestoreMagic(amount float64) {
	if amount < 0 {
		amount = 0
	}
	m.current = math.Min(m.Max(), m.current+amount)
}

// Tick двигает таймер регенерации и при необходимости восполняет магию.
func (m *MagicComponent) Tick(dt float64) {
	if m.IsOwnerDead != nil && m.IsOwnerDead() {
		return
	}
	max := m.Max()
	if m.current < max && m.timeSinceRegen > m.RegenInterval {
		rate := 0.0
		if m.RegenRate != nil {
			rate = m.RegenRate()
		}
		m.current += math.Min(max-m.current, rate*max)
		m.timeSinceRegen = 0
	}
	m.timeSinceRegen += dt
}

func (m *MagicComponent) LevelUp() {
	boost := (m.Max() - m.current) * (m.LevelUpBoost / 100)
	m.RestoreMagic(boost)
}

func (m *MagicComponent) Current() float64 { return m.current }

func (m *MagicComponent) Max() float64 {
	if m.MaxSource != nil {
		return m.MaxSource()
	}
	return m.max
}

func (m *MagicComponent) PercentRemaining() float64 {
	max := m.Max()
	if max <= 0 {
		return 0
	}
	return 100 * m.current / max
}

func (m *MagicComponent) restore(value float64) {
	m.restored = true
	m.current = math.Max(0, value)
}

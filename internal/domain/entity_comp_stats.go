package domain

import (
	"rpg-core/internal/core/types/enums"
)

// BaseStatsComponent - уровень и производные статы персонажа.
type BaseStatsComponent struct {
	Class        enums.CharacterClass
	StartLevel   int
	UseModifiers bool
	Progression  *Progression

	level    int
	resolved bool

	// Заполняются в Entity.Wire
	xp        *ExperienceComponent
	modifiers func(stat enums.StatType) (additive, percentage float64)

	// OnLevelUp срабатывает, когда уровень вырос после получения опыта
	OnLevelUp []func()
}

func NewBaseStats(class enums.CharacterClass, startLevel int, progression *Progression, useModifiers bool) *BaseStatsComponent {
	if startLevel < 1 {
		startLevel = 1
	}
	return &BaseStatsComponent{
		Class:        class,
		StartLevel:   startLevel,
		UseModifiers: useModifiers,
		Progression:  progression,
		level:        startLevel,
	}
}

// ResolveLevel вычисляет уровень из опыта без событий (проход начальной инициализации).
func (b *BaseStatsComponent) ResolveLevel() {
	b.level = b.calculateLevel()
	b.resolved = true
}

// UpdateLevel пересчитывает уровень после получения опыта.
// OnLevelUp срабатывает только при росте уровня.
func (b *BaseStatsComponent) UpdateLevel() {
	newLevel := b.calculateLevel()
	if newLevel <= b.Level() {
		return
	}
	b.level = newLevel
	for _, fn := range b.OnLevelUp {
		fn()
	}
}

func (b *BaseStatsComponent) Level() int {
	if !b.resolved {
		b.ResolveLevel()
	}
	return b.level
}

// calculateLevel - первый уровень L, для которого xp < LevelXp(L); иначе maxLevel+1.
func (b *BaseStatsComponent) calculateLevel() int {
	if b.xp == nil {
		return b.StartLevel
	}
	current := b.xp.Current()
	maxLevel := b.Progression.Levels(enums.StatLevelXp, b.Class)
	for level := 1; level <= maxLevel; level++ {
		if current < b.Progression.GetStat(enums.StatLevelXp, b.Class, level) {
			return level
		}
	}
	return maxLevel + 1
}

// Stat - значение стата на текущем уровне с модификаторами.
func (b *BaseStatsComponent) Stat(stat enums.StatType) float64 {
	return b.StatAtLevel(stat, b.Level())
}

// StatAtLevel: base*(1+sumPct/100)+sumAdd. Уровень < 1 даёт 0.
func (b *BaseStatsComponent) StatAtLevel(stat enums.StatType, level int) float64 {
	if level < 1 {
		return 0
	}
	base := b.Progression.GetStat(stat, b.Class, level)
	additive, percentage := b.modifierTotals(stat)
	return base*(1+percentage/100) + additive
}

func (b *BaseStatsComponent) modifierTotals(stat enums.StatType) (float64, float64) {
	if !b.UseModifiers || b.modifiers == nil {
		return 0, 0
	}
	return b.modifiers(stat)
}

// ExperienceComponent - накопленный опыт.
type ExperienceComponent struct {
	points float64

	OnXPGained []func()
}

func NewExperience() *ExperienceComponent {
	return &ExperienceComponent{}
}

// GainXP добавляет опыт. Отрицательное значение считается нулём.
func (x *ExperienceComponent) GainXP(amount float64) {
	if amount < 0 {
		amount = 0
	}
	x.points += amount
	for _, fn := range x.OnXPGained {
		fn()
	}
}

func (x *ExperienceComponent) Current() float64 {
	return x.points
}

// restore выставляет опыт без событий
func (x *ExperienceComponent) restore(points float64) {
	x.points = points
}

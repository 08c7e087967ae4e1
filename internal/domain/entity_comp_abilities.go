package domain

import (
	"math"

	"rpg-core/internal/core/types/enums"
)

// AbilitySlot - способность в фиксированном слоте.
type AbilitySlot struct {
	Ability       *Item
	Level         int
	Active        bool
	TimeSinceUsed float64
}

// AbilitiesComponent - фиксированный массив способностей.
type AbilitiesComponent struct {
	slots []AbilitySlot

	OnAbilitiesUpdated []func()
}

func NewAbilities(size int) *AbilitiesComponent {
	a := &AbilitiesComponent{slots: make([]AbilitySlot, size)}
	for i := range a.slots {
		a.slots[i].TimeSinceUsed = math.Inf(1)
	}
	return a
}

func (a *AbilitiesComponent) Size() int { return len(a.slots) }

// SetAbility кладёт способность в слот. Неверный индекс игнорируется.
func (a *AbilitiesComponent) SetAbility(index int, ability *Item, level int, active bool) bool {
	if index < 0 || index >= len(a.slots) {
		return false
	}
	if ability != nil && ability.Kind != enums.ItemAbility {
		return false
	}
	a.slots[index] = AbilitySlot{Ability: ability, Level: level, Active: active, TimeSinceUsed: math.Inf(1)}
	a.notify()
	return true
}

// Ability - nil для неверного индекса.
func (a *AbilitiesComponent) Ability(index int) *Item {
	if s := a.Slot(index); s != nil {
		return s.Ability
	}
	return nil
}

// Slot - указатель на слот или nil.
func (a *AbilitiesComponent) Slot(index int) *AbilitySlot {
	if index < 0 || index >= len(a.slots) {
		return nil
	}
	return &a.slots[index]
}

// Tick двигает таймеры перезарядки.
func (a *AbilitiesComponent) Tick(dt float64) {
	for i := range a.slots {
		a.slots[i].TimeSinceUsed += dt
	}
}

// CooldownRemaining - сколько осталось до готовности, 0 если готово.
func (s *AbilitySlot) CooldownRemaining() float64 {
	if s.Ability == nil || s.Ability.Ability == nil {
		return 0
	}
	return math.Max(0, s.Ability.Ability.Cooldown-s.TimeSinceUsed)
}

func (a *AbilitiesComponent) notify() {
	for _, fn := range a.OnAbilitiesUpdated {
		fn()
	}
}

package domain

import (
	"sort"

	"rpg-core/internal/core/types/enums"
)

// EquipmentComponent - надетые предметы по слотам тела.
type EquipmentComponent struct {
	items map[enums.EquipLocation]*Item

	OnEquipmentUpdated []func()
}

func NewEquipment() *EquipmentComponent {
	return &EquipmentComponent{items: make(map[enums.EquipLocation]*Item)}
}

// AddItem надевает предмет в слот location. Предмет, рассчитанный на другой слот,
// отклоняется. Прежний предмет просто заменяется (вернуть его в инвентарь - забота вызывающего).
func (eq *EquipmentComponent) AddItem(item *Item, location enums.EquipLocation) bool {
	if !item.IsEquipable() || item.Location != location {
		return false
	}
	eq.items[location] = item
	eq.notify()
	return true
}

// RemoveItem снимает предмет. Возвращает снятый предмет или nil.
func (eq *EquipmentComponent) RemoveItem(location enums.EquipLocation) *Item {
	item, ok := eq.items[location]
	if !ok {
		return nil
	}
	delete(eq.items, location)
	eq.notify()
	return item
}

func (eq *EquipmentComponent) ItemInSlot(location enums.EquipLocation) *Item {
	return eq.items[location]
}

// PopulatedSlots - занятые слоты в порядке enum.
func (eq *EquipmentComponent) PopulatedSlots() []enums.EquipLocation {
	out := make([]enums.EquipLocation, 0, len(eq.items))
	for loc := range eq.items {
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Modifiers суммирует модификаторы стата по всем надетым предметам.
func (eq *EquipmentComponent) Modifiers(stat enums.StatType) (additive, percentage float64) {
	for _, loc := range eq.PopulatedSlots() {
		a, p := eq.items[loc].Modifiers(stat)
		additive += a
		percentage += p
	}
	return additive, percentage
}

func (eq *EquipmentComponent) notify() {
	for _, fn := range eq.OnEquipmentUpdated {
		fn()
	}
}

package domain

import (
	"math"
	"sort"
)

// ActionSlot - предмет на панели действий и его количество.
type ActionSlot struct {
	Item  *Item
	Count int
}

// ActionStoreComponent - панель быстрых действий (индекс -> предмет).
type ActionStoreComponent struct {
	slots map[int]*ActionSlot

	OnStoreUpdated []func()
}

func NewActionStore() *ActionStoreComponent {
	return &ActionStoreComponent{slots: make(map[int]*ActionSlot)}
}

// AddAction кладёт number штук в index. Тот же предмет складывается,
// другой предмет отклоняется.
func (s *ActionStoreComponent) AddAction(item *Item, index int, number int) bool {
	if !item.IsAction() || number <= 0 {
		return false
	}
	if slot, ok := s.slots[index]; ok {
		if !SameItem(slot.Item, item) {
			return false
		}
		slot.Count += number
	} else {
		s.slots[index] = &ActionSlot{Item: item, Count: number}
	}
	s.notify()
	return true
}

// Slot возвращает копию слота и true, если он занят.
func (s *ActionStoreComponent) Slot(index int) (ActionSlot, bool) {
	slot, ok := s.slots[index]
	if !ok {
		return ActionSlot{}, false
	}
	return *slot, true
}

func (s *ActionStoreComponent) Action(index int) *Item {
	if slot, ok := s.slots[index]; ok {
		return slot.Item
	}
	return nil
}

// Indexes - занятые индексы по возрастанию.
func (s *ActionStoreComponent) Indexes() []int {
	out := make([]int, 0, len(s.slots))
	for i := range s.slots {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Use применяет эффект предмета. Расходник теряет одну штуку, при <= 0 слот удаляется.
// Если эффект вернул false, ничего не тратится.
func (s *ActionStoreComponent) Use(index int, effect func(item *Item) bool) bool {
	slot, ok := s.slots[index]
	if !ok {
		return false
	}
	if effect != nil && !effect(slot.Item) {
		return false
	}
	if slot.Item.Consumable {
		s.RemoveItems(index, 1)
	}
	return true
}

// RemoveItems убирает number штук. При <= 0 слот удаляется.
func (s *ActionStoreComponent) RemoveItems(index int, number int) {
	slot, ok := s.slots[index]
	if !ok {
		return
	}
	slot.Count -= number
	if slot.Count <= 0 {
		delete(s.slots, index)
	}
	s.notify()
}

// MaxAcceptable - сколько штук item можно положить в index.
func (s *ActionStoreComponent) MaxAcceptable(item *Item, index int) int {
	if !item.IsAction() {
		return 0
	}
	slot, occupied := s.slots[index]
	if occupied && !SameItem(slot.Item, item) {
		return 0
	}
	if item.Consumable {
		return math.MaxInt
	}
	if occupied {
		return 0
	}
	return 1
}

func (s *ActionStoreComponent) notify() {
	for _, fn := range s.OnStoreUpdated {
		fn()
	}
}

package domain

// DefaultInventorySize - число слотов инвентаря игрока.
const DefaultInventorySize = 16

// InventorySlot - (предмет, количество). Count == 0 - слот пуст.
type InventorySlot struct {
	Item  *Item
	Count int
}

func (s InventorySlot) IsEmpty() bool {
	return s.Item == nil || s.Count <= 0
}

// InventoryComponent - фиксированный массив слотов.
type InventoryComponent struct {
	slots []InventorySlot

	OnUpdated []func()
}

func NewInventory(size int) *InventoryComponent {
	if size <= 0 {
		size = DefaultInventorySize
	}
	return &InventoryComponent{slots: make([]InventorySlot, size)}
}

func (inv *InventoryComponent) Size() int {
	return len(inv.slots)
}

// Slot возвращает копию слота. Неверный индекс - пустой слот.
func (inv *InventoryComponent) Slot(index int) InventorySlot {
	if !inv.validIndex(index) {
		return InventorySlot{}
	}
	return inv.slots[index]
}

// HasItem - есть ли хотя бы одна штука предмета.
func (inv *InventoryComponent) HasItem(item *Item) bool {
	for _, s := range inv.slots {
		if !s.IsEmpty() && SameItem(s.Item, item) {
			return true
		}
	}
	return false
}

// HasSpaceFor - поместится ли одна штука предмета.
func (inv *InventoryComponent) HasSpaceFor(item *Item) bool {
	return inv.HasSpaceForN(item, 1)
}

func (inv *InventoryComponent) HasSpaceForN(item *Item, number int) bool {
	_, ok := inv.plan(item, number, -1)
	return ok
}

// AddToFirstEmptySlot добавляет предметы: сначала в стопки того же предмета,
// потом в пустые слоты. Всё или ничего.
func (inv *InventoryComponent) AddToFirstEmptySlot(item *Item, number int) bool {
	return inv.apply(item, number, -1)
}

// AddToSlot пытается положить предметы в слот index.
// Если там другой предмет - ведёт себя как AddToFirstEmptySlot.
func (inv *InventoryComponent) AddToSlot(index int, item *Item, number int) bool {
	if !inv.validIndex(index) {
		return false
	}
	s := inv.slots[index]
	if !s.IsEmpty() && !SameItem(s.Item, item) {
		return inv.AddToFirstEmptySlot(item, number)
	}
	return inv.apply(item, number, index)
}

// RemoveFromSlot убирает до number штук из слота.
func (inv *InventoryComponent) RemoveFromSlot(index int, number int) {
	if !inv.validIndex(index) || number <= 0 {
		return
	}
	s := &inv.slots[index]
	if s.IsEmpty() {
		return
	}
	s.Count -= number
	if s.Count <= 0 {
		*s = InventorySlot{}
	}
	inv.notify()
}

type placement struct {
	index  int
	amount int
}

// plan раскладывает number штук по слотам. preferred >= 0 заполняется первым.
func (inv *InventoryComponent) plan(item *Item, number int, preferred int) ([]placement, bool) {
	if item == nil || number <= 0 {
		return nil, false
	}
	capacity := item.SlotCap()
	remaining := number
	var out []placement

	take := func(i int) {
		if remaining == 0 {
			return
		}
		s := inv.slots[i]
		var room int
		switch {
		case s.IsEmpty():
			room = capacity
		case SameItem(s.Item, item) && item.Stackable:
			room = capacity - s.Count
		default:
			return
		}
		if room <= 0 {
			return
		}
		if room > remaining {
			room = remaining
		}
		out = append(out, placement{index: i, amount: room})
		remaining -= room
	}

	if inv.validIndex(preferred) {
		take(preferred)
	}
	// Сначала существующие стопки
	if item.Stackable {
		for i, s := range inv.slots {
			if i != preferred && !s.IsEmpty() && SameItem(s.Item, item) {
				take(i)
			}
		}
	}
	// Потом пустые слоты
	for i, s := range inv.slots {
		if i != preferred && s.IsEmpty() {
			take(i)
		}
	}
	return out, remaining == 0
}

func (inv *InventoryComponent) apply(item *Item, number int, preferred int) bool {
	placements, ok := inv.plan(item, number, preferred)
	if !ok {
		return false
	}
	for _, p := range placements {
		s := &inv.slots[p.index]
		if s.IsEmpty() {
			*s = InventorySlot{Item: item}
		}
		s.Count += p.amount
	}
	inv.notify()
	return true
}

func (inv *InventoryComponent) validIndex(index int) bool {
	return index >= 0 && index < len(inv.slots)
}

func (inv *InventoryComponent) notify() {
	for _, fn := range inv.OnUpdated {
		fn()
	}
}

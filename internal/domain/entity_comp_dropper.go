package domain

// DropRecord - выброшенный предмет, ещё лежащий в мире.
type DropRecord struct {
	ItemID   string `cbor:"item"`
	Position Vec3   `cbor:"pos"`
	Number   int    `cbor:"n"`
	Scene    int    `cbor:"scene"`
}

// ItemDropperComponent помнит, что сущность выбросила в мир.
type ItemDropperComponent struct {
	LootTableID  string
	DropDistance float64

	// pickupID -> запись (только активная сцена)
	live  map[string]DropRecord
	order []string
	// Записи других сцен хранятся как есть
	otherScenes []DropRecord
	// Записи активной сцены после загрузки, ждут спавна
	pending []DropRecord
}

func NewItemDropper(lootTableID string, dropDistance float64) *ItemDropperComponent {
	if dropDistance <= 0 {
		dropDistance = 1
	}
	return &ItemDropperComponent{
		LootTableID:  lootTableID,
		DropDistance: dropDistance,
		live:         make(map[string]DropRecord),
	}
}

// Track запоминает заспавненный пикап.
func (d *ItemDropperComponent) Track(pickupID string, rec DropRecord) {
	if _, ok := d.live[pickupID]; !ok {
		d.order = append(d.order, pickupID)
	}
	d.live[pickupID] = rec
}

// Forget вызывается, когда пикап подобран.
func (d *ItemDropperComponent) Forget(pickupID string) {
	if _, ok := d.live[pickupID]; !ok {
		return
	}
	delete(d.live, pickupID)
	for i, id := range d.order {
		if id == pickupID {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// TakePending отдаёт записи активной сцены для спавна и очищает очередь.
func (d *ItemDropperComponent) TakePending() []DropRecord {
	out := d.pending
	d.pending = nil
	return out
}

// Records - живые и ещё не заспавненные записи активной сцены плюс записи других сцен.
func (d *ItemDropperComponent) Records() []DropRecord {
	out := make([]DropRecord, 0, len(d.order)+len(d.pending)+len(d.otherScenes))
	for _, id := range d.order {
		out = append(out, d.live[id])
	}
	out = append(out, d.pending...)
	return append(out, d.otherScenes...)
}

func (d *ItemDropperComponent) restore(records []DropRecord, activeScene int) {
	d.live = make(map[string]DropRecord)
	d.order = nil
	d.otherScenes = nil
	d.pending = nil
	for _, r := range records {
		if r.Scene == activeScene {
			d.pending = append(d.pending, r)
		} else {
			d.otherScenes = append(d.otherScenes, r)
		}
	}
}

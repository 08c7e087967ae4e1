package domain

import (
	"math"
	"testing"

	"rpg-core/internal/core/types/enums"
)

func potion() *Item {
	return &Item{ID: "potion", Kind: enums.ItemAction, Stackable: true, Consumable: true}
}

func TestInventory_StackingIntoExistingSlot(t *testing.T) {
	inv := NewInventory(4)
	p := potion()
	sword := &Item{ID: "sword", Kind: enums.ItemWeapon, Location: enums.EquipWeapon}

	inv.AddToSlot(0, sword, 1)
	if !inv.AddToSlot(2, p, 3) {
		t.Fatal("AddToSlot failed")
	}
	if !inv.AddToFirstEmptySlot(p, 5) {
		t.Fatal("AddToFirstEmptySlot failed")
	}

	if s := inv.Slot(2); s.Item != p || s.Count != 8 {
		t.Errorf("slot 2 = %+v, want potion x8", s)
	}
	if !inv.Slot(1).IsEmpty() || !inv.Slot(3).IsEmpty() {
		t.Error("stacking must not consume a new slot")
	}
}

func TestInventory_CapAndOverflow(t *testing.T) {
	arrow := &Item{ID: "arrow", Kind: enums.ItemPlain, Stackable: true, MaxPerSlot: 10}

	tests := []struct {
		name      string
		size      int
		preload   int
		add       int
		wantOK    bool
		wantSlots []int
	}{
		{"fits in one stack", 3, 4, 6, true, []int{10, 0, 0}},
		{"overflow to next slot", 3, 8, 5, true, []int{10, 3, 0}},
		{"too many is rejected whole", 2, 8, 15, false, []int{8, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := NewInventory(tt.size)
			inv.AddToFirstEmptySlot(arrow, tt.preload)

			if ok := inv.AddToFirstEmptySlot(arrow, tt.add); ok != tt.wantOK {
				t.Fatalf("AddToFirstEmptySlot = %v, want %v", ok, tt.wantOK)
			}
			for i, want := range tt.wantSlots {
				if got := inv.Slot(i).Count; got != want {
					t.Errorf("slot %d count = %d, want %d", i, got, want)
				}
			}
		})
	}
}

func TestInventory_NonStackableUsesOneSlotEach(t *testing.T) {
	inv := NewInventory(2)
	helm := &Item{ID: "helm", Kind: enums.ItemEquipable, Location: enums.EquipHead}

	if !inv.AddToFirstEmptySlot(helm, 1) || !inv.AddToFirstEmptySlot(helm, 1) {
		t.Fatal("two helms should fit in two slots")
	}
	if inv.HasSpaceFor(helm) {
		t.Error("inventory should be full")
	}
	if inv.AddToFirstEmptySlot(helm, 1) {
		t.Error("third helm should be rejected")
	}
}

func TestInventory_AddToOccupiedSlotFallsBack(t *testing.T) {
	inv := NewInventory(3)
	a := &Item{ID: "a", Kind: enums.ItemPlain}
	b := &Item{ID: "b", Kind: enums.ItemPlain}
	updates := 0
	inv.OnUpdated = append(inv.OnUpdated, func() { updates++ })

	inv.AddToSlot(1, a, 1)
	if !inv.AddToSlot(1, b, 1) {
		t.Fatal("fallback add failed")
	}
	if inv.Slot(0).Item != b {
		t.Errorf("b should land in the first empty slot, got %+v", inv.Slot(0))
	}
	if updates != 2 {
		t.Errorf("updates = %d, want 2", updates)
	}
}

func TestInventory_GuardsAndRemove(t *testing.T) {
	inv := NewInventory(2)
	p := potion()

	if inv.AddToSlot(-1, p, 1) || inv.AddToSlot(5, p, 1) {
		t.Error("out of range AddToSlot must fail")
	}
	if !inv.Slot(99).IsEmpty() {
		t.Error("out of range Slot must be empty")
	}
	inv.RemoveFromSlot(99, 1) // не паникует

	inv.AddToSlot(0, p, 3)
	inv.RemoveFromSlot(0, 2)
	if inv.Slot(0).Count != 1 {
		t.Errorf("count = %d, want 1", inv.Slot(0).Count)
	}
	inv.RemoveFromSlot(0, 5)
	if !inv.Slot(0).IsEmpty() || inv.HasItem(p) {
		t.Error("slot should be empty after removing more than present")
	}
	if inv.AddToFirstEmptySlot(p, 0) || inv.AddToFirstEmptySlot(nil, 1) {
		t.Error("zero amount or nil item must be rejected")
	}
}

func TestEquipment_LocationMismatchRejected(t *testing.T) {
	eq := NewEquipment()
	chest := &Item{ID: "chest", Kind: enums.ItemEquipable, Location: enums.EquipChest}
	sword := &Item{ID: "sword", Kind: enums.ItemWeapon, Location: enums.EquipWeapon, Weapon: &WeaponConfig{ID: "sword", Range: 2, Damage: 10}}

	updates := 0
	eq.OnEquipmentUpdated = append(eq.OnEquipmentUpdated, func() { updates++ })

	if !eq.AddItem(sword, enums.EquipWeapon) {
		t.Fatal("sword should equip")
	}
	if eq.AddItem(chest, enums.EquipWeapon) {
		t.Error("chest into weapon slot must be rejected")
	}
	if eq.ItemInSlot(enums.EquipWeapon) != sword {
		t.Error("weapon slot must be unchanged after rejection")
	}
	if updates != 1 {
		t.Errorf("updates = %d, want 1", updates)
	}

	if removed := eq.RemoveItem(enums.EquipWeapon); removed != sword {
		t.Errorf("RemoveItem = %v, want sword", removed)
	}
	if updates != 2 {
		t.Errorf("remove must fire update, updates = %d", updates)
	}
}

func TestEquipment_ModifiersFeedStats(t *testing.T) {
	prog := testProgression()
	player := newCharacter("player", enums.ClassPlayer, prog)

	ring := &Item{
		ID: "ring", Kind: enums.ItemStatsEquipable, Location: enums.EquipNeck,
		Additive:   map[enums.StatType]float64{enums.StatPhysicalDamage: 2},
		Percentage: map[enums.StatType]float64{enums.StatPhysicalDamage: 100},
	}
	plain := &Item{
		ID: "hat", Kind: enums.ItemEquipable, Location: enums.EquipHead,
		Additive: map[enums.StatType]float64{enums.StatPhysicalDamage: 50},
	}
	player.Equipment.AddItem(ring, enums.EquipNeck)
	player.Equipment.AddItem(plain, enums.EquipHead)

	// 5 * (1 + 100/100) + 2; обычная экипировка модификаторов не даёт
	if got := player.Stats.Stat(enums.StatPhysicalDamage); got != 12 {
		t.Errorf("PhysicalDamage = %v, want 12", got)
	}
	if got := player.Stats.StatAtLevel(enums.StatPhysicalDamage, 0); got != 0 {
		t.Errorf("StatAtLevel(0) = %v, want 0", got)
	}
}

func TestEquipment_WeaponSwapUpdatesCombat(t *testing.T) {
	prog := testProgression()
	player := newCharacter("player", enums.ClassPlayer, prog)
	bow := &Item{ID: "bow", Kind: enums.ItemWeapon, Location: enums.EquipWeapon,
		Weapon: &WeaponConfig{ID: "bow", Range: 10, Damage: 8, Projectile: &ProjectileConfig{Speed: 5}}}

	player.Equipment.AddItem(bow, enums.EquipWeapon)
	if player.Combat.Weapon.ID != "bow" {
		t.Fatalf("weapon = %s, want bow", player.Combat.Weapon.ID)
	}
	player.Equipment.RemoveItem(enums.EquipWeapon)
	if player.Combat.Weapon != player.Combat.DefaultWeapon {
		t.Errorf("weapon should fall back to default, got %s", player.Combat.Weapon.ID)
	}
}

func TestActionStore(t *testing.T) {
	p := potion()
	fireball := &Item{ID: "fireball", Kind: enums.ItemAbility, Ability: DefaultAbilityConfig()}
	junk := &Item{ID: "junk", Kind: enums.ItemPlain}

	s := NewActionStore()
	if s.AddAction(junk, 0, 1) {
		t.Error("plain item must not go on the action bar")
	}
	if !s.AddAction(p, 0, 2) || !s.AddAction(p, 0, 1) {
		t.Fatal("stacking same item failed")
	}
	if s.AddAction(fireball, 0, 1) {
		t.Error("different item into occupied index must fail")
	}
	if slot, _ := s.Slot(0); slot.Count != 3 {
		t.Errorf("count = %d, want 3", slot.Count)
	}

	tests := []struct {
		name  string
		item  *Item
		index int
		want  int
	}{
		{"non-action", junk, 5, 0},
		{"occupied by other", fireball, 0, 0},
		{"consumable", p, 0, math.MaxInt},
		{"non-consumable into empty", fireball, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.MaxAcceptable(tt.item, tt.index); got != tt.want {
				t.Errorf("MaxAcceptable = %d, want %d", got, tt.want)
			}
		})
	}

	s.AddAction(fireball, 1, 1)
	if got := s.MaxAcceptable(fireball, 1); got != 0 {
		t.Errorf("MaxAcceptable for filled non-consumable = %d, want 0", got)
	}

	used := 0
	effect := func(*Item) bool { used++; return true }
	for i := 0; i < 3; i++ {
		if !s.Use(0, effect) {
			t.Fatalf("use %d failed", i)
		}
	}
	if _, ok := s.Slot(0); ok {
		t.Error("consumable slot should be removed at zero")
	}
	if s.Use(0, effect) {
		t.Error("using an empty index must return false")
	}
	if !s.Use(1, effect) || !s.Use(1, effect) {
		t.Error("non-consumable should be reusable")
	}
	if used != 5 {
		t.Errorf("effect applied %d times, want 5", used)
	}
	if s.Use(1, func(*Item) bool { return false }) {
		t.Error("failed effect must report false")
	}
}

func TestAbilities_SlotsAndCooldown(t *testing.T) {
	a := NewAbilities(2)
	fireball := &Item{ID: "fireball", Kind: enums.ItemAbility, Ability: DefaultAbilityConfig()}

	if a.Ability(-1) != nil || a.Ability(2) != nil {
		t.Error("out of range must be nil")
	}
	if !a.SetAbility(0, fireball, 1, true) {
		t.Fatal("SetAbility failed")
	}
	if a.SetAbility(1, potion(), 1, true) {
		t.Error("non-ability item must be rejected")
	}
	slot := a.Slot(0)
	if slot.CooldownRemaining() != 0 {
		t.Errorf("fresh ability cooldown = %v, want 0", slot.CooldownRemaining())
	}
	slot.TimeSinceUsed = 0
	a.Tick(1)
	if got := slot.CooldownRemaining(); got != 2 {
		t.Errorf("cooldown remaining = %v, want 2", got)
	}
}

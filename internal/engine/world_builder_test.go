package engine

import (
	"errors"
	"testing"

	"rpg-core/internal/core/types/enums"
	"rpg-core/internal/domain"
)

func TestBuildScene_Village(t *testing.T) {
	g := NewGame(testConfig(), defaultCatalog(t), fileStore(t))
	w, err := g.BuildScene(0)
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}
	ResolveInitial(w)

	if w.PlayerID != PlayerID || w.Player() == nil {
		t.Fatalf("player not registered, PlayerID=%q", w.PlayerID)
	}
	if len(w.Obstacles) != 1 {
		t.Errorf("obstacles = %d, want 1", len(w.Obstacles))
	}

	grunt := mustEntity(t, w, "village-grunt-1")
	if grunt.AI == nil || len(grunt.AI.Waypoints) != 3 {
		t.Errorf("grunt AI waypoints missing: %+v", grunt.AI)
	}
	if grunt.Combat.Weapon.ID != "claws" {
		t.Errorf("grunt weapon = %s, want claws", grunt.Combat.Weapon.ID)
	}
	if grunt.Health.Current() != 40 {
		t.Errorf("grunt health = %v, want 40", grunt.Health.Current())
	}

	archer := mustEntity(t, w, "village-archer-1")
	if archer.AI.ChaseDistance != 8 || archer.AI.ChaseWaitTime != domain.DefaultChaseWaitTime {
		t.Errorf("archer AI overrides: chase=%v wait=%v", archer.AI.ChaseDistance, archer.AI.ChaseWaitTime)
	}

	helmet := mustEntity(t, w, "village-helmet-1")
	orb := mustEntity(t, w, "village-health-1")
	if !helmet.Pickup.Spawner || orb.Pickup.Spawner {
		t.Errorf("spawner flags: helmet=%v orb=%v", helmet.Pickup.Spawner, orb.Pickup.Spawner)
	}
	if helmet.Pickup.Item == nil || helmet.Pickup.Item.ID != "iron_helmet" {
		t.Errorf("helmet pickup item = %+v", helmet.Pickup.Item)
	}

	gate := mustEntity(t, w, "village-gate")
	if gate.Type != enums.EntityTypePortal || gate.Portal.DestinationScene != 1 || gate.Portal.Destination != "crypt-entrance" {
		t.Errorf("portal = %+v", gate.Portal)
	}
}

func TestBuildScene_PlayerLoadout(t *testing.T) {
	g := NewGame(testConfig(), defaultCatalog(t), fileStore(t))
	w, err := g.BuildScene(0)
	if err != nil {
		t.Fatal(err)
	}
	ResolveInitial(w)
	p := w.Player()

	// 100 базовых + 10% от кожаной брони
	if !near(p.Health.Max(), 110) || !near(p.Health.Current(), 110) {
		t.Errorf("health = %v/%v, want 110/110", p.Health.Current(), p.Health.Max())
	}
	if p.Magic.Current() != 50 {
		t.Errorf("magic = %v, want 50", p.Magic.Current())
	}
	if s := p.Inventory.Slot(0); s.Item == nil || s.Item.ID != "gold_coin" || s.Count != 5 {
		t.Errorf("inventory slot 0 = %+v", s)
	}
	if it := p.Equipment.ItemInSlot(enums.EquipChest); it == nil || it.ID != "leather_chest" {
		t.Errorf("chest = %+v", it)
	}
	if s, ok := p.ActionStore.Slot(0); !ok || s.Item.ID != "health_potion" || s.Count != 3 {
		t.Errorf("action slot 0 = %+v, %v", s, ok)
	}
	if a := p.Abilities.Ability(0); a == nil || a.ID != "fireball" {
		t.Errorf("ability slot 0 = %+v", a)
	}
	if p.Combat.Weapon.ID != domain.DefaultWeaponConfig().ID {
		t.Errorf("player weapon = %s, want unarmed", p.Combat.Weapon.ID)
	}
}

func TestBuildScene_UnknownScene(t *testing.T) {
	g := NewGame(testConfig(), defaultCatalog(t), fileStore(t))
	if _, err := g.BuildScene(42); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("expected ErrUnknownScene, got %v", err)
	}
}

func TestBuildScene_SameSeedSameScene(t *testing.T) {
	g := NewGame(testConfig(), defaultCatalog(t), fileStore(t))
	a, err := g.BuildScene(1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.BuildScene(1)
	if err != nil {
		t.Fatal(err)
	}
	if a.Rng.Int63() != b.Rng.Int63() {
		t.Error("scene rng must depend only on the master seed and the scene index")
	}
}

func TestAttachHooks_DamageAggravatesNeighbours(t *testing.T) {
	g := newTestGame(t, testConfig(), fileStore(t))
	w := g.World

	first := mustEntity(t, w, "village-grunt-1")
	second := mustEntity(t, w, "village-grunt-2")
	archer := mustEntity(t, w, "village-archer-1")

	first.Health.TakeDamage(PlayerID, 1)

	if !first.AI.Is(enums.AIStateAggro) || !second.AI.Is(enums.AIStateAggro) {
		t.Errorf("states: first=%s second=%s, want aggro", first.AI.State(), second.AI.State())
	}
	if archer.AI.Is(enums.AIStateAggro) {
		t.Error("archer is out of aggro radius")
	}
}

func TestAttachHooks_DeathDropsLoot(t *testing.T) {
	cfg := testConfig()
	cfg.StartScene = 1
	g := newTestGame(t, cfg, fileStore(t))

	boss := mustEntity(t, g.World, "crypt-boss")
	boss.Health.TakeDamage("", 1000)

	// boss_loot: шанс 100%, от 2 до 4 предметов
	if n := droppedBy(g.World, "crypt-boss"); n < 2 || n > 4 {
		t.Errorf("boss dropped %d pickups, want 2..4", n)
	}
	if len(boss.Dropper.Records()) != droppedBy(g.World, "crypt-boss") {
		t.Error("every drop must be tracked by the dropper")
	}
}

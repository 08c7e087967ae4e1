package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"rpg-core/internal/core/types/enums"
	"rpg-core/internal/domain"
	"rpg-core/internal/infrastructure/storage"
)

func TestSave_RoundTripThroughNewGame(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	store := fileStore(t)

	g := newTestGame(t, cfg, store)
	player := g.Player()
	player.Health.TakeDamage("", 50)
	g.World.UpdateEntityPos(player, domain.Vec3{X: 3, Z: 4})
	player.Inventory.RemoveFromSlot(0, 2)
	mustEntity(t, g.World, "village-grunt-1").Health.TakeDamage("", 1000)
	mustEntity(t, g.World, "village-helmet-1").Pickup.Collected = true

	if err := g.Save(ctx, cfg.SaveName); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := newTestGame(t, cfg, store)
	p := loaded.Player()
	if !near(p.Health.Current(), 60) {
		t.Errorf("health = %v, want 60", p.Health.Current())
	}
	if p.Pos != (domain.Vec3{X: 3, Z: 4}) {
		t.Errorf("position = %+v", p.Pos)
	}
	if s := p.Inventory.Slot(0); s.Count != 3 {
		t.Errorf("coins = %d, want 3", s.Count)
	}

	grunt := mustEntity(t, loaded.World, "village-grunt-1")
	if grunt.IsAlive() || !grunt.AI.Is(enums.AIStateDead) {
		t.Errorf("grunt must stay dead, state=%s", grunt.AI.State())
	}
	if mustEntity(t, loaded.World, "village-helmet-1").Pickup.IsAvailable(0) {
		t.Error("collected spawner pickup must stay collected")
	}
	if !near(mustEntity(t, loaded.World, "village-grunt-2").Health.Current(), 40) {
		t.Error("untouched grunt must keep full health")
	}
}

func TestLoad_RevertsToSavedState(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	g := newTestGame(t, cfg, fileStore(t))
	player := g.Player()

	player.Health.TakeDamage("", 10)
	if err := g.Save(ctx, cfg.SaveName); err != nil {
		t.Fatal(err)
	}
	player.Health.TakeDamage("", 40)
	player.Magic.UseMagic(30)

	if err := g.Load(ctx, cfg.SaveName); err != nil {
		t.Fatal(err)
	}
	p := g.Player()
	if !near(p.Health.Current(), 100) {
		t.Errorf("health = %v, want 100", p.Health.Current())
	}
	if !near(p.Magic.Current(), 50) {
		t.Errorf("magic = %v, want 50", p.Magic.Current())
	}
}

func TestLoad_RevivesEntityKilledAfterSave(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	g := newTestGame(t, cfg, fileStore(t))

	saved := mustEntity(t, g.World, "village-grunt-1").AI.State()
	if err := g.Save(ctx, cfg.SaveName); err != nil {
		t.Fatal(err)
	}
	mustEntity(t, g.World, "village-grunt-1").Health.TakeDamage("", 1000)

	if err := g.Load(ctx, cfg.SaveName); err != nil {
		t.Fatal(err)
	}
	grunt := mustEntity(t, g.World, "village-grunt-1")
	if !grunt.IsAlive() || !near(grunt.Health.Current(), 40) {
		t.Errorf("grunt alive=%v health=%v, want alive with 40", grunt.IsAlive(), grunt.Health.Current())
	}
	if grunt.AI.State() != saved || grunt.AI.Is(enums.AIStateDead) {
		t.Errorf("AI state = %s, want %s", grunt.AI.State(), saved)
	}
	if g.InTransition() {
		t.Error("Load must not leave a transition running")
	}
}

func TestLoad_KeepsDeathSavedInSnapshot(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	g := newTestGame(t, cfg, fileStore(t))

	mustEntity(t, g.World, "village-grunt-2").Health.TakeDamage("", 1000)
	if err := g.Save(ctx, cfg.SaveName); err != nil {
		t.Fatal(err)
	}
	if err := g.Load(ctx, cfg.SaveName); err != nil {
		t.Fatal(err)
	}
	grunt := mustEntity(t, g.World, "village-grunt-2")
	if grunt.IsAlive() || !grunt.AI.Is(enums.AIStateDead) {
		t.Errorf("grunt alive=%v state=%s, want dead", grunt.IsAlive(), grunt.AI.State())
	}
}

func TestSave_DroppedLootSurvivesReload(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.StartScene = 1
	store := fileStore(t)

	g := newTestGame(t, cfg, store)
	mustEntity(t, g.World, "crypt-boss").Health.TakeDamage("", 1000)
	dropped := droppedBy(g.World, "crypt-boss")
	if dropped == 0 {
		t.Fatal("boss must drop loot")
	}
	if err := g.Save(ctx, cfg.SaveName); err != nil {
		t.Fatal(err)
	}

	// Load в той же сцене не должен удваивать лут
	if err := g.Load(ctx, cfg.SaveName); err != nil {
		t.Fatal(err)
	}
	if n := droppedBy(g.World, "crypt-boss"); n != dropped {
		t.Errorf("after Load: %d drops, want %d", n, dropped)
	}

	loaded := newTestGame(t, cfg, store)
	if loaded.World.SceneIndex != 1 {
		t.Fatalf("scene = %d, want 1", loaded.World.SceneIndex)
	}
	if n := droppedBy(loaded.World, "crypt-boss"); n != dropped {
		t.Errorf("after reload: %d drops, want %d", n, dropped)
	}
}

func TestLoadLastScene_PicksSavedScene(t *testing.T) {
	ctx := context.Background()
	store := fileStore(t)

	cfg := testConfig()
	cfg.StartScene = 1
	g := newTestGame(t, cfg, store)
	if err := g.Save(ctx, cfg.SaveName); err != nil {
		t.Fatal(err)
	}

	cfg.StartScene = 0
	loaded := newTestGame(t, cfg, store)
	if loaded.World.SceneIndex != 1 {
		t.Errorf("scene = %d, want the saved scene 1", loaded.World.SceneIndex)
	}
}

func TestDeleteSave_StartsFresh(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	store := fileStore(t)

	g := newTestGame(t, cfg, store)
	g.Player().Health.TakeDamage("", 30)
	if err := g.Save(ctx, cfg.SaveName); err != nil {
		t.Fatal(err)
	}
	if err := g.DeleteSave(ctx, cfg.SaveName); err != nil {
		t.Fatal(err)
	}
	if err := g.DeleteSave(ctx, cfg.SaveName); err != nil {
		t.Errorf("deleting a missing save must succeed, got %v", err)
	}

	fresh := newTestGame(t, cfg, store)
	if !near(fresh.Player().Health.Current(), 110) {
		t.Errorf("health = %v, want full 110", fresh.Player().Health.Current())
	}
}

func TestSave_KeepsOtherScenes(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	store := fileStore(t)

	g := newTestGame(t, cfg, store)
	if err := g.Save(ctx, cfg.SaveName); err != nil {
		t.Fatal(err)
	}
	if err := g.enterScene(1, storage.NewSaveRecord()); err != nil {
		t.Fatal(err)
	}
	if err := g.Save(ctx, cfg.SaveName); err != nil {
		t.Fatal(err)
	}

	rec, err := store.Load(ctx, cfg.SaveName)
	if err != nil {
		t.Fatal(err)
	}
	if rec.LastScene != 1 {
		t.Errorf("LastScene = %d, want 1", rec.LastScene)
	}
	for _, id := range []string{PlayerID, "village-grunt-1", "crypt-boss"} {
		if _, ok := rec.Entities[id]; !ok {
			t.Errorf("entity %s missing from merged save", id)
		}
	}
	if _, ok := rec.Entities["village-gate"]; ok {
		t.Error("portals have no saveable state")
	}
}

func TestCapture_SkipsStatelessEntities(t *testing.T) {
	g := newTestGame(t, testConfig(), fileStore(t))
	state := g.Capture()

	if _, ok := state["village-health-1"]; ok {
		t.Error("plain health orb has nothing to save")
	}
	if kinds := state[PlayerID]; len(kinds) == 0 {
		t.Fatal("player state missing")
	}
	if _, ok := state[PlayerID][domain.SaveKindInventory]; !ok {
		t.Error("player inventory missing from capture")
	}
}

func TestSave_WithoutWorld(t *testing.T) {
	g := NewGame(testConfig(), defaultCatalog(t), fileStore(t))
	if err := g.Save(context.Background(), "x"); err != ErrNoWorld {
		t.Errorf("expected ErrNoWorld, got %v", err)
	}
	if err := g.Load(context.Background(), "x"); err != ErrNoWorld {
		t.Errorf("expected ErrNoWorld, got %v", err)
	}
}

func TestLoadLastScene_CorruptSave(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	dir := t.TempDir()
	store, err := storage.NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, cfg.SaveName+storage.FileExt), []byte("not a save"), 0o644); err != nil {
		t.Fatal(err)
	}

	g := NewGame(cfg, defaultCatalog(t), store)
	err = g.LoadLastScene(ctx, cfg.SaveName)
	if !errors.Is(err, storage.ErrCorruptSave) {
		t.Fatalf("LoadLastScene() = %v, want ErrCorruptSave", err)
	}
	if g.World != nil {
		t.Error("corrupt save must not build a scene")
	}

	// -fresh: удаление сохранения возвращает игру в рабочее состояние
	if err := g.DeleteSave(ctx, cfg.SaveName); err != nil {
		t.Fatal(err)
	}
	if err := g.LoadLastScene(ctx, cfg.SaveName); err != nil {
		t.Fatalf("after DeleteSave: %v", err)
	}
	if g.World == nil || g.World.SceneIndex != cfg.StartScene {
		t.Error("fresh start must build the start scene")
	}
}

package agent

import (
	"context"
	"os"
	"testing"

	"rpg-core/internal/catalog"
	"rpg-core/internal/domain"
	"rpg-core/internal/engine"
	"rpg-core/internal/infrastructure/storage"
	"rpg-core/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newVillage(t *testing.T) *engine.Game {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cfg := engine.NewConfig()
	cfg.Seed = 3
	cfg.SaveName = "bot"
	g := engine.NewGame(cfg, cat, store)
	if err := g.LoadLastScene(context.Background(), cfg.SaveName); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestBot_HealsWhenLow(t *testing.T) {
	g := newVillage(t)
	player := g.Player()
	player.Health.TakeDamage("", 90)

	bot := NewBot()
	if got := bot.Act(context.Background(), g); got != DecisionHeal {
		t.Fatalf("decision = %s, want heal", got)
	}
	if s, _ := player.ActionStore.Slot(0); s.Count != 2 {
		t.Errorf("potions left = %d, want 2", s.Count)
	}
}

func TestBot_HealsWithAbilityWithoutPotions(t *testing.T) {
	g := newVillage(t)
	player := g.Player()
	player.ActionStore.RemoveItems(0, 3)
	player.Health.TakeDamage("", 90)

	bot := NewBot()
	if got := bot.Act(context.Background(), g); got != DecisionHeal {
		t.Fatalf("decision = %s, want heal", got)
	}
	// mend: +30 за 15 магии
	if !(player.Health.Current() > 49 && player.Health.Current() < 51) || player.Magic.Current() != 35 {
		t.Errorf("health=%v magic=%v, want 50 and 35", player.Health.Current(), player.Magic.Current())
	}
}

func TestBot_FightsEnemyInSight(t *testing.T) {
	g := newVillage(t)
	grunt := g.World.GetEntity("village-grunt-1")
	g.World.UpdateEntityPos(grunt, domain.Vec3{X: 3})

	bot := NewBot()
	ctx := context.Background()
	if got := bot.Act(ctx, g); got != DecisionAbility {
		t.Fatalf("first decision = %s, want ability", got)
	}
	if g.Player().Magic.Current() != 30 {
		t.Errorf("magic = %v, fireball must cost 20", g.Player().Magic.Current())
	}

	if got := bot.Act(ctx, g); got != DecisionAttack {
		t.Fatalf("second decision = %s, want attack while fireball cools down", got)
	}
	if g.Player().Combat.TargetID != grunt.ID {
		t.Errorf("target = %q, want %q", g.Player().Combat.TargetID, grunt.ID)
	}
	if got := bot.Act(ctx, g); got != DecisionAttack {
		t.Errorf("third decision = %s, want attack to continue", got)
	}
}

func TestBot_CollectsNearbyItem(t *testing.T) {
	g := newVillage(t)
	helmet := g.World.GetEntity("village-helmet-1")

	bot := NewBot()
	// Здоровье полное: сфера лечения не нужна, идём за шлемом
	if got := bot.Act(context.Background(), g); got != DecisionCollect {
		t.Fatalf("decision = %s, want collect", got)
	}
	if m := g.Player().Mover; !m.Moving || m.Destination != helmet.Pos {
		t.Errorf("mover = %+v, want to walk to %+v", m, helmet.Pos)
	}
}

func TestBot_ExploresToPortal(t *testing.T) {
	g := newVillage(t)
	g.World.UnregisterEntity("village-helmet-1")
	g.World.UnregisterEntity("village-health-1")

	bot := NewBot()
	if got := bot.Act(context.Background(), g); got != DecisionExplore {
		t.Fatalf("decision = %s, want explore", got)
	}
	gate := g.World.GetEntity("village-gate")
	if g.Player().Mover.Destination != gate.Pos {
		t.Errorf("destination = %+v, want portal %+v", g.Player().Mover.Destination, gate.Pos)
	}
}

func TestBot_Waits(t *testing.T) {
	t.Run("during transition", func(t *testing.T) {
		g := newVillage(t)
		g.World.UpdateEntityPos(g.Player(), g.World.GetEntity("village-gate").Pos)
		g.Tick(context.Background(), 0.1)
		if !g.InTransition() {
			t.Fatal("expected a transition")
		}
		if got := NewBot().Act(context.Background(), g); got != DecisionWait {
			t.Errorf("decision = %s, want wait", got)
		}
	})

	t.Run("dead player", func(t *testing.T) {
		g := newVillage(t)
		g.Player().Health.TakeDamage("", 1000)
		if got := NewBot().Act(context.Background(), g); got != DecisionWait {
			t.Errorf("decision = %s, want wait", got)
		}
	})
}

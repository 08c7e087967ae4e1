package engine

import (
	"context"
	"os"
	"testing"

	"rpg-core/internal/catalog"
	"rpg-core/internal/domain"
	"rpg-core/internal/infrastructure/storage"
	"rpg-core/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	// Exit with the result of the tests
	os.Exit(m.Run())
}

func testConfig() Config {
	cfg := NewConfig()
	cfg.Seed = 1
	cfg.SaveName = "test"
	cfg.FadeOutTime = 0.5
	cfg.FadeWaitTime = 0.25
	cfg.FadeInTime = 0.5
	return cfg
}

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	return cat
}

func fileStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	return store
}

// newTestGame - игра на встроенном каталоге с загруженной стартовой сценой.
func newTestGame(t *testing.T, cfg Config, store storage.Store) *Game {
	t.Helper()
	g := NewGame(cfg, defaultCatalog(t), store)
	if err := g.LoadLastScene(context.Background(), cfg.SaveName); err != nil {
		t.Fatalf("LoadLastScene: %v", err)
	}
	return g
}

func mustEntity(t *testing.T, w *domain.GameWorld, id string) *domain.Entity {
	t.Helper()
	e := w.GetEntity(id)
	if e == nil {
		t.Fatalf("entity %s not found", id)
	}
	return e
}

// droppedBy - пикапы, выброшенные сущностью id.
func droppedBy(w *domain.GameWorld, id string) int {
	n := 0
	for _, e := range w.Entities() {
		if e.Pickup != nil && e.Pickup.DroppedBy == id {
			n++
		}
	}
	return n
}

// runFor крутит тики по dt общей длительностью seconds.
func runFor(g *Game, seconds, dt float64) {
	for elapsed := 0.0; elapsed < seconds; elapsed += dt {
		g.Tick(context.Background(), dt)
	}
}

const floatTolerance = 1e-6

func near(a, b float64) bool {
	d := a - b
	return d < floatTolerance && d > -floatTolerance
}

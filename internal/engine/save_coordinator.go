package engine

import (
	"context"
	"errors"
	"fmt"

	"rpg-core/internal/domain"
	"rpg-core/internal/infrastructure/storage"
	"rpg-core/internal/systems"
	"rpg-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

var ErrNoWorld = errors.New("engine: no active scene")

func (g *Game) saveContext() domain.SaveContext {
	return domain.SaveContext{Items: g, World: g.World}
}

// Capture снимает состояние всех сохраняемых сущностей активной сцены:
// ID сущности -> вид компонента -> блоб.
func (g *Game) Capture() map[string]map[string][]byte {
	out := make(map[string]map[string][]byte)
	if g.World == nil {
		return out
	}
	ctx := g.saveContext()
	for _, e := range g.World.Entities() {
		saveables := e.Saveables(ctx)
		if len(saveables) == 0 {
			continue
		}
		state := make(map[string][]byte, len(saveables))
		for _, s := range saveables {
			data, err := s.Capture()
			if err != nil {
				logger.Log.WithFields(logrus.Fields{
					"component": "save_coordinator",
					"entity_id": e.ID,
					"kind":      s.Kind,
				}).WithError(err).Error("Capture failed, component skipped")
				continue
			}
			state[s.Kind] = data
		}
		out[e.ID] = state
	}
	return out
}

// Restore раздаёт блобы сущностям активной сцены. Сущности без записи
// и виды без блоба не трогаются. Битый блоб - предупреждение, остальное
// восстанавливается.
func (g *Game) Restore(rec *storage.SaveRecord) {
	if g.World == nil || rec == nil {
		return
	}
	ctx := g.saveContext()
	restored := 0
	for _, e := range g.World.Entities() {
		state, ok := rec.Entities[e.ID]
		if !ok {
			continue
		}
		for _, s := range e.Saveables(ctx) {
			data, ok := state[s.Kind]
			if !ok {
				continue
			}
			if err := s.Restore(data); err != nil {
				logger.Log.WithFields(logrus.Fields{
					"component": "save_coordinator",
					"entity_id": e.ID,
					"kind":      s.Kind,
				}).WithError(err).Warn("Restore failed, component keeps its state")
			}
		}
		restored++
	}

	drops := 0
	for _, e := range g.World.Entities() {
		drops += systems.SpawnPendingDrops(g.World, e, g)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "save_coordinator",
		"scene":     g.World.SceneIndex,
		"entities":  restored,
		"drops":     drops,
	}).Debug("State restored")
}

// Save дописывает состояние активной сцены в сохранение name.
// Записи других сцен остаются как есть.
func (g *Game) Save(ctx context.Context, name string) error {
	if g.World == nil {
		return ErrNoWorld
	}
	rec, err := g.store.Load(ctx, name)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	rec.Merge(g.Capture())
	rec.LastScene = g.World.SceneIndex
	if err := g.store.Save(ctx, name, rec); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "save_coordinator",
		"save":      name,
		"scene":     rec.LastScene,
		"entities":  len(rec.Entities),
	}).Info("Game saved")
	return nil
}

// Load пересобирает активную сцену и восстанавливает её из сохранения name.
// Снапшот ложится на свежие компоненты: снаряды, таймеры и защёлки смерти
// живой сцены не переживают загрузку. Лут пересоздаётся по записям дропперов.
func (g *Game) Load(ctx context.Context, name string) error {
	if g.World == nil {
		return ErrNoWorld
	}
	rec, err := g.store.Load(ctx, name)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	if err := g.enterScene(g.World.SceneIndex, rec); err != nil {
		return err
	}
	g.transition = nil

	logger.Log.WithFields(logrus.Fields{
		"component": "save_coordinator",
		"save":      name,
		"scene":     g.World.SceneIndex,
	}).Info("Game loaded")
	return nil
}

// LoadLastScene собирает сцену, в которой было сделано сохранение, и
// восстанавливает её. Нет сохранения - стартовая сцена.
func (g *Game) LoadLastScene(ctx context.Context, name string) error {
	rec, err := g.store.Load(ctx, name)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	scene := g.Config.StartScene
	if len(rec.Entities) > 0 {
		scene = rec.LastScene
	}
	if err := g.enterScene(scene, rec); err != nil {
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "save_coordinator",
		"save":      name,
		"scene":     scene,
		"fresh":     len(rec.Entities) == 0,
	}).Info("Last scene loaded")
	return nil
}

// DeleteSave удаляет сохранение. Отсутствующее - не ошибка.
func (g *Game) DeleteSave(ctx context.Context, name string) error {
	if err := g.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	logger.Log.WithFields(logrus.Fields{
		"component": "save_coordinator",
		"save":      name,
	}).Info("Save deleted")
	return nil
}

// enterScene: сборка, восстановление, начальная инициализация.
func (g *Game) enterScene(index int, rec *storage.SaveRecord) error {
	w, err := g.BuildScene(index)
	if err != nil {
		return err
	}
	g.World = w
	g.Restore(rec)
	ResolveInitial(w)
	return nil
}

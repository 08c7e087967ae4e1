package engine

import (
	"context"
	"fmt"

	"rpg-core/internal/domain"
	"rpg-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

type transitionPhase uint8

const (
	phaseFadeOut transitionPhase = iota
	phaseSwap
	phaseFadeWait
	phaseFadeIn
)

var phaseNames = map[transitionPhase]string{
	phaseFadeOut:  "fade_out",
	phaseSwap:     "swap",
	phaseFadeWait: "fade_wait",
	phaseFadeIn:   "fade_in",
}

func (p transitionPhase) String() string {
	return phaseNames[p]
}

// transition - переход через портал. Шаги идут по тикам, мир продолжает жить.
type transition struct {
	portal  domain.PortalComponent
	phase   transitionPhase
	elapsed float64
}

// TransitionPhase - текущий шаг перехода, пусто если перехода нет.
func (g *Game) TransitionPhase() string {
	if g.transition == nil {
		return ""
	}
	return g.transition.phase.String()
}

// checkPortals запускает переход, если живой игрок стоит в радиусе портала.
func (g *Game) checkPortals() {
	player := g.World.Player()
	if player == nil || !player.IsAlive() {
		return
	}
	for _, e := range g.World.Entities() {
		if e.Portal == nil || player.Pos.DistanceTo(e.Pos) > e.Portal.Radius {
			continue
		}
		if e.Portal.DestinationScene < 0 {
			logger.Log.WithFields(logrus.Fields{
				"component": "portal",
				"portal_id": e.ID,
			}).Warn("Portal has no destination scene")
			continue
		}
		g.startTransition(player, e.Portal)
		return
	}
}

func (g *Game) startTransition(player *domain.Entity, portal *domain.PortalComponent) {
	player.Scheduler.CancelCurrentAction()
	g.transition = &transition{portal: *portal, phase: phaseFadeOut}

	logger.Log.WithFields(logrus.Fields{
		"component":   "portal",
		"portal_id":   portal.Identifier,
		"from_scene":  g.World.SceneIndex,
		"to_scene":    portal.DestinationScene,
		"destination": portal.Destination,
	}).Info("Scene transition started")
}

// updateTransition двигает переход на один шаг.
func (g *Game) updateTransition(ctx context.Context, dt float64) {
	t := g.transition
	if t == nil {
		return
	}
	t.elapsed += dt

	switch t.phase {
	case phaseFadeOut:
		if t.elapsed >= g.Config.FadeOutTime {
			t.phase = phaseSwap
		}
	case phaseSwap:
		if err := g.swapScene(ctx, t.portal); err != nil {
			logger.Log.WithFields(logrus.Fields{
				"component": "portal",
				"portal_id": t.portal.Identifier,
				"to_scene":  t.portal.DestinationScene,
			}).WithError(err).Error("Scene transition aborted")
			g.transition = nil
			return
		}
		t.phase = phaseFadeWait
		t.elapsed = 0
	case phaseFadeWait:
		if t.elapsed >= g.Config.FadeWaitTime {
			t.phase = phaseFadeIn
			t.elapsed = 0
		}
	case phaseFadeIn:
		if t.elapsed >= g.Config.FadeInTime {
			g.transition = nil
			logger.Log.WithFields(logrus.Fields{
				"component": "portal",
				"scene":     g.World.SceneIndex,
			}).Info("Scene transition finished")
		}
	}
}

// swapScene: сохранить старую сцену, собрать новую, восстановить её,
// поставить игрока в точку выхода парного портала, сохранить снова.
func (g *Game) swapScene(ctx context.Context, portal domain.PortalComponent) error {
	name := g.Config.SaveName
	if err := g.Save(ctx, name); err != nil {
		return fmt.Errorf("save before transition: %w", err)
	}
	rec, err := g.store.Load(ctx, name)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	previous := g.World
	if err := g.enterScene(portal.DestinationScene, rec); err != nil {
		g.World = previous
		return err
	}

	if player := g.World.Player(); player != nil {
		arrival, ok := g.arrivalPoint(portal)
		if !ok {
			logger.Log.WithFields(logrus.Fields{
				"component":   "portal",
				"scene":       g.World.SceneIndex,
				"destination": portal.Destination,
			}).Warn("Destination portal not found, using scene spawn")
		}
		g.World.UpdateEntityPos(player, arrival)
		player.Scheduler.CancelCurrentAction()
		if player.Mover != nil {
			player.Mover.Stop()
		}
	}

	if err := g.Save(ctx, name); err != nil {
		return fmt.Errorf("save after transition: %w", err)
	}
	return nil
}

// arrivalPoint - точка выхода парного портала, иначе точка появления сцены.
func (g *Game) arrivalPoint(portal domain.PortalComponent) (domain.Vec3, bool) {
	if dest := g.findPortal(portal.Destination); dest != nil {
		return dest.Portal.SpawnPoint, true
	}
	if scene, ok := g.catalog.Scene(g.World.SceneIndex); ok {
		return scene.PlayerSpawn.Vec3(), false
	}
	return domain.Vec3{}, false
}

// findPortal ищет портал активной сцены по идентификатору.
func (g *Game) findPortal(identifier string) *domain.Entity {
	for _, e := range g.World.Entities() {
		if e.Portal != nil && e.Portal.Identifier == identifier {
			return e
		}
	}
	return nil
}

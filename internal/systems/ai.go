package systems

import (
	"math"

	"rpg-core/internal/core/types/enums"
	"rpg-core/internal/domain"
	"rpg-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// UpdateAI - один тик мозгов. Приоритет: агрессия, погоня, подозрение, патруль.
func UpdateAI(w *domain.GameWorld, npc *domain.Entity, dt float64) {
	ai := npc.AI
	if ai == nil {
		return
	}
	if !npc.IsAlive() {
		// Труп не двигается и не думает
		CancelMove(npc)
		return
	}

	ai.UpdateTimers(dt)
	player := w.Player()

	before := ai.State()
	switch {
	case aggroBehaviour(npc, player):
	case chaseBehaviour(w, npc, player):
	case suspicionBehaviour(npc, player):
	default:
		patrolBehaviour(npc)
	}

	if after := ai.State(); after != before {
		logger.Log.WithFields(logrus.Fields{
			"component": "ai_system",
			"npc_id":    npc.ID,
			"npc_name":  npc.Name,
			"from":      before.String(),
			"to":        after.String(),
		}).Debug("AI state changed")
	}
}

// DistanceToPlayer - бесконечность, если игрока нет.
func DistanceToPlayer(npc, player *domain.Entity) float64 {
	if player == nil {
		return math.Inf(1)
	}
	return npc.Pos.DistanceTo(player.Pos)
}

func aggroBehaviour(npc, player *domain.Entity) bool {
	if !npc.AI.IsAggravated() {
		return false
	}
	if player != nil {
		Attack(npc, player)
	}
	npc.AI.Enter(enums.AIStateAggro)
	return true
}

func chaseBehaviour(w *domain.GameWorld, npc, player *domain.Entity) bool {
	if DistanceToPlayer(npc, player) > npc.AI.ChaseDistance || !CanAttack(w, npc, player) {
		return false
	}
	npc.AI.TimeSinceLastSawPlayer = 0
	Attack(npc, player)
	npc.AI.Enter(enums.AIStateAttack)
	return true
}

func suspicionBehaviour(npc, player *domain.Entity) bool {
	ai := npc.AI
	switch ai.State() {
	case enums.AIStateAttack, enums.AIStateAggro:
		// Потеряли игрока: идём к последней известной позиции
		if player != nil {
			StartMoveAction(npc, player.Pos)
		} else {
			npc.Scheduler.CancelCurrentAction()
		}
		ai.TimeSinceLastSawPlayer = 0
		ai.Enter(enums.AIStateSuspicion)
		return true
	case enums.AIStateSuspicion:
		return ai.TimeSinceLastSawPlayer < ai.ChaseWaitTime
	}
	return false
}

func patrolBehaviour(npc *domain.Entity) {
	ai := npc.AI
	next := ai.StartPosition
	if ai.HasPatrolPath() {
		if npc.Pos.DistanceTo(ai.CurrentWaypoint()) < ai.WaypointStopDistance {
			ai.TimeSinceReachedWaypoint = 0
			ai.CycleWaypoint()
		}
		next = ai.CurrentWaypoint()
	}
	if ai.TimeSinceReachedWaypoint > ai.WaypointDwellTime {
		StartMoveAction(npc, next)
	}
	ai.Enter(enums.AIStatePatrol)
}

// Aggravate взводит таймер агрессии и будит соседей в радиусе AggroRadius,
// кроме тех, кто уже в Aggro или Attack.
func Aggravate(w *domain.GameWorld, npc *domain.Entity) {
	ai := npc.AI
	if ai == nil || !npc.IsAlive() {
		return
	}
	ai.TimeSinceAggravated = 0
	ai.Enter(enums.AIStateAggro)

	for _, other := range w.FindWithinRadius(npc.Pos, ai.AggroRadius) {
		if other == npc || other.AI == nil || !other.IsAlive() {
			continue
		}
		if other.AI.Is(enums.AIStateAggro) || other.AI.Is(enums.AIStateAttack) {
			continue
		}
		logger.Log.WithFields(logrus.Fields{
			"component": "ai_system",
			"source_id": npc.ID,
			"npc_id":    other.ID,
		}).Debug("Aggro spread")
		Aggravate(w, other)
	}
}

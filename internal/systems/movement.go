package systems

import (
	"rpg-core/internal/core/types/enums"
	"rpg-core/internal/domain"
)

// arriveEpsilon - ближе этого агент считается пришедшим
const arriveEpsilon = 1e-3

// PathLength - длина пути прямой навигации (без обхода препятствий).
func PathLength(from, to domain.Vec3) float64 {
	return from.DistanceTo(to)
}

// CanMoveTo: путь существует (точка не внутри препятствия) и не длиннее MaxPathLength.
func CanMoveTo(w *domain.GameWorld, e *domain.Entity, dest domain.Vec3) bool {
	if e.Mover == nil {
		return false
	}
	if w != nil && w.Blocked(dest) {
		return false
	}
	return PathLength(e.Pos, dest) <= e.Mover.MaxPathLength
}

// MoveTo задаёт цель движения без смены текущего действия (так ходит бой).
func MoveTo(e *domain.Entity, dest domain.Vec3) {
	if e.Mover == nil {
		return
	}
	e.Mover.SetDestination(dest)
}

// StartMoveAction - движение как самостоятельное действие: отменяет атаку.
func StartMoveAction(e *domain.Entity, dest domain.Vec3) {
	if e.Mover == nil {
		return
	}
	e.Scheduler.StartAction(domain.ActionMove)
	MoveTo(e, dest)
}

// CancelMove останавливает агента.
func CancelMove(e *domain.Entity) {
	if e.Mover != nil {
		e.Mover.Stop()
	}
}

// UpdateMovement двигает сущность к цели и шлёт forwardSpeed аниматору.
func UpdateMovement(w *domain.GameWorld, e *domain.Entity, dt float64) {
	m := e.Mover
	if m == nil {
		return
	}
	if !e.IsAlive() || !m.Moving || dt <= 0 {
		m.Velocity = domain.Vec3{}
		if !e.IsAlive() {
			m.Moving = false
		}
		e.Animator.SetFloat(enums.ParamForwardSpeed, 0)
		return
	}

	next := e.Pos.MoveTowards(m.Destination, m.Speed*dt)
	if w.Blocked(next) {
		m.Stop()
		e.Animator.SetFloat(enums.ParamForwardSpeed, 0)
		return
	}

	m.Velocity = next.Sub(e.Pos).Scale(1 / dt)
	w.UpdateEntityPos(e, next)
	e.Animator.SetFloat(enums.ParamForwardSpeed, m.Velocity.Length())

	if next.DistanceTo(m.Destination) <= arriveEpsilon {
		m.Stop()
	}
}

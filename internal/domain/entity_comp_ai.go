package domain

import (
	"context"
	"errors"
	"math"

	"rpg-core/internal/core/types/enums"
	"rpg-core/pkg/logger"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"
)

// Параметры AI по умолчанию
const (
	DefaultChaseDistance        = 3.0
	DefaultChaseWaitTime        = 3.0
	DefaultWaypointStopDistance = 1.0
	DefaultAggroRadius          = 5.0
	DefaultWaypointDwellTime    = 2.0
	DefaultAggroDuration        = 5.0
)

// События автомата AI
const (
	aiEventPatrol    = "patrol"
	aiEventAttack    = "attack"
	aiEventSuspect   = "suspect"
	aiEventAggravate = "aggravate"
	aiEventDie       = "die"
)

var aiEventFor = map[enums.AIState]string{
	enums.AIStatePatrol:    aiEventPatrol,
	enums.AIStateAttack:    aiEventAttack,
	enums.AIStateSuspicion: aiEventSuspect,
	enums.AIStateAggro:     aiEventAggravate,
	enums.AIStateDead:      aiEventDie,
}

// AIComponent - Мозги: автомат состояний и таймеры поведения.
type AIComponent struct {
	machine *fsm.FSM

	ChaseDistance        float64
	ChaseWaitTime        float64
	WaypointStopDistance float64
	AggroRadius          float64
	WaypointDwellTime    float64
	AggroDuration        float64

	// Маршрут патруля. Пустой - стоим на стартовой позиции.
	Waypoints     []Vec3
	WaypointIndex int
	StartPosition Vec3

	TimeSinceLastSawPlayer   float64
	TimeSinceReachedWaypoint float64
	TimeSinceAggravated      float64
}

// NewAIComponent создаёт AI в состоянии Patrol.
func NewAIComponent(start Vec3, waypoints []Vec3) *AIComponent {
	return &AIComponent{
		machine:                  newAIMachine(enums.AIStatePatrol),
		ChaseDistance:            DefaultChaseDistance,
		ChaseWaitTime:            DefaultChaseWaitTime,
		WaypointStopDistance:     DefaultWaypointStopDistance,
		AggroRadius:              DefaultAggroRadius,
		WaypointDwellTime:        DefaultWaypointDwellTime,
		AggroDuration:            DefaultAggroDuration,
		Waypoints:                waypoints,
		StartPosition:            start,
		TimeSinceLastSawPlayer:   math.Inf(1),
		TimeSinceReachedWaypoint: math.Inf(1),
		TimeSinceAggravated:      math.Inf(1),
	}
}

func newAIMachine(initial enums.AIState) *fsm.FSM {
	alive := []string{
		enums.AIStatePatrol.String(),
		enums.AIStateAttack.String(),
		enums.AIStateSuspicion.String(),
		enums.AIStateAggro.String(),
	}
	all := append(append([]string(nil), alive...), enums.AIStateDead.String())

	// Из Dead выхода нет: ни одно событие кроме die его не принимает.
	return fsm.NewFSM(
		initial.String(),
		fsm.Events{
			{Name: aiEventPatrol, Src: alive, Dst: enums.AIStatePatrol.String()},
			{Name: aiEventAttack, Src: alive, Dst: enums.AIStateAttack.String()},
			{Name: aiEventAggravate, Src: alive, Dst: enums.AIStateAggro.String()},
			{Name: aiEventSuspect, Src: []string{enums.AIStateAttack.String(), enums.AIStateAggro.String()}, Dst: enums.AIStateSuspicion.String()},
			{Name: aiEventDie, Src: all, Dst: enums.AIStateDead.String()},
		},
		fsm.Callbacks{},
	)
}

func (a *AIComponent) State() enums.AIState {
	return enums.ParseAIState(a.machine.Current())
}

func (a *AIComponent) Is(state enums.AIState) bool {
	return a.machine.Is(state.String())
}

// Enter переводит автомат в state. Возвращает false, если переход запрещён
// (например, из Dead). Переход в текущее состояние - успех.
func (a *AIComponent) Enter(state enums.AIState) bool {
	event, ok := aiEventFor[state]
	if !ok {
		return false
	}
	err := a.machine.Event(context.Background(), event)
	if err == nil {
		return true
	}
	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return true
	}
	logger.Log.WithFields(logrus.Fields{
		"component": "ai_fsm",
		"from":      a.machine.Current(),
		"event":     event,
	}).Debug("AI transition rejected")
	return false
}

// UpdateTimers двигает все таймеры AI на dt.
func (a *AIComponent) UpdateTimers(dt float64) {
	a.TimeSinceLastSawPlayer += dt
	a.TimeSinceReachedWaypoint += dt
	a.TimeSinceAggravated += dt
}

// IsAggravated - таймер агрессии ещё не истёк.
func (a *AIComponent) IsAggravated() bool {
	return a.TimeSinceAggravated <= a.AggroDuration
}

func (a *AIComponent) HasPatrolPath() bool {
	return len(a.Waypoints) > 0
}

func (a *AIComponent) CurrentWaypoint() Vec3 {
	if !a.HasPatrolPath() {
		return a.StartPosition
	}
	return a.Waypoints[a.WaypointIndex%len(a.Waypoints)]
}

// CycleWaypoint переходит к следующей точке, после последней - к нулевой.
func (a *AIComponent) CycleWaypoint() {
	if !a.HasPatrolPath() {
		return
	}
	if a.WaypointIndex >= len(a.Waypoints)-1 {
		a.WaypointIndex = 0
		return
	}
	a.WaypointIndex++
}

// restoreState ставит состояние без проверки переходов (загрузка сохранения).
func (a *AIComponent) restoreState(state enums.AIState) {
	if state == enums.AIStateUnknown {
		state = enums.AIStatePatrol
	}
	a.machine.SetState(state.String())
}

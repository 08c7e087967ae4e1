package engine

import (
	"math"

	"rpg-core/internal/core/types/enums"
	"rpg-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// speedEpsilon - изменения forwardSpeed меньше этого не логируются
const speedEpsilon = 0.05

// logAnimator пишет сигналы анимации в debug-лог. Рендера в ядре нет.
type logAnimator struct {
	entityID string
	floats   map[string]float64
}

func newLogAnimator(entityID string) *logAnimator {
	return &logAnimator{entityID: entityID, floats: make(map[string]float64)}
}

func (a *logAnimator) SetTrigger(trigger enums.AnimTrigger) {
	logger.Log.WithFields(logrus.Fields{
		"component": "animator",
		"entity_id": a.entityID,
		"trigger":   trigger.String(),
	}).Debug("Animation trigger set")
}

func (a *logAnimator) ResetTrigger(trigger enums.AnimTrigger) {
	logger.Log.WithFields(logrus.Fields{
		"component": "animator",
		"entity_id": a.entityID,
		"trigger":   trigger.String(),
	}).Trace("Animation trigger reset")
}

func (a *logAnimator) SetFloat(param string, value float64) {
	if prev, ok := a.floats[param]; ok && math.Abs(prev-value) < speedEpsilon {
		return
	}
	a.floats[param] = value
	logger.Log.WithFields(logrus.Fields{
		"component": "animator",
		"entity_id": a.entityID,
		"param":     param,
		"value":     value,
	}).Trace("Animation param changed")
}

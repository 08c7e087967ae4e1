package domain

import "rpg-core/internal/core/types/enums"

// Animator - приёмник анимационных сигналов движка.
type Animator interface {
	SetTrigger(trigger enums.AnimTrigger)
	ResetTrigger(trigger enums.AnimTrigger)
	SetFloat(param string, value float64)
}

// NopAnimator ничего не делает. Используется, пока движок не подключил свой.
type NopAnimator struct{}

func (NopAnimator) SetTrigger(enums.AnimTrigger)   {}
func (NopAnimator) ResetTrigger(enums.AnimTrigger) {}
func (NopAnimator) SetFloat(string, float64)       {}

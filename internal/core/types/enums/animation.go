package enums

// AnimTrigger - дискретный сигнал для анимации движка.
type AnimTrigger uint8

const (
	TriggerUnknown AnimTrigger = iota
	TriggerIsAttacking
	TriggerStopAttack
	TriggerIsDead
)

// ParamForwardSpeed - float-параметр, который движение шлёт каждый тик.
const ParamForwardSpeed = "forwardSpeed"

var triggerToString = map[AnimTrigger]string{
	TriggerIsAttacking: "isAttacking",
	TriggerStopAttack:  "stopAttack",
	TriggerIsDead:      "isDead",
}

func (t AnimTrigger) String() string {
	if val, ok := triggerToString[t]; ok {
		return val
	}
	return "unknown"
}

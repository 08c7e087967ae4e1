package enums

import "strings"

// AIState - режим поведения персонажа под управлением AI.
type AIState uint8

const (
	AIStateUnknown AIState = iota
	AIStatePatrol
	AIStateAttack
	AIStateSuspicion
	AIStateDead
	AIStateAggro
)

var aiStateToString = map[AIState]string{
	AIStatePatrol:    "PATROL",
	AIStateAttack:    "ATTACK",
	AIStateSuspicion: "SUSPICION",
	AIStateDead:      "DEAD",
	AIStateAggro:     "AGGRO",
}

var aiStateStringToType = map[string]AIState{
	"PATROL":    AIStatePatrol,
	"ATTACK":    AIStateAttack,
	"SUSPICION": AIStateSuspicion,
	"DEAD":      AIStateDead,
	"AGGRO":     AIStateAggro,
}

func (s AIState) String() string {
	if val, ok := aiStateToString[s]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseAIState нечувствителен к регистру.
func ParseAIState(s string) AIState {
	if val, ok := aiStateStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return AIStateUnknown
}

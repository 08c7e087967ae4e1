package domain

import "strings"

// ActionType - Прерываемое действие актёра (одно в каждый момент времени)
type ActionType uint8

const (
	ActionNone ActionType = iota
	ActionMove
	ActionAttack
	ActionUseAbility
)

// Маппинг для конвертации строк (шаблоны, логи) -> Domain
var actionStringToType = map[string]ActionType{
	"NONE":        ActionNone,
	"MOVE":        ActionMove,
	"ATTACK":      ActionAttack,
	"USE_ABILITY": ActionUseAbility,
}

// Маппинг для логов Domain -> String
var actionTypeToString = map[ActionType]string{
	ActionNone:       "NONE",
	ActionMove:       "MOVE",
	ActionAttack:     "ATTACK",
	ActionUseAbility: "USE_ABILITY",
}

// ParseAction конвертирует строку в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToType[upper]; ok {
		return val
	}
	return ActionNone
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionTypeToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

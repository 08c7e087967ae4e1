package enums

import "strings"

// StatType - строка таблицы прогрессии.
type StatType uint8

const (
	StatUnknown StatType = iota
	StatHealth
	StatMagic
	StatEnergy
	StatLevelXp
	StatXpReward
	StatPhysicalDamage
	StatMagicalDamage
	StatMagicRegen
	StatHealthRegen
)

var statToString = map[StatType]string{
	StatHealth:         "HEALTH",
	StatMagic:          "MAGIC",
	StatEnergy:         "ENERGY",
	StatLevelXp:        "LEVEL_XP",
	StatXpReward:       "XP_REWARD",
	StatPhysicalDamage: "PHYSICAL_DAMAGE",
	StatMagicalDamage:  "MAGICAL_DAMAGE",
	StatMagicRegen:     "MAGIC_REGEN",
	StatHealthRegen:    "HEALTH_REGEN",
}

var statStringToType = map[string]StatType{
	"HEALTH":          StatHealth,
	"MAGIC":           StatMagic,
	"ENERGY":          StatEnergy,
	"LEVEL_XP":        StatLevelXp,
	"XP_REWARD":       StatXpReward,
	"PHYSICAL_DAMAGE": StatPhysicalDamage,
	"MAGICAL_DAMAGE":  StatMagicalDamage,
	"MAGIC_REGEN":     StatMagicRegen,
	"HEALTH_REGEN":    StatHealthRegen,
}

func (s StatType) String() string {
	if val, ok := statToString[s]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseStatType принимает и LEVEL_XP, и levelXp (так пишут в шаблонах).
func ParseStatType(s string) StatType {
	if val, ok := statStringToType[normalizeName(s)]; ok {
		return val
	}
	return StatUnknown
}

// normalizeName: "levelXp", "level-xp" -> "LEVEL_XP"
func normalizeName(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '-' || r == ' ':
			b.WriteByte('_')
		case r >= 'A' && r <= 'Z' && i > 0 && s[i-1] >= 'a' && s[i-1] <= 'z':
			b.WriteByte('_')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return strings.ToUpper(b.String())
}

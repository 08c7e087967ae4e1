package enums

import "strings"

type EntityType uint8

const (
	EntityTypeUnknown EntityType = iota
	EntityTypePlayer
	EntityTypeEnemy
	EntityTypeNPC
	EntityTypePickup
	EntityTypePortal
)

var entityTypeToString = map[EntityType]string{
	EntityTypePlayer: "PLAYER",
	EntityTypeEnemy:  "ENEMY",
	EntityTypeNPC:    "NPC",
	EntityTypePickup: "PICKUP",
	EntityTypePortal: "PORTAL",
}

var entityTypeStringToType = map[string]EntityType{
	"PLAYER": EntityTypePlayer,
	"ENEMY":  EntityTypeEnemy,
	"NPC":    EntityTypeNPC,
	"PICKUP": EntityTypePickup,
	"PORTAL": EntityTypePortal,
}

func (e EntityType) String() string {
	if val, ok := entityTypeToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseEntityType нужен при загрузке шаблонов
func ParseEntityType(s string) EntityType {
	if val, ok := entityTypeStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return EntityTypeUnknown
}

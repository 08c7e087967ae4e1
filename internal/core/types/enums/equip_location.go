package enums

// EquipLocation - слот тела, к которому привязан предмет.
type EquipLocation uint8

const (
	EquipUnknown EquipLocation = iota
	EquipHead
	EquipNeck
	EquipChest
	EquipLegs
	EquipFeet
	EquipWrists
	EquipWeapon
	EquipShield
)

var equipToString = map[EquipLocation]string{
	EquipHead:   "HEAD",
	EquipNeck:   "NECK",
	EquipChest:  "CHEST",
	EquipLegs:   "LEGS",
	EquipFeet:   "FEET",
	EquipWrists: "WRISTS",
	EquipWeapon: "WEAPON",
	EquipShield: "SHIELD",
}

var equipStringToType = map[string]EquipLocation{
	"HEAD":   EquipHead,
	"NECK":   EquipNeck,
	"CHEST":  EquipChest,
	"LEGS":   EquipLegs,
	"FEET":   EquipFeet,
	"WRISTS": EquipWrists,
	"WEAPON": EquipWeapon,
	"SHIELD": EquipShield,
}

func (l EquipLocation) String() string {
	if val, ok := equipToString[l]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseEquipLocation(s string) EquipLocation {
	if val, ok := equipStringToType[normalizeName(s)]; ok {
		return val
	}
	return EquipUnknown
}

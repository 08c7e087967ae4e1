package enums

// ItemKind - закрытый набор вариантов предмета.
// Поведение по варианту делаем через switch, без type assertion.
type ItemKind uint8

const (
	ItemUnknown ItemKind = iota
	ItemPlain
	ItemEquipable
	ItemStatsEquipable
	ItemWeapon
	ItemAction
	ItemAbility
)

var itemKindToString = map[ItemKind]string{
	ItemPlain:          "PLAIN",
	ItemEquipable:      "EQUIPABLE",
	ItemStatsEquipable: "STATS_EQUIPABLE",
	ItemWeapon:         "WEAPON",
	ItemAction:         "ACTION",
	ItemAbility:        "ABILITY",
}

var itemKindStringToType = map[string]ItemKind{
	"PLAIN":           ItemPlain,
	"EQUIPABLE":       ItemEquipable,
	"STATS_EQUIPABLE": ItemStatsEquipable,
	"WEAPON":          ItemWeapon,
	"ACTION":          ItemAction,
	"ABILITY":         ItemAbility,
}

func (k ItemKind) String() string {
	if val, ok := itemKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseItemKind(s string) ItemKind {
	if val, ok := itemKindStringToType[normalizeName(s)]; ok {
		return val
	}
	return ItemUnknown
}

// PickupKind - что происходит при подборе предмета в мире.
type PickupKind uint8

const (
	PickupUnknown PickupKind = iota
	PickupItem               // кладётся в инвентарь
	PickupHealth             // лечит и прячется на время
	PickupWeapon             // выдаёт оружие и прячется на время
)

var pickupKindToString = map[PickupKind]string{
	PickupItem:   "ITEM",
	PickupHealth: "HEALTH",
	PickupWeapon: "WEAPON",
}

var pickupKindStringToType = map[string]PickupKind{
	"ITEM":   PickupItem,
	"HEALTH": PickupHealth,
	"WEAPON": PickupWeapon,
}

func (k PickupKind) String() string {
	if val, ok := pickupKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParsePickupKind(s string) PickupKind {
	if val, ok := pickupKindStringToType[normalizeName(s)]; ok {
		return val
	}
	return PickupUnknown
}

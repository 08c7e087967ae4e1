package domain

import (
	"math"

	"rpg-core/internal/core/types/enums"
)

// ProjectileConfig - параметры снаряда оружия.
type ProjectileConfig struct {
	Speed           float64
	Homing          bool
	MaxLifetime     float64
	TimeAfterImpact float64
	HitRadius       float64
}

func DefaultProjectileConfig() ProjectileConfig {
	return ProjectileConfig{
		Speed:           1,
		MaxLifetime:     10,
		TimeAfterImpact: 2,
		HitRadius:       0.25,
	}
}

// WeaponConfig - неизменяемый шаблон оружия.
type WeaponConfig struct {
	ID         string
	Range      float64
	Damage     float64
	RightHand  bool
	Projectile *ProjectileConfig
}

// DefaultWeaponConfig - "голые руки", если шаблон не задан.
func DefaultWeaponConfig() *WeaponConfig {
	return &WeaponConfig{ID: "unarmed", Range: 2, Damage: 20, RightHand: true}
}

func (w *WeaponConfig) HasProjectile() bool {
	return w != nil && w.Projectile != nil
}

// AbilityConfig - шаблон способности.
type AbilityConfig struct {
	OnSelf     bool
	DamageType enums.StatType
	CostType   enums.StatType
	CostValue  float64
	Duration   float64
	Range      float64
	Cooldown   float64
	Damage     float64
	Heal       float64
	Weapon     *WeaponConfig
}

func DefaultAbilityConfig() *AbilityConfig {
	return &AbilityConfig{
		DamageType: enums.StatPhysicalDamage,
		CostType:   enums.StatMagic,
		CostValue:  25,
		Range:      1,
		Cooldown:   3,
	}
}

// EffectiveRange: дальность оружия, если оно привязано, иначе своя.
func (a *AbilityConfig) EffectiveRange() float64 {
	if a.Weapon != nil {
		return a.Weapon.Range
	}
	return a.Range
}

// Item - неизменяемый шаблон предмета. Вариант задаётся Kind.
type Item struct {
	ID          string
	DisplayName string
	Description string
	Icon        string
	Kind        enums.ItemKind
	Stackable   bool
	MaxPerSlot  int

	// Equipable / StatsEquipable / Weapon
	Location   enums.EquipLocation
	Additive   map[enums.StatType]float64
	Percentage map[enums.StatType]float64

	// Weapon
	Weapon *WeaponConfig

	// Action / Ability
	Consumable bool
	Effect     string
	Ability    *AbilityConfig

	// Для пикапа в мире
	PickupPrefab string
}

// IsEquipable - можно ли надеть предмет.
func (i *Item) IsEquipable() bool {
	if i == nil {
		return false
	}
	switch i.Kind {
	case enums.ItemEquipable, enums.ItemStatsEquipable, enums.ItemWeapon:
		return true
	default:
		return false
	}
}

// IsAction - можно ли положить на панель действий.
func (i *Item) IsAction() bool {
	if i == nil {
		return false
	}
	switch i.Kind {
	case enums.ItemAction, enums.ItemAbility:
		return true
	default:
		return false
	}
}

// SlotCap - сколько штук помещается в один слот инвентаря.
func (i *Item) SlotCap() int {
	if !i.Stackable {
		return 1
	}
	if i.MaxPerSlot <= 0 {
		return math.MaxInt
	}
	return i.MaxPerSlot
}

// Modifiers - вклад предмета в стат. Только StatsEquipable и Weapon дают модификаторы.
func (i *Item) Modifiers(stat enums.StatType) (additive, percentage float64) {
	if i == nil {
		return 0, 0
	}
	switch i.Kind {
	case enums.ItemStatsEquipable, enums.ItemWeapon:
		return i.Additive[stat], i.Percentage[stat]
	default:
		return 0, 0
	}
}

// ItemResolver - доступ к шаблонам по ID (каталог).
type ItemResolver interface {
	Item(id string) (*Item, bool)
	Weapon(id string) (*WeaponConfig, bool)
}

// SameItem сравнивает предметы по ID: после перезагрузки каталога
// один и тот же шаблон может прийти другим указателем.
func SameItem(a, b *Item) bool {
	if a == b {
		return true
	}
	return a != nil && b != nil && a.ID == b.ID
}

package domain

import "math"

// DefaultTimeBetweenAttacks - пауза между атаками, сек.
const DefaultTimeBetweenAttacks = 2.0

// CombatComponent - оружие и текущая цель.
type CombatComponent struct {
	Weapon        *WeaponConfig
	DefaultWeapon *WeaponConfig
	TargetID      string

	TimeBetweenAttacks  float64
	TimeSinceLastAttack float64
}

func NewCombatComponent(defaultWeapon *WeaponConfig) *CombatComponent {
	if defaultWeapon == nil {
		defaultWeapon = DefaultWeaponConfig()
	}
	return &CombatComponent{
		Weapon:              defaultWeapon,
		DefaultWeapon:       defaultWeapon,
		TimeBetweenAttacks:  DefaultTimeBetweenAttacks,
		TimeSinceLastAttack: math.Inf(1),
	}
}

// EquipWeapon меняет текущее оружие. nil - оружие по умолчанию.
func (c *CombatComponent) EquipWeapon(weapon *WeaponConfig) {
	if weapon == nil {
		weapon = c.DefaultWeapon
	}
	c.Weapon = weapon
}

// UpdateWeapon берёт оружие из слота Weapon экипировки.
func (c *CombatComponent) UpdateWeapon(equipped *Item) {
	if equipped != nil && equipped.Weapon != nil {
		c.EquipWeapon(equipped.Weapon)
		return
	}
	c.EquipWeapon(nil)
}

// InWeaponRange - цель в радиусе текущего оружия.
func (c *CombatComponent) InWeaponRange(from, to Vec3) bool {
	return from.DistanceTo(to) <= c.Weapon.Range
}

// ReadyToAttack - прошла пауза между атаками.
func (c *CombatComponent) ReadyToAttack() bool {
	return c.TimeSinceLastAttack >= c.TimeBetweenAttacks
}

func (c *CombatComponent) HasTarget() bool {
	return c.TargetID != ""
}

package domain

import (
	"rpg-core/internal/core/types/enums"
)

// Entity - сущность мира. Если компонент nil - свойство отсутствует.
type Entity struct {
	// Идентификация
	ID       string
	Type     enums.EntityType
	Name     string
	PrefabID string

	Pos    Vec3
	Height float64
	Radius float64

	Scheduler *ActionScheduler
	Animator  Animator

	// Компоненты
	Stats       *BaseStatsComponent
	Experience  *ExperienceComponent
	Health      *HealthComponent
	Magic       *MagicComponent
	Combat      *CombatComponent
	AI          *AIComponent
	Mover       *MoverComponent
	Inventory   *InventoryComponent
	Equipment   *EquipmentComponent
	ActionStore *ActionStoreComponent
	Abilities   *AbilitiesComponent
	Dropper     *ItemDropperComponent
	Pickup      *PickupComponent
	Portal      *PortalComponent

	wired bool
}

func NewEntity(id string, typ enums.EntityType, name string) *Entity {
	return &Entity{
		ID:        id,
		Type:      typ,
		Name:      name,
		Height:    1.8,
		Radius:    0.5,
		Scheduler: NewActionScheduler(),
		Animator:  NopAnimator{},
	}
}

// IsAlive - нет здоровья или оно ещё не обнулилось.
func (e *Entity) IsAlive() bool {
	return e.Health == nil || !e.Health.IsDead()
}

// Level - уровень по BaseStats, 1 если статов нет.
func (e *Entity) Level() int {
	if e.Stats == nil {
		return 1
	}
	return e.Stats.Level()
}

// Wire связывает компоненты одной сущности между собой. Вызывается один раз
// после того, как все компоненты присвоены.
func (e *Entity) Wire() {
	if e.wired {
		return
	}
	e.wired = true

	if e.Stats != nil {
		e.Stats.xp = e.Experience
		e.Stats.modifiers = e.statModifiers
		if e.Experience != nil {
			e.Experience.OnXPGained = append(e.Experience.OnXPGained, e.Stats.UpdateLevel)
		}
	}

	if e.Health != nil {
		if e.Stats != nil {
			e.Health.MaxSource = func() float64 { return e.Stats.Stat(enums.StatHealth) }
			e.Health.XPReward = func() float64 { return e.Stats.Stat(enums.StatXpReward) }
			e.Stats.OnLevelUp = append(e.Stats.OnLevelUp, e.Health.LevelUp)
		}
		e.Health.OnDeathLatch = append(e.Health.OnDeathLatch, e.onDeath)
	}

	if e.Magic != nil {
		if e.Stats != nil {
			e.Magic.MaxSource = func() float64 { return e.Stats.Stat(enums.StatMagic) }
			e.Magic.RegenRate = func() float64 { return e.Stats.Stat(enums.StatMagicRegen) }
			e.Stats.OnLevelUp = append(e.Stats.OnLevelUp, e.Magic.LevelUp)
		}
		e.Magic.IsOwnerDead = func() bool { return !e.IsAlive() }
	}

	if e.Mover != nil {
		e.Scheduler.Register(ActionMove, e.Mover.Stop)
	}

	if e.Combat != nil {
		e.Scheduler.Register(ActionAttack, e.CancelAttack)
		if e.Equipment != nil {
			e.Equipment.OnEquipmentUpdated = append(e.Equipment.OnEquipmentUpdated, func() {
				e.Combat.UpdateWeapon(e.Equipment.ItemInSlot(enums.EquipWeapon))
			})
		}
	}
}

// CancelAttack сбрасывает цель и шлёт stopAttack.
func (e *Entity) CancelAttack() {
	if e.Combat == nil {
		return
	}
	e.Combat.TargetID = ""
	e.Animator.ResetTrigger(enums.TriggerIsAttacking)
	e.Animator.SetTrigger(enums.TriggerStopAttack)
}

// onDeath - защёлка смерти: анимация, отмена действия, заморозка.
func (e *Entity) onDeath() {
	e.Animator.SetTrigger(enums.TriggerIsDead)
	e.Scheduler.CancelCurrentAction()
	if e.Mover != nil {
		e.Mover.Stop()
	}
	if e.AI != nil {
		e.AI.Enter(enums.AIStateDead)
	}
}

// statModifiers - закрытый список источников модификаторов: экипировка.
// Оружие даёт модификаторы через предмет в слоте Weapon.
func (e *Entity) statModifiers(stat enums.StatType) (additive, percentage float64) {
	if e.Equipment != nil {
		a, p := e.Equipment.Modifiers(stat)
		additive += a
		percentage += p
	}
	return additive, percentage
}

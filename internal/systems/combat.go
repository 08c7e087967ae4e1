package systems

import (
	"rpg-core/internal/core/types/enums"
	"rpg-core/internal/domain"
	"rpg-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Attack делает атаку текущим действием и запоминает цель.
func Attack(attacker, target *domain.Entity) {
	if attacker.Combat == nil || target == nil {
		return
	}
	attacker.Scheduler.StartAction(domain.ActionAttack)
	attacker.Combat.TargetID = target.ID
}

// CanAttack: цель жива и либо достижима, либо уже в радиусе оружия.
func CanAttack(w *domain.GameWorld, attacker, target *domain.Entity) bool {
	if attacker.Combat == nil || target == nil {
		return false
	}
	if target.Health == nil || target.Health.IsDead() {
		return false
	}
	if !CanMoveTo(w, attacker, target.Pos) && !attacker.Combat.InWeaponRange(attacker.Pos, target.Pos) {
		return false
	}
	return true
}

// EquipWeapon ставит оружие (nil - оружие по умолчанию).
func EquipWeapon(e *domain.Entity, weapon *domain.WeaponConfig) {
	if e.Combat == nil {
		return
	}
	e.Combat.EquipWeapon(weapon)
}

// UpdateCombat - поведение бойца за тик: подойти к цели или ударить.
func UpdateCombat(w *domain.GameWorld, e *domain.Entity, dt float64) {
	c := e.Combat
	if c == nil {
		return
	}
	c.TimeSinceLastAttack += dt

	if !e.IsAlive() || !c.HasTarget() {
		return
	}
	target := w.GetEntity(c.TargetID)
	if target == nil || !target.IsAlive() {
		return
	}

	if !c.InWeaponRange(e.Pos, target.Pos) {
		MoveTo(e, target.Pos)
		return
	}
	CancelMove(e)
	attackBehaviour(w, e)
}

// attackBehaviour запускает анимацию удара, если прошла пауза.
// Кадр удара в безголовом ядре наступает в том же тике.
func attackBehaviour(w *domain.GameWorld, e *domain.Entity) {
	if !e.Combat.ReadyToAttack() {
		return
	}
	e.Animator.ResetTrigger(enums.TriggerStopAttack)
	e.Animator.SetTrigger(enums.TriggerIsAttacking)
	e.Combat.TimeSinceLastAttack = 0

	if e.Combat.Weapon.HasProjectile() {
		OnShootFrame(w, e)
		return
	}
	OnHitFrame(w, e)
}

// HitDamage - урон удара: стат PhysicalDamage (с модификаторами) плюс урон оружия.
func HitDamage(e *domain.Entity) float64 {
	damage := 0.0
	if e.Stats != nil {
		damage = e.Stats.Stat(enums.StatPhysicalDamage)
	}
	if e.Combat != nil {
		damage += e.Combat.Weapon.Damage
	}
	return damage
}

// OnHitFrame - кадр удара: мгновенный урон текущей цели.
func OnHitFrame(w *domain.GameWorld, e *domain.Entity) {
	if e.Combat == nil || !e.Combat.HasTarget() {
		return
	}
	target := w.GetEntity(e.Combat.TargetID)
	if target == nil || target.Health == nil {
		return
	}

	damage := HitDamage(e)
	before := target.Health.Current()
	died := target.Health.TakeDamage(e.ID, damage)

	logger.Log.WithFields(logrus.Fields{
		"component":   "combat_system",
		"attacker_id": e.ID,
		"target_id":   target.ID,
		"weapon":      e.Combat.Weapon.ID,
		"damage":      damage,
		"hp_before":   before,
		"hp_after":    target.Health.Current(),
		"target_died": died,
	}).Debug("Hit resolved")
}

// OnShootFrame - кадр выстрела: снаряд, если оружие его объявляет, иначе удар.
func OnShootFrame(w *domain.GameWorld, e *domain.Entity) {
	if e.Combat == nil || !e.Combat.HasTarget() {
		return
	}
	if !e.Combat.Weapon.HasProjectile() {
		OnHitFrame(w, e)
		return
	}
	target := w.GetEntity(e.Combat.TargetID)
	if target == nil {
		return
	}
	LaunchProjectile(w, e, target, HitDamage(e), *e.Combat.Weapon.Projectile)
}

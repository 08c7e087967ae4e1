package systems

import (
	"rpg-core/internal/core/types/enums"
	"rpg-core/internal/domain"
	"rpg-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// UseAbility применяет способность из слота index. Проверки по порядку:
// дальность, перезарядка, стоимость. Провал любой - false без списаний.
func UseAbility(w *domain.GameWorld, user *domain.Entity, index int, targetID string) bool {
	log := logger.Log.WithFields(logrus.Fields{
		"component": "ability_system",
		"user_id":   user.ID,
		"slot":      index,
	})

	if !user.IsAlive() || user.Abilities == nil {
		return false
	}
	slot := user.Abilities.Slot(index)
	if slot == nil || slot.Ability == nil || slot.Ability.Ability == nil {
		log.Debug("Ability use rejected: empty slot")
		return false
	}
	cfg := slot.Ability.Ability

	// 1. Дальность
	var target *domain.Entity
	if !cfg.OnSelf {
		res := ValidateTarget(user, targetID, cfg.EffectiveRange(), true, w)
		if !res.Valid {
			log.WithField("reason", res.Message).Debug("Ability use rejected")
			return false
		}
		target = res.Target
	}

	// 2. Перезарядка
	if slot.TimeSinceUsed < cfg.Cooldown {
		log.WithField("cooldown_left", slot.CooldownRemaining()).Debug("Ability use rejected: cooling down")
		return false
	}

	// 3. Стоимость
	if !payAbilityCost(user, cfg) {
		log.Debug("Ability use rejected: not enough resource")
		return false
	}

	slot.TimeSinceUsed = 0
	user.Scheduler.StartAction(domain.ActionUseAbility)
	applyAbility(w, user, target, cfg)

	log.WithField("ability", slot.Ability.ID).Debug("Ability used")
	return true
}

// payAbilityCost списывает стоимость. Расходуемый пул есть только у Magic.
func payAbilityCost(user *domain.Entity, cfg *domain.AbilityConfig) bool {
	if cfg.CostValue <= 0 {
		return true
	}
	switch cfg.CostType {
	case enums.StatMagic:
		return user.Magic != nil && user.Magic.UseMagic(cfg.CostValue)
	default:
		return true
	}
}

func applyAbility(w *domain.GameWorld, user, target *domain.Entity, cfg *domain.AbilityConfig) {
	if cfg.OnSelf {
		if user.Health != nil {
			user.Health.Heal(cfg.Heal)
		}
		return
	}
	if target == nil || target.Health == nil {
		return
	}

	switch cfg.DamageType {
	case enums.StatMagicalDamage:
		damage := cfg.Damage
		if user.Stats != nil {
			damage += user.Stats.Stat(enums.StatMagicalDamage)
		}
		target.Health.TakeDamage(user.ID, damage)
	default:
		damage := cfg.Damage
		if cfg.Weapon != nil {
			damage = cfg.Weapon.Damage
		}
		if cfg.Weapon.HasProjectile() {
			LaunchProjectile(w, user, target, damage, *cfg.Weapon.Projectile)
			return
		}
		target.Health.TakeDamage(user.ID, damage)
	}
}

// UpdateAbilities двигает таймеры перезарядки.
func UpdateAbilities(e *domain.Entity, dt float64) {
	if e.Abilities != nil {
		e.Abilities.Tick(dt)
	}
}

package systems

import (
	"context"

	"rpg-core/internal/core/types/enums"
	"rpg-core/internal/domain"
	"rpg-core/internal/scripting"
	"rpg-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// EffectRunner выполняет скрипт эффекта предмета.
type EffectRunner interface {
	Run(ctx context.Context, name string, user scripting.User) (scripting.Effect, error)
}

// UseActionSlot использует предмет панели действий. Расходуемые тратят одну
// штуку. Способность на панели ищется в слотах Abilities.
func UseActionSlot(ctx context.Context, w *domain.GameWorld, user *domain.Entity, index int, targetID string, effects EffectRunner) bool {
	if user.ActionStore == nil || !user.IsAlive() {
		return false
	}
	return user.ActionStore.Use(index, func(item *domain.Item) bool {
		if item.Kind == enums.ItemAbility {
			slot := abilitySlotFor(user, item)
			return slot >= 0 && UseAbility(w, user, slot, targetID)
		}
		return applyItemEffect(ctx, w, user, item, effects)
	})
}

func abilitySlotFor(user *domain.Entity, item *domain.Item) int {
	if user.Abilities == nil {
		return -1
	}
	for i := 0; i < user.Abilities.Size(); i++ {
		if domain.SameItem(user.Abilities.Ability(i), item) {
			return i
		}
	}
	return -1
}

// applyItemEffect гоняет скрипт эффекта. Предмет без скрипта просто используется.
func applyItemEffect(ctx context.Context, w *domain.GameWorld, user *domain.Entity, item *domain.Item, effects EffectRunner) bool {
	log := logger.Log.WithFields(logrus.Fields{
		"component": "action_system",
		"user_id":   user.ID,
		"item_id":   item.ID,
	})
	if item.Effect == "" {
		log.Debug("Item used without effect")
		return true
	}
	if effects == nil {
		log.Warn("Item has an effect script but no script engine is configured")
		return false
	}

	eff, err := effects.Run(ctx, item.Effect, scriptUser(user))
	if err != nil {
		log.WithError(err).Error("Effect script failed, item not consumed")
		return false
	}
	ApplyEffect(w, user, eff)
	return true
}

// ApplyEffect применяет результат скрипта. Урон идёт по текущей цели пользователя.
func ApplyEffect(w *domain.GameWorld, user *domain.Entity, eff scripting.Effect) {
	if eff.Heal > 0 && user.Health != nil {
		user.Health.Heal(eff.Heal)
	}
	if eff.Magic > 0 && user.Magic != nil {
		user.Magic.RestoreMagic(eff.Magic)
	}
	if eff.XP > 0 && user.Experience != nil {
		user.Experience.GainXP(eff.XP)
	}
	if eff.Damage > 0 && user.Combat != nil && user.Combat.HasTarget() {
		if target := w.GetEntity(user.Combat.TargetID); target != nil && target.Health != nil {
			target.Health.TakeDamage(user.ID, eff.Damage)
		}
	}
}

func scriptUser(e *domain.Entity) scripting.User {
	u := scripting.User{Level: e.Level()}
	if e.Health != nil {
		u.Health = e.Health.Current()
		u.MaxHealth = e.Health.Max()
	}
	if e.Magic != nil {
		u.Magic = e.Magic.Current()
		u.MaxMagic = e.Magic.Max()
	}
	return u
}

package systems

import (
	"context"
	"errors"
	"testing"

	"rpg-core/internal/core/types/enums"
	"rpg-core/internal/domain"
	"rpg-core/internal/scripting"
)

// fakeEffects возвращает заданный результат и запоминает вызовы
type fakeEffects struct {
	effect scripting.Effect
	err    error
	calls  []string
	users  []scripting.User
}

func (f *fakeEffects) Run(_ context.Context, name string, user scripting.User) (scripting.Effect, error) {
	f.calls = append(f.calls, name)
	f.users = append(f.users, user)
	return f.effect, f.err
}

func healthPotion() *domain.Item {
	return &domain.Item{
		ID:         "health_potion",
		Kind:       enums.ItemAction,
		Stackable:  true,
		MaxPerSlot: 10,
		Consumable: true,
		Effect:     "potion_heal",
	}
}

func TestUseActionSlot_ConsumablePotion(t *testing.T) {
	ctx := context.Background()
	w := newTestWorld()
	p := newPlayer(w, domain.Vec3{})
	p.ActionStore.AddAction(healthPotion(), 0, 2)
	p.Health.TakeDamage("", 60)
	fx := &fakeEffects{effect: scripting.Effect{Heal: 30}}

	if !UseActionSlot(ctx, w, p, 0, "", fx) {
		t.Fatal("first use failed")
	}
	if p.Health.Current() != 70 {
		t.Errorf("hp = %v, want 70", p.Health.Current())
	}
	if slot, _ := p.ActionStore.Slot(0); slot.Count != 1 {
		t.Errorf("count = %d, want 1", slot.Count)
	}
	if fx.calls[0] != "potion_heal" || fx.users[0].Health != 40 || fx.users[0].MaxHealth != 100 {
		t.Errorf("script call = %v user = %+v", fx.calls, fx.users[0])
	}

	UseActionSlot(ctx, w, p, 0, "", fx)
	if _, ok := p.ActionStore.Slot(0); ok {
		t.Error("slot should be removed when the last potion is used")
	}
	if UseActionSlot(ctx, w, p, 0, "", fx) {
		t.Error("empty slot should fail")
	}
	if p.Health.Current() != 100 {
		t.Errorf("hp = %v, want capped at 100", p.Health.Current())
	}
}

func TestUseActionSlot_ScriptFailureKeepsItem(t *testing.T) {
	ctx := context.Background()
	w := newTestWorld()
	p := newPlayer(w, domain.Vec3{})
	p.ActionStore.AddAction(healthPotion(), 0, 1)

	tests := []struct {
		name    string
		effects EffectRunner
	}{
		{"script error", &fakeEffects{err: errors.New("boom")}},
		{"no engine", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if UseActionSlot(ctx, w, p, 0, "", tt.effects) {
				t.Error("use should fail")
			}
			if slot, ok := p.ActionStore.Slot(0); !ok || slot.Count != 1 {
				t.Errorf("potion must stay in slot, got %+v ok=%v", slot, ok)
			}
		})
	}
}

func TestUseActionSlot_AbilityOnBar(t *testing.T) {
	ctx := context.Background()
	w := newTestWorld()
	p := newPlayer(w, domain.Vec3{})
	g := newGrunt(w, "g1", domain.Vec3{X: 3})
	fb := fireball()
	p.Abilities.SetAbility(2, fb, 1, true)
	p.ActionStore.AddAction(fb, 5, 1)

	if !UseActionSlot(ctx, w, p, 5, g.ID, nil) {
		t.Fatal("ability on the action bar should be usable")
	}
	if g.Health.Current() != 81 {
		t.Errorf("grunt hp = %v, want 81", g.Health.Current())
	}
	if _, ok := p.ActionStore.Slot(5); !ok {
		t.Error("ability is not consumable and must stay on the bar")
	}
	if UseActionSlot(ctx, w, p, 5, g.ID, nil) {
		t.Error("cooldown should block the second use")
	}
}

func TestApplyEffect(t *testing.T) {
	w := newTestWorld()
	p := newPlayer(w, domain.Vec3{})
	g := newGrunt(w, "g1", domain.Vec3{X: 1})
	p.Magic.UseMagic(30)

	ApplyEffect(w, p, scripting.Effect{Magic: 10, XP: 4, Damage: 10})
	if p.Magic.Current() != 30 || p.Experience.Current() != 4 {
		t.Errorf("magic = %v xp = %v", p.Magic.Current(), p.Experience.Current())
	}
	if g.Health.Current() != 100 {
		t.Error("damage without a combat target must be ignored")
	}

	Attack(p, g)
	ApplyEffect(w, p, scripting.Effect{Damage: 10})
	if g.Health.Current() != 90 {
		t.Errorf("grunt hp = %v, want 90", g.Health.Current())
	}
}

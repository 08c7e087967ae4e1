package systems

import (
	"testing"

	"rpg-core/internal/core/types/enums"
	"rpg-core/internal/domain"
)

func fireball() *domain.Item {
	return &domain.Item{
		ID:   "fireball",
		Kind: enums.ItemAbility,
		Ability: &domain.AbilityConfig{
			DamageType: enums.StatMagicalDamage,
			CostType:   enums.StatMagic,
			CostValue:  20,
			Range:      8,
			Cooldown:   3,
			Damage:     15,
		},
	}
}

func TestUseAbility_GatesInOrder(t *testing.T) {
	w := newTestWorld()
	p := newPlayer(w, domain.Vec3{})
	g := newGrunt(w, "g1", domain.Vec3{X: 5})
	far := newGrunt(w, "far", domain.Vec3{X: 20})
	p.Abilities.SetAbility(0, fireball(), 1, true)

	steps := []struct {
		name      string
		advance   float64
		target    string
		want      bool
		wantMagic float64
		wantHP    float64
	}{
		{"out of range", 0, far.ID, false, 50, 100},
		{"unknown target", 0, "nobody", false, 50, 100},
		{"hits in range", 0, g.ID, true, 30, 81}, // 15 + MagicalDamage 4
		{"cooling down", 1, g.ID, false, 30, 81},
		{"ready again", 2, g.ID, true, 10, 62},
		{"not enough magic", 3, g.ID, false, 10, 62},
	}

	for _, s := range steps {
		UpdateAbilities(p, s.advance)
		if got := UseAbility(w, p, 0, s.target); got != s.want {
			t.Fatalf("%s: UseAbility = %v, want %v", s.name, got, s.want)
		}
		if p.Magic.Current() != s.wantMagic {
			t.Errorf("%s: magic = %v, want %v", s.name, p.Magic.Current(), s.wantMagic)
		}
		if g.Health.Current() != s.wantHP {
			t.Errorf("%s: grunt hp = %v, want %v", s.name, g.Health.Current(), s.wantHP)
		}
	}

	if p.Scheduler.Current() != domain.ActionUseAbility {
		t.Errorf("current action = %v, want UseAbility", p.Scheduler.Current())
	}
}

func TestUseAbility_FailedCostKeepsCooldown(t *testing.T) {
	w := newTestWorld()
	p := newPlayer(w, domain.Vec3{})
	g := newGrunt(w, "g1", domain.Vec3{X: 1})
	p.Abilities.SetAbility(0, fireball(), 1, true)

	p.Magic.UseMagic(45)
	if UseAbility(w, p, 0, g.ID) {
		t.Fatal("use without enough magic should fail")
	}
	if slot := p.Abilities.Slot(0); slot.CooldownRemaining() != 0 {
		t.Errorf("failed use must not start cooldown, remaining = %v", slot.CooldownRemaining())
	}

	p.Magic.RestoreMagic(50)
	if !UseAbility(w, p, 0, g.ID) {
		t.Error("ability should be usable right after magic is restored")
	}
}

func TestUseAbility_OnSelfHeal(t *testing.T) {
	w := newTestWorld()
	p := newPlayer(w, domain.Vec3{})
	mend := &domain.Item{
		ID:   "mend",
		Kind: enums.ItemAbility,
		Ability: &domain.AbilityConfig{
			OnSelf:    true,
			CostType:  enums.StatMagic,
			CostValue: 15,
			Cooldown:  5,
			Heal:      30,
		},
	}
	p.Abilities.SetAbility(1, mend, 1, true)
	p.Health.TakeDamage("", 50)

	if !UseAbility(w, p, 1, "") {
		t.Fatal("self ability should not need a target")
	}
	if p.Health.Current() != 80 || p.Magic.Current() != 35 {
		t.Errorf("hp = %v magic = %v, want 80 and 35", p.Health.Current(), p.Magic.Current())
	}
}

func TestUseAbility_WeaponProjectile(t *testing.T) {
	w := newTestWorld()
	p := newPlayer(w, domain.Vec3{})
	g := newGrunt(w, "g1", domain.Vec3{X: 9})
	cfg := domain.DefaultProjectileConfig()
	shot := &domain.Item{
		ID:   "power_shot",
		Kind: enums.ItemAbility,
		Ability: &domain.AbilityConfig{
			DamageType: enums.StatPhysicalDamage,
			CostType:   enums.StatMagic,
			CostValue:  10,
			Range:      1,
			Cooldown:   2,
			Weapon:     &domain.WeaponConfig{ID: "bow", Range: 10, Damage: 8, Projectile: &cfg},
		},
	}
	p.Abilities.SetAbility(0, shot, 1, true)

	// Дальность берётся от оружия, а не от способности
	if !UseAbility(w, p, 0, g.ID) {
		t.Fatal("target within weapon range should be accepted")
	}
	if len(w.Projectiles) != 1 || w.Projectiles[0].Damage != 8 {
		t.Fatalf("projectiles = %+v", w.Projectiles)
	}
	if g.Health.Current() != 100 {
		t.Error("projectile ability must not deal instant damage")
	}
}

func TestUseAbility_EmptyOrDead(t *testing.T) {
	w := newTestWorld()
	p := newPlayer(w, domain.Vec3{})
	g := newGrunt(w, "g1", domain.Vec3{X: 1})
	p.Abilities.SetAbility(0, fireball(), 1, true)

	if UseAbility(w, p, 3, g.ID) {
		t.Error("empty slot should fail")
	}
	g.Health.TakeDamage("", 1000)
	if UseAbility(w, p, 0, g.ID) {
		t.Error("dead target should fail")
	}
	if p.Magic.Current() != 50 {
		t.Error("failed uses must not spend magic")
	}
}

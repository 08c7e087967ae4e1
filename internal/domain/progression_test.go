package domain

import (
	"testing"

	"rpg-core/internal/core/types/enums"
)

func TestProgression_GetStat(t *testing.T) {
	p := testProgression()

	tests := []struct {
		name  string
		stat  enums.StatType
		class enums.CharacterClass
		level int
		want  float64
	}{
		{"first level", enums.StatHealth, enums.ClassPlayer, 1, 100},
		{"last level", enums.StatHealth, enums.ClassPlayer, 3, 150},
		{"saturates past the end", enums.StatHealth, enums.ClassPlayer, 9, 150},
		{"level zero", enums.StatHealth, enums.ClassPlayer, 0, 0},
		{"negative level", enums.StatHealth, enums.ClassPlayer, -3, 0},
		{"missing stat", enums.StatEnergy, enums.ClassPlayer, 1, 0},
		{"missing class", enums.StatHealth, enums.ClassBoss, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.GetStat(tt.stat, tt.class, tt.level); got != tt.want {
				t.Errorf("GetStat = %v, want %v", got, tt.want)
			}
		})
	}

	if n := p.Levels(enums.StatHealth, enums.ClassPlayer); n != 3 {
		t.Errorf("Levels = %d, want 3", n)
	}
	if n := p.Levels(enums.StatEnergy, enums.ClassPlayer); n != 0 {
		t.Errorf("Levels for missing stat = %d, want 0", n)
	}
}

func TestBaseStats_LevelFromXP(t *testing.T) {
	p := testProgression() // LevelXp: 10, 30

	tests := []struct {
		xp   float64
		want int
	}{
		{0, 1},
		{9.99, 1},
		{10, 2},
		{29, 2},
		{30, 3}, // за таблицей: maxLevel+1
		{1000, 3},
	}
	for _, tt := range tests {
		stats := NewBaseStats(enums.ClassPlayer, 1, p, false)
		xp := NewExperience()
		xp.restore(tt.xp)
		stats.xp = xp
		stats.ResolveLevel()
		if got := stats.Level(); got != tt.want {
			t.Errorf("xp %v: level = %d, want %d", tt.xp, got, tt.want)
		}
	}

	noXP := NewBaseStats(enums.ClassGrunt, 4, p, false)
	if noXP.Level() != 4 {
		t.Errorf("without experience level = %d, want start level 4", noXP.Level())
	}
}

func TestBaseStats_OnLevelUpFiresOnlyOnIncrease(t *testing.T) {
	e := newCharacter("player", enums.ClassPlayer, testProgression())
	ups := 0
	e.Stats.OnLevelUp = append(e.Stats.OnLevelUp, func() { ups++ })

	e.Experience.GainXP(3)
	e.Experience.GainXP(-50)
	if ups != 0 {
		t.Fatalf("no level change, but OnLevelUp fired %d times", ups)
	}
	e.Experience.GainXP(40)
	if ups != 1 || e.Stats.Level() != 3 {
		t.Errorf("ups = %d level = %d, want 1 and 3", ups, e.Stats.Level())
	}
}

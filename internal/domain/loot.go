package domain

import (
	"math/rand"

	"rpg-core/pkg/utils"
)

// LootEntry - возможный дроп и его параметры по уровням.
type LootEntry struct {
	Item      *Item
	Chance    []float64
	MinNumber []int
	MaxNumber []int
}

// LootTable - таблица выпадения предметов.
type LootTable struct {
	ID         string
	DropChance []float64 // проценты 0..100
	MinDrops   []int
	MaxDrops   []int
	Entries    []LootEntry
}

// Drop - выпавший предмет и количество.
type Drop struct {
	Item   *Item
	Number int
}

// GetByLevel: пустой массив или уровень <= 0 - нулевое значение,
// уровень за концом массива - последний элемент.
func GetByLevel[T any](values []T, level int) T {
	var zero T
	if len(values) == 0 || level <= 0 {
		return zero
	}
	if level > len(values) {
		return values[len(values)-1]
	}
	return values[level-1]
}

// GetRandomDrops бросает кубики для уровня.
func (t *LootTable) GetRandomDrops(level int, rng *rand.Rand) []Drop {
	if t == nil || !t.shouldDrop(level, rng) {
		return nil
	}
	count := utils.RangeInt(rng, GetByLevel(t.MinDrops, level), GetByLevel(t.MaxDrops, level))
	drops := make([]Drop, 0, count)
	for i := 0; i < count; i++ {
		entry := t.selectRandomEntry(level, rng)
		if entry == nil {
			continue
		}
		drops = append(drops, Drop{Item: entry.Item, Number: entry.randomNumber(level, rng)})
	}
	return drops
}

func (t *LootTable) shouldDrop(level int, rng *rand.Rand) bool {
	return rng.Float64()*100 < GetByLevel(t.DropChance, level)
}

// selectRandomEntry - рулетка по накопленным шансам.
func (t *LootTable) selectRandomEntry(level int, rng *rand.Rand) *LootEntry {
	total := 0.0
	for _, e := range t.Entries {
		total += GetByLevel(e.Chance, level)
	}
	if total <= 0 {
		return nil
	}
	roll := rng.Float64() * total
	running := 0.0
	for i := range t.Entries {
		running += GetByLevel(t.Entries[i].Chance, level)
		if roll < running {
			return &t.Entries[i]
		}
	}
	return nil
}

func (e *LootEntry) randomNumber(level int, rng *rand.Rand) int {
	if e.Item == nil || !e.Item.Stackable {
		return 1
	}
	min := GetByLevel(e.MinNumber, level)
	max := GetByLevel(e.MaxNumber, level)
	n := utils.RangeInt(rng, min, max+1)
	if n < 1 {
		n = 1
	}
	return n
}

package utils

import (
	"math/rand"

	"github.com/google/uuid"
)

// GenerateID выдаёт стабильный ID для сохраняемой сущности.
func GenerateID() string {
	return uuid.NewString()
}

// RangeInt возвращает значение из [min, max). При max <= min возвращает min.
func RangeInt(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min)
}

// RangeFloat - то же для float64.
func RangeFloat(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}

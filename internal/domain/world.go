package domain

import "math/rand"

// Obstacle - непроходимая область сцены (круг на плоскости XZ).
type Obstacle struct {
	Center Vec3
	Radius float64
}

// SpatialIndex - пространственный запрос движка.
type SpatialIndex interface {
	Upsert(id string, pos Vec3, radius float64)
	Remove(id string)
	FindWithinRadius(center Vec3, radius float64) []string
}

type GameWorld struct {
	SceneIndex int
	Time       float64
	PlayerID   string

	Obstacles   []Obstacle
	Projectiles []*Projectile

	// Spatial: если nil, запросы идут перебором реестра
	Spatial SpatialIndex
	Rng     *rand.Rand

	// Порядок регистрации сохраняется для детерминизма тиков
	EntityRegistry map[string]*Entity
	order          []string
}

func NewGameWorld(sceneIndex int, spatial SpatialIndex, rng *rand.Rand) *GameWorld {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &GameWorld{
		SceneIndex:     sceneIndex,
		Spatial:        spatial,
		Rng:            rng,
		EntityRegistry: make(map[string]*Entity),
	}
}

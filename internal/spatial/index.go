package spatial

import (
	"sort"

	"rpg-core/internal/domain"

	"github.com/jakecoffman/cp"
)

type entry struct {
	shape  *cp.Shape
	pos    domain.Vec3
	radius float64
}

// Index - пространственный индекс сущностей на плоскости XZ поверх chipmunk.
// Каждая сущность - статический круг; широкую фазу делает BBQuery пространства.
type Index struct {
	space   *cp.Space
	entries map[string]*entry
}

func NewIndex() *Index {
	return &Index{
		space:   cp.NewSpace(),
		entries: make(map[string]*entry),
	}
}

// Upsert добавляет сущность или переносит её в новую точку.
func (ix *Index) Upsert(id string, pos domain.Vec3, radius float64) {
	if radius <= 0 {
		radius = 0.01
	}
	if old, ok := ix.entries[id]; ok {
		if old.pos == pos && old.radius == radius {
			return
		}
		ix.space.RemoveShape(old.shape)
	}

	shape := cp.NewCircle(ix.space.StaticBody, radius, toPlane(pos))
	shape.UserData = id
	ix.space.AddShape(shape)
	ix.entries[id] = &entry{shape: shape, pos: pos, radius: radius}
}

// Remove убирает сущность из индекса.
func (ix *Index) Remove(id string) {
	old, ok := ix.entries[id]
	if !ok {
		return
	}
	ix.space.RemoveShape(old.shape)
	delete(ix.entries, id)
}

// FindWithinRadius возвращает ID сущностей, чей центр не дальше radius от точки.
// Результат отсортирован по расстоянию, затем по ID.
func (ix *Index) FindWithinRadius(center domain.Vec3, radius float64) []string {
	type hit struct {
		id   string
		dist float64
	}
	var hits []hit
	seen := make(map[string]bool)

	bb := cp.NewBBForCircle(toPlane(center), radius)
	ix.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		id, ok := shape.UserData.(string)
		if !ok || seen[id] {
			return
		}
		seen[id] = true
		e := ix.entries[id]
		if e == nil {
			return
		}
		if d := planarDistance(e.pos, center); d <= radius {
			hits = append(hits, hit{id: id, dist: d})
		}
	}, nil)

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].id < hits[j].id
	})
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.id
	}
	return out
}

// Len - число сущностей в индексе.
func (ix *Index) Len() int {
	return len(ix.entries)
}

func toPlane(p domain.Vec3) cp.Vector {
	return cp.Vector{X: p.X, Y: p.Z}
}

func planarDistance(a, b domain.Vec3) float64 {
	return toPlane(a).Distance(toPlane(b))
}

var _ domain.SpatialIndex = (*Index)(nil)

package spatial

import (
	"reflect"
	"testing"

	"rpg-core/internal/domain"
)

func TestIndex_FindWithinRadius(t *testing.T) {
	ix := NewIndex()
	ix.Upsert("a", domain.Vec3{X: 0, Z: 0}, 0.5)
	ix.Upsert("b", domain.Vec3{X: 3, Z: 0}, 0.5)
	ix.Upsert("c", domain.Vec3{X: 0, Y: 10, Z: 4}, 0.5) // высота не учитывается
	ix.Upsert("far", domain.Vec3{X: 50, Z: 50}, 0.5)

	tests := []struct {
		name   string
		center domain.Vec3
		radius float64
		want   []string
	}{
		{"only self", domain.Vec3{}, 1, []string{"a"}},
		{"sorted by distance", domain.Vec3{}, 5, []string{"a", "b", "c"}},
		{"edge inclusive", domain.Vec3{}, 3, []string{"a", "b"}},
		{"nothing", domain.Vec3{X: -20}, 2, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ix.FindWithinRadius(tt.center, tt.radius)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindWithinRadius = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIndex_MoveAndRemove(t *testing.T) {
	ix := NewIndex()
	ix.Upsert("a", domain.Vec3{}, 0.5)
	ix.Upsert("a", domain.Vec3{X: 10}, 0.5)

	if got := ix.FindWithinRadius(domain.Vec3{}, 1); len(got) != 0 {
		t.Errorf("moved entity still found at old position: %v", got)
	}
	if got := ix.FindWithinRadius(domain.Vec3{X: 10}, 1); len(got) != 1 {
		t.Errorf("moved entity not found at new position: %v", got)
	}
	if ix.Len() != 1 {
		t.Errorf("Len = %d, want 1", ix.Len())
	}

	ix.Remove("a")
	ix.Remove("missing")
	if got := ix.FindWithinRadius(domain.Vec3{X: 10}, 1); len(got) != 0 {
		t.Errorf("removed entity found: %v", got)
	}
}

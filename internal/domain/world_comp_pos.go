package domain

import "math"

// Vec3 - позиция/направление в мире. Y - высота, движение идёт по плоскости XZ.
type Vec3 struct {
	X float64 `json:"x" cbor:"x"`
	Y float64 `json:"y" cbor:"y"`
	Z float64 `json:"z" cbor:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z} }

func (v Vec3) Scale(k float64) Vec3 { return Vec3{X: v.X * k, Y: v.Y * k, Z: v.Z * k} }

func (v Vec3) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Normalized возвращает единичный вектор. Для нулевого вектора - нулевой вектор.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// DistanceTo возвращает точное расстояние до другой точки
func (v Vec3) DistanceTo(o Vec3) float64 {
	return v.Sub(o).Length()
}

// DistanceSquaredTo - для сравнения без корней
func (v Vec3) DistanceSquaredTo(o Vec3) float64 {
	d := v.Sub(o)
	return d.X*d.X + d.Y*d.Y + d.Z*d.Z
}

// MoveTowards сдвигает точку к цели не больше чем на step и не проскакивает её.
func (v Vec3) MoveTowards(target Vec3, step float64) Vec3 {
	d := target.Sub(v)
	dist := d.Length()
	if dist <= step || dist == 0 {
		return target
	}
	return v.Add(d.Scale(step / dist))
}

package domain

// Projectile - летящий снаряд. Живёт в мире, а не как сущность.
type Projectile struct {
	ID         string
	AttackerID string
	TargetID   string
	Damage     float64
	Config     ProjectileConfig

	Pos     Vec3
	Heading Vec3
	AimAt   Vec3

	Lifetime    float64
	Impacted    bool
	SinceImpact float64
	Done        bool
}

// AimPoint - точка прицеливания: чуть выше основания цели.
func AimPoint(target *Entity) Vec3 {
	return target.Pos.Add(Vec3{Y: target.Height / 1.5})
}

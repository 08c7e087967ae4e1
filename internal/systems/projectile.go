package systems

import (
	"math"

	"rpg-core/internal/domain"
	"rpg-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// LaunchProjectile выпускает снаряд из руки стрелка в точку прицеливания цели.
func LaunchProjectile(w *domain.GameWorld, attacker, target *domain.Entity, damage float64, cfg domain.ProjectileConfig) *domain.Projectile {
	start := attacker.Pos.Add(domain.Vec3{Y: attacker.Height / 2})
	aim := domain.AimPoint(target)
	p := &domain.Projectile{
		AttackerID: attacker.ID,
		TargetID:   target.ID,
		Damage:     damage,
		Config:     cfg,
		Pos:        start,
		AimAt:      aim,
		Heading:    aim.Sub(start).Normalized(),
	}
	w.AddProjectile(p)

	logger.Log.WithFields(logrus.Fields{
		"component":     "projectile_system",
		"projectile_id": p.ID,
		"attacker_id":   attacker.ID,
		"target_id":     target.ID,
		"damage":        damage,
	}).Debug("Projectile launched")
	return p
}

// UpdateProjectiles двигает снаряды и убирает отработавшие.
func UpdateProjectiles(w *domain.GameWorld, dt float64) {
	alive := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		updateProjectile(w, p, dt)
		if !p.Done {
			alive = append(alive, p)
		}
	}
	for i := len(alive); i < len(w.Projectiles); i++ {
		w.Projectiles[i] = nil
	}
	w.Projectiles = alive
}

func updateProjectile(w *domain.GameWorld, p *domain.Projectile, dt float64) {
	p.Lifetime += dt
	if p.Lifetime >= p.Config.MaxLifetime {
		p.Done = true
		return
	}
	if p.Impacted {
		p.SinceImpact += dt
		if p.SinceImpact >= p.Config.TimeAfterImpact {
			p.Done = true
		}
		return
	}

	target := w.GetEntity(p.TargetID)
	targetAlive := target != nil && target.IsAlive()
	if p.Config.Homing && targetAlive {
		p.AimAt = domain.AimPoint(target)
		p.Heading = p.AimAt.Sub(p.Pos).Normalized()
	}

	step := p.Config.Speed * dt
	if targetAlive && p.Pos.DistanceTo(domain.AimPoint(target)) <= math.Max(step, p.Config.HitRadius) {
		p.Pos = domain.AimPoint(target)
		p.Impacted = true
		if target.Health != nil {
			target.Health.TakeDamage(p.AttackerID, p.Damage)
		}
		logger.Log.WithFields(logrus.Fields{
			"component":     "projectile_system",
			"projectile_id": p.ID,
			"target_id":     p.TargetID,
			"damage":        p.Damage,
		}).Debug("Projectile hit")
		return
	}

	p.Pos = p.Pos.Add(p.Heading.Scale(step))
}

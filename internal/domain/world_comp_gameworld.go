package domain

import (
	"rpg-core/pkg/logger"
	"rpg-core/pkg/utils"

	"github.com/sirupsen/logrus"
)

// GetEntity ищет сущность по ID
func (w *GameWorld) GetEntity(id string) *Entity {
	if w.EntityRegistry == nil || id == "" {
		return nil
	}
	return w.EntityRegistry[id]
}

// RegisterEntity добавляет сущность в реестр и индекс.
// Пустой или занятый ID заменяется новым (побеждает старшая сущность).
func (w *GameWorld) RegisterEntity(e *Entity) string {
	if w.EntityRegistry == nil {
		w.EntityRegistry = make(map[string]*Entity)
	}
	w.EnsureUniqueID(e)

	w.EntityRegistry[e.ID] = e
	w.order = append(w.order, e.ID)

	if e.Health != nil {
		e.Health.AwardXP = w.awardXP
	}
	if w.Spatial != nil {
		w.Spatial.Upsert(e.ID, e.Pos, e.Radius)
	}
	return e.ID
}

// EnsureUniqueID выдаёт сущности новый ID, если её ID пуст или уже занят.
func (w *GameWorld) EnsureUniqueID(e *Entity) {
	if e.ID == "" {
		e.ID = utils.GenerateID()
		return
	}
	if existing, ok := w.EntityRegistry[e.ID]; ok && existing != e {
		old := e.ID
		e.ID = utils.GenerateID()
		logger.Log.WithFields(logrus.Fields{
			"component": "world",
			"old_id":    old,
			"new_id":    e.ID,
			"name":      e.Name,
		}).Warn("Entity id collision, regenerated id for newer entity")
	}
}

// UnregisterEntity удаляет сущность из реестра и индекса
func (w *GameWorld) UnregisterEntity(id string) {
	if _, ok := w.EntityRegistry[id]; !ok {
		return
	}
	delete(w.EntityRegistry, id)
	for i, other := range w.order {
		if other == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	if w.Spatial != nil {
		w.Spatial.Remove(id)
	}
}

// Entities возвращает сущности в порядке регистрации.
func (w *GameWorld) Entities() []*Entity {
	out := make([]*Entity, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.EntityRegistry[id])
	}
	return out
}

// Player - сущность игрока или nil.
func (w *GameWorld) Player() *Entity {
	return w.GetEntity(w.PlayerID)
}

// UpdateEntityPos перемещает сущность и обновляет индекс.
func (w *GameWorld) UpdateEntityPos(e *Entity, pos Vec3) {
	e.Pos = pos
	if w.Spatial != nil && w.GetEntity(e.ID) == e {
		w.Spatial.Upsert(e.ID, pos, e.Radius)
	}
}

// FindWithinRadius - сущности в радиусе от точки (порядок детерминирован).
func (w *GameWorld) FindWithinRadius(center Vec3, radius float64) []*Entity {
	var out []*Entity
	if w.Spatial != nil {
		for _, id := range w.Spatial.FindWithinRadius(center, radius) {
			if e := w.GetEntity(id); e != nil {
				out = append(out, e)
			}
		}
		return out
	}
	for _, e := range w.Entities() {
		if e.Pos.DistanceTo(center) <= radius {
			out = append(out, e)
		}
	}
	return out
}

// Blocked - точка внутри препятствия.
func (w *GameWorld) Blocked(p Vec3) bool {
	for _, o := range w.Obstacles {
		dx := p.X - o.Center.X
		dz := p.Z - o.Center.Z
		if dx*dx+dz*dz < o.Radius*o.Radius {
			return true
		}
	}
	return false
}

// AddProjectile запускает снаряд.
func (w *GameWorld) AddProjectile(p *Projectile) {
	if p.ID == "" {
		p.ID = utils.GenerateID()
	}
	w.Projectiles = append(w.Projectiles, p)
}

// awardXP выдаёт опыт атакующему, если у него есть Experience.
func (w *GameWorld) awardXP(attackerID string, amount float64) {
	attacker := w.GetEntity(attackerID)
	if attacker == nil || attacker.Experience == nil {
		return
	}
	attacker.Experience.GainXP(amount)
	logger.Log.WithFields(logrus.Fields{
		"component":   "world",
		"attacker_id": attackerID,
		"xp":          amount,
	}).Debug("XP awarded")
}

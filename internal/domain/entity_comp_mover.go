package domain

// Значения движения по умолчанию
const (
	DefaultMaxPathLength = 60.0
	DefaultMoveSpeed     = 3.0
)

// MoverComponent - состояние навигации. Позиция хранится в Entity.Pos.
type MoverComponent struct {
	Speed         float64
	MaxPathLength float64

	Destination Vec3
	Moving      bool
	Velocity    Vec3
}

func NewMover(speed float64) *MoverComponent {
	if speed <= 0 {
		speed = DefaultMoveSpeed
	}
	return &MoverComponent{Speed: speed, MaxPathLength: DefaultMaxPathLength}
}

// SetDestination запускает движение к точке.
func (m *MoverComponent) SetDestination(p Vec3) {
	m.Destination = p
	m.Moving = true
}

// Stop останавливает агента (аналог isStopped = true).
func (m *MoverComponent) Stop() {
	m.Moving = false
	m.Velocity = Vec3{}
}

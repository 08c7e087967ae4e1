package domain

// ActionScheduler держит не больше одного текущего действия на актёра.
// Компонент-владелец действия регистрирует для него хук отмены.
type ActionScheduler struct {
	current ActionType
	cancels map[ActionType]func()
}

func NewActionScheduler() *ActionScheduler {
	return &ActionScheduler{cancels: make(map[ActionType]func())}
}

// Register задаёт хук отмены для действия. Повторная регистрация заменяет хук.
func (s *ActionScheduler) Register(action ActionType, cancel func()) {
	s.cancels[action] = cancel
}

// StartAction отменяет текущее действие (если оно другое) и делает action текущим.
func (s *ActionScheduler) StartAction(action ActionType) {
	if s.current == action {
		return
	}
	prev := s.current
	s.current = action
	if prev == ActionNone {
		return
	}
	if cancel := s.cancels[prev]; cancel != nil {
		cancel()
	}
}

// CancelCurrentAction эквивалентен StartAction(ActionNone)
func (s *ActionScheduler) CancelCurrentAction() {
	s.StartAction(ActionNone)
}

func (s *ActionScheduler) Current() ActionType {
	return s.current
}

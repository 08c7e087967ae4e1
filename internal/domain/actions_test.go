package domain

import "testing"

func TestParseAction(t *testing.T) {
	tests := []struct {
		input    string
		expected ActionType
	}{
		{"MOVE", ActionMove},
		{"move", ActionMove},
		{"Move", ActionMove},
		{"ATTACK", ActionAttack},
		{"use_ability", ActionUseAbility},
		{"UNKNOWN_ACTION", ActionNone},
		{"", ActionNone},
	}

	for _, tt := range tests {
		result := ParseAction(tt.input)
		if result != tt.expected {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}

func TestActionType_String(t *testing.T) {
	tests := []struct {
		action   ActionType
		expected string
	}{
		{ActionMove, "MOVE"},
		{ActionAttack, "ATTACK"},
		{ActionNone, "NONE"},
		{ActionType(200), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.expected {
			t.Errorf("ActionType(%d).String() = %q, want %q", tt.action, got, tt.expected)
		}
	}
}

func TestActionScheduler(t *testing.T) {
	s := NewActionScheduler()
	var cancelled []ActionType
	s.Register(ActionMove, func() { cancelled = append(cancelled, ActionMove) })
	s.Register(ActionAttack, func() { cancelled = append(cancelled, ActionAttack) })

	s.StartAction(ActionMove)
	s.StartAction(ActionMove) // повтор - no-op
	if len(cancelled) != 0 {
		t.Fatalf("restarting the current action must not cancel it, got %v", cancelled)
	}

	s.StartAction(ActionAttack)
	if len(cancelled) != 1 || cancelled[0] != ActionMove {
		t.Fatalf("expected move to be cancelled, got %v", cancelled)
	}
	if s.Current() != ActionAttack {
		t.Errorf("Current() = %v, want ATTACK", s.Current())
	}

	s.CancelCurrentAction()
	if s.Current() != ActionNone {
		t.Errorf("Current() after cancel = %v, want NONE", s.Current())
	}
	if len(cancelled) != 2 || cancelled[1] != ActionAttack {
		t.Errorf("expected attack to be cancelled, got %v", cancelled)
	}

	// Отмена пустого планировщика ничего не вызывает
	s.CancelCurrentAction()
	if len(cancelled) != 2 {
		t.Errorf("cancelling NONE must be a no-op, got %v", cancelled)
	}
}

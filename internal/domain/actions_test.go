package domain

import (
	"math/rand"
	"testing"
)

func newTestRng() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		input    string
		expected ActionType
	}{
		{"SELECT_CARD", ActionSelectCard},
		{"select_card", ActionSelectCard},
		{"Press_Cannon", ActionPressCannon},
		{"PURCHASE", ActionPurchase},
		{"EXIT_SHOP", ActionExitShop},
		{"UNKNOWN_ACTION", ActionUnknown},
		{"", ActionUnknown},
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
		{ActionStartRun, "START_RUN"},
		{ActionReleaseCannon, "RELEASE_CANNON"},
		{ActionUnknown, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.expected {
			t.Errorf("ActionType(%d).String() = %q, want %q", tt.action, got, tt.expected)
		}
	}
}

func TestParsePhase(t *testing.T) {
	for phase, name := range phaseValueToString {
		got, ok := ParsePhase(name)
		if !ok || got != phase {
			t.Errorf("ParsePhase(%q) = %v, %v; want %v", name, got, ok, phase)
		}
	}
	if _, ok := ParsePhase("LEVEL_OVER"); ok {
		t.Error("ParsePhase should reject unknown phases")
	}
}

func TestPhase_InRun(t *testing.T) {
	if PhaseMenu.InRun() || PhaseLoading.InRun() {
		t.Error("menu and loading are outside of a run")
	}
	if !PhaseShop.InRun() || !PhaseGameOver.InRun() {
		t.Error("shop and game over belong to a run")
	}
}

package domain

import "strings"

// Phase - фаза раунда/уровня. В каждый момент активна ровно одна.
type Phase uint8

const (
	PhaseLoading Phase = iota
	PhaseMenu
	PhaseLevelStart
	PhaseWidgetSelection
	PhasePlaceWidget
	PhaseShootBall
	PhaseBallBouncing
	PhaseEndOfRound
	PhaseShop
	PhaseGameOver
)

var phaseStringToValue = map[string]Phase{
	"LOADING":          PhaseLoading,
	"MENU":             PhaseMenu,
	"LEVEL_START":      PhaseLevelStart,
	"WIDGET_SELECTION": PhaseWidgetSelection,
	"PLACE_WIDGET":     PhasePlaceWidget,
	"SHOOT_BALL":       PhaseShootBall,
	"BALL_BOUNCING":    PhaseBallBouncing,
	"END_OF_ROUND":     PhaseEndOfRound,
	"SHOP":             PhaseShop,
	"GAME_OVER":        PhaseGameOver,
}

var phaseValueToString = map[Phase]string{
	PhaseLoading:         "LOADING",
	PhaseMenu:            "MENU",
	PhaseLevelStart:      "LEVEL_START",
	PhaseWidgetSelection: "WIDGET_SELECTION",
	PhasePlaceWidget:     "PLACE_WIDGET",
	PhaseShootBall:       "SHOOT_BALL",
	PhaseBallBouncing:    "BALL_BOUNCING",
	PhaseEndOfRound:      "END_OF_ROUND",
	PhaseShop:            "SHOP",
	PhaseGameOver:        "GAME_OVER",
}

// ParsePhase возвращает PhaseLoading и false для неизвестной строки.
func ParsePhase(s string) (Phase, bool) {
	val, ok := phaseStringToValue[strings.ToUpper(s)]
	return val, ok
}

func (p Phase) String() string {
	if val, ok := phaseValueToString[p]; ok {
		return val
	}
	return "UNKNOWN"
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// InRun - фазы, в которых идёт забег (есть поле, колода и игрок).
func (p Phase) InRun() bool {
	return p >= PhaseLevelStart
}

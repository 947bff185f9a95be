package domain

import "strings"

// ActionType - внутренний числовой идентификатор команды игрока
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionStartRun
	ActionSelectCard
	ActionMoveCursor
	ActionRotate
	ActionConfirmPlacement
	ActionPressCannon
	ActionReleaseCannon
	ActionPurchase
	ActionExitShop
	ActionRetry
	ActionClearGadgets
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"START_RUN":         ActionStartRun,
	"SELECT_CARD":       ActionSelectCard,
	"MOVE_CURSOR":       ActionMoveCursor,
	"ROTATE":            ActionRotate,
	"CONFIRM_PLACEMENT": ActionConfirmPlacement,
	"PRESS_CANNON":      ActionPressCannon,
	"RELEASE_CANNON":    ActionReleaseCannon,
	"PURCHASE":          ActionPurchase,
	"EXIT_SHOP":         ActionExitShop,
	"RETRY":             ActionRetry,
	"CLEAR_GADGETS":     ActionClearGadgets,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionStartRun:         "START_RUN",
	ActionSelectCard:       "SELECT_CARD",
	ActionMoveCursor:       "MOVE_CURSOR",
	ActionRotate:           "ROTATE",
	ActionConfirmPlacement: "CONFIRM_PLACEMENT",
	ActionPressCannon:      "PRESS_CANNON",
	ActionReleaseCannon:    "RELEASE_CANNON",
	ActionPurchase:         "PURCHASE",
	ActionExitShop:         "EXIT_SHOP",
	ActionRetry:            "RETRY",
	ActionClearGadgets:     "CLEAR_GADGETS",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	if val, ok := actionStringToCmd[strings.ToUpper(s)]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

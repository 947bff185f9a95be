package domain

import "strings"

// EventType - тип одностороннего уведомления для UI и эффектов.
// Ядро не зависит от того, кто и как на них реагирует.
type EventType uint8

const (
	EventUnknown EventType = iota
	EventCardSelected
	EventCoinCollected
	EventGadgetDeactivated
	EventGadgetReactivated
	EventRoundEnded
	EventPlaceCoins
	EventPhaseChanged
	EventCardPurchased
)

// Маппинг для конвертации JSON -> Domain
var eventStringToCmd = map[string]EventType{
	"CARD_SELECTED":      EventCardSelected,
	"COIN_COLLECTED":     EventCoinCollected,
	"GADGET_DEACTIVATED": EventGadgetDeactivated,
	"GADGET_REACTIVATED": EventGadgetReactivated,
	"ROUND_ENDED":        EventRoundEnded,
	"PLACE_COINS":        EventPlaceCoins,
	"PHASE_CHANGED":      EventPhaseChanged,
	"CARD_PURCHASED":     EventCardPurchased,
}

// Маппинг для логов Domain -> String
var eventCmdToString = map[EventType]string{
	EventCardSelected:      "CARD_SELECTED",
	EventCoinCollected:     "COIN_COLLECTED",
	EventGadgetDeactivated: "GADGET_DEACTIVATED",
	EventGadgetReactivated: "GADGET_REACTIVATED",
	EventRoundEnded:        "ROUND_ENDED",
	EventPlaceCoins:        "PLACE_COINS",
	EventPhaseChanged:      "PHASE_CHANGED",
	EventCardPurchased:     "CARD_PURCHASED",
}

// ParseEvent конвертирует строку из JSON в EventType
func ParseEvent(s string) EventType {
	if val, ok := eventStringToCmd[strings.ToUpper(s)]; ok {
		return val
	}
	return EventUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a EventType) String() string {
	if val, ok := eventCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

func (a EventType) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Notification - уведомление. Заполнены только поля, относящиеся к Type.
type Notification struct {
	Type   EventType `json:"type"`
	Card   CardID    `json:"card,omitempty"`
	Entity EntityID  `json:"entity,omitempty"`
	Amount uint      `json:"amount,omitempty"`
	From   Phase     `json:"from,omitempty"`
	To     Phase     `json:"to,omitempty"`
}

package domain

import (
	"fmt"
	"strings"
)

// EntityKind - тип сущности, зашивается в старшие биты EntityID
type EntityKind uint8

const (
	KindUnknown EntityKind = iota
	KindBall
	KindGadget
	KindCoin
	KindCannon
)

var kindToString = map[EntityKind]string{
	KindBall:   "BALL",
	KindGadget: "GADGET",
	KindCoin:   "COIN",
	KindCannon: "CANNON",
}

func (k EntityKind) String() string {
	if val, ok := kindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// GadgetKind - тег варианта гаджета. Набор закрыт: маршрутизатор
// столкновений делает switch именно по этому тегу.
type GadgetKind uint8

const (
	GadgetNone GadgetKind = iota
	GadgetSquareBlock
	GadgetWideBlock
	GadgetBumper
	GadgetCoinBumper
	GadgetHighFrictionBlock
	GadgetMultiBall
	GadgetGravityField
)

var gadgetStringToKind = map[string]GadgetKind{
	"SQUARE_BLOCK":        GadgetSquareBlock,
	"WIDE_BLOCK":          GadgetWideBlock,
	"BUMPER":              GadgetBumper,
	"COIN_BUMPER":         GadgetCoinBumper,
	"HIGH_FRICTION_BLOCK": GadgetHighFrictionBlock,
	"MULTI_BALL":          GadgetMultiBall,
	"GRAVITY_FIELD":       GadgetGravityField,
}

var gadgetKindToString = map[GadgetKind]string{
	GadgetSquareBlock:       "SQUARE_BLOCK",
	GadgetWideBlock:         "WIDE_BLOCK",
	GadgetBumper:            "BUMPER",
	GadgetCoinBumper:        "COIN_BUMPER",
	GadgetHighFrictionBlock: "HIGH_FRICTION_BLOCK",
	GadgetMultiBall:         "MULTI_BALL",
	GadgetGravityField:      "GRAVITY_FIELD",
}

func ParseGadgetKind(s string) GadgetKind {
	if val, ok := gadgetStringToKind[strings.ToUpper(s)]; ok {
		return val
	}
	return GadgetNone
}

func (g GadgetKind) String() string {
	if val, ok := gadgetKindToString[g]; ok {
		return val
	}
	return "NONE"
}

// CardID - идентификатор карты. Карта это данные, а не сущность:
// её заголовок, цена и архетип гаджета лежат в статическом каталоге.
type CardID uint8

const (
	CardUnknown CardID = iota
	CardOneMoreBall
	CardMoreBalls
	CardSquareBlock
	CardWideBlock
	CardBumper
	CardCoinBumper
	CardHighFrictionBlock
	CardMagnet
	CardReactivateGadgets
	CardGravityReverser
	CardMultiBall
	CardRecycleGadget
	CardRearrangeGadget
)

// AllCards - полный закрытый список карт в порядке объявления.
var AllCards = []CardID{
	CardOneMoreBall,
	CardMoreBalls,
	CardSquareBlock,
	CardWideBlock,
	CardBumper,
	CardCoinBumper,
	CardHighFrictionBlock,
	CardMagnet,
	CardReactivateGadgets,
	CardGravityReverser,
	CardMultiBall,
	CardRecycleGadget,
	CardRearrangeGadget,
}

var cardStringToID = map[string]CardID{
	"ONE_MORE_BALL":       CardOneMoreBall,
	"MORE_BALLS":          CardMoreBalls,
	"SQUARE_BLOCK":        CardSquareBlock,
	"WIDE_BLOCK":          CardWideBlock,
	"BUMPER":              CardBumper,
	"COIN_BUMPER":         CardCoinBumper,
	"HIGH_FRICTION_BLOCK": CardHighFrictionBlock,
	"MAGNET":              CardMagnet,
	"REACTIVATE_GADGETS":  CardReactivateGadgets,
	"GRAVITY_REVERSER":    CardGravityReverser,
	"MULTI_BALL":          CardMultiBall,
	"RECYCLE_GADGET":      CardRecycleGadget,
	"REARRANGE_GADGET":    CardRearrangeGadget,
}

var cardIDToString = map[CardID]string{
	CardOneMoreBall:       "ONE_MORE_BALL",
	CardMoreBalls:         "MORE_BALLS",
	CardSquareBlock:       "SQUARE_BLOCK",
	CardWideBlock:         "WIDE_BLOCK",
	CardBumper:            "BUMPER",
	CardCoinBumper:        "COIN_BUMPER",
	CardHighFrictionBlock: "HIGH_FRICTION_BLOCK",
	CardMagnet:            "MAGNET",
	CardReactivateGadgets: "REACTIVATE_GADGETS",
	CardGravityReverser:   "GRAVITY_REVERSER",
	CardMultiBall:         "MULTI_BALL",
	CardRecycleGadget:     "RECYCLE_GADGET",
	CardRearrangeGadget:   "REARRANGE_GADGET",
}

// ParseCard конвертирует строку из JSON/YAML в CardID
func ParseCard(s string) CardID {
	if val, ok := cardStringToID[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return val
	}
	return CardUnknown
}

func (c CardID) String() string {
	if val, ok := cardIDToString[c]; ok {
		return val
	}
	return "UNKNOWN"
}

// MarshalText нужен и для JSON-снимков, и для YAML-конфига баланса.
func (c CardID) MarshalText() ([]byte, error) {
	if c == CardUnknown {
		return nil, fmt.Errorf("cannot marshal unknown card %d", uint8(c))
	}
	return []byte(c.String()), nil
}

func (c *CardID) UnmarshalText(text []byte) error {
	parsed := ParseCard(string(text))
	if parsed == CardUnknown {
		return fmt.Errorf("unknown card %q", string(text))
	}
	*c = parsed
	return nil
}

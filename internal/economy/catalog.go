package economy

import (
	"errors"
	"fmt"

	"boingle/internal/config"
	"boingle/internal/domain"
)

// ErrUnknownCard - карта отсутствует в каталоге. Каталог закрыт,
// поэтому это всегда ошибка программиста.
var ErrUnknownCard = errors.New("economy: unknown card")

// EffectKind - что делает карта при розыгрыше или покупке
type EffectKind uint8

const (
	EffectNone EffectKind = iota
	// EffectGadget - карта ставит гаджет (Gadget в CardInfo)
	EffectGadget
	// EffectAddBalls - мгновенно добавляет Balls мячей
	EffectAddBalls
	// EffectReactivate - мгновенно перезаряжает все поставленные гаджеты
	EffectReactivate
	// EffectPassive - карта только описана в каталоге, в магазине не продаётся
	EffectPassive
)

// CardInfo - неизменяемая запись каталога
type CardInfo struct {
	ID          domain.CardID     `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Price       uint              `json:"price"`
	Effect      EffectKind        `json:"-"`
	Gadget      domain.GadgetKind `json:"-"`
	Balls       uint              `json:"-"`
}

// Placeable - карту можно разыграть из руки (она ставит гаджет).
func (c CardInfo) Placeable() bool {
	return c.Effect == EffectGadget
}

// Catalog - статический каталог карт. После создания только читается,
// поэтому его можно разделять между сессиями.
type Catalog struct {
	cards map[domain.CardID]CardInfo
}

// NewCatalog собирает каталог из баланса.
func NewCatalog(b config.Balance) (*Catalog, error) {
	c := &Catalog{cards: make(map[domain.CardID]CardInfo, len(domain.AllCards))}

	pointsText := func(t config.GadgetTuning) string {
		return fmt.Sprintf("%dx%d Points", t.Points, t.Activations)
	}

	for _, id := range domain.AllCards {
		price, ok := b.Prices[id.String()]
		if !ok {
			return nil, fmt.Errorf("%w: no price for %s", ErrUnknownCard, id)
		}
		info := CardInfo{ID: id, Price: price}

		switch id {
		case domain.CardOneMoreBall:
			info.Title, info.Description = "+1 Ball", "Adds 1 Ball"
			info.Effect, info.Balls = EffectAddBalls, 1
		case domain.CardMoreBalls:
			info.Title = fmt.Sprintf("+%d Ball", b.BallsPerLevel)
			info.Description = fmt.Sprintf("Adds %d Balls", b.BallsPerLevel)
			info.Effect, info.Balls = EffectAddBalls, b.BallsPerLevel
		case domain.CardSquareBlock:
			info.Title, info.Description = "Square Block", pointsText(b.Gadgets.SquareBlock)
			info.Effect, info.Gadget = EffectGadget, domain.GadgetSquareBlock
		case domain.CardWideBlock:
			info.Title, info.Description = "Wide Block", pointsText(b.Gadgets.WideBlock)
			info.Effect, info.Gadget = EffectGadget, domain.GadgetWideBlock
		case domain.CardBumper:
			info.Title, info.Description = "Bumper", pointsText(b.Gadgets.Bumper)
			info.Effect, info.Gadget = EffectGadget, domain.GadgetBumper
		case domain.CardCoinBumper:
			info.Title, info.Description = "CoinBumper", "Spawn Coins"
			info.Effect, info.Gadget = EffectGadget, domain.GadgetCoinBumper
		case domain.CardHighFrictionBlock:
			info.Title, info.Description = "High Friction Block", "Slows down ball"
			info.Effect, info.Gadget = EffectGadget, domain.GadgetHighFrictionBlock
		case domain.CardMagnet:
			info.Title, info.Description = "Magnetise", "Attracts coins for 5.0s"
			info.Effect = EffectPassive
		case domain.CardReactivateGadgets:
			info.Title, info.Description = "Reactivate", "Reactivate Gadgets"
			info.Effect = EffectReactivate
		case domain.CardGravityReverser:
			info.Title, info.Description = "Gravity Reverser", "Reverse Gravity in field"
			info.Effect, info.Gadget = EffectGadget, domain.GadgetGravityField
		case domain.CardMultiBall:
			info.Title, info.Description = "Multi Ball", "Duplicate Ball"
			info.Effect, info.Gadget = EffectGadget, domain.GadgetMultiBall
		case domain.CardRecycleGadget:
			info.Title, info.Description = "Recycle Gadget", "Recycle a Gadget for Coins"
			info.Effect = EffectPassive
		case domain.CardRearrangeGadget:
			info.Title, info.Description = "Rearrange Gadget", "Move an already placed Gadget"
			info.Effect = EffectPassive
		}
		c.cards[id] = info
	}

	return c, nil
}

// Lookup возвращает запись каталога.
func (c *Catalog) Lookup(id domain.CardID) (CardInfo, error) {
	info, ok := c.cards[id]
	if !ok {
		return CardInfo{}, fmt.Errorf("%w: %s", ErrUnknownCard, id)
	}
	return info, nil
}

// MustLookup паникует на неизвестной карте: это нарушение инварианта,
// а не рабочая ситуация.
func (c *Catalog) MustLookup(id domain.CardID) CardInfo {
	info, err := c.Lookup(id)
	if err != nil {
		panic(err)
	}
	return info
}

// Cards возвращает все записи в порядке domain.AllCards.
func (c *Catalog) Cards() []CardInfo {
	out := make([]CardInfo, 0, len(c.cards))
	for _, id := range domain.AllCards {
		out = append(out, c.cards[id])
	}
	return out
}

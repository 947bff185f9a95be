package domain

// ShopSlot - одно предложение магазина. Каждое можно купить один раз.
type ShopSlot struct {
	Card      CardID `json:"card"`
	Purchased bool   `json:"purchased"`
}

// RunState - ввод игрока и витрина магазина, живущие между кадрами.
type RunState struct {
	Cursor Vec2       `json:"cursor"`
	Shop   []ShopSlot `json:"shop,omitempty"`
}

// OfferSlot ищет ещё не купленное предложение с картой card.
func (r *RunState) OfferSlot(card CardID) *ShopSlot {
	for i := range r.Shop {
		if r.Shop[i].Card == card && !r.Shop[i].Purchased {
			return &r.Shop[i]
		}
	}
	return nil
}

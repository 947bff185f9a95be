package domain

// Entity - сущность игрового поля. Компоненты опциональны (nil = нет компонента).
type Entity struct {
	ID   EntityID `json:"id"`
	Name string   `json:"name"`

	Body        *BodyComponent        `json:"body,omitempty"`
	Gadget      *GadgetComponent      `json:"gadget,omitempty"`
	Ball        *BallComponent        `json:"ball,omitempty"`
	Collectible *CollectibleComponent `json:"collectible,omitempty"`
	Cannon      *CannonComponent      `json:"cannon,omitempty"`
	Preview     *PreviewComponent     `json:"preview,omitempty"`

	// Placed - гаджет окончательно поставлен игроком.
	Placed bool `json:"placed,omitempty"`
}

func (e *Entity) IsBall() bool {
	return e != nil && e.Ball != nil
}

func (e *Entity) IsCoin() bool {
	return e != nil && e.Collectible != nil
}

// IsActiveGadget - гаджет на поле, участвующий в столкновениях.
// Превью исключено: оно не должно срабатывать от мяча.
func (e *Entity) IsActiveGadget() bool {
	return e != nil && e.Gadget != nil && e.Preview == nil
}

// Kind выводит тип сущности по набору компонентов.
func (e *Entity) Kind() EntityKind {
	switch {
	case e.Ball != nil:
		return KindBall
	case e.Gadget != nil:
		return KindGadget
	case e.Collectible != nil:
		return KindCoin
	case e.Cannon != nil:
		return KindCannon
	default:
		return KindUnknown
	}
}

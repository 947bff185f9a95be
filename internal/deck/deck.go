// Package deck реализует колоду с добором, сбросом и рукой.
//
// Карты только перемещаются между тремя контейнерами (добор, сброс, рука);
// единственный способ добавить новую карту - AddPurchased. Поэтому
// Size() всегда равен размеру стартовой колоды плюс число покупок.
package deck

import (
	"errors"
	"math/rand"
)

var (
	// ErrDeckExhausted - пусты и добор, и сброс. Означает ошибку в каталоге
	// (стартовая колода не должна быть пустой).
	ErrDeckExhausted = errors.New("deck: draw and discard piles are both empty")
	// ErrCardNotInHand - попытка убрать из руки карту, которой там нет.
	ErrCardNotInHand = errors.New("deck: card is not in hand")
)

// Deck хранит карты одного игрока. Верх колоды добора - конец слайса.
type Deck[C comparable] struct {
	starter   []C
	draw      []C
	discard   []C
	hand      []C
	purchased int
}

// New создаёт колоду. Стартовый шаблон копируется и больше не меняется;
// до вызова Reset колода добора пуста.
func New[C comparable](starter []C) *Deck[C] {
	return &Deck[C]{starter: append([]C(nil), starter...)}
}

// Reset восстанавливает добор из стартового шаблона и тасует его.
// Сброс, рука и купленные карты очищаются.
func (d *Deck[C]) Reset(rng *rand.Rand) {
	d.draw = append(d.draw[:0], d.starter...)
	d.discard = d.discard[:0]
	d.hand = d.hand[:0]
	d.purchased = 0
	shuffle(d.draw, rng)
}

// DrawNext снимает верхнюю карту. Если добор пуст, в него перекладывается
// и тасуется весь сброс.
func (d *Deck[C]) DrawNext(rng *rand.Rand) (C, error) {
	var zero C
	if len(d.draw) == 0 {
		if len(d.discard) == 0 {
			return zero, ErrDeckExhausted
		}
		d.draw = append(d.draw, d.discard...)
		d.discard = d.discard[:0]
		shuffle(d.draw, rng)
	}

	last := len(d.draw) - 1
	card := d.draw[last]
	d.draw = d.draw[:last]
	return card, nil
}

// Discard кладёт потраченную карту в сброс.
func (d *Deck[C]) Discard(card C) {
	d.discard = append(d.discard, card)
}

// FillHandTo добирает карты в руку, пока в ней меньше n карт.
func (d *Deck[C]) FillHandTo(n int, rng *rand.Rand) error {
	for len(d.hand) < n {
		card, err := d.DrawNext(rng)
		if err != nil {
			return err
		}
		d.hand = append(d.hand, card)
	}
	return nil
}

// RemoveFromHand убирает первое вхождение карты из руки с сохранением порядка.
func (d *Deck[C]) RemoveFromHand(card C) (C, error) {
	for i, c := range d.hand {
		if c == card {
			d.hand = append(d.hand[:i], d.hand[i+1:]...)
			return c, nil
		}
	}
	var zero C
	return zero, ErrCardNotInHand
}

// InHand - есть ли карта в руке.
func (d *Deck[C]) InHand(card C) bool {
	for _, c := range d.hand {
		if c == card {
			return true
		}
	}
	return false
}

// AddPurchased - купленная карта попадает в сброс и войдёт в добор
// при следующей перетасовке.
func (d *Deck[C]) AddPurchased(card C) {
	d.discard = append(d.discard, card)
	d.purchased++
}

// Size - общее число карт во всех трёх контейнерах.
func (d *Deck[C]) Size() int {
	return len(d.draw) + len(d.discard) + len(d.hand)
}

// Purchased - сколько карт добавлено покупками с последнего Reset.
func (d *Deck[C]) Purchased() int {
	return d.purchased
}

// StarterSize - размер стартового шаблона.
func (d *Deck[C]) StarterSize() int {
	return len(d.starter)
}

// Hand, DrawPile и DiscardPile возвращают копии, чтобы снаружи нельзя было
// нарушить сохранение карт.
func (d *Deck[C]) Hand() []C        { return append([]C(nil), d.hand...) }
func (d *Deck[C]) DrawPile() []C    { return append([]C(nil), d.draw...) }
func (d *Deck[C]) DiscardPile() []C { return append([]C(nil), d.discard...) }

// shuffle - Фишер-Йетс через переданный генератор.
func shuffle[C any](cards []C, rng *rand.Rand) {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

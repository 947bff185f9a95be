// Package economy отвечает за монеты, цены, пороги уровней и магазин.
package economy

import (
	"errors"
	"math"
	"math/rand"

	"boingle/internal/config"
	"boingle/internal/domain"
	"boingle/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Economy - правила экономики одного баланса
type Economy struct {
	catalog *Catalog
	pools   [][]domain.CardID
	picks   int
	base    float64
	growth  float64
}

func New(b config.Balance) (*Economy, error) {
	catalog, err := NewCatalog(b)
	if err != nil {
		return nil, err
	}
	if len(b.ShopPools) == 0 {
		return nil, errors.New("economy: no shop pools configured")
	}
	pools := make([][]domain.CardID, len(b.ShopPools))
	for i, p := range b.ShopPools {
		pools[i] = append([]domain.CardID(nil), p...)
	}
	return &Economy{
		catalog: catalog,
		pools:   pools,
		picks:   b.ShopPicks,
		base:    b.ThresholdBase,
		growth:  b.ThresholdGrowth,
	}, nil
}

func (e *Economy) Catalog() *Catalog {
	return e.catalog
}

// PriceOf - цена карты. Неизвестная карта - паника (закрытый каталог).
func (e *Economy) PriceOf(card domain.CardID) uint {
	return e.catalog.MustLookup(card).Price
}

// CanAfford - хватает ли монет.
func (e *Economy) CanAfford(coins uint, card domain.CardID) bool {
	return e.PriceOf(card) <= coins
}

// PointsThreshold = round(base * growth^level). При growth > 1 строго растёт.
func (e *Economy) PointsThreshold(level uint) uint {
	return uint(math.Round(e.base * math.Pow(e.growth, float64(level))))
}

// ShopOffer - карта "больше мячей" плюс picks карт без повторов
// из пула уровня. Уровень за пределами пулов берёт последний пул.
func (e *Economy) ShopOffer(level uint, rng *rand.Rand) []domain.CardID {
	idx := int(level)
	if idx >= len(e.pools) || idx < 0 {
		idx = len(e.pools) - 1
	}
	pool := e.pools[idx]

	offer := make([]domain.CardID, 0, e.picks+1)
	offer = append(offer, domain.CardMoreBalls)

	// Равномерная выборка без возвращения: перестановка индексов пула.
	perm := rng.Perm(len(pool))
	for i := 0; i < len(perm) && i < e.picks; i++ {
		offer = append(offer, pool[perm[i]])
	}
	return offer
}

// PurchaseResult - итог покупки. Purchased=false означает, что состояние
// не изменилось (не хватило монет или карта не продаётся).
type PurchaseResult struct {
	Purchased  bool
	Card       domain.CardID
	Price      uint
	Reactivate bool // движок должен перезарядить все гаджеты
}

// Purchase списывает цену и сразу применяет эффект карты.
// Мячи добавляются игроку, гаджеты уходят в сброс колоды.
func (e *Economy) Purchase(p *domain.Player, card domain.CardID) (PurchaseResult, error) {
	info, err := e.catalog.Lookup(card)
	if err != nil {
		return PurchaseResult{}, err
	}
	res := PurchaseResult{Card: card, Price: info.Price}

	log := logger.Log.WithFields(logrus.Fields{
		"component": "economy",
		"card":      card.String(),
		"price":     info.Price,
		"coins":     p.Coins,
	})

	if info.Effect == EffectPassive || info.Effect == EffectNone {
		log.Debug("Purchase refused: card is not sold")
		return res, nil
	}
	if !e.CanAfford(p.Coins, card) {
		log.Debug("Purchase refused: insufficient coins")
		return res, nil
	}

	p.Coins -= info.Price
	switch info.Effect {
	case EffectAddBalls:
		p.BallsLeft += info.Balls
	case EffectGadget:
		p.Deck.AddPurchased(card)
	case EffectReactivate:
		res.Reactivate = true
	}
	res.Purchased = true

	log.WithField("coins_after", p.Coins).Info("Card purchased")
	return res, nil
}

package actions

import (
	"fmt"

	"boingle/internal/domain"
	"boingle/internal/engine/handlers"
	"boingle/internal/systems"
	"boingle/pkg/api"
)

// HandlePurchase покупает предложение магазина. Нехватка монет - не ошибка:
// состояние просто не меняется.
func HandlePurchase(ctx handlers.Context, p api.CardPayload) (handlers.Result, error) {
	card, err := parseCard(p.Card)
	if err != nil {
		return handlers.EmptyResult(), err
	}

	slot := ctx.Run.OfferSlot(card)
	if slot == nil {
		return handlers.EmptyResult(), fmt.Errorf("%w: %s", ErrNotOffered, card)
	}

	purchase, err := ctx.Economy.Purchase(ctx.Player, card)
	if err != nil {
		return handlers.EmptyResult(), err
	}
	if !purchase.Purchased {
		return handlers.Result{Msg: fmt.Sprintf("Cannot afford %s (%d coins)", card, purchase.Price)}, nil
	}
	slot.Purchased = true

	res := handlers.Result{
		Msg:    fmt.Sprintf("Bought %s for %d coins", card, purchase.Price),
		Events: []domain.Notification{{Type: domain.EventCardPurchased, Card: card, Amount: purchase.Price}},
	}
	if purchase.Reactivate {
		res.Events = append(res.Events, systems.ReactivateAll(ctx.World)...)
	}
	return res, nil
}

// HandleExitShop возвращает игрока к выбору карт.
func HandleExitShop(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Goto(domain.PhaseWidgetSelection), nil
}

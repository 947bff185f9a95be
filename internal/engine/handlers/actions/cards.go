package actions

import (
	"fmt"

	"boingle/internal/domain"
	"boingle/internal/economy"
	"boingle/internal/engine/handlers"
	"boingle/internal/systems"
	"boingle/pkg/api"
	"boingle/pkg/playfield"
)

// parseCard переводит имя карты из JSON в CardID.
func parseCard(name string) (domain.CardID, error) {
	card := domain.ParseCard(name)
	if card == domain.CardUnknown {
		return card, fmt.Errorf("%w: %q", economy.ErrUnknownCard, name)
	}
	return card, nil
}

// HandleSelectCard разыгрывает карту из руки: карта уходит в сброс,
// на месте курсора появляется превью гаджета.
func HandleSelectCard(ctx handlers.Context, p api.CardPayload) (handlers.Result, error) {
	card, err := parseCard(p.Card)
	if err != nil {
		return handlers.EmptyResult(), err
	}

	info, err := ctx.Economy.Catalog().Lookup(card)
	if err != nil {
		return handlers.EmptyResult(), err
	}
	if !info.Placeable() {
		return handlers.EmptyResult(), fmt.Errorf("%w: %s", ErrNotPlaceable, card)
	}

	tmpl, ok := playfield.TemplateFor(info.Gadget, card, ctx.Balance.Gadgets)
	if !ok {
		return handlers.EmptyResult(), fmt.Errorf("%w: no gadget template for %s", ErrNotPlaceable, card)
	}

	if _, err := ctx.Player.Deck.RemoveFromHand(card); err != nil {
		return handlers.EmptyResult(), err
	}
	ctx.Player.Deck.Discard(card)

	preview := tmpl.SpawnPreview(ctx.Run.Cursor, 0)
	ctx.Player.CurrentWidget = ctx.World.Spawn(preview)
	systems.UpdatePreview(ctx.World, ctx.Physics, preview, ctx.Run.Cursor, 0)

	res := handlers.Goto(domain.PhasePlaceWidget)
	res.Msg = fmt.Sprintf("Selected %s", info.Title)
	res.Events = []domain.Notification{{Type: domain.EventCardSelected, Card: card, Entity: preview.ID}}
	return res, nil
}

package engine

import (
	"boingle/internal/domain"
	"boingle/pkg/api"
)

// Snapshot создает "снимок" забега для клиента. Только чтение.
func (s *Session) Snapshot() *api.RunSnapshot {
	p := s.Player
	snap := &api.RunSnapshot{
		Phase:              s.machine.Current().String(),
		Points:             p.Points,
		PointsThisRound:    p.PointsThisRound,
		PointsLastRound:    p.PointsLastRound,
		Coins:              p.Coins,
		BallsLeft:          p.BallsLeft,
		BallsPerLevel:      p.BallsPerLevel,
		CurrentLevel:       p.CurrentLevel,
		PointsForNextLevel: p.PointsForNextLevel,
		DrawPile:           len(p.Deck.DrawPile()),
		DiscardPile:        len(p.Deck.DiscardPile()),
		Cursor:             vecView(s.Run.Cursor),
		Hand:               make([]api.CardView, 0),
		Entities:           make([]api.EntityView, 0, s.World.Len()),
		Log:                s.Logs(),
	}

	for _, card := range p.Deck.Hand() {
		snap.Hand = append(snap.Hand, s.cardView(card))
	}
	for _, slot := range s.Run.Shop {
		snap.Shop = append(snap.Shop, api.ShopSlotView{
			CardView:  s.cardView(slot.Card),
			Purchased: slot.Purchased,
		})
	}

	s.World.Each(func(e *domain.Entity) {
		snap.Entities = append(snap.Entities, entityView(e))
	})
	return snap
}

func (s *Session) cardView(card domain.CardID) api.CardView {
	view := api.CardView{ID: card.String(), Title: card.String()}
	info, err := s.Economy.Catalog().Lookup(card)
	if err != nil {
		return view
	}
	view.Title = info.Title
	view.Description = info.Description
	view.Price = info.Price
	view.Affordable = s.Economy.CanAfford(s.Player.Coins, card)
	return view
}

func entityView(e *domain.Entity) api.EntityView {
	view := api.EntityView{
		ID:   e.ID.String(),
		Kind: e.Kind().String(),
		Name: e.Name,
	}
	if b := e.Body; b != nil {
		view.Pos = vecView(b.Position)
		view.Rotation = b.Rotation
		view.Velocity = vecView(b.Velocity)
		view.Shape = shapeView(b.Shape)
	}
	if g := e.Gadget; g != nil {
		view.Gadget = &api.GadgetView{
			Kind:            g.Kind.String(),
			ActivationsLeft: g.ActivationsLeft,
			Activations:     g.ActivationsPerRound,
			Deactivated:     g.Deactivated,
		}
	}
	if c := e.Cannon; c != nil {
		view.Cannon = &api.CannonView{Power: c.Power, MaxPower: c.MaxPower, Charging: c.Charging}
	}
	if pr := e.Preview; pr != nil {
		view.Preview = &api.PreviewView{Valid: pr.Valid}
	}
	return view
}

func shapeView(sh domain.Shape) api.ShapeView {
	view := api.ShapeView{Kind: sh.Kind.String()}
	if sh.Kind == domain.ShapeCircle {
		view.Radius = sh.Radius
	} else {
		view.Width, view.Height = sh.HalfExtents.X*2, sh.HalfExtents.Y*2
	}
	return view
}

func vecView(v domain.Vec2) api.Vec {
	return api.Vec{X: v.X, Y: v.Y}
}

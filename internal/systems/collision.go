package systems

import (
	"boingle/internal/domain"
	"boingle/internal/physics"
	"boingle/pkg/logger"

	"github.com/sirupsen/logrus"
)

// RouteCollisions превращает события одного шага физики в эффекты.
//
// Эффекты запускает только мяч. События с уже удалёнными сущностями
// и повторы одной пары в пределах шага молча пропускаются.
func RouteCollisions(w *domain.World, events []domain.CollisionEvent) Effects {
	var fx Effects
	type seenKey struct {
		pair [2]domain.EntityID
		kind domain.CollisionKind
	}
	seen := make(map[seenKey]struct{}, len(events))

	for _, ev := range events {
		key := seenKey{pair: ev.Pair(), kind: ev.Kind}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		ball, other := resolvePair(w, ev)
		if ball == nil || other == nil {
			continue
		}

		switch ev.Kind {
		case domain.CollisionStarted:
			switch {
			case other.IsCoin():
				fx.Merge(OnCoinTouched(other))
			case other.IsActiveGadget():
				fx.Merge(OnCollisionStart(other, ball))
			}
		case domain.CollisionEnded:
			if other.IsActiveGadget() {
				fx.Merge(OnCollisionEnd(other, ball))
			}
		}
	}
	return fx
}

// resolvePair возвращает (мяч, другой). Если мяча в паре нет или
// сущность уже удалена - (nil, nil).
func resolvePair(w *domain.World, ev domain.CollisionEvent) (*domain.Entity, *domain.Entity) {
	a, b := w.Get(ev.A), w.Get(ev.B)
	if a == nil || b == nil {
		return nil, nil
	}
	switch {
	case a.IsBall() && !b.IsBall():
		return a, b
	case b.IsBall() && !a.IsBall():
		return b, a
	}
	return nil, nil
}

// OnCollisionStart - мяч коснулся гаджета. Выключенный гаджет игнорирует
// касание; иначе расходуется одна активация и эффект варианта
// применяется ровно один раз.
func OnCollisionStart(gadget, ball *domain.Entity) Effects {
	var fx Effects
	g := gadget.Gadget

	log := logger.Log.WithFields(logrus.Fields{
		"component": "collision_router",
		"gadget_id": gadget.ID,
		"gadget":    g.Kind.String(),
		"ball_id":   ball.ID,
	})

	// Сенсорные поля работают парой начало/конец и не тратят активации.
	if g.Kind == domain.GadgetGravityField {
		fx.GravityChanges = append(fx.GravityChanges, GravityChange{Ball: ball.ID, Scale: g.GravityScale})
		log.Debug("Ball entered gravity field")
		return fx
	}

	applied, exhausted := Activate(g)
	if !applied {
		log.Debug("Collision ignored: gadget is deactivated")
		return fx
	}

	switch g.Kind {
	case domain.GadgetSquareBlock, domain.GadgetWideBlock:
		fx.Points += g.Points
	case domain.GadgetBumper:
		fx.Points += g.Points
		fx.VelocityScales = append(fx.VelocityScales, VelocityScale{Ball: ball.ID, Factor: g.VelocityFactor})
	case domain.GadgetCoinBumper:
		fx.PlaceCoins += g.CoinsToSpawn
		fx.notify(domain.Notification{Type: domain.EventPlaceCoins, Entity: gadget.ID, Amount: g.CoinsToSpawn})
	case domain.GadgetHighFrictionBlock:
		fx.Points += g.Points
		fx.VelocityScales = append(fx.VelocityScales, VelocityScale{Ball: ball.ID, Factor: g.VelocityFactor})
	case domain.GadgetMultiBall:
		fx.SplitBalls = append(fx.SplitBalls, ball.ID)
	}

	if exhausted {
		fx.notify(domain.Notification{Type: domain.EventGadgetDeactivated, Entity: gadget.ID})
	}

	log.WithFields(logrus.Fields{
		"activations_left": g.ActivationsLeft,
		"points":           fx.Points,
		"deactivated":      g.Deactivated,
	}).Debug("Gadget activated")
	return fx
}

// OnCollisionEnd - мяч покинул гаджет. Значимо только для полей.
func OnCollisionEnd(gadget, ball *domain.Entity) Effects {
	var fx Effects
	if gadget.Gadget.Kind == domain.GadgetGravityField {
		fx.GravityChanges = append(fx.GravityChanges, GravityChange{Ball: ball.ID, Scale: 1})
	}
	return fx
}

// ReleaseFields возвращает обычную гравитацию мячам, которые сидят в полях
// из removed. Удалённое поле уже не даст события конца контакта, поэтому
// вызывать нужно до удаления. Мяч, который остаётся в другом поле,
// не трогается. Возвращает число отпущенных мячей.
func ReleaseFields(w *domain.World, eng physics.Engine, removed []*domain.Entity) int {
	gone := make(map[domain.EntityID]struct{}, len(removed))
	for _, e := range removed {
		gone[e.ID] = struct{}{}
	}

	var leaving, staying []*domain.Entity
	for _, g := range w.Gadgets() {
		if g.Gadget.Kind != domain.GadgetGravityField || g.Body == nil || !g.IsActiveGadget() {
			continue
		}
		if _, ok := gone[g.ID]; ok {
			leaving = append(leaving, g)
		} else {
			staying = append(staying, g)
		}
	}
	if len(leaving) == 0 {
		return 0
	}

	released := 0
	for _, ball := range w.Balls() {
		if ball.Body == nil || ball.Body.GravityScale == 1 {
			continue
		}
		if insideAny(w, eng, ball, leaving) && !insideAny(w, eng, ball, staying) {
			ball.Body.GravityScale = 1
			released++
		}
	}
	return released
}

func insideAny(w *domain.World, eng physics.Engine, ball *domain.Entity, fields []*domain.Entity) bool {
	only := physics.Filter{Include: func(e *domain.Entity) bool { return e.ID == ball.ID }}
	for _, f := range fields {
		if len(eng.QueryOverlaps(w, f.Body.Shape, f.Body.Position, f.Body.Rotation, only)) > 0 {
			return true
		}
	}
	return false
}

// OnCoinTouched - мяч подобрал монету. Монета засчитывается один раз,
// даже если до конца кадра придут ещё касания.
func OnCoinTouched(coin *domain.Entity) Effects {
	var fx Effects
	c := coin.Collectible
	if c.Collected {
		return fx
	}
	c.Collected = true

	fx.Coins += c.Value
	fx.Despawns = append(fx.Despawns, coin.ID)
	fx.notify(domain.Notification{Type: domain.EventCoinCollected, Entity: coin.ID, Amount: c.Value})
	return fx
}

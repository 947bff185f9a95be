package engine

import (
	"boingle/internal/domain"
	"boingle/internal/systems"
	"boingle/pkg/playfield"

	"github.com/sirupsen/logrus"
)

// applyEffects - единственное место, где последствия столкновений
// меняют игрока и мир. Вызывается на границе кадра, когда физика стоит.
func (s *Session) applyEffects() {
	if s.pending.Empty() {
		return
	}
	fx := s.pending
	s.pending = systems.Effects{}

	if fx.Points > 0 {
		s.Player.AddPoints(fx.Points)
	}
	s.Player.Coins += fx.Coins

	for _, v := range fx.VelocityScales {
		if ball := s.World.Get(v.Ball); ball != nil && ball.Body != nil {
			ball.Body.Velocity = ball.Body.Velocity.Scale(v.Factor)
		}
	}
	for _, g := range fx.GravityChanges {
		if ball := s.World.Get(g.Ball); ball != nil && ball.Body != nil {
			ball.Body.GravityScale = g.Scale
		}
	}

	p := s.cfg.Balance.Physics
	for _, id := range fx.SplitBalls {
		ball := s.World.Get(id)
		if !ball.IsBall() {
			continue
		}
		twin := s.World.Spawn(playfield.SplitBall(p, ball))
		s.log.WithFields(logrus.Fields{
			"ball": id.String(),
			"twin": twin.String(),
		}).Debug("Ball split")
	}

	for _, id := range fx.Despawns {
		// Повторный despawn по устаревшему ID безопасен: World его проигнорирует.
		s.World.Despawn(id)
	}

	if fx.PlaceCoins > 0 {
		placed := playfield.NewField(s.World, s.Physics, s.cfg.Balance, s.Rng).WithCoins(fx.PlaceCoins).Build()
		s.outbox = append(s.outbox, domain.Notification{
			Type:   domain.EventPlaceCoins,
			Amount: uint(len(placed)),
		})
	}

	for _, n := range fx.Notifications {
		// PLACE_COINS от гаджета - это запрос, он уже исполнен выше.
		if n.Type == domain.EventPlaceCoins {
			continue
		}
		s.outbox = append(s.outbox, n)
	}
}

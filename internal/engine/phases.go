package engine

import (
	"boingle/internal/domain"
	"boingle/internal/systems"
	"boingle/pkg/playfield"

	"github.com/sirupsen/logrus"
)

// updatePhase - система, которая работает каждый кадр в своей фазе.
func (s *Session) updatePhase(phase domain.Phase, dt float64) {
	switch phase {
	case domain.PhasePlaceWidget:
		if preview := s.World.Get(s.Player.CurrentWidget); preview != nil {
			systems.UpdatePreview(s.World, s.Physics, preview, s.Run.Cursor, 0)
		}

	case domain.PhaseShootBall:
		if cannon := s.World.Cannon(); cannon != nil {
			systems.ChargeCannon(cannon.Cannon, dt)
		}

	case domain.PhaseBallBouncing:
		s.updateBouncing(dt)
	}
}

// updateBouncing убирает выбывшие мячи. Когда последний мяч убран,
// раунд закончен. При balls_left == 0 всё равно идём через EndOfRound:
// там решается, повышение это или конец игры.
func (s *Session) updateBouncing(dt float64) {
	if len(s.World.Balls()) == 0 {
		if s.Player.BallsLeft > 0 {
			s.Player.BallsLeft--
		}
		s.machine.Request(domain.PhaseEndOfRound)
		return
	}

	p := s.cfg.Balance.Physics
	lost := systems.LostBalls(s.World, systems.BallPolicy{
		OutOfBoundsY:  p.OutOfBoundsY,
		MaxSpeed:      p.MaxBallSpeed,
		StillDistance: p.StillDistance,
		StillTime:     p.StillTime,
		Area: playfield.Bounds{
			HalfWidth:  s.cfg.Balance.PlayAreaHalfWidth + p.EscapeMargin,
			HalfHeight: s.cfg.Balance.PlayAreaHalfHeight + p.EscapeMargin,
		},
	}, dt)
	s.pending.Despawns = append(s.pending.Despawns, lost...)
}

func (s *Session) onEnter(phase domain.Phase) {
	switch phase {
	case domain.PhaseLevelStart:
		s.startLevel()
		s.machine.Request(domain.PhaseWidgetSelection)

	case domain.PhaseWidgetSelection:
		if err := s.Player.Deck.FillHandTo(s.cfg.Balance.HandSize, s.Rng); err != nil {
			s.fail(s.log, err)
		}

	case domain.PhaseEndOfRound:
		s.endRound()

	case domain.PhaseShop:
		offer := s.Economy.ShopOffer(s.Player.CurrentLevel, s.Rng)
		s.Run.Shop = make([]domain.ShopSlot, 0, len(offer))
		for _, card := range offer {
			s.Run.Shop = append(s.Run.Shop, domain.ShopSlot{Card: card})
		}
	}
}

func (s *Session) onExit(phase domain.Phase) {
	switch phase {
	case domain.PhaseWidgetSelection:
		s.pending.Notifications = append(s.pending.Notifications, systems.ReactivateAll(s.World)...)

	case domain.PhaseShop:
		s.Player.CurrentLevel++
		s.Player.PointsForNextLevel = s.Economy.PointsThreshold(s.Player.CurrentLevel)
		s.Run.Shop = nil
		s.pending.PlaceCoins += s.cfg.Balance.CoinsPerPlacement

		s.log.WithFields(logrus.Fields{
			"level":     s.Player.CurrentLevel,
			"threshold": s.Player.PointsForNextLevel,
		}).Info("Level up")
	}
}

// startLevel - чистое поле и новый забег с тем же генератором.
func (s *Session) startLevel() {
	s.World.DespawnWhere(func(*domain.Entity) bool { return true })
	s.Physics.Reset()
	s.pending = systems.Effects{}
	s.accumulator = 0

	s.newRunID()
	s.Player.Reset(s.Economy.PointsThreshold(0), s.Rng)
	s.Run.Shop = nil

	playfield.NewField(s.World, s.Physics, s.cfg.Balance, s.Rng).WithCannon().Build()
	s.pending.PlaceCoins += s.cfg.Balance.CoinsPerPlacement

	s.AddLog("Level started")
}

// endRound закрывает раунд и выбирает следующую фазу.
func (s *Session) endRound() {
	s.Player.CloseRound()
	s.pending.Notifications = append(s.pending.Notifications, domain.Notification{
		Type:   domain.EventRoundEnded,
		Amount: s.Player.PointsLastRound,
	})

	next := nextAfterRound(s.Player)
	s.log.WithFields(logrus.Fields{
		"points":     s.Player.Points,
		"threshold":  s.Player.PointsForNextLevel,
		"balls_left": s.Player.BallsLeft,
		"next":       next.String(),
	}).Info("Round ended")
	s.machine.Request(next)
}

// nextAfterRound - правило повышения: порог набран -> магазин,
// иначе есть мячи -> следующий раунд, иначе конец игры.
func nextAfterRound(p *domain.Player) domain.Phase {
	switch {
	case p.Promoted():
		return domain.PhaseShop
	case p.BallsLeft > 0:
		return domain.PhaseWidgetSelection
	default:
		return domain.PhaseGameOver
	}
}

// Package agent - headless-игрок. Видит только то же, что и UI (api.RunSnapshot),
// и отвечает командами протокола. Используется для симуляций и нагрузочных
// прогонов сервера.
package agent

import (
	"context"
	"math/rand"

	"boingle/internal/domain"
	"boingle/internal/engine"
	"boingle/pkg/api"
	"boingle/pkg/logger"
	"boingle/pkg/playfield"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Bot - простая стратегия: случайная карта, случайное свободное место,
// случайная мощность выстрела, в магазине покупает всё, на что хватает.
type Bot struct {
	ID    string
	Area  playfield.Bounds
	Retry bool // после GAME_OVER начинать заново

	rng         *rand.Rand
	targetPower float64
	log         *logrus.Entry
}

// placementMargin - отступ от края поля при выборе места для гаджета
const placementMargin = 60

func NewBot(area playfield.Bounds, seed int64) *Bot {
	id := "bot-" + uuid.NewString()
	return &Bot{
		ID:   id,
		Area: area,
		rng:  rand.New(rand.NewSource(seed)),
		log: logger.Log.WithFields(logrus.Fields{
			"component": "bot",
			"bot":       id,
		}),
	}
}

// Decide возвращает команды на текущий снимок. Пустой ответ - ждать.
func (b *Bot) Decide(snap *api.RunSnapshot) []api.ClientCommand {
	if snap == nil {
		return nil
	}

	switch snap.Phase {
	case "MENU":
		return []api.ClientCommand{command("START_RUN", nil)}

	case "GAME_OVER":
		if b.Retry {
			return []api.ClientCommand{command("RETRY", nil)}
		}

	case "WIDGET_SELECTION":
		if len(snap.Hand) == 0 {
			return nil
		}
		card := snap.Hand[b.rng.Intn(len(snap.Hand))]
		return []api.ClientCommand{command("SELECT_CARD", api.CardPayload{Card: card.ID})}

	case "PLACE_WIDGET":
		return b.place(snap)

	case "SHOOT_BALL":
		return b.shoot(snap)

	case "SHOP":
		return b.shop(snap)
	}
	return nil
}

func (b *Bot) place(snap *api.RunSnapshot) []api.ClientCommand {
	for _, e := range snap.Entities {
		if e.Preview == nil {
			continue
		}
		if e.Preview.Valid {
			return []api.ClientCommand{command("CONFIRM_PLACEMENT", nil)}
		}
		spot := b.Area.RandomPoint(b.rng, placementMargin)
		return []api.ClientCommand{
			command("MOVE_CURSOR", api.CursorPayload{X: spot.X, Y: spot.Y}),
			command("ROTATE", api.RotatePayload{Delta: float64(b.rng.Intn(90))}),
		}
	}
	return nil
}

func (b *Bot) shoot(snap *api.RunSnapshot) []api.ClientCommand {
	for _, e := range snap.Entities {
		c := e.Cannon
		if c == nil {
			continue
		}
		if !c.Charging {
			b.targetPower = c.MaxPower * (0.6 + 0.4*b.rng.Float64())
			return []api.ClientCommand{command("PRESS_CANNON", nil)}
		}
		if c.Power >= b.targetPower || c.Power >= c.MaxPower {
			return []api.ClientCommand{command("RELEASE_CANNON", nil)}
		}
	}
	return nil
}

func (b *Bot) shop(snap *api.RunSnapshot) []api.ClientCommand {
	for _, slot := range snap.Shop {
		if !slot.Purchased && slot.Affordable {
			return []api.ClientCommand{command("PURCHASE", api.CardPayload{Card: slot.ID})}
		}
	}
	return []api.ClientCommand{command("EXIT_SHOP", nil)}
}

// Run подключает бота к сервису как обычного клиента через хаб.
// Блокирует до отмены ctx.
func (b *Bot) Run(ctx context.Context, svc *engine.GameService) {
	inbox := svc.Hub.Register(b.ID)
	defer svc.Hub.Unregister(b.ID)

	b.log.Info("Bot connected")
	b.act(svc, svc.LastState().Snapshot)

	for {
		select {
		case <-ctx.Done():
			b.log.Info("Bot stopped")
			return
		case msg, ok := <-inbox:
			if !ok {
				return
			}
			b.act(svc, msg.Snapshot)
		}
	}
}

func (b *Bot) act(svc *engine.GameService, snap *api.RunSnapshot) {
	for _, cmd := range b.Decide(snap) {
		if err := svc.ProcessCommand(cmd); err != nil {
			b.log.WithError(err).Warn("Command not accepted")
			return
		}
	}
}

// SimResult - итог headless-прогона
type SimResult struct {
	Frames   int
	Phase    domain.Phase
	Points   uint
	Level    uint
	Commands int
}

// Simulate играет ботом напрямую на сессии, без сети и таймеров:
// снимок -> команды -> кадр. Останавливается на GAME_OVER (если бот
// не перезапускает забег) или через maxFrames кадров.
func Simulate(s *engine.Session, b *Bot, maxFrames int) SimResult {
	dt := s.Config().Balance.Physics.FixedStep
	res := SimResult{}

	for res.Frames < maxFrames {
		if s.Phase() == domain.PhaseGameOver && !b.Retry {
			break
		}
		for _, cmd := range b.Decide(s.Snapshot()) {
			s.Enqueue(domain.Command{Action: domain.ParseAction(cmd.Action), Payload: cmd.Payload})
			res.Commands++
		}
		s.Frame(dt)
		res.Frames++
	}

	res.Phase = s.Phase()
	res.Points = s.Player.Points
	res.Level = s.Player.CurrentLevel
	b.log.WithFields(logrus.Fields{
		"frames": res.Frames,
		"phase":  res.Phase.String(),
		"points": res.Points,
		"level":  res.Level,
	}).Info("Simulation finished")
	return res
}

func command(action string, payload any) api.ClientCommand {
	cmd := domain.NewCommand(domain.ParseAction(action), payload)
	return api.ClientCommand{Action: action, Payload: cmd.Payload}
}

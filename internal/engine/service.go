package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"boingle/internal/config"
	"boingle/internal/domain"
	"boingle/internal/infrastructure/storage"
	"boingle/internal/network"
	"boingle/pkg/api"
	"boingle/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ErrQueueFull - клиент шлёт команды быстрее, чем их успевает разобрать цикл.
var ErrQueueFull = errors.New("command queue is full")

// ErrUnknownAction - имя команды не из протокола.
var ErrUnknownAction = errors.New("unknown action")

// GameService крутит одну сессию в своей горутине и рассылает снимки
// подключенным клиентам.
type GameService struct {
	Session *Session

	CommandChan chan domain.Command
	Hub         *network.Broadcaster
	Replays     *storage.ReplayService // nil - реплеи не сохраняются

	mu   sync.RWMutex
	last api.ServerResponse

	log *logrus.Entry
}

func NewService(cfg Config, replays *storage.ReplayService) (*GameService, error) {
	session, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}
	session.Boot()

	s := &GameService{
		Session:     session,
		CommandChan: make(chan domain.Command, 100),
		Hub:         network.NewBroadcaster(),
		Replays:     replays,
		log: logger.Log.WithFields(logrus.Fields{
			"component": "game_service",
			"session":   session.ID,
		}),
	}
	s.last = s.buildResponse(nil)
	return s, nil
}

// Start запускает игровой цикл в отдельной горутине.
func (s *GameService) Start(ctx context.Context) {
	go s.Run(ctx)
}

// Run - игровой цикл: один кадр на каждый тик. Шаг времени всегда
// FixedStep, поэтому запись команд по кадрам воспроизводится точно.
func (s *GameService) Run(ctx context.Context) {
	dt := s.Session.Config().Balance.Physics.FixedStep
	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()

	s.log.WithField("step", dt).Info("Game loop started")

	for {
		select {
		case <-ctx.Done():
			s.saveReplay()
			s.log.Info("Game loop stopped")
			return
		case <-ticker.C:
			s.tick(dt)
		}
	}
}

// tick забирает всё из канала команд и прокручивает один кадр.
func (s *GameService) tick(dt float64) {
	received := 0
drain:
	for {
		select {
		case cmd := <-s.CommandChan:
			s.Session.Enqueue(cmd)
			received++
		default:
			break drain
		}
	}

	events := s.Session.Frame(dt)

	if received > 0 || len(events) > 0 || animated(s.Session.Phase()) {
		s.publish(events)
	}

	for _, ev := range events {
		if ev.Type == domain.EventPhaseChanged && ev.To == domain.PhaseGameOver {
			s.saveReplay()
		}
	}
}

// animated - фазы, в которых поле меняется без команд игрока.
func animated(p domain.Phase) bool {
	switch p {
	case domain.PhasePlaceWidget, domain.PhaseShootBall, domain.PhaseBallBouncing:
		return true
	}
	return false
}

// ProcessCommand принимает команду от внешнего мира (WebSocket, бот).
// Проверка фазы происходит уже в сессии.
func (s *GameService) ProcessCommand(externalCmd api.ClientCommand) error {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		return fmt.Errorf("%w: %q", ErrUnknownAction, externalCmd.Action)
	}

	select {
	case s.CommandChan <- domain.Command{Action: actionType, Payload: externalCmd.Payload}:
		return nil
	default:
		return ErrQueueFull
	}
}

func (s *GameService) publish(events []domain.Notification) {
	resp := s.buildResponse(events)

	s.mu.Lock()
	s.last = resp
	s.mu.Unlock()

	s.Hub.Broadcast(resp)
}

func (s *GameService) buildResponse(events []domain.Notification) api.ServerResponse {
	resp := api.ServerResponse{
		Type:     "UPDATE",
		Frame:    s.Session.FrameNo(),
		RunID:    s.Session.RunID,
		Snapshot: s.Session.Snapshot(),
	}
	for _, ev := range events {
		resp.Events = append(resp.Events, eventView(ev))
	}
	return resp
}

// LastState - последний разосланный снимок (для новых клиентов и /debug).
func (s *GameService) LastState() api.ServerResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp := s.last
	resp.Events = nil
	return resp
}

// Balance - баланс сессии. Не меняется после старта, поэтому читать
// его можно из любой горутины.
func (s *GameService) Balance() config.Balance {
	return s.Session.cfg.Balance
}

func (s *GameService) saveReplay() {
	if s.Replays == nil {
		return
	}
	rec := s.Session.Replay()
	if len(rec.Actions) == 0 {
		return
	}
	if _, err := s.Replays.Save(&rec); err != nil {
		s.log.WithError(err).Error("Failed to save replay")
	}
}

func eventView(n domain.Notification) api.EventView {
	view := api.EventView{Type: n.Type.String(), Amount: n.Amount}
	if n.Card != domain.CardUnknown {
		view.Card = n.Card.String()
	}
	if !n.Entity.IsNil() {
		view.Entity = n.Entity.String()
	}
	if n.Type == domain.EventPhaseChanged {
		view.From = n.From.String()
		view.To = n.To.String()
	}
	return view
}

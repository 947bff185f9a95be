package engine

import (
	"fmt"
	"math/rand"
	"time"

	"boingle/internal/domain"
	"boingle/internal/economy"
	"boingle/internal/engine/handlers"
	"boingle/internal/physics"
	"boingle/internal/systems"
	"boingle/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Session - один забег: мир, игрок, колода, физика и фаза.
// Все изменения состояния происходят внутри Frame, поэтому Session
// не потокобезопасна: её крутит одна горутина (GameService или тест).
type Session struct {
	cfg Config

	// ID - идентификатор сессии (имя файла реплея). RunID меняется
	// при каждом новом забеге внутри сессии.
	ID    string
	RunID string
	Seed  int64
	Rng   *rand.Rand

	Player  *domain.Player
	World   *domain.World
	Run     *domain.RunState
	Physics physics.Engine
	Economy *economy.Economy

	machine Machine
	routes  map[domain.ActionType]route

	queue   []domain.Command
	pending systems.Effects
	outbox  []domain.Notification

	frame       int
	accumulator float64

	replay *domain.ReplaySession
	logs   []string
	log    *logrus.Entry
}

// NewSession собирает сессию. Баланс проверяется здесь, дальше
// забег считает его корректным.
func NewSession(cfg Config) (*Session, error) {
	if err := cfg.Balance.Validate(); err != nil {
		return nil, fmt.Errorf("invalid balance: %w", err)
	}
	econ, err := economy.New(cfg.Balance)
	if err != nil {
		return nil, err
	}

	eng := cfg.Physics
	if eng == nil {
		p := cfg.Balance.Physics
		eng = physics.NewArena(physics.Settings{
			Gravity:    p.Gravity,
			SleepSpeed: p.SleepSpeed,
			SleepTime:  p.SleepTime,
		})
	}

	s := &Session{
		cfg:     cfg,
		ID:      uuid.NewString(),
		Seed:    cfg.Seed,
		Rng:     rand.New(rand.NewSource(cfg.Seed)),
		Player:  domain.NewPlayer(cfg.Balance.BallsPerLevel, cfg.Balance.StarterDeck),
		World:   domain.NewWorld(),
		Run:     &domain.RunState{},
		Physics: eng,
		Economy: econ,
		machine: NewMachine(),
		routes:  defaultRoutes(),
		replay: &domain.ReplaySession{
			Seed:      cfg.Seed,
			Timestamp: time.Now().Unix(),
			Preset:    cfg.Balance.Name,
			Actions:   make([]domain.ReplayAction, 0),
		},
	}
	s.replay.RunID = s.ID
	s.log = logger.Log.WithFields(logrus.Fields{
		"component": "session",
		"session":   s.ID,
		"seed":      cfg.Seed,
	})
	return s, nil
}

// Boot - ресурсы готовы, показываем меню.
func (s *Session) Boot() {
	if s.machine.Current() != domain.PhaseLoading {
		return
	}
	s.machine.Request(domain.PhaseMenu)
	s.applyTransition()
}

func (s *Session) Phase() domain.Phase {
	return s.machine.Current()
}

func (s *Session) FrameNo() int {
	return s.frame
}

func (s *Session) Config() Config {
	return s.cfg
}

// Enqueue ставит команду в очередь. Выполнится в начале следующего кадра.
func (s *Session) Enqueue(cmd domain.Command) {
	s.queue = append(s.queue, cmd)
}

// Queued - сколько команд ждут выполнения.
func (s *Session) Queued() int {
	return len(s.queue)
}

// Frame прокручивает один кадр длительностью dt секунд и возвращает
// уведомления, накопленные за кадр.
//
// Порядок: команды -> шаги физики -> система фазы -> эффекты -> переход.
// После запроса перехода оставшиеся команды ждут следующего кадра:
// их разрешённость проверяется уже в новой фазе.
func (s *Session) Frame(dt float64) []domain.Notification {
	s.frame++

	s.drainCommands()

	phase := s.machine.Current()
	if phase.InRun() && phase != domain.PhaseLevelStart {
		s.stepPhysics(dt)
	}

	s.updatePhase(phase, dt)
	s.applyEffects()
	s.applyTransition()

	out := s.outbox
	s.outbox = nil
	return out
}

func (s *Session) drainCommands() {
	for len(s.queue) > 0 {
		if _, pending := s.machine.Pending(); pending {
			return
		}
		cmd := s.queue[0]
		s.queue = s.queue[1:]
		s.execute(cmd)
	}
}

// stepPhysics - фиксированный шаг с аккумулятором. Столкновения каждого
// шага превращаются в эффекты, но применяются только в конце кадра.
func (s *Session) stepPhysics(dt float64) {
	p := s.cfg.Balance.Physics
	s.accumulator += dt

	steps := 0
	for s.accumulator >= p.FixedStep && steps < p.MaxSubsteps {
		events := s.Physics.Step(s.World, p.FixedStep)
		s.pending.Merge(systems.RouteCollisions(s.World, events))
		systems.ClampBallSpeed(s.World, p.MaxBallSpeed)
		s.accumulator -= p.FixedStep
		steps++
	}
	// Не догоняем бесконечно после долгой паузы.
	if steps == p.MaxSubsteps && s.accumulator > p.FixedStep {
		s.accumulator = 0
	}
}

// execute - маршрутизация команды к хендлеру с проверкой фазы.
func (s *Session) execute(cmd domain.Command) {
	log := s.log.WithFields(logrus.Fields{
		"action": cmd.Action.String(),
		"phase":  s.machine.Current().String(),
		"frame":  s.frame,
	})

	r, ok := s.routes[cmd.Action]
	if !ok {
		log.Warn("Unknown action")
		return
	}
	if !r.allowed(s.machine.Current()) {
		log.Debug("Action ignored in this phase")
		return
	}

	s.recordAction(cmd)

	result, err := r.handler(s.context(), cmd.Payload)
	if err != nil {
		if isInvariantError(err) {
			s.fail(log, err)
		} else {
			log.WithError(err).Warn("Command rejected")
		}
		return
	}

	if result.Msg != "" {
		s.AddLog(result.Msg)
	}
	s.outbox = append(s.outbox, result.Events...)
	if result.Next != nil {
		s.machine.Request(*result.Next)
	}
}

func (s *Session) context() handlers.Context {
	return handlers.Context{
		Phase:   s.machine.Current(),
		Player:  s.Player,
		World:   s.World,
		Run:     s.Run,
		Physics: s.Physics,
		Economy: s.Economy,
		Balance: s.cfg.Balance,
		Rng:     s.Rng,
	}
}

// fail - нарушение инварианта. В debug-сборке это паника.
func (s *Session) fail(log *logrus.Entry, err error) {
	log.WithError(err).Error("Invariant violated")
	if s.cfg.Debug {
		panic(err)
	}
}

// applyTransition применяет запрошенный переход: выход из старой фазы,
// смена, вход в новую. Вход может сразу запросить следующий переход
// (LevelStart -> WidgetSelection); он применится в следующем кадре.
func (s *Session) applyTransition() {
	from, to, ok := s.machine.Advance()
	if !ok {
		return
	}

	s.onExit(from)
	s.outbox = append(s.outbox, domain.Notification{
		Type: domain.EventPhaseChanged,
		From: from,
		To:   to,
	})
	s.log.WithFields(logrus.Fields{
		"from":  from.String(),
		"to":    to.String(),
		"frame": s.frame,
	}).Debug("Phase changed")
	s.onEnter(to)

	// Эффекты входа (монеты, перезарядка) применяются в том же кадре.
	s.applyEffects()
}

func (s *Session) newRunID() {
	s.RunID = uuid.NewString()
	s.log = s.log.WithField("run_id", s.RunID)
}

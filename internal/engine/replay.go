package engine

import (
	"fmt"

	"boingle/internal/domain"

	"github.com/sirupsen/logrus"
)

// Replay возвращает копию записи сессии на текущий кадр.
func (s *Session) Replay() domain.ReplaySession {
	rec := *s.replay
	rec.Frames = s.frame
	rec.Actions = append([]domain.ReplayAction(nil), s.replay.Actions...)
	return rec
}

// Playback проигрывает запись заново: тот же сид, те же команды в тех же
// кадрах, шаг времени всегда FixedStep. Возвращает сессию в конечном
// состоянии.
func Playback(cfg Config, rec domain.ReplaySession) (*Session, error) {
	cfg.Seed = rec.Seed
	s, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}
	if rec.Preset != "" && rec.Preset != cfg.Balance.Name {
		s.log.WithFields(logrus.Fields{
			"recorded": rec.Preset,
			"current":  cfg.Balance.Name,
		}).Warn("Replay was recorded with another balance preset")
	}

	s.Boot()
	dt := cfg.Balance.Physics.FixedStep

	next := 0
	for f := 1; f <= rec.Frames; f++ {
		for next < len(rec.Actions) && rec.Actions[next].Frame == f {
			a := rec.Actions[next]
			s.Enqueue(domain.Command{Action: a.Action, Payload: a.Payload})
			next++
		}
		s.Frame(dt)
	}
	if next < len(rec.Actions) {
		return s, fmt.Errorf("replay has %d actions after frame %d", len(rec.Actions)-next, rec.Frames)
	}
	return s, nil
}

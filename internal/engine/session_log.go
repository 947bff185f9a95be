package engine

import (
	"boingle/pkg/logger"

	"github.com/sirupsen/logrus"
)

// maxLogLines - сколько строк журнала хранится для UI
const maxLogLines = 50

// AddLog добавляет строку в журнал забега
func (s *Session) AddLog(text string) {
	s.logs = append(s.logs, text)
	if len(s.logs) > maxLogLines {
		s.logs = s.logs[len(s.logs)-maxLogLines:]
	}
	logger.Log.WithFields(logrus.Fields{
		"session":   s.ID,
		"run_id":    s.RunID,
		"component": "game_log",
		"frame":     s.frame,
	}).Info(text)
}

// Logs - последние строки журнала, старые первыми.
func (s *Session) Logs() []string {
	return append([]string(nil), s.logs...)
}

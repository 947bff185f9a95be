package domain

import "encoding/json"

// Command - команда игрока для сессии.
// Использует ActionType вместо string, payload парсится хендлером.
type Command struct {
	Action  ActionType
	Payload json.RawMessage
}

// NewCommand упаковывает payload в JSON. Ошибка маршалинга тут невозможна
// для DTO из pkg/api, поэтому при ней payload просто остаётся пустым.
func NewCommand(action ActionType, payload any) Command {
	cmd := Command{Action: action}
	if payload == nil {
		return cmd
	}
	if raw, err := json.Marshal(payload); err == nil {
		cmd.Payload = raw
	}
	return cmd
}

// CollisionKind - начало или конец контакта двух коллайдеров
type CollisionKind uint8

const (
	CollisionStarted CollisionKind = iota
	CollisionEnded
)

func (k CollisionKind) String() string {
	if k == CollisionEnded {
		return "END"
	}
	return "START"
}

// CollisionEvent - одно событие из потока физического движка.
type CollisionEvent struct {
	Kind CollisionKind
	A    EntityID
	B    EntityID
}

// Pair возвращает пару в каноническом порядке (меньший ID первым).
func (c CollisionEvent) Pair() [2]EntityID {
	if c.A < c.B {
		return [2]EntityID{c.A, c.B}
	}
	return [2]EntityID{c.B, c.A}
}

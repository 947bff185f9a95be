package domain

import "encoding/json"

// ReplayAction - это запись одной команды игрока с номером кадра
type ReplayAction struct {
	Frame   int             `json:"frame"`
	Action  ActionType      `json:"action"`  // Что сделал
	Payload json.RawMessage `json:"payload"` // С какими параметрами
}

// ReplaySession - полная запись забега. Сид + команды однозначно
// воспроизводят забег, так как весь рандом идёт из одного генератора.
type ReplaySession struct {
	RunID     string         `json:"runId"`
	Seed      int64          `json:"seed"`
	Timestamp int64          `json:"timestamp"`
	Preset    string         `json:"preset"`
	Frames    int            `json:"frames"` // сколько кадров прожито
	Actions   []ReplayAction `json:"actions"`
}

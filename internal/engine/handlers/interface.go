package handlers

import (
	"encoding/json"
	"math/rand"

	"boingle/internal/config"
	"boingle/internal/domain"
	"boingle/internal/economy"
	"boingle/internal/physics"
)

// Context передает хендлеру состояние забега.
// Хендлеры вызываются на границе кадра, поэтому могут менять мир напрямую;
// смену фазы они только запрашивают через Result.
type Context struct {
	Phase   domain.Phase
	Player  *domain.Player
	World   *domain.World
	Run     *domain.RunState
	Physics physics.Engine
	Economy *economy.Economy
	Balance config.Balance
	Rng     *rand.Rand
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ переключает фазу сам, он возвращает запрос.
type Result struct {
	Msg    string                // Текст для лога
	Next   *domain.Phase         // Запрошенный переход (nil - остаёмся)
	Events []domain.Notification // Уведомления для UI
}

// HandlerFunc - это контракт для любой команды (SELECT_CARD, PURCHASE, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// Goto - запрос перехода в фазу p.
func Goto(p domain.Phase) Result {
	return Result{Next: &p}
}

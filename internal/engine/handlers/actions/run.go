package actions

import (
	"boingle/internal/domain"
	"boingle/internal/engine/handlers"
)

// HandleStartRun - из меню в начало уровня.
func HandleStartRun(ctx handlers.Context) (handlers.Result, error) {
	res := handlers.Goto(domain.PhaseLevelStart)
	res.Msg = "Run started"
	return res, nil
}

// HandleRetry - после поражения забег начинается заново.
func HandleRetry(ctx handlers.Context) (handlers.Result, error) {
	res := handlers.Goto(domain.PhaseLevelStart)
	res.Msg = "Run restarted"
	return res, nil
}

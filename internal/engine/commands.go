package engine

import (
	"errors"

	"boingle/internal/deck"
	"boingle/internal/domain"
	"boingle/internal/engine/handlers"
	"boingle/internal/engine/handlers/actions"
	"boingle/pkg/api"
)

// route - хендлер команды и фазы, в которых она разрешена.
type route struct {
	handler handlers.HandlerFunc
	allowed func(domain.Phase) bool
}

func only(phases ...domain.Phase) func(domain.Phase) bool {
	return func(p domain.Phase) bool {
		for _, allowed := range phases {
			if p == allowed {
				return true
			}
		}
		return false
	}
}

func inRun(p domain.Phase) bool {
	return p.InRun()
}

// defaultRoutes - таблица команд. Команда в чужой фазе игнорируется.
func defaultRoutes() map[domain.ActionType]route {
	return map[domain.ActionType]route{
		domain.ActionStartRun: {
			handlers.WithEmptyPayload(actions.HandleStartRun), only(domain.PhaseMenu),
		},
		domain.ActionRetry: {
			handlers.WithEmptyPayload(actions.HandleRetry), only(domain.PhaseGameOver),
		},
		domain.ActionSelectCard: {
			handlers.WithPayload[api.CardPayload](actions.HandleSelectCard), only(domain.PhaseWidgetSelection),
		},
		domain.ActionMoveCursor: {
			handlers.WithPayload[api.CursorPayload](actions.HandleMoveCursor), inRun,
		},
		domain.ActionRotate: {
			handlers.WithPayload[api.RotatePayload](actions.HandleRotate), only(domain.PhasePlaceWidget),
		},
		domain.ActionConfirmPlacement: {
			handlers.WithEmptyPayload(actions.HandleConfirmPlacement), only(domain.PhasePlaceWidget),
		},
		domain.ActionPressCannon: {
			handlers.WithEmptyPayload(actions.HandlePressCannon), only(domain.PhaseShootBall),
		},
		domain.ActionReleaseCannon: {
			handlers.WithEmptyPayload(actions.HandleReleaseCannon), only(domain.PhaseShootBall),
		},
		domain.ActionPurchase: {
			handlers.WithPayload[api.CardPayload](actions.HandlePurchase), only(domain.PhaseShop),
		},
		domain.ActionExitShop: {
			handlers.WithEmptyPayload(actions.HandleExitShop), only(domain.PhaseShop),
		},
		domain.ActionClearGadgets: {
			handlers.WithEmptyPayload(actions.HandleClearGadgets), inRun,
		},
	}
}

// isInvariantError - ошибки, которых не бывает при корректном каталоге
// и колоде. Всё остальное - просто отклонённая команда клиента.
func isInvariantError(err error) bool {
	return errors.Is(err, deck.ErrDeckExhausted)
}

// recordAction пишет команду в реплей вместе с номером кадра.
func (s *Session) recordAction(cmd domain.Command) {
	s.replay.Actions = append(s.replay.Actions, domain.ReplayAction{
		Frame:   s.frame,
		Action:  cmd.Action,
		Payload: cmd.Payload,
	})
}

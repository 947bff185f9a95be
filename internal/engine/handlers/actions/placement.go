package actions

import (
	"fmt"

	"boingle/internal/domain"
	"boingle/internal/engine/handlers"
	"boingle/internal/systems"
	"boingle/pkg/api"
)

// HandleMoveCursor запоминает курсор. Превью догоняет его в системе фазы.
func HandleMoveCursor(ctx handlers.Context, p api.CursorPayload) (handlers.Result, error) {
	ctx.Run.Cursor = domain.V(p.X, p.Y)
	return handlers.EmptyResult(), nil
}

// HandleRotate поворачивает превью на Delta шагов колеса.
func HandleRotate(ctx handlers.Context, p api.RotatePayload) (handlers.Result, error) {
	preview := ctx.World.Get(ctx.Player.CurrentWidget)
	if preview == nil {
		return handlers.EmptyResult(), ErrNoWidget
	}
	systems.UpdatePreview(ctx.World, ctx.Physics, preview, ctx.Run.Cursor, p.Delta)
	return handlers.EmptyResult(), nil
}

// HandleConfirmPlacement ставит превью там, где сейчас курсор.
// Если место занято, ничего не меняется.
func HandleConfirmPlacement(ctx handlers.Context) (handlers.Result, error) {
	preview := ctx.World.Get(ctx.Player.CurrentWidget)
	if preview == nil {
		return handlers.EmptyResult(), ErrNoWidget
	}

	systems.UpdatePreview(ctx.World, ctx.Physics, preview, ctx.Run.Cursor, 0)
	if !systems.CommitPlacement(ctx.World, ctx.Physics, preview) {
		return handlers.Result{Msg: "Placement blocked"}, nil
	}
	ctx.Player.CurrentWidget = domain.NilEntityID

	res := handlers.Goto(domain.PhaseShootBall)
	res.Msg = fmt.Sprintf("Placed %s at (%.0f, %.0f)", preview.Name, preview.Body.Position.X, preview.Body.Position.Y)
	return res, nil
}

// HandleClearGadgets убирает с поля все поставленные гаджеты.
// Мячи внутри убранных полей гравитации сразу получают обычную гравитацию.
func HandleClearGadgets(ctx handlers.Context) (handlers.Result, error) {
	placed := func(e *domain.Entity) bool {
		return e.Gadget != nil && e.Placed
	}
	systems.ReleaseFields(ctx.World, ctx.Physics, ctx.World.Filter(placed))

	removed := ctx.World.DespawnWhere(placed)
	return handlers.Result{Msg: fmt.Sprintf("Cleared %d gadgets", len(removed))}, nil
}

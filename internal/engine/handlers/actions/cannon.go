package actions

import (
	"boingle/internal/domain"
	"boingle/internal/engine/handlers"
	"boingle/internal/systems"
	"boingle/pkg/playfield"
)

// HandlePressCannon начинает набор мощности. Оставшиеся мячи убираются.
func HandlePressCannon(ctx handlers.Context) (handlers.Result, error) {
	cannon := ctx.World.Cannon()
	if cannon == nil {
		return handlers.EmptyResult(), ErrNoCannon
	}
	ctx.World.DespawnWhere(func(e *domain.Entity) bool { return e.Ball != nil })
	systems.PressCannon(cannon.Cannon)
	return handlers.EmptyResult(), nil
}

// HandleReleaseCannon выстреливает мячом с набранной мощностью.
func HandleReleaseCannon(ctx handlers.Context) (handlers.Result, error) {
	cannon := ctx.World.Cannon()
	if cannon == nil {
		return handlers.EmptyResult(), ErrNoCannon
	}
	vel, ok := systems.ReleaseCannon(cannon)
	if !ok {
		return handlers.EmptyResult(), nil
	}

	ctx.World.Spawn(playfield.NewBall(ctx.Balance.Physics, cannon.Body.Position, vel))

	res := handlers.Goto(domain.PhaseBallBouncing)
	res.Msg = "Ball fired"
	return res, nil
}

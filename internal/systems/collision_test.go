package systems

import (
	"testing"

	"boingle/internal/domain"
	"boingle/internal/physics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBall(w *domain.World) *domain.Entity {
	e := &domain.Entity{
		Name: "Ball",
		Body: &domain.BodyComponent{
			Shape:        domain.Circle(10),
			Velocity:     domain.V(100, 0),
			GravityScale: 1,
			Dynamic:      true,
		},
		Ball: &domain.BallComponent{},
	}
	w.Spawn(e)
	return e
}

func newGadget(w *domain.World, g domain.GadgetComponent) *domain.Entity {
	g.ActivationsLeft = g.ActivationsPerRound
	e := &domain.Entity{
		Name:   g.Kind.String(),
		Body:   &domain.BodyComponent{Shape: domain.Rect(50, 50), Sensor: g.Kind == domain.GadgetGravityField},
		Gadget: &g,
		Placed: true,
	}
	w.Spawn(e)
	return e
}

func newCoin(w *domain.World) *domain.Entity {
	e := &domain.Entity{
		Name:        "Coin",
		Body:        &domain.BodyComponent{Shape: domain.Circle(10), Sensor: true},
		Collectible: &domain.CollectibleComponent{Value: 1},
	}
	w.Spawn(e)
	return e
}

func started(a, b *domain.Entity) domain.CollisionEvent {
	return domain.CollisionEvent{Kind: domain.CollisionStarted, A: a.ID, B: b.ID}
}

func ended(a, b *domain.Entity) domain.CollisionEvent {
	return domain.CollisionEvent{Kind: domain.CollisionEnded, A: a.ID, B: b.ID}
}

func TestOnCollisionStart_Variants(t *testing.T) {
	tests := []struct {
		name       string
		gadget     domain.GadgetComponent
		wantPoints uint
		wantScale  float64 // 0 = не ожидаем
		wantCoins  uint
		wantSplit  bool
	}{
		{
			name:       "Square block gives points",
			gadget:     domain.GadgetComponent{Kind: domain.GadgetSquareBlock, ActivationsPerRound: 5, Points: 1},
			wantPoints: 1,
		},
		{
			name:       "Wide block gives points",
			gadget:     domain.GadgetComponent{Kind: domain.GadgetWideBlock, ActivationsPerRound: 5, Points: 1},
			wantPoints: 1,
		},
		{
			name:       "Bumper boosts and scores",
			gadget:     domain.GadgetComponent{Kind: domain.GadgetBumper, ActivationsPerRound: 3, Points: 3, VelocityFactor: 1.5},
			wantPoints: 3,
			wantScale:  1.5,
		},
		{
			name:      "High friction slows",
			gadget:    domain.GadgetComponent{Kind: domain.GadgetHighFrictionBlock, ActivationsPerRound: 3, VelocityFactor: 0.5},
			wantScale: 0.5,
		},
		{
			name:      "Coin bumper places coins",
			gadget:    domain.GadgetComponent{Kind: domain.GadgetCoinBumper, ActivationsPerRound: 1, CoinsToSpawn: 3},
			wantCoins: 3,
		},
		{
			name:      "Multi ball splits",
			gadget:    domain.GadgetComponent{Kind: domain.GadgetMultiBall, ActivationsPerRound: 1},
			wantSplit: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := domain.NewWorld()
			ball := newBall(w)
			gadget := newGadget(w, tt.gadget)

			fx := OnCollisionStart(gadget, ball)

			assert.Equal(t, tt.wantPoints, fx.Points)
			assert.Equal(t, tt.wantCoins, fx.PlaceCoins)
			if tt.wantScale != 0 {
				require.Len(t, fx.VelocityScales, 1)
				assert.Equal(t, ball.ID, fx.VelocityScales[0].Ball)
				assert.InDelta(t, tt.wantScale, fx.VelocityScales[0].Factor, 1e-9)
			} else {
				assert.Empty(t, fx.VelocityScales)
			}
			if tt.wantSplit {
				assert.Equal(t, []domain.EntityID{ball.ID}, fx.SplitBalls)
			} else {
				assert.Empty(t, fx.SplitBalls)
			}
			assert.Equal(t, tt.gadget.ActivationsPerRound-1, gadget.Gadget.ActivationsLeft)
		})
	}
}

// Гаджет с N активациями срабатывает ровно N раз за раунд.
func TestOnCollisionStart_ActivationsAreBounded(t *testing.T) {
	w := domain.NewWorld()
	ball := newBall(w)
	block := newGadget(w, domain.GadgetComponent{Kind: domain.GadgetSquareBlock, ActivationsPerRound: 5, Points: 1})

	var total uint
	var deactivations int
	for i := 0; i < 8; i++ {
		fx := OnCollisionStart(block, ball)
		total += fx.Points
		for _, n := range fx.Notifications {
			if n.Type == domain.EventGadgetDeactivated {
				deactivations++
			}
		}
	}

	assert.Equal(t, uint(5), total)
	assert.Equal(t, 1, deactivations, "deactivation is reported once")
	assert.True(t, block.Gadget.Deactivated)
	assert.Zero(t, block.Gadget.ActivationsLeft)
}

// Однократный гаджет выключается сразу после первого касания.
func TestOnCollisionStart_SingleUseGadget(t *testing.T) {
	w := domain.NewWorld()
	ball := newBall(w)
	cb := newGadget(w, domain.GadgetComponent{Kind: domain.GadgetCoinBumper, ActivationsPerRound: 1, CoinsToSpawn: 3})

	first := OnCollisionStart(cb, ball)
	second := OnCollisionStart(cb, ball)

	assert.Equal(t, uint(3), first.PlaceCoins)
	assert.True(t, cb.Gadget.Deactivated)
	assert.True(t, second.Empty())
}

func TestGravityField_FlipAndRestore(t *testing.T) {
	w := domain.NewWorld()
	ball := newBall(w)
	field := newGadget(w, domain.GadgetComponent{Kind: domain.GadgetGravityField, GravityScale: -1})

	fx := RouteCollisions(w, []domain.CollisionEvent{started(ball, field)})
	require.Len(t, fx.GravityChanges, 1)
	assert.Equal(t, -1.0, fx.GravityChanges[0].Scale)

	fx = RouteCollisions(w, []domain.CollisionEvent{ended(ball, field)})
	require.Len(t, fx.GravityChanges, 1)
	assert.Equal(t, 1.0, fx.GravityChanges[0].Scale)

	// Поле не расходует активации.
	for i := 0; i < 10; i++ {
		OnCollisionStart(field, ball)
	}
	assert.False(t, field.Gadget.Deactivated)
}

func TestReleaseFields(t *testing.T) {
	arena := physics.NewArena(physics.Settings{Gravity: 981})

	tests := []struct {
		name      string
		ballAt    domain.Vec2
		keepOther bool
		released  int
	}{
		{name: "Ball inside a removed field", ballAt: domain.V(0, 0), released: 1},
		{name: "Ball outside every field", ballAt: domain.V(300, 0), released: 0},
		{name: "Ball still inside another field", ballAt: domain.V(0, 0), keepOther: true, released: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := domain.NewWorld()
			field := newGadget(w, domain.GadgetComponent{Kind: domain.GadgetGravityField, GravityScale: -1})
			if tt.keepOther {
				newGadget(w, domain.GadgetComponent{Kind: domain.GadgetGravityField, GravityScale: -1})
			}
			ball := newBall(w)
			ball.Body.Position = tt.ballAt
			ball.Body.GravityScale = -1

			got := ReleaseFields(w, arena, []*domain.Entity{field})

			assert.Equal(t, tt.released, got)
			if tt.released > 0 {
				assert.Equal(t, 1.0, ball.Body.GravityScale)
			} else {
				assert.Equal(t, -1.0, ball.Body.GravityScale)
			}
		})
	}
}

func TestRouteCollisions_CoinCollectedOnce(t *testing.T) {
	w := domain.NewWorld()
	ball := newBall(w)
	other := newBall(w)
	coin := newCoin(w)

	// Два мяча в одном шаге касаются одной монеты.
	fx := RouteCollisions(w, []domain.CollisionEvent{
		started(ball, coin),
		started(other, coin),
	})
	assert.Equal(t, uint(1), fx.Coins)
	assert.Equal(t, []domain.EntityID{coin.ID}, fx.Despawns)
	require.Len(t, fx.Notifications, 1)
	assert.Equal(t, domain.EventCoinCollected, fx.Notifications[0].Type)

	// Следующий шаг того же кадра: монета ещё в мире, но уже собрана.
	fx = RouteCollisions(w, []domain.CollisionEvent{started(ball, coin)})
	assert.Zero(t, fx.Coins)
}

func TestRouteCollisions_DuplicateStartIgnored(t *testing.T) {
	w := domain.NewWorld()
	ball := newBall(w)
	block := newGadget(w, domain.GadgetComponent{Kind: domain.GadgetSquareBlock, ActivationsPerRound: 5, Points: 1})

	fx := RouteCollisions(w, []domain.CollisionEvent{
		started(ball, block),
		started(block, ball), // та же пара в обратном порядке
	})

	assert.Equal(t, uint(1), fx.Points)
	assert.Equal(t, uint(4), block.Gadget.ActivationsLeft)
}

func TestRouteCollisions_IgnoresIrrelevantPairs(t *testing.T) {
	w := domain.NewWorld()
	ball := newBall(w)
	block := newGadget(w, domain.GadgetComponent{Kind: domain.GadgetSquareBlock, ActivationsPerRound: 5, Points: 1})
	bumper := newGadget(w, domain.GadgetComponent{Kind: domain.GadgetBumper, ActivationsPerRound: 3, Points: 3, VelocityFactor: 1.5})
	preview := newGadget(w, domain.GadgetComponent{Kind: domain.GadgetBumper, ActivationsPerRound: 3, Points: 3})
	preview.Preview = &domain.PreviewComponent{}
	gone := newCoin(w)
	w.Despawn(gone.ID)

	fx := RouteCollisions(w, []domain.CollisionEvent{
		started(block, bumper), // без мяча
		started(ball, preview), // превью не срабатывает
		started(ball, gone),    // монета уже удалена
		ended(ball, block),     // конец контакта с блоком ничего не даёт
		{Kind: domain.CollisionStarted, A: ball.ID, B: domain.NilEntityID},
	})

	assert.True(t, fx.Empty())
	assert.Equal(t, uint(5), block.Gadget.ActivationsLeft)
	assert.Equal(t, uint(3), preview.Gadget.ActivationsLeft)
}

func TestReactivateAll(t *testing.T) {
	w := domain.NewWorld()
	ball := newBall(w)
	block := newGadget(w, domain.GadgetComponent{Kind: domain.GadgetSquareBlock, ActivationsPerRound: 2, Points: 1})
	bumper := newGadget(w, domain.GadgetComponent{Kind: domain.GadgetBumper, ActivationsPerRound: 3, Points: 3})

	OnCollisionStart(block, ball)
	OnCollisionStart(block, ball)
	OnCollisionStart(bumper, ball)
	require.True(t, block.Gadget.Deactivated)

	notes := ReactivateAll(w)

	assert.False(t, block.Gadget.Deactivated)
	assert.Equal(t, uint(2), block.Gadget.ActivationsLeft)
	assert.Equal(t, uint(3), bumper.Gadget.ActivationsLeft)
	require.Len(t, notes, 1, "only the switched-off gadget is reported")
	assert.Equal(t, block.ID, notes[0].Entity)
}

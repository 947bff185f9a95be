package playfield

import (
	"math"
	"math/rand"

	"boingle/internal/config"
	"boingle/internal/domain"
	"boingle/internal/physics"
	"boingle/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Bounds - игровое поле: x в [-HalfWidth, HalfWidth], y в [-HalfHeight, HalfHeight]
type Bounds struct {
	HalfWidth  float64
	HalfHeight float64
}

func BoundsOf(b config.Balance) Bounds {
	return Bounds{HalfWidth: b.PlayAreaHalfWidth, HalfHeight: b.PlayAreaHalfHeight}
}

// Contains - точка внутри поля (границы включительно).
func (b Bounds) Contains(p domain.Vec2) bool {
	return math.Abs(p.X) <= b.HalfWidth && math.Abs(p.Y) <= b.HalfHeight
}

// RandomPoint - равномерная точка поля, отступив margin от краёв.
func (b Bounds) RandomPoint(rng *rand.Rand, margin float64) domain.Vec2 {
	w := max(b.HalfWidth-margin, 0)
	h := max(b.HalfHeight-margin, 0)
	return domain.V(randRange(rng, -w, w), randRange(rng, -h, h))
}

func randRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// FieldBuilder предоставляет fluent API для наполнения игрового поля.
// Сущности спавнятся сразу, чтобы следующие проверки мест их видели.
type FieldBuilder struct {
	world   *domain.World
	engine  physics.Engine
	balance config.Balance
	bounds  Bounds
	rng     *rand.Rand
	spawned []domain.EntityID
	log     *logrus.Entry
}

// NewField создаёт builder для поля
func NewField(w *domain.World, eng physics.Engine, b config.Balance, rng *rand.Rand) *FieldBuilder {
	return &FieldBuilder{
		world:   w,
		engine:  eng,
		balance: b,
		bounds:  BoundsOf(b),
		rng:     rng,
		log:     logger.Log.WithFields(logrus.Fields{"component": "playfield"}),
	}
}

// WithCannon ставит пушку на правый край поля на случайной высоте
// со случайным отклонением ствола.
func (f *FieldBuilder) WithCannon() *FieldBuilder {
	c := f.balance.Cannon
	y := randRange(f.rng, -f.bounds.HalfHeight, f.bounds.HalfHeight)
	jitter := randRange(f.rng, -c.AngleJitterDeg, c.AngleJitterDeg)
	angle := (c.BaseAngleDeg + jitter) * math.Pi / 180

	cannon := NewCannon(c, domain.V(f.bounds.HalfWidth, y), angle)
	f.spawned = append(f.spawned, f.world.Spawn(cannon))
	return f
}

// WithCoins разбрасывает n монет по свободным местам поля.
// Монета, для которой за CoinPlacementRetries попыток места не нашлось,
// пропускается.
func (f *FieldBuilder) WithCoins(n uint) *FieldBuilder {
	r := f.balance.CoinRadius
	shape := domain.Circle(r)
	placed := uint(0)

	for i := uint(0); i < n; i++ {
		pos, ok := f.freeSpot(shape, r)
		if !ok {
			continue
		}
		f.spawned = append(f.spawned, f.world.Spawn(NewCoin(r, pos)))
		placed++
	}

	if placed < n {
		f.log.WithFields(logrus.Fields{
			"requested": n,
			"placed":    placed,
		}).Warn("Not enough free space for coins")
	}
	return f
}

func (f *FieldBuilder) freeSpot(shape domain.Shape, margin float64) (domain.Vec2, bool) {
	attempts := max(f.balance.CoinPlacementRetries, 1)
	for attempt := 0; attempt < attempts; attempt++ {
		pos := f.bounds.RandomPoint(f.rng, margin)
		if len(f.engine.QueryOverlaps(f.world, shape, pos, 0, physics.Filter{})) == 0 {
			return pos, true
		}
	}
	return domain.Vec2{}, false
}

// Build возвращает ID всех созданных сущностей
func (f *FieldBuilder) Build() []domain.EntityID {
	return f.spawned
}

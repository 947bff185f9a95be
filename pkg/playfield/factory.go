package playfield

import (
	"math"

	"boingle/internal/config"
	"boingle/internal/domain"
)

// CannonSize - коллайдер пушки (ширина x высота)
var CannonSize = domain.V(25, 50)

// NewBall создаёт мяч игрока.
func NewBall(p config.Physics, pos, vel domain.Vec2) *domain.Entity {
	return &domain.Entity{
		Name: "Ball",
		Body: &domain.BodyComponent{
			Shape:        domain.Circle(p.BallRadius),
			Position:     pos,
			Velocity:     vel,
			GravityScale: 1,
			Restitution:  p.BallRestitution,
			Dynamic:      true,
		},
		Ball: &domain.BallComponent{LastPos: pos},
	}
}

// SplitBall - мяч раздваивается: исходный отклоняется на половину угла
// разлёта в одну сторону, новый - в другую. Возвращает новый мяч.
func SplitBall(p config.Physics, ball *domain.Entity) *domain.Entity {
	half := p.MultiBallSpreadDeg / 2 * math.Pi / 180
	vel := ball.Body.Velocity

	ball.Body.Velocity = vel.Rotate(half)
	twin := NewBall(p, ball.Body.Position, vel.Rotate(-half))
	twin.Body.GravityScale = ball.Body.GravityScale
	return twin
}

// NewCoin создаёт монету. Монета - сенсор: мяч проходит сквозь неё.
func NewCoin(radius float64, pos domain.Vec2) *domain.Entity {
	return &domain.Entity{
		Name: "Coin",
		Body: &domain.BodyComponent{
			Shape:    domain.Circle(radius),
			Position: pos,
			Sensor:   true,
		},
		Collectible: &domain.CollectibleComponent{Value: 1},
	}
}

// NewCannon создаёт пушку. Мяч появляется внутри её коллайдера,
// поэтому пушка - сенсор, но место на поле она занимает.
func NewCannon(c config.Cannon, pos domain.Vec2, rotation float64) *domain.Entity {
	return &domain.Entity{
		Name: "Cannon",
		Body: &domain.BodyComponent{
			Shape:    domain.Rect(CannonSize.X, CannonSize.Y),
			Position: pos,
			Rotation: rotation,
			Sensor:   true,
		},
		Cannon: &domain.CannonComponent{
			Power:     c.BasePower,
			BasePower: c.BasePower,
			MaxPower:  c.MaxPower,
			Gain:      c.Gain,
		},
	}
}

package systems

import (
	"boingle/internal/domain"
	"boingle/pkg/playfield"
)

// BallPolicy - когда мяч считается выбывшим из игры
type BallPolicy struct {
	OutOfBoundsY  float64
	MaxSpeed      float64
	StillDistance float64 // смещение за кадр, ниже которого мяч "стоит"
	StillTime     float64 // сколько секунд мяч может стоять
	// Area - поле с запасом. Мяч за ним, который уже не вернётся, выбыл.
	// Нулевая Area отключает проверку.
	Area playfield.Bounds
}

// ClampBallSpeed ограничивает скорость всех мячей.
func ClampBallSpeed(w *domain.World, max float64) {
	if max <= 0 {
		return
	}
	w.Each(func(e *domain.Entity) {
		if e.Ball != nil && e.Body != nil {
			e.Body.Velocity = e.Body.Velocity.ClampLen(max)
		}
	})
}

// LostBalls возвращает мячи, которые надо убрать: уснувшие, упавшие ниже
// границы, улетевшие за Area или простоявшие на месте дольше StillTime.
// Каждая проверка срабатывает независимо.
func LostBalls(w *domain.World, p BallPolicy, dt float64) []domain.EntityID {
	var lost []domain.EntityID
	w.Each(func(e *domain.Entity) {
		if e.Ball == nil || e.Body == nil {
			return
		}
		b := e.Body

		if p.StillTime > 0 {
			if b.Position.DistanceTo(e.Ball.LastPos) < p.StillDistance {
				e.Ball.StillFor += dt
			} else {
				e.Ball.StillFor = 0
			}
			e.Ball.LastPos = b.Position
		}

		switch {
		case b.Sleeping:
			lost = append(lost, e.ID)
		case b.Position.Y < p.OutOfBoundsY:
			lost = append(lost, e.ID)
		case escaped(b, p.Area):
			lost = append(lost, e.ID)
		case p.StillTime > 0 && e.Ball.StillFor >= p.StillTime:
			lost = append(lost, e.ID)
		}
	})
	return lost
}

// escaped - мяч за краем area и удаляется от поля. Вне поля гаджетов нет,
// поэтому вбок он уже не развернётся, а вверх вернётся только при
// обычной гравитации.
func escaped(b *domain.BodyComponent, area playfield.Bounds) bool {
	if area.HalfWidth <= 0 || area.HalfHeight <= 0 || area.Contains(b.Position) {
		return false
	}
	switch {
	case b.Position.X > area.HalfWidth && b.Velocity.X >= 0:
		return true
	case b.Position.X < -area.HalfWidth && b.Velocity.X <= 0:
		return true
	case b.Position.Y > area.HalfHeight && b.Velocity.Y >= 0 && b.GravityScale <= 0:
		return true
	}
	return false
}

// PressCannon начинает набор мощности с базового значения.
func PressCannon(c *domain.CannonComponent) {
	c.Charging = true
	c.Power = c.BasePower
}

// ChargeCannon копит мощность, пока кнопка зажата.
func ChargeCannon(c *domain.CannonComponent, dt float64) {
	if !c.Charging {
		return
	}
	c.Power = min(c.MaxPower, c.Power+dt*c.Gain)
}

// ReleaseCannon отпускает кнопку и возвращает скорость нового мяча:
// направление ствола, умноженное на набранную мощность.
// Ствол смотрит вдоль локальной оси +Y.
func ReleaseCannon(cannon *domain.Entity) (domain.Vec2, bool) {
	c := cannon.Cannon
	if c == nil || !c.Charging {
		return domain.Vec2{}, false
	}
	c.Charging = false
	return CannonForward(cannon.Body.Rotation).Scale(c.Power), true
}

// CannonForward - направление ствола при повороте rotation.
func CannonForward(rotation float64) domain.Vec2 {
	return domain.V(0, 1).Rotate(rotation)
}

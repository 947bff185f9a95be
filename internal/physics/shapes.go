package physics

import (
	"math"

	"boingle/internal/domain"
)

// Placement - форма, размещённая в мире
type Placement struct {
	Shape    domain.Shape
	Position domain.Vec2
	Rotation float64
}

func placementOf(b *domain.BodyComponent) Placement {
	return Placement{Shape: b.Shape, Position: b.Position, Rotation: b.Rotation}
}

// Overlaps - пересекаются ли две формы. Касание не считается пересечением.
func Overlaps(a, b Placement) bool {
	switch {
	case a.Shape.Kind == domain.ShapeCircle && b.Shape.Kind == domain.ShapeCircle:
		r := a.Shape.Radius + b.Shape.Radius
		return a.Position.Sub(b.Position).LenSq() < r*r
	case a.Shape.Kind == domain.ShapeCircle:
		_, _, hit := circleVsRect(a.Position, a.Shape.Radius, b)
		return hit
	case b.Shape.Kind == domain.ShapeCircle:
		_, _, hit := circleVsRect(b.Position, b.Shape.Radius, a)
		return hit
	default:
		return rectVsRect(a, b)
	}
}

// circleContact - контакт круга с произвольной формой.
// normal направлена от формы к кругу, depth > 0 при пересечении.
func circleContact(center domain.Vec2, radius float64, other Placement) (normal domain.Vec2, depth float64, hit bool) {
	if other.Shape.Kind == domain.ShapeCircle {
		d := center.Sub(other.Position)
		dist := d.Len()
		overlap := radius + other.Shape.Radius - dist
		if overlap <= 0 {
			return domain.Vec2{}, 0, false
		}
		if dist == 0 {
			return domain.V(0, 1), overlap, true
		}
		return d.Scale(1 / dist), overlap, true
	}
	return circleVsRect(center, radius, other)
}

func circleVsRect(center domain.Vec2, radius float64, rect Placement) (domain.Vec2, float64, bool) {
	h := rect.Shape.HalfExtents
	local := center.Sub(rect.Position).Rotate(-rect.Rotation)

	clamped := domain.V(clamp(local.X, -h.X, h.X), clamp(local.Y, -h.Y, h.Y))
	if clamped == local {
		// Центр внутри прямоугольника: выталкиваем по оси наименьшего проникновения.
		dx := h.X - math.Abs(local.X)
		dy := h.Y - math.Abs(local.Y)
		var n domain.Vec2
		var depth float64
		if dx < dy {
			n, depth = domain.V(sign(local.X), 0), dx+radius
		} else {
			n, depth = domain.V(0, sign(local.Y)), dy+radius
		}
		return n.Rotate(rect.Rotation), depth, true
	}

	diff := local.Sub(clamped)
	dist := diff.Len()
	if dist >= radius {
		return domain.Vec2{}, 0, false
	}
	return diff.Scale(1 / dist).Rotate(rect.Rotation), radius - dist, true
}

// rectVsRect - теорема о разделяющей оси для двух OBB.
func rectVsRect(a, b Placement) bool {
	axes := [4]domain.Vec2{
		domain.FromAngle(a.Rotation),
		domain.FromAngle(a.Rotation).Perp(),
		domain.FromAngle(b.Rotation),
		domain.FromAngle(b.Rotation).Perp(),
	}
	ca, cb := corners(a), corners(b)
	for _, axis := range axes {
		minA, maxA := project(ca, axis)
		minB, maxB := project(cb, axis)
		if maxA <= minB || maxB <= minA {
			return false
		}
	}
	return true
}

func corners(p Placement) [4]domain.Vec2 {
	h := p.Shape.HalfExtents
	local := [4]domain.Vec2{
		domain.V(-h.X, -h.Y),
		domain.V(h.X, -h.Y),
		domain.V(h.X, h.Y),
		domain.V(-h.X, h.Y),
	}
	var out [4]domain.Vec2
	for i, c := range local {
		out[i] = c.Rotate(p.Rotation).Add(p.Position)
	}
	return out
}

func project(points [4]domain.Vec2, axis domain.Vec2) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		d := p.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

package domain

import "math"

// Vec2 - точка или вектор в мировых координатах (ось Y направлена вверх).
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }
func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }
func (v Vec2) DistanceTo(o Vec2) float64 { return v.Sub(o).Len() }

// Normalize возвращает нулевой вектор для нулевого входа.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rotate поворачивает вектор против часовой стрелки на angle радиан.
func (v Vec2) Rotate(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// ClampLen ограничивает длину вектора сверху.
func (v Vec2) ClampLen(max float64) Vec2 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}

// FromAngle - единичный вектор направления angle (радианы).
func FromAngle(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{c, s}
}

// ShapeKind - тип коллайдера
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapeRect
)

func (k ShapeKind) String() string {
	if k == ShapeRect {
		return "RECT"
	}
	return "CIRCLE"
}

// Shape - коллайдер в локальных координатах тела.
// Для круга используется Radius, для прямоугольника - HalfExtents.
type Shape struct {
	Kind        ShapeKind `json:"kind"`
	Radius      float64   `json:"radius,omitempty"`
	HalfExtents Vec2      `json:"halfExtents,omitempty"`
}

func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

func Rect(width, height float64) Shape {
	return Shape{Kind: ShapeRect, HalfExtents: Vec2{width / 2, height / 2}}
}

// BoundingRadius - радиус описанной окружности.
func (s Shape) BoundingRadius() float64 {
	if s.Kind == ShapeRect {
		return s.HalfExtents.Len()
	}
	return s.Radius
}

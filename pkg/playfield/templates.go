package playfield

import (
	"boingle/internal/config"
	"boingle/internal/domain"
)

// GadgetTemplate определяет шаблон для создания гаджета
type GadgetTemplate struct {
	Name   string
	Kind   domain.GadgetKind
	Card   domain.CardID
	Tuning config.GadgetTuning
}

// TemplateFor собирает шаблон варианта из настроек баланса.
func TemplateFor(kind domain.GadgetKind, card domain.CardID, g config.Gadgets) (GadgetTemplate, bool) {
	tuning, ok := g.For(kind)
	if !ok {
		return GadgetTemplate{}, false
	}
	return GadgetTemplate{
		Name:   kind.String(),
		Kind:   kind,
		Card:   card,
		Tuning: tuning,
	}, true
}

// Shape - круг, если задан радиус, иначе прямоугольник.
func (t GadgetTemplate) Shape() domain.Shape {
	if t.Tuning.Radius > 0 {
		return domain.Circle(t.Tuning.Radius)
	}
	return domain.Rect(t.Tuning.Width, t.Tuning.Height)
}

// SpawnPreview создаёт гаджет в режиме превью: он двигается за курсором
// и не участвует в столкновениях, пока игрок его не поставит.
func (t GadgetTemplate) SpawnPreview(pos domain.Vec2, rotation float64) *domain.Entity {
	e := t.spawn(pos, rotation)
	e.Preview = &domain.PreviewComponent{}
	return e
}

// SpawnPlaced создаёт уже поставленный гаджет.
func (t GadgetTemplate) SpawnPlaced(pos domain.Vec2, rotation float64) *domain.Entity {
	e := t.spawn(pos, rotation)
	e.Placed = true
	return e
}

func (t GadgetTemplate) spawn(pos domain.Vec2, rotation float64) *domain.Entity {
	return &domain.Entity{
		Name: t.Name,
		Body: &domain.BodyComponent{
			Shape:       t.Shape(),
			Position:    pos,
			Rotation:    rotation,
			Restitution: t.Tuning.Restitution,
			// Поле гравитации только сообщает о входе и выходе мяча
			Sensor: t.Kind == domain.GadgetGravityField,
		},
		Gadget: &domain.GadgetComponent{
			Kind:                t.Kind,
			Card:                t.Card,
			ActivationsPerRound: t.Tuning.Activations,
			ActivationsLeft:     t.Tuning.Activations,
			Deactivated:         t.Kind != domain.GadgetGravityField && t.Tuning.Activations == 0,
			Points:              t.Tuning.Points,
			VelocityFactor:      t.Tuning.VelocityFactor,
			CoinsToSpawn:        t.Tuning.Coins,
			GravityScale:        t.Tuning.GravityScale,
		},
	}
}

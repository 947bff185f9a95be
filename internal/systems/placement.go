package systems

import (
	"math"

	"boingle/internal/domain"
	"boingle/internal/physics"
)

// RotationPerScroll - поворот превью на один шаг колеса мыши (2 градуса).
const RotationPerScroll = 2 * math.Pi / 180

// UpdatePreview двигает превью за курсором, поворачивает на scroll шагов
// и пересчитывает, можно ли его здесь поставить.
func UpdatePreview(w *domain.World, eng physics.Engine, preview *domain.Entity, cursor domain.Vec2, scroll float64) bool {
	if preview == nil || preview.Preview == nil || preview.Body == nil {
		return false
	}
	preview.Body.Position = cursor
	preview.Body.Rotation += RotationPerScroll * scroll

	preview.Preview.Valid = PlacementValid(w, eng, preview)
	return preview.Preview.Valid
}

// PlacementValid - превью ни с чем не пересекается, кроме себя самого.
func PlacementValid(w *domain.World, eng physics.Engine, preview *domain.Entity) bool {
	b := preview.Body
	hits := eng.QueryOverlaps(w, b.Shape, b.Position, b.Rotation, physics.Filter{
		Exclude: []domain.EntityID{preview.ID},
	})
	return len(hits) == 0
}

// CommitPlacement превращает превью в поставленный гаджет.
// Возвращает false, если место занято: превью остаётся как было.
func CommitPlacement(w *domain.World, eng physics.Engine, preview *domain.Entity) bool {
	if preview == nil || preview.Preview == nil {
		return false
	}
	if !PlacementValid(w, eng, preview) {
		preview.Preview.Valid = false
		return false
	}
	preview.Preview = nil
	preview.Placed = true
	return true
}

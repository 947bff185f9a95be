package systems

import "boingle/internal/domain"

// VelocityScale - умножить скорость мяча на Factor
type VelocityScale struct {
	Ball   domain.EntityID
	Factor float64
}

// GravityChange - выставить мячу масштаб гравитации
type GravityChange struct {
	Ball  domain.EntityID
	Scale float64
}

// Effects - отложенные последствия кадра. Системы их только возвращают,
// применяет их движок в одной точке на границе кадра.
type Effects struct {
	Points uint
	Coins  uint

	VelocityScales []VelocityScale
	GravityChanges []GravityChange
	// SplitBalls - мячи, которые нужно раздвоить
	SplitBalls []domain.EntityID
	Despawns   []domain.EntityID
	// PlaceCoins - сколько монет разбросать по полю
	PlaceCoins uint

	Notifications []domain.Notification
}

// Merge дописывает other в e.
func (e *Effects) Merge(other Effects) {
	e.Points += other.Points
	e.Coins += other.Coins
	e.VelocityScales = append(e.VelocityScales, other.VelocityScales...)
	e.GravityChanges = append(e.GravityChanges, other.GravityChanges...)
	e.SplitBalls = append(e.SplitBalls, other.SplitBalls...)
	e.Despawns = append(e.Despawns, other.Despawns...)
	e.PlaceCoins += other.PlaceCoins
	e.Notifications = append(e.Notifications, other.Notifications...)
}

// Empty - нечего применять.
func (e *Effects) Empty() bool {
	return e.Points == 0 && e.Coins == 0 && e.PlaceCoins == 0 &&
		len(e.VelocityScales) == 0 && len(e.GravityChanges) == 0 &&
		len(e.SplitBalls) == 0 && len(e.Despawns) == 0 && len(e.Notifications) == 0
}

func (e *Effects) notify(n domain.Notification) {
	e.Notifications = append(e.Notifications, n)
}

package domain

import (
	"math/rand"

	"boingle/internal/deck"
)

// Player - состояние забега. Один экземпляр на сессию; Reset возвращает
// его к началу забега, не пересоздавая.
type Player struct {
	Points          uint `json:"points"`
	PointsThisRound uint `json:"pointsThisRound"`
	PointsLastRound uint `json:"pointsLastRound"`
	Coins           uint `json:"coins"`

	BallsLeft          uint `json:"ballsLeft"`
	BallsPerLevel      uint `json:"ballsPerLevel"`
	CurrentLevel       uint `json:"currentLevel"`
	PointsForNextLevel uint `json:"pointsForNextLevel"`

	// CurrentWidget - гаджет, который игрок сейчас размещает.
	CurrentWidget EntityID `json:"currentWidget,omitempty"`

	Deck *deck.Deck[CardID] `json:"-"`
}

// NewPlayer создаёт игрока со стартовой колодой. Колода пуста до Reset.
func NewPlayer(ballsPerLevel uint, starter []CardID) *Player {
	return &Player{
		BallsPerLevel: ballsPerLevel,
		BallsLeft:     ballsPerLevel,
		Deck:          deck.New(starter),
	}
}

// Reset возвращает забег к началу: очки и монеты обнуляются, мячи
// восстанавливаются, колода собирается заново из стартового шаблона.
// threshold - порог очков для уровня 0.
func (p *Player) Reset(threshold uint, rng *rand.Rand) {
	p.Points = 0
	p.PointsThisRound = 0
	p.PointsLastRound = 0
	p.Coins = 0
	p.CurrentLevel = 0
	p.BallsLeft = p.BallsPerLevel
	p.PointsForNextLevel = threshold
	p.CurrentWidget = NilEntityID
	p.Deck.Reset(rng)
}

// AddPoints начисляет очки и в общий счёт, и в счёт текущего раунда.
func (p *Player) AddPoints(n uint) {
	p.Points += n
	p.PointsThisRound += n
}

// CloseRound переносит очки раунда в PointsLastRound.
func (p *Player) CloseRound() {
	p.PointsLastRound = p.PointsThisRound
	p.PointsThisRound = 0
}

// Promoted - набран ли порог следующего уровня.
func (p *Player) Promoted() bool {
	return p.Points >= p.PointsForNextLevel
}

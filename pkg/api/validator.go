package api

import (
	"errors"
	"math"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

// MaxRotateDelta - сколько шагов колеса принимается за одну команду
const MaxRotateDelta = 360

func (p CardPayload) Validate() error {
	if p.Card == "" {
		return errors.New("card is required")
	}
	return nil
}

func (p CursorPayload) Validate() error {
	if !finite(p.X) || !finite(p.Y) {
		return errors.New("cursor coordinates must be finite")
	}
	return nil
}

func (p RotatePayload) Validate() error {
	if !finite(p.Delta) {
		return errors.New("rotation delta must be finite")
	}
	if math.Abs(p.Delta) > MaxRotateDelta {
		return errors.New("rotation delta too large")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

package actions

import "errors"

var (
	// ErrNotPlaceable - карта не ставит гаджет и не может быть разыграна из руки.
	ErrNotPlaceable = errors.New("card cannot be placed")
	// ErrNotOffered - карты нет среди непроданных предложений магазина.
	ErrNotOffered = errors.New("card is not offered in the shop")
	// ErrNoWidget - в фазе размещения нет гаджета в руке курсора.
	ErrNoWidget = errors.New("no widget is being placed")
	// ErrNoCannon - на поле нет пушки.
	ErrNoCannon = errors.New("cannon is missing")
)

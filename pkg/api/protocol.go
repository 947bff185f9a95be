package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Снимок забега отправляется после каждого кадра, в котором что-то
// изменилось, и сразу после подключения.
type ServerResponse struct {
	// Type тип сообщения: "UPDATE" или "ERROR".
	Type string `json:"type"`

	// Frame номер кадра симуляции.
	Frame int `json:"frame"`

	// RunID идентификатор текущего забега. Меняется при START_RUN и RETRY.
	RunID string `json:"runId,omitempty"`

	// ClientID идентификатор соединения, которому адресовано сообщение.
	ClientID string `json:"clientId,omitempty"`

	// Snapshot полное состояние забега для отображения.
	Snapshot *RunSnapshot `json:"snapshot,omitempty"`

	// Events уведомления, накопленные с прошлого сообщения.
	Events []EventView `json:"events,omitempty"`

	// Error текст ошибки для Type == "ERROR".
	Error string `json:"error,omitempty"`
}

// RunSnapshot - только для чтения: всё, что нужно UI для отрисовки.
type RunSnapshot struct {
	Phase string `json:"phase"`

	Points             uint `json:"points"`
	PointsThisRound    uint `json:"pointsThisRound"`
	PointsLastRound    uint `json:"pointsLastRound"`
	Coins              uint `json:"coins"`
	BallsLeft          uint `json:"ballsLeft"`
	BallsPerLevel      uint `json:"ballsPerLevel"`
	CurrentLevel       uint `json:"currentLevel"`
	PointsForNextLevel uint `json:"pointsForNextLevel"`

	Hand        []CardView `json:"hand"`
	DrawPile    int        `json:"drawPile"`
	DiscardPile int        `json:"discardPile"`

	// Shop заполнен только в фазе SHOP.
	Shop []ShopSlotView `json:"shop,omitempty"`

	Cursor   Vec          `json:"cursor"`
	Entities []EntityView `json:"entities"`

	// Log последние строки журнала забега.
	Log []string `json:"log,omitempty"`
}

// CardView - карта с текстами из каталога
type CardView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       uint   `json:"price"`
	Affordable  bool   `json:"affordable"`
}

// ShopSlotView - предложение магазина
type ShopSlotView struct {
	CardView
	Purchased bool `json:"purchased"`
}

type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ShapeView - коллайдер: Radius для круга, Width/Height для прямоугольника.
type ShapeView struct {
	Kind   string  `json:"kind"`
	Radius float64 `json:"radius,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// EntityView это DTO для сущности игрового поля.
type EntityView struct {
	ID       string    `json:"id"`
	Kind     string    `json:"kind"` // BALL, GADGET, COIN, CANNON
	Name     string    `json:"name"`
	Pos      Vec       `json:"pos"`
	Rotation float64   `json:"rotation"`
	Velocity Vec       `json:"velocity"`
	Shape    ShapeView `json:"shape"`

	Gadget *GadgetView `json:"gadget,omitempty"`
	Cannon *CannonView `json:"cannon,omitempty"`

	// Preview - гаджет ещё двигается курсором; Valid - можно ли поставить здесь.
	Preview *PreviewView `json:"preview,omitempty"`
}

type GadgetView struct {
	Kind            string `json:"kind"`
	ActivationsLeft uint   `json:"activationsLeft"`
	Activations     uint   `json:"activations"`
	Deactivated     bool   `json:"deactivated"`
}

type CannonView struct {
	Power    float64 `json:"power"`
	MaxPower float64 `json:"maxPower"`
	Charging bool    `json:"charging"`
}

type PreviewView struct {
	Valid bool `json:"valid"`
}

// EventView - одностороннее уведомление для UI.
type EventView struct {
	Type   string `json:"type"`
	Card   string `json:"card,omitempty"`
	Entity string `json:"entity,omitempty"`
	Amount uint   `json:"amount,omitempty"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это структура, которую клиент отправляет серверу.
type ClientCommand struct {
	// Action название команды (START_RUN, SELECT_CARD, PURCHASE ...)
	Action string `json:"action"`
	// Payload данные команды, формат зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// CardPayload используется для SELECT_CARD и PURCHASE.
type CardPayload struct {
	Card string `json:"card"`
}

// CursorPayload используется для MOVE_CURSOR (координаты игрового поля).
type CursorPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RotatePayload используется для ROTATE: шаги колеса мыши.
type RotatePayload struct {
	Delta float64 `json:"delta"`
}

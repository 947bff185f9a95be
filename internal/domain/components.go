package domain

// --- КОМПОНЕНТЫ ---

// BodyComponent - физическое тело. Читается и пишется игровой логикой
// только между шагами физики.
type BodyComponent struct {
	Shape        Shape   `json:"shape"`
	Position     Vec2    `json:"position"`
	Rotation     float64 `json:"rotation"` // радианы
	Velocity     Vec2    `json:"velocity"`
	GravityScale float64 `json:"gravityScale"`
	Restitution  float64 `json:"restitution"`

	// Dynamic - тело двигается интегратором (мячи). Остальные статичны.
	Dynamic bool `json:"dynamic"`
	// Sensor - тело генерирует события столкновений, но не отталкивает.
	Sensor   bool `json:"sensor"`
	Sleeping bool `json:"sleeping"`

	// SlowFor - сколько секунд подряд тело двигается медленнее порога сна.
	SlowFor float64 `json:"-"`
}

// GadgetComponent - учёт активаций размещённого гаджета плюс данные варианта.
// Kind - тег закрытого набора вариантов; остальные поля читаются
// в зависимости от тега.
//
// Инвариант: ActivationsLeft <= ActivationsPerRound,
// Deactivated == (ActivationsLeft == 0) для гаджетов со счётчиком.
type GadgetComponent struct {
	Kind GadgetKind `json:"kind"`
	Card CardID     `json:"card"`

	ActivationsPerRound uint `json:"activationsPerRound"`
	ActivationsLeft     uint `json:"activationsLeft"`
	Deactivated         bool `json:"deactivated"`

	Points         uint    `json:"points,omitempty"`
	VelocityFactor float64 `json:"velocityFactor,omitempty"`
	CoinsToSpawn   uint    `json:"coinsToSpawn,omitempty"`
	GravityScale   float64 `json:"gravityScale,omitempty"`
}

// Limited - расходует ли гаджет активации. Сенсорные поля не расходуют.
func (g *GadgetComponent) Limited() bool {
	return g.Kind != GadgetGravityField
}

// BallComponent - маркер мяча игрока. Только мячи запускают эффекты гаджетов.
type BallComponent struct {
	// StillFor - сколько секунд мяч почти не сдвигается.
	StillFor float64 `json:"stillFor"`
	LastPos  Vec2    `json:"-"`
}

// CollectibleComponent - подбираемый предмет (монета).
type CollectibleComponent struct {
	Value     uint `json:"value"`
	Collected bool `json:"collected"`
}

// CannonComponent - пушка, копит мощность пока зажата кнопка.
type CannonComponent struct {
	Power     float64 `json:"power"`
	BasePower float64 `json:"basePower"`
	MaxPower  float64 `json:"maxPower"`
	Gain      float64 `json:"gain"` // единиц мощности в секунду
	Charging  bool    `json:"charging"`
}

// PreviewComponent - гаджет, который игрок ещё двигает курсором.
type PreviewComponent struct {
	Valid bool `json:"valid"`
}

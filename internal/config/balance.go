package config

import (
	"errors"
	"fmt"

	"boingle/internal/domain"
)

// GadgetTuning - параметры одного варианта гаджета
type GadgetTuning struct {
	Activations    uint    `yaml:"activations" json:"activations"`
	Points         uint    `yaml:"points" json:"points"`
	VelocityFactor float64 `yaml:"velocity_factor" json:"velocity_factor"`
	Coins          uint    `yaml:"coins" json:"coins"`
	Width          float64 `yaml:"width" json:"width"`
	Height         float64 `yaml:"height" json:"height"`
	Radius         float64 `yaml:"radius" json:"radius"`
	Restitution    float64 `yaml:"restitution" json:"restitution"`
	GravityScale   float64 `yaml:"gravity_scale" json:"gravity_scale"`
}

// Gadgets - настройки всех вариантов
type Gadgets struct {
	SquareBlock       GadgetTuning `yaml:"square_block" json:"square_block"`
	WideBlock         GadgetTuning `yaml:"wide_block" json:"wide_block"`
	Bumper            GadgetTuning `yaml:"bumper" json:"bumper"`
	CoinBumper        GadgetTuning `yaml:"coin_bumper" json:"coin_bumper"`
	HighFrictionBlock GadgetTuning `yaml:"high_friction_block" json:"high_friction_block"`
	MultiBall         GadgetTuning `yaml:"multi_ball" json:"multi_ball"`
	GravityField      GadgetTuning `yaml:"gravity_field" json:"gravity_field"`
}

// For возвращает настройки варианта.
func (g Gadgets) For(kind domain.GadgetKind) (GadgetTuning, bool) {
	switch kind {
	case domain.GadgetSquareBlock:
		return g.SquareBlock, true
	case domain.GadgetWideBlock:
		return g.WideBlock, true
	case domain.GadgetBumper:
		return g.Bumper, true
	case domain.GadgetCoinBumper:
		return g.CoinBumper, true
	case domain.GadgetHighFrictionBlock:
		return g.HighFrictionBlock, true
	case domain.GadgetMultiBall:
		return g.MultiBall, true
	case domain.GadgetGravityField:
		return g.GravityField, true
	}
	return GadgetTuning{}, false
}

// Cannon - параметры пушки
type Cannon struct {
	BasePower      float64 `yaml:"base_power" json:"base_power"`
	MaxPower       float64 `yaml:"max_power" json:"max_power"`
	Gain           float64 `yaml:"gain" json:"gain"`
	BaseAngleDeg   float64 `yaml:"base_angle_deg" json:"base_angle_deg"`
	AngleJitterDeg float64 `yaml:"angle_jitter_deg" json:"angle_jitter_deg"`
}

// Physics - политика мяча и мира
type Physics struct {
	Gravity            float64 `yaml:"gravity" json:"gravity"`
	FixedStep          float64 `yaml:"fixed_step" json:"fixed_step"`
	MaxSubsteps        int     `yaml:"max_substeps" json:"max_substeps"`
	BallRadius         float64 `yaml:"ball_radius" json:"ball_radius"`
	BallRestitution    float64 `yaml:"ball_restitution" json:"ball_restitution"`
	MaxBallSpeed       float64 `yaml:"max_ball_speed" json:"max_ball_speed"`
	OutOfBoundsY       float64 `yaml:"out_of_bounds_y" json:"out_of_bounds_y"`
	// EscapeMargin - запас вокруг поля, за которым улетающий мяч выбывает
	EscapeMargin       float64 `yaml:"escape_margin" json:"escape_margin"`
	SleepSpeed         float64 `yaml:"sleep_speed" json:"sleep_speed"`
	SleepTime          float64 `yaml:"sleep_time" json:"sleep_time"`
	StillDistance      float64 `yaml:"still_distance" json:"still_distance"`
	StillTime          float64 `yaml:"still_time" json:"still_time"`
	MultiBallSpreadDeg float64 `yaml:"multi_ball_spread_deg" json:"multi_ball_spread_deg"`
}

// Balance - игровой баланс забега
type Balance struct {
	Name string `yaml:"name" json:"name"`

	BallsPerLevel uint            `yaml:"balls_per_level" json:"balls_per_level"`
	HandSize      int             `yaml:"hand_size" json:"hand_size"`
	StarterDeck   []domain.CardID `yaml:"starter_deck" json:"starter_deck"`

	// Порог уровня: round(ThresholdBase * ThresholdGrowth^level)
	ThresholdBase   float64 `yaml:"threshold_base" json:"threshold_base"`
	ThresholdGrowth float64 `yaml:"threshold_growth" json:"threshold_growth"`

	// Prices - цена карты в монетах, ключ - имя карты (WIDE_BLOCK и т.д.)
	Prices map[string]uint `yaml:"prices" json:"prices"`
	// ShopPools - пулы магазина по уровням; уровень выше последнего
	// использует последний пул.
	ShopPools [][]domain.CardID `yaml:"shop_pools" json:"shop_pools"`
	ShopPicks int               `yaml:"shop_picks" json:"shop_picks"`

	// Игровое поле: x в [-HalfWidth, HalfWidth], y в [-HalfHeight, HalfHeight]
	PlayAreaHalfWidth  float64 `yaml:"play_area_half_width" json:"play_area_half_width"`
	PlayAreaHalfHeight float64 `yaml:"play_area_half_height" json:"play_area_half_height"`

	CoinsPerPlacement    uint    `yaml:"coins_per_placement" json:"coins_per_placement"`
	CoinRadius           float64 `yaml:"coin_radius" json:"coin_radius"`
	CoinPlacementRetries int     `yaml:"coin_placement_retries" json:"coin_placement_retries"`

	Gadgets Gadgets `yaml:"gadgets" json:"gadgets"`
	Cannon  Cannon  `yaml:"cannon" json:"cannon"`
	Physics Physics `yaml:"physics" json:"physics"`
}

// Default returns the default balance configuration
func Default() Balance {
	return Balance{
		Name:          PresetDefault,
		BallsPerLevel: 3,
		HandSize:      3,
		StarterDeck: []domain.CardID{
			domain.CardWideBlock,
			domain.CardWideBlock,
			domain.CardWideBlock,
			domain.CardGravityReverser,
		},
		ThresholdBase:   5,
		ThresholdGrowth: 2.2,
		Prices: map[string]uint{
			"ONE_MORE_BALL":       3,
			"MORE_BALLS":          0,
			"SQUARE_BLOCK":        1,
			"WIDE_BLOCK":          1,
			"BUMPER":              2,
			"COIN_BUMPER":         5,
			"HIGH_FRICTION_BLOCK": 4,
			"MAGNET":              9,
			"REACTIVATE_GADGETS":  25,
			"GRAVITY_REVERSER":    12,
			"MULTI_BALL":          35,
			"RECYCLE_GADGET":      15,
			"REARRANGE_GADGET":    8,
		},
		ShopPools: [][]domain.CardID{
			{domain.CardOneMoreBall, domain.CardBumper, domain.CardCoinBumper},
			{domain.CardOneMoreBall, domain.CardBumper, domain.CardCoinBumper, domain.CardWideBlock},
			{domain.CardOneMoreBall, domain.CardBumper, domain.CardCoinBumper, domain.CardWideBlock},
		},
		ShopPicks:            3,
		PlayAreaHalfWidth:    450,
		PlayAreaHalfHeight:   250,
		CoinsPerPlacement:    3,
		CoinRadius:           10,
		CoinPlacementRetries: 50,
		Gadgets: Gadgets{
			SquareBlock:       GadgetTuning{Activations: 5, Points: 1, Width: 50, Height: 50, Restitution: 0.7},
			WideBlock:         GadgetTuning{Activations: 5, Points: 1, Width: 80, Height: 40, Restitution: 0.7},
			Bumper:            GadgetTuning{Activations: 3, Points: 3, VelocityFactor: 1.5, Radius: 25, Restitution: 0.9},
			CoinBumper:        GadgetTuning{Activations: 1, Coins: 3, Radius: 25, Restitution: 1},
			HighFrictionBlock: GadgetTuning{Activations: 3, VelocityFactor: 0.5, Width: 80, Height: 20, Restitution: 0.2},
			MultiBall:         GadgetTuning{Activations: 1, Radius: 20, Restitution: 0.8},
			GravityField:      GadgetTuning{GravityScale: -1, Width: 62.5, Height: 130},
		},
		Cannon: Cannon{
			BasePower:      1000,
			MaxPower:       1500,
			Gain:           1000,
			BaseAngleDeg:   90,
			AngleJitterDeg: 60,
		},
		Physics: Physics{
			Gravity:            981,
			FixedStep:          1.0 / 60.0,
			MaxSubsteps:        8,
			BallRadius:         10,
			BallRestitution:    0.8,
			MaxBallSpeed:       1000,
			OutOfBoundsY:       -600,
			EscapeMargin:       200,
			SleepSpeed:         5,
			SleepTime:          0.5,
			StillDistance:      1,
			StillTime:          3,
			MultiBallSpreadDeg: 20,
		},
	}
}

// Casual returns easier balance for casual difficulty
func Casual() Balance {
	cfg := Default()
	cfg.Name = PresetCasual
	cfg.BallsPerLevel = 4
	cfg.ThresholdBase = 4
	cfg.ThresholdGrowth = 2.0
	cfg.CoinsPerPlacement = 4
	cfg.Physics.StillTime = 2
	return cfg
}

// Hard returns harder balance for experienced players
func Hard() Balance {
	cfg := Default()
	cfg.Name = PresetHard
	cfg.BallsPerLevel = 2
	cfg.ThresholdBase = 6
	cfg.ThresholdGrowth = 2.5
	cfg.CoinsPerPlacement = 2
	cfg.Gadgets.Bumper.Activations = 2
	return cfg
}

const (
	PresetDefault = "default"
	PresetCasual  = "casual"
	PresetHard    = "hard"
)

// Preset возвращает баланс по имени пресета.
func Preset(name string) (Balance, error) {
	switch name {
	case "", PresetDefault:
		return Default(), nil
	case PresetCasual:
		return Casual(), nil
	case PresetHard:
		return Hard(), nil
	}
	return Balance{}, fmt.Errorf("unknown balance preset %q", name)
}

// Validate проверяет то, без чего забег не может начаться.
func (b Balance) Validate() error {
	var errs []error
	if len(b.StarterDeck) == 0 {
		errs = append(errs, errors.New("starter_deck must not be empty"))
	}
	if b.ThresholdGrowth <= 1 {
		errs = append(errs, fmt.Errorf("threshold_growth must be > 1, got %v", b.ThresholdGrowth))
	}
	if b.ThresholdBase <= 0 {
		errs = append(errs, fmt.Errorf("threshold_base must be > 0, got %v", b.ThresholdBase))
	}
	if b.HandSize <= 0 {
		errs = append(errs, fmt.Errorf("hand_size must be > 0, got %d", b.HandSize))
	}
	if len(b.ShopPools) == 0 {
		errs = append(errs, errors.New("shop_pools must define at least one pool"))
	}
	for _, card := range domain.AllCards {
		if _, ok := b.Prices[card.String()]; !ok {
			errs = append(errs, fmt.Errorf("price for %s is missing", card))
		}
	}
	for name := range b.Prices {
		if domain.ParseCard(name) == domain.CardUnknown {
			errs = append(errs, fmt.Errorf("price for unknown card %q", name))
		}
	}
	if b.Physics.FixedStep <= 0 {
		errs = append(errs, fmt.Errorf("physics.fixed_step must be > 0, got %v", b.Physics.FixedStep))
	}
	return errors.Join(errs...)
}

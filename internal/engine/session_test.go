package engine

import (
	"testing"

	"boingle/internal/config"
	"boingle/internal/domain"
	"boingle/internal/systems"
	"boingle/pkg/api"
	"boingle/pkg/playfield"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_BootShowsMenu(t *testing.T) {
	s := newTestSession(t, 1)
	assert.Equal(t, domain.PhaseMenu, s.Phase())

	// Повторный Boot ничего не делает.
	s.Boot()
	assert.Equal(t, domain.PhaseMenu, s.Phase())
}

func TestNewSession_InvalidBalance(t *testing.T) {
	b := config.Default()
	b.StarterDeck = nil

	_, err := NewSession(Config{Seed: 1, Balance: b})
	assert.Error(t, err)
}

func TestSession_StartRun(t *testing.T) {
	s := newTestSession(t, 3)
	send(s, domain.ActionStartRun, nil)

	events := step(s)
	assert.Equal(t, domain.PhaseLevelStart, s.Phase())
	require.NotEmpty(t, events)
	assert.Equal(t, domain.Notification{Type: domain.EventPhaseChanged, From: domain.PhaseMenu, To: domain.PhaseLevelStart}, events[0])
	assert.NotEmpty(t, s.RunID)

	step(s)
	assert.Equal(t, domain.PhaseWidgetSelection, s.Phase())

	b := s.cfg.Balance
	p := s.Player
	assert.Len(t, p.Deck.Hand(), b.HandSize)
	assert.Equal(t, len(b.StarterDeck), p.Deck.Size())
	assert.Equal(t, b.BallsPerLevel, p.BallsLeft)
	assert.Equal(t, uint(0), p.Points)
	assert.Equal(t, s.Economy.PointsThreshold(0), p.PointsForNextLevel)

	require.NotNil(t, s.World.Cannon())
	coins := len(s.World.Coins())
	assert.Greater(t, coins, 0)
	assert.LessOrEqual(t, coins, int(b.CoinsPerPlacement))
}

func TestSession_CommandsIgnoredInWrongPhase(t *testing.T) {
	tests := []struct {
		name   string
		action domain.ActionType
		body   any
	}{
		{"purchase in menu", domain.ActionPurchase, api.CardPayload{Card: "BUMPER"}},
		{"select card in menu", domain.ActionSelectCard, api.CardPayload{Card: "WIDE_BLOCK"}},
		{"fire in menu", domain.ActionReleaseCannon, nil},
		{"retry in menu", domain.ActionRetry, nil},
		{"unknown action", domain.ActionUnknown, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, 1)
			send(s, tt.action, tt.body)
			step(s)

			assert.Equal(t, domain.PhaseMenu, s.Phase())
			assert.Empty(t, s.Replay().Actions, "ignored commands are not recorded")
		})
	}
}

func TestSession_CommandsAfterTransitionWaitForNextFrame(t *testing.T) {
	s := newTestSession(t, 1)
	send(s, domain.ActionStartRun, nil)
	// Пока переход не применён, команда ждёт в очереди.
	send(s, domain.ActionMoveCursor, api.CursorPayload{X: 10, Y: 20})

	step(s)
	assert.Equal(t, domain.PhaseLevelStart, s.Phase())
	assert.Equal(t, 1, s.Queued())

	step(s)
	assert.Equal(t, domain.PhaseWidgetSelection, s.Phase())
	step(s)
	assert.Equal(t, 0, s.Queued())
	assert.Equal(t, domain.V(10, 20), s.Run.Cursor)
}

func TestSession_EndOfRoundRule(t *testing.T) {
	tests := []struct {
		name      string
		points    uint
		threshold uint
		ballsLeft uint
		want      domain.Phase
	}{
		{"promotion", 100, 80, 2, domain.PhaseShop},
		{"promotion on last ball", 80, 80, 0, domain.PhaseShop},
		{"next round", 10, 80, 2, domain.PhaseWidgetSelection},
		{"elimination", 10, 80, 0, domain.PhaseGameOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := startedSession(t, 7)
			s.Player.Points = tt.points
			s.Player.PointsThisRound = 6
			s.Player.PointsForNextLevel = tt.threshold
			s.Player.BallsLeft = tt.ballsLeft

			s.machine.Request(domain.PhaseEndOfRound)
			events := step(s)
			require.Equal(t, domain.PhaseEndOfRound, s.Phase())
			assert.Equal(t, uint(6), s.Player.PointsLastRound)
			assert.Equal(t, uint(0), s.Player.PointsThisRound)
			assert.Contains(t, events, domain.Notification{Type: domain.EventRoundEnded, Amount: 6})

			step(s)
			assert.Equal(t, tt.want, s.Phase())
		})
	}
}

func TestSession_ShopExitAdvancesLevel(t *testing.T) {
	s := startedSession(t, 11)
	s.Player.Points = 100
	s.Player.PointsForNextLevel = 80
	s.Player.BallsLeft = 2

	s.machine.Request(domain.PhaseEndOfRound)
	runUntil(t, s, domain.PhaseShop, 3)
	require.NotEmpty(t, s.Run.Shop)
	assert.Equal(t, domain.CardMoreBalls, s.Run.Shop[0].Card)

	coinsBefore := len(s.World.Coins())
	send(s, domain.ActionExitShop, nil)
	step(s)

	assert.Equal(t, domain.PhaseWidgetSelection, s.Phase())
	assert.Equal(t, uint(1), s.Player.CurrentLevel)
	assert.Equal(t, s.Economy.PointsThreshold(1), s.Player.PointsForNextLevel)
	assert.Greater(t, s.Player.PointsForNextLevel, s.Economy.PointsThreshold(0))
	assert.Empty(t, s.Run.Shop)
	assert.Greater(t, len(s.World.Coins()), coinsBefore)
}

func TestSession_ShopPurchase(t *testing.T) {
	toShop := func(t *testing.T, coins uint) *Session {
		s := startedSession(t, 5)
		s.Player.Points = 100
		s.Player.PointsForNextLevel = 1
		s.Player.Coins = coins
		s.machine.Request(domain.PhaseEndOfRound)
		runUntil(t, s, domain.PhaseShop, 3)
		return s
	}

	t.Run("insufficient funds", func(t *testing.T) {
		s := toShop(t, 2)
		require.NotNil(t, s.Run.OfferSlot(domain.CardCoinBumper))
		deckBefore := s.Player.Deck.Size()
		discardBefore := len(s.Player.Deck.DiscardPile())
		ballsBefore := s.Player.BallsLeft

		send(s, domain.ActionPurchase, api.CardPayload{Card: "COIN_BUMPER"})
		step(s)

		assert.Equal(t, domain.PhaseShop, s.Phase())
		assert.Equal(t, uint(2), s.Player.Coins)
		assert.Equal(t, deckBefore, s.Player.Deck.Size())
		assert.Len(t, s.Player.Deck.DiscardPile(), discardBefore)
		assert.Equal(t, ballsBefore, s.Player.BallsLeft)
		assert.False(t, s.Run.OfferSlot(domain.CardCoinBumper).Purchased)
	})

	t.Run("gadget goes to discard", func(t *testing.T) {
		s := toShop(t, 10)
		price := s.Economy.PriceOf(domain.CardBumper)
		deckBefore := s.Player.Deck.Size()

		send(s, domain.ActionPurchase, api.CardPayload{Card: "BUMPER"})
		events := step(s)

		assert.Equal(t, 10-price, s.Player.Coins)
		assert.Equal(t, deckBefore+1, s.Player.Deck.Size())
		assert.Contains(t, s.Player.Deck.DiscardPile(), domain.CardBumper)
		assert.Contains(t, events, domain.Notification{Type: domain.EventCardPurchased, Card: domain.CardBumper, Amount: price})
		assert.Nil(t, s.Run.OfferSlot(domain.CardBumper), "slot is sold out")

		// Второй раз тот же слот не продаётся.
		send(s, domain.ActionPurchase, api.CardPayload{Card: "BUMPER"})
		step(s)
		assert.Equal(t, 10-price, s.Player.Coins)
	})

	t.Run("more balls", func(t *testing.T) {
		s := toShop(t, 0)
		before := s.Player.BallsLeft

		send(s, domain.ActionPurchase, api.CardPayload{Card: "MORE_BALLS"})
		step(s)

		assert.Equal(t, before+s.cfg.Balance.BallsPerLevel, s.Player.BallsLeft)
	})
}

func TestSession_UnknownCardIsRejected(t *testing.T) {
	s := startedSession(t, 2)
	hand := s.Player.Deck.Hand()

	send(s, domain.ActionSelectCard, api.CardPayload{Card: "NOT_A_CARD"})
	step(s)

	assert.Equal(t, domain.PhaseWidgetSelection, s.Phase())
	assert.Equal(t, hand, s.Player.Deck.Hand())
}

func TestSession_PlacementBlocked(t *testing.T) {
	s := startedSession(t, 9)
	hand := s.Player.Deck.Hand()

	send(s, domain.ActionSelectCard, api.CardPayload{Card: hand[0].String()})
	step(s)
	require.Equal(t, domain.PhasePlaceWidget, s.Phase())
	assert.Len(t, s.Player.Deck.Hand(), len(hand)-1)
	assert.Contains(t, s.Player.Deck.DiscardPile(), hand[0])

	// Прямо на пушке поставить нельзя.
	cannon := s.World.Cannon()
	send(s, domain.ActionMoveCursor, api.CursorPayload{X: cannon.Body.Position.X, Y: cannon.Body.Position.Y})
	send(s, domain.ActionConfirmPlacement, nil)
	step(s)

	assert.Equal(t, domain.PhasePlaceWidget, s.Phase())
	preview := s.World.Get(s.Player.CurrentWidget)
	require.NotNil(t, preview)
	assert.False(t, preview.Placed)
	require.NotNil(t, preview.Preview)
	assert.False(t, preview.Preview.Valid)
}

func TestSession_FullRound(t *testing.T) {
	s := startedSession(t, 21)
	b := s.cfg.Balance

	placeFirstCard(t, s)
	require.Len(t, s.World.PlacedGadgets(), 1)
	assert.True(t, s.Player.CurrentWidget.IsNil())

	shoot(t, s, 10)
	assert.Equal(t, domain.PhaseEndOfRound, s.Phase())
	assert.Equal(t, b.BallsPerLevel-1, s.Player.BallsLeft)
	assert.Empty(t, s.World.Balls())

	step(s)
	assert.Contains(t, []domain.Phase{domain.PhaseWidgetSelection, domain.PhaseShop}, s.Phase())
}

func TestSession_LastBallGoesThroughEndOfRound(t *testing.T) {
	s := startedSession(t, 4)
	s.Player.BallsLeft = 0
	s.Player.PointsForNextLevel = 1000

	s.machine.Request(domain.PhaseBallBouncing)
	step(s)
	require.Equal(t, domain.PhaseBallBouncing, s.Phase())

	// Мячей на поле нет: раунд закрывается.
	step(s)
	assert.Equal(t, domain.PhaseEndOfRound, s.Phase())
	assert.Equal(t, uint(0), s.Player.BallsLeft)

	step(s)
	assert.Equal(t, domain.PhaseGameOver, s.Phase())

	oldRun := s.RunID
	send(s, domain.ActionRetry, nil)
	runUntil(t, s, domain.PhaseWidgetSelection, 3)
	assert.NotEqual(t, oldRun, s.RunID)
	assert.Equal(t, s.cfg.Balance.BallsPerLevel, s.Player.BallsLeft)
	assert.Equal(t, uint(0), s.Player.Points)
	assert.Empty(t, s.World.PlacedGadgets())
}

func TestSession_ApplyEffects(t *testing.T) {
	s := startedSession(t, 13)

	ball := playfield.NewBall(s.cfg.Balance.Physics, domain.V(0, 0), domain.V(100, 0))
	s.World.Spawn(ball)
	coins := len(s.World.Coins())

	s.pending.Points = 4
	s.pending.Coins = 2
	s.pending.SplitBalls = append(s.pending.SplitBalls, ball.ID)
	s.pending.VelocityScales = append(s.pending.VelocityScales, systems.VelocityScale{Ball: ball.ID, Factor: 2})
	s.pending.PlaceCoins = 1
	s.applyEffects()

	assert.Equal(t, uint(4), s.Player.Points)
	assert.Equal(t, uint(4), s.Player.PointsThisRound)
	assert.Equal(t, uint(2), s.Player.Coins)
	assert.Len(t, s.World.Balls(), 2)
	assert.InDelta(t, 200, ball.Body.Velocity.Len(), 1e-9)
	assert.Equal(t, coins+1, len(s.World.Coins()))
	assert.True(t, s.pending.Empty())
	assert.Contains(t, s.outbox, domain.Notification{Type: domain.EventPlaceCoins, Amount: 1})
}

func TestSession_ClearGadgetsReleasesGravityField(t *testing.T) {
	s := startedSession(t, 8)
	b := s.cfg.Balance

	tmpl, ok := playfield.TemplateFor(domain.GadgetGravityField, domain.CardGravityReverser, b.Gadgets)
	require.True(t, ok)
	s.World.Spawn(tmpl.SpawnPlaced(domain.V(-200, 0), 0))
	ball := playfield.NewBall(b.Physics, domain.V(-200, 0), domain.Vec2{})
	s.World.Spawn(ball)

	s.machine.Request(domain.PhaseBallBouncing)
	step(s)
	require.Equal(t, domain.PhaseBallBouncing, s.Phase())
	frames(s, 3)
	require.Equal(t, b.Gadgets.GravityField.GravityScale, ball.Body.GravityScale, "ball inside the field flips gravity")

	send(s, domain.ActionClearGadgets, nil)
	step(s)
	assert.Empty(t, s.World.PlacedGadgets())
	assert.Equal(t, 1.0, ball.Body.GravityScale)

	// Мяч снова падает и покидает поле: раунд заканчивается.
	runUntil(t, s, domain.PhaseEndOfRound, 60*10)
	assert.Empty(t, s.World.Balls())
}

func TestSession_GadgetsReactivatedOnLeavingWidgetSelection(t *testing.T) {
	s := startedSession(t, 9)
	b := s.cfg.Balance

	tmpl, ok := playfield.TemplateFor(domain.GadgetBumper, domain.CardBumper, b.Gadgets)
	require.True(t, ok)
	bumper := tmpl.SpawnPlaced(domain.V(300, 150), 0)
	s.World.Spawn(bumper)
	bumper.Gadget.ActivationsLeft = 0
	bumper.Gadget.Deactivated = true

	hand := s.Player.Deck.Hand()
	require.NotEmpty(t, hand)
	send(s, domain.ActionSelectCard, api.CardPayload{Card: hand[0].String()})
	events := step(s)

	require.Equal(t, domain.PhasePlaceWidget, s.Phase())
	assert.Equal(t, b.Gadgets.Bumper.Activations, bumper.Gadget.ActivationsLeft)
	assert.False(t, bumper.Gadget.Deactivated)
	assert.Contains(t, events, domain.Notification{Type: domain.EventGadgetReactivated, Entity: bumper.ID})
}

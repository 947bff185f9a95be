package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorld_SpawnGetDespawn(t *testing.T) {
	w := NewWorld()

	ball := &Entity{Name: "ball", Ball: &BallComponent{}}
	id := w.Spawn(ball)

	require.False(t, id.IsNil())
	assert.Equal(t, KindBall, id.Kind())
	assert.Same(t, ball, w.Get(id))
	assert.Equal(t, 1, w.Len())

	assert.True(t, w.Despawn(id))
	assert.Nil(t, w.Get(id))
	assert.False(t, w.Despawn(id), "second despawn is a no-op")
	assert.Equal(t, 0, w.Len())
}

func TestWorld_StaleReferenceAfterReuse(t *testing.T) {
	w := NewWorld()

	old := w.Spawn(&Entity{Name: "coin", Collectible: &CollectibleComponent{Value: 1}})
	w.Despawn(old)

	fresh := w.Spawn(&Entity{Name: "coin", Collectible: &CollectibleComponent{Value: 1}})

	assert.Equal(t, old.Index(), fresh.Index(), "slot should be reused")
	assert.NotEqual(t, old.Generation(), fresh.Generation())
	assert.Nil(t, w.Get(old), "stale id must not resolve to the new entity")
	assert.NotNil(t, w.Get(fresh))
}

func TestWorld_Queries(t *testing.T) {
	w := NewWorld()
	w.Spawn(&Entity{Ball: &BallComponent{}})
	w.Spawn(&Entity{Gadget: &GadgetComponent{Kind: GadgetBumper}, Placed: true})
	w.Spawn(&Entity{Gadget: &GadgetComponent{Kind: GadgetWideBlock}, Preview: &PreviewComponent{}})
	w.Spawn(&Entity{Collectible: &CollectibleComponent{Value: 1}})
	w.Spawn(&Entity{Cannon: &CannonComponent{}})

	assert.Len(t, w.Balls(), 1)
	assert.Len(t, w.Gadgets(), 2)
	assert.Len(t, w.PlacedGadgets(), 1)
	assert.Len(t, w.Coins(), 1)
	assert.NotNil(t, w.Cannon())

	removed := w.DespawnWhere(func(e *Entity) bool { return e.Gadget != nil })
	assert.Len(t, removed, 2)
	assert.Empty(t, w.Gadgets())
	assert.Equal(t, 3, w.Len())
}

func TestEntityID_Pack(t *testing.T) {
	tests := []struct {
		name  string
		kind  EntityKind
		gen   uint32
		index uint32
	}{
		{name: "simple", kind: KindBall, gen: 1, index: 1},
		{name: "max index", kind: KindCoin, gen: 3, index: 0xFFFFFFFF},
		{name: "max generation", kind: KindGadget, gen: maskGen, index: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := PackEntityID(tt.kind, tt.gen, tt.index)
			assert.Equal(t, tt.kind, id.Kind())
			assert.Equal(t, tt.gen, id.Generation())
			assert.Equal(t, tt.index, id.Index())
		})
	}
}

func TestEntityID_JSON(t *testing.T) {
	id := PackEntityID(KindGadget, 5, 12)

	raw, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, byte('"'), raw[0], "id must be encoded as a string")

	var back EntityID
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, id, back)

	var fromNumber EntityID
	require.NoError(t, json.Unmarshal([]byte("42"), &fromNumber))
	assert.Equal(t, EntityID(42), fromNumber)
}

func TestCardID_Text(t *testing.T) {
	for _, card := range AllCards {
		raw, err := card.MarshalText()
		require.NoError(t, err)

		var back CardID
		require.NoError(t, back.UnmarshalText(raw))
		assert.Equal(t, card, back)
	}

	var bad CardID
	assert.Error(t, bad.UnmarshalText([]byte("LASER_SWORD")))
	assert.Equal(t, CardWideBlock, ParseCard(" wide_block "))
}

func TestPlayer_Reset(t *testing.T) {
	p := NewPlayer(3, []CardID{CardWideBlock, CardWideBlock, CardGravityReverser})
	p.Points, p.Coins, p.CurrentLevel, p.BallsLeft = 40, 7, 2, 0
	p.PointsLastRound = 9

	p.Reset(5, newTestRng())

	assert.Zero(t, p.Points)
	assert.Zero(t, p.Coins)
	assert.Zero(t, p.CurrentLevel)
	assert.Zero(t, p.PointsLastRound)
	assert.Equal(t, uint(3), p.BallsLeft)
	assert.Equal(t, uint(5), p.PointsForNextLevel)
	assert.Equal(t, 3, p.Deck.Size())
	assert.Len(t, p.Deck.DrawPile(), 3)
}

func TestPlayer_RoundAccounting(t *testing.T) {
	p := NewPlayer(3, []CardID{CardWideBlock})
	p.PointsForNextLevel = 10

	p.AddPoints(4)
	p.AddPoints(3)
	assert.Equal(t, uint(7), p.Points)
	assert.Equal(t, uint(7), p.PointsThisRound)
	assert.False(t, p.Promoted())

	p.CloseRound()
	assert.Equal(t, uint(7), p.PointsLastRound)
	assert.Zero(t, p.PointsThisRound)

	p.AddPoints(3)
	assert.True(t, p.Promoted())
}

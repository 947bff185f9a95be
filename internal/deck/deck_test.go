package deck

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRng() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func sorted(cards []int) []int {
	out := append([]int(nil), cards...)
	sort.Ints(out)
	return out
}

func TestDeck_ResetRestoresStarter(t *testing.T) {
	rng := newRng()
	d := New([]int{1, 1, 1, 2})
	d.Reset(rng)

	assert.Equal(t, []int{1, 1, 1, 2}, sorted(d.DrawPile()))
	assert.Empty(t, d.DiscardPile())
	assert.Empty(t, d.Hand())

	require.NoError(t, d.FillHandTo(3, rng))
	d.AddPurchased(7)
	d.Reset(rng)

	assert.Equal(t, 4, d.Size())
	assert.Equal(t, 0, d.Purchased())
	assert.Empty(t, d.Hand())
}

func TestDeck_CardConservation(t *testing.T) {
	rng := newRng()
	d := New([]int{1, 2, 3, 4, 5})
	d.Reset(rng)

	// Случайная последовательность draw/discard/fill/remove.
	ops := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		switch ops.Intn(3) {
		case 0:
			require.NoError(t, d.FillHandTo(3, rng))
		case 1:
			hand := d.Hand()
			if len(hand) > 0 {
				card, err := d.RemoveFromHand(hand[ops.Intn(len(hand))])
				require.NoError(t, err)
				d.Discard(card)
			}
		case 2:
			card, err := d.DrawNext(rng)
			require.NoError(t, err)
			d.Discard(card)
		}
		assert.Equal(t, 5, d.Size(), "iteration %d", i)
	}

	all := append(append(d.DrawPile(), d.DiscardPile()...), d.Hand()...)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, sorted(all))
}

func TestDeck_ReshuffleFromDiscard(t *testing.T) {
	rng := newRng()
	d := New([]int{1, 2, 3, 4})
	d.Reset(rng)

	// Переложим всё в сброс.
	for i := 0; i < 4; i++ {
		card, err := d.DrawNext(rng)
		require.NoError(t, err)
		d.Discard(card)
	}
	require.Empty(t, d.DrawPile())
	formerDiscard := sorted(d.DiscardPile())

	card, err := d.DrawNext(rng)
	require.NoError(t, err)

	after := append(d.DrawPile(), card)
	assert.Equal(t, formerDiscard, sorted(after), "draw pile must be a permutation of the former discard pile")
	assert.Empty(t, d.DiscardPile())
}

func TestDeck_DrawExhausted(t *testing.T) {
	rng := newRng()
	d := New([]int{9})
	d.Reset(rng)

	require.NoError(t, d.FillHandTo(1, rng))

	_, err := d.DrawNext(rng)
	assert.ErrorIs(t, err, ErrDeckExhausted)

	err = d.FillHandTo(2, rng)
	assert.ErrorIs(t, err, ErrDeckExhausted)
	assert.Len(t, d.Hand(), 1)
}

func TestDeck_RemoveFromHand(t *testing.T) {
	tests := []struct {
		name     string
		hand     []int
		remove   int
		wantHand []int
		wantErr  error
	}{
		{name: "first match removed", hand: []int{3, 1, 3}, remove: 3, wantHand: []int{1, 3}},
		{name: "last card", hand: []int{5}, remove: 5, wantHand: []int{}},
		{name: "absent card", hand: []int{1, 2}, remove: 4, wantHand: []int{1, 2}, wantErr: ErrCardNotInHand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New[int](nil)
			d.hand = append(d.hand, tt.hand...)

			got, err := d.RemoveFromHand(tt.remove)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.remove, got)
			}
			assert.Equal(t, tt.wantHand, append([]int{}, d.Hand()...))
		})
	}
}

func TestDeck_AddPurchasedCounts(t *testing.T) {
	rng := newRng()
	d := New([]int{1, 2})
	d.Reset(rng)

	d.AddPurchased(3)
	d.AddPurchased(4)

	assert.Equal(t, d.StarterSize()+d.Purchased(), d.Size())
	assert.ElementsMatch(t, []int{3, 4}, d.DiscardPile())
}

func TestDeck_SameSeedSameOrder(t *testing.T) {
	a := New([]int{1, 2, 3, 4, 5, 6})
	b := New([]int{1, 2, 3, 4, 5, 6})
	a.Reset(rand.New(rand.NewSource(99)))
	b.Reset(rand.New(rand.NewSource(99)))

	assert.Equal(t, a.DrawPile(), b.DrawPile())
}

package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNew_ShoeComposition(t *testing.T) {
	tests := []struct {
		name  string
		decks int
		size  int
	}{
		{"single deck", 1, 52},
		{"six deck shoe", 6, 312},
		{"zero defaults to one", 0, 52},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.decks)
			assert.Equal(t, tt.size, d.Remaining())
			assert.Equal(t, tt.size, d.Size())
		})
	}
}

func TestNew_ContainsEveryCard(t *testing.T) {
	d := New(2)

	counts := make(map[Card]int)
	for d.Remaining() > 0 {
		counts[d.Draw()]++
	}

	require.Len(t, counts, 52)
	for card, n := range counts {
		assert.Equal(t, 2, n, "card %s should appear once per deck", card)
	}
}

func TestStacked_DrawOrder(t *testing.T) {
	first := Card{Suit: "♠", Rank: "A"}
	second := Card{Suit: "♥", Rank: "7"}
	third := Card{Suit: "♦", Rank: "K"}

	d := Stacked(first, second, third)
	assert.Equal(t, first, d.Draw())
	assert.Equal(t, second, d.Draw())
	assert.Equal(t, third, d.Draw())
}

// Drawing past the end of the shoe must transparently substitute a
// fresh shuffled shoe instead of failing.
func TestDraw_ReplenishesExhaustedShoe(t *testing.T) {
	d := New(1)

	for i := 0; i < 60; i++ {
		c := d.Draw()
		assert.NotEmpty(t, c.Suit)
		assert.NotEmpty(t, c.Rank)
	}
	// 52 drawn from the original deck, 8 from the replacement.
	assert.Equal(t, 44, d.Remaining())
}

func TestFormatHand(t *testing.T) {
	hand := []Card{
		{Suit: "♠", Rank: "A"},
		{Suit: "♥", Rank: "10"},
	}
	assert.Equal(t, "♠A、♥10", FormatHand(hand))
	assert.Equal(t, "", FormatHand(nil))
}

// TestDrawAlwaysYieldsValidCardProperty checks that any number of draws
// from any shoe yields well-formed cards without error.
func TestDrawAlwaysYieldsValidCardProperty(t *testing.T) {
	valid := make(map[Card]bool)
	for _, suit := range suits {
		for _, rank := range ranks {
			valid[Card{Suit: suit, Rank: rank}] = true
		}
	}

	rapid.Check(t, func(t *rapid.T) {
		decks := rapid.IntRange(1, 8).Draw(t, "decks")
		draws := rapid.IntRange(1, 500).Draw(t, "draws")

		d := New(decks)
		for i := 0; i < draws; i++ {
			c := d.Draw()
			if !valid[c] {
				t.Fatalf("draw %d produced invalid card %q", i, c)
			}
		}
	})
}

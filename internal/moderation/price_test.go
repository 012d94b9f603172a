package moderation

import (
	"fmt"
	"testing"
)

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain number", "продам велосипед 3500", 3500},
		{"currency suffix", "3000грн", 3000},
		{"currency word", "віддам за 4500 гривень", 4500},
		{"uah suffix", "5000uah", 5000},
		{"hryvnia sign", "2500₴", 2500},
		{"latin k shorthand", "продам за 15k", 15000},
		{"latin K shorthand", "15K", 15000},
		{"cyrillic shorthand", "ціна 5к", 5000},
		{"shorthand beats plain prefix", "3k грн", 3000},
		{"spaced digits", "3 000 грн", 3000},
		{"no digits", "no digits here", 0},
		{"empty", "", 0},
		{"words only ukrainian", "продам без ціни", 0},
		{"first number wins", "продам 4000 або 5000", 4000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPrice(tt.input)
			if got != tt.want {
				t.Errorf("ExtractPrice(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// TestExtractPrice_ShorthandRoundTrip checks the "<n>k == n*1000" property
// across a range of values.
func TestExtractPrice_ShorthandRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 3, 15, 99, 250, 100000} {
		input := fmt.Sprintf("%dk", n)
		got := ExtractPrice(input)
		if got != n*1000 {
			t.Errorf("ExtractPrice(%q) = %d, want %d", input, got, n*1000)
		}
	}
}

func TestExtractPrice_Overflow(t *testing.T) {
	// A digit run too large for int is treated as no price.
	got := ExtractPrice("99999999999999999999999999 грн")
	if got != 0 {
		t.Errorf("ExtractPrice(overflowing run) = %d, want 0", got)
	}
}

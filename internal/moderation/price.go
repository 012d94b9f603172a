package moderation

import (
	"regexp"
	"strconv"
	"strings"
)

// Compiled patterns for price extraction. Compiled once at package init and
// reused for every call, safe for concurrent use.
var (
	// shorthandPattern matches "15k"/"15K" style prices. The Cyrillic "к" is
	// included because messages in the group mix alphabets freely ("15к грн").
	shorthandPattern = regexp.MustCompile(`(\d+)[kк]`)

	// pricePattern matches a plain digit run optionally followed by a
	// currency marker ("3000", "3000грн", "3000uah", "3000₴").
	pricePattern = regexp.MustCompile(`(\d+)(?:грн|гривень|uah|₴)?`)
)

// ExtractPrice parses text for a listed price and returns it as an integer.
// It returns 0 when no price is found.
//
// The shorthand form ("15k" -> 15000) is checked first so that a shorthand
// price is never misread as its plain-number prefix. Digit runs that do not
// fit in an int are treated as no price.
func ExtractPrice(text string) int {
	normalized := normalizePrice(text)

	if m := shorthandPattern.FindStringSubmatch(normalized); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0
		}
		return n * 1000
	}

	if m := pricePattern.FindStringSubmatch(normalized); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0
		}
		return n
	}

	return 0
}

// normalizePrice lowercases text and strips all whitespace so that
// "3 000 ГРН" and "3000грн" parse identically.
func normalizePrice(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), "")
}

package moderation

import (
	"regexp"
	"strings"
)

// hashtagPattern tokenizes hashtags: "#" followed by letters, digits or
// underscores. \p{L} is used instead of \w so Cyrillic tags like #продам
// are matched.
var hashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

// HasRequiredHashtag reports whether text contains at least one of the
// required hashtags. Matching is case-insensitive and token-bounded: the tag
// must appear as a hashtag, not as a bare word. Empty text never matches.
func HasRequiredHashtag(text string, required []string) bool {
	if text == "" || len(required) == 0 {
		return false
	}

	tags := hashtagSet(text)
	for _, want := range required {
		if tags[strings.ToLower(want)] {
			return true
		}
	}
	return false
}

// ContainsHashtag reports whether text carries the given hashtag,
// case-insensitively. Used to detect sale offers (the #продам tag) which
// are additionally subject to the minimum-price check.
func ContainsHashtag(text string, tag string) bool {
	if text == "" {
		return false
	}
	return hashtagSet(text)[strings.ToLower(tag)]
}

func hashtagSet(text string) map[string]bool {
	tags := make(map[string]bool)
	for _, tag := range hashtagPattern.FindAllString(strings.ToLower(text), -1) {
		tags[tag] = true
	}
	return tags
}

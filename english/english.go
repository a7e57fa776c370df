// Package english contains the small amount of English grammar needed to
// describe a changeset: plurals, indefinite articles, number words and
// list joining.
package english

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// Plural returns the plural of a noun phrase. Only the last word is
// inflected ("bus stop" -> "bus stops").
func Plural(noun string) string {
	if noun == "" {
		return noun
	}
	return inflection.Plural(noun)
}

var anPrefixes = []string{"hour", "heir", "honest", "honor", "honour"}

var aPrefixes = []string{"one", "once", "use", "usu", "uti", "ufo", "eu", "ewe", "ubiq", "uran"}

// Article returns "a" or "an" for phrase.
func Article(phrase string) string {
	word := strings.TrimSpace(phrase)
	if i := strings.IndexAny(word, " -"); i > 0 {
		word = word[:i]
	}
	if word == "" {
		return "a"
	}
	if isAbbrev(word) {
		// letters are spelled out: an ATM, a UFO
		if strings.ContainsRune("AEFHILMNORSX", rune(word[0])) {
			return "an"
		}
		return "a"
	}
	lower := strings.ToLower(word)
	for _, p := range anPrefixes {
		if strings.HasPrefix(lower, p) {
			return "an"
		}
	}
	for _, p := range aPrefixes {
		if strings.HasPrefix(lower, p) {
			return "a"
		}
	}
	// uni is pronounced "you-ni" unless followed by n, m or d: a unit,
	// an unidentified, an unnamed
	if strings.HasPrefix(lower, "uni") && len(lower) > 3 && !strings.ContainsRune("nmd", rune(lower[3])) {
		return "a"
	}
	if strings.ContainsRune("aeiou", rune(lower[0])) {
		return "an"
	}
	return "a"
}

// A prefixes phrase with its indefinite article.
func A(phrase string) string {
	return Article(phrase) + " " + phrase
}

func isAbbrev(word string) bool {
	if len(word) < 2 {
		return false
	}
	for _, r := range word {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Join joins items to a list with commas and a final "and": "a", "a and b",
// "a, b, and c".
func Join(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
}

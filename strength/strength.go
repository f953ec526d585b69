// Package strength rates passwords on a five-level heuristic scale.
package strength

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Level is an ordinal password strength, weakest first.
type Level int

const (
	VeryWeak Level = iota
	Weak
	Medium
	Strong
	VeryStrong
)

// minLength is exclusive: a password must be longer to earn the length point.
const minLength = 10

// specials earns a point. It differs from the generator's special class.
const specials = "?!@"

var labels = [...]string{
	VeryWeak:   "very weak",
	Weak:       "weak",
	Medium:     "medium",
	Strong:     "strong",
	VeryStrong: "very strong",
}

// pointLevels maps a point score to its Level.
var pointLevels = [...]Level{VeryWeak, VeryWeak, Weak, Medium, Strong, VeryStrong}

// String returns the lowercase label, e.g. "very weak".
func (l Level) String() string {
	if l < VeryWeak || l > VeryStrong {
		return "unknown"
	}
	return labels[l]
}

// Check classifies password. It is total and deterministic.
func Check(password string) Level {
	return pointLevels[Points(password)]
}

// Points returns the heuristic score in [0,5]: one point each for length
// over ten runes, a lowercase letter, an uppercase letter, a digit, and
// one of ? ! @. An empty password scores 0.
func Points(password string) int {
	if password == "" {
		return 0
	}

	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	points := 0
	for _, ok := range []bool{
		utf8.RuneCountInString(password) > minLength,
		hasLower,
		hasUpper,
		hasDigit,
		strings.ContainsAny(password, specials),
	} {
		if ok {
			points++
		}
	}
	return points
}

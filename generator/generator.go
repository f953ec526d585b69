// Package generator builds random passwords from a selectable set of
// character classes.
package generator

import (
	"errors"
	"fmt"
	"strings"
)

// Character classes, appended to the character set in this order.
const (
	digits    = "123456789"
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	special   = "!?#"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// DefaultLength is the password length used when none is requested.
const DefaultLength = 16

var (
	// ErrEmptyCharacterSet is returned when no character class is selected.
	ErrEmptyCharacterSet = errors.New("no character classes selected")
	// ErrInvalidLength is returned for a negative password length.
	ErrInvalidLength = errors.New("password length must not be negative")
)

// Options holds the configuration for password generation.
type Options struct {
	Length          int
	UseDigits       bool
	UseLowercase    bool
	UseSpecialChars bool
	UseUppercase    bool
}

// NewOptions returns Options with every field set explicitly.
func NewOptions(length int, useDigits, useLowercase, useSpecialChars, useUppercase bool) Options {
	return Options{
		Length:          length,
		UseDigits:       useDigits,
		UseLowercase:    useLowercase,
		UseSpecialChars: useSpecialChars,
		UseUppercase:    useUppercase,
	}
}

// WithDefaultLength returns Options for the given classes and DefaultLength.
func WithDefaultLength(useDigits, useLowercase, useSpecialChars, useUppercase bool) Options {
	return NewOptions(DefaultLength, useDigits, useLowercase, useSpecialChars, useUppercase)
}

// DefaultOptions enables every class at DefaultLength.
func DefaultOptions() Options {
	return WithDefaultLength(true, true, true, true)
}

// CharacterSet returns the characters a password may be drawn from:
// digits, lowercase, special and uppercase, each only if enabled.
func (o Options) CharacterSet() string {
	var sb strings.Builder
	if o.UseDigits {
		sb.WriteString(digits)
	}
	if o.UseLowercase {
		sb.WriteString(lowercase)
	}
	if o.UseSpecialChars {
		sb.WriteString(special)
	}
	if o.UseUppercase {
		sb.WriteString(uppercase)
	}
	return sb.String()
}

// Generate draws opts.Length characters uniformly, with replacement, from
// the options' character set using src. A zero length yields "".
func Generate(opts Options, src RandomSource) (string, error) {
	charset := opts.CharacterSet()
	if charset == "" {
		return "", ErrEmptyCharacterSet
	}
	if opts.Length < 0 {
		return "", ErrInvalidLength
	}

	var sb strings.Builder
	sb.Grow(opts.Length)

	for i := 0; i < opts.Length; i++ {
		idx, err := src.Index(len(charset))
		if err != nil {
			return "", fmt.Errorf("draw character %d: %w", i, err)
		}
		sb.WriteByte(charset[idx])
	}

	return sb.String(), nil
}

// GenerateDefault generates a password with DefaultOptions. It panics if
// generation fails, since the default character set is never empty.
func GenerateDefault(src RandomSource) string {
	pw, err := Generate(DefaultOptions(), src)
	if err != nil {
		panic(fmt.Sprintf("generator: default options failed: %v", err))
	}
	return pw
}

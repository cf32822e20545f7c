package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrGlyphRequired = errors.New("character glyph is required")
	ErrSetNrNegative = errors.New("set number must not be negative")
)

// ValidateGlyph checks that a character glyph is present
func ValidateGlyph(glyph string) error {
	if strings.TrimSpace(glyph) == "" {
		return ErrGlyphRequired
	}
	return nil
}

// ValidateSetNr checks that a set number is usable as a grouping key
func ValidateSetNr(setNr int) error {
	if setNr < 0 {
		return ErrSetNrNegative
	}
	return nil
}

// ParseDate parses a calendar date in YYYY-MM-DD form
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

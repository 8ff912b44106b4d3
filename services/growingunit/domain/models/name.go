package models

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ghuser/gardenhub/services/growingunit/domain"
)

// Name is a value object for growing unit and plant names.
// Encapsulates validation rules: 1 <= len(trimmed name) <= 255 runes.
type Name string

const (
	minNameLength = 1
	maxNameLength = 255
)

// NewName trims s and validates its length.
func NewName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n < minNameLength {
		return "", fmt.Errorf("%w: name must be at least %d character", domain.ErrInvalidGrowingUnit, minNameLength)
	}
	if n > maxNameLength {
		return "", fmt.Errorf("%w: name must not exceed %d characters", domain.ErrInvalidGrowingUnit, maxNameLength)
	}
	return Name(s), nil
}

// String returns the underlying string value.
func (n Name) String() string {
	return string(n)
}

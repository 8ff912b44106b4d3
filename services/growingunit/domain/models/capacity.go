package models

import (
	"fmt"

	"github.com/ghuser/gardenhub/services/growingunit/domain"
)

// Capacity is the maximum number of plants a growing unit holds. Always positive.
type Capacity int

// NewCapacity validates n.
func NewCapacity(n int) (Capacity, error) {
	if n < 1 {
		return 0, fmt.Errorf("%w: capacity must be a positive integer, got %d", domain.ErrInvalidGrowingUnit, n)
	}
	return Capacity(n), nil
}

// Int returns the capacity as an int.
func (c Capacity) Int() int { return int(c) }

package kernel

import "fmt"

// Operator is a comparison applied by a Filter.
type Operator string

const (
	OpEquals             Operator = "EQUALS"
	OpNotEquals          Operator = "NOT_EQUALS"
	OpGreaterThan        Operator = "GREATER_THAN"
	OpGreaterThanOrEqual Operator = "GREATER_THAN_OR_EQUAL"
	OpLessThan           Operator = "LESS_THAN"
	OpLessThanOrEqual    Operator = "LESS_THAN_OR_EQUAL"
	OpLike               Operator = "LIKE"
	OpIn                 Operator = "IN"
)

// SortDirection orders results by a field.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 500
)

// Filter restricts results to documents whose Field compares to Value.
type Filter struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value"`
}

// Sort orders results.
type Sort struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}

// Pagination selects a 1-based page of PerPage items.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
}

// Offset is the number of items skipped before the page starts.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Criteria describes a read-side query: filters are ANDed, sorts applied in order.
type Criteria struct {
	Filters    []Filter   `json:"filters"`
	Sorts      []Sort     `json:"sorts"`
	Pagination Pagination `json:"pagination"`
}

// NewCriteria returns criteria with default pagination.
func NewCriteria(filters ...Filter) Criteria {
	return Criteria{
		Filters:    filters,
		Pagination: Pagination{Page: DefaultPage, PerPage: DefaultPerPage},
	}
}

// Normalize fills pagination defaults and validates operators and directions.
func (c Criteria) Normalize() (Criteria, error) {
	if c.Pagination.Page < 1 {
		c.Pagination.Page = DefaultPage
	}
	if c.Pagination.PerPage < 1 {
		c.Pagination.PerPage = DefaultPerPage
	}
	if c.Pagination.PerPage > MaxPerPage {
		c.Pagination.PerPage = MaxPerPage
	}
	for _, f := range c.Filters {
		if f.Field == "" {
			return c, fmt.Errorf("%w: filter field is required", ErrValidation)
		}
		switch f.Operator {
		case OpEquals, OpNotEquals, OpGreaterThan, OpGreaterThanOrEqual,
			OpLessThan, OpLessThanOrEqual, OpLike, OpIn:
		default:
			return c, fmt.Errorf("%w: unknown filter operator %q", ErrValidation, f.Operator)
		}
	}
	c.Sorts = append([]Sort(nil), c.Sorts...)
	for i, s := range c.Sorts {
		if s.Field == "" {
			return c, fmt.Errorf("%w: sort field is required", ErrValidation)
		}
		switch s.Direction {
		case SortAsc, SortDesc:
		case "":
			c.Sorts[i].Direction = SortAsc
		default:
			return c, fmt.Errorf("%w: unknown sort direction %q", ErrValidation, s.Direction)
		}
	}
	return c, nil
}

// PaginatedResult is one page of a read-side query.
type PaginatedResult[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalPages int `json:"totalPages"`
}

// NewPaginatedResult computes TotalPages from total and perPage.
func NewPaginatedResult[T any](items []T, total int, p Pagination) PaginatedResult[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if p.PerPage > 0 {
		pages = (total + p.PerPage - 1) / p.PerPage
	}
	return PaginatedResult[T]{
		Items:      items,
		Total:      total,
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalPages: pages,
	}
}

package httpx

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ghuser/gardenhub/pkg/kernel"
)

// ParseCriteria reads list query parameters into kernel.Criteria:
//
//	?page=2&perPage=20&sort=name:asc,createdAt:desc&filter=type:EQUALS:POT&filter=name:LIKE:bed
//
// Filters may repeat and are ANDed. Values of range operators are read as
// numbers when they parse as one. The result is normalised.
func ParseCriteria(r *http.Request) (kernel.Criteria, error) {
	q := r.URL.Query()
	c := kernel.NewCriteria()

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("%w: page must be an integer", kernel.ErrValidation)
		}
		c.Pagination.Page = n
	}
	if v := q.Get("perPage"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("%w: perPage must be an integer", kernel.ErrValidation)
		}
		c.Pagination.PerPage = n
	}

	for _, raw := range q["filter"] {
		parts := strings.SplitN(raw, ":", 3)
		if len(parts) != 3 {
			return c, fmt.Errorf("%w: filter %q must be field:OPERATOR:value", kernel.ErrValidation, raw)
		}
		op := kernel.Operator(strings.ToUpper(parts[1]))
		c.Filters = append(c.Filters, kernel.Filter{
			Field:    parts[0],
			Operator: op,
			Value:    filterValue(op, parts[2]),
		})
	}

	if v := q.Get("sort"); v != "" {
		for _, s := range strings.Split(v, ",") {
			field, dir, _ := strings.Cut(strings.TrimSpace(s), ":")
			c.Sorts = append(c.Sorts, kernel.Sort{
				Field:     field,
				Direction: kernel.SortDirection(strings.ToUpper(dir)),
			})
		}
	}

	return c.Normalize()
}

func filterValue(op kernel.Operator, raw string) any {
	switch op {
	case kernel.OpGreaterThan, kernel.OpGreaterThanOrEqual, kernel.OpLessThan, kernel.OpLessThanOrEqual:
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	}
	return raw
}

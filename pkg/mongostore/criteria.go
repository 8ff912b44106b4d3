package mongostore

import (
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/ghuser/gardenhub/pkg/kernel"
)

// fieldName maps a criteria field to its document key. "id" is stored as _id.
func fieldName(f string) string {
	if f == "id" {
		return "_id"
	}
	return f
}

// BuildFilter translates criteria filters into a query document. Filters are ANDed.
func BuildFilter(filters []kernel.Filter) (bson.D, error) {
	clauses := make(bson.A, 0, len(filters))
	for _, f := range filters {
		clause, err := buildClause(f)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}
	switch len(clauses) {
	case 0:
		return bson.D{}, nil
	case 1:
		return clauses[0].(bson.D), nil
	default:
		return bson.D{{Key: "$and", Value: clauses}}, nil
	}
}

func buildClause(f kernel.Filter) (bson.D, error) {
	key := fieldName(f.Field)
	switch f.Operator {
	case kernel.OpEquals:
		return bson.D{{Key: key, Value: f.Value}}, nil
	case kernel.OpNotEquals:
		return bson.D{{Key: key, Value: bson.D{{Key: "$ne", Value: f.Value}}}}, nil
	case kernel.OpGreaterThan:
		return bson.D{{Key: key, Value: bson.D{{Key: "$gt", Value: f.Value}}}}, nil
	case kernel.OpGreaterThanOrEqual:
		return bson.D{{Key: key, Value: bson.D{{Key: "$gte", Value: f.Value}}}}, nil
	case kernel.OpLessThan:
		return bson.D{{Key: key, Value: bson.D{{Key: "$lt", Value: f.Value}}}}, nil
	case kernel.OpLessThanOrEqual:
		return bson.D{{Key: key, Value: bson.D{{Key: "$lte", Value: f.Value}}}}, nil
	case kernel.OpLike:
		pattern := regexp.QuoteMeta(fmt.Sprint(f.Value))
		return bson.D{{Key: key, Value: bson.D{
			{Key: "$regex", Value: pattern},
			{Key: "$options", Value: "i"},
		}}}, nil
	case kernel.OpIn:
		return bson.D{{Key: key, Value: bson.D{{Key: "$in", Value: inValues(f.Value)}}}}, nil
	default:
		return nil, fmt.Errorf("%w: unknown filter operator %q", kernel.ErrValidation, f.Operator)
	}
}

// inValues accepts a slice or a comma-separated string.
func inValues(v any) bson.A {
	switch vals := v.(type) {
	case []string:
		out := make(bson.A, len(vals))
		for i, s := range vals {
			out[i] = s
		}
		return out
	case []any:
		return bson.A(vals)
	case string:
		parts := strings.Split(vals, ",")
		out := make(bson.A, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return bson.A{v}
	}
}

// BuildSort translates criteria sorts into a sort document.
func BuildSort(sorts []kernel.Sort) bson.D {
	out := make(bson.D, 0, len(sorts))
	for _, s := range sorts {
		dir := 1
		if s.Direction == kernel.SortDesc {
			dir = -1
		}
		out = append(out, bson.E{Key: fieldName(s.Field), Value: dir})
	}
	return out
}

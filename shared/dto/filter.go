package dto

import (
	"fmt"
	"maps"
	"strings"
)

const (
	FilterOperatorEq    = "eq"
	FilterOperatorNotEq = "not_eq"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

// comparisons maps a filter operator to its SQL comparison.
var comparisons = map[string]string{
	FilterOperatorEq:    "=",
	FilterOperatorNotEq: "!=",
}

// Filter is a single column comparison rendered as a named sqlx parameter.
// ArgName overrides the parameter name when the same column appears twice in a group.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq not_eq"`
	Table    string
}

// GetWhereClause renders the comparison. An unknown operator renders nothing.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	comparison, ok := comparisons[f.Operator]
	if !ok {
		return "", map[string]any{}
	}

	column := f.Field
	if f.Table != "" {
		column = f.Table + "." + f.Field
	}

	argName := f.ArgName
	if argName == "" {
		argName = f.Field
	}

	return fmt.Sprintf("%s %s :%s", column, comparison, argName), map[string]any{argName: f.Value}
}

// FilterGroup joins filters and nested groups with Operator.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := []string{}

	for _, filter := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch fill := filter.(type) {
		case Filter:
			where, arg = fill.GetWhereClause()
		case FilterGroup:
			where, arg = fill.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		clauses = append(clauses, where)
		maps.Copy(args, arg)
	}

	if len(clauses) == 0 {
		return "", args
	}

	return fmt.Sprintf("(%s)", strings.Join(clauses, " "+f.Operator+" ")), args
}

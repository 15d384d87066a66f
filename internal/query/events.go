// Package query translates event-listing query strings into structured,
// injection-safe store queries.
package query

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	appErrors "github.com/campuseventhub/campus-event-hub/pkg/errors"
)

// Op is a comparison operator. Only the four range operators plus equality
// ever reach the store; anything else is rejected at parse time.
type Op string

const (
	OpEq  Op = "eq"
	OpGte Op = "gte"
	OpGt  Op = "gt"
	OpLte Op = "lte"
	OpLt  Op = "lt"
)

// SQL returns the SQL comparison for the operator.
func (o Op) SQL() string {
	switch o {
	case OpGte:
		return ">="
	case OpGt:
		return ">"
	case OpLte:
		return "<="
	case OpLt:
		return "<"
	default:
		return "="
	}
}

// Condition is a single column comparison ANDed into the filter.
type Condition struct {
	Column string
	Op     Op
	Value  string
}

// SortKey orders results by a column.
type SortKey struct {
	Column string
	Desc   bool
}

// EventQuery is the structured form of an event listing request: equality and
// range conditions, an optional free-text search, and sort keys.
type EventQuery struct {
	Conditions []Condition
	Search     string
	Sort       []SortKey
}

// Control keys stripped from the parameter map before filtering.
var controlKeys = map[string]struct{}{
	"page":   {},
	"sort":   {},
	"limit":  {},
	"fields": {},
	"search": {},
}

// Known JSON names mapped onto their columns. Unknown keys fall through to
// generic snake_case conversion: they become literal equality filters without
// schema validation against the event shape.
var columnAliases = map[string]string{
	"startDate": "start_date",
	"endDate":   "end_date",
	"collegeId": "college_id",
	"createdAt": "created_at",
}

var (
	keyPattern        = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_]*)(?:\[([a-z]+)\])?$`)
	identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
)

// ParseEvents builds an EventQuery from raw query-string values.
func ParseEvents(values url.Values) (*EventQuery, error) {
	q := &EventQuery{Search: values.Get("search")}

	for key, vals := range values {
		if _, control := controlKeys[key]; control {
			continue
		}
		if len(vals) == 0 {
			continue
		}

		match := keyPattern.FindStringSubmatch(key)
		if match == nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid filter key %q", key))
		}

		op := OpEq
		if raw := match[2]; raw != "" {
			switch Op(raw) {
			case OpGte, OpGt, OpLte, OpLt:
				op = Op(raw)
			default:
				return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported operator %q", raw))
			}
		}

		column, err := toColumn(match[1])
		if err != nil {
			return nil, err
		}

		q.Conditions = append(q.Conditions, Condition{Column: column, Op: op, Value: vals[0]})
	}

	// Map iteration order is random; keep the rendered SQL deterministic.
	sort.Slice(q.Conditions, func(i, j int) bool {
		if q.Conditions[i].Column != q.Conditions[j].Column {
			return q.Conditions[i].Column < q.Conditions[j].Column
		}
		return q.Conditions[i].Op < q.Conditions[j].Op
	})

	sortKeys, err := parseSort(values.Get("sort"))
	if err != nil {
		return nil, err
	}
	q.Sort = sortKeys

	return q, nil
}

func parseSort(raw string) ([]SortKey, error) {
	if raw == "" {
		return []SortKey{{Column: "start_date", Desc: true}}, nil
	}

	var keys []SortKey
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		desc := false
		if strings.HasPrefix(part, "-") {
			desc = true
			part = part[1:]
		}
		column, err := toColumn(part)
		if err != nil {
			return nil, err
		}
		keys = append(keys, SortKey{Column: column, Desc: desc})
	}
	if len(keys) == 0 {
		keys = []SortKey{{Column: "start_date", Desc: true}}
	}
	return keys, nil
}

// toColumn maps a JSON field name onto a safe column identifier.
func toColumn(field string) (string, error) {
	if alias, ok := columnAliases[field]; ok {
		return alias, nil
	}
	column := toSnake(field)
	if !identifierPattern.MatchString(column) {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid filter field %q", field))
	}
	return column, nil
}

func toSnake(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

package db

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// UPDATE builder: allow-listed columns, values always bound as parameters
// --------------------------------------------------------------------------

// UpdateBuilder assembles "UPDATE t SET a = $1, ... WHERE key = $n".
type UpdateBuilder struct {
	table   string
	allowed []string
	sets    []string
	raw     []string
	args    []any
	err     error
}

// NewUpdate starts an UPDATE against table; only the listed columns may be set.
func NewUpdate(table string, allowed ...string) *UpdateBuilder {
	return &UpdateBuilder{table: table, allowed: allowed}
}

// Set binds v to col.
func (b *UpdateBuilder) Set(col string, v any) *UpdateBuilder {
	if !slices.Contains(b.allowed, col) {
		if b.err == nil {
			b.err = fmt.Errorf("column %q is not updatable on %s", col, b.table)
		}
		return b
	}
	b.args = append(b.args, v)
	b.sets = append(b.sets, col+" = $"+strconv.Itoa(len(b.args)))
	return b
}

// SetRaw appends a literal assignment such as "updated_date = NOW()". Callers
// pass constants only.
func (b *UpdateBuilder) SetRaw(expr string) *UpdateBuilder {
	b.raw = append(b.raw, expr)
	return b
}

// SetIfPresent binds *v to col when v is non-nil.
func SetIfPresent[T any](b *UpdateBuilder, col string, v *T) {
	if v != nil {
		b.Set(col, *v)
	}
}

// Len is the number of caller-supplied assignments, excluding raw ones.
func (b *UpdateBuilder) Len() int { return len(b.sets) }

// Build renders the statement keyed on keyCol = key.
func (b *UpdateBuilder) Build(keyCol string, key any) (string, []any, error) {
	return b.BuildWhere(keyCol+" = ?", key)
}

// BuildWhere renders the statement with an arbitrary condition whose "?"
// markers continue the placeholder numbering of the assignments.
func (b *UpdateBuilder) BuildWhere(cond string, args ...any) (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	assignments := append(slices.Clone(b.sets), b.raw...)
	if len(assignments) == 0 {
		return "", nil, fmt.Errorf("update %s: nothing to set", b.table)
	}
	where := NewFilter(slices.Clone(b.args)...).Add(cond, args...)
	sql := fmt.Sprintf("UPDATE %s SET %s%s", b.table, strings.Join(assignments, ", "), where.Where())
	return sql, where.Args(), nil
}

// --------------------------------------------------------------------------
// WHERE builder for optional query filters
// --------------------------------------------------------------------------

// Filter collects AND-ed conditions. Each "?" in a condition is replaced with
// the next positional placeholder.
type Filter struct {
	conds []string
	args  []any
}

// NewFilter starts a filter whose first placeholder follows any args already
// bound by the caller.
func NewFilter(args ...any) *Filter {
	return &Filter{args: args}
}

// Add appends cond, binding args to its "?" markers in order.
func (f *Filter) Add(cond string, args ...any) *Filter {
	var sb strings.Builder
	i := 0
	for _, r := range cond {
		if r == '?' && i < len(args) {
			f.args = append(f.args, args[i])
			sb.WriteString("$" + strconv.Itoa(len(f.args)))
			i++
			continue
		}
		sb.WriteRune(r)
	}
	f.conds = append(f.conds, sb.String())
	return f
}

// Arg binds v and returns its placeholder, for use outside WHERE (LIMIT etc).
func (f *Filter) Arg(v any) string {
	f.args = append(f.args, v)
	return "$" + strconv.Itoa(len(f.args))
}

// Where renders " WHERE a AND b", or "" when there are no conditions.
func (f *Filter) Where() string {
	if len(f.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.conds, " AND ")
}

// And renders " AND a AND b" for appending to an existing WHERE clause.
func (f *Filter) And() string {
	if len(f.conds) == 0 {
		return ""
	}
	return " AND " + strings.Join(f.conds, " AND ")
}

// Args returns every bound value in placeholder order.
func (f *Filter) Args() []any { return f.args }

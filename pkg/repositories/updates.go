package repositories

import (
	"encoding/json"
	"fmt"
	"strings"
)

// listLimit bounds unpaginated list queries.
const listLimit = 1000

// FieldUpdates accumulates column assignments for a partial UPDATE.
// Only columns explicitly set here are written; everything else is left
// untouched, which is what gives update calls their exclude-unset semantics.
type FieldUpdates struct {
	columns []string
	values  []any
}

// Set records a column assignment.
func (u *FieldUpdates) Set(column string, value any) {
	u.columns = append(u.columns, column)
	u.values = append(u.values, value)
}

// SetJSON records a column assignment with the value marshaled for a JSONB
// column.
func (u *FieldUpdates) SetJSON(column string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", column, err)
	}
	u.Set(column, data)
	return nil
}

// Len returns the number of recorded assignments.
func (u *FieldUpdates) Len() int {
	return len(u.columns)
}

// Columns returns the recorded column names in assignment order.
func (u *FieldUpdates) Columns() []string {
	return u.columns
}

// Clause renders the SET clause with placeholders starting at $1 and returns
// it together with the ordered argument list and the next free placeholder
// index.
func (u *FieldUpdates) Clause() (string, []any, int) {
	parts := make([]string, len(u.columns))
	for i, col := range u.columns {
		parts[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	return strings.Join(parts, ", "), u.values, len(u.columns) + 1
}

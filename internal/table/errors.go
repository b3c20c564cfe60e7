package table

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyKey indicates an upsert was attempted without a component name.
var ErrEmptyKey = errors.New("component name is required")

// SchemaError indicates the decoded headers do not match the canonical
// schema. The table is left untouched.
type SchemaError struct {
	Expected []string
	Got      []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table header mismatch: expected [%s], got [%s]",
		strings.Join(e.Expected, ", "), strings.Join(e.Got, ", "))
}

// ConflictError indicates the component already has a row and the reject
// policy is in effect. Row is a copy of the conflicting row.
type ConflictError struct {
	Row []string
}

func (e *ConflictError) Error() string {
	component := ""
	if len(e.Row) > colComponent {
		component = e.Row[colComponent]
	}
	return fmt.Sprintf("component %q already has a row", component)
}

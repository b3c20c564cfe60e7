package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Result says what an upsert did to the table.
type Result int

const (
	ResultAdded Result = iota
	ResultUpdated
)

func (r Result) String() string {
	switch r {
	case ResultAdded:
		return "added"
	case ResultUpdated:
		return "updated"
	}
	return "unknown"
}

// Policy controls what happens when the component already has a row.
type Policy int

const (
	// PolicyReject fails the upsert with a ConflictError, leaving the
	// table untouched.
	PolicyReject Policy = iota
	// PolicyMerge overwrites only the non-empty supplied fields of the
	// existing row, leaving Order and Component alone.
	PolicyMerge
)

func (p Policy) String() string {
	switch p {
	case PolicyReject:
		return "reject"
	case PolicyMerge:
		return "merge"
	}
	return "unknown"
}

// ParsePolicy converts a user-supplied policy name.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reject", "":
		return PolicyReject, nil
	case "merge":
		return PolicyMerge, nil
	}
	return PolicyReject, fmt.Errorf("invalid policy %q (must be reject or merge)", s)
}

// Entry is the set of values to insert or update, keyed by Component.
type Entry struct {
	Component          string
	Branch             string
	ChangeRequest      string
	ExternalDependency string
}

// Upsert applies the entry against the table under the given policy and
// returns the resulting table. A nil table stands for "no table found" and
// is synthesized with the canonical schema. The input table is never
// mutated. Failures (empty key, schema mismatch, duplicate under
// PolicyReject) leave the table untouched and return a typed error.
func Upsert(t *Table, e Entry, p Policy) (*Table, Result, error) {
	component := strings.TrimSpace(e.Component)
	if component == "" {
		return nil, 0, ErrEmptyKey
	}

	if t == nil {
		t = &Table{Headers: Schema()}
	}
	if err := checkSchema(t.Headers); err != nil {
		return nil, 0, err
	}

	out := t.clone()
	out.Normalize()

	if idx := findComponent(out.Rows, component); idx >= 0 {
		if p == PolicyReject {
			return nil, 0, &ConflictError{Row: append([]string(nil), out.Rows[idx]...)}
		}
		row := out.Rows[idx]
		if v := strings.TrimSpace(e.Branch); v != "" {
			row[colBranch] = v
		}
		if v := strings.TrimSpace(e.ChangeRequest); v != "" {
			row[colChangeRequest] = v
		}
		if v := strings.TrimSpace(e.ExternalDependency); v != "" {
			row[colExtDependency] = v
		}
		return out, ResultUpdated, nil
	}

	out.Rows = append(out.Rows, []string{
		strconv.Itoa(nextOrder(out.Rows)),
		component,
		strings.TrimSpace(e.Branch),
		strings.TrimSpace(e.ChangeRequest),
		strings.TrimSpace(e.ExternalDependency),
	})
	return out, ResultAdded, nil
}

// checkSchema compares the actual headers against the canonical schema,
// trimmed and case-insensitive, order-sensitive.
func checkSchema(headers []string) error {
	expected := Schema()
	if len(headers) != len(expected) {
		return &SchemaError{Expected: expected, Got: append([]string(nil), headers...)}
	}
	for i, h := range headers {
		if !strings.EqualFold(strings.TrimSpace(h), expected[i]) {
			return &SchemaError{Expected: expected, Got: append([]string(nil), headers...)}
		}
	}
	return nil
}

// findComponent returns the index of the first row whose Component cell
// matches, case-insensitive on trimmed values, or -1.
func findComponent(rows [][]string, component string) int {
	for i, row := range rows {
		if len(row) <= colComponent {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(row[colComponent]), component) {
			return i
		}
	}
	return -1
}

// nextOrder picks the Order value for a new row: one past the largest
// numeric Order seen, else row count minus one clamped at zero. An empty
// table starts at zero.
func nextOrder(rows [][]string) int {
	max := 0
	seen := false
	for _, row := range rows {
		if len(row) <= colOrder {
			continue
		}
		cell := strings.TrimSpace(row[colOrder])
		if cell == "" {
			continue
		}
		n, err := strconv.Atoi(cell)
		if err != nil {
			continue
		}
		if !seen || n > max {
			max = n
			seen = true
		}
	}
	if seen {
		return max + 1
	}
	if fallback := len(rows) - 1; fallback > 0 {
		return fallback
	}
	return 0
}

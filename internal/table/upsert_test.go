package table

import (
	"errors"
	"reflect"
	"testing"
)

func canonical(rows ...[]string) *Table {
	return &Table{Headers: Schema(), Rows: rows}
}

func TestUpsert_AddsNewComponent(t *testing.T) {
	tbl := canonical([]string{"0", "svc-a", "main", "", ""})

	got, result, err := Upsert(tbl, Entry{Component: "svc-b", Branch: "dev"}, PolicyReject)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != ResultAdded {
		t.Errorf("expected added, got %s", result)
	}
	want := [][]string{
		{"0", "svc-a", "main", "", ""},
		{"1", "svc-b", "dev", "", ""},
	}
	if !reflect.DeepEqual(got.Rows, want) {
		t.Errorf("expected rows %v, got %v", want, got.Rows)
	}
}

func TestUpsert_RejectPolicyConflict(t *testing.T) {
	tbl := canonical([]string{"0", "svc-a", "main", "", ""})

	_, _, err := Upsert(tbl, Entry{Component: "svc-a", Branch: "release/2.0"}, PolicyReject)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if want := []string{"0", "svc-a", "main", "", ""}; !reflect.DeepEqual(conflict.Row, want) {
		t.Errorf("expected conflicting row %v, got %v", want, conflict.Row)
	}
	if want := [][]string{{"0", "svc-a", "main", "", ""}}; !reflect.DeepEqual(tbl.Rows, want) {
		t.Errorf("expected the table to be left unchanged, got %v", tbl.Rows)
	}
}

func TestUpsert_SynthesizesTableWhenAbsent(t *testing.T) {
	got, result, err := Upsert(nil, Entry{Component: "svc-a", Branch: "main"}, PolicyReject)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != ResultAdded {
		t.Errorf("expected added, got %s", result)
	}
	if !reflect.DeepEqual(got.Headers, Schema()) {
		t.Errorf("expected canonical headers, got %v", got.Headers)
	}
	want := [][]string{{"0", "svc-a", "main", "", ""}}
	if !reflect.DeepEqual(got.Rows, want) {
		t.Errorf("expected rows %v, got %v", want, got.Rows)
	}
}

func TestUpsert_EmptyKeyRejected(t *testing.T) {
	_, _, err := Upsert(canonical(), Entry{Component: "   "}, PolicyReject)
	if !errors.Is(err, ErrEmptyKey) {
		t.Errorf("expected ErrEmptyKey, got %v", err)
	}
}

func TestUpsert_SchemaMismatch(t *testing.T) {
	tbl := &Table{
		Headers: []string{"Order", "Name", "Branch Name", "Change Request", "External Dependency"},
		Rows:    [][]string{{"0", "svc-a", "main", "", ""}},
	}

	_, _, err := Upsert(tbl, Entry{Component: "svc-b"}, PolicyReject)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if !reflect.DeepEqual(schemaErr.Expected, Schema()) {
		t.Errorf("expected the canonical schema in the error, got %v", schemaErr.Expected)
	}
	if len(tbl.Rows) != 1 {
		t.Errorf("expected no rows to be touched")
	}
}

func TestUpsert_SchemaCompareIsCaseInsensitive(t *testing.T) {
	tbl := &Table{
		Headers: []string{" order ", "COMPONENT", "branch name", "Change request", "external DEPENDENCY"},
	}
	_, result, err := Upsert(tbl, Entry{Component: "svc-a"}, PolicyReject)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != ResultAdded {
		t.Errorf("expected added, got %s", result)
	}
}

func TestUpsert_KeyMatchTrimmedCaseInsensitive(t *testing.T) {
	tbl := canonical([]string{"0", " SVC-A ", "main", "", ""})

	_, _, err := Upsert(tbl, Entry{Component: "svc-a"}, PolicyReject)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Errorf("expected ConflictError for case-insensitive match, got %v", err)
	}
}

func TestUpsert_MergeUpdatesOnlyNonEmptyFields(t *testing.T) {
	tbl := canonical([]string{"4", "svc-a", "main", "CR-17", "payments team"})

	got, result, err := Upsert(tbl, Entry{Component: "svc-a", Branch: "release/2.0"}, PolicyMerge)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != ResultUpdated {
		t.Errorf("expected updated, got %s", result)
	}
	want := [][]string{{"4", "svc-a", "release/2.0", "CR-17", "payments team"}}
	if !reflect.DeepEqual(got.Rows, want) {
		t.Errorf("expected rows %v, got %v", want, got.Rows)
	}
	// The original is untouched.
	if tbl.Rows[0][colBranch] != "main" {
		t.Errorf("expected the input table to be unmodified")
	}
}

func TestUpsert_OrderFromNumericMax(t *testing.T) {
	tbl := canonical(
		[]string{"5", "svc-a", "", "", ""},
		[]string{"2", "svc-b", "", "", ""},
	)

	got, _, err := Upsert(tbl, Entry{Component: "svc-c"}, PolicyReject)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Rows[2][colOrder] != "6" {
		t.Errorf("expected order 6, got %q", got.Rows[2][colOrder])
	}
}

func TestUpsert_OrderFallbackToRowCount(t *testing.T) {
	tbl := canonical(
		[]string{"x", "svc-a", "", "", ""},
		[]string{"", "svc-b", "", "", ""},
		[]string{"n/a", "svc-c", "", "", ""},
	)

	got, _, err := Upsert(tbl, Entry{Component: "svc-d"}, PolicyReject)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Rows[3][colOrder] != "2" {
		t.Errorf("expected fallback order 2, got %q", got.Rows[3][colOrder])
	}
}

func TestUpsert_EntryFieldsTrimmed(t *testing.T) {
	got, _, err := Upsert(nil, Entry{
		Component:     "  svc-a  ",
		Branch:        " main ",
		ChangeRequest: "\tCR-1\n",
	}, PolicyReject)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"0", "svc-a", "main", "CR-1", ""}
	if !reflect.DeepEqual(got.Rows[0], want) {
		t.Errorf("expected %v, got %v", want, got.Rows[0])
	}
}

func TestParsePolicy(t *testing.T) {
	if p, err := ParsePolicy("merge"); err != nil || p != PolicyMerge {
		t.Errorf("expected merge, got %v (%v)", p, err)
	}
	if p, err := ParsePolicy(" Reject "); err != nil || p != PolicyReject {
		t.Errorf("expected reject, got %v (%v)", p, err)
	}
	if _, err := ParsePolicy("bogus"); err == nil {
		t.Errorf("expected an error for a bogus policy")
	}
}

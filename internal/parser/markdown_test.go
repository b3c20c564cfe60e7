package parser

import (
	"reflect"
	"strings"
	"testing"
)

func TestMarkdownParser_FirstTable(t *testing.T) {
	src := `# Release plan

Some prose before the table.

| Order | Component | Branch Name |
|-------|-----------|-------------|
| 0     | svc-a     | main        |
| 1     | svc-b     |             |

| Other | Table |
|-------|-------|
| x     | y     |
`
	got, err := (&MarkdownParser{}).Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected a table")
	}
	if want := []string{"Order", "Component", "Branch Name"}; !reflect.DeepEqual(got.Headers, want) {
		t.Errorf("expected headers %v, got %v", want, got.Headers)
	}
	want := [][]string{
		{"0", "svc-a", "main"},
		{"1", "svc-b", ""},
	}
	if !reflect.DeepEqual(got.Rows, want) {
		t.Errorf("expected rows %v, got %v", want, got.Rows)
	}
}

func TestMarkdownParser_NoTable(t *testing.T) {
	got, err := (&MarkdownParser{}).Parse(strings.NewReader("just some *prose*\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil table, got %+v", got)
	}
}

func TestMarkdownParser_InlineFormattingFlattened(t *testing.T) {
	src := "| A |\n|---|\n| **bold** text |\n"
	got, err := (&MarkdownParser{}).Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected a table")
	}
	if got.Rows[0][0] != "bold text" {
		t.Errorf("expected %q, got %q", "bold text", got.Rows[0][0])
	}
}

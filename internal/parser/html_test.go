package parser

import (
	"reflect"
	"strings"
	"testing"
)

func TestHTMLParser_TheadHeader(t *testing.T) {
	src := `<html><body>
<p>intro</p>
<table>
  <thead><tr><th>Order</th><th>Component</th></tr></thead>
  <tbody>
    <tr><td>0</td><td>svc-a</td></tr>
    <tr><td>1</td><td>svc-b</td></tr>
  </tbody>
</table>
</body></html>`

	got, err := (&HTMLParser{}).Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected a table")
	}
	if want := []string{"Order", "Component"}; !reflect.DeepEqual(got.Headers, want) {
		t.Errorf("expected headers %v, got %v", want, got.Headers)
	}
	want := [][]string{{"0", "svc-a"}, {"1", "svc-b"}}
	if !reflect.DeepEqual(got.Rows, want) {
		t.Errorf("expected rows %v, got %v", want, got.Rows)
	}
}

func TestHTMLParser_NoHeaderSynthesized(t *testing.T) {
	src := `<table><tr><td>a</td><td>b</td></tr></table>`

	got, err := (&HTMLParser{}).Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected a table")
	}
	if want := []string{"Col1", "Col2"}; !reflect.DeepEqual(got.Headers, want) {
		t.Errorf("expected synthesized headers %v, got %v", want, got.Headers)
	}
	if len(got.Rows) != 1 {
		t.Errorf("expected 1 data row, got %d", len(got.Rows))
	}
}

func TestHTMLParser_NoTable(t *testing.T) {
	got, err := (&HTMLParser{}).Parse(strings.NewReader("<p>no tables</p>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil table, got %+v", got)
	}
}

// Package render produces human-readable output for run summaries.
package render

import (
	"fmt"

	"github.com/fbiville/markdown-table-formatter/pkg/markdown"

	"github.com/dgallion1/tabsync/internal/table"
)

// Markdown renders the table as an aligned markdown table.
func Markdown(t *table.Table) (string, error) {
	out, err := markdown.NewTableFormatterBuilder().
		WithPrettyPrint().
		Build(t.Headers...).
		Format(t.Rows)
	if err != nil {
		return "", fmt.Errorf("format table: %w", err)
	}
	return out, nil
}

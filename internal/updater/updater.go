// Package updater runs the fetch, transform, write-back cycle for a single
// issue.
package updater

import (
	"context"
	"fmt"

	"github.com/dgallion1/tabsync/internal/adf"
	"github.com/dgallion1/tabsync/internal/render"
	"github.com/dgallion1/tabsync/internal/table"
)

// Client is the slice of the tracker API the updater needs.
type Client interface {
	FetchDescription(ctx context.Context, issueKey string) (any, error)
	UpdateDescription(ctx context.Context, issueKey string, doc any, dryRun bool) error
}

// Options control a single run. DryRun skips the write-back; the report is
// produced either way.
type Options struct {
	Policy table.Policy
	DryRun bool
}

// Report summarizes a successful run.
type Report struct {
	Result   string       // added | updated
	Splice   string       // replaced | appended | synthesized
	Table    *table.Table // the table as written back
	Markdown string       // rendered form of Table
}

// Run fetches the issue description, upserts the entry into its component
// table, splices the rebuilt table back, and writes the result. Precondition
// and policy failures (empty key, schema mismatch, duplicate component under
// the reject policy) surface as their typed errors from the table package
// with no write performed.
func Run(ctx context.Context, client Client, issueKey string, entry table.Entry, opts Options) (*Report, error) {
	raw, err := client.FetchDescription(ctx, issueKey)
	if err != nil {
		return nil, err
	}
	root := adf.Decode(raw)

	current, _ := table.Extract(root)
	updated, result, err := table.Upsert(current, entry, opts.Policy)
	if err != nil {
		return nil, err
	}

	newRoot, spliced := adf.Splice(root, table.Build(updated))
	if err := client.UpdateDescription(ctx, issueKey, newRoot.Encode(), opts.DryRun); err != nil {
		return nil, err
	}

	md, err := render.Markdown(updated)
	if err != nil {
		return nil, fmt.Errorf("render table: %w", err)
	}
	return &Report{
		Result:   result.String(),
		Splice:   spliced.String(),
		Table:    updated,
		Markdown: md,
	}, nil
}

// Current returns the component table presently embedded in the issue
// description, or nil when the description has no table.
func Current(ctx context.Context, client Client, issueKey string) (*table.Table, error) {
	raw, err := client.FetchDescription(ctx, issueKey)
	if err != nil {
		return nil, err
	}
	t, ok := table.Extract(adf.Decode(raw))
	if !ok {
		return nil, nil
	}
	return t, nil
}

// Package main provides the tabsync command line interface.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/dgallion1/tabsync/internal/adf"
	"github.com/dgallion1/tabsync/internal/config"
	"github.com/dgallion1/tabsync/internal/parser"
	"github.com/dgallion1/tabsync/internal/render"
	"github.com/dgallion1/tabsync/internal/table"
	"github.com/dgallion1/tabsync/internal/tracker"
	"github.com/dgallion1/tabsync/internal/updater"
)

var (
	component     string
	branch        string
	changeRequest string
	extDependency string
	policyName    string
	dryRun        bool
	dumpTree      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "tabsync",
		Short:         "Maintain the component table embedded in a tracker issue",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	upsertCmd := &cobra.Command{
		Use:   "upsert ISSUE-KEY",
		Short: "Insert or update a component row in the issue's table",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpsert,
	}
	upsertCmd.Flags().StringVar(&component, "component", "", "Component name (upsert key)")
	upsertCmd.Flags().StringVar(&branch, "branch", "", "Branch name")
	upsertCmd.Flags().StringVar(&changeRequest, "change-request", "", "Change request reference")
	upsertCmd.Flags().StringVar(&extDependency, "external-dependency", "", "External dependency note")
	upsertCmd.Flags().StringVar(&policyName, "policy", "", "Conflict policy: reject or merge (default from UPSERT_POLICY)")
	upsertCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Transform without writing back")
	upsertCmd.MarkFlagRequired("component")

	showCmd := &cobra.Command{
		Use:   "show ISSUE-KEY",
		Short: "Print the component table currently in the issue",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	showCmd.Flags().BoolVar(&dumpTree, "dump", false, "Dump the decoded document tree instead")

	inspectCmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Read a table from a local .md/.html/.csv file and print it normalized",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}

	rootCmd.AddCommand(upsertCmd, showCmd, inspectCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		var conflict *table.ConflictError
		if errors.As(err, &conflict) {
			fmt.Fprintf(os.Stderr, "conflicting row: %v\n", conflict.Row)
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newTrackerClient() (*tracker.Client, config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, cfg, err
	}
	return tracker.NewClient(cfg.TrackerBaseURL, cfg.TrackerEmail, cfg.TrackerAPIToken), cfg, nil
}

func runUpsert(cmd *cobra.Command, args []string) error {
	client, cfg, err := newTrackerClient()
	if err != nil {
		return err
	}
	defer client.Close()

	name := policyName
	if name == "" {
		name = cfg.UpsertPolicy
	}
	policy, err := table.ParsePolicy(name)
	if err != nil {
		return err
	}

	entry := table.Entry{
		Component:          component,
		Branch:             branch,
		ChangeRequest:      changeRequest,
		ExternalDependency: extDependency,
	}
	report, err := updater.Run(context.Background(), client, args[0], entry, updater.Options{
		Policy: policy,
		DryRun: dryRun,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n\n%s", report.Result, report.Splice, report.Markdown)
	if dryRun {
		fmt.Println("\ndry run: no changes written")
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	client, _, err := newTrackerClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := context.Background()
	if dumpTree {
		raw, err := client.FetchDescription(ctx, args[0])
		if err != nil {
			return err
		}
		spew.Dump(adf.Decode(raw))
		return nil
	}

	t, err := updater.Current(ctx, client, args[0])
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("issue %s has no component table", args[0])
	}
	return printTable(t)
}

func runInspect(cmd *cobra.Command, args []string) error {
	p, err := parser.ForFile(args[0])
	if err != nil {
		return err
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	t, err := p.Parse(f)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("no table found in %s", args[0])
	}
	return printTable(t)
}

func printTable(t *table.Table) error {
	md, err := render.Markdown(t)
	if err != nil {
		return err
	}
	fmt.Print(md)
	return nil
}

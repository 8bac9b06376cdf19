package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dconn.dev/folio/internal/models"
	"dconn.dev/folio/internal/render"
	"dconn.dev/folio/internal/services"
)

var listOpts struct {
	pinned bool
	format string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print projects in the order the grid shows them",
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := (&services.FileFetcher{Path: cfg.ProjectsPath()}).Fetch(cmd.Context())
		if err != nil {
			return err
		}

		mode := ""
		if listOpts.pinned {
			mode = render.FilterPinned
		}
		return writeProjects(os.Stdout, render.Arrange(projects, mode), listOpts.format)
	},
}

// listEntry is the flattened form printed by list
type listEntry struct {
	Name    string `json:"name" yaml:"name"`
	Slug    string `json:"slug" yaml:"slug"`
	Pinned  bool   `json:"pinned" yaml:"pinned"`
	Status  string `json:"status,omitempty" yaml:"status,omitempty"`
	Details string `json:"details_url" yaml:"details_url"`
}

func writeProjects(w io.Writer, projects []models.Project, format string) error {
	entries := make([]listEntry, len(projects))
	for i, p := range projects {
		entries[i] = listEntry{
			Name:    string(p.Name),
			Slug:    string(p.Slug),
			Pinned:  p.Pinned(),
			Status:  string(p.Status),
			Details: render.DetailHref(string(p.Slug)),
		}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSLUG\tPINNED\tSTATUS")
		for _, e := range entries {
			pinned := ""
			if e.Pinned {
				pinned = "yes"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Name, e.Slug, pinned, e.Status)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format %q: must be table, json or yaml", format)
	}
}

func init() {
	listCmd.Flags().BoolVar(&listOpts.pinned, "pinned", false, "Only pinned projects")
	listCmd.Flags().StringVarP(&listOpts.format, "format", "o", "table", "Output format: table, json, yaml")
	rootCmd.AddCommand(listCmd)
}

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atomicstack/tmux-overview/internal/format/table"
	"github.com/atomicstack/tmux-overview/internal/window"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const refreshTimeout = 15 * time.Second

func (c *cli) newListCommand() *cobra.Command {
	var (
		format     string
		refresh    bool
		thumbnails bool
	)
	cmd := &cobra.Command{
		Use:   "list [query...]",
		Short: "Print the known windows",
		Long: `Print the window list the overview would show. Without --refresh the
cached list is printed as-is; with it the list and previews are fetched
first. Any arguments are joined into a search query.`,
		Example: `  # cached windows as a table
  tmux-overview list

  # fresh list filtered by "nvim", as JSON
  tmux-overview list --refresh --format json nvim`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := c.openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()
			if refresh {
				ctx, cancel := context.WithTimeout(cmd.Context(), refreshTimeout)
				defer cancel()
				if err := rt.Refresh(ctx); err != nil {
					return err
				}
				if status := rt.Controller.Status(); status != "" {
					return fmt.Errorf("refresh failed: %s", status)
				}
			}
			rt.Controller.SetQuery(strings.Join(args, " "))
			records := window.Clone(rt.Controller.Overview().View())
			if !thumbnails && format != "table" {
				for i := range records {
					records[i].Thumbnail = ""
				}
			}
			return writeRecords(cmd.OutOrStdout(), format, records)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format (table, json or yaml)")
	cmd.Flags().BoolVarP(&refresh, "refresh", "r", false, "fetch the window list before printing")
	cmd.Flags().BoolVar(&thumbnails, "thumbnails", false, "include thumbnail payloads in json/yaml output")
	return cmd
}

func writeRecords(w io.Writer, format string, records []window.Record) error {
	if records == nil {
		records = []window.Record{}
	}
	switch format {
	case "json":
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "table":
		rows := make([][]string, 0, len(records))
		for _, rec := range records {
			preview := "no"
			if rec.HasThumbnail() {
				preview = "yes"
			}
			rows = append(rows, []string{rec.ID, rec.AppName, rec.DisplayTitle(), preview})
		}
		lines := table.Render([]table.Column{
			{Title: "ID"},
			{Title: "APP", Max: 24},
			{Title: "TITLE", Max: 60},
			{Title: "PREVIEW"},
		}, rows)
		_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
		return err
	default:
		return fmt.Errorf("unsupported format: %s (use table, json or yaml)", format)
	}
}

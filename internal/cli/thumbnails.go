package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atomicstack/tmux-overview/internal/thumbnail"
	"github.com/spf13/cobra"
)

func (c *cli) newThumbnailsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thumbnails",
		Short: "Work with window previews",
	}
	var (
		dir     string
		refresh bool
	)
	export := &cobra.Command{
		Use:   "export",
		Short: "Render every cached preview to a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			written := 0
			for _, rec := range rt.Registry.Records() {
				if !rec.HasThumbnail() {
					continue
				}
				path := filepath.Join(dir, thumbnailFileName(rec.ID))
				if err := writeThumbnail(path, rec.Thumbnail); err != nil {
					return err
				}
				written++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d thumbnails to %s\n", written, dir)
			return nil
		},
	}
	export.Flags().StringVarP(&dir, "dir", "d", "thumbnails", "output directory")
	export.Flags().BoolVarP(&refresh, "refresh", "r", false, "capture fresh previews first")
	cmd.AddCommand(export)
	return cmd
}

func writeThumbnail(path, payload string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := thumbnail.WritePNG(f, payload); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}

func thumbnailFileName(id string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
	return "window-" + clean + ".png"
}

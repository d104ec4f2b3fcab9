package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/hallforge/seatplan/pkg/errors"
	"github.com/hallforge/seatplan/pkg/layout"
	"github.com/hallforge/seatplan/pkg/render"
)

// exportCommand creates the export command writing a layout document to disk.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export [layout-id]",
		Short: "Export a layout document to a file",
		Long: `Export writes a layout with its saved positions folded into section
metadata. Without a layout id the last-edited layout is exported.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, st, err := c.openRepository(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			var (
				l  layout.Layout
				ok bool
			)
			if len(args) > 0 {
				if l, ok = repo.Layout(args[0]); !ok {
					return apperrors.New(apperrors.ErrCodeLayoutNotFound, "layout %q not found", args[0])
				}
			} else {
				if l, ok = repo.Active(); !ok {
					return apperrors.New(apperrors.ErrCodeNoActiveLayout, "no layout selected; pass a layout id")
				}
			}

			placements := layout.Hydrate(l.Sections)
			folded := layout.Fold(l, placements)

			path := output
			switch format {
			case "json":
				if path == "" {
					path = folded.ExportName() + ".json"
				}
				if err := writeJSONFile(path, folded); err != nil {
					return err
				}
			case "png":
				if path == "" {
					path = folded.ExportName() + ".png"
				}
				if err := writePNGFile(path, l, placements); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (json or png)", format)
			}

			printSuccess("Exported %s", StyleHighlight.Render(folded.ExportName()))
			printFile(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default derived from the layout name)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or png")
	return cmd
}

func writeJSONFile(path string, folded layout.Layout) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeExport, err, "create %s", path)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(folded); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeExport, err, "encode layout %q", folded.ID)
	}
	return nil
}

func writePNGFile(path string, l layout.Layout, placements *layout.Placements) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeExport, err, "create %s", path)
	}
	defer f.Close()

	if err := render.WritePNG(f, l, placements, render.Options{}); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeExport, err, "render layout %q", l.ID)
	}
	return nil
}

package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	apperrors "github.com/hallforge/seatplan/pkg/errors"
)

// editCommand creates the edit command that opens the interactive editor.
func (c *CLI) editCommand() *cobra.Command {
	var layoutID string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive layout editor",
		Long: `Edit opens a full-screen canvas where sections are dragged with the
mouse, rotated, zoomed, and saved back to the store. Without --layout the
last-edited layout opens, or a picker when there is none.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, st, err := c.openRepository(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			m := newEditorModel(ctx, repo)
			if layoutID != "" {
				m.enterLayout(layoutID)
				if m.view != viewCanvas {
					return apperrors.New(apperrors.ErrCodeLayoutNotFound, "layout %q not found", layoutID)
				}
			}

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&layoutID, "layout", "l", "", "layout id to open directly")
	return cmd
}

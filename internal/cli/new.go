package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hallforge/seatplan/pkg/layout"
)

// newCommand creates the new command that scaffolds a layout.
func (c *CLI) newCommand() *cobra.Command {
	var (
		rows         int
		cols         int
		sectionTitle string
	)

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a layout with one rectangular section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, st, err := c.openRepository(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			l := newLayout(args[0], sectionTitle, rows, cols)
			if err := repo.Add(ctx, l); err != nil {
				return err
			}

			printSuccess("Created layout %s", StyleHighlight.Render(args[0]))
			printDetail("id: %s", l.ID)
			printNextStep("Open the editor", "seatplan edit --layout "+l.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 5, "seat rows in the initial section")
	cmd.Flags().IntVar(&cols, "cols", 8, "seats per row in the initial section")
	cmd.Flags().StringVar(&sectionTitle, "section", "Main", "title of the initial section")
	return cmd
}

// newLayout builds a layout with a single fully-seated section. Seats are
// labeled rowLetter+number, e.g. A1..A8 in the first row.
func newLayout(name, sectionTitle string, rows, cols int) layout.Layout {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}

	grid := make([]layout.Row, rows)
	labels := make([]string, rows)
	for r := 0; r < rows; r++ {
		label := rowLabel(r)
		labels[r] = label
		row := make(layout.Row, cols)
		for col := 0; col < cols; col++ {
			row[col] = layout.SeatID(fmt.Sprintf("%s%d", label, col+1))
		}
		grid[r] = row
	}

	return layout.Layout{
		ID:   uuid.NewString(),
		Name: name,
		Sections: []layout.Section{{
			ID:        uuid.NewString(),
			Title:     sectionTitle,
			Grid:      grid,
			RowLabels: labels,
		}},
	}
}

// rowLabel yields spreadsheet-style row letters: A..Z, AA, AB, ...
func rowLabel(i int) string {
	label := ""
	for i >= 0 {
		label = string(rune('A'+i%26)) + label
		i = i/26 - 1
	}
	return label
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hallforge/seatplan/pkg/layout"
)

// listCommand creates the list command showing the stored layout collection.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored layouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, st, err := c.openRepository(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			layouts := repo.Layouts()
			if len(layouts) == 0 {
				printInfo("No layouts stored")
				printNextStep("Create one", "seatplan new <name>")
				return nil
			}

			active, _ := repo.Active()
			for _, l := range layouts {
				marker := "  "
				if l.ID == active.ID {
					marker = StyleHighlight.Render("▸ ")
				}
				name := l.Name
				if name == "" {
					name = l.ID
				}
				fmt.Println(marker + StyleValue.Render(name) + " " +
					StyleDim.Render(fmt.Sprintf("(%d sections, %d seats)", len(l.Sections), countSeats(l))))
				printDetail("id: %s", l.ID)
			}
			return nil
		},
	}
}

// countSeats tallies real seats across all sections, skipping gap cells.
func countSeats(l layout.Layout) int {
	n := 0
	for _, sec := range l.Sections {
		for _, row := range sec.Grid {
			for _, seat := range row {
				if !seat.IsGap() {
					n++
				}
			}
		}
	}
	return n
}

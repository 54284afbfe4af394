/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/venuedb/pkg/grid"
	"github.com/ssargent/venuedb/pkg/venue"
)

func newPlanCmd() *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage venue seating plans",
		Long: `Manage venue seating plans.

Rows are addressed by letter (A, B, ... Z, AA) and columns by number
starting at 1.`,
	}
	planCmd.AddCommand(
		newPlanInitCmd(),
		newPlanStandardCmd(),
		newPlanShowCmd(),
		newPlanRowCmd(),
		newPlanCellCmd(),
	)
	return planCmd
}

func newPlanInitCmd() *cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init <venue-id>",
		Short: "Set the seating plan dimensions",
		Long: `Set the seating plan dimensions of a venue. Existing seats keep their
place when it still fits and are removed from the grid otherwise.

Example:
  venuedb plan init 1 --rows 10 --cols 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			venueStore, err := storeFrom(cmd)
			if err != nil {
				return err
			}
			id, err := parseVenueID(args[0])
			if err != nil {
				return err
			}
			rows, _ := cmd.Flags().GetInt32("rows")
			cols, _ := cmd.Flags().GetInt32("cols")

			if err := venueStore.InitializeSeatingPlan(id, rows, cols); err != nil {
				return err
			}
			printf(cmd, "Venue %d has a %d x %d seating plan\n", id, rows, cols)
			return nil
		},
	}
	initCmd.Flags().Int32("rows", 0, "Number of rows")
	initCmd.Flags().Int32("cols", 0, "Number of columns")
	_ = initCmd.MarkFlagRequired("rows")
	_ = initCmd.MarkFlagRequired("cols")
	return initCmd
}

func newPlanStandardCmd() *cobra.Command {
	standardCmd := &cobra.Command{
		Use:   "standard <venue-id>",
		Short: "Fill every empty cell with an available seat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			venueStore, err := storeFrom(cmd)
			if err != nil {
				return err
			}
			id, err := parseVenueID(args[0])
			if err != nil {
				return err
			}
			seatType, _ := cmd.Flags().GetString("type")

			seats, err := venueStore.CreateStandardSeats(id, seatType)
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return outputSeats(cmd, seats)
			}
			printf(cmd, "Created %d seats in venue %d\n", len(seats), id)
			return nil
		},
	}
	standardCmd.Flags().String("type", "standard", "Seat type of the new seats")
	return standardCmd
}

func newPlanShowCmd() *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show <venue-id>",
		Short: "Render the seating plan",
		Long: `Render the seating plan. Each cell shows [A] available, [S] reserved,
[C] checked in or [X] unavailable. Cells without a seat show --.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			venueStore, err := storeFrom(cmd)
			if err != nil {
				return err
			}
			id, err := parseVenueID(args[0])
			if err != nil {
				return err
			}
			rt, err := sessionFrom(cmd)
			if err != nil {
				return err
			}

			useColor := rt.cfg.Render.Color
			if cmd.Flags().Changed("color") {
				useColor, _ = cmd.Flags().GetBool("color")
			}

			plan, err := venueStore.RenderSeatingPlan(id, grid.RenderOptions{Color: useColor})
			if err != nil {
				return err
			}
			printf(cmd, "%s", plan)
			return nil
		},
	}
	showCmd.Flags().Bool("color", false, "Color the seat glyphs")
	return showCmd
}

func newPlanRowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "row <venue-id> <row>",
		Short: "List the seats of a row",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			venueStore, err := storeFrom(cmd)
			if err != nil {
				return err
			}
			id, err := parseVenueID(args[0])
			if err != nil {
				return err
			}
			row, ok := grid.ParseRowLabel(args[1])
			if !ok {
				return fmt.Errorf("invalid row %q", args[1])
			}
			return outputSeats(cmd, venueStore.RowSeats(id, row))
		},
	}
}

func newPlanCellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cell <venue-id> <row> <col>",
		Short: "Show the seat at a grid position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			venueStore, err := storeFrom(cmd)
			if err != nil {
				return err
			}
			id, err := parseVenueID(args[0])
			if err != nil {
				return err
			}
			row, col, err := parsePosition(args[1], args[2])
			if err != nil {
				return err
			}

			seat, ok := venueStore.SeatAt(id, row, col)
			if !ok {
				printf(cmd, "No seat at %s%s\n", args[1], args[2])
				return nil
			}
			return outputSeats(cmd, []*venue.Seat{seat})
		},
	}
}

func parsePosition(rowArg, colArg string) (row, col int, err error) {
	row, ok := grid.ParseRowLabel(rowArg)
	if !ok {
		return 0, 0, fmt.Errorf("invalid row %q", rowArg)
	}
	col, ok = grid.ParseColLabel(colArg)
	if !ok {
		return 0, 0, fmt.Errorf("invalid column %q", colArg)
	}
	return row, col, nil
}

/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/ssargent/venuedb/pkg/store"
	"github.com/ssargent/venuedb/pkg/venue"
)

func newSeatCmd() *cobra.Command {
	seatCmd := &cobra.Command{
		Use:   "seat",
		Short: "Manage seats and reservations",
	}
	seatCmd.AddCommand(
		newSeatAddCmd(),
		newSeatListCmd(),
		newSeatRemoveCmd(),
		newSeatStatusCmd(),
		newSeatAdjacentCmd(),
		newSeatReserveCmd(),
	)
	return seatCmd
}

func newSeatAddCmd() *cobra.Command {
	addCmd := &cobra.Command{
		Use:   "add <venue-id>",
		Short: "Add a seat",
		Long: `Add a seat. When the venue has a seating plan and --row and --col name
a cell inside it, the seat is placed there and the cell must be empty.
Otherwise the seat is stored with its labels but stays off the grid.

Example:
  venuedb seat add 1 --type vip --row B --col 3`,
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
			v, ok := venueStore.GetVenueByID(id)
			if !ok {
				return store.ErrVenueNotFound
			}

			flags := cmd.Flags()
			seatType, _ := flags.GetString("type")
			rowLabel, _ := flags.GetString("row")
			colLabel, _ := flags.GetString("col")

			var seat *venue.Seat
			row, col, posErr := parsePosition(rowLabel, colLabel)
			if v.HasPlan() && posErr == nil && row < int(v.Rows) && col < int(v.Columns) {
				seat, err = venueStore.AddSeatAt(id, seatType, row, col)
			} else {
				seat, err = venueStore.AddSeat(id, store.SeatInput{
					SeatType: seatType,
					RowLabel: rowLabel,
					ColLabel: colLabel,
				})
			}
			if err != nil {
				return err
			}
			return outputSeats(cmd, []*venue.Seat{seat})
		},
	}
	addCmd.Flags().String("type", "standard", "Seat type")
	addCmd.Flags().String("row", "", "Row label")
	addCmd.Flags().String("col", "", "Column label")
	return addCmd
}

func newSeatListCmd() *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list <venue-id>",
		Short: "List the seats of a venue",
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
			v, ok := venueStore.GetVenueByID(id)
			if !ok {
				return store.ErrVenueNotFound
			}

			seats := v.Seats
			if cmd.Flags().Changed("status") {
				name, _ := cmd.Flags().GetString("status")
				status, err := venue.ParseSeatStatus(name)
				if err != nil {
					return err
				}
				seats = make([]*venue.Seat, 0, len(v.Seats))
				for _, seat := range v.Seats {
					if seat.Status == status {
						seats = append(seats, seat)
					}
				}
			}
			return outputSeats(cmd, seats)
		},
	}
	listCmd.Flags().String("status", "", "Only list seats in this status")
	return listCmd
}

func newSeatRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <venue-id> <seat-id>",
		Short: "Remove a seat",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			venueStore, err := storeFrom(cmd)
			if err != nil {
				return err
			}
			id, seatID, err := parseSeatArgs(args)
			if err != nil {
				return err
			}
			if err := venueStore.RemoveSeat(id, seatID); err != nil {
				return err
			}
			printf(cmd, "Removed seat %d from venue %d\n", seatID, id)
			return nil
		},
	}
}

func newSeatStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <venue-id> <seat-id> <status>",
		Short: "Change the status of a seat",
		Long: `Change the status of a seat. Allowed transitions:

  available -> reserved, cancelled, expired
  reserved  -> checked_in, expired

Nothing moves back to available.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			venueStore, err := storeFrom(cmd)
			if err != nil {
				return err
			}
			id, seatID, err := parseSeatArgs(args[:2])
			if err != nil {
				return err
			}
			status, err := venue.ParseSeatStatus(args[2])
			if err != nil {
				return err
			}
			if err := venueStore.UpdateSeatStatus(id, seatID, status); err != nil {
				return err
			}
			printf(cmd, "Seat %d is now %s\n", seatID, status)
			return nil
		},
	}
}

func newSeatAdjacentCmd() *cobra.Command {
	adjacentCmd := &cobra.Command{
		Use:   "adjacent <venue-id>",
		Short: "Find blocks of adjacent available seats",
		Long: `Find every run of --size adjacent available seats within a row.
Overlapping blocks are all reported.`,
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
			if _, ok := venueStore.GetVenueByID(id); !ok {
				return store.ErrVenueNotFound
			}
			size, _ := cmd.Flags().GetInt("size")

			blocks := venueStore.FindAdjacentSeats(id, size)
			if jsonOutput(cmd) {
				return outputJSON(cmd.OutOrStdout(), blocks)
			}
			if len(blocks) == 0 {
				printf(cmd, "No blocks of %d adjacent seats\n", size)
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintln(w, "ROW\tFROM\tTO\tSEAT IDS")
			for _, block := range blocks {
				first, last := block[0], block[len(block)-1]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", first.RowLabel, first.ColLabel, last.ColLabel, formatSeatIDs(block))
			}
			return nil
		},
	}
	adjacentCmd.Flags().IntP("size", "n", 2, "Number of adjacent seats")
	return adjacentCmd
}

func newSeatReserveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reserve <venue-id> <seat-id>...",
		Short: "Reserve a block of seats",
		Long: `Reserve a block of seats. Either every seat is reserved or, when any of
them is unknown or not available, none is.

Example:
  venuedb seat reserve 1 4 5 6`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			venueStore, err := storeFrom(cmd)
			if err != nil {
				return err
			}
			id, err := parseVenueID(args[0])
			if err != nil {
				return err
			}
			seatIDs := make([]int32, 0, len(args)-1)
			for _, arg := range args[1:] {
				seatID, err := parseVenueID(arg)
				if err != nil {
					return err
				}
				seatIDs = append(seatIDs, seatID)
			}

			if err := venueStore.ReserveSeatBlock(id, seatIDs); err != nil {
				return err
			}
			printf(cmd, "Reserved %d seats in venue %d\n", len(seatIDs), id)
			return nil
		},
	}
}

func parseSeatArgs(args []string) (id, seatID int32, err error) {
	if id, err = parseVenueID(args[0]); err != nil {
		return 0, 0, err
	}
	if seatID, err = parseVenueID(args[1]); err != nil {
		return 0, 0, err
	}
	return id, seatID, nil
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/ssargent/venuedb/pkg/venue"
)

func jsonOutput(cmd *cobra.Command) bool {
	format, _ := cmd.Flags().GetString("output")
	return format == "json"
}

func outputJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// outputVenue displays a single venue
func outputVenue(cmd *cobra.Command, v *venue.Venue) error {
	if jsonOutput(cmd) {
		return outputJSON(cmd.OutOrStdout(), v)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "ID:\t%d\n", v.ID)
	fmt.Fprintf(w, "Name:\t%s\n", v.Name)
	fmt.Fprintf(w, "Address:\t%s\n", formatAddress(v))
	fmt.Fprintf(w, "Capacity:\t%d\n", v.Capacity)
	if v.Description != "" {
		fmt.Fprintf(w, "Description:\t%s\n", v.Description)
	}
	if v.Contact != "" {
		fmt.Fprintf(w, "Contact:\t%s\n", v.Contact)
	}
	if v.Seatmap != "" {
		fmt.Fprintf(w, "Seatmap:\t%s\n", v.Seatmap)
	}
	if v.HasPlan() {
		fmt.Fprintf(w, "Plan:\t%d x %d\n", v.Rows, v.Columns)
	}
	fmt.Fprintf(w, "Seats:\t%d\n", len(v.Seats))
	return nil
}

// outputVenues displays multiple venues
func outputVenues(cmd *cobra.Command, venues []*venue.Venue) error {
	if jsonOutput(cmd) {
		return outputJSON(cmd.OutOrStdout(), venues)
	}
	if len(venues) == 0 {
		printf(cmd, "No venues found\n")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tNAME\tCITY\tCAPACITY\tSEATS")
	for _, v := range venues {
		name := v.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n", v.ID, name, v.City, v.Capacity, len(v.Seats))
	}
	return nil
}

// outputSeats displays seats in table format
func outputSeats(cmd *cobra.Command, seats []*venue.Seat) error {
	if jsonOutput(cmd) {
		return outputJSON(cmd.OutOrStdout(), seats)
	}
	if len(seats) == 0 {
		printf(cmd, "No seats found\n")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tSEAT\tTYPE\tSTATUS")
	for _, seat := range seats {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", seat.ID, seat.Label(), seat.SeatType, seat.Status)
	}
	return nil
}

func formatAddress(v *venue.Venue) string {
	parts := make([]string, 0, 5)
	for _, part := range []string{v.Address, v.City, v.State, v.Zip, v.Country} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

func formatSeatIDs(seats []*venue.Seat) string {
	ids := make([]string, len(seats))
	for i, seat := range seats {
		ids[i] = fmt.Sprint(seat.ID)
	}
	return strings.Join(ids, ",")
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/ssargent/venuedb/pkg/venue"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show store statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			venueStore, err := storeFrom(cmd)
			if err != nil {
				return err
			}
			stats := venueStore.Stats()
			if jsonOutput(cmd) {
				return outputJSON(cmd.OutOrStdout(), stats)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintf(w, "Venues:\t%d\n", stats.Venues)
			fmt.Fprintf(w, "Seats:\t%d\n", stats.Seats)
			fmt.Fprintf(w, "On grid:\t%d\n", stats.GriddedSeats)
			for status := venue.StatusAvailable; status <= venue.StatusExpired; status++ {
				fmt.Fprintf(w, "  %s:\t%d\n", status, stats.ByStatus[status])
			}
			fmt.Fprintf(w, "Data file:\t%d bytes\n", stats.DataBytes)
			return nil
		},
	}
}

/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
)

func newSnapshotCmd() *cobra.Command {
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Archive and restore the venue collection",
		Long: `Archive and restore the venue collection. Snapshots must be enabled
in the configuration (snapshots.enabled) and are kept in a Pebble
database under the data directory.`,
	}
	snapshotCmd.AddCommand(
		newSnapshotCreateCmd(),
		newSnapshotListCmd(),
		newSnapshotRestoreCmd(),
	)
	return snapshotCmd
}

func newSnapshotCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Archive the current collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			venueStore, err := storeFrom(cmd)
			if err != nil {
				return err
			}
			id, err := venueStore.Snapshot()
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", id)
			return nil
		},
	}
}

func newSnapshotListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List snapshots, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			venueStore, err := storeFrom(cmd)
			if err != nil {
				return err
			}
			snapshots, err := venueStore.ListSnapshots()
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return outputJSON(cmd.OutOrStdout(), snapshots)
			}
			if len(snapshots) == 0 {
				printf(cmd, "No snapshots found\n")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintln(w, "ID\tCREATED\tBYTES")
			for _, snapshot := range snapshots {
				fmt.Fprintf(w, "%s\t%s\t%d\n", snapshot.ID, snapshot.CreatedAt.Format(time.RFC3339), snapshot.Size)
			}
			return nil
		},
	}
}

func newSnapshotRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <snapshot-id>",
		Short: "Replace the collection with a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			venueStore, err := storeFrom(cmd)
			if err != nil {
				return err
			}
			id, err := ksuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid snapshot id %q: %w", args[0], err)
			}
			result, err := venueStore.RestoreSnapshot(id)
			if err != nil {
				return err
			}
			printf(cmd, "Restored %d venues and %d seats from %s\n", result.Venues, result.Seats, id)
			return nil
		},
	}
}

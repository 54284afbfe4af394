/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/ssargent/venuedb/pkg/store"
	"github.com/ssargent/venuedb/pkg/venue"
)

func newVenueCmd() *cobra.Command {
	venueCmd := &cobra.Command{
		Use:   "venue",
		Short: "Manage venues",
	}
	venueCmd.AddCommand(
		newVenueCreateCmd(),
		newVenueGetCmd(),
		newVenueListCmd(),
		newVenueUpdateCmd(),
		newVenueDeleteCmd(),
	)
	return venueCmd
}

// addVenueFlags registers the editable venue fields
func addVenueFlags(flags *pflag.FlagSet) {
	flags.String("name", "", "Venue name")
	flags.String("address", "", "Street address")
	flags.String("city", "", "City")
	flags.String("state", "", "State or region")
	flags.String("zip", "", "Postal code")
	flags.String("country", "", "Country")
	flags.Int32("capacity", 0, "Maximum occupancy")
	flags.String("description", "", "Free-form description")
	flags.String("contact", "", "Contact details")
	flags.String("seatmap", "", "Seat map reference")
}

func newVenueCreateCmd() *cobra.Command {
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a venue",
		Long: `Create a venue. The new venue gets the next free id.

Example:
  venuedb venue create --name "Main Hall" --city Springfield --capacity 300`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			venueStore, err := storeFrom(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			input := store.VenueInput{}
			input.Name, _ = flags.GetString("name")
			input.Address, _ = flags.GetString("address")
			input.City, _ = flags.GetString("city")
			input.State, _ = flags.GetString("state")
			input.Zip, _ = flags.GetString("zip")
			input.Country, _ = flags.GetString("country")
			input.Capacity, _ = flags.GetInt32("capacity")
			input.Description, _ = flags.GetString("description")
			input.Contact, _ = flags.GetString("contact")
			input.Seatmap, _ = flags.GetString("seatmap")

			v, err := venueStore.CreateVenue(input)
			if err != nil {
				return err
			}
			return outputVenue(cmd, v)
		},
	}
	addVenueFlags(createCmd.Flags())
	_ = createCmd.MarkFlagRequired("name")
	return createCmd
}

func newVenueGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a venue",
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
			return outputVenue(cmd, v)
		},
	}
}

func newVenueListCmd() *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List venues",
		Long: `List venues in id order, or filter them.

Filters are applied in this order of precedence: --name, --city,
--max-capacity (with --min-capacity as the lower bound), --min-capacity.
Capacity filters return venues ordered by capacity.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			venueStore, err := storeFrom(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			name, _ := flags.GetString("name")
			city, _ := flags.GetString("city")
			minCapacity, _ := flags.GetInt32("min-capacity")
			maxCapacity, _ := flags.GetInt32("max-capacity")

			var venues []*venue.Venue
			switch {
			case flags.Changed("name"):
				venues = venueStore.FindByName(name)
			case flags.Changed("city"):
				venues = venueStore.FindByCity(city)
			case flags.Changed("max-capacity"):
				venues = venueStore.FindByCapacityRange(minCapacity, maxCapacity)
			case flags.Changed("min-capacity"):
				venues = venueStore.FindByCapacity(minCapacity)
			default:
				venues = venueStore.ListVenues()
			}
			return outputVenues(cmd, venues)
		},
	}
	listCmd.Flags().String("name", "", "Name substring, case-insensitive")
	listCmd.Flags().String("city", "", "City, case-insensitive")
	listCmd.Flags().Int32("min-capacity", 0, "Minimum capacity")
	listCmd.Flags().Int32("max-capacity", 0, "Maximum capacity")
	return listCmd
}

func newVenueUpdateCmd() *cobra.Command {
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update venue fields",
		Long: `Update venue fields. Only the flags given on the command line are
changed, so --description "" clears the description.`,
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

			flags := cmd.Flags()
			update := store.VenueUpdate{
				Name:        changedString(flags, "name"),
				Address:     changedString(flags, "address"),
				City:        changedString(flags, "city"),
				State:       changedString(flags, "state"),
				Zip:         changedString(flags, "zip"),
				Country:     changedString(flags, "country"),
				Description: changedString(flags, "description"),
				Contact:     changedString(flags, "contact"),
				Seatmap:     changedString(flags, "seatmap"),
			}
			if flags.Changed("capacity") {
				capacity, _ := flags.GetInt32("capacity")
				update.Capacity = &capacity
			}

			if err := venueStore.UpdateVenue(id, update); err != nil {
				return err
			}
			v, _ := venueStore.GetVenueByID(id)
			return outputVenue(cmd, v)
		},
	}
	addVenueFlags(updateCmd.Flags())
	return updateCmd
}

func changedString(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	value, _ := flags.GetString(name)
	return &value
}

func newVenueDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a venue and its seats",
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
			if err := venueStore.DeleteVenue(id); err != nil {
				return err
			}
			printf(cmd, "Deleted venue %d\n", id)
			return nil
		},
	}
}

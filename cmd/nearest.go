package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"citymap.dev/arrivals"
	"citymap.dev/arrivals/model"
)

var nearestCmd = &cobra.Command{
	Use:   "nearest <lat> <lng>",
	Short: "Finds the station closest to a geographical location",
	Args:  cobra.ExactArgs(2),
	RunE:  nearest,
}

func init() {
	rootCmd.AddCommand(nearestCmd)
}

func nearest(cmd *cobra.Command, args []string) error {
	lat, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid lat: %w", err)
	}
	lng, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid lng: %w", err)
	}

	snap, err := loadSnapshot()
	if err != nil {
		return err
	}

	locator := arrivals.NewLocator(snap)
	station, distance, err := locator.Nearest(model.GeographicalLocation{Latitude: lat, Longitude: lng})
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s (%.2f km away)\n", station.StationCode, station.Name, distance)

	return nil
}

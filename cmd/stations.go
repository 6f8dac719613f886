package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "Lists the stations in a snapshot",
	Args:  cobra.NoArgs,
	RunE:  stations,
}

func init() {
	rootCmd.AddCommand(stationsCmd)
}

func stations(cmd *cobra.Command, args []string) error {
	snap, err := loadSnapshot()
	if err != nil {
		return err
	}

	sorted := make([]int, len(snap.Stations))
	for i := range sorted {
		sorted[i] = i
	}
	sort.Slice(sorted, func(i, j int) bool {
		return snap.Stations[sorted[i]].Name < snap.Stations[sorted[j]].Name
	})

	for _, i := range sorted {
		station := snap.Stations[i]
		fmt.Printf("%s: %s (%.5f, %.5f)\n",
			station.StationCode,
			station.Name,
			station.Location.Latitude,
			station.Location.Longitude,
		)
	}

	return nil
}

package main

import (
	"os"

	"github.com/spf13/cobra"

	"citymap.dev/arrivals"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exports a snapshot's full-day arrival log as CSV",
	Args:  cobra.NoArgs,
	RunE:  export,
}

var exportOut string

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")
	exportCmd.Flags().BoolVarP(&skipGarage, "skip-garage", "", false, "Skip trips terminating at a garage")
	rootCmd.AddCommand(exportCmd)
}

func export(cmd *cobra.Command, args []string) error {
	snap, err := loadSnapshot()
	if err != nil {
		return err
	}

	sets := arrivals.DayArrivals(snap, arrivals.PlaybackOptions{
		ExcludeGarageTrips: skipGarage,
	})

	out := os.Stdout
	if exportOut != "" {
		out, err = os.Create(exportOut)
		if err != nil {
			return err
		}
		defer out.Close()
	}

	return arrivals.WriteArrivalLog(out, sets)
}

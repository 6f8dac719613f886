package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"citymap.dev/arrivals"
	"citymap.dev/arrivals/model"
	"citymap.dev/arrivals/snapshot"
	"citymap.dev/arrivals/storage"
)

var rootCmd = &cobra.Command{
	Use:          "arrivals",
	Short:        "Bus arrival playback tool",
	Long:         "Records station snapshots and replays their scheduled arrivals",
	SilenceUsage: true,
}

var (
	apiURL       string
	snapshotFile string
	storageDir   string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&apiURL, "api-url", "", "https://data.lpp.si/api/", "Base URL of the bus API")
	rootCmd.PersistentFlags().StringVarP(&snapshotFile, "snapshot", "s", "", "Snapshot JSON file (bypasses storage)")
	rootCmd.PersistentFlags().StringVarP(&storageDir, "storage-dir", "", ".", "Directory holding the snapshot archive")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func openStorage() (storage.Storage, error) {
	return storage.NewSQLiteStorage(storage.SQLiteConfig{OnDisk: true, Directory: storageDir})
}

// Loads a snapshot from the --snapshot file when given, otherwise the
// most recent one in the archive.
func loadSnapshot() (*model.AllStationsSnapshot, error) {
	if snapshotFile != "" {
		buf, err := os.ReadFile(snapshotFile)
		if err != nil {
			return nil, fmt.Errorf("reading snapshot file: %w", err)
		}
		return snapshot.Parse(buf)
	}

	s, err := openStorage()
	if err != nil {
		return nil, err
	}

	manager := arrivals.NewManager(s, nil)
	return manager.LoadSnapshot(time.Now())
}

func parseTimeOfDay(s string) (arrivals.TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return arrivals.TimeOfDay{}, fmt.Errorf("'%s' is not on form <hour>:<minute>", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return arrivals.TimeOfDay{}, fmt.Errorf("invalid hour: %w", err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return arrivals.TimeOfDay{}, fmt.Errorf("invalid minute: %w", err)
	}
	return arrivals.NewTimeOfDay(hour, float64(minute)), nil
}

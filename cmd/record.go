package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"citymap.dev/arrivals"
	"citymap.dev/arrivals/downloader"
	"citymap.dev/arrivals/lpp"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Captures a station snapshot from the API into the archive",
	Args:  cobra.NoArgs,
	RunE:  record,
}

var (
	concurrency int
	cacheFile   string
	cacheTTL    time.Duration
)

func init() {
	recordCmd.Flags().IntVarP(&concurrency, "concurrency", "c", lpp.DefaultConcurrency, "Concurrent timetable fetches")
	recordCmd.Flags().StringVarP(&cacheFile, "cache-file", "", "", "Cache API responses in this file")
	recordCmd.Flags().DurationVarP(&cacheTTL, "cache-ttl", "", 12*time.Hour, "How long cached API responses stay fresh")
	rootCmd.AddCommand(recordCmd)
}

func record(cmd *cobra.Command, args []string) error {
	s, err := openStorage()
	if err != nil {
		return err
	}

	client := lpp.NewClient(apiURL)
	client.Concurrency = concurrency

	if cacheFile != "" {
		fs, err := downloader.NewFilesystem(cacheFile)
		if err != nil {
			return err
		}
		client.Downloader = fs
		client.CacheTTL = cacheTTL
	}

	manager := arrivals.NewManager(s, client)

	metadata, err := manager.Record(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("captured %d stations at %s (%s)\n",
		metadata.StationCount,
		metadata.CapturedAt.Format("2006-01-02 15:04:05"),
		metadata.SHA256[:12],
	)

	return nil
}

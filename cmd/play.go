package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"citymap.dev/arrivals"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Replays a snapshot's scheduled arrivals in simulated time",
	Args:  cobra.NoArgs,
	RunE:  play,
}

var (
	startAt       string
	secondsPerMin float64
	fastForward   float64
	playFor       time.Duration
	skipGarage    bool
)

func init() {
	playCmd.Flags().StringVarP(&startAt, "start", "t", "5:00", "Simulated time to start at (hour:minute)")
	playCmd.Flags().Float64VarP(&secondsPerMin, "ratio", "r", 1.0, "Real seconds per simulated minute")
	playCmd.Flags().Float64VarP(&fastForward, "fast-forward", "f", 1.0, "Speed multiplier")
	playCmd.Flags().DurationVarP(&playFor, "for", "", 0, "Stop after this much real time (0 = run forever)")
	playCmd.Flags().BoolVarP(&skipGarage, "skip-garage", "", false, "Skip trips terminating at a garage")
	rootCmd.AddCommand(playCmd)
}

// One playback run: the engine, the speed settings, and the frame
// loop driving it. Mutable playback state lives here rather than in
// package variables.
type session struct {
	playback      *arrivals.Playback
	secondsPerMin float64
	fastForward   float64
}

func (s *session) run(stop <-chan struct{}) {
	const frameInterval = 100 * time.Millisecond

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			elapsed := now.Sub(last).Seconds()
			last = now

			delta := elapsed / s.secondsPerMin * s.fastForward
			for _, set := range s.playback.Tick(delta) {
				for _, arrival := range set.Arrivals {
					fmt.Printf("%s  %-6s %s  (%.5f, %.5f)\n",
						set.Time,
						arrival.Route,
						arrival.TripName,
						arrival.Location.Latitude,
						arrival.Location.Longitude,
					)
				}
			}
		}
	}
}

func play(cmd *cobra.Command, args []string) error {
	snap, err := loadSnapshot()
	if err != nil {
		return err
	}

	initial, err := parseTimeOfDay(startAt)
	if err != nil {
		return fmt.Errorf("invalid start time: %w", err)
	}

	playback := arrivals.NewPlaybackWithOptions(snap, initial, arrivals.PlaybackOptions{
		ExcludeGarageTrips: skipGarage,
	})

	stop := make(chan struct{})
	if playFor > 0 {
		time.AfterFunc(playFor, func() { close(stop) })
	}

	sess := &session{
		playback:      playback,
		secondsPerMin: secondsPerMin,
		fastForward:   fastForward,
	}
	sess.run(stop)

	return nil
}

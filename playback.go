package arrivals

import (
	"citymap.dev/arrivals/model"
)

// PlaybackOptions tweaks how the arrival index is built.
type PlaybackOptions struct {
	// Skip trips that terminate at a garage (non-passenger-carrying).
	ExcludeGarageTrips bool
}

// Playback replays a snapshot's scheduled arrivals against a
// simulated clock. A rendering loop calls Tick once per frame with
// the elapsed simulated minutes; Tick returns every ArrivalSet that
// came due within that interval.
//
// Playback is not safe for concurrent use: it is meant to be owned
// and driven by a single frame loop.
type Playback struct {
	snapshot *model.AllStationsSnapshot
	clock    TimeOfDay

	// Full day's arrival sets, sorted ascending. The queue is the
	// not-yet-due suffix of a generation cycle; it always holds
	// sets strictly after the clock value at (re)generation.
	index []ArrivalSet
	queue []ArrivalSet
}

func NewPlayback(snapshot *model.AllStationsSnapshot, initial TimeOfDay) *Playback {
	return NewPlaybackWithOptions(snapshot, initial, PlaybackOptions{})
}

func NewPlaybackWithOptions(snapshot *model.AllStationsSnapshot, initial TimeOfDay, opts PlaybackOptions) *Playback {
	p := &Playback{
		snapshot: snapshot,
		clock:    initial,
		index:    buildArrivalIndex(snapshot, !opts.ExcludeGarageTrips),
	}
	p.queue = p.futureSets()
	return p
}

// Sets from the full index strictly after the current clock. Sets at
// exactly the clock's time are excluded, both here and at
// regeneration: the queue only ever holds future arrivals.
func (p *Playback) futureSets() []ArrivalSet {
	now := p.clock.minuteOfDay()
	i := 0
	for i < len(p.index) && p.index[i].Time.minuteOfDay() <= now {
		i++
	}
	queue := make([]ArrivalSet, len(p.index)-i)
	copy(queue, p.index[i:])
	return queue
}

// Tick advances the clock by deltaMinutes and returns all arrival
// sets due within the elapsed interval, in ascending time order. A
// large delta (fast-forward) may drain several sets at once.
//
// When the queue runs dry the full index is regenerated, filtered to
// sets strictly after the new clock value; this models the start of a
// new recurring service day without re-reading the snapshot. The
// regenerated sets are not part of the returned batch.
func (p *Playback) Tick(deltaMinutes float64) []ArrivalSet {
	// Queue entries all lie strictly after the pre-tick clock, so
	// comparing against the un-wrapped end of the interval drains
	// exactly the sets the clock passed, including across the day
	// boundary.
	end := p.clock.minuteOfDay() + deltaMinutes
	p.clock.Tick(deltaMinutes)

	var due []ArrivalSet
	for len(p.queue) > 0 && p.queue[0].Time.minuteOfDay() <= end {
		due = append(due, p.queue[0])
		p.queue = p.queue[1:]
	}

	if len(p.queue) == 0 {
		p.queue = p.futureSets()
	}

	return due
}

// TimeOfDay returns the current simulated clock. The engine's clock
// advances on every Tick; the returned value is a copy taken at call
// time.
func (p *Playback) TimeOfDay() TimeOfDay {
	return p.clock
}

// Snapshot returns the snapshot this playback was built from.
func (p *Playback) Snapshot() *model.AllStationsSnapshot {
	return p.snapshot
}

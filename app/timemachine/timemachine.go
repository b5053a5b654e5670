// Package timemachine implements the Time Machine: a
// scrubbable index over a full replay. It precomputes periodic
// GameState snapshots ("buckets") and reconstructs the state at an
// arbitrary time by cloning the nearest earlier snapshot and replaying
// forward frames through the Frame Evaluator. No direct danser-go
// analogue exists (it only ever plays forward); this reuses the same
// "clone, don't alias" discipline danser-go's own ruleset applies when
// handing per-cursor state around.
package timemachine

import (
	"sort"

	"github.com/wieku/danser-go/app/beatmap"
	"github.com/wieku/danser-go/app/judgement"
	"github.com/wieku/danser-go/app/replay"
)

// DefaultBucketInterval is the wall-clock spacing between stored
// snapshots.
const DefaultBucketInterval = 1000

type bucket struct {
	state      *judgement.GameState
	frameIndex int // index into TimeMachine.frames of the next unapplied frame
}

// TimeMachine is built once from a full replay and then queried
// repeatedly; it never mutates after Build returns.
type TimeMachine struct {
	frames         []replay.Frame
	cfg            judgement.Config
	bucketInterval float64
	buckets        []bucket
}

// Build runs the entire replay once, recording a cloned snapshot every
// bucketInterval of simulated time. bucketInterval <= 0
// uses DefaultBucketInterval.
func Build(bm *beatmap.BeatMap, frames []replay.Frame, cfg judgement.Config, bucketInterval float64) (*TimeMachine, error) {
	if bucketInterval <= 0 {
		bucketInterval = DefaultBucketInterval
	}

	state := judgement.NewGameState(bm)

	tm := &TimeMachine{
		frames:         frames,
		cfg:            cfg,
		bucketInterval: bucketInterval,
		buckets:        []bucket{{state: state.Clone(), frameIndex: 0}},
	}

	lastBucketTime := state.CurrentTime

	for i, f := range frames {
		if err := judgement.Advance(state, f, cfg); err != nil {
			return nil, err
		}

		if state.CurrentTime-lastBucketTime >= bucketInterval {
			tm.buckets = append(tm.buckets, bucket{state: state.Clone(), frameIndex: i + 1})
			lastBucketTime = state.CurrentTime
		}
	}

	return tm, nil
}

// QueryAt reconstructs the GameState at time t: the latest snapshot
// with current_time <= t is cloned, then every frame between that
// snapshot and t is replayed through Advance. The
// returned state is a fresh clone, safe for the caller to mutate or
// discard independently of any other query.
func (tm *TimeMachine) QueryAt(t float64) (*judgement.GameState, error) {
	i := sort.Search(len(tm.buckets), func(i int) bool {
		return tm.buckets[i].state.CurrentTime > t
	}) - 1

	if i < 0 {
		i = 0
	}

	b := tm.buckets[i]
	state := b.state.Clone()

	for _, f := range tm.frames[b.frameIndex:] {
		if f.Time > t {
			break
		}

		if err := judgement.Advance(state, f, tm.cfg); err != nil {
			return nil, err
		}
	}

	return state, nil
}

package judgement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wieku/danser-go/app/beatmap"
	"github.com/wieku/danser-go/app/beatmap/difficulty"
	"github.com/wieku/danser-go/app/beatmap/objects"
	"github.com/wieku/danser-go/app/judgement"
	"github.com/wieku/danser-go/app/replay"
	"github.com/wieku/danser-go/framework/math/vector"
)

// scenarioWindows is a literal [20, 60, 100, 200] window set used
// across the scenarios below.
var scenarioWindows = difficulty.Windows{Great: 20, Ok: 60, Meh: 100, Miss: 200}

func singleCircleBeatMap() *beatmap.BeatMap {
	circle := &objects.HitCircle{
		IDValue:     "circle:0",
		Position:    vector.NewVec2d(100, 100),
		Radius:      30,
		HitTime:     1000,
		SpawnTimeAt: 0,
	}

	return beatmap.FromObjects(difficulty.Difficulty{}, scenarioWindows, difficulty.Stable,
		[]objects.HitObject{circle}, nil)
}

func frame(t, x, y float64, buttons replay.Buttons) replay.Frame {
	return replay.Frame{Time: t, Position: vector.NewVec2d(x, y), Buttons: buttons}
}

// TestScenario2SingleHitCircleGreat clicks dead-on and on time.
func TestScenario2SingleHitCircleGreat(t *testing.T) {
	bm := singleCircleBeatMap()
	state := judgement.NewGameState(bm)

	require.NoError(t, judgement.Advance(state, frame(1005, 100, 100, replay.Left), judgement.Config{}))

	hs, ok := state.HitCircleState["circle:0"]
	require.True(t, ok)
	assert.Equal(t, judgement.Great, hs.Type)
	assert.InDelta(t, 1005, hs.JudgementTime, 1e-9)
}

// TestScenario3EarlyClickMisses clicks on target too early for any hit
// window but still inside the miss window (200 ms before hit_time).
func TestScenario3EarlyClickMisses(t *testing.T) {
	bm := singleCircleBeatMap()
	state := judgement.NewGameState(bm)

	require.NoError(t, judgement.Advance(state, frame(800, 100, 100, replay.Left), judgement.Config{}))

	hs, ok := state.HitCircleState["circle:0"]
	require.True(t, ok)
	assert.Equal(t, judgement.Miss, hs.Type)
	assert.Equal(t, judgement.HitTooEarly, hs.Reason)
}

// TestScenario4SpatialMissThenTimeout clicks far from the circle, then lets it time out.
func TestScenario4SpatialMissThenTimeout(t *testing.T) {
	bm := singleCircleBeatMap()
	state := judgement.NewGameState(bm)

	require.NoError(t, judgement.Advance(state, frame(1005, 200, 200, replay.Left), judgement.Config{}))
	_, judged := state.HitCircleState["circle:0"]
	assert.False(t, judged, "a click far from the circle must not judge it")

	require.NoError(t, judgement.Advance(state, frame(1101, 200, 200, replay.Left), judgement.Config{}))
	hs, ok := state.HitCircleState["circle:0"]
	require.True(t, ok)
	assert.Equal(t, judgement.Miss, hs.Type)
	assert.Equal(t, judgement.TimeExpired, hs.Reason)
	assert.InDelta(t, 1101, hs.JudgementTime, 1e-9)
}

// TestScenario5StableNoteLock checks that stable's note lock ignores a
// click on a later circle while an earlier one is still unjudged.
func TestScenario5StableNoteLock(t *testing.T) {
	first := &objects.HitCircle{IDValue: "circle:0", Position: vector.NewVec2d(0, 0), Radius: 30, HitTime: 1000}
	second := &objects.HitCircle{IDValue: "circle:1", Position: vector.NewVec2d(500, 500), Radius: 30, HitTime: 1200}

	bm := beatmap.FromObjects(difficulty.Difficulty{}, scenarioWindows, difficulty.Stable,
		[]objects.HitObject{first, second}, nil)
	state := judgement.NewGameState(bm)

	cfg := judgement.Config{NoteLock: judgement.NoteLockStable}

	require.NoError(t, judgement.Advance(state, frame(1200, 500, 500, replay.Left), cfg))

	_, judged := state.HitCircleState["circle:1"]
	assert.False(t, judged, "stable lock must ignore the click on the later circle")

	require.NoError(t, judgement.Advance(state, frame(1301, 500, 500, replay.Left), cfg))
	hs, ok := state.HitCircleState["circle:1"]
	require.True(t, ok)
	assert.Equal(t, judgement.Miss, hs.Type)
	assert.Equal(t, judgement.TimeExpired, hs.Reason)
}

// TestScenario6SliderHeadAndCheckpointGreat: head GREAT, checkpoint
// hit via a fresh press after the head, slider verdict GREAT.
func TestScenario6SliderHeadAndCheckpointGreat(t *testing.T) {
	ball := func(progress float64) vector.Vector2d { return vector.NewVec2d(100, 100) }

	slider := &objects.Slider{
		IDValue: "slider:0",
		Head: objects.HitCircle{
			IDValue:  "slider:0:head",
			Position: vector.NewVec2d(100, 100),
			Radius:   30,
			HitTime:  1000,
		},
		Checkpoints: []objects.Checkpoint{
			{IDValue: "slider:0:cp:0", SliderID: "slider:0", Kind: objects.CheckpointTail, HitTime: 1500, Position: vector.NewVec2d(100, 100)},
		},
		StartTimeAt:  1000,
		EndTimeAt:    1500,
		Duration:     500,
		Radius:       30,
		BallPosition: ball,
	}

	bm := beatmap.FromObjects(difficulty.Difficulty{}, scenarioWindows, difficulty.Stable,
		[]objects.HitObject{slider}, map[string]*objects.Slider{"slider:0": slider})

	state := judgement.NewGameState(bm)
	cfg := judgement.Config{}

	steps := []replay.Frame{
		frame(1000, 100, 100, replay.Left),  // press, head GREAT
		frame(1200, 100, 100, 0),            // release
		frame(1400, 100, 100, replay.Left),  // re-press
		frame(1550, 100, 100, replay.Left),  // holds through the tail
	}

	for _, f := range steps {
		require.NoError(t, judgement.Advance(state, f, cfg))
	}

	head, ok := state.HitCircleState["slider:0:head"]
	require.True(t, ok)
	assert.Equal(t, judgement.Great, head.Type)

	cp, ok := state.CheckpointState["slider:0:cp:0"]
	require.True(t, ok)
	assert.True(t, cp.Hit)

	verdict, ok := state.SliderVerdict["slider:0"]
	require.True(t, ok)
	assert.Equal(t, judgement.Great, verdict)
}

// TestLazerNoteLockBlockerChoiceIsDeterministic checks that when two
// stacked circles share the minimal upcoming hit_time, lazer note
// lock force-misses the same one (the lower sorted id) every time,
// rather than whichever the alive-set map happens to iterate to
// first.
func TestLazerNoteLockBlockerChoiceIsDeterministic(t *testing.T) {
	a := &objects.HitCircle{IDValue: "circle:a", Position: vector.NewVec2d(0, 0), Radius: 30, HitTime: 1000}
	b := &objects.HitCircle{IDValue: "circle:b", Position: vector.NewVec2d(0, 0), Radius: 30, HitTime: 1000}
	c := &objects.HitCircle{IDValue: "circle:c", Position: vector.NewVec2d(500, 500), Radius: 30, HitTime: 1200}

	bm := beatmap.FromObjects(difficulty.Difficulty{}, scenarioWindows, difficulty.Lazer,
		[]objects.HitObject{a, b, c}, nil)
	state := judgement.NewGameState(bm)

	cfg := judgement.Config{NoteLock: judgement.NoteLockLazer}

	require.NoError(t, judgement.Advance(state, frame(999, 500, 500, replay.Left), cfg))

	missed, ok := state.HitCircleState["circle:a"]
	require.True(t, ok, "the lower sorted id among the tied circles must be the one force-missed")
	assert.Equal(t, judgement.Miss, missed.Type)
	assert.Equal(t, judgement.ForceMissNoteLock, missed.Reason)

	_, stillAlive := state.HitCircleState["circle:b"]
	assert.False(t, stillAlive, "the other tied circle must remain unjudged")
}

// TestAdvanceReportsDesyncAsUnknownHitObjectId checks that an alive-set
// id with no matching beatmap object (a desynchronized state, which
// should never happen in practice) surfaces as UnknownHitObjectId
// rather than being silently skipped.
func TestAdvanceReportsDesyncAsUnknownHitObjectId(t *testing.T) {
	bm := singleCircleBeatMap()
	state := judgement.NewGameState(bm)
	state.AliveHitCircles["circle:phantom"] = struct{}{}

	err := judgement.Advance(state, frame(1005, 100, 100, replay.Left), judgement.Config{})
	require.Error(t, err)

	var unknown *judgement.UnknownHitObjectId
	assert.ErrorAs(t, err, &unknown)
	assert.Equal(t, "circle:phantom", unknown.ID)
}

func TestFrameOutOfOrderRejected(t *testing.T) {
	bm := singleCircleBeatMap()
	state := judgement.NewGameState(bm)

	require.NoError(t, judgement.Advance(state, frame(100, 0, 0, 0), judgement.Config{}))

	err := judgement.Advance(state, frame(50, 0, 0, 0), judgement.Config{})
	require.Error(t, err)

	var fooErr *judgement.FrameOutOfOrder
	assert.ErrorAs(t, err, &fooErr)
	assert.InDelta(t, 100, state.CurrentTime, 1e-9, "rejected frame must not mutate state")
}

func TestCloneIsolation(t *testing.T) {
	bm := singleCircleBeatMap()
	state := judgement.NewGameState(bm)
	require.NoError(t, judgement.Advance(state, frame(1005, 100, 100, replay.Left), judgement.Config{}))

	clone := state.Clone()
	clone.HitCircleState["circle:0"] = judgement.HitCircleState{Type: judgement.Miss}
	clone.JudgedObjects = append(clone.JudgedObjects, "extra")

	original, ok := state.HitCircleState["circle:0"]
	require.True(t, ok)
	assert.Equal(t, judgement.Great, original.Type, "mutating the clone must not affect the original")
	assert.Len(t, state.JudgedObjects, 1)
}

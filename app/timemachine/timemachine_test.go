package timemachine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wieku/danser-go/app/beatmap"
	"github.com/wieku/danser-go/app/beatmap/difficulty"
	"github.com/wieku/danser-go/app/beatmap/objects"
	"github.com/wieku/danser-go/app/judgement"
	"github.com/wieku/danser-go/app/replay"
	"github.com/wieku/danser-go/app/timemachine"
	"github.com/wieku/danser-go/framework/math/vector"
)

var windows = difficulty.Windows{Great: 20, Ok: 60, Meh: 100, Miss: 200}

func manyCircleBeatMap(n int) *beatmap.BeatMap {
	objs := make([]objects.HitObject, n)
	for i := 0; i < n; i++ {
		objs[i] = &objects.HitCircle{
			IDValue:  "circle",
			Position: vector.NewVec2d(0, 0),
			Radius:   30,
			HitTime:  float64(1000 * (i + 1)),
		}
		objs[i].(*objects.HitCircle).IDValue = "circle:" + string(rune('a'+i))
	}

	return beatmap.FromObjects(difficulty.Difficulty{}, windows, difficulty.Stable, objs, nil)
}

func buildFrames(n int) []replay.Frame {
	frames := make([]replay.Frame, n)
	for i := 0; i < n; i++ {
		t := float64(1000 * (i + 1))
		frames[i] = replay.Frame{Time: t, Position: vector.NewVec2d(0, 0), Buttons: replay.Left}
	}

	return frames
}

// TestQueryAtMatchesDirectReplay checks the round-trip property: Time
// Machine at T equals the evaluator run from time 0 to T without
// snapshots, for several values of T.
func TestQueryAtMatchesDirectReplay(t *testing.T) {
	bm := manyCircleBeatMap(5)
	frames := buildFrames(5)

	tm, err := timemachine.Build(bm, frames, judgement.Config{}, 1500)
	require.NoError(t, err)

	for _, cutoff := range []float64{500, 1000, 2500, 3000, 5000} {
		expected := judgement.NewGameState(bm)

		for _, f := range frames {
			if f.Time > cutoff {
				break
			}

			require.NoError(t, judgement.Advance(expected, f, judgement.Config{}))
		}

		got, err := tm.QueryAt(cutoff)
		require.NoError(t, err)

		assert.Equal(t, expected.CurrentTime, got.CurrentTime)
		assert.Equal(t, expected.HitCircleState, got.HitCircleState)
		assert.Equal(t, expected.JudgedObjects, got.JudgedObjects)
	}
}

func TestQueryAtReturnsIndependentClones(t *testing.T) {
	bm := manyCircleBeatMap(2)
	frames := buildFrames(2)

	tm, err := timemachine.Build(bm, frames, judgement.Config{}, 1500)
	require.NoError(t, err)

	a, err := tm.QueryAt(1500)
	require.NoError(t, err)

	b, err := tm.QueryAt(1500)
	require.NoError(t, err)

	a.JudgedObjects = append(a.JudgedObjects, "mutated")
	assert.NotEqual(t, a.JudgedObjects, b.JudgedObjects)
}

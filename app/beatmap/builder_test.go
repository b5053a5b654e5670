package beatmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wieku/danser-go/app/beatmap"
	"github.com/wieku/danser-go/app/beatmap/difficulty"
	"github.com/wieku/danser-go/app/beatmap/objects"
	"github.com/wieku/danser-go/app/mods"
	"github.com/wieku/danser-go/framework/math/vector"
)

func simpleBlueprint() beatmap.Blueprint {
	return beatmap.Blueprint{
		CS: 4, AR: 9, OD: 8,
		HitCircles: []beatmap.BlueprintHitCircle{
			{Index: 0, Position: vector.NewVec2d(100, 100), Time: 1000},
			{Index: 1, Position: vector.NewVec2d(200, 200), Time: 2000},
		},
	}
}

func TestBuildOutputIsSpawnTimeSorted(t *testing.T) {
	bm, err := beatmap.Build(simpleBlueprint(), mods.Modifier(0), difficulty.Stable)
	require.NoError(t, err)
	require.Len(t, bm.Objects, 2)

	for i := 1; i < len(bm.Objects); i++ {
		assert.LessOrEqual(t, bm.Objects[i-1].SpawnTime(), bm.Objects[i].SpawnTime())
	}
}

func TestBuildByIDFindsEveryObject(t *testing.T) {
	bm, err := beatmap.Build(simpleBlueprint(), mods.Modifier(0), difficulty.Stable)
	require.NoError(t, err)

	_, ok := bm.ByID("circle:0")
	assert.True(t, ok)

	_, ok = bm.ByID("circle:1")
	assert.True(t, ok)

	_, ok = bm.ByID("nonexistent")
	assert.False(t, ok)
}

func TestBuildRejectsNonMonotonicSpinner(t *testing.T) {
	bp := beatmap.Blueprint{
		CS: 4, AR: 9, OD: 8,
		Spinners: []beatmap.BlueprintSpinner{
			{Index: 0, StartTime: 1000, EndTime: 900},
		},
	}

	_, err := beatmap.Build(bp, mods.Modifier(0), difficulty.Stable)
	require.Error(t, err)

	var malformed *beatmap.MalformedBeatmap
	assert.ErrorAs(t, err, &malformed)
}

func TestBuildRejectsUnsampleableSliderPath(t *testing.T) {
	bp := beatmap.Blueprint{
		CS: 4, AR: 9, OD: 8,
		Sliders: []beatmap.BlueprintSlider{
			{Index: 0, Path: []vector.Vector2d{vector.NewVec2d(0, 0)}, SegmentDuration: 500, StartTime: 1000},
		},
	}

	_, err := beatmap.Build(bp, mods.Modifier(0), difficulty.Stable)
	require.Error(t, err)
}

func TestBuildAppliesHardRockYFlip(t *testing.T) {
	bp := simpleBlueprint()

	normal, err := beatmap.Build(bp, mods.Modifier(0), difficulty.Stable)
	require.NoError(t, err)

	flipped, err := beatmap.Build(bp, mods.HardRock, difficulty.Stable)
	require.NoError(t, err)

	normalCircle, ok := normal.ByID("circle:0")
	require.True(t, ok)
	flippedCircle, ok := flipped.ByID("circle:0")
	require.True(t, ok)

	normalY := normalCircle.(*objects.HitCircle).Position.Y
	flippedY := flippedCircle.(*objects.HitCircle).Position.Y

	assert.InDelta(t, 384-normalY, flippedY, 1e-9)
}

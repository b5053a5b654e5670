package beatmap

import "github.com/wieku/danser-go/framework/math/vector"

// Blueprint is the parsed, authored-only input to the Beatmap
// Builder, independent of any player's replay. Parsing the on-disk
// beatmap text format into a Blueprint is an external collaborator's
// job; this struct is the handoff contract.
type Blueprint struct {
	CS, AR, OD float64

	HitCircles []BlueprintHitCircle
	Sliders    []BlueprintSlider
	Spinners   []BlueprintSpinner
}

type BlueprintHitCircle struct {
	Index    int
	Position vector.Vector2d
	Time     float64
}

// BlueprintSlider describes an authored slider. Path is the polyline
// the ball travels along a single traversal (at least 2 points);
// repeats traverse it back and forth. TickOffsets are ms offsets
// within a single traversal (0 < offset < SegmentDuration) at which a
// tick checkpoint fires, in ascending order.
type BlueprintSlider struct {
	Index           int
	Path            []vector.Vector2d
	Repeats         int
	StartTime       float64
	SegmentDuration float64
	TickOffsets     []float64
}

type BlueprintSpinner struct {
	Index     int
	StartTime float64
	EndTime   float64
}

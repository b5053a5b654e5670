package judgement

import (
	"github.com/wieku/danser-go/app/beatmap/objects"
	"github.com/wieku/danser-go/framework/math/vector"
)

const (
	followRadiusTracking    = 2.4
	followRadiusNotTracking = 1.0
)

// tracking implements the Tracking Predicate. headHitTime
// is the head's judgement time if it exists and was not a miss;
// hasHead reports whether that value is defined at all (an undefined
// head hit time means "any held key suffices").
func tracking(wasTracking bool, slider *objects.Slider, cursor vector.Vector2d, t float64, pressingSince [buttonCount]float64, hasHead bool, headHitTime float64) bool {
	anyPressed := false

	for _, ps := range pressingSince {
		if isPressing(ps) {
			anyPressed = true
			break
		}
	}

	if !anyPressed {
		return false
	}

	// Inclusive at end_time: a tail checkpoint's hit_time coincides
	// exactly with end_time, and phase 6/7 sample tracking() at that
	// exact instant when draining a slider's last checkpoint. Every
	// other caller (phase 8, over still-alive sliders) never observes
	// t == end_time for a slider about to expire, since phase 6 already
	// removes it from the alive set first, so this relaxation is a
	// no-op there.
	if !(slider.StartTime() <= t && t <= slider.EndTime()) {
		return false
	}

	followRadius := followRadiusNotTracking
	if wasTracking {
		followRadius = followRadiusTracking
	}

	followRadius *= slider.Radius

	ballPos := slider.BallPosition(slider.Progress(t))
	if ballPos.Dst(cursor) > followRadius {
		return false
	}

	if hasHead {
		freshSinceHead := false

		for _, ps := range pressingSince {
			if isPressing(ps) && ps >= headHitTime {
				freshSinceHead = true
				break
			}
		}

		if !freshSinceHead {
			return false
		}
	}

	return true
}

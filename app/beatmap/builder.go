package beatmap

import (
	"fmt"

	"github.com/wieku/danser-go/app/beatmap/difficulty"
	"github.com/wieku/danser-go/app/beatmap/objects"
	"github.com/wieku/danser-go/app/mods"
	"github.com/wieku/danser-go/framework/math/vector"
)

// Build is the Beatmap Builder: it consumes a Blueprint
// plus the active mod set, applies stacking and the geometry/timing
// subset of mods, samples slider paths into ball-position functions,
// materializes checkpoints, and returns a fully sorted, immutable
// BeatMap. Dialect only feeds the Hit Window Table; it never touches
// geometry.
func Build(bp Blueprint, m mods.Modifier, dialect difficulty.Dialect) (*BeatMap, error) {
	diff := difficulty.Difficulty{CS: bp.CS, AR: bp.AR, OD: bp.OD, Mods: m}

	radius := diff.CircleRadius()
	preempt := diff.Preempt()
	rate := m.RateMultiplier()

	flipY := m.Active(mods.HardRock)

	items := make([]indexedObject, 0, len(bp.HitCircles)+len(bp.Sliders)+len(bp.Spinners))
	sliders := make(map[string]*objects.Slider, len(bp.Sliders))

	var stackChain []*objects.HitCircle

	for _, c := range bp.HitCircles {
		hc := &objects.HitCircle{
			IDValue:     fmt.Sprintf("circle:%d", c.Index),
			Position:    applyMods(c.Position, flipY),
			Radius:      radius,
			HitTime:     c.Time / rate,
			SpawnTimeAt: c.Time/rate - preempt,
		}

		stackChain = append(stackChain, hc)
		items = append(items, indexedObject{obj: hc, index: c.Index})
	}

	for _, s := range bp.Sliders {
		built, err := buildSlider(s, diff, radius, preempt, rate, flipY)
		if err != nil {
			return nil, err
		}

		sliders[built.IDValue] = built
		stackChain = append(stackChain, &built.Head)
		items = append(items, indexedObject{obj: built, index: s.Index})
	}

	for _, sp := range bp.Spinners {
		if sp.EndTime <= sp.StartTime {
			return nil, malformed("spinner %d has non-monotonic start/end time", sp.Index)
		}

		spin := &objects.Spinner{
			IDValue:     fmt.Sprintf("spinner:%d", sp.Index),
			StartTimeAt: sp.StartTime / rate,
			EndTimeAt:   sp.EndTime / rate,
			SpawnTimeAt: sp.StartTime / rate,
		}

		items = append(items, indexedObject{obj: spin, index: sp.Index})
	}

	sortStackChain(stackChain)
	applyStacking(stackChain, radius, preempt)

	sortIndexed(items)

	objs := make([]objects.HitObject, len(items))
	for i, it := range items {
		objs[i] = it.obj
	}

	windows := difficulty.ComputeWindows(bp.OD, dialect)

	bm := &BeatMap{
		Difficulty: diff,
		Windows:    windows,
		Dialect:    dialect,
		Objects:    objs,
		Sliders:    sliders,
	}
	bm.byID = newByIDIndex(objs, sliders)

	return bm, nil
}

func sortStackChain(chain []*objects.HitCircle) {
	for i := 1; i < len(chain); i++ {
		for j := i; j > 0 && chain[j-1].HitTime > chain[j].HitTime; j-- {
			chain[j-1], chain[j] = chain[j], chain[j-1]
		}
	}
}

// playfieldHeight is the standard osu! playfield height used as the
// HardRock vertical flip axis.
const playfieldHeight = 384

func applyMods(p vector.Vector2d, flipY bool) vector.Vector2d {
	if !flipY {
		return p
	}

	return vector.NewVec2d(p.X, playfieldHeight-p.Y)
}

func buildSlider(s BlueprintSlider, diff difficulty.Difficulty, radius, preempt, rate float64, flipY bool) (*objects.Slider, error) {
	if len(s.Path) < 2 {
		return nil, malformed("slider %d has an unsampleable path (fewer than 2 control points)", s.Index)
	}

	if s.SegmentDuration <= 0 {
		return nil, malformed("slider %d has non-monotonic timing (non-positive segment duration)", s.Index)
	}

	path := make([]vector.Vector2d, len(s.Path))
	for i, p := range s.Path {
		path[i] = applyMods(p, flipY)
	}

	startTime := s.StartTime / rate
	segmentDuration := s.SegmentDuration / rate
	duration := segmentDuration * float64(s.Repeats+1)
	endTime := startTime + duration

	id := fmt.Sprintf("slider:%d", s.Index)

	ball := func(progress float64) vector.Vector2d {
		return sampleSlider(path, s.Repeats, progress)
	}

	checkpoints, err := buildCheckpoints(id, s, startTime, segmentDuration, path, flipY)
	if err != nil {
		return nil, err
	}

	head := objects.HitCircle{
		IDValue:     id + ":head",
		Position:    path[0],
		Radius:      radius,
		HitTime:     startTime,
		SpawnTimeAt: startTime - preempt,
	}

	return &objects.Slider{
		IDValue:      id,
		Head:         head,
		Checkpoints:  checkpoints,
		StartTimeAt:  startTime,
		EndTimeAt:    endTime,
		Duration:     duration,
		Radius:       radius,
		BallPosition: ball,
	}, nil
}

// sampleSlider maps a whole-slider progress value in [0,1] to a point
// along path, bouncing back and forth across repeats.
func sampleSlider(path []vector.Vector2d, repeats int, progress float64) vector.Vector2d {
	segments := float64(repeats + 1)

	overall := progress * segments
	if overall >= segments {
		overall = segments - 1e-9
	}

	segIndex := int(overall)
	t := overall - float64(segIndex)

	if segIndex%2 == 1 {
		t = 1 - t
	}

	return pointOnPolyline(path, t)
}

func pointOnPolyline(path []vector.Vector2d, t float64) vector.Vector2d {
	if len(path) == 1 {
		return path[0]
	}

	lengths := make([]float64, len(path)-1)
	total := 0.0

	for i := 0; i < len(path)-1; i++ {
		lengths[i] = path[i].Dst(path[i+1])
		total += lengths[i]
	}

	if total == 0 {
		return path[0]
	}

	target := t * total

	acc := 0.0

	for i, segLen := range lengths {
		if acc+segLen >= target || i == len(lengths)-1 {
			segT := 0.0
			if segLen > 0 {
				segT = (target - acc) / segLen
			}

			if segT < 0 {
				segT = 0
			}

			if segT > 1 {
				segT = 1
			}

			return vector.Lerp(path[i], path[i+1], segT)
		}

		acc += segLen
	}

	return path[len(path)-1]
}

func buildCheckpoints(sliderID string, s BlueprintSlider, startTime, segmentDuration float64, path []vector.Vector2d, flipY bool) ([]objects.Checkpoint, error) {
	// Tick offsets are authored against the unscaled segment; scale
	// converts them to the same rate-adjusted timeline as startTime.
	scale := segmentDuration / s.SegmentDuration

	for _, off := range s.TickOffsets {
		if off <= 0 || off >= s.SegmentDuration {
			return nil, malformed("slider %d has a tick offset outside its segment span", s.Index)
		}
	}

	var checkpoints []objects.Checkpoint
	n := 0

	for seg := 0; seg <= s.Repeats; seg++ {
		segStart := startTime + float64(seg)*segmentDuration

		for _, off := range s.TickOffsets {
			hitTime := segStart + off*scale

			progress := (hitTime - startTime) / (segmentDuration * float64(s.Repeats+1))

			checkpoints = append(checkpoints, objects.Checkpoint{
				IDValue:  fmt.Sprintf("%s:cp:%d", sliderID, n),
				SliderID: sliderID,
				Kind:     objects.CheckpointTick,
				HitTime:  hitTime,
				Position: sampleSlider(path, s.Repeats, progress),
			})
			n++
		}

		if seg < s.Repeats {
			hitTime := startTime + float64(seg+1)*segmentDuration

			checkpoints = append(checkpoints, objects.Checkpoint{
				IDValue:  fmt.Sprintf("%s:cp:%d", sliderID, n),
				SliderID: sliderID,
				Kind:     objects.CheckpointRepeat,
				HitTime:  hitTime,
				Position: path[0], // a repeat lands back at a path endpoint
			})
			n++
		}
	}

	tailTime := startTime + segmentDuration*float64(s.Repeats+1)

	checkpoints = append(checkpoints, objects.Checkpoint{
		IDValue:  fmt.Sprintf("%s:cp:%d", sliderID, n),
		SliderID: sliderID,
		Kind:     objects.CheckpointTail,
		HitTime:  tailTime,
		Position: sampleSlider(path, s.Repeats, 1),
	})

	return checkpoints, nil
}

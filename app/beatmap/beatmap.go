// Package beatmap implements the Beatmap Builder: it
// turns a Blueprint plus an active mod set into an immutable, fully
// materialized BeatMap the Frame Evaluator consumes. Grounded on
// danser-go's NewOsuRuleset hit-object construction loop, generalized
// from "build run-time HitObject wrappers for rendering" to "build an
// immutable, judgement-ready object list".
package beatmap

import (
	"sort"

	"github.com/wieku/danser-go/app/beatmap/difficulty"
	"github.com/wieku/danser-go/app/beatmap/objects"
)

// BeatMap is the immutable, time-sorted output of Build. Nothing in it
// changes after construction; the Frame Evaluator only reads from it.
type BeatMap struct {
	Difficulty difficulty.Difficulty
	Windows    difficulty.Windows
	Dialect    difficulty.Dialect

	// Objects is sorted by SpawnTime, ties broken by authored index.
	Objects []objects.HitObject

	// Sliders indexes sliders by id for O(1) lookup from a checkpoint's
	// SliderID, avoiding a back-pointer from the slider to its checkpoints.
	Sliders map[string]*objects.Slider

	byID map[string]objects.HitObject
}

// ByID looks up any hit object (circle, slider, or spinner) by its
// stable id. Returns nil, false if absent; callers needing a hard
// failure (judgement/errors.go's UnknownHitObjectId) check that
// themselves, since "not found" is sometimes an expected probe.
func (b *BeatMap) ByID(id string) (objects.HitObject, bool) {
	o, ok := b.byID[id]
	return o, ok
}

// FromObjects builds a BeatMap directly from already-constructed,
// already-sorted objects, bypassing the Blueprint/Build pipeline. For
// callers that already have judgement-ready objects in hand: hand
// authored fixtures, tests exercising the Frame Evaluator in
// isolation from the Beatmap Builder's geometry math.
func FromObjects(diff difficulty.Difficulty, windows difficulty.Windows, dialect difficulty.Dialect, objs []objects.HitObject, sliders map[string]*objects.Slider) *BeatMap {
	if sliders == nil {
		sliders = map[string]*objects.Slider{}
	}

	bm := &BeatMap{
		Difficulty: diff,
		Windows:    windows,
		Dialect:    dialect,
		Objects:    objs,
		Sliders:    sliders,
	}
	bm.byID = newByIDIndex(objs, sliders)

	return bm
}

func newByIDIndex(objs []objects.HitObject, sliders map[string]*objects.Slider) map[string]objects.HitObject {
	idx := make(map[string]objects.HitObject, len(objs)+len(sliders))

	for _, o := range objs {
		idx[o.ID()] = o
	}

	for _, s := range sliders {
		idx[s.Head.ID()] = &s.Head
	}

	return idx
}

// indexedObject pairs a built hit object with its authored index, so
// the builder can sort by spawn time and break ties deterministically
// without a second, parallel slice.
type indexedObject struct {
	obj   objects.HitObject
	index int
}

func sortIndexed(items []indexedObject) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].obj.SpawnTime() != items[j].obj.SpawnTime() {
			return items[i].obj.SpawnTime() < items[j].obj.SpawnTime()
		}

		return items[i].index < items[j].index
	})
}

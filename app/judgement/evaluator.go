package judgement

import (
	"math"
	"sort"

	"github.com/wieku/danser-go/app/beatmap"
	"github.com/wieku/danser-go/app/beatmap/objects"
	"github.com/wieku/danser-go/app/replay"
	"github.com/wieku/danser-go/framework/math/vector"
)

// NoteLockStyle selects the phase-5 lock policy.
type NoteLockStyle uint8

const (
	NoteLockNone NoteLockStyle = iota
	NoteLockStable
	NoteLockLazer
)

// Config is the Frame Evaluator's configuration.
type Config struct {
	NoteLock NoteLockStyle
}

// checkpointEpsilon is phase 7's epsilon for ceil(hit_time - epsilon),
// so a checkpoint whose hit_time is an integer (or lies above one only
// by floating-point noise) is sampled at that integer time rather than
// the following millisecond.
const checkpointEpsilon = 1e-10

// Advance is the Frame Evaluator's single public operation: it
// mutates state in place with the next replay frame, executing the
// nine phases in fixed order. Preconditions: frame.Time
// >= state.CurrentTime; frames arrive in non-decreasing time order.
func Advance(state *GameState, frame replay.Frame, cfg Config) error {
	if frame.Time < state.CurrentTime {
		return &FrameOutOfOrder{FrameTime: frame.Time, CurrentTime: state.CurrentTime}
	}

	bm := state.BeatMap

	// Phase 1: bind frame.
	previousPosition := state.CursorPosition
	previousTime := state.CurrentTime
	oldPressingSince := state.PressingSince

	state.CurrentTime = frame.Time
	state.CursorPosition = frame.Position
	state.ClickWasUseful = false

	// Phase 2: update button timings.
	held := decodeButtons(frame.Buttons)

	for i := 0; i < int(buttonCount); i++ {
		if held[i] {
			state.PressingSince[i] = math.Min(state.PressingSince[i], frame.Time)
		} else {
			state.PressingSince[i] = NotPressing
		}
	}

	// Phase 3: spawn.
	spawnPending(state, bm)

	// Phase 4: determine supposed-click times.
	tSupposed, hasTSupposed, tNextSupposed, hasTNextSupposed, err := supposedClickTimes(state, bm)
	if err != nil {
		return err
	}

	// Phase 5: resolve hit circles.
	if err := resolveHitCircles(state, bm, cfg, tSupposed, hasTSupposed, tNextSupposed, hasTNextSupposed); err != nil {
		return err
	}

	// Phase 6: finalize expired sliders.
	if err := finalizeExpiredSliders(state, bm, previousPosition, previousTime, oldPressingSince); err != nil {
		return err
	}

	// Phase 7: evaluate crossed checkpoints.
	evaluateCrossedCheckpoints(state, bm, previousPosition, previousTime, oldPressingSince)

	// Phase 8: update slider body tracking.
	updateSliderTracking(state, bm)

	// Phase 9: advance spinners.
	if err := advanceSpinners(state); err != nil {
		return err
	}

	return nil
}

func spawnPending(state *GameState, bm *beatmap.BeatMap) {
	for state.LatestHitObjectIndex < len(bm.Objects) {
		obj := bm.Objects[state.LatestHitObjectIndex]
		if obj.SpawnTime() > state.CurrentTime {
			break
		}

		switch obj.Kind() {
		case objects.KindHitCircle:
			state.AliveHitCircles[obj.ID()] = struct{}{}
		case objects.KindSlider:
			s := obj.(*objects.Slider)
			state.AliveSliders[s.ID()] = struct{}{}
			state.AliveHitCircles[s.Head.ID()] = struct{}{}
			state.NextCheckpointIndex[s.ID()] = 0
		case objects.KindSpinner:
			state.AliveSpinners[obj.ID()] = struct{}{}
		}

		state.LatestHitObjectIndex++
	}
}

func getHitCircle(bm *beatmap.BeatMap, id string) (*objects.HitCircle, bool) {
	o, ok := bm.ByID(id)
	if !ok {
		return nil, false
	}

	hc, ok := o.(*objects.HitCircle)
	return hc, ok
}

// supposedClickTimes walks every hit circle currently in
// state.AliveHitCircles. Each of those ids was registered straight
// from the beatmap's own object list in spawnPending, so a lookup
// miss here means the beatmap and state have desynchronized.
func supposedClickTimes(state *GameState, bm *beatmap.BeatMap) (tSupposed float64, has bool, tNext float64, hasNext bool, err error) {
	for id := range state.AliveHitCircles {
		hc, ok := getHitCircle(bm, id)
		if !ok {
			return 0, false, 0, false, &UnknownHitObjectId{ID: id}
		}

		if !has || hc.HitTime < tSupposed {
			tSupposed = hc.HitTime
			has = true
		}

		if hc.HitTime >= state.CurrentTime && (!hasNext || hc.HitTime < tNext) {
			tNext = hc.HitTime
			hasNext = true
		}
	}

	return tSupposed, has, tNext, hasNext, nil
}

func sortedAliveCircles(state *GameState, bm *beatmap.BeatMap) ([]*objects.HitCircle, error) {
	circles := make([]*objects.HitCircle, 0, len(state.AliveHitCircles))

	for id := range state.AliveHitCircles {
		hc, ok := getHitCircle(bm, id)
		if !ok {
			return nil, &UnknownHitObjectId{ID: id}
		}

		circles = append(circles, hc)
	}

	sort.Slice(circles, func(i, j int) bool {
		if circles[i].HitTime != circles[j].HitTime {
			return circles[i].HitTime < circles[j].HitTime
		}

		return circles[i].IDValue < circles[j].IDValue
	})

	return circles, nil
}

func finalizeHitCircle(state *GameState, id string, verdict Verdict, reason MissReason, judgementTime float64) {
	state.HitCircleState[id] = HitCircleState{JudgementTime: judgementTime, Type: verdict, Reason: reason}
	delete(state.AliveHitCircles, id)
	state.JudgedObjects = append(state.JudgedObjects, id)
}

func freshClickThisFrame(state *GameState) bool {
	for _, ps := range state.PressingSince {
		if ps == state.CurrentTime {
			return true
		}
	}

	return false
}

func resolveHitCircles(state *GameState, bm *beatmap.BeatMap, cfg Config, tSupposed float64, hasTSupposed bool, tNextSupposed float64, hasTNextSupposed bool) error {
	circles, err := sortedAliveCircles(state, bm)
	if err != nil {
		return err
	}

	for _, h := range circles {
		// A previous iteration this same frame may have force-missed h
		// as a note-lock blocker; re-check it's still alive.
		if _, alive := state.AliveHitCircles[h.ID()]; !alive {
			continue
		}

		mehWindow := bm.Windows.Meh

		if state.CurrentTime >= h.HitTime+mehWindow+1 {
			finalizeHitCircle(state, h.ID(), Miss, TimeExpired, h.HitTime+mehWindow+1)
			continue
		}

		if !freshClickThisFrame(state) || state.ClickWasUseful {
			continue
		}

		if state.CursorPosition.Dst(h.Position) > h.Radius {
			continue
		}

		locked := false

		switch cfg.NoteLock {
		case NoteLockStable:
			locked = hasTSupposed && tSupposed < h.HitTime
		case NoteLockLazer:
			locked = hasTNextSupposed && tNextSupposed < h.HitTime
		}

		if locked {
			if cfg.NoteLock == NoteLockLazer {
				if err := forceMissBlocker(state, bm, tNextSupposed, hasTNextSupposed, state.CurrentTime); err != nil {
					return err
				}
				// fall through: h may now resolve in the same frame.
			} else {
				continue
			}
		}

		delta := state.CurrentTime - h.HitTime

		windows := bm.Windows
		abs := math.Abs(delta)

		switch {
		case abs <= windows.Great:
			finalizeHitCircle(state, h.ID(), Great, NoMissReason, state.CurrentTime)
			state.ClickWasUseful = true
			return nil
		case abs <= windows.Ok:
			finalizeHitCircle(state, h.ID(), Ok, NoMissReason, state.CurrentTime)
			state.ClickWasUseful = true
			return nil
		case abs <= windows.Meh:
			finalizeHitCircle(state, h.ID(), Meh, NoMissReason, state.CurrentTime)
			state.ClickWasUseful = true
			return nil
		}

		if abs <= windows.Miss && delta < 0 {
			finalizeHitCircle(state, h.ID(), Miss, HitTooEarly, state.CurrentTime)
		}
	}

	return nil
}

// forceMissBlocker implements lazer note lock: forces the upcoming
// circle at tNextSupposed (the one the lock test itself identified) to
// MISS/FORCE_MISS_NOTELOCK so the player's later click can resolve
// this frame. Stacked/simultaneous circles share a hit_time, so the
// candidates are walked in sorted-id order and the first match wins,
// keeping the choice independent of map iteration order.
func forceMissBlocker(state *GameState, bm *beatmap.BeatMap, tNextSupposed float64, has bool, now float64) error {
	if !has {
		return nil
	}

	ids := make([]string, 0, len(state.AliveHitCircles))
	for id := range state.AliveHitCircles {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	for _, id := range ids {
		hc, ok := getHitCircle(bm, id)
		if !ok {
			return &UnknownHitObjectId{ID: id}
		}

		if hc.HitTime == tNextSupposed {
			finalizeHitCircle(state, id, Miss, ForceMissNoteLock, now)
			return nil
		}
	}

	return nil
}

func headJudgement(state *GameState, s *objects.Slider) (hasHead bool, headHitTime float64) {
	hs, ok := state.HitCircleState[s.Head.ID()]
	if !ok || hs.Type == Miss {
		return false, 0
	}

	return true, hs.JudgementTime
}

func predictPosition(previousPosition, cursorPosition vector.Vector2d, previousTime, currentTime, timeToCheck float64) vector.Vector2d {
	denom := currentTime - previousTime
	if denom == 0 {
		return cursorPosition
	}

	t := (timeToCheck - previousTime) / denom

	return vector.Lerp(previousPosition, cursorPosition, t)
}

func evaluateCheckpointHit(state *GameState, s *objects.Slider, cp objects.Checkpoint, previousPosition vector.Vector2d, previousTime float64, pressingSince [buttonCount]float64) bool {
	timeToCheck := math.Ceil(cp.HitTime - checkpointEpsilon)

	predicted := predictPosition(previousPosition, state.CursorPosition, previousTime, state.CurrentTime, timeToCheck)

	wasTracking := state.SliderBodyState[s.ID()].IsTracking
	hasHead, headHitTime := headJudgement(state, s)

	return tracking(wasTracking, s, predicted, timeToCheck, pressingSince, hasHead, headHitTime)
}

// drainSliderCheckpoints evaluates every remaining checkpoint of s
// whose hit_time is at or before cutoff. Used when finalizing an
// expiring slider in phase 6, so a tail checkpoint whose hit_time
// coincides exactly with end_time still gets a fair evaluation before
// the slider's alive-set entry disappears.
func drainSliderCheckpoints(state *GameState, s *objects.Slider, cutoff float64, previousPosition vector.Vector2d, previousTime float64, pressingSince [buttonCount]float64) {
	idx, ok := state.NextCheckpointIndex[s.ID()]
	if !ok {
		return
	}

	for idx < len(s.Checkpoints) && s.Checkpoints[idx].HitTime <= cutoff {
		cp := s.Checkpoints[idx]

		hit := evaluateCheckpointHit(state, s, cp, previousPosition, previousTime, pressingSince)
		state.CheckpointState[cp.IDValue] = CheckPointState{Hit: hit}
		state.JudgedObjects = append(state.JudgedObjects, cp.IDValue)

		idx++
	}

	state.NextCheckpointIndex[s.ID()] = idx
}

func finalizeExpiredSliders(state *GameState, bm *beatmap.BeatMap, previousPosition vector.Vector2d, previousTime float64, oldPressingSince [buttonCount]float64) error {
	var expired []string

	for id := range state.AliveSliders {
		s, ok := bm.Sliders[id]
		if !ok {
			return &UnknownHitObjectId{ID: id}
		}

		if s.EndTime() <= state.CurrentTime {
			expired = append(expired, id)
		}
	}

	sort.Strings(expired)

	for _, id := range expired {
		s := bm.Sliders[id]

		drainSliderCheckpoints(state, s, state.CurrentTime, previousPosition, previousTime, oldPressingSince)

		headID := s.Head.ID()
		if _, judged := state.HitCircleState[headID]; !judged {
			finalizeHitCircle(state, headID, Miss, SliderFinishedFaster, s.EndTime())
		}

		headState, ok := state.HitCircleState[headID]
		if !ok {
			return &InternalInvariantViolated{ID: headID, Detail: "slider head has no recorded hit circle state after finalization"}
		}

		total := len(s.Checkpoints) + 1
		hit := 0

		if headState.Type != Miss {
			hit++
		}

		for _, cp := range s.Checkpoints {
			if state.CheckpointState[cp.IDValue].Hit {
				hit++
			}
		}

		var verdict Verdict

		switch {
		case hit == total:
			verdict = Great
		case hit == 0:
			verdict = Miss
		case float64(hit)/float64(total) >= 0.5:
			verdict = Ok
		default:
			verdict = Meh
		}

		state.SliderVerdict[id] = verdict
		state.JudgedObjects = append(state.JudgedObjects, id)

		delete(state.AliveSliders, id)
		delete(state.NextCheckpointIndex, id)
		delete(state.SliderBodyState, id)
	}

	return nil
}

// pendingCheckpoint names the next unevaluated checkpoint of an alive
// slider, for the cross-slider tie-break in phase 7.
type pendingCheckpoint struct {
	sliderID string
	index    int
	cp       objects.Checkpoint
}

func evaluateCrossedCheckpoints(state *GameState, bm *beatmap.BeatMap, previousPosition vector.Vector2d, previousTime float64, oldPressingSince [buttonCount]float64) {
	for {
		var earliest *pendingCheckpoint

		sliderIDs := make([]string, 0, len(state.AliveSliders))
		for id := range state.AliveSliders {
			sliderIDs = append(sliderIDs, id)
		}

		sort.Strings(sliderIDs)

		for _, id := range sliderIDs {
			idx, ok := state.NextCheckpointIndex[id]
			if !ok {
				continue
			}

			s := bm.Sliders[id]
			if idx >= len(s.Checkpoints) {
				continue
			}

			cp := s.Checkpoints[idx]
			if cp.HitTime >= state.CurrentTime {
				continue
			}

			if earliest == nil || cp.HitTime < earliest.cp.HitTime ||
				(cp.HitTime == earliest.cp.HitTime && id < earliest.sliderID) {
				earliest = &pendingCheckpoint{sliderID: id, index: idx, cp: cp}
			}
		}

		if earliest == nil {
			return
		}

		s := bm.Sliders[earliest.sliderID]

		hit := evaluateCheckpointHit(state, s, earliest.cp, previousPosition, previousTime, oldPressingSince)
		state.CheckpointState[earliest.cp.IDValue] = CheckPointState{Hit: hit}
		state.JudgedObjects = append(state.JudgedObjects, earliest.cp.IDValue)
		if earliest.index+1 >= len(s.Checkpoints) {
			delete(state.NextCheckpointIndex, earliest.sliderID)
		} else {
			state.NextCheckpointIndex[earliest.sliderID] = earliest.index + 1
		}
	}
}

func updateSliderTracking(state *GameState, bm *beatmap.BeatMap) {
	for id := range state.AliveSliders {
		s := bm.Sliders[id]

		wasTracking := state.SliderBodyState[id].IsTracking
		hasHead, headHitTime := headJudgement(state, s)

		isTracking := tracking(wasTracking, s, state.CursorPosition, state.CurrentTime, state.PressingSince, hasHead, headHitTime)

		state.SliderBodyState[id] = SliderBodyState{IsTracking: isTracking}
	}
}

func advanceSpinners(state *GameState) error {
	var expired []string

	for id := range state.AliveSpinners {
		// Spinner end time isn't stored on GameState directly; callers
		// resolve it through the beatmap, mirroring hit circles/sliders.
		sp, ok := state.BeatMap.ByID(id)
		if !ok {
			return &UnknownHitObjectId{ID: id}
		}

		if sp.EndTime() < state.CurrentTime {
			expired = append(expired, id)
		}
	}

	sort.Strings(expired)

	for _, id := range expired {
		if _, ok := state.SpinnerState[id]; !ok {
			state.SpinnerState[id] = SpinnerState{}
		}

		state.JudgedObjects = append(state.JudgedObjects, id)
		delete(state.AliveSpinners, id)
	}

	return nil
}

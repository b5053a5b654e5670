// Package judgement implements the Frame Evaluator:
// the state machine that turns a previous GameState plus the next
// replay frame into the next GameState. Grounded on osu!'s stable
// ruleset update passes (its OsuRuleSet's UpdateClickFor/UpdateNormalFor/
// UpdatePostFor), generalized from that three-pass click/normal/post
// update into a single ordered Advance.
package judgement

import (
	"math"

	"github.com/wieku/danser-go/app/beatmap"
	"github.com/wieku/danser-go/app/replay"
	"github.com/wieku/danser-go/framework/math/vector"
)

// NotPressing is the pressing_since sentinel: +Inf
// compares greater than any real time, so min() with a real press
// time always prefers the real time, and "is this button currently
// held" is just a finite check.
var NotPressing = math.Inf(1)

// Button indexes GameState.PressingSince; 0=left, 1=right.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	buttonCount
)

// GameState is the central mutable entity. It is a pure
// value: every field is a map, slice, or array owned by this struct,
// so Clone can give callers full isolation without the evaluator ever
// needing a lock.
type GameState struct {
	BeatMap *beatmap.BeatMap

	CurrentTime    float64
	CursorPosition vector.Vector2d

	HitCircleState  map[string]HitCircleState
	SliderBodyState map[string]SliderBodyState
	CheckpointState map[string]CheckPointState
	SpinnerState    map[string]SpinnerState

	SliderVerdict map[string]Verdict

	AliveHitCircles map[string]struct{}
	AliveSliders    map[string]struct{}
	AliveSpinners   map[string]struct{}

	// NextCheckpointIndex holds, for each alive slider, the index of
	// the next checkpoint to evaluate. Absence means all checkpoints
	// are consumed.
	NextCheckpointIndex map[string]int

	LatestHitObjectIndex int

	// JudgedObjects is append-only; order is the order decisions were
	// made, used to reconstruct combo/accuracy.
	JudgedObjects []string

	PressingSince [buttonCount]float64

	ClickWasUseful bool
}

// NewGameState builds the initial state for bm: current_time starts
// before any object can have spawned, nothing alive, nothing judged.
func NewGameState(bm *beatmap.BeatMap) *GameState {
	return &GameState{
		BeatMap:             bm,
		CurrentTime:         math.Inf(-1),
		HitCircleState:      make(map[string]HitCircleState),
		SliderBodyState:     make(map[string]SliderBodyState),
		CheckpointState:     make(map[string]CheckPointState),
		SpinnerState:        make(map[string]SpinnerState),
		SliderVerdict:       make(map[string]Verdict),
		AliveHitCircles:     make(map[string]struct{}),
		AliveSliders:        make(map[string]struct{}),
		AliveSpinners:       make(map[string]struct{}),
		NextCheckpointIndex: make(map[string]int),
		PressingSince:       [buttonCount]float64{NotPressing, NotPressing},
	}
}

// Clone deep-copies s: after Clone(s), mutating either copy must not
// affect the other.
func (s *GameState) Clone() *GameState {
	c := &GameState{
		BeatMap:              s.BeatMap, // immutable, safe to share
		CurrentTime:          s.CurrentTime,
		CursorPosition:       s.CursorPosition,
		HitCircleState:       make(map[string]HitCircleState, len(s.HitCircleState)),
		SliderBodyState:      make(map[string]SliderBodyState, len(s.SliderBodyState)),
		CheckpointState:      make(map[string]CheckPointState, len(s.CheckpointState)),
		SpinnerState:         make(map[string]SpinnerState, len(s.SpinnerState)),
		SliderVerdict:        make(map[string]Verdict, len(s.SliderVerdict)),
		AliveHitCircles:      make(map[string]struct{}, len(s.AliveHitCircles)),
		AliveSliders:         make(map[string]struct{}, len(s.AliveSliders)),
		AliveSpinners:        make(map[string]struct{}, len(s.AliveSpinners)),
		NextCheckpointIndex:  make(map[string]int, len(s.NextCheckpointIndex)),
		LatestHitObjectIndex: s.LatestHitObjectIndex,
		JudgedObjects:        append([]string(nil), s.JudgedObjects...),
		PressingSince:        s.PressingSince,
		ClickWasUseful:       s.ClickWasUseful,
	}

	for k, v := range s.HitCircleState {
		c.HitCircleState[k] = v
	}

	for k, v := range s.SliderBodyState {
		c.SliderBodyState[k] = v
	}

	for k, v := range s.CheckpointState {
		c.CheckpointState[k] = v
	}

	for k, v := range s.SpinnerState {
		c.SpinnerState[k] = v
	}

	for k, v := range s.SliderVerdict {
		c.SliderVerdict[k] = v
	}

	for k := range s.AliveHitCircles {
		c.AliveHitCircles[k] = struct{}{}
	}

	for k := range s.AliveSliders {
		c.AliveSliders[k] = struct{}{}
	}

	for k := range s.AliveSpinners {
		c.AliveSpinners[k] = struct{}{}
	}

	for k, v := range s.NextCheckpointIndex {
		c.NextCheckpointIndex[k] = v
	}

	return c
}

// isPressing reports whether the pressing_since entry t marks a
// currently held button, per the NotPressing sentinel.
func isPressing(t float64) bool {
	return !math.IsInf(t, 1)
}

// AnyPressing reports whether at least one button is currently held.
func (s *GameState) AnyPressing() bool {
	for _, t := range s.PressingSince {
		if isPressing(t) {
			return true
		}
	}

	return false
}

func decodeButtons(b replay.Buttons) [buttonCount]bool {
	return [buttonCount]bool{b.IsLeft(), b.IsRight()}
}

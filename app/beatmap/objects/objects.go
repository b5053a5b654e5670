// Package objects defines the hit object data model: a tagged variant
// with three cases (HitCircle, Slider, Spinner) expressed as an
// interface plus a Kind tag that the evaluator switches on. The
// compiler does not check those switches for exhaustiveness. Hit
// objects are immutable once built; the Beatmap
// Builder (app/beatmap) is the only producer.
package objects

import "github.com/wieku/danser-go/framework/math/vector"

type Kind uint8

const (
	KindHitCircle Kind = iota
	KindSlider
	KindSpinner
)

func (k Kind) String() string {
	switch k {
	case KindHitCircle:
		return "HitCircle"
	case KindSlider:
		return "Slider"
	case KindSpinner:
		return "Spinner"
	default:
		return "Unknown"
	}
}

// HitObject is the closed set every phase of the Frame Evaluator
// switches on. Additional cases are not expected; if one is ever
// added, every type switch on Kind() must be revisited.
type HitObject interface {
	ID() string
	Kind() Kind
	SpawnTime() float64
	StartTime() float64
	EndTime() float64
}

// CheckpointKind distinguishes a slider's sub-objects for reporting;
// the Frame Evaluator treats all three identically.
type CheckpointKind uint8

const (
	CheckpointTick CheckpointKind = iota
	CheckpointRepeat
	CheckpointTail
)

// HitCircle is a standalone click target, or (when embedded as
// Slider.Head) the judged head of a slider. Immutable once built.
type HitCircle struct {
	IDValue     string
	Position    vector.Vector2d
	Radius      float64
	HitTime     float64
	SpawnTimeAt float64
}

func (c *HitCircle) ID() string         { return c.IDValue }
func (c *HitCircle) Kind() Kind         { return KindHitCircle }
func (c *HitCircle) SpawnTime() float64 { return c.SpawnTimeAt }
func (c *HitCircle) StartTime() float64 { return c.HitTime }
func (c *HitCircle) EndTime() float64   { return c.HitTime }

// Checkpoint is a slider sub-object (tick, repeat, or tail) evaluated
// independently for tracking.
type Checkpoint struct {
	IDValue  string
	SliderID string
	Kind     CheckpointKind
	HitTime  float64
	Position vector.Vector2d
}

// BallPositionFunc samples a slider's ball position at progress in [0,1].
type BallPositionFunc func(progress float64) vector.Vector2d

// Slider owns its head by value:
// the head's id is registered in the same alive-set the evaluator uses
// for standalone circles, and any lookup goes through the beatmap's
// object index, never through a back-pointer from the slider.
type Slider struct {
	IDValue      string
	Head         HitCircle
	Checkpoints  []Checkpoint
	StartTimeAt  float64
	EndTimeAt    float64
	Duration     float64
	Radius       float64
	BallPosition BallPositionFunc
}

func (s *Slider) ID() string         { return s.IDValue }
func (s *Slider) Kind() Kind         { return KindSlider }
func (s *Slider) SpawnTime() float64 { return s.Head.SpawnTimeAt }
func (s *Slider) StartTime() float64 { return s.StartTimeAt }
func (s *Slider) EndTime() float64   { return s.EndTimeAt }

// Progress maps a wall-clock time within [StartTimeAt, EndTimeAt] to a
// ball-position progress value in [0,1].
func (s *Slider) Progress(t float64) float64 {
	if s.Duration <= 0 {
		return 1
	}

	p := (t - s.StartTimeAt) / s.Duration
	if p < 0 {
		return 0
	}

	if p > 1 {
		return 1
	}

	return p
}

// Spinner carries only its id and timing; its whole-spin count lives in
// judgement.SpinnerState. RPM/required-rotation logic is a documented
// open question and is not implemented here.
type Spinner struct {
	IDValue     string
	StartTimeAt float64
	EndTimeAt   float64
	SpawnTimeAt float64
}

func (s *Spinner) ID() string         { return s.IDValue }
func (s *Spinner) Kind() Kind         { return KindSpinner }
func (s *Spinner) SpawnTime() float64 { return s.SpawnTimeAt }
func (s *Spinner) StartTime() float64 { return s.StartTimeAt }
func (s *Spinner) EndTime() float64   { return s.EndTimeAt }

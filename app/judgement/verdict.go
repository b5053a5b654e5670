package judgement

// Verdict is numerically ordered by leniency so window tables can
// index by verdict: GREAT=0 through MISS=3.
type Verdict uint8

const (
	Great Verdict = iota
	Ok
	Meh
	Miss
)

func (v Verdict) String() string {
	switch v {
	case Great:
		return "GREAT"
	case Ok:
		return "OK"
	case Meh:
		return "MEH"
	case Miss:
		return "MISS"
	default:
		return "UNKNOWN"
	}
}

// MissReason distinguishes why a verdict came out MISS.
type MissReason uint8

const (
	NoMissReason MissReason = iota
	TimeExpired
	HitTooEarly
	ForceMissNoteLock
	SliderFinishedFaster
)

func (r MissReason) String() string {
	switch r {
	case TimeExpired:
		return "TIME_EXPIRED"
	case HitTooEarly:
		return "HIT_TOO_EARLY"
	case ForceMissNoteLock:
		return "FORCE_MISS_NOTELOCK"
	case SliderFinishedFaster:
		return "SLIDER_FINISHED_FASTER"
	default:
		return "NONE"
	}
}

// HitCircleState is recorded once per hit circle (standalone or a
// slider's head) when it is finalized.
type HitCircleState struct {
	JudgementTime float64
	Type          Verdict
	Reason        MissReason // only meaningful when Type == Miss
}

// SliderBodyState tracks whether a slider is currently being followed
// correctly; recomputed every frame.
type SliderBodyState struct {
	IsTracking bool
}

// CheckPointState is recorded once per checkpoint, when the
// simulation crosses its hit time.
type CheckPointState struct {
	Hit bool
}

// SpinnerState tracks completed whole spins; RPM/rotation-requirement
// logic is a documented open question and stays at zero.
type SpinnerState struct {
	WholeSpinCount int
}

// Package stats implements the Derived Statistics module: pure
// functions over a GameState that yield combo, max combo, a verdict
// histogram, and accuracy. Grounded on osu!'s stable
// ruleset's SendResult combo/accuracy bookkeeping and
// blobnom-danser-go-rosu's parallel SendResult, generalized from a
// mutable running update applied hit-by-hit into a single fold over
// GameState.JudgedObjects.
package stats

import (
	"github.com/wieku/danser-go/app/judgement"
	"github.com/wieku/danser-go/app/mods"
)

// Stats is the Derived Statistics record.
type Stats struct {
	Combo     int
	MaxCombo  int
	Histogram [4]int // indexed by judgement.Verdict: GREAT, OK, MEH, MISS
	Accuracy  float64
}

// Compute folds state.JudgedObjects in order. Combo increments on any
// non-miss verdict of a hit circle (standalone or slider head), a
// slider, or a spinner, and resets to zero on a MISS; checkpoints
// never affect combo. Spinners carry no verdict of
// their own, so
// a finalized spinner always counts as a combo-preserving hit.
func Compute(state *judgement.GameState) Stats {
	var s Stats

	for _, id := range state.JudgedObjects {
		switch {
		case isHitCircle(state, id):
			v := state.HitCircleState[id].Type
			s.Histogram[v]++
			s.apply(v != judgement.Miss)

		case isSlider(state, id):
			v := state.SliderVerdict[id]
			s.Histogram[v]++
			s.apply(v != judgement.Miss)

		case isSpinner(state, id):
			s.apply(true)

			// Checkpoint ids fall through here with no effect.
		}
	}

	s.Accuracy = accuracy(s.Histogram)

	return s
}

func (s *Stats) apply(hit bool) {
	if !hit {
		s.Combo = 0
		return
	}

	s.Combo++

	if s.Combo > s.MaxCombo {
		s.MaxCombo = s.Combo
	}
}

func isHitCircle(state *judgement.GameState, id string) bool {
	_, ok := state.HitCircleState[id]
	return ok
}

func isSlider(state *judgement.GameState, id string) bool {
	_, ok := state.SliderVerdict[id]
	return ok
}

func isSpinner(state *judgement.GameState, id string) bool {
	_, ok := state.SpinnerState[id]
	return ok
}

// accuracy is the standard weighted sum: (300g + 100o +
// 50m) / (300(g+o+m+k)), expressed as a 0-100 percentage to match
// osu!'s SendResult convention (callers wanting a 0-1 ratio divide by
// 100 at the call boundary).
func accuracy(hist [4]int) float64 {
	great, ok, meh, miss := hist[judgement.Great], hist[judgement.Ok], hist[judgement.Meh], hist[judgement.Miss]
	total := great + ok + meh + miss

	if total == 0 {
		return 100
	}

	return 100 * float64(300*great+100*ok+50*meh) / float64(300*total)
}

// Grade is the end-of-replay letter grade, reusing
// blobnom-danser-go-rosu's Grade enum shape (grade.go) and
// SendResult's threshold ladder almost verbatim, generalized from
// per-cursor running counters to the final Histogram.
type Grade uint8

const (
	GradeD Grade = iota
	GradeC
	GradeB
	GradeA
	GradeS
	GradeSH
	GradeSS
	GradeSSH
	GradeNone
)

func (g Grade) String() string {
	switch g {
	case GradeD:
		return "D"
	case GradeC:
		return "C"
	case GradeB:
		return "B"
	case GradeA:
		return "A"
	case GradeS:
		return "S"
	case GradeSH:
		return "SH"
	case GradeSS:
		return "SS"
	case GradeSSH:
		return "SSH"
	default:
		return "None"
	}
}

// ComputeGrade applies osu!'s SendResult grade ladder: SS/SSH requires
// every object GREAT, S/SH requires >90% great with under 1% meh and
// zero miss, and so on down to D. Hidden or Flashlight upgrades SS to
// SSH and S to SH, matching the Mods&(Hidden|Flashlight) check that
// ladder uses.
func ComputeGrade(s Stats, m mods.Modifier) Grade {
	great, _, meh, miss := s.Histogram[judgement.Great], s.Histogram[judgement.Ok], s.Histogram[judgement.Meh], s.Histogram[judgement.Miss]
	total := great + s.Histogram[judgement.Ok] + meh + miss

	if total == 0 {
		return GradeNone
	}

	hidden := m.Active(mods.Hidden) || m.Active(mods.Flashlight)
	ratio := float64(great) / float64(total)

	switch {
	case great == total:
		if hidden {
			return GradeSSH
		}

		return GradeSS

	case ratio > 0.9 && float64(meh)/float64(total) < 0.01 && miss == 0:
		if hidden {
			return GradeSH
		}

		return GradeS

	case ratio > 0.8 && miss == 0 || ratio > 0.9:
		return GradeA

	case ratio > 0.7 && miss == 0 || ratio > 0.8:
		return GradeB

	case ratio > 0.6:
		return GradeC

	default:
		return GradeD
	}
}

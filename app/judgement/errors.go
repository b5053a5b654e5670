package judgement

import "fmt"

// FrameOutOfOrder is returned when frame.Time < state.CurrentTime.
// Programming error: Advance rejects the call and leaves state
// unchanged.
type FrameOutOfOrder struct {
	FrameTime, CurrentTime float64
}

func (e *FrameOutOfOrder) Error() string {
	return fmt.Sprintf("frame out of order: frame time %.3f precedes current time %.3f", e.FrameTime, e.CurrentTime)
}

// UnknownHitObjectId indicates beatmap/state desynchronization: an id
// lookup failed. Fatal to the session.
type UnknownHitObjectId struct {
	ID string
}

func (e *UnknownHitObjectId) Error() string {
	return fmt.Sprintf("unknown hit object id: %q", e.ID)
}

// InternalInvariantViolated signals a bug in the evaluator itself,
// e.g. finalizing a slider whose head state is absent while recording
// a non-miss slider verdict. Fatal; carries the offending id for
// diagnosis.
type InternalInvariantViolated struct {
	ID     string
	Detail string
}

func (e *InternalInvariantViolated) Error() string {
	return fmt.Sprintf("internal invariant violated for %q: %s", e.ID, e.Detail)
}

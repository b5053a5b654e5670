// Package replay defines the wire-level ReplayFrame and
// the legacy-preamble discard rule. Replay *file* parsing (decoding
// an .osr container into raw frames) is an external collaborator's
// job; this package only covers the boundary contract: what a
// RawFrame looks like on the wire, and the one piece of real logic the
// core depends on having already happened before it sees a Frame.
package replay

import "github.com/wieku/danser-go/framework/math/vector"

// Buttons is a bitmask; bit 0 is left, bit 1 is right.
type Buttons uint8

const (
	Left Buttons = 1 << iota
	Right
)

func (b Buttons) IsLeft() bool  { return b&Left != 0 }
func (b Buttons) IsRight() bool { return b&Right != 0 }
func (b Buttons) None() bool    { return b == 0 }

// RawFrame is one record straight off the wire: time_ms is a delta
// from the previous raw frame (standard replay-format encoding), not
// an absolute time.
type RawFrame struct {
	TimeMs  int32
	X, Y    float32
	Buttons Buttons
}

// Frame is the core's input: an absolute-time, decoded replay frame.
type Frame struct {
	Time     float64
	Position vector.Vector2d
	Buttons  Buttons
}

// DiscardLegacyPreamble implements the legacy preamble quirk: the
// first three raw frames encode metadata via
// negative/decreasing deltas and are dropped; the fourth establishes
// the initial current_time. Every raw frame's delta, including the
// three discarded ones, still contributes to the running absolute
// time, since deltas accumulate regardless of which frames are kept.
//
// Concrete scenario: raw deltas 0, -1, -1171, 13 yield
// exactly one frame at absolute time -1159.
func DiscardLegacyPreamble(raw []RawFrame) []Frame {
	const preambleLen = 3

	frames := make([]Frame, 0, len(raw))

	var running float64

	for i, r := range raw {
		running += float64(r.TimeMs)

		if i < preambleLen {
			continue
		}

		frames = append(frames, Frame{
			Time:     running,
			Position: vector.NewVec2d(float64(r.X), float64(r.Y)),
			Buttons:  r.Buttons,
		})
	}

	return frames
}

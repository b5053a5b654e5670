package beatmap

import (
	"github.com/wieku/danser-go/app/beatmap/objects"
	"github.com/wieku/danser-go/framework/math/vector"
)

// stackLeniency matches osu!'s default stack leniency: objects whose
// gap is within stackLeniency * preempt are candidates for stacking.
const stackLeniency = 0.7

// applyStacking is the authored-visual stacking pass: circles (and
// slider heads) that land close together in both time and space get a
// small cascading positional offset so they render as a visible stack
// instead of fully overlapping. This is a simplified, single-pass
// forward chain rather than osu!'s original order-dependent
// backward-chasing algorithm.
func applyStacking(chain []*objects.HitCircle, radius, preempt float64) {
	threshold := radius / 10
	timeThreshold := preempt * stackLeniency
	offsetUnit := radius / 10

	stackOf := make(map[*objects.HitCircle]int, len(chain))

	for i := 1; i < len(chain); i++ {
		prev := chain[i-1]
		cur := chain[i]

		gap := cur.HitTime - prev.HitTime
		if gap <= timeThreshold && cur.Position.Dst(prev.Position) < threshold {
			stackOf[cur] = stackOf[prev] + 1
		}
	}

	for _, c := range chain {
		n := float64(stackOf[c])
		if n == 0 {
			continue
		}

		c.Position = c.Position.Sub(vector.NewVec2d(n*offsetUnit, n*offsetUnit))
	}
}

// Package difficulty holds the overall-difficulty-derived scalars the
// Beatmap Builder needs (circle radius, approach preempt, playback
// rate) plus the Hit Window Table: a pure function from
// OD and dialect to the four judgement windows.
package difficulty

import (
	"github.com/wieku/danser-go/app/mods"
	"github.com/wieku/danser-go/framework/math/mutils"
)

// Dialect selects the rule variant.
type Dialect uint8

const (
	Stable Dialect = iota
	Lazer
)

func (d Dialect) String() string {
	if d == Lazer {
		return "lazer"
	}

	return "stable"
}

// Difficulty carries the authored CS/AR/OD scalars plus the active
// mod set, grounded on danser-go's own difficulty.Difficulty
// (referenced throughout its ruleset as diff.GetCS()/GetOD()/GetAR(),
// mods baked in via diff.SetMods).
type Difficulty struct {
	CS, AR, OD float64
	Mods       mods.Modifier
}

// CircleRadius applies the standard CS-to-radius formula plus
// HardRock/Easy CS adjustment, matching the direction (not literal
// constants) of danser-go's own CS handling in NewOsuRuleset.
func (d Difficulty) CircleRadius() float64 {
	cs := d.CS

	switch {
	case d.Mods.Active(mods.HardRock):
		cs = mutils.ClampF64(cs*1.3, 0, 10)
	case d.Mods.Active(mods.Easy):
		cs = cs * 0.5
	}

	return (54.4 - 4.48*cs) / 2
}

// Preempt returns the milliseconds between an object's spawn_time and
// its hit_time (the time the player has to react), from the AR scalar,
// using the standard osu! AR curve: two linear pieces meeting at AR 5.
func (d Difficulty) Preempt() float64 {
	ar := d.AR

	var preempt float64

	switch {
	case ar < 5:
		preempt = 1200 + 600*(5-ar)/5
	case ar == 5:
		preempt = 1200
	default:
		preempt = 1200 - 750*(ar-5)/5
	}

	return preempt / d.Mods.RateMultiplier()
}

// Windows is the Hit Window Table output: [great, ok, meh, miss] in ms.
type Windows struct {
	Great, Ok, Meh, Miss float64
}

// At indexes the table by Verdict ordinal,
// matching the "window tables index by verdict" requirement.
func (w Windows) At(i int) float64 {
	switch i {
	case 0:
		return w.Great
	case 1:
		return w.Ok
	case 2:
		return w.Meh
	default:
		return w.Miss
	}
}

// ComputeWindows is the Hit Window Table: a pure
// function of OD in [0,10] and dialect. Both formulas are piecewise
// linear between the published reference points; lazer widens the
// three hit verdicts and fixes the MISS cutoff independent of OD.
func ComputeWindows(od float64, dialect Dialect) Windows {
	od = mutils.ClampF64(od, 0, 10)

	if dialect == Lazer {
		return Windows{
			Great: lerpRange(od, 80, 25),
			Ok:    lerpRange(od, 140, 70),
			Meh:   lerpRange(od, 200, 115),
			Miss:  400,
		}
	}

	return Windows{
		Great: lerpRange(od, 80, 20),
		Ok:    lerpRange(od, 140, 60),
		Meh:   lerpRange(od, 200, 100),
		Miss:  lerpRange(od, 400, 188), // stable's "can still shake" cutoff
	}
}

// lerpRange linearly interpolates between the OD=0 and OD=10 reference
// points, matching the shape of osu!'s published OD-to-window tables.
func lerpRange(od, atZero, atTen float64) float64 {
	return atZero + (atTen-atZero)*od/10
}

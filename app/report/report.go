// Package report renders a finished GameState as an end-of-replay
// summary table. Grounded on osu!'s stable OsuRuleSet.Update's
// end-of-run block (table construction, header, Humanize calls),
// adapted from "one row per cursor in a multiplayer race" to "one
// table for the single replay's final stats".
package report

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/wieku/danser-go/app/beatmap/difficulty"
	"github.com/wieku/danser-go/app/judgement"
	"github.com/wieku/danser-go/app/stats"
	"github.com/wieku/danser-go/app/utils"
)

// Render builds the summary table for a fully-replayed GameState, in
// the same column order as a multiplayer end screen minus the
// per-player/PP columns this core has no equivalent for.
func Render(state *judgement.GameState, diff difficulty.Difficulty) string {
	s := stats.Compute(state)
	grade := stats.ComputeGrade(s, diff.Mods)

	tableString := &strings.Builder{}
	table := tablewriter.NewWriter(tableString)
	table.SetHeader([]string{"Accuracy", "Grade", "Great", "Ok", "Meh", "Miss", "Combo", "Max Combo"})

	table.Append([]string{
		fmt.Sprintf("%.2f%%", s.Accuracy),
		grade.String(),
		utils.Humanize(s.Histogram[judgement.Great]),
		utils.Humanize(s.Histogram[judgement.Ok]),
		utils.Humanize(s.Histogram[judgement.Meh]),
		utils.Humanize(s.Histogram[judgement.Miss]),
		utils.Humanize(s.Combo),
		utils.Humanize(s.MaxCombo),
	})

	table.Render()

	return tableString.String()
}

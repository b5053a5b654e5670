// Command judgedump runs a beatmap+replay fixture through the full
// judgement pipeline (Beatmap Builder, then Frame Evaluator, then
// Derived Statistics) and prints the end-of-replay report. Grounded
// on the overall shape of osu!'s stable OsuRuleSet as "the thing a
// thin driver wires up and calls Update/UpdateClickFor on per frame";
// judgedump is that driver, reading frames from a JSON fixture file
// instead of a live cursor.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/wieku/danser-go/app/beatmap"
	"github.com/wieku/danser-go/app/config"
	"github.com/wieku/danser-go/app/discovery"
	"github.com/wieku/danser-go/app/judgement"
	"github.com/wieku/danser-go/app/mods"
	"github.com/wieku/danser-go/app/replay"
	"github.com/wieku/danser-go/app/report"
)

// fixture is the on-disk JSON shape judgedump consumes: a blueprint,
// the active mod set, and the raw replay frames (legacy preamble
// included, exactly as they'd come off the wire).
type fixture struct {
	Blueprint beatmap.Blueprint `json:"blueprint"`
	Mods      mods.Modifier     `json:"mods"`
	RawFrames []replay.RawFrame `json:"raw_frames"`
}

func main() {
	fixturePath := flag.String("fixture", "", "path to a single fixture JSON file")
	dir := flag.String("dir", "", "path to a directory of fixture JSON files (batch mode)")
	configPath := flag.String("config", "", "path to a judgement config JSON file (optional)")
	flag.Parse()

	if *fixturePath == "" && *dir == "" {
		log.Fatal("judgedump: one of -fixture or -dir is required")
	}

	cfg := config.Default()

	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("judgedump: %v", err)
		}

		cfg = loaded
	}

	if *fixturePath != "" {
		if err := runFixture(*fixturePath, cfg); err != nil {
			log.Fatalf("judgedump: %v", err)
		}

		return
	}

	fm, err := discovery.NewFileMap(*dir)
	if err != nil {
		log.Fatalf("judgedump: %v", err)
	}

	for _, relative := range fm.All() {
		path, err := fm.Resolve(relative)
		if err != nil {
			log.Fatalf("judgedump: %v", err)
		}

		fmt.Printf("=== %s ===\n", relative)

		if err := runFixture(path, cfg); err != nil {
			log.Printf("judgedump: %s: %v", relative, err)
		}
	}
}

func runFixture(path string, cfg config.Config) error {
	f, err := loadFixture(path)
	if err != nil {
		return err
	}

	dialect := cfg.ResolvedDialect()

	bm, err := beatmap.Build(f.Blueprint, f.Mods, dialect)
	if err != nil {
		return fmt.Errorf("build beatmap: %w", err)
	}

	state := judgement.NewGameState(bm)
	frames := replay.DiscardLegacyPreamble(f.RawFrames)
	evalCfg := judgement.Config{NoteLock: cfg.NoteLock()}

	for _, fr := range frames {
		if err := judgement.Advance(state, fr, evalCfg); err != nil {
			return fmt.Errorf("advance: %w", err)
		}
	}

	fmt.Print(report.Render(state, bm.Difficulty))

	return nil
}

func loadFixture(path string) (fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fixture{}, fmt.Errorf("read %s: %w", path, err)
	}

	var f fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return fixture{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return f, nil
}

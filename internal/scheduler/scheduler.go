// Package scheduler runs the engine on a cron cadence and records
// time-lord handovers between consecutive runs.
package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"AstroEngine/internal/engine"
	"AstroEngine/internal/model"
	"AstroEngine/internal/recorder"
	"AstroEngine/internal/report"
)

// Watcher evaluates one chart repeatedly and tracks which lords hold
// office, emitting a TransitionEvent whenever a technique changes hands.
type Watcher struct {
	Cron     *cron.Cron
	Engine   *engine.Engine
	Chart    *model.Chart
	Opts     engine.Options
	Recorder recorder.Recorder

	prev map[string]string // technique -> lord, from the last run
}

// NewWatcher creates a Watcher.
func NewWatcher(eng *engine.Engine, chart *model.Chart, opts engine.Options, rec recorder.Recorder) *Watcher {
	return &Watcher{
		Cron:     cron.New(cron.WithSeconds()),
		Engine:   eng,
		Chart:    chart,
		Opts:     opts,
		Recorder: rec,
	}
}

// Register registers the watch task.
func (w *Watcher) Register(watchCron string) error {
	if _, err := w.Cron.AddFunc(watchCron, w.tick); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (w *Watcher) Start() {
	w.Cron.Start()
	log.Println("[INFO] watcher started")
}

// Stop stops the cron scheduler gracefully.
func (w *Watcher) Stop() {
	w.Cron.Stop()
	log.Println("[INFO] watcher stopped")
}

// RunNow executes the watch task immediately (for manual trigger / RUN_ON_START).
func (w *Watcher) RunNow() {
	w.tick()
}

func (w *Watcher) tick() {
	now := time.Now().UTC()
	log.Printf("[INFO] running watch evaluation at %s", now.Format(time.RFC3339))

	opts := w.Opts
	opts.At = now
	out, err := w.Engine.Run(w.Chart, opts)
	if err != nil {
		log.Printf("[ERROR] watch run: %v", err)
		return
	}

	fmt.Println(report.Format(out, now))

	if err := w.Recorder.RecordRun(&recorder.RunRecord{
		EvaluatedAt:   now,
		Almuten:       out.Almuten,
		ProfectedSign: out.Profection.ProfectedSign,
		YearLord:      out.Profection.YearLord,
		Evidence:      out.Result.Evidence,
		Dropped:       out.Dropped,
		Suppressions:  out.Suppressions,
	}); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}

	current := activeLords(out)
	for technique, lord := range current {
		before, seen := w.prev[technique]
		if !seen || before == lord {
			continue
		}
		log.Printf("[INFO] %s handover: %s -> %s", technique, before, lord)
		if err := w.Recorder.RecordTransition(&recorder.TransitionEvent{
			Technique: technique,
			From:      before,
			To:        lord,
			At:        now,
		}); err != nil {
			log.Printf("[ERROR] record transition: %v", err)
		}
	}
	w.prev = current
}

// activeLords extracts the lord currently holding each technique from a
// run, looking across survivors, dropped items and suppression losers
// so conflict resolution never hides a handover.
func activeLords(out *engine.Output) map[string]string {
	lords := map[string]string{
		"profection": string(out.Profection.YearLord),
	}
	note := func(e *model.Evidence) {
		if !e.Kind.TimeLord() {
			return
		}
		key := techniqueKey(e)
		if _, taken := lords[key]; !taken {
			lords[key] = e.Subject
		}
	}
	for i := range out.Result.Evidence {
		note(&out.Result.Evidence[i])
	}
	for i := range out.Dropped {
		note(&out.Dropped[i])
	}
	for i := range out.Suppressions {
		note(&out.Suppressions[i].Loser)
	}
	return lords
}

func techniqueKey(e *model.Evidence) string {
	switch e.Kind {
	case model.FactorZR:
		if e.Conditions.ZRLevel1 {
			return "zr_l1"
		}
		return "zr_sub"
	case model.FactorFirdaria:
		if e.Conditions.FirdariaMajor {
			return "firdaria_major"
		}
		return "firdaria_minor"
	}
	return "profection"
}

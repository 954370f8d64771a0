package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"AstroEngine/internal/chartfile"
	"AstroEngine/internal/config"
	"AstroEngine/internal/dignity"
	"AstroEngine/internal/engine"
	"AstroEngine/internal/recorder"
	"AstroEngine/internal/report"
	"AstroEngine/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] AstroEngine starting...")

	mode := flag.String("mode", "report", "run mode: report (one-shot) or watch (cron)")
	atFlag := flag.String("at", "", "evaluation instant in RFC3339; defaults to now")
	flag.Parse()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Load the dignity tables: the standard one always, plus any overlay
	registry, err := dignity.LoadRegistry(cfg.Dignity.OverlayFile)
	if err != nil {
		log.Fatalf("[FATAL] load dignity tables: %v", err)
	}
	table, err := registry.Get(cfg.Dignity.Version)
	if err != nil {
		log.Fatalf("[FATAL] dignity table: %v", err)
	}
	log.Printf("[INFO] dignity table: %s", table.Version())

	// Load the chart
	chart, birth, err := chartfile.Load(cfg.Chart.File)
	if err != nil {
		log.Fatalf("[FATAL] load chart: %v", err)
	}
	log.Printf("[INFO] chart loaded: %s, day=%v", birth.Format("2006-01-02"), chart.IsDay)

	eng := engine.New(table)
	opts := engine.Options{
		Birth:          birth,
		ZRHorizonYears: cfg.ZR.HorizonYears,
		ZRDepth:        cfg.ZR.Depth,
		AntisciaOrb:    cfg.Antiscia.Orb,
		Diurnal:        cfg.Firdaria.Diurnal,
		Nocturnal:      cfg.Firdaria.Nocturnal,
	}

	switch *mode {
	case "report":
		at := time.Now().UTC()
		if *atFlag != "" {
			at, err = time.Parse(time.RFC3339, *atFlag)
			if err != nil {
				log.Fatalf("[FATAL] parse -at: %v", err)
			}
		}
		opts.At = at
		out, err := eng.Run(chart, opts)
		if err != nil {
			log.Fatalf("[FATAL] run: %v", err)
		}
		fmt.Println(report.Format(out, at))

	case "watch":
		// Init recorder
		var rec recorder.Recorder
		if cfg.Database.SQLitePath != "" {
			sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
			if err != nil {
				log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
				rec = recorder.NewNoopRecorder()
			} else {
				rec = sr
				defer sr.Close()
			}
		} else {
			rec = recorder.NewNoopRecorder()
		}

		watcher := scheduler.NewWatcher(eng, chart, opts, rec)
		if err := watcher.Register(cfg.Schedule.WatchCron); err != nil {
			log.Fatalf("[FATAL] register watch task: %v", err)
		}
		watcher.Start()
		defer watcher.Stop()

		if os.Getenv("RUN_ON_START") == "true" {
			log.Println("[INFO] RUN_ON_START enabled, evaluating now")
			go watcher.RunNow()
		}

		log.Println("[INFO] AstroEngine is watching. Press Ctrl+C to stop.")

		// Wait for shutdown signal
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("[INFO] shutdown signal received, stopping...")

	default:
		log.Fatalf("[FATAL] unknown mode %q", *mode)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"gamblelab/adapters/coach/heuristic"
	"gamblelab/adapters/export"
	"gamblelab/adapters/memory"
	"gamblelab/adapters/rng"
	"gamblelab/app"
	"gamblelab/domain/behavior"
	"gamblelab/domain/experiment"
	"gamblelab/ports"
)

// Scripted participant: accepts a gamble when its lambda-weighted utility
// is positive, with optional decision noise. Lambda > 1 simulates a
// loss-averse participant; lambda = 1 an EV maximizer.
func main() {
	seed := flag.Int64("seed", 42, "session seed (reproduces the gamble sequence)")
	lambda := flag.Float64("lambda", 2.25, "loss-aversion coefficient of the scripted participant")
	noise := flag.Float64("noise", 0.1, "probability of a random choice per trial")
	out := flag.String("out", "", "output path (default: loss_aversion_experiment_<participant>.<format>)")
	format := flag.String("format", "csv", "export format: csv or xlsx")
	flag.Parse()

	var exporter ports.TrialExporter
	switch *format {
	case "csv":
		exporter = export.NewCSV()
	case "xlsx":
		exporter = export.NewExcel()
	default:
		log.Fatalf("unknown format %q (csv or xlsx)", *format)
	}

	opts := app.DefaultOptions()
	opts.BaseSeed = *seed
	service := app.NewExperimentService(memory.NewSessionStore(), rng.New(), heuristic.New(), opts)

	ctx := context.Background()
	session, err := service.StartSession(ctx)
	if err != nil {
		log.Fatalf("failed to start session: %v", err)
	}
	if _, err := service.Begin(ctx, session.ID); err != nil {
		log.Fatalf("failed to begin session: %v", err)
	}

	policyRNG, err := rng.New().SeededStream(ctx, "scripted-policy", *seed)
	if err != nil {
		log.Fatalf("failed to seed policy: %v", err)
	}

	total := experiment.DefaultSchedule().Total()
	for i := 0; i < total; i++ {
		progress, err := service.Current(ctx, session.ID)
		if err != nil {
			log.Fatalf("trial %d: %v", i, err)
		}
		g := progress.Gamble

		decision := "reject"
		if 0.5*g.Win-*lambda*0.5*g.Lose > 0 {
			decision = "accept"
		}
		if policyRNG.Float64() < *noise {
			if policyRNG.Intn(2) == 0 {
				decision = "accept"
			} else {
				decision = "reject"
			}
		}

		if _, err := service.Submit(ctx, session.ID, decision, ""); err != nil {
			log.Fatalf("trial %d: %v", i, err)
		}
	}

	rows, err := service.Rows(ctx, session.ID)
	if err != nil {
		log.Fatalf("failed to read log: %v", err)
	}

	path := *out
	if path == "" {
		path = exporter.Filename(session.Participant)
	}
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := exporter.Export(f, rows); err != nil {
		log.Fatalf("failed to export: %v", err)
	}

	summary := app.NewSummaryService(behavior.DefaultEVThreshold).Summarize(rows)
	fmt.Printf("participant %s: %d trials -> %s\n", session.Participant, len(rows), path)
	for _, ps := range summary.Phases {
		fmt.Printf("  %-9s %3d trials  accept %.0f%%  favorable accept %.0f%%\n",
			ps.Phase, ps.Trials, 100*ps.AcceptanceRate, 100*ps.FavorableRate)
	}
	if summary.Shift != nil {
		fmt.Printf("  pre->post favorable acceptance shift %+.0f points (z=%.2f, p=%.3f)\n",
			100*summary.Shift.Delta, summary.Shift.ZScore, summary.Shift.PValue)
	}
}

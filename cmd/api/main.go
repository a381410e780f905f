package main

import (
	"log"

	"gamblelab/adapters/coach/heuristic"
	"gamblelab/adapters/export"
	"gamblelab/adapters/memory"
	"gamblelab/adapters/rng"
	"gamblelab/api"
	"gamblelab/app"
	"gamblelab/domain/behavior"
	"gamblelab/domain/experiment"
	"gamblelab/internal"
	"gamblelab/internal/config"

	"github.com/joho/godotenv"
)

// Standalone JSON API server, for headless deployments that do not want
// the HTML shell.
func main() {
	_ = godotenv.Load()

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.NewDefaultLogger()

	opts := app.Options{
		Schedule: experiment.Schedule{
			PreTrials:      appConfig.Experiment.PreTrials,
			TrainingTrials: appConfig.Experiment.TrainingTrials,
			PostTrials:     appConfig.Experiment.PostTrials,
		},
		Policy: behavior.AdaptPolicy{
			WindowSize:     appConfig.Experiment.FlagWindow,
			EaseFraction:   appConfig.Experiment.EaseFraction,
			HardenFraction: appConfig.Experiment.HardenFraction,
		},
		EVThreshold: appConfig.Experiment.EVThreshold,
		BaseSeed:    appConfig.Experiment.BaseSeed,
	}
	service := app.NewExperimentService(memory.NewSessionStore(), rng.New(), heuristic.New(), opts)
	summaries := app.NewSummaryService(appConfig.Experiment.EVThreshold)

	apiApp := api.NewApp(service, summaries, export.NewCSV(), export.NewExcel(), logger)
	if err := apiApp.Serve(":" + appConfig.Server.APIPort); err != nil {
		log.Fatalf("API server exited: %v", err)
	}
}

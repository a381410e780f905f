package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"

	"gamblelab/adapters/coach/heuristic"
	"gamblelab/adapters/coach/openai"
	"gamblelab/adapters/export"
	"gamblelab/adapters/memory"
	"gamblelab/adapters/rng"
	"gamblelab/api"
	"gamblelab/app"
	"gamblelab/domain/behavior"
	"gamblelab/domain/experiment"
	"gamblelab/internal"
	"gamblelab/internal/config"
	"gamblelab/ports"
	"gamblelab/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load .env file if present (ignore errors - not required)
	_ = godotenv.Load()

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()
	gin.SetMode(appConfig.Server.GinMode)

	service, summaries := buildServices(appConfig)

	server, err := ui.NewServer(service, summaries, export.NewCSV(), export.NewExcel(), logger)
	if err != nil {
		log.Fatalf("Failed to build web shell: %v", err)
	}
	apiApp := api.NewApp(service, summaries, export.NewCSV(), export.NewExcel(), logger)

	var g errgroup.Group
	g.Go(func() error {
		return server.Run(":" + appConfig.Server.Port)
	})
	g.Go(func() error {
		// JSON surface shares the services with the HTML shell.
		return apiApp.Serve(":" + appConfig.Server.APIPort)
	})
	if appConfig.Profiling.Enabled {
		g.Go(func() error {
			logger.Info("pprof listening on :%s", appConfig.Profiling.Port)
			return http.ListenAndServe(":"+appConfig.Profiling.Port, nil)
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}

// buildServices wires the session engine from configuration.
func buildServices(appConfig *config.Config) (*app.ExperimentService, *app.SummaryService) {
	opts := app.Options{
		Schedule: schedule(appConfig),
		Policy: behavior.AdaptPolicy{
			WindowSize:     appConfig.Experiment.FlagWindow,
			EaseFraction:   appConfig.Experiment.EaseFraction,
			HardenFraction: appConfig.Experiment.HardenFraction,
		},
		EVThreshold: appConfig.Experiment.EVThreshold,
		BaseSeed:    appConfig.Experiment.BaseSeed,
	}

	service := app.NewExperimentService(memory.NewSessionStore(), rng.New(), buildCoach(appConfig), opts)
	return service, app.NewSummaryService(appConfig.Experiment.EVThreshold)
}

// buildCoach selects the feedback composer. The templated composer is the
// default; the model-backed one always keeps it as fallback.
func buildCoach(appConfig *config.Config) ports.CoachPort {
	templated := heuristic.New()
	if appConfig.Coach.Provider != "openai" {
		return templated
	}
	return openai.New(openai.Config{
		APIKey:      appConfig.Coach.OpenAIKey,
		Model:       appConfig.Coach.Model,
		Temperature: appConfig.Coach.Temperature,
		MaxTokens:   appConfig.Coach.MaxTokens,
		Timeout:     appConfig.Coach.Timeout,
	}, templated)
}

func schedule(appConfig *config.Config) experiment.Schedule {
	return experiment.Schedule{
		PreTrials:      appConfig.Experiment.PreTrials,
		TrainingTrials: appConfig.Experiment.TrainingTrials,
		PostTrials:     appConfig.Experiment.PostTrials,
	}
}

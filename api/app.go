package api

import (
	"encoding/json"
	"net/http"

	"gamblelab/app"
	"gamblelab/domain/core"
	"gamblelab/internal"
	"gamblelab/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// App is the JSON surface for driving sessions programmatically: scripted
// participants, pilot runs, and export retrieval without the HTML shell.
type App struct {
	router    *chi.Mux
	sessions  *app.ExperimentService
	summaries *app.SummaryService
	csv       ports.TrialExporter
	xlsx      ports.TrialExporter
	logger    *internal.Logger
}

// NewApp creates the API application.
func NewApp(sessions *app.ExperimentService, summaries *app.SummaryService, csv, xlsx ports.TrialExporter, logger *internal.Logger) *App {
	a := &App{
		router:    chi.NewRouter(),
		sessions:  sessions,
		summaries: summaries,
		csv:       csv,
		xlsx:      xlsx,
		logger:    logger,
	}

	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)

	a.router.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", a.handleCreate)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", a.handleProgress)
			r.Post("/begin", a.handleBegin)
			r.Post("/decision", a.handleDecision)
			r.Post("/restart", a.handleRestart)
			r.Get("/rows", a.handleRows)
			r.Get("/summary", a.handleSummary)
			r.Get("/export", a.handleExport)
		})
	})

	return a
}

// Handler returns the HTTP handler.
func (a *App) Handler() http.Handler { return a.router }

// Serve starts the listener.
func (a *App) Serve(addr string) error {
	a.logger.Info("api listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

type sessionResponse struct {
	SessionID     string `json:"session_id"`
	ParticipantID string `json:"participant_id"`
	Phase         string `json:"phase"`
}

type decisionRequest struct {
	Decision   string `json:"decision"`
	Reflection string `json:"reflection"`
}

type decisionResponse struct {
	Flag       string  `json:"flag"`
	Feedback   string  `json:"feedback,omitempty"`
	RTSeconds  float64 `json:"rt_seconds"`
	Difficulty int     `json:"difficulty"`
	Phase      string  `json:"phase"`
	Finished   bool    `json:"finished"`
}

func (a *App) handleCreate(w http.ResponseWriter, r *http.Request) {
	session, err := a.sessions.StartSession(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	a.respond(w, http.StatusCreated, sessionResponse{
		SessionID:     session.ID.String(),
		ParticipantID: session.Participant.String(),
		Phase:         session.Phase.String(),
	})
}

func (a *App) handleBegin(w http.ResponseWriter, r *http.Request) {
	id := core.SessionID(chi.URLParam(r, "sessionID"))
	session, err := a.sessions.Begin(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.respond(w, http.StatusOK, sessionResponse{
		SessionID:     session.ID.String(),
		ParticipantID: session.Participant.String(),
		Phase:         session.Phase.String(),
	})
}

func (a *App) handleProgress(w http.ResponseWriter, r *http.Request) {
	id := core.SessionID(chi.URLParam(r, "sessionID"))
	progress, err := a.sessions.Current(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.respond(w, http.StatusOK, progress)
}

func (a *App) handleDecision(w http.ResponseWriter, r *http.Request) {
	id := core.SessionID(chi.URLParam(r, "sessionID"))

	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := a.sessions.Submit(r.Context(), id, req.Decision, req.Reflection)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.respond(w, http.StatusOK, decisionResponse{
		Flag:       result.Row.Flag.String(),
		Feedback:   result.Feedback,
		RTSeconds:  result.Row.RTSeconds,
		Difficulty: result.Row.Difficulty,
		Phase:      result.Phase.String(),
		Finished:   result.Finished,
	})
}

func (a *App) handleRestart(w http.ResponseWriter, r *http.Request) {
	id := core.SessionID(chi.URLParam(r, "sessionID"))
	session, err := a.sessions.Restart(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.respond(w, http.StatusOK, sessionResponse{
		SessionID:     session.ID.String(),
		ParticipantID: session.Participant.String(),
		Phase:         session.Phase.String(),
	})
}

func (a *App) handleRows(w http.ResponseWriter, r *http.Request) {
	id := core.SessionID(chi.URLParam(r, "sessionID"))
	rows, err := a.sessions.Rows(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.respond(w, http.StatusOK, rows)
}

func (a *App) handleSummary(w http.ResponseWriter, r *http.Request) {
	id := core.SessionID(chi.URLParam(r, "sessionID"))
	rows, err := a.sessions.Rows(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.respond(w, http.StatusOK, a.summaries.Summarize(rows))
}

func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	id := core.SessionID(chi.URLParam(r, "sessionID"))
	progress, err := a.sessions.Current(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	rows, err := a.sessions.Rows(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}

	exporter := a.csv
	if r.URL.Query().Get("format") == "xlsx" {
		exporter = a.xlsx
	}

	w.Header().Set("Content-Disposition", "attachment; filename="+exporter.Filename(progress.Participant))
	w.Header().Set("Content-Type", exporter.ContentType())
	if err := exporter.Export(w, rows); err != nil {
		a.logger.Error("export failed: %v", err)
	}
}

func (a *App) respond(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.logger.Error("failed to encode response: %v", err)
	}
}

func (a *App) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsValidationError(err):
		status = http.StatusBadRequest
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
	}
	a.logger.Warn("request failed: %v", err)
	http.Error(w, err.Error(), status)
}

package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"gamblelab/app"
	"gamblelab/domain/core"
	"gamblelab/domain/experiment"
	"gamblelab/internal"
	"gamblelab/ports"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

const sessionCookie = "gamblelab_session"

// consentText is rendered as markdown on the consent page.
const consentText = "You will make a series of choices between **accepting** or " +
	"**rejecting** a 50/50 lottery.\n\n" +
	"- If you **accept**, you face the possible gain or loss.\n" +
	"- If you **reject**, you get 0.\n\n" +
	"During the training phase, you will receive brief coaching feedback and a " +
	"short reflection prompt."

// Server is the participant-facing web shell. It owns cookies, templates,
// and downloads; every experiment rule lives behind the ExperimentService.
type Server struct {
	router    *gin.Engine
	sessions  *app.ExperimentService
	summaries *app.SummaryService
	csv       ports.TrialExporter
	xlsx      ports.TrialExporter
	logger    *internal.Logger
}

// NewServer creates the web shell.
func NewServer(sessions *app.ExperimentService, summaries *app.SummaryService, csv, xlsx ports.TrialExporter, logger *internal.Logger) (*Server, error) {
	s := &Server{
		router:    gin.Default(),
		sessions:  sessions,
		summaries: summaries,
		csv:       csv,
		xlsx:      xlsx,
		logger:    logger,
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"add":    func(a, b int) int { return a + b },
		"mulpct": func(v float64) float64 { return v * 100 },
		"markdown": func(text string) template.HTML {
			return template.HTML(markdown.ToHTML([]byte(text), nil, nil))
		},
	}).ParseFS(embeddedTemplates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	s.router.SetHTMLTemplate(tmpl)

	s.router.GET("/", s.handleIndex)
	s.router.POST("/begin", s.handleBegin)
	s.router.POST("/decision", s.handleDecision)
	s.router.POST("/restart", s.handleRestart)
	s.router.GET("/download", s.handleDownload(func() ports.TrialExporter { return s.csv }))
	s.router.GET("/download.xlsx", s.handleDownload(func() ports.TrialExporter { return s.xlsx }))

	return s, nil
}

// Run starts the HTTP listener.
func (s *Server) Run(addr string) error {
	s.logger.Info("web shell listening on %s", addr)
	return s.router.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.router }

// session resolves the participant's session from the cookie, creating one
// on first visit.
func (s *Server) session(c *gin.Context) (core.SessionID, error) {
	if raw, err := c.Cookie(sessionCookie); err == nil {
		if id, err := core.ParseSessionID(raw); err == nil {
			if _, err := s.sessions.Current(c.Request.Context(), id); err == nil {
				return id, nil
			}
		}
	}

	session, err := s.sessions.StartSession(c.Request.Context())
	if err != nil {
		return "", err
	}
	c.SetCookie(sessionCookie, session.ID.String(), 0, "/", "", false, true)
	return session.ID, nil
}

func (s *Server) handleIndex(c *gin.Context) {
	id, err := s.session(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	progress, err := s.sessions.Current(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}

	switch {
	case progress.Phase == experiment.PhaseConsent:
		c.HTML(http.StatusOK, "consent.html", gin.H{
			"Participant": progress.Participant.String(),
			"Consent":     consentText,
		})
	case progress.Phase == experiment.PhaseFinished:
		rows, err := s.sessions.Rows(c.Request.Context(), id)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.HTML(http.StatusOK, "done.html", gin.H{
			"Participant": progress.Participant.String(),
			"Rows":        rows,
			"Summary":     s.summaries.Summarize(rows),
		})
	default:
		c.HTML(http.StatusOK, "trial.html", gin.H{
			"Participant":  progress.Participant.String(),
			"Phase":        progress.Phase.String(),
			"Trial":        progress.TrialIndex + 1,
			"Total":        progress.TotalTrials,
			"Gamble":       progress.Gamble,
			"Training":     progress.Phase.IsTraining(),
			"LastFeedback": progress.LastFeedback,
		})
	}
}

func (s *Server) handleBegin(c *gin.Context) {
	id, err := s.session(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	if _, err := s.sessions.Begin(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleDecision(c *gin.Context) {
	id, err := s.session(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	decision := c.PostForm("decision")
	reflection := c.PostForm("reflection")

	if _, err := s.sessions.Submit(c.Request.Context(), id, decision, reflection); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleRestart(c *gin.Context) {
	id, err := s.session(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	if _, err := s.sessions.Restart(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleDownload(exporter func() ports.TrialExporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := s.session(c)
		if err != nil {
			s.fail(c, err)
			return
		}
		progress, err := s.sessions.Current(c.Request.Context(), id)
		if err != nil {
			s.fail(c, err)
			return
		}
		rows, err := s.sessions.Rows(c.Request.Context(), id)
		if err != nil {
			s.fail(c, err)
			return
		}

		e := exporter()
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", e.Filename(progress.Participant)))
		c.Header("Content-Type", e.ContentType())
		c.Status(http.StatusOK)
		if err := e.Export(c.Writer, rows); err != nil {
			s.logger.Error("export failed: %v", err)
		}
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsValidationError(err):
		status = http.StatusBadRequest
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
	}
	s.logger.Warn("request failed: %v", err)
	c.String(status, "error: %v", err)
}

// Package web serves the browser UI: a single page with track, difficulty
// and dialect selectors, the current question, an answer editor and the
// grading result.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/abhisek/sqlcoach/internal/config"
	"github.com/abhisek/sqlcoach/internal/grader"
	"github.com/abhisek/sqlcoach/internal/question"
	"github.com/abhisek/sqlcoach/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// AnswerGrader evaluates a submitted answer against the current question.
type AnswerGrader interface {
	Grade(ctx context.Context, input grader.Input) (*grader.Result, error)
}

// Server ties the HTTP surface to the question generator and grader.
type Server struct {
	engine    *gin.Engine
	sessions  *session.Manager
	generator question.Generator
	grader    AnswerGrader
	tmpl      *template.Template
}

// New builds the gin engine and registers all routes.
func New(cfg config.Config, gen question.Generator, grd AnswerGrader) (*Server, error) {
	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	engine := gin.New()

	if err := engine.SetTrustedProxies(cfg.TrustProxies); err != nil {
		slog.Error("error setting trusted proxies", "error", err)
	}

	engine.Use(sloggin.New(slog.Default()))
	engine.Use(gin.Recovery())

	if len(cfg.AllowedOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "User-Agent", "Referer"},
			AllowCredentials: true,
		}))
	}

	s := &Server{
		engine:    engine,
		sessions:  session.NewManager(time.Duration(cfg.SessionMaxIdleMinutes) * time.Minute),
		generator: gen,
		grader:    grd,
		tmpl:      tmpl,
	}

	engine.GET("/", s.handleIndex)
	engine.POST("/generate", s.handleGenerate)
	engine.POST("/submit", s.handleSubmit)
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return s, nil
}

// Handler exposes the engine for tests and custom servers.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run(port int) error {
	addr := fmt.Sprintf(":%d", port)
	slog.Info("server starting", "address", addr)
	return s.engine.Run(addr)
}

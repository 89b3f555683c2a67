package web

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/sqlcoach/internal/grader"
	"github.com/abhisek/sqlcoach/internal/llm"
	"github.com/abhisek/sqlcoach/internal/question"
	"github.com/abhisek/sqlcoach/internal/session"
)

// viewData is everything the page template renders from.
type viewData struct {
	State *session.State

	Tracks       []question.Track
	Difficulties []question.Difficulty
	Dialects     []question.Dialect

	// Error and RawReply feed the error banner. RawReply is the model's
	// unparseable text, when one is available.
	Error    string
	RawReply string

	// Warning feeds the non-fatal notice banner, e.g. an empty answer.
	Warning string
}

func (s *Server) newViewData(st *session.State) viewData {
	return viewData{
		State:        st,
		Tracks:       question.Tracks(),
		Difficulties: question.Difficulties(),
		Dialects:     question.Dialects(),
	}
}

func (s *Server) render(c *gin.Context, data viewData) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(c.Writer, "index.html", data); err != nil {
		slog.Error("error rendering page", "error", err)
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	id, st := s.sessions.Get(c.Request)
	session.SetCookie(c.Writer, id)

	st.Lock()
	defer st.Unlock()

	s.render(c, s.newViewData(st))
}

// applySelectors reads the three selector fields from the form and updates
// the session state. Missing or unknown values keep the previous selection.
func applySelectors(c *gin.Context, st *session.State) {
	if t, err := question.ParseTrack(c.PostForm("track")); err == nil {
		st.Track = t
	}
	if d, err := question.ParseDifficulty(c.PostForm("difficulty")); err == nil {
		st.Difficulty = d
	}
	if d, err := question.ParseDialect(c.PostForm("dialect")); err == nil {
		st.Dialect = d
	}
}

func (s *Server) handleGenerate(c *gin.Context) {
	id, st := s.sessions.Get(c.Request)
	session.SetCookie(c.Writer, id)

	// Held across the model call: concurrent requests on one session
	// (two tabs, a double-clicked button) serialize instead of racing.
	st.Lock()
	defer st.Unlock()

	applySelectors(c, st)

	q, err := s.generator.Generate(c.Request.Context(), question.GenerateInput{
		Track:      st.Track,
		Difficulty: st.Difficulty,
		Dialect:    st.Dialect,
	})
	if err != nil {
		slog.Error("question generation failed", "error", err,
			"track", st.Track, "difficulty", st.Difficulty, "dialect", st.Dialect)

		data := s.newViewData(st)
		data.Error = "Could not generate a question: " + userMessage(err)
		if raw, ok := llm.RawContent(err); ok {
			data.RawReply = string(raw)
		}
		s.render(c, data)
		return
	}

	st.SetQuestion(q)
	s.render(c, s.newViewData(st))
}

func (s *Server) handleSubmit(c *gin.Context) {
	id, st := s.sessions.Get(c.Request)
	session.SetCookie(c.Writer, id)

	st.Lock()
	defer st.Unlock()

	applySelectors(c, st)
	answer := c.PostForm("answer")

	if st.Question == nil {
		data := s.newViewData(st)
		data.Warning = "Generate a question before submitting an answer."
		s.render(c, data)
		return
	}

	result, err := s.grader.Grade(c.Request.Context(), grader.Input{
		Question: st.Question,
		Answer:   answer,
	})
	if err != nil {
		if errors.Is(err, grader.ErrEmptyAnswer) {
			data := s.newViewData(st)
			data.Warning = "Please write your SQL answer before submitting."
			s.render(c, data)
			return
		}

		slog.Error("answer grading failed", "error", err)

		st.Answer = answer
		data := s.newViewData(st)
		data.Error = "Could not grade your answer: " + userMessage(err)
		if raw, ok := llm.RawContent(err); ok {
			data.RawReply = string(raw)
		}
		s.render(c, data)
		return
	}

	st.Answer = answer
	st.Result = result
	s.render(c, s.newViewData(st))
}

// userMessage maps provider errors to short human-readable text.
func userMessage(err error) string {
	var (
		rateLimited *llm.ErrRateLimit
		unavailable *llm.ErrProviderUnavailable
		invalid     *llm.ErrInvalidResponse
		truncated   *llm.ErrMaxTokensExceeded
	)
	switch {
	case errors.As(err, &rateLimited):
		return "the model is rate-limited right now, try again in a moment."
	case errors.As(err, &unavailable):
		return "the model provider is unavailable."
	case errors.As(err, &invalid):
		return "the model returned an unexpected reply."
	case errors.As(err, &truncated):
		return "the model reply was cut off before completion."
	default:
		return err.Error()
	}
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// paragraphs splits feedback text on line breaks for rendering
		// as separate <p> elements.
		"paragraphs": func(s string) []string {
			var out []string
			for _, p := range strings.Split(s, "\n") {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
			return out
		},
		"verdictClass": func(verdict string) string {
			switch verdict {
			case "Correct":
				return "verdict-correct"
			case "Partially Correct":
				return "verdict-partial"
			default:
				return "verdict-incorrect"
			}
		},
	}
}

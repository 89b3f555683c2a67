package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sqlcoach/internal/config"
	"github.com/abhisek/sqlcoach/internal/grader"
	"github.com/abhisek/sqlcoach/internal/llm"
	"github.com/abhisek/sqlcoach/internal/question"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func questionJSON() json.RawMessage {
	return json.RawMessage(`{
		"question_text": "Find the top 5 customers by revenue.",
		"schema_description": "customers(id, name)\norders(id, customer_id, total_amount)",
		"reference_sql": "SELECT c.name, SUM(o.total_amount) AS revenue FROM customers c JOIN orders o ON o.customer_id = c.id GROUP BY c.name ORDER BY revenue DESC LIMIT 5;",
		"explanation": "Join, aggregate, order, limit."
	}`)
}

func gradingJSON() json.RawMessage {
	return json.RawMessage(`{
		"score": 92,
		"verdict": "Correct",
		"feedback": "Solid query.\nGood column aliasing."
	}`)
}

func newTestServer(t *testing.T, mock *llm.MockProvider) *Server {
	t.Helper()
	srv, err := New(config.Config{Port: 8080},
		question.New(mock, question.DefaultConfig()),
		grader.New(mock, grader.DefaultConfig()))
	require.NoError(t, err)
	return srv
}

// do sends a request carrying the session cookie from a previous response,
// when one is given.
func do(t *testing.T, srv *Server, method, path string, form url.Values, prev *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if prev != nil {
		for _, c := range prev.Result().Cookies() {
			req.AddCookie(c)
		}
	}

	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)
	return w
}

func TestIndex_Welcome(t *testing.T) {
	srv := newTestServer(t, llm.NewMockProvider())

	w := do(t, srv, http.MethodGet, "/", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome")
	assert.Contains(t, w.Body.String(), "Generate question")

	// All selector options render.
	for _, track := range question.Tracks() {
		assert.Contains(t, w.Body.String(), string(track))
	}
	for _, d := range question.Dialects() {
		assert.Contains(t, w.Body.String(), string(d))
	}

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "sqlcoach_session", cookies[0].Name)
}

func TestGenerate_ShowsQuestion(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: questionJSON()})
	srv := newTestServer(t, mock)

	form := url.Values{
		"track":      {string(question.TrackAnalytics)},
		"difficulty": {string(question.DifficultyIntermediate)},
		"dialect":    {string(question.DialectSnowflake)},
	}
	w := do(t, srv, http.MethodPost, "/generate", form, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Find the top 5 customers by revenue.")
	assert.Contains(t, body, "customers(id, name)")
	assert.NotContains(t, body, "Welcome")

	// The selections reach the prompt.
	req := mock.LastCall()
	assert.Contains(t, req.System, "SQL Dialect: Snowflake")
	assert.Contains(t, req.Messages[0].Content, "intermediate")
}

func TestGenerate_ErrorBannerWithRawReply(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`I am sorry, I cannot produce JSON today.`),
	})
	srv := newTestServer(t, mock)

	w := do(t, srv, http.MethodPost, "/generate", url.Values{}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Could not generate a question")
	assert.Contains(t, body, "Show raw model reply")
	assert.Contains(t, body, "I cannot produce JSON today")
}

func TestSubmit_ShowsResult(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: questionJSON()},
		llm.MockResponse{Content: gradingJSON()},
	)
	srv := newTestServer(t, mock)

	gen := do(t, srv, http.MethodPost, "/generate", url.Values{}, nil)
	require.Equal(t, http.StatusOK, gen.Code)

	w := do(t, srv, http.MethodPost, "/submit", url.Values{
		"answer": {"SELECT name FROM customers;"},
	}, gen)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "92/100")
	assert.Contains(t, body, "Correct")
	assert.Contains(t, body, "Solid query.")
	assert.Contains(t, body, "Good column aliasing.")
	// The answer is echoed back into the editor.
	assert.Contains(t, body, "SELECT name FROM customers;")
}

func TestSubmit_EmptyAnswerWarning(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: questionJSON()})
	srv := newTestServer(t, mock)

	gen := do(t, srv, http.MethodPost, "/generate", url.Values{}, nil)
	require.Equal(t, http.StatusOK, gen.Code)
	callsAfterGenerate := mock.CallCount()

	w := do(t, srv, http.MethodPost, "/submit", url.Values{
		"answer": {"   \n\t"},
	}, gen)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Please write your SQL answer")
	assert.Equal(t, callsAfterGenerate, mock.CallCount(), "an empty answer must not reach the model")
}

func TestSubmit_WithoutQuestion(t *testing.T) {
	mock := llm.NewMockProvider()
	srv := newTestServer(t, mock)

	w := do(t, srv, http.MethodPost, "/submit", url.Values{
		"answer": {"SELECT 1;"},
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Generate a question before submitting")
	assert.Equal(t, 0, mock.CallCount())
}

func TestGenerate_ReplacesResultAndAnswer(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: questionJSON()},
		llm.MockResponse{Content: gradingJSON()},
		llm.MockResponse{Content: questionJSON()},
	)
	srv := newTestServer(t, mock)

	gen := do(t, srv, http.MethodPost, "/generate", url.Values{}, nil)
	sub := do(t, srv, http.MethodPost, "/submit", url.Values{"answer": {"SELECT 1;"}}, gen)
	require.Contains(t, sub.Body.String(), "92/100")

	w := do(t, srv, http.MethodPost, "/generate", url.Values{}, sub)

	body := w.Body.String()
	assert.NotContains(t, body, "92/100", "a new question must clear the previous result")
	assert.NotContains(t, body, ">SELECT 1;<", "a new question must clear the previous answer")
}

func TestSelectors_InvalidValuesKeepDefaults(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: questionJSON()})
	srv := newTestServer(t, mock)

	w := do(t, srv, http.MethodPost, "/generate", url.Values{
		"track":      {"<script>alert(1)</script>"},
		"difficulty": {"Nightmare"},
		"dialect":    {"Access"},
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	req := mock.LastCall()
	assert.Contains(t, req.Messages[0].Content, "beginner")
	assert.Contains(t, req.Messages[0].Content, "PostgreSQL")
}

func TestGenerate_ConcurrentRequestsSameSession(t *testing.T) {
	mock := llm.NewMockProvider()
	for i := 0; i < 10; i++ {
		mock.AddResponse(llm.MockResponse{Content: questionJSON()})
	}
	srv := newTestServer(t, mock)

	// Establish the shared session cookie.
	first := do(t, srv, http.MethodGet, "/", nil, nil)
	require.NotEmpty(t, first.Result().Cookies())

	var wg sync.WaitGroup
	codes := make([]int, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := do(t, srv, http.MethodPost, "/generate", url.Values{
				"difficulty": {string(question.DifficultyAdvanced)},
			}, first)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		assert.Equal(t, http.StatusOK, code, "request %d", i)
	}

	// The shared state settled on one coherent view.
	w := do(t, srv, http.MethodGet, "/", nil, first)
	assert.Contains(t, w.Body.String(), "Find the top 5 customers by revenue.")
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, llm.NewMockProvider())

	w := do(t, srv, http.MethodGet, "/healthz", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

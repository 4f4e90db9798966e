package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/MuhammadAbbas01/unibot"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NoKnowledgeBase is returned to clients while no assistant is connected.
const NoKnowledgeBase = "knowledge base not loaded; run scrape first"

// Connector opens an assistant over the store once one exists.
type Connector func(ctx context.Context) (unibot.Assistant, error)

// ScrapeStatus describes the most recent background scrape.
type ScrapeStatus struct {
	URL        string               `json:"url"`
	MaxPages   int                  `json:"max_pages"`
	Running    bool                 `json:"running"`
	StartedAt  time.Time            `json:"started_at"`
	FinishedAt *time.Time           `json:"finished_at,omitempty"`
	Result     *unibot.ScrapeResult `json:"result,omitempty"`
	Error      string               `json:"error,omitempty"`
}

// Server exposes chat, scrape and knowledge base endpoints as JSON.
// At most one scrape runs at a time; when it finishes the assistant is
// reloaded, or connected if there was none.
type Server struct {
	router   chi.Router
	scraper  unibot.Scraper
	connect  Connector
	metrics  http.Handler
	logger   *slog.Logger
	maxPages int
	now      func() time.Time
	mws      []func(http.Handler) http.Handler

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	assistant unibot.Assistant
	scrape    *ScrapeStatus
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithAssistant sets the assistant answering chat requests.
func WithAssistant(a unibot.Assistant) ServerOption {
	return func(s *Server) { s.assistant = a }
}

// WithConnector sets how an assistant is opened after the first scrape.
func WithConnector(c Connector) ServerOption {
	return func(s *Server) { s.connect = c }
}

// WithMetricsHandler serves h at /metrics.
func WithMetricsHandler(h http.Handler) ServerOption {
	return func(s *Server) { s.metrics = h }
}

// WithLogger sets the request and background job logger.
func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) { s.logger = l }
}

// WithMiddleware appends middleware to the router.
func WithMiddleware(mws ...func(http.Handler) http.Handler) ServerOption {
	return func(s *Server) { s.mws = append(s.mws, mws...) }
}

// WithDefaultMaxPages sets the page cap used when a scrape request omits one.
func WithDefaultMaxPages(n int) ServerOption {
	return func(s *Server) { s.maxPages = n }
}

// NewServer returns a Server that scrapes with scraper. scraper may be nil,
// in which case /api/scrape answers 503.
func NewServer(scraper unibot.Scraper, opts ...ServerOption) *Server {
	s := &Server{
		scraper:  scraper,
		logger:   slog.New(slog.DiscardHandler),
		maxPages: 500,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	for _, mw := range s.mws {
		r.Use(mw)
	}

	r.Get("/healthz", s.healthz)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", s.chat)
		r.Get("/status", s.status)
		r.Post("/scrape", s.startScrape)
		r.Get("/knowledge-base-info", s.knowledgeBaseInfo)
	})

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close cancels any running scrape and waits for it to return.
func (s *Server) Close() error {
	s.cancel()
	s.wg.Wait()
	return nil
}

// Wait blocks until the running scrape, if any, has finished.
func (s *Server) Wait() {
	s.wg.Wait()
}

func (s *Server) currentAssistant() unibot.Assistant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assistant
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		writeError(w, http.StatusBadRequest, "message required")
		return
	}

	a := s.currentAssistant()
	if a == nil {
		writeError(w, http.StatusServiceUnavailable, NoKnowledgeBase)
		return
	}

	reply, err := a.Chat(r.Context(), msg)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Response: reply, Timestamp: s.now()})
}

type statusResponse struct {
	Status              string        `json:"status"`
	KnowledgeBaseLoaded bool          `json:"knowledge_base_loaded"`
	Scraping            bool          `json:"scraping"`
	LastScrape          *ScrapeStatus `json:"last_scrape,omitempty"`
}

func (s *Server) status(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	resp := statusResponse{
		Status:              "online",
		KnowledgeBaseLoaded: s.assistant != nil,
	}
	if s.scrape != nil {
		last := *s.scrape
		resp.LastScrape = &last
		resp.Scraping = last.Running
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

type scrapeRequest struct {
	URL      string `json:"url"`
	MaxPages *int   `json:"max_pages"`
}

func (s *Server) startScrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url required")
		return
	}
	maxPages := s.maxPages
	if req.MaxPages != nil {
		if *req.MaxPages <= 0 {
			writeError(w, http.StatusBadRequest, "max_pages must be positive")
			return
		}
		maxPages = *req.MaxPages
	}
	if s.scraper == nil {
		writeError(w, http.StatusServiceUnavailable, "scraping is not enabled")
		return
	}

	s.mu.Lock()
	if s.scrape != nil && s.scrape.Running {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "scrape already running")
		return
	}
	st := &ScrapeStatus{URL: req.URL, MaxPages: maxPages, Running: true, StartedAt: s.now()}
	s.scrape = st
	s.wg.Add(1)
	s.mu.Unlock()

	go s.runScrape(req.URL, maxPages)

	writeJSON(w, http.StatusAccepted, map[string]any{
		"status":    "started",
		"url":       req.URL,
		"max_pages": maxPages,
	})
}

func (s *Server) runScrape(seed string, maxPages int) {
	defer s.wg.Done()

	res, err := s.scraper.Scrape(s.ctx, seed, maxPages)
	if err != nil {
		s.logger.Error("scrape failed", "url", seed, "error", err)
	} else {
		s.logger.Info("scrape finished", "url", seed, "visited", res.Visited, "saved", res.Saved, "failed", res.Failed)
	}

	// Partial results are still worth serving.
	if res != nil {
		if rerr := s.refresh(s.ctx); rerr != nil {
			s.logger.Error("reload knowledge base", "error", rerr)
			if err == nil {
				err = rerr
			}
		}
	}

	finished := s.now()
	s.mu.Lock()
	s.scrape.Running = false
	s.scrape.FinishedAt = &finished
	s.scrape.Result = res
	if err != nil {
		s.scrape.Error = unibot.ErrorMessage(err)
	}
	s.mu.Unlock()
}

func (s *Server) refresh(ctx context.Context) error {
	if a := s.currentAssistant(); a != nil {
		return a.Reload(ctx)
	}
	if s.connect == nil {
		return nil
	}
	a, err := s.connect(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.assistant = a
	s.mu.Unlock()
	return nil
}

func (s *Server) knowledgeBaseInfo(w http.ResponseWriter, _ *http.Request) {
	a := s.currentAssistant()
	if a == nil {
		writeError(w, http.StatusServiceUnavailable, NoKnowledgeBase)
		return
	}
	writeJSON(w, http.StatusOK, a.Stats())
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
		return
	}
	code := unibot.ErrorCode(err)
	if code == unibot.EINTERNAL {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeError(w, errorStatus(code), unibot.ErrorMessage(err))
}

var codes = map[string]int{
	unibot.ECONFLICT: http.StatusConflict,
	unibot.EINVALID:  http.StatusBadRequest,
	unibot.ENOTFOUND: http.StatusNotFound,
	unibot.ENOSTORE:  http.StatusServiceUnavailable,
	unibot.EFETCH:    http.StatusBadGateway,
}

func errorStatus(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

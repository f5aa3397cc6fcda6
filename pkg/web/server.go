package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/tmaxmax/go-sse"
)

//go:embed templates
var content embed.FS

var indexTmpl = template.Must(template.ParseFS(content, "templates/index.html"))

// ServerConfig holds configuration for the web server.
type ServerConfig struct {
	Port       int    // port to listen on
	Title      string // shown in the dashboard header, e.g. target base url
	Revision   string // application revision, optional
	OutputDir  string // served under /screenshots/, empty disables the route
	BufferSize int    // events kept for late joiners, DefaultBufferSize when 0
}

// Server provides the HTTP server for the live run dashboard.
// events are kept in a ring buffer for /api/events and streamed to /events over SSE.
type Server struct {
	cfg    ServerConfig
	buffer *Buffer
	sse    *sse.Server

	mu  sync.Mutex
	srv *http.Server
}

// NewServer creates a new web server.
func NewServer(cfg ServerConfig) *Server {
	return &Server{
		cfg:    cfg,
		buffer: NewBuffer(cfg.BufferSize),
		sse:    &sse.Server{},
	}
}

// Publish stores the event for replay and sends it to connected SSE clients.
func (s *Server) Publish(e Event) error {
	s.buffer.Add(e)
	data, err := e.JSON()
	if err != nil {
		return err
	}
	msg := &sse.Message{}
	msg.AppendData(string(data))
	if err := s.sse.Publish(msg); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Buffer returns the server's event buffer.
func (s *Server) Buffer() *Buffer {
	return s.buffer
}

// Handler returns the dashboard routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.Handle("GET /events", s.sse)
	mux.HandleFunc("GET /api/events", s.handleHistory)
	if s.cfg.OutputDir != "" {
		mux.Handle("GET /screenshots/", http.StripPrefix("/screenshots/", http.FileServer(http.Dir(s.cfg.OutputDir))))
	}
	return mux
}

// Start begins listening for HTTP requests.
// blocks until the context is canceled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()

	// start shutdown listener
	go func() {
		<-ctx.Done()
		if err := s.Stop(); err != nil {
			log.Printf("[WARN] %v", err)
		}
	}()

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("http server: %w", err)
}

// Stop disconnects SSE clients and gracefully shuts down the server.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// sse sessions are long-lived, close them first so http shutdown doesn't wait for them
	if err := s.sse.Shutdown(ctx); err != nil && !errors.Is(err, sse.ErrProviderClosed) {
		return fmt.Errorf("shutdown sse: %w", err)
	}
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

// templateData holds data for the dashboard template.
type templateData struct {
	Title    string
	Revision string
}

// handleIndex serves the main dashboard page.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, templateData{Title: s.cfg.Title, Revision: s.cfg.Revision}); err != nil {
		http.Error(w, "template execution error", http.StatusInternalServerError)
	}
}

// handleHistory serves buffered events as JSON, optionally filtered by ?scenario=name.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	var events []Event
	if name := r.URL.Query().Get("scenario"); name != "" {
		events = s.buffer.ByScenario(name)
	} else {
		events = s.buffer.All()
	}
	if events == nil {
		events = []Event{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(events); err != nil {
		log.Printf("[WARN] failed to encode events: %v", err)
	}
}

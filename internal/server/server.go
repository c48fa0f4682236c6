package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/factcheck-agent/internal/config"
	"github.com/jonathan/factcheck-agent/internal/extract"
	"github.com/jonathan/factcheck-agent/internal/provider"
	"github.com/jonathan/factcheck-agent/internal/types"
)

// Checker is the gateway capability the orchestrator needs.
type Checker interface {
	Check(ctx context.Context, content string, reqCtx provider.ReqContext) (*types.FactCheckResult, error)
}

// ExtractFunc derives an article from a URL.
type ExtractFunc func(ctx context.Context, url string, opts *extract.Options) (*types.ExtractedArticle, error)

// Server represents the HTTP server.
type Server struct {
	httpServer     *http.Server
	cfg            *config.Config
	checker        Checker
	extractArticle ExtractFunc
}

// New creates a new server instance.
func New(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s := &Server{
		cfg:            cfg,
		checker:        provider.NewGateway(cfg),
		extractArticle: extract.Article,
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ListenPort()),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // provider calls can be slow
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler builds the routed and middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /factcheck", s.handleFactCheck)
	mux.HandleFunc("POST /factcheck/report", s.handleReport)
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.withRecovery(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging logs each request with a generated request ID.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		start := time.Now()
		log.Printf("[%s] %s %s", requestID, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
		log.Printf("[%s] completed in %s", requestID, time.Since(start))
	})
}

// withRecovery catches panics anywhere in the pipeline and reports a
// generic 500 with no internal detail beyond a log line.
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic handling %s %s: %v", r.Method, r.URL.Path, rec)
				s.errorResponse(w, http.StatusInternalServerError, msgInternal)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// jsonResponse writes a JSON response with the given status
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

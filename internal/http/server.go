// Package http exposes the finance service as a JSON API for the dashboard
// frontend.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"finsight/internal/services"
)

type Server struct {
	http.Server
	finance       *services.FinanceService
	rateLimiter   *rateLimiter
	allowedOrigin string

	// LRU caches so identical AI-backed requests inside the TTL don't
	// re-bill the model. Numeric-only endpoints are cheap and uncached.
	simCache *lruCache[services.SimulationResult]
	askCache *lruCache[services.AskResult]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, finance *services.FinanceService, allowedOrigin string) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		finance:          finance,
		rateLimiter:      newRateLimiter(),
		allowedOrigin:    allowedOrigin,
		simCache:         newLRUCache[services.SimulationResult](100, 5*time.Minute),
		askCache:         newLRUCache[services.AskResult](200, 5*time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /api/v1/summary", s.withMiddleware(s.handleSummary))
	mux.HandleFunc("POST /api/v1/ask", s.withMiddleware(s.handleAsk))
	mux.HandleFunc("POST /api/v1/simulate", s.withMiddleware(s.handleSimulate))
	mux.HandleFunc("GET /api/v1/all_transactions", s.withMiddleware(s.handleAllTransactions))
	mux.HandleFunc("OPTIONS /api/v1/", s.handlePreflight)

	return s
}

// withMiddleware adds CORS and security headers, rate limiting and request
// logging to a handler.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := clientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"client_ip", clientIP)

		s.setCORSHeaders(w)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Rate-limit the AI-backed POST endpoints.
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			return
		}

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds())
	}
}

func (s *Server) setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", s.allowedOrigin)
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func (s *Server) handlePreflight(w http.ResponseWriter, r *http.Request) {
	s.setCORSHeaders(w)
	w.WriteHeader(http.StatusNoContent)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports 503 until the canonical ledger is loaded.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.finance.Available() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("ledger not loaded"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// startCacheCleanup runs periodic cleanup for both caches.
func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			simCleaned := s.simCache.CleanExpired()
			askCleaned := s.askCache.CleanExpired()
			if simCleaned > 0 || askCleaned > 0 {
				slog.Debug("Cache cleanup completed",
					"simulation_entries_removed", simCleaned,
					"ask_entries_removed", askCleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

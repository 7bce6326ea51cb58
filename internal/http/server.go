// Package http exposes the JSON API: authentication, the event list,
// event-type settings, the dashboard and shot-idea generation.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"shuttersync/internal/feed"
	"shuttersync/internal/identity"
	"shuttersync/internal/ideas"
	"shuttersync/internal/log"
	"shuttersync/internal/repo"
)

type contextKey string

const userContextKey contextKey = "user"

type Server struct {
	http.Server
	hub         *repo.Hub
	identity    *identity.Service
	ideas       ideas.Generator
	publisher   feed.Publisher
	logger      *log.Logger
	rateLimiter *rateLimiter

	shutdownOnce sync.Once
}

// NewServer wires the routes and returns a ready-to-run server.
func NewServer(addr string, hub *repo.Hub, ident *identity.Service, gen ideas.Generator, pub feed.Publisher, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		hub:         hub,
		identity:    ident,
		ideas:       gen,
		publisher:   pub,
		logger:      logger.WithComponent(log.ComponentHTTP),
		rateLimiter: newRateLimiter(),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /auth/signup", s.withCommon(s.handleSignUp))
	mux.HandleFunc("POST /auth/login", s.withCommon(s.handleLogIn))

	mux.HandleFunc("GET /api/events", s.withCommon(s.requireUser(s.handleListEvents)))
	mux.HandleFunc("POST /api/events", s.withCommon(s.requireUser(s.handleCreateEvent)))
	mux.HandleFunc("PUT /api/events/{id}", s.withCommon(s.requireUser(s.handleUpdateEvent)))
	mux.HandleFunc("DELETE /api/events/{id}", s.withCommon(s.requireUser(s.handleDeleteEvent)))

	mux.HandleFunc("GET /api/event-types", s.withCommon(s.requireUser(s.handleListTypes)))
	mux.HandleFunc("POST /api/event-types", s.withCommon(s.requireUser(s.handleAddType)))
	mux.HandleFunc("PUT /api/event-types", s.withCommon(s.requireUser(s.handleRenameType)))
	mux.HandleFunc("DELETE /api/event-types/{label}", s.withCommon(s.requireUser(s.handleDeleteType)))

	mux.HandleFunc("GET /api/dashboard", s.withCommon(s.requireUser(s.handleDashboard)))
	mux.HandleFunc("POST /api/ideas", s.withCommon(s.requireUser(s.handleIdeas)))

	return s
}

// withCommon adds security headers, rate limiting and request logging.
func (s *Server) withCommon(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), contextKey(log.FieldRequestID), requestID)
		r = r.WithContext(ctx)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			s.logger.WarnContext(ctx, "rate limit exceeded",
				log.FieldClientIP, clientIP, log.FieldMethod, r.Method, log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.logger.InfoContext(ctx, "request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldClientIP, clientIP)
	}
}

// requireUser resolves the bearer token and stores the user in the
// request context; the user id selects the storage partition downstream.
func (s *Server) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "Missing bearer token.")
			return
		}
		user, err := s.identity.Verify(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token.")
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

func userFrom(ctx context.Context) identity.User {
	user, _ := ctx.Value(userContextKey).(identity.User)
	return user
}

// Shutdown stops the server and its background cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ready")
}

// responseWriter captures the status code for request logging.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

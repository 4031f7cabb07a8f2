package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/oceandash/ocean-api/internal/config"
	"github.com/oceandash/ocean-api/internal/lib/jwt"
	"github.com/oceandash/ocean-api/internal/storage"
)

type APIServer struct {
	config    *config.Config
	logger    *slog.Logger
	server    *http.Server
	storage   storage.Storage
	jwtSecret []byte
}

func New(config *config.Config, logger *slog.Logger, storage storage.Storage, jwtSecret []byte) *APIServer {
	return &APIServer{
		config: config,
		logger: logger,
		server: &http.Server{
			Addr: config.ApiHost + ":" + strconv.Itoa(config.ApiPort),
		},
		storage:   storage,
		jwtSecret: jwtSecret,
	}
}

func (s *APIServer) Start() error {
	s.logger.Info("Starting server", slog.String("port", strconv.Itoa(s.config.ApiPort)))

	s.configureRouter()

	return s.server.ListenAndServe()
}

func (s *APIServer) MustStart() {
	err := s.Start()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic("Failed to start server: " + err.Error())
	}
}

func (s *APIServer) Stop(ctx context.Context) error {
	defer s.logger.Info("Server successfully stopped")
	return s.server.Shutdown(ctx)
}

func (s *APIServer) configureRouter() {
	router := mux.NewRouter()

	router.HandleFunc("/api/register", s.registerHandler()).Methods("POST")
	router.HandleFunc("/api/login", s.loginHandler()).Methods("POST")
	router.HandleFunc("/api/me", s.authenticate(s.meHandler())).Methods("GET")

	router.HandleFunc("/api/tasks", s.authenticate(s.listTasksHandler())).Methods("GET")
	router.HandleFunc("/api/tasks", s.authenticate(s.createTaskHandler())).Methods("POST")
	router.HandleFunc("/api/tasks/{id:[0-9]+}", s.authenticate(s.updateTaskHandler())).Methods("PUT")
	router.HandleFunc("/api/tasks/{id:[0-9]+}", s.authenticate(s.deleteTaskHandler())).Methods("DELETE")

	router.HandleFunc("/api/goals", s.authenticate(s.listGoalsHandler())).Methods("GET")
	router.HandleFunc("/api/goals", s.authenticate(s.createGoalHandler())).Methods("POST")
	router.HandleFunc("/api/goals/{id:[0-9]+}", s.authenticate(s.updateGoalHandler())).Methods("PUT")
	router.HandleFunc("/api/goals/{id:[0-9]+}", s.authenticate(s.deleteGoalHandler())).Methods("DELETE")

	router.HandleFunc("/api/finances", s.authenticate(s.listFinancesHandler())).Methods("GET")
	router.HandleFunc("/api/finances", s.authenticate(s.createFinanceHandler())).Methods("POST")
	router.HandleFunc("/api/finances/{id:[0-9]+}", s.authenticate(s.updateFinanceHandler())).Methods("PUT")
	router.HandleFunc("/api/finances/{id:[0-9]+}", s.authenticate(s.deleteFinanceHandler())).Methods("DELETE")

	s.server.Handler = router
}

type contextKey int

const userIDKey contextKey = iota

// authenticate guards a handler behind bearer auth. The header must be
// exactly "Bearer <token>"; on any failure the wrapped handler is never
// invoked. On success the token's subject is placed in the request
// context.
func (s *APIServer) authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenHeader := r.Header.Get("Authorization")
		if tokenHeader == "" {
			s.respondError(w, http.StatusUnauthorized, codeUnauthorized, "missing bearer token")
			return
		}

		parts := strings.Split(tokenHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			s.respondError(w, http.StatusUnauthorized, codeUnauthorized, "malformed authorization header")
			return
		}

		userID, err := jwt.ParseToken(parts[1], s.jwtSecret)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, jwt.ErrExpired) {
				msg = "token expired"
			}
			s.respondError(w, http.StatusUnauthorized, codeUnauthorized, msg)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	}
}

// userID returns the authenticated user id injected by authenticate.
func userID(r *http.Request) int {
	id, _ := r.Context().Value(userIDKey).(int)
	return id
}

func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

const (
	codeValidation   = "validation"
	codeConflict     = "conflict"
	codeUnauthorized = "unauthorized"
	codeNotFound     = "not_found"
	codeInternal     = "internal"
)

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (s *APIServer) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *APIServer) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{Code: code, Error: message})
}

// respondStorageError maps a storage failure on a scoped resource to a
// 404 or a 500, logging only the unexpected kind.
func (s *APIServer) respondStorageError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, codeNotFound, "resource not found")
		return
	}
	s.logger.Error("Storage operation failed", "error", err)
	s.respondError(w, http.StatusInternalServerError, codeInternal, "internal error")
}

// parseDate accepts ISO YYYY-MM-DD, truncating longer strings to the
// date part. Empty or unparseable input yields nil, never an error.
func parseDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if len(value) > 10 {
		value = value[:10]
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

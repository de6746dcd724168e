package web

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yanibasnist/BestFreeSignalBot/internal/usecase"
)

// Server exposes the admin REST API: stats, posts and settings management.
type Server struct {
	statsUC    *usecase.StatsUseCase
	postUC     *usecase.PostUseCase
	userUC     *usecase.UserUseCase
	settingsUC *usecase.SettingsUseCase
	auth       *AuthManager
	apiKey     string
	log        *zerolog.Logger
}

func NewServer(
	statsUC *usecase.StatsUseCase,
	postUC *usecase.PostUseCase,
	userUC *usecase.UserUseCase,
	settingsUC *usecase.SettingsUseCase,
	auth *AuthManager,
	apiKey string,
	logger *zerolog.Logger,
) *Server {
	l := logger.With().Str("component", "AdminAPI").Logger()
	return &Server{
		statsUC:    statsUC,
		postUC:     postUC,
		userUC:     userUC,
		settingsUC: settingsUC,
		auth:       auth,
		apiKey:     apiKey,
		log:        &l,
	}
}

// Routes builds the chi router for the admin API.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestLog)

	r.Post("/api/v1/session", s.sessionCreateHandler)
	r.Delete("/api/v1/session", s.sessionDeleteHandler)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/api/v1/stats", statsHandler(s.statsUC))
		r.Get("/api/v1/posts", postsListHandler(s.postUC))
		r.Get("/api/v1/posts/{id}", postGetHandler(s.postUC))
		r.Delete("/api/v1/posts/{id}", postDeleteHandler(s.postUC))
		r.Get("/api/v1/users", usersListHandler(s.userUC))
		r.Get("/api/v1/settings", settingsHandler(s.settingsUC))
		r.Put("/api/v1/settings/signal", signalPutHandler(s.settingsUC, s.postUC))
	})
	return r
}

// requestLog tags every request with a trace id and logs its outcome.
func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := uuid.NewString()
		w.Header().Set("X-Trace-Id", traceID)
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("trace_id", traceID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// authMiddleware accepts either the static API key or a minted session token.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" {
			s.log.Error().Msg("admin API key is not configured")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		if bearerToken(r) == s.apiKey {
			next.ServeHTTP(w, r)
			return
		}
		if s.auth != nil {
			if _, err := s.auth.ParseFromRequest(r); err == nil {
				next.ServeHTTP(w, r)
				return
			}
		}
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	})
}

func bearerToken(r *http.Request) string {
	hdr := r.Header.Get("Authorization")
	if hdr == "" {
		return ""
	}
	parts := strings.SplitN(hdr, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// sessionCreateHandler exchanges the API key for a short-lived session token.
func (s *Server) sessionCreateHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIKey string `json:"api_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if s.apiKey == "" || req.APIKey != s.apiKey {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if s.auth == nil {
		http.Error(w, "Sessions are not configured", http.StatusServiceUnavailable)
		return
	}
	token, err := s.auth.Mint(w)
	if err != nil {
		http.Error(w, "Failed to mint session", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

func (s *Server) sessionDeleteHandler(w http.ResponseWriter, r *http.Request) {
	if s.auth != nil {
		s.auth.Clear(w)
	}
	w.WriteHeader(http.StatusNoContent)
}

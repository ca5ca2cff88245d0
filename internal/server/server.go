package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/limmers2015/Car-Part-Connection/internal/config"
	apierrors "github.com/limmers2015/Car-Part-Connection/internal/errors"
	"github.com/limmers2015/Car-Part-Connection/internal/domain"
	"github.com/limmers2015/Car-Part-Connection/internal/httpd"
)

// collaboratorTimeout bounds every persistence and session-store round trip.
const collaboratorTimeout = 5 * time.Second

type Server struct {
	cfg      *config.Config
	users    domain.UserRepository
	vehicles domain.VehicleRepository
	sessions domain.SessionStore
	hasher   domain.PasswordHasher
	cookie   httpd.CookieSpec
	router   *httpd.Router
}

func New(cfg *config.Config, users domain.UserRepository, vehicles domain.VehicleRepository,
	sessions domain.SessionStore, hasher domain.PasswordHasher) *Server {

	s := &Server{
		cfg:      cfg,
		users:    users,
		vehicles: vehicles,
		sessions: sessions,
		hasher:   hasher,
		cookie: httpd.CookieSpec{
			Name:     cfg.SessionCookieName,
			SameSite: cfg.SessionCookieSameSite,
			Secure:   cfg.SessionCookieSecure,
		},
		router: httpd.NewRouter(),
	}
	s.registerRoutes()
	return s
}

// Router exposes the configured dispatch table.
func (s *Server) Router() *httpd.Router {
	return s.router
}

func (s *Server) registerRoutes() {
	// Observability (no auth)
	s.router.Handle("GET", "/api/health", s.handleHealth)
	s.router.Handle("GET", "/api/version", s.handleVersion)
	s.router.Handle("GET", "/metrics", s.handleMetrics)

	// Vehicle resource (exact path + method)
	s.router.Handle("GET", "/api/vehicles", s.handleVehiclesList)
	s.router.Handle("POST", "/api/vehicles", s.handleVehiclesCreate)

	// Auth routes (prefix match; handlers enforce the method themselves)
	s.router.HandlePrefix("/api/signup", s.handleSignup)
	s.router.HandlePrefix("/api/login", s.handleLogin)
	s.router.HandlePrefix("/api/logout", s.handleLogout)
	s.router.HandlePrefix("/api/me", s.handleMe)
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), collaboratorTimeout)
}

// fail renders a business failure: stable code string, matching status,
// internals only logged.
func fail(res *httpd.Response, apiErr *apierrors.APIError) {
	if apiErr.Cause != nil {
		slog.Error("Request failed", "code", apiErr.Code, "error", apiErr.Cause)
	}
	_ = res.WriteError(apiErr.Status, apiErr.Code)
}

// authenticate resolves the session cookie to a user id. Missing cookie,
// unknown token and expired token are indistinguishable to the caller.
func (s *Server) authenticate(ctx context.Context, req *httpd.Request) (uuid.UUID, bool) {
	token, ok := httpd.SessionToken(req.Cookie, s.cookie.Name)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		slog.Error("Session resolved to malformed user id", "error", err)
		return uuid.Nil, false
	}
	return id, true
}

package server

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/limmers2015/Car-Part-Connection/internal/domain"
	apierrors "github.com/limmers2015/Car-Part-Connection/internal/errors"
	"github.com/limmers2015/Car-Part-Connection/internal/httpd"
	"github.com/limmers2015/Car-Part-Connection/internal/metrics"
)

const minPasswordLen = 8

type credentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func decodeCredentials(req *httpd.Request) (*credentialsPayload, *apierrors.APIError) {
	if req.Body == nil {
		return nil, apierrors.InvalidJSON
	}
	var payload credentialsPayload
	if err := json.Unmarshal(req.Body, &payload); err != nil {
		return nil, apierrors.InvalidJSON
	}
	return &payload, nil
}

func (s *Server) handleSignup(req *httpd.Request, res *httpd.Response) {
	if req.Method != "POST" {
		fail(res, apierrors.MethodNotAllowed)
		return
	}

	payload, apiErr := decodeCredentials(req)
	if apiErr != nil {
		fail(res, apiErr)
		return
	}
	if payload.Email == "" || len(payload.Password) < minPasswordLen {
		fail(res, apierrors.InvalidInput)
		return
	}

	hash, err := s.hasher.Hash(payload.Password)
	if err != nil {
		fail(res, apierrors.HashFailed.WithCause(err))
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	userID, err := s.users.Create(ctx, payload.Email, hash, "user")
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			fail(res, apierrors.EmailExists)
			return
		}
		fail(res, apierrors.DBError.WithCause(err))
		return
	}

	// Auto-login: a fresh session rides along with the 201.
	token, err := s.sessions.Create(ctx, userID.String(), s.cfg.SessionTTL())
	if err != nil {
		fail(res, apierrors.SessionFailed.WithCause(err))
		return
	}
	metrics.SessionsCreated.Inc()

	res.AddHeader("Set-Cookie", s.cookie.Set(token))
	_ = res.WriteJSON(201, map[string]bool{"ok": true})
}

func (s *Server) handleLogin(req *httpd.Request, res *httpd.Response) {
	if req.Method != "POST" {
		fail(res, apierrors.MethodNotAllowed)
		return
	}

	payload, apiErr := decodeCredentials(req)
	if apiErr != nil {
		fail(res, apiErr)
		return
	}
	if payload.Email == "" || payload.Password == "" {
		fail(res, apierrors.InvalidInput)
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, err := s.users.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			fail(res, apierrors.BadCredentials)
			return
		}
		fail(res, apierrors.DBError.WithCause(err))
		return
	}

	ok, err := s.hasher.Verify(user.PasswordHash, payload.Password)
	if err != nil || !ok {
		fail(res, apierrors.BadCredentials)
		return
	}

	token, err := s.sessions.Create(ctx, user.ID.String(), s.cfg.SessionTTL())
	if err != nil {
		fail(res, apierrors.SessionFailed.WithCause(err))
		return
	}
	metrics.SessionsCreated.Inc()

	res.AddHeader("Set-Cookie", s.cookie.Set(token))
	_ = res.WriteJSON(200, map[string]bool{"ok": true})
}

func (s *Server) handleLogout(req *httpd.Request, res *httpd.Response) {
	if req.Method != "POST" {
		fail(res, apierrors.MethodNotAllowed)
		return
	}

	// The cookie is cleared whether or not a live session existed, so a
	// second logout answers identically to the first.
	if token, ok := httpd.SessionToken(req.Cookie, s.cookie.Name); ok {
		ctx, cancel := requestContext()
		defer cancel()

		if err := s.sessions.Delete(ctx, token); err != nil {
			slog.Warn("Failed to delete session on logout", "error", err)
		} else {
			metrics.SessionsDeleted.Inc()
		}
	}

	res.AddHeader("Set-Cookie", s.cookie.Clear())
	_ = res.WriteJSON(200, map[string]bool{"ok": true})
}

func (s *Server) handleMe(req *httpd.Request, res *httpd.Response) {
	if req.Method != "GET" {
		fail(res, apierrors.MethodNotAllowed)
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	userID, ok := s.authenticate(ctx, req)
	if !ok {
		fail(res, apierrors.Unauthorized)
		return
	}

	_ = res.WriteJSON(200, map[string]string{"user_id": userID.String()})
}

package api

import (
	"net/http"

	"github.com/chakrasapp/chakras-server/internal/http/response"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// handleRegister creates a new account and returns a token pair.
// Rate limited per client IP alongside login.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !s.authLimiter.Allow(clientIP(r)) {
		response.Error(w, http.StatusTooManyRequests, "Too many attempts, try again later", s.logger)
		return
	}

	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	result, err := s.auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, result, s.logger)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// handleLogin verifies credentials and returns a token pair.
// Rate limited per client IP to slow down credential guessing.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.authLimiter.Allow(clientIP(r)) {
		response.Error(w, http.StatusTooManyRequests, "Too many login attempts, try again later", s.logger)
		return
	}

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	result, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, result, s.logger)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// handleRefresh rotates a refresh token into a fresh token pair.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	result, err := s.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, result, s.logger)
}

// handleLogout revokes the refresh session.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.auth.Logout(r.Context(), req.RefreshToken); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

// handleMe returns the authenticated user.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.auth.Me(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, user, s.logger)
}

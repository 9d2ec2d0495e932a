package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"frontdesk/internal/auth"
	"frontdesk/internal/metrics"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type authResponse struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Token   string `json:"token"`
	Expires string `json:"expires"`
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("auth_login")

	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	res, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		s.log.Error().Err(err).Msg("login")
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	writeAuthResult(w, http.StatusOK, res)
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("auth_register")

	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	res, err := s.auth.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			writeError(w, http.StatusConflict, "user already exists")
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeError(w, http.StatusBadRequest, "email and password are required")
		default:
			s.log.Error().Err(err).Msg("register")
			writeError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}
	writeAuthResult(w, http.StatusCreated, res)
}

// handleForgotPassword always answers 200 so callers cannot probe which
// emails have accounts.
func (s *HTTPServer) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("auth_forgot_password")

	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	if _, err := s.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		s.log.Error().Err(err).Msg("forgot password")
		writeError(w, http.StatusInternalServerError, "reset request failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *HTTPServer) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("auth_reset_password")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.auth.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			writeError(w, http.StatusUnauthorized, "invalid or expired reset token")
			return
		}
		s.log.Error().Err(err).Msg("reset password")
		writeError(w, http.StatusInternalServerError, "reset failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return credentialsRequest{}, false
	}
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return credentialsRequest{}, false
	}
	return req, true
}

func writeAuthResult(w http.ResponseWriter, statusCode int, res auth.Result) {
	writeJSON(w, statusCode, authResponse{
		Email:   res.Profile.Email,
		Name:    res.Profile.Name,
		Role:    res.Profile.Role,
		Token:   res.Token,
		Expires: res.Expires.UTC().Format(time.RFC3339),
	})
}

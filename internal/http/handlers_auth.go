package http

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"shuttersync/internal/identity"
	"shuttersync/internal/log"
)

type (
	signUpRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	logInRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	sessionResponse struct {
		Token string        `json:"token"`
		User  identity.User `json:"user"`
	}
)

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid email address.")
		return
	}
	if len(req.Password) < 6 {
		writeError(w, http.StatusBadRequest, "Password must be at least 6 characters.")
		return
	}

	user, err := s.identity.SignUp(r.Context(), req.Email, req.Password)
	if errors.Is(err, identity.ErrEmailTaken) {
		writeError(w, http.StatusConflict, "This email address is already in use.")
		return
	}
	if err != nil {
		s.logger.ErrorContext(r.Context(), "sign up failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Could not create the account.")
		return
	}

	// Sign-up opens a session right away.
	token, _, err := s.identity.LogIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "post-signup login failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Account created but session could not be opened.")
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{Token: token, User: user})
}

func (s *Server) handleLogIn(w http.ResponseWriter, r *http.Request) {
	var req logInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	token, user, err := s.identity.LogIn(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, identity.ErrUnknownUser):
		writeError(w, http.StatusUnauthorized, "No user found with this email.")
		return
	case errors.Is(err, identity.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Incorrect password.")
		return
	case err != nil:
		s.logger.ErrorContext(r.Context(), "log in failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Could not open a session.")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: user})
}

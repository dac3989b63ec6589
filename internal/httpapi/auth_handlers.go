package httpapi

import (
	"errors"
	"net/http"

	"task-manager/internal/service"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := s.credentials.Register(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidInput):
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	case errors.Is(err, service.ErrDuplicateIdentity):
		writeMessage(w, http.StatusBadRequest, "User already registered")
		return
	default:
		s.logger.Printf("register rid=%s: %v", RequestIDFromContext(r.Context()), err)
		writeMessage(w, http.StatusInternalServerError, "An error occurred while registering the user")
		return
	}

	s.logger.Printf("[info] user registered id=%s", user.ID)
	writeMessage(w, http.StatusCreated, "User registered successfully")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := s.credentials.Authenticate(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	default:
		s.logger.Printf("login rid=%s: %v", RequestIDFromContext(r.Context()), err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := s.tokens.Issue(user.ID.String())
	if err != nil {
		s.logger.Printf("issue token rid=%s: %v", RequestIDFromContext(r.Context()), err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/oceandash/ocean-api/internal/lib/jwt"
	"github.com/oceandash/ocean-api/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

// CredentialsRequest accepts both key spellings the clients use:
// usuario/email for the identifier and senha/password for the secret.
type CredentialsRequest struct {
	Usuario  string `json:"usuario"`
	Email    string `json:"email"`
	Senha    string `json:"senha"`
	Password string `json:"password"`
}

func (req *CredentialsRequest) credentials() (usuario, senha string) {
	usuario = req.Usuario
	if usuario == "" {
		usuario = req.Email
	}
	senha = req.Senha
	if senha == "" {
		senha = req.Password
	}
	return strings.ToLower(strings.TrimSpace(usuario)), strings.TrimSpace(senha)
}

type RegisterResponse struct {
	ID int `json:"id"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type MeResponse struct {
	ID      int    `json:"id"`
	Usuario string `json:"usuario"`
}

func (s *APIServer) registerHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CredentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, codeValidation, "invalid request body")
			return
		}

		usuario, senha := req.credentials()
		if usuario == "" || senha == "" {
			s.respondError(w, http.StatusBadRequest, codeValidation, "username and password are required")
			return
		}
		if len(senha) < minPasswordLen {
			s.respondError(w, http.StatusBadRequest, codeValidation, "password must be at least 6 characters")
			return
		}

		passHash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("Failed to hash password", "error", err)
			s.respondError(w, http.StatusInternalServerError, codeInternal, "internal error")
			return
		}

		id, err := s.storage.SaveUser(r.Context(), usuario, passHash)
		if err != nil {
			if errors.Is(err, storage.ErrUserExists) {
				s.respondError(w, http.StatusConflict, codeConflict, "user already exists")
				return
			}
			s.logger.Error("Failed to save user", "error", err)
			s.respondError(w, http.StatusInternalServerError, codeInternal, "internal error")
			return
		}

		s.logger.Info("Registered new user", slog.String("usuario", usuario))

		s.respondJSON(w, http.StatusCreated, RegisterResponse{ID: id})
	}
}

func (s *APIServer) loginHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CredentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, codeValidation, "invalid request body")
			return
		}

		usuario, senha := req.credentials()
		if usuario == "" || senha == "" {
			s.respondError(w, http.StatusBadRequest, codeValidation, "username and password are required")
			return
		}

		user, err := s.storage.GetUserByUsername(r.Context(), usuario)
		if err != nil {
			// Unknown user and bad password look identical to the caller.
			if errors.Is(err, storage.ErrNotFound) {
				s.respondError(w, http.StatusUnauthorized, codeUnauthorized, "invalid username or password")
				return
			}
			s.logger.Error("Failed to look up user", "error", err)
			s.respondError(w, http.StatusInternalServerError, codeInternal, "internal error")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(senha)); err != nil {
			s.respondError(w, http.StatusUnauthorized, codeUnauthorized, "invalid username or password")
			return
		}

		token, err := jwt.NewToken(user.ID, s.jwtSecret, s.config.TokenTTL)
		if err != nil {
			s.logger.Error("Failed to sign token", "error", err)
			s.respondError(w, http.StatusInternalServerError, codeInternal, "internal error")
			return
		}

		s.respondJSON(w, http.StatusOK, LoginResponse{Token: token})
	}
}

func (s *APIServer) meHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.storage.GetUserByID(r.Context(), userID(r))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				s.respondError(w, http.StatusNotFound, codeNotFound, "user not found")
				return
			}
			s.logger.Error("Failed to look up user", "error", err)
			s.respondError(w, http.StatusInternalServerError, codeInternal, "internal error")
			return
		}

		s.respondJSON(w, http.StatusOK, MeResponse{ID: user.ID, Usuario: user.Usuario})
	}
}

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/productcatalog/webapp/app/api"
	"github.com/productcatalog/webapp/models"
	"github.com/productcatalog/webapp/session"
)

// SessionStore is the slice of the session manager the handlers and
// middleware need.
type SessionStore interface {
	Authenticate(login, password string) (*session.Session, error)
	Lookup(token string) (*session.Session, bool)
	Logout(token string)
}

type AuthHandler struct {
	sessions SessionStore
}

func NewAuthHandler(s SessionStore) *AuthHandler {
	return &AuthHandler{sessions: s}
}

type loginResponse struct {
	Token    string      `json:"token"`
	Login    string      `json:"login"`
	FullName string      `json:"full_name"`
	Role     models.Role `json:"role"`
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if input.Login == "" || input.Password == "" {
		api.Error(w, http.StatusBadRequest, "Missing login or password")
		return
	}

	s, err := h.sessions.Authenticate(input.Login, input.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			api.Error(w, http.StatusUnauthorized, "Invalid login or password")
			return
		}
		api.Error(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	api.WriteJSON(w, http.StatusOK, loginResponse{
		Token:    s.Token,
		Login:    s.Login,
		FullName: s.FullName,
		Role:     s.Role,
	})
}

func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(bearerToken(r))
	w.WriteHeader(http.StatusNoContent)
}

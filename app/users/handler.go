package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/productcatalog/webapp/app/api"
	"github.com/productcatalog/webapp/models"
)

var gridColumns = []api.Column{
	{Field: "id", Hidden: true},
	{Field: "login", Header: "Логин"},
	{Field: "role", Header: "Роль"},
	{Field: "full_name", Header: "ФИО"},
}

type Response struct {
	Columns []api.Column  `json:"columns"`
	Users   []models.User `json:"users"`
}

type UserProvider interface {
	List() ([]models.User, error)
	GetByID(id uint) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id uint) error
}

type UserHandler struct {
	repo UserProvider
}

func NewUserHandler(r UserProvider) *UserHandler {
	return &UserHandler{repo: r}
}

// HandleList loads every user (passwords never leave the repository)
// and applies the optional q filter over the loaded rows in memory.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.repo.List()
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		needle := strings.ToLower(q)
		matched := make([]models.User, 0, len(users))
		for _, u := range users {
			if strings.Contains(strings.ToLower(u.Login), needle) ||
				strings.Contains(strings.ToLower(u.FullName), needle) ||
				strings.Contains(strings.ToLower(string(u.Role)), needle) {
				matched = append(matched, u)
			}
		}
		users = matched
	}

	if users == nil {
		users = []models.User{}
	}
	api.WriteJSON(w, http.StatusOK, Response{
		Columns: gridColumns,
		Users:   users,
	})
}

type UserInput struct {
	Login           string `json:"login"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FullName        string `json:"full_name"`
	Role            string `json:"role"`
}

// validate applies the edit dialog rules in order. A password is
// mandatory only when creating; on edit a blank password means "keep
// the stored one".
func (in *UserInput) validate(create bool) string {
	if strings.TrimSpace(in.Login) == "" {
		return "Login is required"
	}
	if create && in.Password == "" {
		return "Password is required"
	}
	if in.Password != "" && in.Password != in.ConfirmPassword {
		return "Passwords do not match"
	}
	if strings.TrimSpace(in.FullName) == "" {
		return "Full name is required"
	}
	if !models.Role(in.Role).Valid() {
		return "A valid role must be selected"
	}
	return ""
}

func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input UserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if msg := input.validate(true); msg != "" {
		api.Error(w, http.StatusBadRequest, msg)
		return
	}

	user := &models.User{
		Login:    strings.TrimSpace(input.Login),
		Password: input.Password,
		Role:     models.Role(input.Role),
		FullName: strings.TrimSpace(input.FullName),
	}

	if err := h.repo.Create(user); err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	api.WriteJSON(w, http.StatusCreated, map[string]any{
		"id":      user.ID,
		"message": "User created successfully",
	})
}

func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	existing, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			api.Error(w, http.StatusNotFound, "User not found")
		} else {
			api.Error(w, http.StatusInternalServerError, "Failed to fetch user")
		}
		return
	}

	var input UserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if msg := input.validate(false); msg != "" {
		api.Error(w, http.StatusBadRequest, msg)
		return
	}

	existing.Login = strings.TrimSpace(input.Login)
	existing.FullName = strings.TrimSpace(input.FullName)
	existing.Role = models.Role(input.Role)
	if input.Password != "" {
		existing.Password = input.Password
	}

	if err := h.repo.Update(existing); err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "User updated successfully",
	})
}

func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(id); err != nil {
		switch {
		case errors.Is(err, models.ErrAdminProtected):
			api.Error(w, http.StatusForbidden, "The admin account cannot be deleted")
		case errors.Is(err, models.ErrUserNotFound):
			api.Error(w, http.StatusNotFound, "User not found")
		default:
			api.Error(w, http.StatusInternalServerError, "Failed to delete user")
		}
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "User deleted successfully",
	})
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid user id")
		return 0, false
	}
	return uint(id), true
}

package categories

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
	{Field: "name", Header: "Название"},
	{Field: "description", Header: "Описание"},
}

type Response struct {
	Columns    []api.Column      `json:"columns"`
	Categories []models.Category `json:"categories"`
}

type CategoryProvider interface {
	List() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
}

type CategoryHandler struct {
	repo CategoryProvider
}

func NewCategoryHandler(r CategoryProvider) *CategoryHandler {
	return &CategoryHandler{repo: r}
}

// HandleList loads every category and, when q is present, narrows
// the loaded rows in memory.
func (h *CategoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.List()
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		needle := strings.ToLower(q)
		matched := make([]models.Category, 0, len(categories))
		for _, c := range categories {
			if strings.Contains(strings.ToLower(c.Name), needle) ||
				strings.Contains(strings.ToLower(c.Description), needle) {
				matched = append(matched, c)
			}
		}
		categories = matched
	}

	if categories == nil {
		categories = []models.Category{}
	}
	api.WriteJSON(w, http.StatusOK, Response{
		Columns:    gridColumns,
		Categories: categories,
	})
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (in *CategoryInput) validate() (*models.Category, string) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, "Category name is required"
	}
	return &models.Category{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
	}, ""
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	category, msg := input.validate()
	if msg != "" {
		api.Error(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.repo.Create(category); err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	api.WriteJSON(w, http.StatusCreated, map[string]any{
		"id":      category.ID,
		"message": "Category created successfully",
	})
}

func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	existing, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			api.Error(w, http.StatusNotFound, "Category not found")
		} else {
			api.Error(w, http.StatusInternalServerError, "Failed to fetch category")
		}
		return
	}

	var input CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	category, msg := input.validate()
	if msg != "" {
		api.Error(w, http.StatusBadRequest, msg)
		return
	}
	category.ID = existing.ID

	if err := h.repo.Update(category); err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to update category")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Category updated successfully",
	})
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(id); err != nil {
		switch {
		case errors.Is(err, models.ErrCategoryInUse):
			api.Error(w, http.StatusConflict, "Cannot delete a category that still has products")
		case errors.Is(err, models.ErrCategoryNotFound):
			api.Error(w, http.StatusNotFound, "Category not found")
		default:
			api.Error(w, http.StatusInternalServerError, "Failed to delete category")
		}
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Category deleted successfully",
	})
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid category id")
		return 0, false
	}
	return uint(id), true
}

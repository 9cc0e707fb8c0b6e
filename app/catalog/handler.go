package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/productcatalog/webapp/app/api"
	"github.com/productcatalog/webapp/app/auth"
	"github.com/productcatalog/webapp/models"
	"github.com/productcatalog/webapp/session"
)

// Grid metadata for the products screen: id and category id hidden,
// headers localized.
var gridColumns = []api.Column{
	{Field: "id", Hidden: true},
	{Field: "category_id", Hidden: true},
	{Field: "name", Header: "Название"},
	{Field: "description", Header: "Описание"},
	{Field: "price", Header: "Цена"},
	{Field: "stock_quantity", Header: "Количество"},
	{Field: "manufacturer", Header: "Производитель"},
	{Field: "category_name", Header: "Категория"},
}

type Response struct {
	Columns  []api.Column        `json:"columns"`
	Products []models.ProductRow `json:"products"`
}

type ProductProvider interface {
	List(filters models.ProductFilters) ([]models.ProductRow, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}

type CategoryChecker interface {
	GetByID(id uint) (*models.Category, error)
}

// ChangeLogger appends audit rows after product mutations.
type ChangeLogger interface {
	Append(productID, userID uint, changeType, details string) error
}

type CatalogHandler struct {
	repo       ProductProvider
	categories CategoryChecker
	history    ChangeLogger
}

func NewCatalogHandler(repo ProductProvider, categories CategoryChecker, history ChangeLogger) *CatalogHandler {
	return &CatalogHandler{
		repo:       repo,
		categories: categories,
		history:    history,
	}
}

func (h *CatalogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filters := models.ProductFilters{
		Search: strings.TrimSpace(r.URL.Query().Get("q")),
	}
	if c := r.URL.Query().Get("category"); c != "" {
		if id, err := strconv.ParseUint(c, 10, 32); err == nil {
			filters.CategoryID = uint(id)
		}
	}

	rows, err := h.repo.List(filters)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	if rows == nil {
		rows = []models.ProductRow{}
	}
	api.WriteJSON(w, http.StatusOK, Response{
		Columns:  gridColumns,
		Products: rows,
	})
}

// ProductInput carries the edit dialog fields. Price and stock arrive
// as the raw form strings so the parse rules stay where the dialog
// had them.
type ProductInput struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         string `json:"price"`
	CategoryID    uint   `json:"category_id"`
	StockQuantity string `json:"stock_quantity"`
	Manufacturer  string `json:"manufacturer"`
	Image         []byte `json:"image,omitempty"`
}

// validate applies the edit dialog rules in order and reports the
// first failure as a message, or builds the product to persist.
func (in *ProductInput) validate() (*models.Product, string) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, "Product name is required"
	}

	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil || !price.IsPositive() {
		return nil, "Price must be a positive number"
	}

	stock, err := strconv.Atoi(strings.TrimSpace(in.StockQuantity))
	if err != nil || stock < 0 {
		return nil, "Stock quantity must be a non-negative integer"
	}

	if in.CategoryID == 0 {
		return nil, "A category must be selected"
	}

	return &models.Product{
		Name:          name,
		Description:   strings.TrimSpace(in.Description),
		Price:         price,
		CategoryID:    in.CategoryID,
		StockQuantity: stock,
		Manufacturer:  strings.TrimSpace(in.Manufacturer),
		Image:         in.Image,
	}, ""
}

// checkCategory verifies the referenced category exists; on failure
// the response is already written.
func (h *CatalogHandler) checkCategory(w http.ResponseWriter, id uint) bool {
	if _, err := h.categories.GetByID(id); err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			api.Error(w, http.StatusBadRequest, "Selected category does not exist")
		} else {
			api.Error(w, http.StatusInternalServerError, "Failed to save product")
		}
		return false
	}
	return true
}

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	sess := auth.FromContext(r.Context())
	if sess == nil {
		api.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var input ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	product, msg := input.validate()
	if msg != "" {
		api.Error(w, http.StatusBadRequest, msg)
		return
	}
	if !h.checkCategory(w, product.CategoryID) {
		return
	}

	if err := h.repo.Create(product); err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to save product")
		return
	}

	body := map[string]any{
		"id":      product.ID,
		"message": "Product created successfully",
	}
	h.appendHistory(body, product.ID, sess, models.ChangeCreate, "Добавлен новый продукт")
	api.WriteJSON(w, http.StatusCreated, body)
}

func (h *CatalogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	sess := auth.FromContext(r.Context())
	if sess == nil {
		api.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	existing, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			api.Error(w, http.StatusNotFound, "Product not found")
		} else {
			api.Error(w, http.StatusInternalServerError, "Failed to fetch product")
		}
		return
	}

	var input ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	product, msg := input.validate()
	if msg != "" {
		api.Error(w, http.StatusBadRequest, msg)
		return
	}
	if !h.checkCategory(w, product.CategoryID) {
		return
	}

	product.ID = existing.ID
	if product.Image == nil {
		// The dialog leaves the stored image alone unless a new one
		// was picked.
		product.Image = existing.Image
	}

	if err := h.repo.Update(product); err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to save product")
		return
	}

	body := map[string]any{"message": "Product updated successfully"}
	h.appendHistory(body, product.ID, sess, models.ChangeUpdate, "Обновлены данные продукта")
	api.WriteJSON(w, http.StatusOK, body)
}

func (h *CatalogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	sess := auth.FromContext(r.Context())
	if sess == nil {
		api.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			api.Error(w, http.StatusNotFound, "Product not found")
		} else {
			api.Error(w, http.StatusInternalServerError, "Failed to fetch product")
		}
		return
	}

	// The history row goes in first, while the product row still
	// exists to reference.
	body := map[string]any{"message": "Product deleted successfully"}
	h.appendHistory(body, product.ID, sess, models.ChangeDelete, fmt.Sprintf("Удален продукт: %s", product.Name))

	if err := h.repo.Delete(product.ID); err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	api.WriteJSON(w, http.StatusOK, body)
}

// appendHistory attempts the audit write for an already-committed
// mutation. Failure becomes a warning on the success response and
// never undoes the mutation.
func (h *CatalogHandler) appendHistory(body map[string]any, productID uint, sess *session.Session, changeType, details string) {
	details = fmt.Sprintf("%s\nПользователь: %s", details, sess.FullName)
	if err := h.history.Append(productID, sess.UserID, changeType, details); err != nil {
		log.Printf("change history append failed for product %d: %v", productID, err)
		body["warning"] = "change was saved but not recorded in history"
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid product id")
		return 0, false
	}
	return uint(id), true
}

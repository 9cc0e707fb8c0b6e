package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productcatalog/webapp/app/auth"
	"github.com/productcatalog/webapp/models"
	"github.com/productcatalog/webapp/session"
)

// --- Mocks ---

type MockProductRepo struct {
	Rows      []models.ProductRow
	Products  map[uint]*models.Product
	Err       error
	DeleteErr error

	lastFilters models.ProductFilters
	LastSaved   *models.Product
	Deleted     []uint
}

func (m *MockProductRepo) List(filters models.ProductFilters) ([]models.ProductRow, error) {
	m.lastFilters = filters
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Rows, nil
}

func (m *MockProductRepo) GetByID(id uint) (*models.Product, error) {
	if p, ok := m.Products[id]; ok {
		product := *p
		return &product, nil
	}
	return nil, models.ErrProductNotFound
}

func (m *MockProductRepo) Create(product *models.Product) error {
	if m.Err != nil {
		return m.Err
	}
	product.ID = 42
	m.LastSaved = product
	return nil
}

func (m *MockProductRepo) Update(product *models.Product) error {
	if m.Err != nil {
		return m.Err
	}
	m.LastSaved = product
	return nil
}

func (m *MockProductRepo) Delete(id uint) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Deleted = append(m.Deleted, id)
	return nil
}

type MockCategoryChecker struct {
	Known map[uint]bool
}

func (m *MockCategoryChecker) GetByID(id uint) (*models.Category, error) {
	if m.Known[id] {
		return &models.Category{ID: id, Name: "Электроника"}, nil
	}
	return nil, models.ErrCategoryNotFound
}

type MockChangeLogger struct {
	Err     error
	Entries []LoggedChange
}

type LoggedChange struct {
	ProductID  uint
	UserID     uint
	ChangeType string
	Details    string
}

func (m *MockChangeLogger) Append(productID, userID uint, changeType, details string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Entries = append(m.Entries, LoggedChange{productID, userID, changeType, details})
	return nil
}

// --- Helpers ---

func adminSession() *session.Session {
	return &session.Session{Token: "t", UserID: 1, Login: "admin", FullName: "Администратор системы", Role: models.RoleAdmin}
}

func newRequest(t *testing.T, method, target, body string, pathID string) *http.Request {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if pathID != "" {
		req.SetPathValue("id", pathID)
	}
	return req.WithContext(auth.NewContext(req.Context(), adminSession()))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func validInput() string {
	return `{"name":"Test","price":"10.00","stock_quantity":"5","category_id":1,"manufacturer":"ТехноКорп"}`
}

// --- Tests ---

func TestHandleList(t *testing.T) {
	rows := []models.ProductRow{
		{ID: 1, Name: "Смартфон X", Price: decimal.RequireFromString("599.99"), CategoryName: "Электроника"},
		{ID: 2, Name: "Джинсы", Price: decimal.RequireFromString("49.99"), CategoryName: "Одежда"},
	}

	t.Run("returns rows with grid metadata", func(t *testing.T) {
		repo := &MockProductRepo{Rows: rows}
		h := NewCatalogHandler(repo, &MockCategoryChecker{}, &MockChangeLogger{})
		rec := httptest.NewRecorder()

		h.HandleList(rec, newRequest(t, "GET", "/products", "", ""))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp Response
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Len(t, resp.Products, 2)
		require.NotEmpty(t, resp.Columns)
		assert.Equal(t, "id", resp.Columns[0].Field)
		assert.True(t, resp.Columns[0].Hidden)
	})

	t.Run("passes search and category filters through", func(t *testing.T) {
		repo := &MockProductRepo{Rows: rows}
		h := NewCatalogHandler(repo, &MockCategoryChecker{}, &MockChangeLogger{})
		rec := httptest.NewRecorder()

		h.HandleList(rec, newRequest(t, "GET", "/products?q=джинс&category=2", "", ""))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "джинс", repo.lastFilters.Search)
		assert.Equal(t, uint(2), repo.lastFilters.CategoryID)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := &MockProductRepo{Err: errors.New("db down")}
		h := NewCatalogHandler(repo, &MockCategoryChecker{}, &MockChangeLogger{})
		rec := httptest.NewRecorder()

		h.HandleList(rec, newRequest(t, "GET", "/products", "", ""))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to fetch products", decodeBody(t, rec)["error"])
	})
}

func TestHandleCreate(t *testing.T) {
	testCases := []struct {
		name          string
		body          string
		expectedCode  int
		expectedError string
	}{
		{
			name:         "valid product",
			body:         validInput(),
			expectedCode: http.StatusCreated,
		},
		{
			name:          "missing name",
			body:          `{"name":"  ","price":"10.00","stock_quantity":"5","category_id":1}`,
			expectedCode:  http.StatusBadRequest,
			expectedError: "Product name is required",
		},
		{
			name:          "zero price",
			body:          `{"name":"Test","price":"0","stock_quantity":"5","category_id":1}`,
			expectedCode:  http.StatusBadRequest,
			expectedError: "Price must be a positive number",
		},
		{
			name:          "negative price",
			body:          `{"name":"Test","price":"-5","stock_quantity":"5","category_id":1}`,
			expectedCode:  http.StatusBadRequest,
			expectedError: "Price must be a positive number",
		},
		{
			name:          "non-numeric price",
			body:          `{"name":"Test","price":"abc","stock_quantity":"5","category_id":1}`,
			expectedCode:  http.StatusBadRequest,
			expectedError: "Price must be a positive number",
		},
		{
			name:          "negative stock",
			body:          `{"name":"Test","price":"10.00","stock_quantity":"-1","category_id":1}`,
			expectedCode:  http.StatusBadRequest,
			expectedError: "Stock quantity must be a non-negative integer",
		},
		{
			name:          "no category selected",
			body:          `{"name":"Test","price":"10.00","stock_quantity":"5"}`,
			expectedCode:  http.StatusBadRequest,
			expectedError: "A category must be selected",
		},
		{
			name:          "unknown category",
			body:          `{"name":"Test","price":"10.00","stock_quantity":"5","category_id":99}`,
			expectedCode:  http.StatusBadRequest,
			expectedError: "Selected category does not exist",
		},
		{
			name:          "invalid JSON",
			body:          `{not json`,
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid JSON body",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockProductRepo{}
			logger := &MockChangeLogger{}
			h := NewCatalogHandler(repo, &MockCategoryChecker{Known: map[uint]bool{1: true}}, logger)
			rec := httptest.NewRecorder()

			h.HandleCreate(rec, newRequest(t, "POST", "/products", tc.body, ""))

			assert.Equal(t, tc.expectedCode, rec.Code)
			if tc.expectedError != "" {
				assert.Equal(t, tc.expectedError, decodeBody(t, rec)["error"])
				assert.Nil(t, repo.LastSaved, "nothing may be written on validation failure")
				assert.Empty(t, logger.Entries, "no history on validation failure")
				return
			}

			require.NotNil(t, repo.LastSaved)
			assert.Equal(t, "Test", repo.LastSaved.Name)
			assert.True(t, decimal.RequireFromString("10.00").Equal(repo.LastSaved.Price))

			require.Len(t, logger.Entries, 1)
			entry := logger.Entries[0]
			assert.Equal(t, models.ChangeCreate, entry.ChangeType)
			assert.Equal(t, uint(42), entry.ProductID)
			assert.Equal(t, uint(1), entry.UserID)
			assert.Contains(t, entry.Details, "Добавлен новый продукт")
			assert.Contains(t, entry.Details, "Администратор системы")
		})
	}

	t.Run("history failure becomes a warning", func(t *testing.T) {
		repo := &MockProductRepo{}
		logger := &MockChangeLogger{Err: errors.New("history table gone")}
		h := NewCatalogHandler(repo, &MockCategoryChecker{Known: map[uint]bool{1: true}}, logger)
		rec := httptest.NewRecorder()

		h.HandleCreate(rec, newRequest(t, "POST", "/products", validInput(), ""))

		assert.Equal(t, http.StatusCreated, rec.Code, "the mutation must stand")
		body := decodeBody(t, rec)
		assert.NotEmpty(t, body["warning"])
		require.NotNil(t, repo.LastSaved)
	})
}

func TestHandleUpdate(t *testing.T) {
	existing := &models.Product{
		ID:            7,
		Name:          "Джинсы",
		Price:         decimal.RequireFromString("49.99"),
		CategoryID:    2,
		StockQuantity: 100,
		Image:         []byte{0x1},
	}

	newHandler := func() (*MockProductRepo, *MockChangeLogger, *CatalogHandler) {
		repo := &MockProductRepo{Products: map[uint]*models.Product{7: existing}}
		logger := &MockChangeLogger{}
		h := NewCatalogHandler(repo, &MockCategoryChecker{Known: map[uint]bool{1: true, 2: true}}, logger)
		return repo, logger, h
	}

	t.Run("unknown product", func(t *testing.T) {
		_, _, h := newHandler()
		rec := httptest.NewRecorder()

		h.HandleUpdate(rec, newRequest(t, "PUT", "/products/99", validInput(), "99"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, _, h := newHandler()
		rec := httptest.NewRecorder()

		h.HandleUpdate(rec, newRequest(t, "PUT", "/products/abc", validInput(), "abc"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("successful update appends one history row", func(t *testing.T) {
		repo, logger, h := newHandler()
		rec := httptest.NewRecorder()

		h.HandleUpdate(rec, newRequest(t, "PUT", "/products/7", validInput(), "7"))

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, repo.LastSaved)
		assert.Equal(t, uint(7), repo.LastSaved.ID)

		require.Len(t, logger.Entries, 1)
		assert.Equal(t, models.ChangeUpdate, logger.Entries[0].ChangeType)
		assert.Contains(t, logger.Entries[0].Details, "Обновлены данные продукта")
	})

	t.Run("stored image survives when none is sent", func(t *testing.T) {
		repo, _, h := newHandler()
		rec := httptest.NewRecorder()

		h.HandleUpdate(rec, newRequest(t, "PUT", "/products/7", validInput(), "7"))

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, repo.LastSaved)
		assert.Equal(t, []byte{0x1}, repo.LastSaved.Image)
	})

	t.Run("validation failure writes nothing", func(t *testing.T) {
		repo, logger, h := newHandler()
		rec := httptest.NewRecorder()

		h.HandleUpdate(rec, newRequest(t, "PUT", "/products/7", `{"name":"","price":"10","stock_quantity":"5","category_id":2}`, "7"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, repo.LastSaved)
		assert.Empty(t, logger.Entries)
	})
}

func TestHandleDelete(t *testing.T) {
	existing := &models.Product{ID: 7, Name: "Джинсы", Price: decimal.RequireFromString("49.99"), CategoryID: 2}

	t.Run("logs the deletion then deletes", func(t *testing.T) {
		repo := &MockProductRepo{Products: map[uint]*models.Product{7: existing}}
		logger := &MockChangeLogger{}
		h := NewCatalogHandler(repo, &MockCategoryChecker{}, logger)
		rec := httptest.NewRecorder()

		h.HandleDelete(rec, newRequest(t, "DELETE", "/products/7", "", "7"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []uint{7}, repo.Deleted)

		require.Len(t, logger.Entries, 1)
		assert.Equal(t, models.ChangeDelete, logger.Entries[0].ChangeType)
		assert.Contains(t, logger.Entries[0].Details, "Удален продукт: Джинсы")
	})

	t.Run("unknown product", func(t *testing.T) {
		repo := &MockProductRepo{}
		h := NewCatalogHandler(repo, &MockCategoryChecker{}, &MockChangeLogger{})
		rec := httptest.NewRecorder()

		h.HandleDelete(rec, newRequest(t, "DELETE", "/products/7", "", "7"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, repo.Deleted)
	})

	t.Run("history failure still deletes, with a warning", func(t *testing.T) {
		repo := &MockProductRepo{Products: map[uint]*models.Product{7: existing}}
		logger := &MockChangeLogger{Err: errors.New("history table gone")}
		h := NewCatalogHandler(repo, &MockCategoryChecker{}, logger)
		rec := httptest.NewRecorder()

		h.HandleDelete(rec, newRequest(t, "DELETE", "/products/7", "", "7"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []uint{7}, repo.Deleted)
		assert.NotEmpty(t, decodeBody(t, rec)["warning"])
	})
}

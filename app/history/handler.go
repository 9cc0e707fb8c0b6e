package history

import (
	"net/http"

	"github.com/productcatalog/webapp/app/api"
	"github.com/productcatalog/webapp/models"
)

var gridColumns = []api.Column{
	{Field: "id", Hidden: true},
	{Field: "product_name", Header: "Продукт"},
	{Field: "user_name", Header: "Пользователь"},
	{Field: "change_type", Header: "Тип изменения"},
	{Field: "change_details", Header: "Детали изменений"},
	{Field: "changed_at", Header: "Дата изменения"},
}

type Response struct {
	Columns []api.Column        `json:"columns"`
	Entries []models.HistoryRow `json:"entries"`
}

type HistoryProvider interface {
	List() ([]models.HistoryRow, error)
}

// HistoryHandler serves the read-only change history report.
type HistoryHandler struct {
	repo HistoryProvider
}

func NewHistoryHandler(r HistoryProvider) *HistoryHandler {
	return &HistoryHandler{repo: r}
}

func (h *HistoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repo.List()
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to fetch change history")
		return
	}

	if entries == nil {
		entries = []models.HistoryRow{}
	}
	api.WriteJSON(w, http.StatusOK, Response{
		Columns: gridColumns,
		Entries: entries,
	})
}

package help

import (
	"io"
	"net/http"
)

// helpText carries the static help screen content.
const helpText = `Каталог продукции — справка

Продукты: просмотр, поиск по названию, описанию и производителю,
фильтр по категории. Добавление, редактирование и удаление доступны
только администратору.

Категории: список категорий с поиском. Категорию нельзя удалить,
пока в ней есть продукты.

Пользователи: управление учетными записями (только для
администратора). Учетную запись admin удалить нельзя.

История изменений: журнал создания, изменения и удаления продуктов
с указанием пользователя и времени.
`

// Handle serves the help text as plain UTF-8.
func Handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, helpText)
}

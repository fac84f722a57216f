package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func duneRequest() map[string]interface{} {
	return map[string]interface{}{
		"title":          "Dune",
		"author":         "Frank Herbert",
		"publisher":      "Ace",
		"isbn":           "978-0441172719",
		"classification": "Fiction",
		"category":       "Science Fiction",
		"pageCount":      896,
		"price":          9.99,
	}
}

func TestAdmin_BookLifecycle(t *testing.T) {
	r := seededEngine(t)

	w := do(t, r, http.MethodPost, "/api/books", duneRequest())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		BookID uint   `json:"bookID"`
		ISBN   string `json:"isbn"`
	}
	decode(t, w, &created)
	assert.Equal(t, uint(11), created.BookID)
	assert.Equal(t, "9780441172719", created.ISBN)
	path := fmt.Sprintf("/api/books/%d", created.BookID)

	// 连字符不同但数字相同的ISBN视为重复
	dup := duneRequest()
	dup["isbn"] = "9780441172719"
	w = do(t, r, http.MethodPost, "/api/books", dup)
	assert.Equal(t, http.StatusConflict, w.Code)

	var categories []string
	decode(t, do(t, r, http.MethodGet, "/api/categories", nil), &categories)
	assert.Contains(t, categories, "Science Fiction")

	update := duneRequest()
	update["bookID"] = created.BookID
	update["title"] = "Dune Messiah"
	update["price"] = 12.5
	w = do(t, r, http.MethodPut, path, update)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Dune Messiah"`)
	assert.Contains(t, w.Body.String(), `"price":12.5`)

	w = do(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodDelete, path, nil).Code)
	assert.EqualValues(t, 10, listBooks(t, r, "").TotalItems)
}

func TestAdmin_UpdateConflicts(t *testing.T) {
	r := seededEngine(t)

	// ISBN属于1号图书(Les Miserables)
	req := duneRequest()
	req["isbn"] = "978-0451419439"
	w := do(t, r, http.MethodPut, "/api/books/2", req)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPut, "/api/books/404", duneRequest())
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 路径与请求体ID不一致
	req = duneRequest()
	req["bookID"] = 3
	w = do(t, r, http.MethodPut, "/api/books/2", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdmin_Validation(t *testing.T) {
	r := seededEngine(t)

	for name, mutate := range map[string]func(map[string]interface{}){
		"缺少标题":   func(m map[string]interface{}) { delete(m, "title") },
		"ISBN非法": func(m map[string]interface{}) { m["isbn"] = "12-34" },
		"负价格":    func(m map[string]interface{}) { m["price"] = -1 },
		"负页数":    func(m map[string]interface{}) { m["pageCount"] = -5 },
	} {
		t.Run(name, func(t *testing.T) {
			req := duneRequest()
			mutate(req)
			w := do(t, r, http.MethodPost, "/api/books", req)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

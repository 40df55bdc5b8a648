package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func pageContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestParsePage(t *testing.T) {
	c, _ := pageContext("/items")
	p, ok := parsePage(c)
	assert.True(t, ok)
	assert.Equal(t, 0, p.offset())
	assert.Equal(t, defaultPageSize, p.limit())

	c, _ = pageContext("/items?page=3&page_size=500")
	p, ok = parsePage(c)
	assert.True(t, ok)
	assert.Equal(t, maxPageSize, p.limit())
	assert.Equal(t, 2*maxPageSize, p.offset())

	c, w := pageContext("/items?page=0")
	_, ok = parsePage(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParsePageRejectsHugePage(t *testing.T) {
	c, w := pageContext("/items?page=9223372036854775807&page_size=100")
	_, ok := parsePage(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, _ = pageContext("/items?page=1000000&page_size=100")
	p, ok := parsePage(c)
	assert.True(t, ok)
	assert.Equal(t, 999_999*100, p.offset())
}

func TestPaginatedLinks(t *testing.T) {
	c, _ := pageContext("/items?page=2&page_size=5&search=x")
	body := paginated(c, page{number: 2, size: 5}, 12, []int{1})
	assert.EqualValues(t, 12, body["count"])
	assert.Equal(t, "http://example.com/items?page=3&page_size=5&search=x", body["next"])
	assert.Equal(t, "http://example.com/items?page=1&page_size=5&search=x", body["previous"])

	body = paginated(c, page{number: 3, size: 5}, 12, nil)
	assert.Nil(t, body["next"])
}

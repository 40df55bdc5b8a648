package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	// keeps (page-1)*page_size far from overflowing
	maxPageNumber = 1_000_000
)

type page struct {
	number int
	size   int
}

func (p page) limit() int  { return p.size }
func (p page) offset() int { return (p.number - 1) * p.size }

// parsePage reads ?page= and ?page_size=. It writes a 400 and returns false on bad input.
func parsePage(c *gin.Context) (page, bool) {
	p := page{number: 1, size: defaultPageSize}
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
			return p, false
		}
		if n > maxPageNumber {
			c.JSON(http.StatusNotFound, gin.H{"error": "invalid page", "detail": "page is past the last page"})
			return p, false
		}
		p.number = n
	}
	if v := c.Query("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page_size"})
			return p, false
		}
		if n > maxPageSize {
			n = maxPageSize
		}
		p.size = n
	}
	return p, true
}

// paginated builds the list envelope: count, next, previous and results.
func paginated(c *gin.Context, p page, total int64, results any) gin.H {
	var next, prev any
	if int64(p.number*p.size) < total {
		next = pageURL(c, p.number+1)
	}
	if p.number > 1 {
		prev = pageURL(c, p.number-1)
	}
	return gin.H{"count": total, "next": next, "previous": prev, "results": results}
}

func pageURL(c *gin.Context, n int) string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(n))
	u.RawQuery = q.Encode()
	u.Host = c.Request.Host
	u.Scheme = "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		u.Scheme = "https"
	}
	return u.String()
}

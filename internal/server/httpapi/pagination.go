package httpapi

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/shoppinglist/internal/server/models"
	"github.com/gin-gonic/gin"
)

const (
	defaultLimit = 10
	maxLimit     = 20
)

// pageParams are the q, page and limit query parameters after clamping:
// page below 1 or unparsable is 1; limit is 10 when absent or unparsable,
// and 20 when above 20 or below 1.
type pageParams struct {
	q     string
	hasQ  bool
	page  int
	limit int
}

func parsePageParams(c *gin.Context) pageParams {
	p := pageParams{page: 1, limit: defaultLimit}
	p.q, p.hasQ = c.GetQuery("q")

	if n, err := strconv.Atoi(c.Query("page")); err == nil && n >= 1 {
		p.page = n
	}
	if n, err := strconv.Atoi(c.Query("limit")); err == nil {
		p.limit = n
	}
	if p.limit > maxLimit || p.limit < 1 {
		p.limit = maxLimit
	}
	return p
}

func (p pageParams) query() models.PageQuery {
	return models.PageQuery{Search: p.q, Limit: p.limit, Offset: (p.page - 1) * p.limit}
}

func (p pageParams) totalPages(total int) int {
	return (total + p.limit - 1) / p.limit
}

// link points at another page of the same collection, keeping q and limit.
func (p pageParams) link(path string, page int) string {
	v := url.Values{}
	if p.hasQ {
		v.Set("q", p.q)
	}
	v.Set("limit", strconv.Itoa(p.limit))
	v.Set("page", strconv.Itoa(page))
	return path + "?" + v.Encode()
}

// paginate adds the page metadata and navigation links to body.
func (p pageParams) paginate(body gin.H, path string, total int) {
	pages := p.totalPages(total)
	body["current page"] = p.page
	body["total number of pages"] = pages
	if p.page < pages {
		body["next page"] = p.link(path, p.page+1)
	}
	if p.page > 1 {
		body["previous page"] = p.link(path, min(p.page-1, max(pages, 1)))
	}
}

// empty answers a page without rows. Past the last page of a non-empty
// collection the page metadata is still reported.
func (p pageParams) empty(c *gin.Context, msg string, total int) {
	body := gin.H{"status": statusSuccess, "message": msg}
	if total > 0 {
		p.paginate(body, c.Request.URL.Path, total)
	}
	c.JSON(http.StatusOK, body)
}

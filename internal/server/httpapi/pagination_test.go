package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/shoppinglist/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func pageParamsFor(target string) pageParams {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return parsePageParams(c)
}

func TestParsePageParams(t *testing.T) {
	cases := []struct {
		target string
		want   pageParams
	}{
		{"/x", pageParams{page: 1, limit: 10}},
		{"/x?page=3&limit=5", pageParams{page: 3, limit: 5}},
		{"/x?page=0", pageParams{page: 1, limit: 10}},
		{"/x?page=-2", pageParams{page: 1, limit: 10}},
		{"/x?page=abc", pageParams{page: 1, limit: 10}},
		{"/x?limit=abc", pageParams{page: 1, limit: 10}},
		{"/x?limit=21", pageParams{page: 1, limit: 20}},
		{"/x?limit=0", pageParams{page: 1, limit: 20}},
		{"/x?limit=-1", pageParams{page: 1, limit: 20}},
		{"/x?q=", pageParams{hasQ: true, page: 1, limit: 10}},
		{"/x?q=milk", pageParams{q: "milk", hasQ: true, page: 1, limit: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			assert.Equal(t, tc.want, pageParamsFor(tc.target))
		})
	}
}

func TestPageParams_QueryAndTotals(t *testing.T) {
	p := pageParams{q: "milk", page: 3, limit: 5}
	assert.Equal(t, models.PageQuery{Search: "milk", Limit: 5, Offset: 10}, p.query())

	assert.Equal(t, 0, p.totalPages(0))
	assert.Equal(t, 1, p.totalPages(5))
	assert.Equal(t, 2, p.totalPages(6))
}

func TestPageParams_Paginate(t *testing.T) {
	p := pageParams{q: "a b", hasQ: true, page: 2, limit: 1}
	body := gin.H{}
	p.paginate(body, "/api/v1/shoppinglists", 3)

	assert.Equal(t, gin.H{
		"current page":          2,
		"total number of pages": 3,
		"next page":             "/api/v1/shoppinglists?limit=1&page=3&q=a+b",
		"previous page":         "/api/v1/shoppinglists?limit=1&page=1&q=a+b",
	}, body)
}

func TestPageParams_PaginatePastLastPage(t *testing.T) {
	p := pageParams{page: 9, limit: 2}
	body := gin.H{}
	p.paginate(body, "/api/v1/shoppinglists", 3)

	assert.Equal(t, gin.H{
		"current page":          9,
		"total number of pages": 2,
		"previous page":         "/api/v1/shoppinglists?limit=2&page=2",
	}, body)
}

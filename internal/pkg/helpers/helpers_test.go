package helpers

import (
	"math"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/admin/students?"+rawQuery, nil)
	return c
}

func TestPaginatorParse(t *testing.T) {
	p := NewPaginator(15, 100)

	tests := []struct {
		query string
		want  PageRequest
	}{
		{"", PageRequest{Page: 1, PerPage: 15}},
		{"page=3", PageRequest{Page: 3, PerPage: 15}},
		{"page=2&per_page=50", PageRequest{Page: 2, PerPage: 50}},
		{"page=0&per_page=101", PageRequest{Page: 1, PerPage: 15}},
		{"page=abc&per_page=-1", PageRequest{Page: 1, PerPage: 15}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Parse(contextWithQuery(tt.query)), tt.query)
	}
}

func TestDefaultPageSizeIsFifteen(t *testing.T) {
	assert.Equal(t, 15, NewPaginator(0, 0).Parse(contextWithQuery("")).PerPage)
	assert.Equal(t, NewPaginator(0, 0), NewPaginator(DefaultPageSize, MaxPageSize))
}

func TestPaginatorParseClampsHugePage(t *testing.T) {
	p := NewPaginator(15, 100)

	req := p.Parse(contextWithQuery("page=922337203685477581&per_page=15"))
	assert.Equal(t, math.MaxInt/100, req.Page)

	w := req.Window()
	assert.LessOrEqual(t, w.Offset, uint64(math.MaxInt64))
	assert.Equal(t, uint64(req.Page-1)*15, w.Offset)

	links, meta := NewPagination(20, req, 1, "/api/admin/students", nil)
	require.NotNil(t, meta.From)
	assert.Positive(t, *meta.From)
	assert.Equal(t, req.Page, meta.CurrentPage)
	assert.Nil(t, links.Next)
	assert.Nil(t, links.Prev)
}

func TestWindow(t *testing.T) {
	w := PageRequest{Page: 3, PerPage: 15}.Window()
	assert.Equal(t, uint64(30), w.Offset)
	assert.Equal(t, uint64(15), w.Limit)
}

func TestNewPaginationMiddlePage(t *testing.T) {
	query := url.Values{"name": {"ana"}, "page": {"2"}}
	links, meta := NewPagination(40, PageRequest{Page: 2, PerPage: 15}, 15, "/api/admin/students", query)

	assert.Equal(t, "/api/admin/students?name=ana&page=1", links.First)
	assert.Equal(t, "/api/admin/students?name=ana&page=3", links.Last)
	require.NotNil(t, links.Prev)
	require.NotNil(t, links.Next)
	assert.Equal(t, "/api/admin/students?name=ana&page=1", *links.Prev)
	assert.Equal(t, "/api/admin/students?name=ana&page=3", *links.Next)

	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 3, meta.LastPage)
	assert.Equal(t, 16, *meta.From)
	assert.Equal(t, 30, *meta.To)
	assert.Equal(t, int64(40), meta.Total)
	assert.Equal(t, "2", query.Get("page"), "input query must not be modified")
}

func TestNewPaginationEmpty(t *testing.T) {
	links, meta := NewPagination(0, PageRequest{Page: 1, PerPage: 15}, 0, "/api/admin/courses", nil)

	assert.Equal(t, "/api/admin/courses?page=1", links.Last)
	assert.Nil(t, links.Prev)
	assert.Nil(t, links.Next)
	assert.Equal(t, 1, meta.LastPage)
	assert.Nil(t, meta.From)
	assert.Nil(t, meta.To)
}

func TestYearsBetween(t *testing.T) {
	birth := time.Date(2000, time.May, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 23, YearsBetween(birth, time.Date(2024, time.May, 14, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24, YearsBetween(birth, time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24, YearsBetween(birth, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, YearsBetween(birth, time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestNilIfBlank(t *testing.T) {
	blank, text := "   ", "  Citologia "
	assert.Nil(t, NilIfBlank(nil))
	assert.Nil(t, NilIfBlank(&blank))
	assert.Equal(t, "Citologia", *NilIfBlank(&text))
	assert.Equal(t, "ana@example.com", NormalizeEmail(" Ana@Example.COM "))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, time.Hour, ParseDuration("1h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("soon", time.Minute))
}

package helpers

import (
	"math"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jubilut/academia/internal/app/models"
	"github.com/jubilut/academia/internal/app/models/dto"
)

const (
	DefaultPageSize = 15
	MaxPageSize     = 100
	DefaultPage     = 1
)

// Paginator reads page/per_page query parameters within configured bounds
type Paginator struct {
	DefaultSize int
	MaxSize     int
}

// NewPaginator falls back to the package defaults for non-positive sizes
func NewPaginator(defaultSize, maxSize int) Paginator {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if maxSize < defaultSize {
		maxSize = MaxPageSize
	}
	return Paginator{DefaultSize: defaultSize, MaxSize: maxSize}
}

// PageRequest is a validated, 1-based page selection
type PageRequest struct {
	Page    int
	PerPage int
}

// Parse extracts pagination parameters. Invalid or out of range values fall back to defaults;
// huge page numbers are clamped so the offset cannot overflow.
func (p Paginator) Parse(c *gin.Context) PageRequest {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(p.DefaultSize)))
	if err != nil || perPage <= 0 || perPage > p.MaxSize {
		perPage = p.DefaultSize
	}

	// keeps the offset, meta.from and the page links inside int
	if maxPage := math.MaxInt / max(p.MaxSize, perPage, 1); page > maxPage {
		page = maxPage
	}

	return PageRequest{Page: page, PerPage: perPage}
}

// Window converts the request into the repository offset/limit
func (r PageRequest) Window() models.Page {
	return models.Page{
		Offset: uint64((r.Page - 1) * r.PerPage),
		Limit:  uint64(r.PerPage),
	}
}

// LastPage is the number of the final page, at least 1
func LastPage(total int64, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 1
	}
	return int(math.Ceil(float64(total) / float64(perPage)))
}

// NewPagination builds the links and meta blocks for one page of results.
// path is the request path; query is copied into every link with page overridden.
func NewPagination(total int64, req PageRequest, itemsOnPage int, path string, query url.Values) (dto.PaginationLinks, dto.PaginationMeta) {
	lastPage := LastPage(total, req.PerPage)

	link := func(page int) string {
		q := url.Values{}
		for k, v := range query {
			q[k] = append([]string(nil), v...)
		}
		q.Set("page", strconv.Itoa(page))
		return path + "?" + q.Encode()
	}

	links := dto.PaginationLinks{
		First: link(1),
		Last:  link(lastPage),
	}
	if req.Page > 1 && req.Page <= lastPage+1 {
		prev := link(req.Page - 1)
		links.Prev = &prev
	}
	if req.Page < lastPage {
		next := link(req.Page + 1)
		links.Next = &next
	}

	meta := dto.PaginationMeta{
		CurrentPage: req.Page,
		LastPage:    lastPage,
		Path:        path,
		PerPage:     req.PerPage,
		Total:       total,
	}
	if itemsOnPage > 0 {
		from := (req.Page-1)*req.PerPage + 1
		to := from + itemsOnPage - 1
		meta.From = &from
		meta.To = &to
	}

	return links, meta
}

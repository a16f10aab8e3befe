package dto

// PaginationLinks holds absolute-path links to neighbouring pages
type PaginationLinks struct {
	First string  `json:"first" example:"/api/admin/students?page=1"`
	Last  string  `json:"last" example:"/api/admin/students?page=4"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next" example:"/api/admin/students?page=2"`
}

// PaginationMeta describes the current page. From and To are null on an empty page.
type PaginationMeta struct {
	CurrentPage int    `json:"current_page" example:"1"`
	From        *int   `json:"from" example:"1"`
	LastPage    int    `json:"last_page" example:"4"`
	Path        string `json:"path" example:"/api/admin/students"`
	PerPage     int    `json:"per_page" example:"15"`
	To          *int   `json:"to" example:"15"`
	Total       int64  `json:"total" example:"52"`
}

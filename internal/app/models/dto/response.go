package dto

import "time"

// APIResponse is the success envelope of every endpoint that returns a body
type APIResponse struct {
	Success   bool             `json:"success" example:"true"`
	Message   string           `json:"message,omitempty" example:"Logged out successfully."`
	Data      interface{}      `json:"data,omitempty"`
	Links     *PaginationLinks `json:"links,omitempty"`
	Meta      *PaginationMeta  `json:"meta,omitempty"`
	Timestamp time.Time        `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewAPIResponse wraps data in a success envelope
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewMessageResponse is a success envelope carrying only a message
func NewMessageResponse(message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewPaginatedResponse wraps one page of data with its navigation links and meta
func NewPaginatedResponse(data interface{}, links PaginationLinks, meta PaginationMeta) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Links:     &links,
		Meta:      &meta,
		Timestamp: time.Now(),
	}
}

// File: internal/dto/link_request.go
package dto

// swagger:model dto.CreateLinkRequest
type CreateLinkRequest struct {
	CategoryID  int64  `json:"category_id" validate:"required" example:"1"`
	Name        string `json:"name" validate:"required" example:"Go"`
	URL         string `json:"url" validate:"required" example:"https://go.dev"`
	Description string `json:"description" example:"The Go programming language"`
}

// swagger:model dto.UpdateLinkRequest
type UpdateLinkRequest struct {
	Name        string `json:"name" validate:"required" example:"Go"`
	URL         string `json:"url" validate:"required" example:"https://go.dev"`
	Description string `json:"description" example:"The Go programming language"`
}

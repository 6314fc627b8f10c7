// File: internal/dto/category_request.go
package dto

// swagger:model dto.CategoryRequest
type CategoryRequest struct {
	Name        string `json:"name" validate:"required" example:"開發工具"`
	Emoji       string `json:"emoji" example:"🛠"`
	Description string `json:"description" example:"日常開發常用網站"`
}

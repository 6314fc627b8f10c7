// File: internal/dto/http_error.go
package dto

// HTTPError 全域錯誤響應模型
// swagger:model dto.HTTPError
type HTTPError struct {
	// error 錯誤描述
	Error string `json:"error" example:"unauthorized"`
}

// swagger:model dto.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"registered"`
}

// swagger:model dto.SuccessResponse
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// swagger:model dto.IDResponse
type IDResponse struct {
	ID int64 `json:"id" example:"1"`
}

// File: internal/dto/submission_request.go
package dto

// swagger:model dto.CreateSubmissionRequest
type CreateSubmissionRequest struct {
	CategoryID  int64  `json:"category_id" validate:"required" example:"1"`
	Name        string `json:"name" validate:"required" example:"Echo"`
	URL         string `json:"url" validate:"required" example:"https://echo.labstack.com"`
	Description string `json:"description" example:"High performance Go web framework"`
}

// ReviewRequest 審核投稿，status 僅接受 approved 或 rejected
// swagger:model dto.ReviewRequest
type ReviewRequest struct {
	Status       string  `json:"status" validate:"required,oneof=approved rejected" example:"approved"`
	AdminComment *string `json:"admin_comment" example:"收錄"`
}

// swagger:model dto.SubmissionResponse
type SubmissionResponse struct {
	ID     int64  `json:"id" example:"12"`
	Status string `json:"status" example:"pending"`
}

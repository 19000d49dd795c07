package dto

// SubmitReviewRequest carries the reviewer's verdict. Passed is a pointer so
// an omitted field fails validation instead of silently meaning "failed".
type SubmitReviewRequest struct {
	Passed *bool  `json:"passed" validate:"required"`
	Note   string `json:"note" validate:"max=2000"`
}

type ReviewResponse struct {
	Passed bool         `json:"passed"`
	Task   TaskResponse `json:"task"`
}

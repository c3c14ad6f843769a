package dto

// CompletePickTaskRequest assigns the picked barcode and photo evidence.
type CompletePickTaskRequest struct {
	Barcode  string `json:"barcode" binding:"required"`
	PhotoKey string `json:"photoKey,omitempty"`
}

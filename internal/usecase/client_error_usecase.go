package usecase

import "context"

// ClientErrorReport is an unhandled error reported by a frontend
type ClientErrorReport struct {
	Message   string `json:"message" validate:"required"`
	Source    string `json:"source,omitempty"`
	Stack     string `json:"stack,omitempty"`
	URL       string `json:"url,omitempty"`
	Line      int    `json:"line,omitempty"`
	Column    int    `json:"column,omitempty"`
	UserAgent string `json:"-"`
}

// ClientErrorUsecase records frontend errors for observability
type ClientErrorUsecase interface {
	// Report logs the error and reports whether it was kept
	Report(ctx context.Context, report *ClientErrorReport) bool
}

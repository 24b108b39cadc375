package usecase

import (
	"context"

	"storefront/internal/domain/service"
)

// UploadUsecase validates and forwards file uploads
type UploadUsecase interface {
	Upload(ctx context.Context, upload *service.Upload) (*service.UploadResult, error)
	MaxSize(kind service.UploadKind) int64
}

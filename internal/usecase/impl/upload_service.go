package impl

import (
	"context"
	"log/slog"
	"mime"
	"strings"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// uploadService implements the UploadUsecase interface.
type uploadService struct {
	uploads service.UploadService
	limits  map[service.UploadKind]sizeLimit
	logger  *slog.Logger
}

// sizeLimit keeps the configured text for messages next to the parsed bytes
type sizeLimit struct {
	bytes int64
	label string
}

// UploadServiceParams holds dependencies for UploadService, injected by Fx.
type UploadServiceParams struct {
	fx.In

	Uploads service.UploadService
	Config  *config.Config
	Logger  *slog.Logger
}

// NewUploadService is the constructor for uploadService.
func NewUploadService(params UploadServiceParams) (usecase.UploadUsecase, error) {
	cfg := params.Config.Uploads

	maxImage, err := util.ParseSize(cfg.MaxImageSize)
	if err != nil {
		return nil, errors.Wrap(err, "uploads.maxImageSize")
	}
	maxDocument, err := util.ParseSize(cfg.MaxDocumentSize)
	if err != nil {
		return nil, errors.Wrap(err, "uploads.maxDocumentSize")
	}

	return &uploadService{
		uploads: params.Uploads,
		limits: map[service.UploadKind]sizeLimit{
			service.UploadProductImage:         {bytes: maxImage, label: strings.TrimSpace(cfg.MaxImageSize)},
			service.UploadVerificationDocument: {bytes: maxDocument, label: strings.TrimSpace(cfg.MaxDocumentSize)},
		},
		logger: params.Logger,
	}, nil
}

func (srv *uploadService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// MaxSize returns the byte limit for kind.
func (srv *uploadService) MaxSize(kind service.UploadKind) int64 {
	return srv.limits[kind].bytes
}

// Upload checks type and declared size, then forwards the file.
func (srv *uploadService) Upload(ctx context.Context, upload *service.Upload) (*service.UploadResult, error) {
	if upload == nil || upload.Body == nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "file is required")
	}

	contentType := normalizeContentType(upload.ContentType)
	if !acceptsContentType(upload.Kind, contentType) {
		return nil, domainerrors.ErrUnsupportedFileType.WithDetails(contentType)
	}

	limit := srv.limits[upload.Kind]
	if upload.Size > limit.bytes {
		srv.log(ctx).InfoContext(ctx, "Rejected oversized upload",
			slog.String("kind", string(upload.Kind)),
			slog.String("size", util.FormatBytes(upload.Size)),
			slog.String("limit", limit.label),
		)

		return nil, domainerrors.ErrFileTooLarge.WithDetails("maximum size is " + limit.label)
	}

	upload.ContentType = contentType

	return srv.uploads.Upload(ctx, upload)
}

func acceptsContentType(kind service.UploadKind, contentType string) bool {
	switch kind {
	case service.UploadProductImage:
		return imageTypes[contentType]
	case service.UploadVerificationDocument:
		return contentType == "application/pdf" || imageTypes[contentType]
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}

	return mediaType
}

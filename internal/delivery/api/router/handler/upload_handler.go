package handler

import (
	"net/http"

	"storefront/internal/delivery/api/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const uploadField = "file"

// UploadHandler forwards product images and verification documents
type UploadHandler struct {
	uploadUC usecase.UploadUsecase
}

// NewUploadHandler is the constructor for UploadHandler
func NewUploadHandler(uploadUC usecase.UploadUsecase) *UploadHandler {
	return &UploadHandler{uploadUC: uploadUC}
}

// ProductImage uploads a product image
func (h *UploadHandler) ProductImage(c echo.Context) error {
	return h.upload(c, service.UploadProductImage)
}

// VerificationDocument uploads a seller verification document
func (h *UploadHandler) VerificationDocument(c echo.Context) error {
	return h.upload(c, service.UploadVerificationDocument)
}

func (h *UploadHandler) upload(c echo.Context, kind service.UploadKind) error {
	header, err := c.FormFile(uploadField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return domainerrors.ErrValidationFailed.WithDetails("file is required")
		}

		return response.BindingError(c, "Invalid upload")
	}

	file, err := header.Open()
	if err != nil {
		return errors.Wrap(err, "open uploaded file")
	}
	defer file.Close()

	result, err := h.uploadUC.Upload(c.Request().Context(), &service.Upload{
		Kind:        kind,
		FileName:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, result)
}

package backend

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

type uploadClient struct {
	c *Client
}

// NewUploadClient creates an UploadService backed by the REST API
func NewUploadClient(c *Client) service.UploadService {
	return &uploadClient{c: c}
}

// Upload sends the file as multipart/form-data to POST /api/uploads/:kind
func (uc *uploadClient) Upload(ctx context.Context, upload *service.Upload) (*service.UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", multipartDisposition("file", upload.FileName))
	header.Set("Content-Type", upload.ContentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if _, err := io.Copy(part, upload.Body); err != nil {
		return nil, errors.Wrap(err, "copy upload body")
	}
	if err := writer.Close(); err != nil {
		return nil, errors.WithStack(err)
	}

	endpoint := uc.c.endpoint(nil, "api", "uploads", string(upload.Kind))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	raw, err := uc.c.send(req)
	if err != nil {
		return nil, err
	}

	var result service.UploadResult
	if err := decode(raw, &result, "data"); err != nil {
		return nil, err
	}

	return &result, nil
}

func multipartDisposition(field, fileName string) string {
	return `form-data; name="` + escapeQuotes(field) + `"; filename="` + escapeQuotes(fileName) + `"`
}

func escapeQuotes(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}

	return b.String()
}

package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/halo-bridge/internal/domain"
	"github.com/bnema/halo-bridge/internal/logging"
	"github.com/bnema/halo-bridge/internal/ports"
	"go.uber.org/zap"
)

const (
	uploadOperation      = "upload"
	defaultUploadTimeout = 5 * time.Minute
	maxErrorBodyBytes    = 4 << 10
)

// Uploader PUTs raw bytes to a presigned object-storage URL. The URL carries its own authorization.
type Uploader struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *zap.Logger
}

var _ ports.ObjectUploader = (*Uploader)(nil)

func (u *Uploader) Put(ctx context.Context, url string, contentType string, body []byte) error {
	if strings.TrimSpace(url) == "" {
		return errors.New("upload url is empty")
	}
	if contentType == "" {
		contentType = domain.DefaultContentType
	}

	requestCtx, cancel := u.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create upload request: %w", err)
	}
	req.ContentLength = int64(len(body))
	req.Header.Set("Content-Type", contentType)

	started := time.Now()
	resp, err := u.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &domain.TransportError{
			Operation:  uploadOperation,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
		}
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))

	u.logger().Debug("object uploaded",
		zap.Int("bytes", len(body)),
		zap.String("content_type", contentType),
		zap.Duration("elapsed", time.Since(started)),
	)

	return nil
}

func (u *Uploader) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	timeout := u.Timeout
	if timeout <= 0 {
		timeout = defaultUploadTimeout
	}

	return context.WithTimeout(ctx, timeout)
}

func (u *Uploader) httpClient() *http.Client {
	if u.HTTPClient != nil {
		return u.HTTPClient
	}
	return http.DefaultClient
}

func (u *Uploader) logger() *zap.Logger {
	return logging.OrNop(u.Logger)
}

package ports

import "context"

// ObjectUploader transfers raw bytes to a presigned URL without credentials.
type ObjectUploader interface {
	Put(ctx context.Context, url string, contentType string, body []byte) error
}

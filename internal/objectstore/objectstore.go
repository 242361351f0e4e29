package objectstore

import (
	"context"
	"io"
)

// Uploader stores a resume object and returns the URL it is reachable at.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedURL string, err error)
}

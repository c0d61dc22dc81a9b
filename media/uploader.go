// Package media defines the image upload collaborator. Upload and
// transcoding to a blob store happen outside this service; only the contract
// lives here.
package media

import (
	"context"
	"io"
)

type Uploader interface {
	// Upload stores an image and returns its public URL.
	Upload(ctx context.Context, filename string, contents io.Reader) (string, error)
}

package contract

import (
	"context"
	"mime/multipart"
)

// IFileStorage accepts an uploaded image and returns the public path it was
// stored under. Size and MIME-type violations surface as validation errors.
type IFileStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader) (string, error)
}

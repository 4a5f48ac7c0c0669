package http

import (
	"fmt"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/SubhajitChakrabort/ProfilePage/internal/application/service"
	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/media"
	"github.com/SubhajitChakrabort/ProfilePage/pkg/apperror"
)

// formFile reads one optional file part. A missing part returns (nil, nil);
// a disallowed type or storage failure returns an error and nothing is kept.
func formFile(c *gin.Context, store service.BinaryStore, field string) (*media.StoredFile, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return saveUpload(c, store, field, fh)
}

// formFiles reads an array field, capped at media.MaxBatchFiles. Any failure
// deletes the parts already written so the request leaves no partial state.
func formFiles(c *gin.Context, store service.BinaryStore, field string) ([]*media.StoredFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	headers := form.File[field]
	if len(headers) == 0 {
		return nil, nil
	}
	if len(headers) > media.MaxBatchFiles {
		return nil, apperror.NewInvalidInput(
			fmt.Sprintf("Too many files: at most %d allowed", media.MaxBatchFiles), nil)
	}

	stored := make([]*media.StoredFile, 0, len(headers))
	for _, fh := range headers {
		f, err := saveUpload(c, store, field, fh)
		if err != nil {
			for _, s := range stored {
				store.Delete(s.Name)
			}
			return nil, err
		}
		stored = append(stored, f)
	}
	return stored, nil
}

func saveUpload(c *gin.Context, store service.BinaryStore, field string, fh *multipart.FileHeader) (*media.StoredFile, error) {
	if fh.Size > media.MaxUploadSize {
		return nil, apperror.NewInvalidInput("File too large", nil)
	}
	mimeType := fh.Header.Get("Content-Type")
	if !media.Allowed(mimeType) {
		return nil, apperror.NewInvalidInput("Invalid file type. Only images, videos, APKs, and documents are allowed.", nil)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, apperror.NewInternal("failed to open uploaded file", err)
	}
	defer src.Close()

	name := media.NewFilename(field, fh.Filename)
	size, err := store.Save(c.Request.Context(), name, src)
	if err != nil {
		return nil, apperror.NewInternal("failed to store uploaded file", err)
	}

	return &media.StoredFile{
		Name:         name,
		OriginalName: fh.Filename,
		MimeType:     mimeType,
		Size:         size,
		Type:         media.TypeOf(mimeType),
	}, nil
}

// discard removes stored files, used to compensate when a request fails after
// its parts were already written.
func discard(store service.BinaryStore, files ...*media.StoredFile) {
	for _, f := range files {
		if f != nil {
			store.Delete(f.Name)
		}
	}
}

package media

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"
)

type FileType string

const (
	FileTypeImage    FileType = "image"
	FileTypeVideo    FileType = "video"
	FileTypeAPK      FileType = "apk"
	FileTypeDocument FileType = "document"
)

const MimeAPK = "application/vnd.android.package-archive"

// MaxUploadSize is the per-file cap enforced at intake.
const MaxUploadSize = 50 << 20

// MaxBatchFiles caps the "files" array field.
const MaxBatchFiles = 10

var allowedMimeTypes = make(map[string]struct{})

func init() {
	for _, mt := range []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
		"image/svg+xml",
		"video/mp4",
		"video/webm",
		"video/quicktime",
		"video/x-msvideo",
		MimeAPK,
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-powerpoint",
		"application/vnd.openxmlformats-officedocument.presentationml.presentation",
		"text/plain",
	} {
		allowedMimeTypes[mt] = struct{}{}
	}
}

// Allowed reports whether the declared MIME type may be stored. Content-Type
// parameters (e.g. "; charset=utf-8") are ignored.
func Allowed(mimeType string) bool {
	_, ok := allowedMimeTypes[normalize(mimeType)]
	return ok
}

// TypeOf classifies a MIME type into the coarse tag persisted next to the
// file reference.
func TypeOf(mimeType string) FileType {
	mt := normalize(mimeType)
	switch {
	case strings.HasPrefix(mt, "image/"):
		return FileTypeImage
	case strings.HasPrefix(mt, "video/"):
		return FileTypeVideo
	case mt == MimeAPK:
		return FileTypeAPK
	default:
		return FileTypeDocument
	}
}

func normalize(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

// NewFilename produces a store-unique name for an uploaded part:
// <field>-<unix nanos>-<random>.<original extension>.
func NewFilename(field, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s-%d-%09d%s", field, time.Now().UnixNano(), rand.Intn(1_000_000_000), ext)
}

// StoredFile describes a part already persisted in the binary store.
type StoredFile struct {
	Name         string
	OriginalName string
	MimeType     string
	Size         int64
	Type         FileType
}

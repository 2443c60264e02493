package uploads

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/anupamtiwari/homecraft-backend/pkg/config"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
)

// Kind selects the validation profile and storage prefix for an upload.
type Kind string

const (
	KindReviewImage Kind = "review_image"
	KindResume      Kind = "resume"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindReviewImage, KindResume:
		return true
	}
	return false
}

var mimeTypesByKind = map[Kind][]string{
	KindReviewImage: {"image/png", "image/jpeg", "image/webp"},
	KindResume:      {"application/pdf"},
}

type objectStore interface {
	UploadObject(ctx context.Context, bucket, object, contentType string, body io.Reader) (string, error)
	DefaultBucket() string
}

// Service streams client files into object storage and hands back public URLs.
type Service interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
}

type service struct {
	store    objectStore
	maxBytes int64
}

func NewService(store objectStore, cfg config.UploadConfig) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("object store required")
	}
	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("max upload size must be positive")
	}
	return &service{
		store:    store,
		maxBytes: int64(cfg.MaxUploadMB) * 1024 * 1024,
	}, nil
}

// UploadInput models a single incoming multipart file.
type UploadInput struct {
	Kind        Kind
	FileName    string
	ContentType string
	SizeBytes   int64
	Body        io.Reader
}

type UploadOutput struct {
	URL         string `json:"url"`
	Object      string `json:"object"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*UploadOutput, error) {
	if !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid upload kind")
	}

	fileName := strings.TrimSpace(input.FileName)
	if fileName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file_name is required")
	}

	if input.SizeBytes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is empty")
	}
	if input.SizeBytes > s.maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("file exceeds the %d MB limit", s.maxBytes/(1024*1024)))
	}

	contentType := normalizeContentType(input.ContentType)
	if contentType == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content_type is required")
	}
	if !isAllowedMime(input.Kind, contentType) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("content_type %s is not allowed for %s uploads", contentType, input.Kind))
	}

	if input.Body == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file body is required")
	}

	object := buildObjectKey(input.Kind, uuid.New(), fileName)

	// LimitReader caps the stream in case the declared size lied.
	body := io.LimitReader(input.Body, s.maxBytes+1)
	url, err := s.store.UploadObject(ctx, s.store.DefaultBucket(), object, contentType, body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload object")
	}

	return &UploadOutput{
		URL:         url,
		Object:      object,
		ContentType: contentType,
		SizeBytes:   input.SizeBytes,
	}, nil
}

func normalizeContentType(value string) string {
	trimmed := strings.TrimSpace(value)
	if idx := strings.Index(trimmed, ";"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.ToLower(strings.TrimSpace(trimmed))
}

func isAllowedMime(kind Kind, contentType string) bool {
	for _, candidate := range mimeTypesByKind[kind] {
		if candidate == contentType {
			return true
		}
	}
	return false
}

func buildObjectKey(kind Kind, id uuid.UUID, fileName string) string {
	cleanName := sanitizeFileName(fileName)
	if cleanName == "" {
		cleanName = id.String()
	}
	return fmt.Sprintf("uploads/%s/%s/%s", kind, id.String(), cleanName)
}

func sanitizeFileName(name string) string {
	clean := path.Base(strings.TrimSpace(name))
	if clean == "." || clean == "/" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(clean))
	for _, r := range clean {
		switch {
		case r == '/' || r == '\\' || unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-_.")
}

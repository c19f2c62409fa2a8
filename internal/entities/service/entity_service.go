package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/apperrors"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/entities/domain"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/logging"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/storage/objects"
)

// MaxImageSize is the largest accepted image upload (5 MiB).
const MaxImageSize = 5 << 20

// Store is the persistence contract an entity service runs against.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Insert(ctx context.Context, f domain.Fields) (*T, error)
	Update(ctx context.Context, id int64, f domain.Fields) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// Service handles list/create/update/delete for one entity kind.
type Service[T any] struct {
	schema  domain.Schema[T]
	repo    Store[T]
	objects objects.Store
}

// New creates a service for schema backed by repo, uploading images to objs.
func New[T any](schema domain.Schema[T], repo Store[T], objs objects.Store) *Service[T] {
	return &Service[T]{
		schema:  schema,
		repo:    repo,
		objects: objs,
	}
}

// Schema returns the schema this service was built with.
func (s *Service[T]) Schema() domain.Schema[T] {
	return s.schema
}

// List returns all records, newest first.
func (s *Service[T]) List(ctx context.Context) ([]T, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Remote("list "+s.schema.Table, err)
	}
	return items, nil
}

// Create validates f and img locally, uploads img if present, then inserts
// the record. An uploaded image is not removed if the insert fails.
func (s *Service[T]) Create(ctx context.Context, f domain.Fields, img *domain.Upload) (*T, error) {
	if err := s.schema.ValidateCreate(f); err != nil {
		return nil, err
	}

	var contentType string
	if img != nil {
		ct, err := detectImage(img)
		if err != nil {
			return nil, err
		}
		contentType = ct
	}

	fields := s.schema.Normalize(f)

	var objectPath string
	if img != nil {
		objectPath = objects.NewObjectPath(s.schema.ImagePrefix, img.Filename)
		if err := s.objects.Upload(ctx, objectPath, contentType, bytes.NewReader(img.Data)); err != nil {
			return nil, apperrors.Remote(fmt.Sprintf("upload %s image", s.schema.Name), err)
		}
		fields[domain.ImageColumn] = s.objects.PublicURL(objectPath)
	}

	item, err := s.repo.Insert(ctx, fields)
	if err != nil {
		if objectPath != "" {
			logging.FromContext(ctx).Warn("image uploaded but record not saved",
				zap.String("entity", s.schema.Name),
				zap.String("object_path", objectPath),
				zap.Error(err),
			)
		}
		return nil, apperrors.Remote("insert "+s.schema.Name, err)
	}
	return item, nil
}

// Update writes only the fields present in f.
func (s *Service[T]) Update(ctx context.Context, id int64, f domain.Fields) (*T, error) {
	if err := s.schema.ValidateUpdate(f); err != nil {
		return nil, err
	}

	fields := make(domain.Fields, len(f))
	for k, v := range f {
		fields[k] = strings.TrimSpace(v)
	}

	item, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, apperrors.Remote("update "+s.schema.Name, err)
	}
	return item, nil
}

// Delete removes the record. Its stored image stays in the bucket.
func (s *Service[T]) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Remote("delete "+s.schema.Name, err)
	}
	return nil
}

func detectImage(img *domain.Upload) (string, error) {
	size := img.Size
	if size == 0 {
		size = int64(len(img.Data))
	}
	if size == 0 {
		return "", &apperrors.ValidationError{Field: domain.ImageColumn, Message: "is empty"}
	}
	if size > MaxImageSize {
		return "", &apperrors.ValidationError{Field: domain.ImageColumn, Message: "must be at most 5MB"}
	}

	mt := mimetype.Detect(img.Data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", &apperrors.ValidationError{Field: domain.ImageColumn, Message: "is not an image"}
	}
	return mt.String(), nil
}

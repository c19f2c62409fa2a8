package http

import (
	"context"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/entities/domain"
)

// Service is the entity service surface the handlers call.
type Service[T any] interface {
	Schema() domain.Schema[T]
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, f domain.Fields, img *domain.Upload) (*T, error)
	Update(ctx context.Context, id int64, f domain.Fields) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// Handler serves one entity kind as JSON.
type Handler[T any] struct {
	svc Service[T]
}

func New[T any](svc Service[T]) *Handler[T] {
	return &Handler[T]{svc: svc}
}

package repository

import (
	"context"
	"net/url"
)

// Repository puerto genérico sobre una colección del backend remoto. Las
// implementaciones devuelven entidades ya normalizadas y envuelven los fallos
// con los sentinels de domain.
type Repository[T any] interface {
	List(ctx context.Context, params url.Values) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, payload any) (*T, error)
	Update(ctx context.Context, id string, payload any) (*T, error)
	Delete(ctx context.Context, id string) error
}

package restapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/subastas-admin/internal/domain/entity"
	"github.com/jhoicas/subastas-admin/internal/domain/repository"
	"github.com/jhoicas/subastas-admin/internal/infrastructure/wire"
)

// Nombres de colección en el backend.
const (
	CollectionProducts   = "products"
	CollectionCategories = "categories"
	CollectionOrders     = "orders"
	CollectionUsers      = "users"
)

var (
	_ repository.ProductRepository  = (*collection[entity.Product])(nil)
	_ repository.CategoryRepository = (*collection[entity.Category])(nil)
	_ repository.OrderRepository    = (*collection[entity.Order])(nil)
	_ repository.UserRepository     = (*collection[entity.User])(nil)
	_ repository.ImageStore         = (*ImageStore)(nil)
)

// collection implementa repository.Repository[T] sobre una colección del backend.
type collection[T any] struct {
	client     *Client
	name       string
	decodeOne  func([]byte) T
	decodeMany func([]byte) []T
}

// NewProductRepository construye el repositorio de productos.
func NewProductRepository(c *Client) repository.ProductRepository {
	return &collection[entity.Product]{client: c, name: CollectionProducts, decodeOne: wire.DecodeProduct, decodeMany: wire.DecodeProducts}
}

// NewCategoryRepository construye el repositorio de categorías.
func NewCategoryRepository(c *Client) repository.CategoryRepository {
	return &collection[entity.Category]{client: c, name: CollectionCategories, decodeOne: wire.DecodeCategory, decodeMany: wire.DecodeCategories}
}

// NewOrderRepository construye el repositorio de pedidos.
func NewOrderRepository(c *Client) repository.OrderRepository {
	return &collection[entity.Order]{client: c, name: CollectionOrders, decodeOne: wire.DecodeOrder, decodeMany: wire.DecodeOrders}
}

// NewUserRepository construye el repositorio de usuarios.
func NewUserRepository(c *Client) repository.UserRepository {
	return &collection[entity.User]{client: c, name: CollectionUsers, decodeOne: wire.DecodeUser, decodeMany: wire.DecodeUsers}
}

func (r *collection[T]) List(ctx context.Context, params url.Values) ([]T, error) {
	body, err := r.client.Do(ctx, http.MethodGet, r.name, "", params, nil)
	if err != nil {
		return nil, fmt.Errorf("restapi: listar %s: %w", r.name, err)
	}
	return r.decodeMany(body), nil
}

func (r *collection[T]) GetByID(ctx context.Context, id string) (*T, error) {
	body, err := r.client.Do(ctx, http.MethodGet, r.name, id, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("restapi: obtener %s %s: %w", r.name, id, err)
	}
	v := r.decodeOne(body)
	return &v, nil
}

func (r *collection[T]) Create(ctx context.Context, payload any) (*T, error) {
	body, err := r.client.Do(ctx, http.MethodPost, r.name, "", nil, payload)
	if err != nil {
		return nil, fmt.Errorf("restapi: crear %s: %w", r.name, err)
	}
	v := r.decodeOne(body)
	return &v, nil
}

func (r *collection[T]) Update(ctx context.Context, id string, payload any) (*T, error) {
	body, err := r.client.Do(ctx, http.MethodPatch, r.name, id, nil, payload)
	if err != nil {
		return nil, fmt.Errorf("restapi: actualizar %s %s: %w", r.name, id, err)
	}
	v := r.decodeOne(body)
	return &v, nil
}

func (r *collection[T]) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Do(ctx, http.MethodDelete, r.name, id, nil, nil); err != nil {
		return fmt.Errorf("restapi: eliminar %s %s: %w", r.name, id, err)
	}
	return nil
}

var _ repository.ImageStore = (*ImageStore)(nil)

// ImageStore sube imágenes al endpoint de uploads del backend.
type ImageStore struct {
	client *Client
}

// NewImageStore construye el adaptador de subida.
func NewImageStore(c *Client) *ImageStore {
	return &ImageStore{client: c}
}

// Upload sube la imagen y devuelve la URL que el backend asignó.
func (s *ImageStore) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	body, err := s.client.Upload(ctx, filename, contentType, data)
	if err != nil {
		return "", fmt.Errorf("restapi: subir imagen: %w", err)
	}
	u := wire.DecodeUploadURL(body)
	if u == "" {
		return "", fmt.Errorf("restapi: subir imagen: respuesta sin url")
	}
	return u, nil
}

package dto

import (
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/subastas-admin/internal/application/validation"
	"github.com/jhoicas/subastas-admin/internal/domain/entity"
)

// ProductFilter filtros del listado de productos. También es la identidad de la
// consulta en caché: dos filtros distintos nunca comparten entrada.
type ProductFilter struct {
	Search   string           `json:"search,omitempty"`
	Category string           `json:"category,omitempty"`
	MinPrice *decimal.Decimal `json:"minPrice,omitempty"`
	MaxPrice *decimal.Decimal `json:"maxPrice,omitempty"`
	Activo   *bool            `json:"activo,omitempty"`
	Sort     string           `json:"sort,omitempty"`
	PageRequest
}

// Values parámetros de query para el backend; solo se envían los definidos.
func (f ProductFilter) Values() url.Values {
	v := url.Values{}
	setString(v, "search", strings.TrimSpace(f.Search))
	setString(v, "category", f.Category)
	if f.MinPrice != nil {
		v.Set("minPrice", f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		v.Set("maxPrice", f.MaxPrice.String())
	}
	setBool(v, "activo", f.Activo)
	setString(v, "sort", f.Sort)
	f.PageRequest.apply(v)
	return v
}

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Refid        string           `json:"refid,omitempty" validate:"omitempty,max=64,safetext"`
	Title        string           `json:"title" validate:"required,min=1,max=200,safetext"`
	Brand        string           `json:"brand,omitempty" validate:"omitempty,max=100,safetext"`
	Detail       string           `json:"detail,omitempty" validate:"omitempty,max=5000,safetext"`
	Price        decimal.Decimal  `json:"price"`
	PriceBase    *decimal.Decimal `json:"priceBase,omitempty"`
	MinIncrement *decimal.Decimal `json:"minIncrement,omitempty"`
	Stock        int              `json:"stock" validate:"gte=0"`
	Category     string           `json:"category" validate:"required"`
	Images       []string         `json:"images" validate:"max=20,dive,url"`
	Activo       bool             `json:"activo"`
	Destacado    bool             `json:"destacado"`
	StartDate    *time.Time       `json:"startDate,omitempty"`
	EndDate      *time.Time       `json:"endDate,omitempty"`
}

// Validate valida tags y reglas de dinero y fechas.
func (r *CreateProductRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.Images == nil {
		r.Images = []string{}
	}
	return checkMoney(r.Price, r.PriceBase, r.MinIncrement, r.StartDate, r.EndDate)
}

// UpdateProductRequest actualización parcial; los campos nil no se envían.
type UpdateProductRequest struct {
	Refid        *string          `json:"refid,omitempty" validate:"omitempty,max=64,safetext"`
	Title        *string          `json:"title,omitempty" validate:"omitempty,min=1,max=200,safetext"`
	Brand        *string          `json:"brand,omitempty" validate:"omitempty,max=100,safetext"`
	Detail       *string          `json:"detail,omitempty" validate:"omitempty,max=5000,safetext"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	PriceBase    *decimal.Decimal `json:"priceBase,omitempty"`
	MinIncrement *decimal.Decimal `json:"minIncrement,omitempty"`
	Stock        *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Category     *string          `json:"category,omitempty" validate:"omitempty,min=1"`
	Images       []string         `json:"images,omitempty" validate:"omitempty,max=20,dive,url"`
	Activo       *bool            `json:"activo,omitempty"`
	Destacado    *bool            `json:"destacado,omitempty"`
	StartDate    *time.Time       `json:"startDate,omitempty"`
	EndDate      *time.Time       `json:"endDate,omitempty"`
}

// Validate valida tags y reglas de dinero y fechas presentes.
func (r *UpdateProductRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	price := decimal.Zero
	if r.Price != nil {
		price = *r.Price
	}
	return checkMoney(price, r.PriceBase, r.MinIncrement, r.StartDate, r.EndDate)
}

func checkMoney(price decimal.Decimal, base, inc *decimal.Decimal, start, end *time.Time) error {
	switch {
	case price.IsNegative():
		return validation.Field("price", "gte", "debe ser mayor o igual a 0")
	case base != nil && base.IsNegative():
		return validation.Field("priceBase", "gte", "debe ser mayor o igual a 0")
	case inc != nil && inc.IsNegative():
		return validation.Field("minIncrement", "gte", "debe ser mayor o igual a 0")
	case start != nil && end != nil && !end.After(*start):
		return validation.Field("endDate", "gtfield", "debe ser posterior a startDate")
	}
	return nil
}

// DescriptionRequest entrada para generar la descripción de un producto con IA.
type DescriptionRequest struct {
	Title    string `json:"title" validate:"required,max=200,safetext"`
	Brand    string `json:"brand,omitempty" validate:"omitempty,max=100,safetext"`
	Category string `json:"category,omitempty" validate:"omitempty,max=100,safetext"`
	Notes    string `json:"notes,omitempty" validate:"omitempty,max=1000,safetext"`
}

// DescriptionResponse texto generado.
type DescriptionResponse struct {
	Detail string `json:"detail"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Refid        string          `json:"refid"`
	Title        string          `json:"title"`
	Brand        string          `json:"brand"`
	Detail       string          `json:"detail"`
	Price        decimal.Decimal `json:"price"`
	PriceBase    decimal.Decimal `json:"priceBase"`
	PriceCurrent decimal.Decimal `json:"priceCurrent"`
	MinIncrement decimal.Decimal `json:"minIncrement"`
	Stock        int             `json:"stock"`
	Category     string          `json:"category"`
	CategoryID   string          `json:"categoryId"`
	Images       []string        `json:"images"`
	Activo       bool            `json:"activo"`
	Destacado    bool            `json:"destacado"`
	BidCount     int             `json:"bidCount"`
	StartDate    *time.Time      `json:"startDate,omitempty"`
	EndDate      *time.Time      `json:"endDate,omitempty"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ToProductResponse mapea la entidad a la salida HTTP.
func ToProductResponse(p entity.Product) ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return ProductResponse{
		ID:           p.ID,
		Refid:        p.Refid,
		Title:        p.Title,
		Brand:        p.Brand,
		Detail:       p.Detail,
		Price:        p.Price,
		PriceBase:    p.PriceBase,
		PriceCurrent: p.PriceCurrent,
		MinIncrement: p.MinIncrement,
		Stock:        p.Stock,
		Category:     p.Category,
		CategoryID:   p.CategoryID,
		Images:       images,
		Activo:       p.Activo,
		Destacado:    p.Destacado,
		BidCount:     p.BidCount,
		StartDate:    optTime(p.StartDate),
		EndDate:      optTime(p.EndDate),
	}
}

func optTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

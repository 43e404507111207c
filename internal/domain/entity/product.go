package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un lote de subasta o producto del catálogo ya normalizado.
// Invariante: PriceCurrent >= PriceBase cuando ambos están presentes.
type Product struct {
	ID           string
	Refid        string // SKU externo estable
	Title        string
	Brand        string
	Detail       string
	Price        decimal.Decimal
	PriceBase    decimal.Decimal
	PriceCurrent decimal.Decimal
	MinIncrement decimal.Decimal
	Stock        int
	Category     string
	CategoryID   string
	Images       []string
	Activo       bool
	Destacado    bool
	BidCount     int
	StartDate    time.Time
	EndDate      time.Time
}

// Key identidad usada por el estado local.
func (p Product) Key() string { return p.ID }

// Clone devuelve una copia independiente (el slice de imágenes no se comparte).
func (p Product) Clone() Product {
	if p.Images != nil {
		p.Images = append([]string(nil), p.Images...)
	}
	return p
}

// IsAuction indica si el producto tiene semántica de subasta (precio base o fechas).
func (p Product) IsAuction() bool {
	return !p.PriceBase.IsZero() || !p.EndDate.IsZero()
}

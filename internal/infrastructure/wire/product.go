package wire

import (
	"bytes"

	"github.com/goccy/go-json"

	"github.com/jhoicas/subastas-admin/internal/domain/entity"
)

// CategoryRef categoría embebida en un producto: texto plano u objeto {_id, nombre}.
type CategoryRef struct {
	ID   ID
	Name Text
}

// UnmarshalJSON implementa json.Unmarshaler.
func (c *CategoryRef) UnmarshalJSON(b []byte) error {
	*c = CategoryRef{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	if b[0] != '{' {
		return c.Name.UnmarshalJSON(b)
	}
	var obj struct {
		ID      ID   `json:"id"`
		MongoID ID   `json:"_id"`
		Nombre  Text `json:"nombre"`
		Name    Text `json:"name"`
		Slug    Text `json:"slug"`
	}
	if json.Unmarshal(b, &obj) != nil {
		return nil
	}
	c.ID = first(obj.ID, obj.MongoID)
	c.Name = first(obj.Nombre, obj.Name, obj.Slug)
	return nil
}

// RawProduct variante de cable de un producto con todos los alias conocidos.
type RawProduct struct {
	ID      ID `json:"id"`
	MongoID ID `json:"_id"`

	Refid Text `json:"refid"`
	SKU   Text `json:"sku"`

	Title  Text `json:"title"`
	Titulo Text `json:"titulo"`
	Nombre Text `json:"nombre"`
	Name   Text `json:"name"`

	Brand Text `json:"brand"`
	Marca Text `json:"marca"`

	Detail      Text `json:"detail"`
	Detalle     Text `json:"detalle"`
	Description Text `json:"description"`

	Price            Number `json:"price"`
	Precio           Number `json:"precio"`
	PriceBase        Number `json:"priceBase"`
	PrecioBase       Number `json:"precioBase"`
	BasePrice        Number `json:"basePrice"`
	PriceCurrent     Number `json:"priceCurrent"`
	PrecioActual     Number `json:"precioActual"`
	CurrentBid       Number `json:"currentBid"`
	MinIncrement     Number `json:"minIncrement"`
	IncrementoMinimo Number `json:"incrementoMinimo"`

	Stock Number `json:"stock"`

	Category    CategoryRef `json:"category"`
	Categoria   CategoryRef `json:"categoria"`
	CategoryID  ID          `json:"categoryId"`
	CategoriaID ID          `json:"categoriaId"`

	Images   StringList `json:"images"`
	Imagenes StringList `json:"imagenes"`
	Image    Text       `json:"image"`
	Imagen   Text       `json:"imagen"`

	Activo    Flag `json:"activo"`
	Active    Flag `json:"active"`
	Destacado Flag `json:"destacado"`
	Featured  Flag `json:"featured"`

	BidCount Number `json:"bidCount"`
	Pujas    Number `json:"pujas"`

	StartDate   Time `json:"startDate"`
	FechaInicio Time `json:"fechaInicio"`
	EndDate     Time `json:"endDate"`
	FechaFin    Time `json:"fechaFin"`
}

// NormalizeProduct convierte la variante de cable en la entidad canónica.
// El id cae a refid (clave natural) cuando falta.
func NormalizeProduct(raw RawProduct) entity.Product {
	refid := string(first(raw.Refid, raw.SKU))
	id := string(first(raw.ID, raw.MongoID))
	if id == "" {
		id = refid
	}

	catRef := raw.Category
	if catRef.Name == "" && catRef.ID == "" {
		catRef = raw.Categoria
	}

	images := make([]string, 0, len(raw.Images)+1)
	images = append(images, raw.Images...)
	if len(images) == 0 {
		images = append(images, raw.Imagenes...)
	}
	if len(images) == 0 {
		if single := string(first(raw.Image, raw.Imagen)); single != "" {
			images = append(images, single)
		}
	}

	base := firstNumber(raw.PriceBase, raw.PrecioBase, raw.BasePrice)
	current := firstNumber(raw.PriceCurrent, raw.PrecioActual, raw.CurrentBid)
	if base.Set && current.Set && current.Value.LessThan(base.Value) {
		current.Value = base.Value
	}

	return entity.Product{
		ID:           id,
		Refid:        refid,
		Title:        string(first(raw.Title, raw.Titulo, raw.Nombre, raw.Name)),
		Brand:        string(first(raw.Brand, raw.Marca)),
		Detail:       string(first(raw.Detail, raw.Detalle, raw.Description)),
		Price:        firstNumber(raw.Price, raw.Precio).Value,
		PriceBase:    base.Value,
		PriceCurrent: current.Value,
		MinIncrement: firstNumber(raw.MinIncrement, raw.IncrementoMinimo).Value,
		Stock:        firstNumber(raw.Stock).Int(),
		Category:     string(catRef.Name),
		CategoryID:   string(first(raw.CategoryID, raw.CategoriaID, catRef.ID)),
		Images:       images,
		Activo:       activeFlag(raw.Activo, raw.Active),
		Destacado:    firstFlag(raw.Destacado, raw.Featured).Value,
		BidCount:     firstNumber(raw.BidCount, raw.Pujas).Int(),
		StartDate:    firstTime(raw.StartDate, raw.FechaInicio),
		EndDate:      firstTime(raw.EndDate, raw.FechaFin),
	}
}

// DecodeProduct decodifica un producto (con o sin sobre). Nunca falla.
func DecodeProduct(body []byte) entity.Product {
	return NormalizeProduct(decodeObject[RawProduct](body))
}

// DecodeProducts decodifica un listado de productos. Nunca falla.
func DecodeProducts(body []byte) []entity.Product {
	return decodeList(body, DecodeProduct)
}

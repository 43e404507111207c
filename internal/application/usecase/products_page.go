package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/subastas-admin/internal/application/cache"
	"github.com/jhoicas/subastas-admin/internal/application/dto"
	"github.com/jhoicas/subastas-admin/internal/application/query"
	"github.com/jhoicas/subastas-admin/internal/domain/entity"
	"github.com/jhoicas/subastas-admin/internal/domain/repository"
	"github.com/jhoicas/subastas-admin/pkg/debounce"
)

// ProductsPage página de productos/lotes: listado con filtros, búsqueda con
// debounce, altas, ediciones, bajas y banderas activo/destacado optimistas.
type ProductsPage struct {
	*page[entity.Product]
	search *debounce.Debouncer[string]

	filterMu sync.Mutex
	filter   dto.ProductFilter
	onSearch func(query.State[entity.Product])
}

// NewProductsPage construye la página. quiet es el periodo de silencio del buscador.
func NewProductsPage(repo repository.ProductRepository, ttl, quiet time.Duration, d Deps) *ProductsPage {
	p := &ProductsPage{page: newPage[entity.Product](cache.Products, ttl, repo, dto.ProductFilter{}, d)}
	p.search = debounce.New(quiet, p.runSearch)
	return p
}

// List devuelve los productos para el filtro; force ignora la caché.
func (p *ProductsPage) List(ctx context.Context, f dto.ProductFilter, force bool) query.State[entity.Product] {
	f.PageRequest.Normalize()
	p.filterMu.Lock()
	p.filter = f
	p.filterMu.Unlock()
	return p.load(ctx, f, force)
}

// Search cambia el texto buscado. Solo el último texto tras el periodo de
// silencio dispara la carga; onDone (opcional) recibe el estado resultante.
func (p *ProductsPage) Search(term string, onDone func(query.State[entity.Product])) {
	p.filterMu.Lock()
	p.onSearch = onDone
	p.filterMu.Unlock()
	p.search.Trigger(term)
}

func (p *ProductsPage) runSearch(term string) {
	p.filterMu.Lock()
	f := p.filter
	f.Search = term
	f.Page = 0
	p.filter = f
	done := p.onSearch
	p.filterMu.Unlock()

	st := p.load(context.Background(), f, false)
	if done != nil {
		done(st)
	}
}

// Get devuelve el producto de la lista local.
func (p *ProductsPage) Get(id string) (entity.Product, error) { return p.find(id) }

// Create valida y crea un producto. Tras el alta la caché de productos queda invalidada.
func (p *ProductsPage) Create(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return p.create(ctx, in)
}

// Update valida y actualiza un producto.
func (p *ProductsPage) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return p.update(ctx, id, in)
}

// Delete elimina un producto.
func (p *ProductsPage) Delete(ctx context.Context, id string) error { return p.remove(ctx, id) }

var (
	productActivo = field[entity.Product, bool]{
		name: "activo",
		get:  func(p entity.Product) bool { return p.Activo },
		set:  func(p *entity.Product, v bool) { p.Activo = v },
	}
	productDestacado = field[entity.Product, bool]{
		name: "destacado",
		get:  func(p entity.Product) bool { return p.Destacado },
		set:  func(p *entity.Product, v bool) { p.Destacado = v },
	}
)

// ToggleActivo cambia activo de forma optimista. value nil invierte el valor actual.
func (p *ProductsPage) ToggleActivo(ctx context.Context, id string, value *bool) (entity.Product, error) {
	return p.toggle(ctx, id, productActivo, value)
}

// ToggleDestacado cambia destacado de forma optimista. value nil invierte el valor actual.
func (p *ProductsPage) ToggleDestacado(ctx context.Context, id string, value *bool) (entity.Product, error) {
	return p.toggle(ctx, id, productDestacado, value)
}

func (p *ProductsPage) toggle(ctx context.Context, id string, f field[entity.Product, bool], value *bool) (entity.Product, error) {
	cur, err := p.lookup(ctx, id)
	if err != nil {
		return cur, err
	}
	next := !f.get(cur)
	if value != nil {
		next = *value
	}
	return change(ctx, p.page, id, f, next, map[string]bool{f.name: next})
}

// Close detiene el buscador y desmonta la página.
func (p *ProductsPage) Close() {
	p.search.Stop()
	p.close()
}

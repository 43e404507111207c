package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/subastas-admin/internal/application/cache"
	"github.com/jhoicas/subastas-admin/internal/application/dto"
	"github.com/jhoicas/subastas-admin/internal/application/query"
	"github.com/jhoicas/subastas-admin/internal/application/validation"
	"github.com/jhoicas/subastas-admin/internal/domain/entity"
	"github.com/jhoicas/subastas-admin/internal/domain/repository"
)

// UsersPage administración de usuarios: rol y activación son los únicos campos
// de clasificación que se cambian desde aquí.
type UsersPage struct {
	*page[entity.User]
}

// NewUsersPage construye la página de usuarios.
func NewUsersPage(repo repository.UserRepository, ttl time.Duration, d Deps) *UsersPage {
	return &UsersPage{page: newPage[entity.User](cache.Users, ttl, repo, dto.UserFilter{}, d)}
}

// List devuelve los usuarios; force ignora la caché.
func (p *UsersPage) List(ctx context.Context, f dto.UserFilter, force bool) query.State[entity.User] {
	f.PageRequest.Normalize()
	return p.load(ctx, f, force)
}

// Get devuelve el usuario de la lista local.
func (p *UsersPage) Get(id string) (entity.User, error) { return p.find(id) }

// Create valida y crea un usuario.
func (p *UsersPage) Create(ctx context.Context, in dto.CreateUserRequest) (*entity.User, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return p.create(ctx, in)
}

// Update valida y actualiza un usuario.
func (p *UsersPage) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*entity.User, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return p.update(ctx, id, in)
}

var (
	userActivo = field[entity.User, bool]{
		name: "activo",
		get:  func(u entity.User) bool { return u.Activo },
		set:  func(u *entity.User, v bool) { u.Activo = v },
	}
	userRole = field[entity.User, entity.Role]{
		name: "role",
		get:  func(u entity.User) entity.Role { return u.Role },
		set:  func(u *entity.User, r entity.Role) { u.Role = r },
	}
)

// ToggleActivo cambia activo de forma optimista. value nil invierte el valor actual.
func (p *UsersPage) ToggleActivo(ctx context.Context, id string, value *bool) (entity.User, error) {
	cur, err := p.lookup(ctx, id)
	if err != nil {
		return cur, err
	}
	next := !cur.Activo
	if value != nil {
		next = *value
	}
	return change(ctx, p.page, id, userActivo, next, map[string]bool{"activo": next})
}

// ChangeRole cambia el rol de forma optimista.
func (p *UsersPage) ChangeRole(ctx context.Context, id string, in dto.ChangeRoleRequest) (entity.User, error) {
	if err := validation.Struct(in); err != nil {
		return entity.User{}, err
	}
	role := entity.Role(in.Role)
	return change(ctx, p.page, id, userRole, role, map[string]string{"role": in.Role})
}

// Close desmonta la página.
func (p *UsersPage) Close() { p.close() }

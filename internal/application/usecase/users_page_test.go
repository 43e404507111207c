package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/subastas-admin/internal/application/dto"
	"github.com/jhoicas/subastas-admin/internal/application/usecase"
	"github.com/jhoicas/subastas-admin/internal/domain"
	"github.com/jhoicas/subastas-admin/internal/domain/entity"
)

func usersPage(t *testing.T) (*usecase.UsersPage, *fakeRepo[entity.User], usecase.Deps) {
	t.Helper()
	repo := &fakeRepo[entity.User]{items: []entity.User{
		{ID: "u1", Name: "Ana", Role: entity.RoleUser, Activo: true},
	}}
	deps, _ := newDeps()
	p := usecase.NewUsersPage(repo, 5*time.Minute, deps)
	t.Cleanup(p.Close)
	p.List(context.Background(), dto.UserFilter{}, false)
	return p, repo, deps
}

func TestUsersPage_ChangeRole(t *testing.T) {
	p, repo, _ := usersPage(t)

	got, err := p.ChangeRole(context.Background(), "u1", dto.ChangeRoleRequest{Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, got.Role)
	assert.Equal(t, map[string]string{"role": "admin"}, repo.lastPayload())
}

func TestUsersPage_ChangeRoleInvalido(t *testing.T) {
	p, repo, _ := usersPage(t)

	_, err := p.ChangeRole(context.Background(), "u1", dto.ChangeRoleRequest{Role: "root"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Zero(t, repo.updates)
}

func TestUsersPage_ToggleActivoRevierte(t *testing.T) {
	p, repo, deps := usersPage(t)
	repo.failNext = errors.New("Error 500: Internal Server Error")

	got, err := p.ToggleActivo(context.Background(), "u1", nil)
	require.Error(t, err)
	assert.True(t, got.Activo)
	assert.Len(t, deps.Notices.List(), 1)
}

func TestUsersPage_CreateValida(t *testing.T) {
	p, repo, _ := usersPage(t)

	_, err := p.Create(context.Background(), dto.CreateUserRequest{Name: "Luis", Email: "no-es-email", Role: "user"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Nil(t, repo.lastPayload())
}

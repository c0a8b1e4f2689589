package usecase_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/usecase"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

type memUsers struct {
	byID    map[string]*entity.User
	reads   int
	deleted []string
}

func newMemUsers(users ...*entity.User) *memUsers {
	m := &memUsers{byID: map[string]*entity.User{}}
	for _, u := range users {
		m.byID[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.reads++
	u, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }

func (m *memUsers) List(context.Context) ([]*entity.User, error) {
	m.reads++
	out := make([]*entity.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

func (m *memUsers) UpdateRole(_ context.Context, id string, role entity.Role, at time.Time) error {
	m.byID[id].Role = role
	m.byID[id].UpdatedAt = at
	return nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	m.deleted = append(m.deleted, id)
	return nil
}

var (
	adminP  = &entity.Principal{ID: "admin-1", Role: entity.RoleAdmin}
	clientP = &entity.Principal{ID: "cliente-1", Role: entity.RoleClient}
)

func sampleUsers() *memUsers {
	return newMemUsers(
		&entity.User{ID: "u1", Name: "Ana", Email: "ana@example.com", Role: entity.RoleClient},
		&entity.User{ID: "u2", Name: "Beto", Email: "beto@example.com", Role: entity.RoleEmployee},
	)
}

func TestUserUseCase_ListOrdenNombreDesc(t *testing.T) {
	uc := usecase.NewUserUseCase(sampleUsers(), nil)

	out, err := uc.List(context.Background(), adminP)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Beto", out[0].Name)
	assert.Equal(t, "Ana", out[1].Name)
}

func TestUserUseCase_ChangeRole(t *testing.T) {
	repo := sampleUsers()
	uc := usecase.NewUserUseCase(repo, nil)

	out, err := uc.ChangeRole(context.Background(), adminP, "u1", dto.ChangeRoleRequest{Role: "EMPLOYEE"})
	require.NoError(t, err)
	assert.Equal(t, "EMPLOYEE", out.Role)
	assert.Equal(t, entity.RoleEmployee, repo.byID["u1"].Role)

	_, err = uc.ChangeRole(context.Background(), adminP, "u1", dto.ChangeRoleRequest{Role: "ROOT"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.ChangeRole(context.Background(), adminP, "nope", dto.ChangeRoleRequest{Role: "ADMIN"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserUseCase_Delete(t *testing.T) {
	repo := sampleUsers()
	uc := usecase.NewUserUseCase(repo, nil)

	out, err := uc.Delete(context.Background(), adminP, "u2")
	require.NoError(t, err)
	assert.Equal(t, "beto@example.com", out.Email)
	assert.Equal(t, []string{"u2"}, repo.deleted)

	_, err = uc.Delete(context.Background(), adminP, "u2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserUseCase_SoloAdminSinTocarRepositorio(t *testing.T) {
	repo := sampleUsers()
	uc := usecase.NewUserUseCase(repo, nil)

	_, err := uc.List(context.Background(), clientP)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.ChangeRole(context.Background(), clientP, "u1", dto.ChangeRoleRequest{Role: "ADMIN"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Delete(context.Background(), clientP, "u1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Delete(context.Background(), nil, "u1")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	assert.Zero(t, repo.reads)
	assert.Len(t, repo.byID, 2)
	assert.Equal(t, entity.RoleClient, repo.byID["u1"].Role)
}

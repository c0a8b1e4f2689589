package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

func principal(role entity.Role) *entity.Principal {
	return &entity.Principal{ID: "u-1", Role: role}
}

func TestAuthorize_Public(t *testing.T) {
	assert.NoError(t, auth.Authorize(nil, auth.TierPublic))
	assert.NoError(t, auth.Authorize(principal(entity.RoleClient), auth.TierPublic))
}

func TestAuthorize_Authenticated(t *testing.T) {
	err := auth.Authorize(nil, auth.TierAuthenticated)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	for _, r := range []entity.Role{entity.RoleClient, entity.RoleEmployee, entity.RoleAdmin} {
		assert.NoError(t, auth.Authorize(principal(r), auth.TierAuthenticated), string(r))
	}
}

func TestAuthorize_Admin(t *testing.T) {
	assert.ErrorIs(t, auth.Authorize(nil, auth.TierAdmin), domain.ErrUnauthenticated)
	assert.ErrorIs(t, auth.Authorize(principal(entity.RoleClient), auth.TierAdmin), domain.ErrForbidden)
	// EMPLOYEE no hereda permisos de administración.
	assert.ErrorIs(t, auth.Authorize(principal(entity.RoleEmployee), auth.TierAdmin), domain.ErrForbidden)
	assert.NoError(t, auth.Authorize(principal(entity.RoleAdmin), auth.TierAdmin))
}

func TestAuthorize_PrincipalSinID(t *testing.T) {
	err := auth.Authorize(&entity.Principal{Role: entity.RoleAdmin}, auth.TierAdmin)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthorize_TierDesconocido(t *testing.T) {
	err := auth.Authorize(principal(entity.RoleAdmin), auth.Tier(99))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/validation"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// UserUseCase administración de usuarios (solo ADMIN).
type UserUseCase struct {
	repo repository.UserRepository
	log  *logger.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, log *logger.Logger) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{repo: repo, log: log.Component("users")}
}

// List lista los usuarios ordenados por nombre descendente.
func (uc *UserUseCase) List(ctx context.Context, principal *entity.Principal) ([]dto.UserResponse, error) {
	if err := auth.Authorize(principal, auth.TierAdmin); err != nil {
		return nil, err
	}
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, domain.Internal("listar usuarios", err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *entityToUserResponse(u))
	}
	return out, nil
}

// ChangeRole asigna un nuevo rol al usuario. Usuario inexistente → ErrNotFound.
func (uc *UserUseCase) ChangeRole(ctx context.Context, principal *entity.Principal, userID string, in dto.ChangeRoleRequest) (*dto.UserResponse, error) {
	if err := auth.Authorize(principal, auth.TierAdmin); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, fmt.Errorf("%w: rol %q desconocido", domain.ErrValidation, in.Role)
	}

	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.Internal("obtener usuario", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, userID)
	}

	now := time.Now().UTC()
	if err := uc.repo.UpdateRole(ctx, user.ID, role, now); err != nil {
		return nil, domain.Internal("actualizar rol", err)
	}
	uc.log.Info().
		Str("user_id", user.ID).
		Str("from", string(user.Role)).
		Str("to", string(role)).
		Str("by", principal.ID).
		Msg("rol de usuario actualizado")

	user.Role = role
	user.UpdatedAt = now
	return entityToUserResponse(user), nil
}

// Delete elimina el usuario y devuelve sus datos. Usuario inexistente → ErrNotFound.
func (uc *UserUseCase) Delete(ctx context.Context, principal *entity.Principal, userID string) (*dto.UserResponse, error) {
	if err := auth.Authorize(principal, auth.TierAdmin); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.Internal("obtener usuario", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, userID)
	}
	if err := uc.repo.Delete(ctx, user.ID); err != nil {
		return nil, domain.Internal("eliminar usuario", err)
	}
	uc.log.Info().Str("user_id", user.ID).Str("by", principal.ID).Msg("usuario eliminado")
	return entityToUserResponse(user), nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

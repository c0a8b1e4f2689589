package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/validation"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/jhoicas/restaurante-api/pkg/jwt"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, verificación de credenciales y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log.Component("auth")}
}

// RegisterUser crea un cliente: valida la contraseña, la hashea con bcrypt y persiste.
// Devuelve ErrConflict si el email ya está registrado. La respuesta nunca incluye el hash.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, principal *entity.Principal, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := Authorize(principal, TierPublic); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, domain.Internal("buscar usuario", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el email ya está registrado", domain.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, fmt.Errorf("%w: la contraseña no puede superar %d bytes", domain.ErrValidation, validation.MaxPasswordBytes)
	}
	if err != nil {
		return nil, domain.Internal("hashear contraseña", err)
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleClient,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// La restricción única de la tabla cubre la carrera entre GetByEmail y Create.
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, domain.Internal("crear usuario", err)
	}
	uc.log.Info().Str("user_id", user.ID).Msg("usuario registrado")
	return toUserResponse(user), nil
}

// Authenticate verifica email y contraseña. Email desconocido → ErrNotFound; contraseña
// incorrecta → (nil, nil); credenciales válidas → el usuario sin datos sensibles.
func (uc *AuthUseCase) Authenticate(ctx context.Context, principal *entity.Principal, email, password string) (*dto.AuthenticatedUser, error) {
	if err := Authorize(principal, TierPublic); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, domain.Internal("buscar usuario", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario no encontrado", domain.ErrNotFound)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil
	}
	return &dto.AuthenticatedUser{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  string(user.Role),
	}, nil
}

// Login autentica y emite un JWT firmado. No distingue entre email desconocido y
// contraseña incorrecta: ambos responden ErrUnauthenticated.
func (uc *AuthUseCase) Login(ctx context.Context, principal *entity.Principal, in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.Authenticate(ctx, principal, in.Email, in.Password)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && user == nil) {
		uc.log.Debug().Str("email", in.Email).Msg("login rechazado")
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthenticated)
	}
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, domain.Internal("generar token", err)
	}
	return &dto.LoginResponse{Token: token, User: *user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
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

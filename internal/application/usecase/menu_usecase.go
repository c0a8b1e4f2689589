package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/application/validation"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

var (
	minPrice = decimal.RequireFromString("0.01")
	maxPrice = decimal.RequireFromString("9999999999.99")
)

// MenuUseCase casos de uso de la carta: lectura pública (con caché) y CRUD de administración.
type MenuUseCase struct {
	repo   repository.MenuItemRepository
	images ports.ImageStore
	cache  ports.MenuCache
	log    *logger.Logger
}

// NewMenuUseCase construye el caso de uso. cache puede ser nil.
func NewMenuUseCase(repo repository.MenuItemRepository, images ports.ImageStore, cache ports.MenuCache, log *logger.Logger) *MenuUseCase {
	if cache == nil {
		cache = ports.NopMenuCache{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &MenuUseCase{repo: repo, images: images, cache: cache, log: log.Component("menu")}
}

// ListPublic lista la carta: disponibles primero y luego por nombre.
func (uc *MenuUseCase) ListPublic(ctx context.Context, principal *entity.Principal) ([]dto.MenuItemResponse, error) {
	if err := auth.Authorize(principal, auth.TierPublic); err != nil {
		return nil, err
	}
	cached, version, ok, cacheErr := uc.cache.GetPublicMenu(ctx)
	if cacheErr != nil {
		uc.log.Warn().Err(cacheErr).Msg("leer carta desde caché")
	}
	if ok {
		return cached, nil
	}

	items, err := uc.repo.ListPublic(ctx)
	if err != nil {
		return nil, domain.Internal("listar carta", err)
	}
	out := toMenuItemResponses(items)
	// Sin versión conocida no se guarda: podría pisar una invalidación.
	if cacheErr == nil {
		if err := uc.cache.SetPublicMenu(ctx, version, out); err != nil {
			uc.log.Warn().Err(err).Msg("guardar carta en caché")
		}
	}
	return out, nil
}

// GetDetails obtiene un plato por ID. Devuelve (nil, nil) si no existe.
func (uc *MenuUseCase) GetDetails(ctx context.Context, principal *entity.Principal, id string) (*dto.MenuItemResponse, error) {
	if err := auth.Authorize(principal, auth.TierPublic); err != nil {
		return nil, err
	}
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("obtener plato", err)
	}
	if item == nil {
		return nil, nil
	}
	return toMenuItemResponse(item), nil
}

// ListAll lista todos los platos para administración, más recientes primero.
func (uc *MenuUseCase) ListAll(ctx context.Context, principal *entity.Principal) ([]dto.MenuItemResponse, error) {
	if err := auth.Authorize(principal, auth.TierAdmin); err != nil {
		return nil, err
	}
	items, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, domain.Internal("listar platos", err)
	}
	return toMenuItemResponses(items), nil
}

// Register crea un plato disponible. La imagen llega como data URI y se sube al ImageStore
// antes de persistir; si la inserción falla se intenta borrar la imagen subida.
func (uc *MenuUseCase) Register(ctx context.Context, principal *entity.Principal, in dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error) {
	if err := auth.Authorize(principal, auth.TierAdmin); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	cur, err := parseCurrency(in.Currency)
	if err != nil {
		return nil, err
	}
	if err := checkPrice(in.Price); err != nil {
		return nil, err
	}
	data, contentType, err := decodeImageDataURI(in.Image)
	if err != nil {
		return nil, err
	}

	url, err := uc.images.Upload(ctx, data, contentType)
	if err != nil {
		return nil, domain.Internal("subir imagen", err)
	}
	now := time.Now().UTC()
	item := &entity.MenuItem{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Currency:    cur,
		Price:       in.Price,
		Available:   true,
		Image:       url,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		uc.removeImage(ctx, url)
		return nil, domain.Internal("crear plato", err)
	}
	uc.invalidate(ctx)
	uc.log.Info().Str("menu_item_id", item.ID).Str("name", item.Name).Msg("plato registrado")
	return toMenuItemResponse(item), nil
}

// Update modifica nombre, descripción, moneda, precio y opcionalmente la imagen.
// Si la imagen se reemplaza, la anterior se borra sin afectar el resultado.
func (uc *MenuUseCase) Update(ctx context.Context, principal *entity.Principal, id string, in dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error) {
	if err := auth.Authorize(principal, auth.TierAdmin); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	cur, err := parseCurrency(in.Currency)
	if err != nil {
		return nil, err
	}
	if err := checkPrice(in.Price); err != nil {
		return nil, err
	}
	var (
		data        []byte
		contentType string
	)
	if strings.TrimSpace(in.Image) != "" {
		if data, contentType, err = decodeImageDataURI(in.Image); err != nil {
			return nil, err
		}
	}

	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("obtener plato", err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: plato %s", domain.ErrNotFound, id)
	}

	oldImage := item.Image
	if data != nil {
		url, err := uc.images.Upload(ctx, data, contentType)
		if err != nil {
			return nil, domain.Internal("subir imagen", err)
		}
		item.Image = url
	}
	item.Name = in.Name
	item.Description = in.Description
	item.Currency = cur
	item.Price = in.Price
	item.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, item); err != nil {
		if item.Image != oldImage {
			uc.removeImage(ctx, item.Image)
		}
		return nil, domain.Internal("actualizar plato", err)
	}
	if item.Image != oldImage && oldImage != "" {
		uc.removeImage(ctx, oldImage)
	}
	uc.invalidate(ctx)
	return toMenuItemResponse(item), nil
}

// ToggleAvailability marca el plato como disponible o agotado.
func (uc *MenuUseCase) ToggleAvailability(ctx context.Context, principal *entity.Principal, id string, in dto.ToggleAvailabilityRequest) (*dto.MenuItemResponse, error) {
	if err := auth.Authorize(principal, auth.TierAdmin); err != nil {
		return nil, err
	}
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("obtener plato", err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: plato %s", domain.ErrNotFound, id)
	}
	item.Available = in.Available
	item.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, domain.Internal("actualizar disponibilidad", err)
	}
	uc.invalidate(ctx)
	uc.log.Info().Str("menu_item_id", item.ID).Bool("available", item.Available).Msg("disponibilidad actualizada")
	return toMenuItemResponse(item), nil
}

// Delete elimina el plato y devuelve sus datos. El borrado de la imagen es best effort.
// Un plato referenciado por pedidos no se puede borrar (ErrConflict).
func (uc *MenuUseCase) Delete(ctx context.Context, principal *entity.Principal, id string) (*dto.MenuItemResponse, error) {
	if err := auth.Authorize(principal, auth.TierAdmin); err != nil {
		return nil, err
	}
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("obtener plato", err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: plato %s", domain.ErrNotFound, id)
	}
	if err := uc.repo.Delete(ctx, item.ID); err != nil {
		return nil, domain.Internal("eliminar plato", err)
	}
	if item.Image != "" {
		uc.removeImage(ctx, item.Image)
	}
	uc.invalidate(ctx)
	uc.log.Info().Str("menu_item_id", item.ID).Msg("plato eliminado")
	return toMenuItemResponse(item), nil
}

func (uc *MenuUseCase) removeImage(ctx context.Context, url string) {
	if err := uc.images.Delete(ctx, url); err != nil {
		uc.log.Warn().Err(err).Str("url", url).Msg("eliminar imagen")
	}
}

func (uc *MenuUseCase) invalidate(ctx context.Context) {
	if err := uc.cache.InvalidatePublicMenu(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("invalidar caché de carta")
	}
}

// parseCurrency valida un código ISO 4217 y lo devuelve en mayúsculas.
func parseCurrency(code string) (string, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return "", fmt.Errorf("%w: moneda %q no es un código ISO 4217 válido", domain.ErrValidation, code)
	}
	return unit.String(), nil
}

// checkPrice exige 0.01 ≤ precio ≤ 9999999999.99 y como máximo dos decimales.
func checkPrice(p decimal.Decimal) error {
	if p.LessThan(minPrice) {
		return fmt.Errorf("%w: el precio debe ser al menos 0.01", domain.ErrValidation)
	}
	if p.GreaterThan(maxPrice) {
		return fmt.Errorf("%w: el precio supera el máximo permitido", domain.ErrValidation)
	}
	if !p.Equal(p.Round(2)) {
		return fmt.Errorf("%w: el precio admite como máximo dos decimales", domain.ErrValidation)
	}
	return nil
}

func toMenuItemResponses(items []*entity.MenuItem) []dto.MenuItemResponse {
	out := make([]dto.MenuItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toMenuItemResponse(it))
	}
	return out
}

func toMenuItemResponse(m *entity.MenuItem) *dto.MenuItemResponse {
	if m == nil {
		return nil
	}
	return &dto.MenuItemResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Currency:    m.Currency,
		Price:       m.Price,
		Available:   m.Available,
		Image:       m.Image,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// seed carga datos iniciales: un usuario ADMIN y, opcionalmente, la carta desde un CSV.
//
// Uso: go run ./cmd/seed -admin-email admin@restaurante.co [-menu carta.csv] [-latin1]
// La contraseña del admin se lee de SEED_ADMIN_PASSWORD.
//
// Formato del CSV (con cabecera): name,description,currency,price,image
// donde image es la ruta a un archivo jpeg/png/webp relativa al CSV.
package main

import (
	"context"
	"encoding/base64"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/application/usecase"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/imagestore"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/postgres"
	"github.com/jhoicas/restaurante-api/pkg/config"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// menuRow fila del CSV de la carta.
type menuRow struct {
	Name        string
	Description string
	Currency    string
	Price       decimal.Decimal
	Image       string
}

func main() {
	adminEmail := flag.String("admin-email", "", "email del usuario ADMIN a crear o promover")
	adminName := flag.String("admin-name", "Administrador", "nombre del usuario ADMIN")
	menuPath := flag.String("menu", "", "CSV con la carta inicial")
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1 (exportado desde Excel)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	// El seed actúa como un administrador del sistema.
	system := &entity.Principal{ID: "seed", Role: entity.RoleAdmin}

	if *adminEmail != "" {
		userRepo := postgres.NewUserRepository(pool)
		authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{Secret: cfg.JWT.Secret}, log)
		userUC := usecase.NewUserUseCase(userRepo, log)

		u, err := authUC.RegisterUser(ctx, nil, dto.RegisterRequest{
			Name:     *adminName,
			Email:    *adminEmail,
			Password: os.Getenv("SEED_ADMIN_PASSWORD"),
		})
		userID := ""
		switch {
		case err == nil:
			userID = u.ID
		case errors.Is(err, domain.ErrConflict):
			existing, gerr := userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(*adminEmail)))
			if gerr != nil || existing == nil {
				log.Fatal().Err(gerr).Msg("buscar admin existente")
			}
			userID = existing.ID
		default:
			log.Fatal().Err(err).Msg("crear admin")
		}
		if _, err := userUC.ChangeRole(ctx, system, userID, dto.ChangeRoleRequest{Role: string(entity.RoleAdmin)}); err != nil {
			log.Fatal().Err(err).Msg("promover admin")
		}
		log.Info().Str("email", *adminEmail).Msg("admin listo")
	}

	if *menuPath == "" {
		return
	}
	f, err := os.Open(*menuPath)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()
	rows, err := parseMenuCSV(f, *latin1)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	images, err := imagestore.NewFileStore(cfg.Images.Dir, cfg.Images.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de imágenes")
	}
	menuUC := usecase.NewMenuUseCase(postgres.NewMenuItemRepository(pool), images, ports.NopMenuCache{}, log)

	baseDir := filepath.Dir(*menuPath)
	for _, row := range rows {
		uri, err := imageDataURI(filepath.Join(baseDir, row.Image))
		if err != nil {
			log.Fatal().Err(err).Str("plato", row.Name).Msg("leer imagen")
		}
		item, err := menuUC.Register(ctx, system, dto.CreateMenuItemRequest{
			Name:        row.Name,
			Description: row.Description,
			Currency:    row.Currency,
			Price:       row.Price,
			Image:       uri,
		})
		if err != nil {
			log.Fatal().Err(err).Str("plato", row.Name).Msg("registrar plato")
		}
		log.Info().Str("id", item.ID).Str("plato", item.Name).Msg("plato cargado")
	}
	log.Info().Int("platos", len(rows)).Msg("carta cargada")
}

// parseMenuCSV lee la carta. Con latin1 el contenido se transcodifica desde ISO-8859-1.
func parseMenuCSV(r io.Reader, latin1 bool) ([]menuRow, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV vacío")
	}

	col := make(map[string]int)
	for i, h := range records[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "currency", "price", "image"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("falta la columna %q", required)
		}
	}
	get := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	rows := make([]menuRow, 0, len(records)-1)
	for n, rec := range records[1:] {
		price, err := decimal.NewFromString(get(rec, "price"))
		if err != nil {
			return nil, fmt.Errorf("fila %d: precio inválido: %w", n+2, err)
		}
		rows = append(rows, menuRow{
			Name:        get(rec, "name"),
			Description: get(rec, "description"),
			Currency:    get(rec, "currency"),
			Price:       price,
			Image:       get(rec, "image"),
		})
	}
	return rows, nil
}

// imageDataURI lee un archivo de imagen y lo codifica como data URI.
func imageDataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	mt := mimetype.Detect(data).String()
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

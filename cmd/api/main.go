package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/application/ordering"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/application/usecase"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/cache"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/imagestore"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/messaging"
	infrapdf "github.com/jhoicas/restaurante-api/internal/infrastructure/pdf"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/restaurante-api/internal/interfaces/http"
	"github.com/jhoicas/restaurante-api/pkg/config"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	menuRepo := postgres.NewMenuItemRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	images, err := imagestore.NewFileStore(cfg.Images.Dir, cfg.Images.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de imágenes")
	}

	// Redis es opcional: sin REDIS_HOST la carta se lee siempre de PostgreSQL.
	var menuCache ports.MenuCache = ports.NopMenuCache{}
	if cfg.Redis.Host != "" {
		rdb, err := cache.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, carta sin caché")
		} else {
			defer rdb.Close()
			menuCache = cache.NewMenuCache(rdb, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		}
	}

	// RabbitMQ es opcional: sin RABBITMQ_URL los eventos de pedidos se descartan.
	var publisher ordering.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		pub, err := messaging.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Warn().Err(err).Msg("rabbitmq no disponible, eventos deshabilitados")
		} else {
			defer pub.Close()
			publisher = pub
		}
	}

	receipts := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)

	menuUC := usecase.NewMenuUseCase(menuRepo, images, menuCache, log)
	orderUC := ordering.NewOrderUseCase(txRunner, orderRepo, publisher, receipts, log, ordering.Options{
		StrictTransitions: cfg.Orders.StrictTransitions,
	})
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	userUC := usecase.NewUserUseCase(userRepo, log)

	metrics := httpRouter.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    8 * 1024 * 1024, // imágenes de hasta 5 MiB en base64
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(metrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs (solo si se generó la documentación)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Restaurante API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		MenuUC:    menuUC,
		OrderUC:   orderUC,
		AuthUC:    authUC,
		UserUC:    userUC,
		Metrics:   metrics,
		JWTSecret: cfg.JWT.Secret,
		ImagesDir: images.Dir(),
		Log:       log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

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

	"github.com/tu-usuario/catalogo-api/internal/application/auth"
	"github.com/tu-usuario/catalogo-api/internal/application/usecase"
	"github.com/tu-usuario/catalogo-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/catalogo-api/internal/infrastructure/storage"
	httpRouter "github.com/tu-usuario/catalogo-api/internal/interfaces/http"
	"github.com/tu-usuario/catalogo-api/pkg/config"
	"github.com/tu-usuario/catalogo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPoolWithRetry(ctx, cfg.DB, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("creación del esquema")
	}

	images, err := storage.NewMinioImageStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al object store")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	subcategoryRepo := postgres.NewSubcategoryRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)

	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, sessionRepo, auth.Config{
		SessionTTL: sessionTTL,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	userUC := usecase.NewUserUseCase(userRepo, companyRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, itemRepo, images)
	subcategoryUC := usecase.NewSubcategoryUseCase(subcategoryRepo, categoryRepo, itemRepo, images)
	itemUC := usecase.NewItemUseCase(itemRepo, subcategoryRepo, images)

	// Admin inicial desde el entorno; no hace nada si ya existe.
	if cfg.Admin.Username != "" {
		if err := authUC.EnsureAdmin(ctx, auth.AdminBootstrap{
			CompanyName: cfg.Admin.CompanyName,
			CompanySlug: cfg.Admin.CompanySlug,
			Username:    cfg.Admin.Username,
			Password:    cfg.Admin.Password,
			Name:        cfg.Admin.Name,
		}); err != nil {
			log.Fatal().Err(err).Msg("provisión del admin inicial")
		}
	}

	// Barrido periódico de sesiones vencidas. La validez no depende de esto:
	// ValidateSession rechaza vencidas por sí mismo.
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if n, err := sessionRepo.DeleteExpired(sweepCtx, time.Now()); err != nil {
					log.Warn().Err(err).Msg("barrido de sesiones")
				} else if n > 0 {
					log.Info().Int64("eliminadas", n).Msg("sesiones vencidas purgadas")
				}
			}
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    10 * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Catálogo API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		CompanyUC:     companyUC,
		UserUC:        userUC,
		CategoryUC:    categoryUC,
		SubcategoryUC: subcategoryUC,
		ItemUC:        itemUC,
		CookieName:    cfg.Session.CookieName,
		CookieSecure:  cfg.Session.CookieSecure,
		SessionTTL:    sessionTTL,
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

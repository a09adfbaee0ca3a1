package main

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/tu-usuario/catalogo-api/internal/application/auth"
	"github.com/tu-usuario/catalogo-api/internal/application/dto"
	"github.com/tu-usuario/catalogo-api/internal/application/usecase"
	"github.com/tu-usuario/catalogo-api/internal/domain"
	"github.com/tu-usuario/catalogo-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/catalogo-api/pkg/config"
	"github.com/tu-usuario/catalogo-api/pkg/logger"
)

// Datos de ejemplo: catálogo de una ferretería. Correr varias veces es
// seguro: los duplicados se omiten.
var categories = []string{
	"Herramientas",
	"Material Eléctrico",
	"Tornillos y Fijaciones",
	"Pinturas y Barnices",
	"Equipos de Seguridad",
}

var subcategories = map[string][]string{
	"Herramientas":           {"Alicates", "Destornilladores", "Martillos", "Taladros"},
	"Material Eléctrico":     {"Cables", "Tomacorrientes", "Interruptores", "Lámparas"},
	"Tornillos y Fijaciones": {"Tornillos Phillips", "Tornillos Planos", "Tuercas", "Arandelas"},
	"Pinturas y Barnices":    {"Pintura Acrílica", "Pintura al Óleo", "Barniz", "Imprimante"},
	"Equipos de Seguridad":   {"Cascos", "Gafas", "Guantes", "Mascarillas"},
}

var items = map[string][]string{
	"Alicates":           {"Alicate Universal", "Alicate de Punta", "Alicate Pelacables"},
	"Destornilladores":   {"Destornillador 3mm", "Destornillador 5mm", "Destornillador 8mm"},
	"Martillos":          {"Martillo de Uña 200g", "Martillo de Uña 500g", "Martillo de Goma"},
	"Cables":             {"Cable 2,5mm", "Cable 4mm", "Cable 6mm"},
	"Tomacorrientes":     {"Tomacorriente 2P+T", "Tomacorriente USB", "Tomacorriente Exterior"},
	"Tornillos Phillips": {"Phillips 3x15mm", "Phillips 4x20mm", "Phillips 5x25mm"},
	"Pintura Acrílica":   {"Acrílica Blanca", "Acrílica Azul", "Acrílica Roja"},
	"Cascos":             {"Casco Blanco", "Casco Amarillo", "Casco Azul"},
}

// noopImageStore satisface el puerto de imágenes sin object store: el seed
// nunca sube ni borra imágenes.
type noopImageStore struct{}

func (noopImageStore) Store(context.Context, io.Reader, int64, string, string) (*usecase.StoredImage, error) {
	return nil, errors.New("seed: sin object store")
}

func (noopImageStore) Remove(context.Context, string) error { return nil }

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})
	log.Info().Msg("insertando datos de ejemplo...")

	ctx := context.Background()
	pool, err := postgres.NewPoolWithRetry(ctx, cfg.DB, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("creación del esquema")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	subcategoryRepo := postgres.NewSubcategoryRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, sessionRepo, auth.Config{
		SessionTTL: time.Duration(cfg.Session.TTLHours) * time.Hour,
	})

	boot := auth.AdminBootstrap{
		CompanyName: cfg.Admin.CompanyName,
		CompanySlug: cfg.Admin.CompanySlug,
		Username:    cfg.Admin.Username,
		Password:    cfg.Admin.Password,
		Name:        cfg.Admin.Name,
	}
	if boot.Username == "" {
		boot = auth.AdminBootstrap{
			CompanyName: "Ferretería Demo",
			CompanySlug: "demo",
			Username:    "admin",
			Password:    "admin123",
			Name:        "Administrador",
		}
	}
	if err := authUC.EnsureAdmin(ctx, boot); err != nil {
		log.Fatal().Err(err).Msg("provisión del admin")
	}

	company, err := companyRepo.GetBySlug(ctx, boot.CompanySlug)
	if err != nil || company == nil {
		log.Fatal().Err(err).Str("slug", boot.CompanySlug).Msg("empresa de seed no encontrada")
	}

	categoryUC := usecase.NewCategoryUseCase(categoryRepo, itemRepo, noopImageStore{})
	subcategoryUC := usecase.NewSubcategoryUseCase(subcategoryRepo, categoryRepo, itemRepo, noopImageStore{})
	itemUC := usecase.NewItemUseCase(itemRepo, subcategoryRepo, noopImageStore{})

	var nCat, nSub, nItem int

	categoryIDs := make(map[string]int64)
	for _, name := range categories {
		out, err := categoryUC.Create(ctx, company.ID, dto.CreateCategoryRequest{Name: name})
		switch {
		case err == nil:
			categoryIDs[name] = out.ID
			nCat++
		case errors.Is(err, domain.ErrDuplicate):
			existing, err := categoryRepo.GetByName(ctx, company.ID, name)
			if err != nil || existing == nil {
				log.Fatal().Err(err).Str("categoria", name).Msg("leer categoría existente")
			}
			categoryIDs[name] = existing.ID
		default:
			log.Fatal().Err(err).Str("categoria", name).Msg("crear categoría")
		}
	}

	subcategoryIDs := make(map[string]int64)
	for categoryName, subs := range subcategories {
		categoryID := categoryIDs[categoryName]
		for _, name := range subs {
			out, err := subcategoryUC.Create(ctx, company.ID, dto.CreateSubcategoryRequest{
				Name:       name,
				CategoryID: categoryID,
			})
			switch {
			case err == nil:
				subcategoryIDs[name] = out.ID
				nSub++
			case errors.Is(err, domain.ErrDuplicate):
				siblings, err := subcategoryRepo.ListByCategory(ctx, company.ID, categoryID)
				if err != nil {
					log.Fatal().Err(err).Str("subcategoria", name).Msg("leer subcategorías existentes")
				}
				for _, s := range siblings {
					if s.Name == name {
						subcategoryIDs[name] = s.ID
						break
					}
				}
			default:
				log.Fatal().Err(err).Str("subcategoria", name).Msg("crear subcategoría")
			}
		}
	}

	for subcategoryName, names := range items {
		subcategoryID, ok := subcategoryIDs[subcategoryName]
		if !ok {
			continue
		}
		for _, name := range names {
			_, err := itemUC.Create(ctx, company.ID, dto.CreateItemRequest{
				Name:          name,
				SubcategoryID: subcategoryID,
			}, nil)
			switch {
			case err == nil:
				nItem++
			case errors.Is(err, domain.ErrDuplicate):
				// ya existe, nada que hacer
			default:
				log.Fatal().Err(err).Str("item", name).Msg("crear ítem")
			}
		}
	}

	log.Info().
		Int("categorias", nCat).
		Int("subcategorias", nSub).
		Int("items", nItem).
		Msg("datos de ejemplo insertados")
}

package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/catalogo-api/internal/application/auth"
	"github.com/tu-usuario/catalogo-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CompanyUC     *usecase.CompanyUseCase
	UserUC        *usecase.UserUseCase
	CategoryUC    *usecase.CategoryUseCase
	SubcategoryUC *usecase.SubcategoryUseCase
	ItemUC        *usecase.ItemUseCase
	CookieName    string
	CookieSecure  bool
	SessionTTL    time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, logout y check requieren sesión viva
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieName, deps.CookieSecure, deps.SessionTTL)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	// Rutas protegidas (cookie de sesión o Bearer Token)
	protected := api.Group("/", SessionMiddleware(deps.AuthUC, deps.CookieName))

	protected.Get("/auth/check", authHandler.Check)

	// Administración de empresas y usuarios (solo admin)
	admin := protected.Group("/admin", RequireAdmin())

	companies := admin.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Delete("/:id", companyHandler.Delete)

	users := admin.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Delete("/:id", userHandler.Delete)

	// Categorías (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Subcategorías (protegido)
	subcategories := protected.Group("/subcategories")
	subcategoryHandler := NewSubcategoryHandler(deps.SubcategoryUC)
	subcategories.Get("/:categoryID", subcategoryHandler.ListByCategory)
	subcategories.Post("/", subcategoryHandler.Create)
	subcategories.Put("/:id", subcategoryHandler.Update)
	subcategories.Delete("/:id", subcategoryHandler.Delete)

	// Ítems (protegido, con imagen multipart)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/:subcategoryID", itemHandler.ListBySubcategory)
	items.Post("/", itemHandler.Create)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
}

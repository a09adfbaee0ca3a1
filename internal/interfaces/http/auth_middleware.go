package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/catalogo-api/internal/application/dto"
	"github.com/tu-usuario/catalogo-api/internal/domain"
	"github.com/tu-usuario/catalogo-api/internal/domain/entity"
)

// LocalSession key del SessionContext en c.Locals tras el middleware.
const LocalSession = "session"

// SessionValidator es lo único que el middleware necesita del gate de auth.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*entity.SessionContext, error)
}

// SessionMiddleware resuelve el token opaco (cookie de sesión primero,
// Authorization: Bearer como alternativa para clientes de API) contra el
// store y deja el SessionContext en c.Locals. Sin registro vivo no hay
// acceso: el logout y la expiración son autoritativos de inmediato.
func SessionMiddleware(validator SessionValidator, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			token = bearerToken(c.Get("Authorization"))
		}
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
		}
		sc, err := validator.ValidateSession(c.UserContext(), token)
		if err != nil {
			// Un fallo del store no invalida la sesión: se responde 500 y
			// la cookie del cliente queda intacta.
			if !errors.Is(err, domain.ErrUnauthorized) {
				return respondError(c, err)
			}
			// Sesión inválida o vencida: se limpia la cookie del cliente.
			clearSessionCookie(c, cookieName)
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión inválida o expirada"})
		}
		c.Locals(LocalSession, sc)
		return c.Next()
	}
}

// RequireAdmin compone sobre SessionMiddleware: exige el flag de admin.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sc := GetSession(c)
		if sc == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
		}
		if !sc.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "se requiere acceso de administrador"})
		}
		return c.Next()
	}
}

// GetSession devuelve el SessionContext del contexto (después del middleware).
func GetSession(c *fiber.Ctx) *entity.SessionContext {
	v := c.Locals(LocalSession)
	if v == nil {
		return nil
	}
	sc, _ := v.(*entity.SessionContext)
	return sc
}

// GetCompanyID devuelve la empresa actuante; 0 si no hay sesión.
func GetCompanyID(c *fiber.Ctx) int64 {
	if sc := GetSession(c); sc != nil {
		return sc.CompanyID
	}
	return 0
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func clearSessionCookie(c *fiber.Ctx, cookieName string) {
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
	})
}

package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/catalogo-api/internal/application/auth"
	"github.com/tu-usuario/catalogo-api/internal/application/dto"
)

// AuthHandler maneja login, logout y verificación de sesión.
type AuthHandler struct {
	uc           *auth.AuthUseCase
	cookieName   string
	cookieSecure bool
	sessionTTL   time.Duration
}

// NewAuthHandler construye el handler inyectando el caso de uso de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookieName string, cookieSecure bool, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{uc: uc, cookieName: cookieName, cookieSecure: cookieSecure, sessionTTL: sessionTTL}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}

	// Cookie httpOnly con el mismo horizonte fijo de la sesión.
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    out.Token,
		Expires:  out.ExpiresAt,
		MaxAge:   int(h.sessionTTL.Seconds()),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.StatusResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(h.cookieName)
	if token == "" {
		token = bearerToken(c.Get("Authorization"))
	}
	if err := h.uc.Logout(c.UserContext(), token); err != nil {
		return respondError(c, err)
	}
	clearSessionCookie(c, h.cookieName)
	return c.JSON(dto.StatusResponse{Success: true})
}

// Check godoc
// @Summary      Verificar la sesión actual
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/check [get]
func (h *AuthHandler) Check(c *fiber.Ctx) error {
	sc := GetSession(c)
	if sc == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
	}
	return c.JSON(dto.SessionResponse{
		User: dto.UserResponse{
			ID:          sc.UserID,
			CompanyID:   sc.CompanyID,
			Username:    sc.Username,
			Name:        sc.Name,
			CompanyName: sc.CompanyName,
			IsAdmin:     sc.IsAdmin,
		},
	})
}

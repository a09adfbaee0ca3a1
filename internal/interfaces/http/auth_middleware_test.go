package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/catalogo-api/internal/domain"
	"github.com/tu-usuario/catalogo-api/internal/domain/entity"
	apphttp "github.com/tu-usuario/catalogo-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCookieName = "session_id"
	testToken      = "0011223344556677889900112233445566778899001122334455667788990011"
)

// stubValidator valida contra un mapa fijo token -> sesión. Con err fijado
// simula un store que no responde.
type stubValidator struct {
	sessions map[string]*entity.SessionContext
	err      error
}

func (v *stubValidator) ValidateSession(_ context.Context, token string) (*entity.SessionContext, error) {
	if v.err != nil {
		return nil, v.err
	}
	if sc, ok := v.sessions[token]; ok {
		return sc, nil
	}
	return nil, domain.ErrUnauthorized
}

func adminSession() *entity.SessionContext {
	return &entity.SessionContext{
		Token:       testToken,
		UserID:      3,
		CompanyID:   7,
		Username:    "juan",
		Name:        "Juan Pérez",
		CompanyName: "ACME Ltda",
		CompanySlug: "acme",
		IsAdmin:     true,
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - SessionMiddleware que resuelve el token contra el stub
//   - Una ruta protegida que expone la empresa actuante
//   - Una ruta admin detrás de RequireAdmin
func buildTestApp(validator apphttp.SessionValidator) *fiber.App {
	app := fiber.New()
	protected := app.Group("/", apphttp.SessionMiddleware(validator, testCookieName))
	protected.Get("/protected", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"ok":         true,
			"company_id": apphttp.GetCompanyID(c),
			"username":   apphttp.GetSession(c).Username,
		})
	})
	protected.Get("/admin-only", apphttp.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, cookie, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookie})
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SessionMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionMiddleware_CookieValida_CargaLaSesion(t *testing.T) {
	validator := &stubValidator{sessions: map[string]*entity.SessionContext{testToken: adminSession()}}
	app := buildTestApp(validator)

	resp := doRequest(t, app, "/protected", testToken, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(7), body["company_id"], "la empresa actuante sale de la sesión")
	assert.Equal(t, "juan", body["username"])
}

func TestSessionMiddleware_BearerComoAlternativa(t *testing.T) {
	validator := &stubValidator{sessions: map[string]*entity.SessionContext{testToken: adminSession()}}
	app := buildTestApp(validator)

	resp := doRequest(t, app, "/protected", "", "Bearer "+testToken)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"clientes de API pueden mandar el token como Bearer")
}

func TestSessionMiddleware_SinToken_Retorna401(t *testing.T) {
	app := buildTestApp(&stubValidator{sessions: map[string]*entity.SessionContext{}})

	resp := doRequest(t, app, "/protected", "", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAUTHORIZED")
}

func TestSessionMiddleware_TokenRevocado_Retorna401YLimpiaCookie(t *testing.T) {
	// El stub no conoce el token: equivale a una sesión borrada por logout.
	app := buildTestApp(&stubValidator{sessions: map[string]*entity.SessionContext{}})

	resp := doRequest(t, app, "/protected", testToken, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"un token sin registro vivo no vale, aunque sea bien formado")

	// La cookie inválida se expira en el cliente.
	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == testCookieName && c.Value == "" {
			cleared = true
		}
	}
	assert.True(t, cleared, "la cookie de sesión inválida debe limpiarse")
}

func TestSessionMiddleware_FalloDelStore_Retorna500SinTocarLaCookie(t *testing.T) {
	// Un error del store no es una sesión inválida: el cliente conserva su
	// cookie y recibe un 500, no un 401.
	validator := &stubValidator{err: errors.New("leer sesión: connection refused")}
	app := buildTestApp(validator)

	resp := doRequest(t, app, "/protected", testToken, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode,
		"un fallo transitorio del store no debe parecer sesión vencida")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INTERNAL")

	for _, c := range resp.Cookies() {
		if c.Name == testCookieName {
			assert.NotEmpty(t, c.Value, "la cookie no debe limpiarse por un fallo del store")
		}
	}
}

func TestSessionMiddleware_HeaderMalformado_Retorna401(t *testing.T) {
	validator := &stubValidator{sessions: map[string]*entity.SessionContext{testToken: adminSession()}}
	app := buildTestApp(validator)

	resp := doRequest(t, app, "/protected", "", "Token "+testToken)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"solo se acepta el esquema Bearer")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAdmin_AdminAccede(t *testing.T) {
	validator := &stubValidator{sessions: map[string]*entity.SessionContext{testToken: adminSession()}}
	app := buildTestApp(validator)

	resp := doRequest(t, app, "/admin-only", testToken, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAdmin_UsuarioComun_Retorna403(t *testing.T) {
	sc := adminSession()
	sc.IsAdmin = false
	validator := &stubValidator{sessions: map[string]*entity.SessionContext{testToken: sc}}
	app := buildTestApp(validator)

	resp := doRequest(t, app, "/admin-only", testToken, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/catalogo-api/internal/application/dto"
	"github.com/tu-usuario/catalogo-api/internal/domain"
	"github.com/tu-usuario/catalogo-api/internal/domain/entity"
	"github.com/tu-usuario/catalogo-api/internal/domain/repository"
)

// dummyHash es un hash bcrypt de un valor aleatorio descartado. Cuando la
// empresa o el usuario no existen igualmente se compara contra este hash,
// para que el tiempo de respuesta no distinga "usuario inexistente" de
// "contraseña incorrecta".
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Config parámetros del gate de autenticación.
type Config struct {
	SessionTTL time.Duration // horizonte fijo de expiración (24h en el original)
}

// AdminBootstrap credenciales de arranque del primer administrador,
// cargadas del entorno una sola vez al inicio del proceso.
type AdminBootstrap struct {
	CompanyName string
	CompanySlug string
	Username    string
	Password    string
	Name        string
}

// AuthUseCase casos de uso de autenticación: login, validación de sesión,
// logout y provisión del admin inicial. Las sesiones son tokens opacos de
// servidor: ningún token sobrevive a su registro en el store.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	sessionRepo repository.SessionRepository
	cfg         Config
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, sessionRepo repository.SessionRepository, cfg Config) *AuthUseCase {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	return &AuthUseCase{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		now:         time.Now,
	}
}

// Login verifica username/password dentro de la empresa identificada por su
// slug y crea una sesión con token aleatorio y expiración fija. Cualquier
// fallo (empresa inexistente, usuario inexistente, contraseña incorrecta)
// devuelve el mismo domain.ErrInvalidCredentials, sin señal distinguible.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" || in.Company == "" {
		return nil, domain.ErrInvalidCredentials
	}

	company, err := uc.companyRepo.GetBySlug(ctx, in.Company)
	if err != nil {
		return nil, fmt.Errorf("buscar empresa: %w", err)
	}

	var user *entity.User
	if company != nil {
		user, err = uc.userRepo.GetByUsernameAndCompany(ctx, in.Username, company.ID)
		if err != nil {
			return nil, fmt.Errorf("buscar usuario: %w", err)
		}
	}

	// Comparación lenta siempre, exista o no el usuario.
	hash := dummyHash
	if user != nil {
		hash = user.PasswordHash
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(in.Password)); err != nil || user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	now := uc.now()
	session := &entity.Session{
		Token:     token,
		UserID:    user.ID,
		CompanyID: company.ID,
		ExpiresAt: now.Add(uc.cfg.SessionTTL),
		CreatedAt: now,
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("crear sesión: %w", err)
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User: dto.UserResponse{
			ID:          user.ID,
			CompanyID:   company.ID,
			Username:    user.Username,
			Name:        user.Name,
			CompanyName: company.Name,
			IsAdmin:     user.IsAdmin,
		},
	}, nil
}

// ValidateSession resuelve el token al usuario y empresa actuantes.
// Una sesión vencida se rechaza aunque nunca se haya borrado; la expiración
// es fija, no se renueva con la actividad.
func (uc *AuthUseCase) ValidateSession(ctx context.Context, token string) (*entity.SessionContext, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	sc, err := uc.sessionRepo.GetContext(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	if sc == nil {
		return nil, domain.ErrUnauthorized
	}
	if !sc.ExpiresAt.After(uc.now()) {
		// Limpieza oportunista; la validez no depende de que funcione.
		if err := uc.sessionRepo.Delete(ctx, token); err != nil {
			log.Warn().Err(err).Msg("no se pudo borrar sesión vencida")
		}
		return nil, domain.ErrUnauthorized
	}
	return sc, nil
}

// Logout borra la sesión. Es idempotente: un token inexistente no es error.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := uc.sessionRepo.Delete(ctx, token); err != nil {
		return fmt.Errorf("borrar sesión: %w", err)
	}
	return nil
}

// EnsureAdmin crea la empresa y el usuario administrador de arranque si no
// existen todavía. Se invoca una vez al inicio del proceso.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, boot AdminBootstrap) error {
	if boot.Username == "" || boot.Password == "" || boot.CompanySlug == "" {
		return nil // sin bootstrap configurado
	}

	company, err := uc.companyRepo.GetBySlug(ctx, boot.CompanySlug)
	if err != nil {
		return fmt.Errorf("buscar empresa bootstrap: %w", err)
	}
	if company == nil {
		name := boot.CompanyName
		if name == "" {
			name = boot.CompanySlug
		}
		company = &entity.Company{Name: name, Slug: boot.CompanySlug}
		if err := uc.companyRepo.Create(ctx, company); err != nil {
			return fmt.Errorf("crear empresa bootstrap: %w", err)
		}
		log.Info().Str("slug", company.Slug).Msg("empresa bootstrap creada")
	}

	user, err := uc.userRepo.GetByUsernameAndCompany(ctx, boot.Username, company.ID)
	if err != nil {
		return fmt.Errorf("buscar admin bootstrap: %w", err)
	}
	if user != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(boot.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashear contraseña bootstrap: %w", err)
	}
	name := boot.Name
	if name == "" {
		name = boot.Username
	}
	user = &entity.User{
		CompanyID:    company.ID,
		Username:     boot.Username,
		PasswordHash: string(hash),
		Name:         name,
		IsAdmin:      true,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("crear admin bootstrap: %w", err)
	}
	log.Info().Str("username", user.Username).Msg("usuario admin bootstrap creado")
	return nil
}

// newSessionToken genera un identificador opaco criptográficamente aleatorio.
func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

package usecase

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/catalogo-api/internal/application/dto"
	"github.com/tu-usuario/catalogo-api/internal/domain"
	"github.com/tu-usuario/catalogo-api/internal/domain/entity"
	"github.com/tu-usuario/catalogo-api/internal/domain/repository"
)

// UserUseCase provisión de usuarios por un administrador.
type UserUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, companyRepo: companyRepo}
}

// Create crea un usuario: hashea la contraseña con bcrypt y persiste.
// Devuelve domain.ErrParentNotFound si la empresa no existe y
// domain.ErrDuplicate si el username ya existe en esa empresa.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Username == "" || in.Password == "" || in.CompanyID == 0 {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrParentNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Username
	}
	user := &entity.User{
		CompanyID:    in.CompanyID,
		Username:     in.Username,
		PasswordHash: string(hash),
		Name:         name,
		IsAdmin:      in.IsAdmin,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &dto.UserResponse{
		ID:          user.ID,
		CompanyID:   user.CompanyID,
		Username:    user.Username,
		Name:        user.Name,
		CompanyName: company.Name,
		IsAdmin:     user.IsAdmin,
		CreatedAt:   user.CreatedAt,
	}, nil
}

// List lista todos los usuarios con el nombre de su empresa.
func (uc *UserUseCase) List(ctx context.Context) (*dto.UserListResponse, error) {
	list, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	companies := map[int64]string{}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		name, ok := companies[u.CompanyID]
		if !ok {
			if c, err := uc.companyRepo.GetByID(ctx, u.CompanyID); err == nil && c != nil {
				name = c.Name
			}
			companies[u.CompanyID] = name
		}
		items = append(items, dto.UserResponse{
			ID:          u.ID,
			CompanyID:   u.CompanyID,
			Username:    u.Username,
			Name:        u.Name,
			CompanyName: name,
			IsAdmin:     u.IsAdmin,
			CreatedAt:   u.CreatedAt,
		})
	}
	return &dto.UserListResponse{Items: items}, nil
}

// Delete elimina un usuario; sus sesiones caen por cascada del store.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	return uc.userRepo.Delete(ctx, id)
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/duquediazn/tabula-backend/internal/application/auth"
	"github.com/duquediazn/tabula-backend/internal/application/dto"
	"github.com/duquediazn/tabula-backend/internal/domain"
	"github.com/duquediazn/tabula-backend/internal/domain/access"
	"github.com/duquediazn/tabula-backend/internal/domain/entity"
	"github.com/duquediazn/tabula-backend/internal/domain/repository"
)

// UserUseCase gestión de usuarios (alta, edición, estado y baja).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create da de alta un usuario (solo admin). Activo por defecto salvo indicación contraria.
func (uc *UserUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := access.RequireAdmin(p); err != nil {
		return nil, err
	}
	if err := auth.ValidateNewUser(in); err != nil {
		return nil, err
	}
	email := auth.NormalizeEmail(in.Email)
	if err := uc.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Passwd)
	if err != nil {
		return nil, err
	}
	role := in.Rol
	if role == "" {
		role = entity.RoleUsuario
	}
	u := &entity.User{
		Name:         strings.TrimSpace(in.Nombre),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if in.Activo != nil {
		u.Active = *in.Activo
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}

// GetByID admin o el propio usuario.
func (uc *UserUseCase) GetByID(ctx context.Context, p access.Principal, id int) (*dto.UserResponse, error) {
	if err := access.Authorize(p, id, "no puedes ver otros usuarios"); err != nil {
		return nil, err
	}
	u, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}

// List solo admin.
func (uc *UserUseCase) List(ctx context.Context, p access.Principal, q dto.UserListQuery) (*dto.Paginated[dto.UserResponse], error) {
	if err := access.RequireAdmin(p); err != nil {
		return nil, err
	}
	if err := validatePage(q.PageRequest); err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, repository.UserFilter{
		Search: strings.TrimSpace(q.Search),
		Active: q.Activo,
		Page:   toPage(q.PageRequest),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *auth.ToUserResponse(u))
	}
	res := dto.NewPaginated(out, total, q.PageRequest)
	return &res, nil
}

// Update el propio usuario o un admin; rol y activo solo los cambia un admin.
func (uc *UserUseCase) Update(ctx context.Context, p access.Principal, id int, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := access.Authorize(p, id, "no puedes modificar otros usuarios"); err != nil {
		return nil, err
	}
	if (in.Rol != nil || in.Activo != nil) && !p.IsAdmin() {
		return nil, fmt.Errorf("%w: solo un administrador puede cambiar rol o estado", domain.ErrForbidden)
	}
	u, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Nombre != nil {
		if err := auth.ValidateName(*in.Nombre); err != nil {
			return nil, err
		}
		u.Name = strings.TrimSpace(*in.Nombre)
	}
	if in.Email != nil {
		if err := auth.ValidateEmail(*in.Email); err != nil {
			return nil, err
		}
		email := auth.NormalizeEmail(*in.Email)
		if email != u.Email {
			if err := uc.ensureEmailFree(ctx, email, id); err != nil {
				return nil, err
			}
		}
		u.Email = email
	}
	if in.Passwd != nil {
		if err := auth.ValidatePassword(*in.Passwd); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(*in.Passwd)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if in.Rol != nil {
		if !entity.ValidRole(*in.Rol) {
			return nil, fmt.Errorf("%w: rol inválido, debe ser 'usuario' o 'admin'", domain.ErrInvalidInput)
		}
		u.Role = *in.Rol
	}
	if in.Activo != nil {
		if !*in.Activo && id == p.UserID {
			return nil, fmt.Errorf("%w: no puedes desactivarte a ti mismo", domain.ErrInvalidInput)
		}
		u.Active = *in.Activo
	}
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}

// SetState cambio de estado múltiple (solo admin). No permite desactivarse a uno mismo;
// omite los inexistentes y los que ya están en ese estado.
func (uc *UserUseCase) SetState(ctx context.Context, p access.Principal, in dto.BulkUserStateRequest) (*dto.BulkStateResponse, error) {
	if err := access.RequireAdmin(p); err != nil {
		return nil, err
	}
	if len(in.IDs) == 0 {
		return nil, fmt.Errorf("%w: debe indicar al menos un usuario", domain.ErrInvalidInput)
	}
	if !in.Activo {
		for _, id := range in.IDs {
			if id == p.UserID {
				return nil, fmt.Errorf("%w: no puedes desactivarte a ti mismo", domain.ErrInvalidInput)
			}
		}
	}
	res := &dto.BulkStateResponse{Actualizados: []int{}, Omitidos: []int{}}
	for _, id := range in.IDs {
		u, err := uc.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if u == nil || u.Active == in.Activo {
			res.Omitidos = append(res.Omitidos, id)
			continue
		}
		u.Active = in.Activo
		if err := uc.repo.Update(ctx, u); err != nil {
			return nil, err
		}
		res.Actualizados = append(res.Actualizados, id)
	}
	return res, nil
}

// Delete solo admin y solo si el usuario no tiene movimientos.
func (uc *UserUseCase) Delete(ctx context.Context, p access.Principal, id int) error {
	if err := access.RequireAdmin(p); err != nil {
		return err
	}
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	used, err := uc.repo.HasMovements(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return fmt.Errorf("%w: el usuario tiene movimientos registrados, desactívalo en su lugar", domain.ErrInvalidInput)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *UserUseCase) load(ctx context.Context, id int) (*entity.User, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (uc *UserUseCase) ensureEmailFree(ctx context.Context, email string, selfID int) error {
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.ErrEmailAlreadyExists
	}
	return nil
}

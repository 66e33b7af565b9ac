package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/duquediazn/tabula-backend/internal/application/dto"
	"github.com/duquediazn/tabula-backend/internal/domain"
	"github.com/duquediazn/tabula-backend/internal/domain/access"
	"github.com/duquediazn/tabula-backend/internal/domain/entity"
	"github.com/duquediazn/tabula-backend/internal/domain/repository"
	"github.com/duquediazn/tabula-backend/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret        string
	AccessMinutes int
	RefreshDays   int
	Issuer        string
}

// AccessTTL duración del access token.
func (c JWTConfig) AccessTTL() time.Duration {
	return time.Duration(c.AccessMinutes) * time.Minute
}

// RefreshTTL duración del refresh token.
func (c JWTConfig) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshDays) * 24 * time.Hour
}

// AuthUseCase casos de uso de autenticación: registro, login, refresh y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario con rol usuario e inactivo hasta que un admin lo active.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := ValidateNewUser(in); err != nil {
		return nil, err
	}
	email := NormalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := HashPassword(in.Passwd)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Name:         strings.TrimSpace(in.Nombre),
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleUsuario,
		Active:       false,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica email/password y emite access + refresh token.
// Usuario inexistente -> ErrUserNotFound; inactivo -> ErrInactiveUser; password incorrecto -> ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.UserResponse, *dto.TokenPair, error) {
	user, err := uc.userRepo.GetByEmail(ctx, NormalizeEmail(in.Email))
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, domain.ErrUserNotFound
	}
	if !user.Active {
		return nil, nil, domain.ErrInactiveUser
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, nil, fmt.Errorf("%w: credenciales incorrectas", domain.ErrUnauthorized)
	}
	pair, err := uc.issue(user)
	if err != nil {
		return nil, nil, err
	}
	return ToUserResponse(user), pair, nil
}

// Refresh emite un nuevo access token a partir de un refresh token válido.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", fmt.Errorf("%w: refresh token ausente", domain.ErrUnauthorized)
	}
	userID, _, err := jwt.Parse(uc.jwtCfg.Secret, refreshToken, jwt.KindRefresh)
	if err != nil {
		return "", fmt.Errorf("%w: refresh token inválido o expirado", domain.ErrUnauthorized)
	}
	user, err := uc.ActiveUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, jwt.KindAccess, uc.jwtCfg.Issuer, uc.jwtCfg.AccessTTL())
}

// ActiveUser carga el usuario del token: ErrUserNotFound si no existe, ErrInactiveUser si está inactivo.
func (uc *AuthUseCase) ActiveUser(ctx context.Context, id int) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.Active {
		return nil, domain.ErrInactiveUser
	}
	return user, nil
}

// Profile datos del usuario autenticado.
func (uc *AuthUseCase) Profile(ctx context.Context, p access.Principal) (*dto.UserResponse, error) {
	user, err := uc.ActiveUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// VerifyPassword comprueba la contraseña actual del usuario autenticado.
func (uc *AuthUseCase) VerifyPassword(ctx context.Context, p access.Principal, password string) error {
	user, err := uc.ActiveUser(ctx, p.UserID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return fmt.Errorf("%w: contraseña incorrecta", domain.ErrUnauthorized)
	}
	return nil
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.TokenPair, error) {
	accessTok, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, jwt.KindAccess, uc.jwtCfg.Issuer, uc.jwtCfg.AccessTTL())
	if err != nil {
		return nil, err
	}
	refreshTok, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, jwt.KindRefresh, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshTTL())
	if err != nil {
		return nil, err
	}
	return &dto.TokenPair{AccessToken: accessTok, RefreshToken: refreshTok}, nil
}

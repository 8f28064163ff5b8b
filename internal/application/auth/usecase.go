package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/fresco-api/internal/application/dto"
	"github.com/jhoicas/fresco-api/internal/domain"
	"github.com/jhoicas/fresco-api/internal/domain/entity"
	"github.com/jhoicas/fresco-api/internal/domain/repository"
	"github.com/jhoicas/fresco-api/pkg/jwt"
)

// LoginAttemptStore lleva la cuenta de intentos fallidos de login por
// identificador (email) y decide cuándo bloquear. Es un puerto inyectable:
// la implementación por defecto es un mapa en memoria con TTL, pero puede
// respaldarse en un cache externo sin tocar este caso de uso.
type LoginAttemptStore interface {
	// IsLocked indica si el identificador está bloqueado en este instante.
	IsLocked(key string, now time.Time) bool
	// RegisterFailure suma un intento fallido.
	RegisterFailure(key string, now time.Time)
	// Reset limpia el contador tras un login exitoso.
	Reset(key string)
}

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login con bloqueo
// por intentos fallidos.
type AuthUseCase struct {
	userRepo repository.UserRepository
	attempts LoginAttemptStore
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, attempts LoginAttemptStore, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, attempts: attempts, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role := in.Role
	switch role {
	case "":
		role = entity.RoleStaff
	case entity.RoleAdmin, entity.RoleManager, entity.RoleStaff:
	default:
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Tras demasiados intentos fallidos el identificador queda bloqueado
// temporalmente y se responde ErrTooManyAttempts sin consultar la contraseña.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	now := time.Now()
	if uc.attempts.IsLocked(in.Email, now) {
		return nil, domain.ErrTooManyAttempts
	}

	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Cuenta también los intentos sobre emails inexistentes (evita enumeración por timing de bloqueo).
		uc.attempts.RegisterFailure(in.Email, now)
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.attempts.RegisterFailure(in.Email, now)
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	uc.attempts.Reset(in.Email)

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

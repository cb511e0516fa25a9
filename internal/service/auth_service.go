package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"fncs-api/internal/domain"
	"fncs-api/internal/repository"
)

// AuthService coordina registro, login y verificación de tokens.
type AuthService struct {
	logger       *zap.Logger
	users        repository.UserRepository
	tokens       *TokenService
	queryTimeout time.Duration
	fallbackHash string
}

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrUserNotFound       = errors.New("user not found")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

func NewAuthService(logger *zap.Logger, users repository.UserRepository, tokens *TokenService, queryTimeout time.Duration) *AuthService {
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	// Hash de sacrificio para igualar el costo de login cuando el email no existe.
	fallbackHash, err := HashPassword(uuid.NewString())
	if err != nil && logger != nil {
		logger.Error("fallback hash generation failed", zap.Error(err))
	}
	return &AuthService{
		logger:       logger,
		users:        users,
		tokens:       tokens,
		queryTimeout: queryTimeout,
		fallbackHash: fallbackHash,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

// Register valida, hashea y persiste un usuario nuevo. La unicidad del email
// la garantiza el índice único; la violación se traduce a ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("auth service not configured")
	}

	email := normalizeEmail(input.Email)
	if err := validateEmail(email); err != nil {
		return domain.User{}, err
	}
	if err := validatePassword(input.Password); err != nil {
		return domain.User{}, err
	}
	fullName := strings.TrimSpace(input.FullName)
	if err := validateFullName(fullName); err != nil {
		return domain.User{}, err
	}

	passwordHash, err := HashPassword(input.Password)
	if err != nil {
		return domain.User{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	user, err := s.users.Create(ctx, email, passwordHash, fullName)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, s.storeError("create user", err)
	}
	return user, nil
}

type LoginResult struct {
	Token     string
	User      domain.PublicUser
	ExpiresIn int64
}

// Login verifica credenciales y emite un token. Email inexistente, password
// incorrecto y cuenta desactivada fallan todos con ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (LoginResult, error) {
	if s.users == nil || s.tokens == nil {
		return LoginResult{}, errors.New("auth service not configured")
	}

	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Se compara igual contra un hash de sacrificio para no delatar
			// por tiempo de respuesta que el email no existe.
			CheckPassword(password, s.fallbackHash)
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, s.storeError("get user by email", err)
	}

	if !CheckPassword(password, user.PasswordHash) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		if s.logger != nil {
			s.logger.Info("login rejected for deactivated account", zap.Int64("user_id", user.ID))
		}
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{
		Token:     token,
		User:      user.Public(),
		ExpiresIn: s.tokens.TTLSeconds(),
	}, nil
}

// VerifyToken delega en el codec y colapsa ambos fallos en ErrUnauthenticated;
// el motivo concreto queda solo en el log.
func (s *AuthService) VerifyToken(tokenString string) (Claims, error) {
	if s.tokens == nil {
		return Claims{}, errors.New("auth service not configured")
	}
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		if s.logger != nil {
			s.logger.Info("token verification failed", zap.Error(err))
		}
		return Claims{}, ErrUnauthenticated
	}
	return claims, nil
}

// CurrentUser busca el usuario autenticado en el store.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("auth service not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, s.storeError("get user by id", err)
	}
	return user, nil
}

func (s *AuthService) storeError(op string, err error) error {
	var connectErr *pgconn.ConnectError
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &connectErr) {
		if s.logger != nil {
			s.logger.Error("credential store unavailable", zap.String("op", op), zap.Error(err))
		}
		return ErrStoreUnavailable
	}
	if s.logger != nil {
		s.logger.Error("credential store query failed", zap.String("op", op), zap.Error(err))
	}
	return err
}

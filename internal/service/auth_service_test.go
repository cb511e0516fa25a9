package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"fncs-api/internal/domain"
)

type mockUserRepo struct {
	usersByID    map[int64]domain.User
	usersByEmail map[string]int64
	nextID       int64
	failWith     error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:    make(map[int64]domain.User),
		usersByEmail: make(map[string]int64),
		nextID:       1,
	}
}

func (m *mockUserRepo) Create(_ context.Context, email, passwordHash, fullName string) (domain.User, error) {
	if m.failWith != nil {
		return domain.User{}, m.failWith
	}
	if _, exists := m.usersByEmail[email]; exists {
		return domain.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}
	}
	now := time.Now().UTC()
	user := domain.User{
		ID:           m.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.nextID++
	m.usersByID[user.ID] = user
	m.usersByEmail[email] = user.ID
	return user, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	if m.failWith != nil {
		return domain.User{}, m.failWith
	}
	id, ok := m.usersByEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.usersByID[id], nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (domain.User, error) {
	if m.failWith != nil {
		return domain.User{}, m.failWith
	}
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func newTestAuthService(t *testing.T, repo *mockUserRepo) *AuthService {
	t.Helper()
	tokens, err := NewTokenService("secret", "HS256", time.Hour, 0)
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}
	return NewAuthService(zap.NewNop(), repo, tokens, 5*time.Second)
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(t, repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Email:    "a@x.com",
		Password: "secret123",
		FullName: "A",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == 0 || user.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "secret123" || user.PasswordHash == "" {
		t.Fatalf("expected hashed password")
	}

	result, err := svc.Login(ctx, "a@x.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" || result.ExpiresIn != 3600 {
		t.Fatalf("unexpected login result: %+v", result)
	}
	if result.User.Email != "a@x.com" || result.User.ID != user.ID {
		t.Fatalf("unexpected public user: %+v", result.User)
	}

	claims, err := svc.VerifyToken(result.Token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != "a@x.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_RegisterNormalizesEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(t, repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Email:    "  A@X.cOm ",
		Password: "secret123",
		FullName: "A",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}

	if _, err := svc.Login(ctx, "A@X.COM", "secret123"); err != nil {
		t.Fatalf("login with unnormalized email: %v", err)
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(t, repo)
	ctx := context.Background()

	first, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "secret123", FullName: "First"})
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err = svc.Register(ctx, RegisterInput{Email: "A@x.com", Password: "other-pass", FullName: "Second"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	stored, err := repo.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("get first user: %v", err)
	}
	if stored.FullName != "First" {
		t.Fatalf("expected first registration unchanged, got %+v", stored)
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(t, repo)
	ctx := context.Background()

	cases := []struct {
		name    string
		input   RegisterInput
		message string
	}{
		{"missing email", RegisterInput{Password: "secret123", FullName: "A"}, "Email is required"},
		{"bad email", RegisterInput{Email: "not-an-email", Password: "secret123", FullName: "A"}, "Invalid email format"},
		{"missing password", RegisterInput{Email: "a@x.com", FullName: "A"}, "Password is required"},
		{"short password", RegisterInput{Email: "a@x.com", Password: "short", FullName: "A"}, "Password must be at least 6 characters long"},
		{"missing name", RegisterInput{Email: "a@x.com", Password: "secret123", FullName: "   "}, "Full name is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.input)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if validationErr.Message != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, validationErr.Message)
			}
		})
	}
}

func TestAuthService_LoginFailsUniformly(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(t, repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "secret123", FullName: "A"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	inactive, err := svc.Register(ctx, RegisterInput{Email: "off@x.com", Password: "secret123", FullName: "Off"})
	if err != nil {
		t.Fatalf("register inactive: %v", err)
	}
	deactivated := repo.usersByID[inactive.ID]
	deactivated.IsActive = false
	repo.usersByID[inactive.ID] = deactivated

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "a@x.com", "wrong-pass"},
		{"unknown email", "nobody@x.com", "secret123"},
		{"deactivated account", "off@x.com", "secret123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tc.email, tc.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthService_VerifyTokenCollapsesFailures(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(t, repo)

	if _, err := svc.VerifyToken("garbage"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for garbage, got %v", err)
	}

	expired, err := NewTokenService("secret", "HS256", time.Nanosecond, 0)
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}
	token, err := expired.Issue(domain.User{ID: 1, Email: "a@x.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := svc.VerifyToken(token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for expired, got %v", err)
	}
}

func TestAuthService_StoreUnavailable(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(t, repo)
	ctx := context.Background()

	repo.failWith = context.DeadlineExceeded

	if _, err := svc.Login(ctx, "a@x.com", "secret123"); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable on login, got %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "secret123", FullName: "A"}); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable on register, got %v", err)
	}
	if _, err := svc.CurrentUser(ctx, 1); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable on current user, got %v", err)
	}
}

func TestAuthService_CurrentUserNotFound(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(t, repo)

	if _, err := svc.CurrentUser(context.Background(), 42); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

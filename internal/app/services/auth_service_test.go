package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/eren/coursehub/internal/app/models"
	"github.com/eren/coursehub/internal/app/models/dto"
	"github.com/eren/coursehub/internal/app/services"
	"github.com/eren/coursehub/internal/pkg/apperrors"
	"github.com/eren/coursehub/internal/pkg/auth"
)

func newTestAuthService(users *fakeUserRepo) services.AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret-key",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "coursehub.test",
	})
	return services.NewAuthService(users, jwtService, zerolog.Nop())
}

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterRequest{
		Name:     "Ayse Demir",
		Email:    "ayse@example.com",
		Password: "s3cret-pass",
		RoleType: models.RoleStudent,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if registered.ID == 0 {
		t.Fatal("expected registered user to be assigned an id")
	}
	if registered.Role != string(models.RoleStudent) {
		t.Fatalf("expected role %q, got %q", models.RoleStudent, registered.Role)
	}

	stored, err := users.GetByID(ctx, registered.ID)
	if err != nil {
		t.Fatalf("stored user not found: %v", err)
	}
	if stored.Password == "s3cret-pass" {
		t.Fatal("password was stored in plain text")
	}

	authResp, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "ayse@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if authResp.Token.AccessToken == "" {
		t.Fatal("expected a non-empty access token")
	}
	if authResp.User.ID != registered.ID {
		t.Fatalf("expected user id %d in login response, got %d", registered.ID, authResp.User.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)
	ctx := context.Background()

	req := &dto.RegisterRequest{
		Name:     "Ayse Demir",
		Email:    "ayse@example.com",
		Password: "s3cret-pass",
		RoleType: models.RoleStudent,
	}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Name:     "Someone Else",
		Email:    "ayse@example.com",
		Password: "other-pass",
		RoleType: models.RoleInstructor,
	})
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}

	// The taken email is detected by the existence check, so the second
	// registration never reaches the insert.
	if users.createCalls != 1 {
		t.Fatalf("expected a single insert attempt, got %d", users.createCalls)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	cases := []struct {
		name string
		req  dto.RegisterRequest
		want error
	}{
		{
			name: "empty email",
			req:  dto.RegisterRequest{Name: "A", Email: "", Password: "p", RoleType: models.RoleStudent},
			want: apperrors.ErrValidationFailed,
		},
		{
			name: "bad email format",
			req:  dto.RegisterRequest{Name: "A", Email: "not-an-email", Password: "p", RoleType: models.RoleStudent},
			want: apperrors.ErrValidationFailed,
		},
		{
			name: "empty name",
			req:  dto.RegisterRequest{Name: "  ", Email: "a@example.com", Password: "p", RoleType: models.RoleStudent},
			want: apperrors.ErrValidationFailed,
		},
		{
			name: "empty password",
			req:  dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "", RoleType: models.RoleStudent},
			want: apperrors.ErrValidationFailed,
		},
		{
			name: "unknown role",
			req:  dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "p", RoleType: models.RoleType("ADMIN")},
			want: apperrors.ErrInvalidRole,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, &tc.req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &dto.RegisterRequest{
		Name:     "Ayse Demir",
		Email:    "ayse@example.com",
		Password: "s3cret-pass",
		RoleType: models.RoleStudent,
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Wrong password and unknown email must return the same error.
	_, err := svc.Login(ctx, &dto.LoginRequest{Email: "ayse@example.com", Password: "wrong"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestGetProfile(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterRequest{
		Name:     "Mehmet Kaya",
		Email:    "mehmet@example.com",
		Password: "pass",
		RoleType: models.RoleInstructor,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	profile, err := svc.GetProfile(ctx, registered.ID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if profile.Email != "mehmet@example.com" {
		t.Fatalf("unexpected profile email %q", profile.Email)
	}

	if _, err := svc.GetProfile(ctx, 999); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for unknown id, got %v", err)
	}
}
